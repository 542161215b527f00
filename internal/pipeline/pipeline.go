// internal/pipeline/pipeline.go
package pipeline

import (
	"context"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"promoscan/internal/consensus"
	"promoscan/internal/partition"
	"promoscan/internal/promoter"
	"promoscan/internal/refset"
	"promoscan/internal/seq"
	"promoscan/internal/upstream"
)

// Config controls one run.
type Config struct {
	Strategy  partition.Strategy
	Workers   int                // worker goroutines for by-file and by-index (>=1)
	Upstream  int                // max upstream window; 0 means upstream.DefaultDistance
	OnJobDone func()             // optional; called from worker goroutines
	Logger    logrus.FieldLogger // optional
}

// Timing summarises how long homology checks took.
type Timing struct {
	Count int
	Min   time.Duration
	Max   time.Duration
	Total time.Duration
}

func (t *Timing) observe(d time.Duration) {
	if t.Count == 0 || d < t.Min {
		t.Min = d
	}
	if d > t.Max {
		t.Max = d
	}
	t.Count++
	t.Total += d
}

func (t *Timing) merge(o Timing) {
	if o.Count == 0 {
		return
	}
	if t.Count == 0 || o.Min < t.Min {
		t.Min = o.Min
	}
	if o.Max > t.Max {
		t.Max = o.Max
	}
	t.Count += o.Count
	t.Total += o.Total
}

// Mean is the average duration, 0 when nothing was timed.
func (t Timing) Mean() time.Duration {
	if t.Count == 0 {
		return 0
	}
	return t.Total / time.Duration(t.Count)
}

// Stats describes what a run did. Counts are summed across workers after the
// join, so they are exact.
type Stats struct {
	Strategy      partition.Strategy
	Workers       int
	Jobs          int
	Comparisons   int // homology checks performed
	Homologous    int // checks that passed
	Matches       int // promoters folded into the registry
	FailedJobs    int // jobs aborted by a collaborator panic
	Align         Timing
	WorkerElapsed []time.Duration
	Elapsed       time.Duration
}

type counters struct {
	jobs        int
	comparisons int
	homologous  int
	matches     int
	failed      int
	align       Timing
}

func (c *counters) add(o counters) {
	c.jobs += o.jobs
	c.comparisons += o.comparisons
	c.homologous += o.homologous
	c.matches += o.matches
	c.failed += o.failed
	c.align.merge(o.align)
}

// hit is one match waiting to be folded.
type hit struct {
	ref   string
	match promoter.Match
}

type worker struct {
	id       int
	refs     []seq.Gene
	records  []seq.GenomeRecord
	an       Analyzer
	upstream int
	done     func()
	log      logrus.FieldLogger

	local   *consensus.Registry
	c       counters
	elapsed time.Duration
	err     error
}

func discardLogger() logrus.FieldLogger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

// Run builds the plan for cfg.Strategy, runs one goroutine per plan worker and
// returns the merged registry once every worker has finished.
//
// Each worker accumulates into its own registry; the result is built by
// merging them in worker order after the join, so no accumulator is shared
// while workers run. If ctx is cancelled Run returns ctx.Err() without
// waiting for jobs that are still in a collaborator call.
func Run(
	ctx context.Context,
	cfg Config,
	refs []seq.Gene,
	records []seq.GenomeRecord,
	an Analyzer,
) (*consensus.Registry, Stats, error) {
	start := time.Now()
	log := cfg.Logger
	if log == nil {
		log = discardLogger()
	}
	if cfg.Upstream <= 0 {
		cfg.Upstream = upstream.DefaultDistance
	}
	if an.Filter == nil || an.Matcher == nil {
		return nil, Stats{}, fmt.Errorf("pipeline: analyzer needs both a filter and a matcher")
	}

	result, err := consensus.NewRegistry(refset.Names(refs))
	if err != nil {
		return nil, Stats{}, err
	}
	plan, err := partition.Build(cfg.Strategy, len(records), len(refs), cfg.Workers)
	if err != nil {
		return nil, Stats{}, err
	}
	log.WithFields(logrus.Fields{
		"strategy": plan.Strategy,
		"workers":  len(plan.Workers),
		"jobs":     plan.Jobs(),
	}).Debug("starting run")

	workers := make([]*worker, len(plan.Workers))
	var wg sync.WaitGroup
	wg.Add(len(plan.Workers))
	for i, jobs := range plan.Workers {
		w := &worker{
			id: i, refs: refs, records: records, an: an,
			upstream: cfg.Upstream, done: cfg.OnJobDone, log: log,
		}
		workers[i] = w
		go func(jobs []partition.Job) {
			defer wg.Done()
			w.run(ctx, jobs)
		}(jobs)
	}

	joined := make(chan struct{})
	go func() {
		wg.Wait()
		close(joined)
	}()
	select {
	case <-joined:
	case <-ctx.Done():
		return nil, Stats{}, ctx.Err()
	}
	if ctx.Err() != nil {
		return nil, Stats{}, ctx.Err()
	}

	st := Stats{
		Strategy:      plan.Strategy,
		Workers:       len(plan.Workers),
		WorkerElapsed: make([]time.Duration, len(workers)),
	}
	var total counters
	for i, w := range workers {
		if w.err != nil {
			return nil, Stats{}, fmt.Errorf("worker %d: %w", i, w.err)
		}
		if w.local != nil {
			if err := result.Merge(w.local); err != nil {
				return nil, Stats{}, fmt.Errorf("worker %d: %w", i, err)
			}
		}
		total.add(w.c)
		st.WorkerElapsed[i] = w.elapsed
	}
	st.Jobs = total.jobs
	st.Comparisons = total.comparisons
	st.Homologous = total.homologous
	st.Matches = total.matches
	st.FailedJobs = total.failed
	st.Align = total.align
	st.Elapsed = time.Since(start)
	return result, st, nil
}

func (w *worker) run(ctx context.Context, jobs []partition.Job) {
	t0 := time.Now()
	defer func() {
		w.elapsed = time.Since(t0)
		w.log.WithFields(logrus.Fields{
			"worker":  w.id,
			"jobs":    w.c.jobs,
			"elapsed": w.elapsed,
		}).Trace("worker finished")
	}()

	for _, j := range jobs {
		select {
		case <-ctx.Done():
			return
		default:
		}
		ref := w.refs[j.Gene]
		rec := &w.records[j.Record]
		hits, jc, err := w.process(rec, ref)
		w.c.jobs++
		w.c.comparisons += jc.comparisons
		w.c.homologous += jc.homologous
		w.c.align.merge(jc.align)
		if err != nil {
			w.c.failed++
			w.log.WithFields(logrus.Fields{
				"record":    rec.ID,
				"source":    rec.Source,
				"reference": ref.Name,
			}).Errorf("job aborted: %v", err)
		} else if len(hits) > 0 {
			if w.local == nil {
				reg, err := consensus.NewRegistry(refset.Names(w.refs))
				if err != nil {
					w.err = err
					return
				}
				w.local = reg
			}
			for _, h := range hits {
				if err := w.local.Add(h.ref, h.match); err != nil {
					w.err = err
					return
				}
			}
			w.c.matches += len(hits)
		}
		if w.done != nil {
			w.done()
		}
	}
}

// process runs one job. Matches are only returned if every collaborator call
// for the job completed, so a panic leaves the registry untouched.
func (w *worker) process(rec *seq.GenomeRecord, ref seq.Gene) (hits []hit, c counters, err error) {
	defer func() {
		if r := recover(); r != nil {
			hits = nil
			err = fmt.Errorf("panic: %v", r)
		}
	}()
	for _, g := range rec.Genes {
		t := time.Now()
		ok := w.an.Filter.Homologous(g.Peptide, ref.Peptide)
		c.align.observe(time.Since(t))
		c.comparisons++
		if !ok {
			continue
		}
		c.homologous++
		window := upstream.ExtractN(rec.Nucleotides, g, w.upstream)
		if m, found := w.an.Matcher.BestMatch(window); found {
			hits = append(hits, hit{ref: ref.Name, match: m})
		}
	}
	return hits, c, nil
}
