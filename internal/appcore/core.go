// internal/appcore/core.go
package appcore

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"runtime"
	"time"

	"github.com/pkg/profile"
	"github.com/sirupsen/logrus"

	"promoscan/internal/cliutil"
	"promoscan/internal/consensus"
	"promoscan/internal/genbank"
	"promoscan/internal/partition"
	"promoscan/internal/pipeline"
	"promoscan/internal/progress"
	"promoscan/internal/refset"
	"promoscan/internal/report"
	"promoscan/internal/seq"
	"promoscan/internal/writers"
)

// Exit codes.
const (
	ExitOK       = 0
	ExitMismatch = 1 // --verify or --baseline disagreed
	ExitUsage    = 2 // bad flags, unreadable references, baseline or corpus
	ExitRuntime  = 3
	ExitCanceled = 130
)

// Options is a validated run request.
type Options struct {
	References string
	Inputs     []string

	Strategy partition.Strategy
	Threads  int
	Upstream int

	MinScore      float64
	GapOpen       float64
	GapExtend     float64
	MinConfidence float64

	Output        string
	Baseline      string
	WriteBaseline string
	Verify        bool

	Progress   bool
	Profile    string
	ProfileDir string
}

func startProfile(mode, dir string) interface{ Stop() } {
	var kind func(*profile.Profile)
	switch mode {
	case "cpu":
		kind = profile.CPUProfile
	case "mem":
		kind = profile.MemProfile
	case "block":
		kind = profile.BlockProfile
	default:
		return nil
	}
	return profile.Start(kind, profile.ProfilePath(dir), profile.NoShutdownHook, profile.Quiet)
}

// Run loads the inputs, runs the analysis and writes the report. It returns
// the process exit code.
func Run(parent context.Context, stdout, stderr io.Writer, o Options, log *logrus.Logger) int {
	outw := bufio.NewWriter(stdout)

	if p := startProfile(o.Profile, o.ProfileDir); p != nil {
		log.WithField("dir", o.ProfileDir).Debugf("%s profiling enabled", o.Profile)
		defer p.Stop()
	}

	refs, err := refset.Load(o.References)
	if err != nil {
		log.Errorf("reference set: %v", err)
		return ExitUsage
	}
	paths, err := cliutil.ExpandPositionals(o.Inputs, genbank.Discover)
	if err != nil {
		log.Error(err)
		return ExitUsage
	}
	if len(paths) == 0 {
		log.Error("no GenBank files found")
		return ExitUsage
	}

	thr := o.Threads
	if thr <= 0 {
		thr = runtime.NumCPU()
	}

	ctx, cancel := context.WithCancel(parent)
	defer cancel()

	t0 := time.Now()
	results := genbank.Ingest(ctx, paths, thr)
	if ctx.Err() != nil {
		return ExitCanceled
	}
	var skipped []string
	for _, r := range results {
		if !r.OK() {
			skipped = append(skipped, r.Path)
			log.WithField("file", r.Path).Warnf("skipping record: %v", r.Err)
		}
	}
	records := genbank.Records(results)
	log.WithFields(logrus.Fields{
		"records":    len(records),
		"skipped":    len(skipped),
		"references": len(refs),
		"elapsed":    time.Since(t0).Round(time.Millisecond),
	}).Info("ingested corpus")
	if len(records) == 0 {
		log.Errorf("no genome record could be read from %d file(s)", len(paths))
		return ExitUsage
	}

	an := pipeline.DefaultAnalyzer(o.MinScore, o.GapOpen, o.GapExtend, o.MinConfidence)
	r := &runner{o: o, threads: thr, refs: refs, records: records, an: an, stderr: stderr, log: log}

	reg, st, err := r.run(ctx, o.Strategy)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return ExitCanceled
		}
		log.Error(err)
		return ExitRuntime
	}
	fp := report.Fingerprint(reg)

	// Check reports share stdout with text output; structured output keeps
	// stdout machine-readable.
	checks := io.Writer(outw)
	if o.Output != "text" {
		checks = stderr
	}
	code := ExitOK

	if o.Verify {
		ok, err := r.verify(ctx, checks, st, fp)
		if err != nil {
			if errors.Is(err, context.Canceled) {
				return ExitCanceled
			}
			log.Error(err)
			return ExitRuntime
		}
		if !ok {
			code = ExitMismatch
		}
	}

	res := writers.Result{
		Registry:    reg,
		Stats:       st,
		Records:     len(records),
		Skipped:     skipped,
		References:  len(refs),
		Fingerprint: fp,
	}
	if err := writers.Write(o.Output, outw, res); err != nil && !writers.IsBrokenPipe(err) {
		log.Error(err)
		return ExitRuntime
	}

	if o.Baseline != "" {
		b, err := report.LoadBaseline(o.Baseline)
		if err != nil {
			log.Errorf("baseline: %v", err)
			return ExitUsage
		}
		ok, err := report.Compare(checks, b, reg)
		if err != nil && !writers.IsBrokenPipe(err) {
			log.Error(err)
			return ExitRuntime
		}
		if !ok {
			code = ExitMismatch
		}
	}
	if o.WriteBaseline != "" {
		if err := report.SaveBaseline(o.WriteBaseline, report.NewBaseline(reg, string(st.Strategy))); err != nil {
			log.Errorf("write baseline: %v", err)
			return ExitRuntime
		}
		log.WithField("file", o.WriteBaseline).Info("baseline written")
	}

	if e := outw.Flush(); writers.IsBrokenPipe(e) {
		return code
	} else if e != nil {
		log.Error(e)
		return ExitRuntime
	}
	return code
}

type runner struct {
	o       Options
	threads int
	refs    []seq.Gene
	records []seq.GenomeRecord
	an      pipeline.Analyzer
	stderr  io.Writer
	log     *logrus.Logger
}

// run executes one strategy with progress and logging.
func (r *runner) run(ctx context.Context, s partition.Strategy) (*consensus.Registry, pipeline.Stats, error) {
	var bar *progress.Bar
	if r.o.Progress {
		bar = progress.New(r.stderr, string(s), len(r.records)*len(r.refs))
	}
	reg, st, err := pipeline.Run(ctx, pipeline.Config{
		Strategy:  s,
		Workers:   r.threads,
		Upstream:  r.o.Upstream,
		OnJobDone: bar.Increment,
		Logger:    r.log,
	}, r.refs, r.records, r.an)
	bar.Finish(err == nil)
	if err != nil {
		return nil, st, fmt.Errorf("%s: %w", s, err)
	}
	logStats(r.log, st)
	return reg, st, nil
}

// verify runs the sequential baseline (reusing the main run if it was
// sequential) and every other strategy, and compares fingerprints.
func (r *runner) verify(ctx context.Context, out io.Writer, main pipeline.Stats, mainFP string) (bool, error) {
	outcome := func(st pipeline.Stats, fp string) report.Outcome {
		return report.Outcome{Strategy: st.Strategy, Workers: st.Workers, Fingerprint: fp}
	}
	base := outcome(main, mainFP)
	var outcomes []report.Outcome
	if main.Strategy != partition.Sequential {
		reg, st, err := r.run(ctx, partition.Sequential)
		if err != nil {
			return false, err
		}
		outcomes = append(outcomes, base)
		base = outcome(st, report.Fingerprint(reg))
	}
	for _, s := range partition.All {
		if s == partition.Sequential || s == main.Strategy {
			continue
		}
		reg, st, err := r.run(ctx, s)
		if err != nil {
			return false, err
		}
		outcomes = append(outcomes, outcome(st, report.Fingerprint(reg)))
	}
	return report.Verify(out, base, outcomes)
}

func logStats(log *logrus.Logger, st pipeline.Stats) {
	log.WithFields(logrus.Fields{
		"strategy":    st.Strategy,
		"workers":     st.Workers,
		"jobs":        st.Jobs,
		"comparisons": st.Comparisons,
		"homologous":  st.Homologous,
		"matches":     st.Matches,
		"elapsed":     st.Elapsed.Round(time.Millisecond),
	}).Info("run finished")
	if st.FailedJobs > 0 {
		log.WithField("strategy", st.Strategy).Warnf("%d jobs aborted; their matches were dropped", st.FailedJobs)
	}
	log.WithFields(logrus.Fields{
		"count": st.Align.Count,
		"mean":  st.Align.Mean(),
		"min":   st.Align.Min,
		"max":   st.Align.Max,
	}).Debug("alignment timing")
	if len(st.WorkerElapsed) > 0 {
		lo, hi := st.WorkerElapsed[0], st.WorkerElapsed[0]
		for _, d := range st.WorkerElapsed[1:] {
			lo, hi = min(lo, d), max(hi, d)
		}
		log.WithFields(logrus.Fields{"fastest": lo, "slowest": hi}).Debug("worker elapsed")
	}
}
