// Package partition divides the (record × reference gene) job space across
// workers. Every strategy hands each job to exactly one worker; they differ
// only in granularity and locality.
package partition

import (
	"errors"
	"fmt"
	"strings"
)

// Strategy selects how jobs are split across workers.
type Strategy string

const (
	// Sequential runs every job in index order on a single worker.
	Sequential Strategy = "sequential"
	// ByFile gives each worker a contiguous chunk of records and all genes.
	ByFile Strategy = "by-file"
	// ByPair runs one worker per (record, gene) pair.
	ByPair Strategy = "by-pair"
	// ByIndex splits the flattened job index range evenly.
	ByIndex Strategy = "by-index"
)

// All lists every strategy, baseline first.
var All = []Strategy{Sequential, ByFile, ByPair, ByIndex}

var ErrUnknownStrategy = errors.New("unknown strategy")

// Parse accepts a strategy name (case-insensitive).
func Parse(s string) (Strategy, error) {
	name := Strategy(strings.ToLower(strings.TrimSpace(s)))
	for _, st := range All {
		if st == name {
			return st, nil
		}
	}
	return "", fmt.Errorf("%q: %w (want %s)", s, ErrUnknownStrategy, Names())
}

// Names lists the strategy names for usage text.
func Names() string {
	parts := make([]string, len(All))
	for i, s := range All {
		parts[i] = string(s)
	}
	return strings.Join(parts, "|")
}

// Job is one WorkItem: a record index and a reference-gene index.
type Job struct {
	Record int
	Gene   int
}

// Index flattens a job: record*numGenes + gene.
func Index(j Job, numGenes int) int { return j.Record*numGenes + j.Gene }

// Split is the inverse of Index.
func Split(idx, numGenes int) Job { return Job{Record: idx / numGenes, Gene: idx % numGenes} }

// Span is a half-open range [Start, End).
type Span struct{ Start, End int }

func (s Span) Len() int { return s.End - s.Start }

// Chunks cuts n items into parts contiguous spans of ceil(n/parts) items.
// Start and end are both clamped to n, so when parts does not divide n the
// trailing spans may be short or empty.
func Chunks(n, parts int) []Span {
	if parts < 1 {
		parts = 1
	}
	size := (n + parts - 1) / parts
	out := make([]Span, parts)
	for i := range out {
		out[i] = Span{Start: min(i*size, n), End: min((i+1)*size, n)}
	}
	return out
}

// EvenDivision cuts n items into parts contiguous spans whose sizes differ by
// at most one; the first n%parts spans carry the extra item.
func EvenDivision(n, parts int) []Span {
	if parts < 1 {
		parts = 1
	}
	division, remainder := n/parts, n%parts
	out := make([]Span, parts)
	start := 0
	for i := range out {
		size := division
		if i < remainder {
			size++
		}
		out[i] = Span{Start: start, End: start + size}
		start += size
	}
	return out
}

// Plan is the per-worker job assignment for a run.
type Plan struct {
	Strategy Strategy
	Records  int
	Genes    int
	Workers  [][]Job
}

// Jobs is the size of the job space.
func (p Plan) Jobs() int { return p.Records * p.Genes }

// Build assigns the job space to workers. workers is ignored for Sequential
// (always one worker) and ByPair (one worker per job).
func Build(s Strategy, numRecords, numGenes, workers int) (Plan, error) {
	if numRecords < 0 || numGenes < 0 {
		return Plan{}, fmt.Errorf("negative job space %d×%d", numRecords, numGenes)
	}
	if workers < 1 {
		workers = 1
	}
	p := Plan{Strategy: s, Records: numRecords, Genes: numGenes}
	total := numRecords * numGenes

	switch s {
	case Sequential:
		p.Workers = [][]Job{rangeJobs(Span{0, total}, numGenes)}
	case ByFile:
		for _, c := range Chunks(numRecords, workers) {
			jobs := make([]Job, 0, c.Len()*numGenes)
			for r := c.Start; r < c.End; r++ {
				for g := 0; g < numGenes; g++ {
					jobs = append(jobs, Job{Record: r, Gene: g})
				}
			}
			p.Workers = append(p.Workers, jobs)
		}
	case ByPair:
		p.Workers = make([][]Job, 0, total)
		for i := 0; i < total; i++ {
			p.Workers = append(p.Workers, []Job{Split(i, numGenes)})
		}
	case ByIndex:
		for _, sp := range EvenDivision(total, workers) {
			p.Workers = append(p.Workers, rangeJobs(sp, numGenes))
		}
	default:
		return Plan{}, fmt.Errorf("%q: %w", s, ErrUnknownStrategy)
	}
	return p, nil
}

func rangeJobs(sp Span, numGenes int) []Job {
	jobs := make([]Job, 0, sp.Len())
	for i := sp.Start; i < sp.End; i++ {
		jobs = append(jobs, Split(i, numGenes))
	}
	return jobs
}
