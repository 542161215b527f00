// Package consensus folds promoter matches into per-position symbol counts
// and renders the dominant motif.
//
// Every operation on an Accumulator is a sum of counters, so the final state
// does not depend on the order matches were folded in or on how they were
// split across accumulators before Merge.
package consensus

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"sync"

	"promoscan/internal/promoter"
)

// Symbols are the rendered column alphabet. Ties between counts resolve to
// the earlier symbol; anything that is not ACGT is counted as N.
const Symbols = "ACGTN"

const numSymbols = len(Symbols)

var symbolIndex [256]uint8

func init() {
	for i := range symbolIndex {
		symbolIndex[i] = uint8(numSymbols - 1)
	}
	for i := 0; i < 4; i++ {
		c := Symbols[i]
		symbolIndex[c] = uint8(i)
		symbolIndex[c+'a'-'A'] = uint8(i)
	}
}

// Counts holds one column of a box: a count per entry of Symbols.
type Counts [numSymbols]int

// Box holds the columns of one hexamer box.
type Box [promoter.BoxLen]Counts

func (b *Box) add(motif string) {
	for i := 0; i < len(motif) && i < promoter.BoxLen; i++ {
		b[i][symbolIndex[motif[i]]]++
	}
}

func (b *Box) merge(o *Box) {
	for i := range b {
		for s := range b[i] {
			b[i][s] += o[i][s]
		}
	}
}

// dominant returns the most frequent symbol in each column, or '-' for a
// column that has never been observed.
func (b *Box) dominant() []byte {
	out := make([]byte, promoter.BoxLen)
	for i, col := range b {
		best, bestN := byte('-'), 0
		for s, n := range col {
			if n > bestN {
				best, bestN = Symbols[s], n
			}
		}
		out[i] = best
	}
	return out
}

// Accumulator is a concurrently-updatable summary of matches. The zero value
// is ready to use.
type Accumulator struct {
	mu        sync.Mutex
	box35     Box
	box10     Box
	spacers   map[int]int
	spacerSum int
	count     int
}

// AddMatch folds one match into the accumulator.
func (a *Accumulator) AddMatch(m promoter.Match) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.box35.add(m.Box35)
	a.box10.add(m.Box10)
	if a.spacers == nil {
		a.spacers = make(map[int]int)
	}
	a.spacers[m.Spacer]++
	a.spacerSum += m.Spacer
	a.count++
}

// Merge folds all observations of o into a. o is read under its own lock
// first, so merging two accumulators into each other cannot deadlock.
func (a *Accumulator) Merge(o *Accumulator) {
	snap := o.snapshot()
	a.mu.Lock()
	defer a.mu.Unlock()
	a.box35.merge(&snap.box35)
	a.box10.merge(&snap.box10)
	if len(snap.spacers) > 0 && a.spacers == nil {
		a.spacers = make(map[int]int, len(snap.spacers))
	}
	for sp, n := range snap.spacers {
		a.spacers[sp] += n
	}
	a.spacerSum += snap.spacerSum
	a.count += snap.count
}

type state struct {
	box35, box10 Box
	spacers      map[int]int
	spacerSum    int
	count        int
}

func (a *Accumulator) snapshot() state {
	a.mu.Lock()
	defer a.mu.Unlock()
	s := state{box35: a.box35, box10: a.box10, spacerSum: a.spacerSum, count: a.count}
	s.spacers = make(map[int]int, len(a.spacers))
	for k, v := range a.spacers {
		s.spacers[k] = v
	}
	return s
}

// Count is the number of matches folded in.
func (a *Accumulator) Count() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.count
}

// AverageSpacer is the mean spacer length, 0 when empty.
func (a *Accumulator) AverageSpacer() float64 {
	a.mu.Lock()
	defer a.mu.Unlock()
	return mean(a.spacerSum, a.count)
}

func mean(sum, n int) float64 {
	if n == 0 {
		return 0
	}
	return float64(sum) / float64(n)
}

func spaced(b []byte) string {
	var sb strings.Builder
	for i, c := range b {
		if i > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteByte(c)
	}
	return sb.String()
}

// String renders the accumulator in the historical report format:
//
//	" Consensus: -35: T T G A C A gap: 17.6 -10: T A T A A T  (5430 matches)"
func (a *Accumulator) String() string {
	s := a.snapshot()
	return fmt.Sprintf(" Consensus: -35: %s gap: %.1f -10: %s  (%d matches)",
		spaced(s.box35.dominant()), halfUp(mean(s.spacerSum, s.count)), spaced(s.box10.dominant()), s.count)
}

// halfUp rounds to one decimal with halves going up, so 17.25 renders 17.3
// and not the round-half-even 17.2 of %.1f.
func halfUp(x float64) float64 { return math.Floor(x*10+0.5) / 10 }

// SpacerCount is one bin of the spacer histogram.
type SpacerCount struct {
	Spacer int
	Count  int
}

// Summary is a value copy of an accumulator for reporting.
type Summary struct {
	Box35         string
	Box10         string
	Box35Counts   Box
	Box10Counts   Box
	AverageSpacer float64
	Spacers       []SpacerCount // ascending by Spacer
	Count         int
}

func (a *Accumulator) Summary() Summary {
	s := a.snapshot()
	out := Summary{
		Box35:         string(s.box35.dominant()),
		Box10:         string(s.box10.dominant()),
		Box35Counts:   s.box35,
		Box10Counts:   s.box10,
		AverageSpacer: mean(s.spacerSum, s.count),
		Count:         s.count,
	}
	for sp, n := range s.spacers {
		out.Spacers = append(out.Spacers, SpacerCount{Spacer: sp, Count: n})
	}
	sort.Slice(out.Spacers, func(i, j int) bool { return out.Spacers[i].Spacer < out.Spacers[j].Spacer })
	return out
}
