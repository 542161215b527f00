// Package homology decides whether two peptides share ancestry, by local
// alignment score against a substitution matrix.
package homology

import (
	"math"

	"promoscan/internal/seq"
)

// Default alignment parameters.
const (
	DefaultMinScore  = 60
	DefaultGapOpen   = 10
	DefaultGapExtend = 0.5
)

// Filter is the only capability the analysis driver needs.
type Filter interface {
	Homologous(a, b seq.Peptide) bool
}

// Scorer produces an alignment score for two peptides.
type Scorer interface {
	Score(a, b seq.Peptide) float64
}

// Passes applies the homology threshold: a score equal to the minimum counts.
func Passes(score, minScore float64) bool { return score >= minScore }

// Threshold turns any Scorer into a Filter.
type Threshold struct {
	Scorer   Scorer
	MinScore float64
}

func (t Threshold) Homologous(a, b seq.Peptide) bool {
	return Passes(t.Scorer.Score(a, b), t.MinScore)
}

// SmithWaterman is a Gotoh local aligner with affine gaps: a gap of length k
// costs GapOpen + (k-1)*GapExtend.
type SmithWaterman struct {
	Matrix    *Matrix
	GapOpen   float64
	GapExtend float64
}

// NewFilter returns the default filter: BLOSUM62 Smith-Waterman-Gotoh with the
// given threshold and gap penalties.
func NewFilter(minScore, gapOpen, gapExtend float64) Threshold {
	return Threshold{
		Scorer:   &SmithWaterman{Matrix: BLOSUM62, GapOpen: gapOpen, GapExtend: gapExtend},
		MinScore: minScore,
	}
}

// Score returns the best local alignment score of a against b.
// Memory is O(len(b)); the aligner holds no state and is safe for concurrent use.
func (s *SmithWaterman) Score(a, b seq.Peptide) float64 {
	m, n := len(a), len(b)
	if m == 0 || n == 0 {
		return 0
	}
	negInf := math.Inf(-1)
	h := make([]float64, n+1) // H[i-1][*], overwritten in place with H[i][*]
	f := make([]float64, n+1) // best score ending with a gap in b, per column
	for j := range f {
		f[j] = negInf
	}

	best := 0.0
	for i := 1; i <= m; i++ {
		ai := a[i-1]
		diag, left := 0.0, 0.0
		e := negInf
		for j := 1; j <= n; j++ {
			up := h[j]
			f[j] = max(f[j]-s.GapExtend, up-s.GapOpen)
			e = max(e-s.GapExtend, left-s.GapOpen)
			v := max(diag+s.Matrix.Score(ai, b[j-1]), e, f[j], 0)
			diag = up
			h[j] = v
			left = v
			if v > best {
				best = v
			}
		}
	}
	return best
}
