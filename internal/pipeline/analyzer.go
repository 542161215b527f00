// internal/pipeline/analyzer.go
package pipeline

import (
	"promoscan/internal/homology"
	"promoscan/internal/promoter"
)

// Analyzer bundles the two collaborators a job needs. Either may be a fake in
// tests.
type Analyzer struct {
	Filter  homology.Filter
	Matcher promoter.Matcher
}

// DefaultAnalyzer is BLOSUM62 Smith-Waterman-Gotoh homology plus the sigma70
// matcher.
func DefaultAnalyzer(minScore, gapOpen, gapExtend, minConfidence float64) Analyzer {
	return Analyzer{
		Filter:  homology.NewFilter(minScore, gapOpen, gapExtend),
		Matcher: promoter.NewSigma70(minConfidence),
	}
}
