package homology

import (
	"testing"

	"promoscan/internal/seq"
)

type fixedScore float64

func (f fixedScore) Score(a, b seq.Peptide) float64 { return float64(f) }

func TestThresholdBoundary(t *testing.T) {
	if !(Threshold{Scorer: fixedScore(60), MinScore: DefaultMinScore}).Homologous("A", "A") {
		t.Fatalf("score of exactly 60 must count as homologous")
	}
	if (Threshold{Scorer: fixedScore(59.999), MinScore: DefaultMinScore}).Homologous("A", "A") {
		t.Fatalf("score of 59.999 must not count as homologous")
	}
}

func TestBlosumSymmetricAndKnownValues(t *testing.T) {
	m := BLOSUM62
	syms := "ARNDCQEGHILKMFPSTWYVBZX*"
	for i := 0; i < len(syms); i++ {
		for j := 0; j < len(syms); j++ {
			if m.Score(syms[i], syms[j]) != m.Score(syms[j], syms[i]) {
				t.Fatalf("asymmetric at %c/%c", syms[i], syms[j])
			}
		}
	}
	if m.Score('W', 'W') != 11 || m.Score('C', 'C') != 9 || m.Score('A', 'R') != -1 {
		t.Fatalf("unexpected BLOSUM62 values")
	}
	if m.Score('w', 'W') != 11 {
		t.Fatalf("lower case residues should score like upper case")
	}
	if m.Score('U', 'A') != m.Score('X', 'A') {
		t.Fatalf("unknown residues should score as X")
	}
}

func TestSmithWatermanScores(t *testing.T) {
	sw := &SmithWaterman{Matrix: BLOSUM62, GapOpen: DefaultGapOpen, GapExtend: DefaultGapExtend}

	if got := sw.Score("MKV", "MKV"); got != 14 {
		t.Fatalf("identity: want 14, got %v", got)
	}
	if got := sw.Score("", "MKV"); got != 0 {
		t.Fatalf("empty: want 0, got %v", got)
	}
	// local: flanks that score negatively are clipped
	if got := sw.Score("PPPWWWPPP", "GGGWWWGGG"); got != 33 {
		t.Fatalf("local: want 33, got %v", got)
	}
	// one gap opened: 6*11 - 10
	if got := sw.Score("WWWWWW", "WWWGWWW"); got != 56 {
		t.Fatalf("single gap: want 56, got %v", got)
	}
	// gap of two: 6*11 - 10 - 0.5
	if got := sw.Score("WWWWWW", "WWWGGWWW"); got != 55.5 {
		t.Fatalf("extended gap: want 55.5, got %v", got)
	}
	if sw.Score("WWWWWW", "WWWGGWWW") != sw.Score("WWWGGWWW", "WWWWWW") {
		t.Fatalf("score should not depend on argument order")
	}
}

func TestNewFilter(t *testing.T) {
	f := NewFilter(DefaultMinScore, DefaultGapOpen, DefaultGapExtend)
	long := seq.Peptide("MKRISTTITTTITITTGNGAGWWCH")
	if !f.Homologous(long, long) {
		t.Fatalf("a peptide should be homologous to itself")
	}
	if f.Homologous("MKV", "MKV") {
		t.Fatalf("short identical peptides score below the threshold")
	}
}
