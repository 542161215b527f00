package seq

import "testing"

func TestComplementPreservesCase(t *testing.T) {
	in := "ACGTacgtNx"
	want := "TGCAtgcaNn"
	got := make([]byte, len(in))
	for i := 0; i < len(in); i++ {
		got[i] = Complement(in[i])
	}
	if string(got) != want {
		t.Fatalf("complement: want %q, got %q", want, got)
	}
}

func TestRevComp(t *testing.T) {
	if got := RevComp("AACGt"); got != "aCGTT" {
		t.Fatalf("revcomp: got %q", got)
	}
	if got := RevComp(""); got != "" {
		t.Fatalf("empty revcomp: got %q", got)
	}
}

func TestValidate(t *testing.T) {
	r := GenomeRecord{ID: "r", Nucleotides: "ACGTACGT", Genes: []Gene{
		{Name: "a", Location: 1, Strand: Forward},
		{Name: "b", Location: 8, Strand: Reverse},
	}}
	if err := r.Validate(); err != nil {
		t.Fatalf("valid record rejected: %v", err)
	}
	r.Genes = append(r.Genes, Gene{Name: "c", Location: 9, Strand: Forward})
	if err := r.Validate(); err == nil {
		t.Fatalf("expected out-of-range location to fail")
	}
	r.Genes = []Gene{{Name: "d", Location: 2}}
	if err := r.Validate(); err == nil {
		t.Fatalf("expected missing strand to fail")
	}
}

func TestReverseLocation(t *testing.T) {
	// last base of a 16 bp replicon is the first base on the reverse strand
	if got := ReverseLocation(16, 16); got != 1 {
		t.Fatalf("want 1, got %d", got)
	}
	if got := ReverseLocation(16, 8); got != 9 {
		t.Fatalf("want 9, got %d", got)
	}
}
