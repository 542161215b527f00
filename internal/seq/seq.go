// internal/seq/seq.go
package seq

import (
	"fmt"
)

// Nucleotides is a forward-strand DNA sequence. Strings keep it immutable, so
// a record can be shared by any number of workers without copying.
type Nucleotides string

// Peptide is an amino-acid sequence (one letter per residue).
type Peptide string

// Strand is the reading direction of a gene relative to its replicon.
type Strand int8

const (
	Forward Strand = 1
	Reverse Strand = -1
)

func (s Strand) String() string {
	switch s {
	case Forward:
		return "+"
	case Reverse:
		return "-"
	}
	return "?"
}

// Gene is a named coding sequence.
//
// Location is 1-based. For forward genes it is the first base of the CDS on
// the forward strand; for reverse genes it is the same point expressed in
// reverse-strand coordinates (len(genome) - end + 1). A Location of 0 means
// the gene is not positioned (reference genes).
type Gene struct {
	Name     string
	Location int
	Strand   Strand
	Peptide  Peptide
}

// GenomeRecord is one replicon with its annotated genes. Records are built
// once by ingestion and never mutated afterwards.
type GenomeRecord struct {
	ID          string
	Source      string
	Nucleotides Nucleotides
	Genes       []Gene
}

// Validate checks that every gene is positioned inside the replicon and has a
// known strand.
func (r GenomeRecord) Validate() error {
	n := len(r.Nucleotides)
	for i, g := range r.Genes {
		if g.Location < 1 || g.Location > n {
			return fmt.Errorf("record %s: gene %d (%s) location %d outside [1,%d]", r.ID, i, g.Name, g.Location, n)
		}
		if g.Strand != Forward && g.Strand != Reverse {
			return fmt.Errorf("record %s: gene %d (%s) has no strand", r.ID, i, g.Name)
		}
	}
	return nil
}

// ReverseLocation converts a 1-based forward-strand end coordinate into the
// reverse-strand Location used by Gene.
func ReverseLocation(genomeLen, end int) int { return genomeLen - end + 1 }
