// Package upstream cuts the regulatory window that precedes a gene in its own
// reading direction. It is pure and safe to call from any number of workers
// on the same genome.
package upstream

import "promoscan/internal/seq"

// DefaultDistance is the longest window ever returned by Extract.
const DefaultDistance = 250

// Extract returns up to DefaultDistance bases upstream of g.
func Extract(genome seq.Nucleotides, g seq.Gene) seq.Nucleotides {
	return ExtractN(genome, g, DefaultDistance)
}

// Length is the window size ExtractN will produce: min(maxDist, Location-1),
// never negative.
func Length(g seq.Gene, maxDist int) int {
	n := g.Location - 1
	if maxDist < n {
		n = maxDist
	}
	if n < 0 {
		return 0
	}
	return n
}

// ExtractN returns the upstream window of g, at most maxDist bases long.
//
// Forward genes read genome[Location-n-1 : Location-1] as is. Reverse genes
// walk backwards from len(genome)-Location+n, complementing each base, so the
// window is in the reverse strand's 5'→3' order.
//
// The caller guarantees 1 <= Location <= len(genome); this is not checked.
func ExtractN(genome seq.Nucleotides, g seq.Gene, maxDist int) seq.Nucleotides {
	n := Length(g, maxDist)
	if n == 0 {
		return ""
	}
	if g.Strand == seq.Forward {
		return genome[g.Location-n-1 : g.Location-1]
	}
	out := make([]byte, n)
	start := len(genome) - g.Location + n
	for i := 0; i < n; i++ {
		out[i] = seq.Complement(genome[start-i])
	}
	return seq.Nucleotides(out)
}
