// internal/seq/complement.go
package seq

var complement [256]byte

func init() {
	for i := range complement {
		complement[i] = 'N'
	}
	for i := 'a'; i <= 'z'; i++ {
		complement[i] = 'n'
	}
	complement['A'] = 'T'
	complement['C'] = 'G'
	complement['G'] = 'C'
	complement['T'] = 'A'
	complement['a'] = 't'
	complement['c'] = 'g'
	complement['g'] = 'c'
	complement['t'] = 'a'
}

// Complement returns the Watson-Crick partner of b, preserving case.
// Anything outside ACGT maps to N (n for lower case letters).
func Complement(b byte) byte { return complement[b] }

// RevComp returns the reverse complement of s.
func RevComp(s Nucleotides) Nucleotides {
	n := len(s)
	if n == 0 {
		return ""
	}
	out := make([]byte, n)
	for i := 0; i < n; i++ {
		out[i] = complement[s[n-1-i]]
	}
	return Nucleotides(out)
}
