// internal/homology/blosum.go
package homology

import (
	"fmt"
	"strconv"
	"strings"
)

// Matrix is an amino-acid substitution matrix. Symbols missing from the
// matrix score as X.
type Matrix struct {
	Name   string
	index  [256]uint8
	scores [][]float64
}

// Score returns the substitution score of residues a and b (case-insensitive).
func (m *Matrix) Score(a, b byte) float64 { return m.scores[m.index[a]][m.index[b]] }

// ParseMatrix reads an NCBI-style matrix: a header row of symbols followed by
// one row per symbol. Lines starting with # are comments.
func ParseMatrix(name, text string) (*Matrix, error) {
	var (
		header []string
		rows   [][]float64
	)
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || line[0] == '#' {
			continue
		}
		f := strings.Fields(line)
		if header == nil {
			header = f
			continue
		}
		if len(f) != len(header)+1 || f[0] != header[len(rows)] {
			return nil, fmt.Errorf("matrix %s: bad row %q", name, f[0])
		}
		row := make([]float64, len(header))
		for i, s := range f[1:] {
			v, err := strconv.Atoi(s)
			if err != nil {
				return nil, fmt.Errorf("matrix %s: row %s: %w", name, f[0], err)
			}
			row[i] = float64(v)
		}
		rows = append(rows, row)
	}
	if len(rows) != len(header) {
		return nil, fmt.Errorf("matrix %s: %d rows for %d symbols", name, len(rows), len(header))
	}

	m := &Matrix{Name: name, scores: rows}
	unknown := -1
	for i, sym := range header {
		if sym == "X" {
			unknown = i
		}
	}
	if unknown < 0 {
		return nil, fmt.Errorf("matrix %s: no X symbol", name)
	}
	for i := range m.index {
		m.index[i] = uint8(unknown)
	}
	for i, sym := range header {
		c := sym[0]
		m.index[c] = uint8(i)
		if c >= 'A' && c <= 'Z' {
			m.index[c+'a'-'A'] = uint8(i)
		}
	}
	return m, nil
}

// BLOSUM62 is the matrix the homology filter scores with by default.
var BLOSUM62 = mustParse("BLOSUM62", blosum62)

func mustParse(name, text string) *Matrix {
	m, err := ParseMatrix(name, text)
	if err != nil {
		panic(err)
	}
	return m
}

const blosum62 = `
#  Matrix made by matblas from blosum62.iij
   A  R  N  D  C  Q  E  G  H  I  L  K  M  F  P  S  T  W  Y  V  B  Z  X  *
A  4 -1 -2 -2  0 -1 -1  0 -2 -1 -1 -1 -1 -2 -1  1  0 -3 -2  0 -2 -1  0 -4
R -1  5  0 -2 -3  1  0 -2  0 -3 -2  2 -1 -3 -2 -1 -1 -3 -2 -3 -1  0 -1 -4
N -2  0  6  1 -3  0  0  0  1 -3 -3  0 -2 -3 -2  1  0 -4 -2 -3  3  0 -1 -4
D -2 -2  1  6 -3  0  2 -1 -1 -3 -4 -1 -3 -3 -1  0 -1 -4 -3 -3  4  1 -1 -4
C  0 -3 -3 -3  9 -3 -4 -3 -3 -1 -1 -3 -1 -2 -3 -1 -1 -2 -2 -1 -3 -3 -2 -4
Q -1  1  0  0 -3  5  2 -2  0 -3 -2  1  0 -3 -1  0 -1 -2 -1 -2  0  3 -1 -4
E -1  0  0  2 -4  2  5 -2  0 -3 -3  1 -2 -3 -1  0 -1 -3 -2 -2  1  4 -1 -4
G  0 -2  0 -1 -3 -2 -2  6 -2 -4 -4 -2 -3 -3 -2  0 -2 -2 -3 -3 -1 -2 -1 -4
H -2  0  1 -1 -3  0  0 -2  8 -3 -3 -1 -2 -1 -2 -1 -2 -2  2 -3  0  0 -1 -4
I -1 -3 -3 -3 -1 -3 -3 -4 -3  4  2 -3  1  0 -3 -2 -1 -3 -1  3 -3 -3 -1 -4
L -1 -2 -3 -4 -1 -2 -3 -4 -3  2  4 -2  2  0 -3 -2 -1 -2 -1  1 -4 -3 -1 -4
K -1  2  0 -1 -3  1  1 -2 -1 -3 -2  5 -1 -3 -1  0 -1 -3 -2 -2  0  1 -1 -4
M -1 -1 -2 -3 -1  0 -2 -3 -2  1  2 -1  5  0 -2 -1 -1 -1 -1  1 -3 -1 -1 -4
F -2 -3 -3 -3 -2 -3 -3 -3 -1  0  0 -3  0  6 -4 -2 -2  1  3 -1 -3 -3 -1 -4
P -1 -2 -2 -1 -3 -1 -1 -2 -2 -3 -3 -1 -2 -4  7 -1 -1 -4 -3 -2 -2 -1 -2 -4
S  1 -1  1  0 -1  0  0  0 -1 -2 -2  0 -1 -2 -1  4  1 -3 -2 -2  0  0  0 -4
T  0 -1  0 -1 -1 -1 -1 -2 -2 -1 -1 -1 -1 -2 -1  1  5 -2 -2  0 -1 -1  0 -4
W -3 -3 -4 -4 -2 -2 -3 -2 -2 -3 -2 -3 -1  1 -4 -3 -2 11  2 -3 -4 -3 -2 -4
Y -2 -2 -2 -3 -2 -1 -2 -3  2 -1 -1 -2 -1  3 -3 -2 -2  2  7 -1 -3 -2 -1 -4
V  0 -3 -3 -3 -1 -2 -2 -3 -3  3  1 -2  1 -1 -2 -2  0 -3 -1  4 -3 -2 -1 -4
B -2 -1  3  4 -3  0  1 -1  0 -3 -4  0 -3 -3 -2  0 -1 -4 -3 -3  4  1 -1 -4
Z -1  0  0  1 -3  3  4 -2  0 -3 -3  1 -1 -3 -1  0 -1 -3 -2 -2  1  4 -1 -4
X  0 -1 -1 -1 -2 -1 -1 -1 -1 -1 -1 -1 -1 -1 -2  0  0 -2 -1 -1 -1 -1 -1 -4
* -4 -4 -4 -4 -4 -4 -4 -4 -4 -4 -4 -4 -4 -4 -4 -4 -4 -4 -4 -4 -4 -4 -4  1
`
