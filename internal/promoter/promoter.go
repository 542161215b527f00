// Package promoter finds sigma70 promoter motifs (-35 box, spacer, -10 box)
// in upstream windows.
package promoter

import (
	"math"

	"promoscan/internal/seq"
)

// BoxLen is the width of both conserved hexamer boxes.
const BoxLen = 6

// Match is the best-scoring promoter found in one window.
type Match struct {
	Box35    string  // -35 hexamer as it appears in the window, upper case
	Box10    string  // -10 hexamer
	Spacer   int     // bases between the two boxes
	Position int     // 0-based window offset of the -35 box
	Score    float64 // confidence in [0,1]
}

// Matcher returns the single best match in window, or false if nothing
// clears its threshold. Implementations must accept empty windows.
type Matcher interface {
	BestMatch(window seq.Nucleotides) (Match, bool)
}

const (
	DefaultMinConfidence = 0.7
	Consensus35          = "TTGACA"
	Consensus10          = "TATAAT"
	optimalSpacer        = 17
	spacerPenalty        = 0.02
)

// Sigma70 scores every (-35, spacer, -10) placement by base identity to the
// consensus boxes, less a small penalty per base of spacer away from 17.
type Sigma70 struct {
	Box35         string
	Box10         string
	MinSpacer     int
	MaxSpacer     int
	MinConfidence float64
}

// NewSigma70 returns the default E. coli sigma70 definition.
func NewSigma70(minConfidence float64) *Sigma70 {
	return &Sigma70{
		Box35:         Consensus35,
		Box10:         Consensus10,
		MinSpacer:     15,
		MaxSpacer:     19,
		MinConfidence: minConfidence,
	}
}

var upper [256]byte

func init() {
	for i := range upper {
		upper[i] = byte(i)
	}
	for c := 'a'; c <= 'z'; c++ {
		upper[c] = byte(c - 'a' + 'A')
	}
}

func identity(window seq.Nucleotides, at int, box string) int {
	n := 0
	for i := 0; i < len(box); i++ {
		if upper[window[at+i]] == box[i] {
			n++
		}
	}
	return n
}

func upperString(s seq.Nucleotides) string {
	b := make([]byte, len(s))
	for i := 0; i < len(s); i++ {
		b[i] = upper[s[i]]
	}
	return string(b)
}

// BestMatch scans window for the highest-scoring placement. Ties keep the
// placement nearest the gene (largest Position), then the shorter spacer.
func (m *Sigma70) BestMatch(window seq.Nucleotides) (Match, bool) {
	total := float64(len(m.Box35) + len(m.Box10))
	var (
		best  Match
		found bool
	)
	for sp := m.MinSpacer; sp <= m.MaxSpacer; sp++ {
		span := len(m.Box35) + sp + len(m.Box10)
		for p := 0; p+span <= len(window); p++ {
			id := identity(window, p, m.Box35) + identity(window, p+len(m.Box35)+sp, m.Box10)
			score := float64(id)/total - spacerPenalty*math.Abs(float64(sp-optimalSpacer))
			if score < m.MinConfidence {
				continue
			}
			if found && !better(score, p, sp, best) {
				continue
			}
			best = Match{Spacer: sp, Position: p, Score: score}
			found = true
		}
	}
	if !found {
		return Match{}, false
	}
	p10 := best.Position + len(m.Box35) + best.Spacer
	best.Box35 = upperString(window[best.Position : best.Position+len(m.Box35)])
	best.Box10 = upperString(window[p10 : p10+len(m.Box10)])
	return best, true
}

func better(score float64, pos, spacer int, cur Match) bool {
	if score != cur.Score {
		return score > cur.Score
	}
	if pos != cur.Position {
		return pos > cur.Position
	}
	return spacer < cur.Spacer
}
