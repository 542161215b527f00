package integration

import (
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const (
	homolog   = "MKRISTTITTTITITTGNGAGWWCH"
	unrelated = "PPPPPPPPPPPPPPPPPPPP"
	site      = "TTGACA" + "GCGCGCGCGCGCGCGCG" + "TATAAT"
)

type cds struct {
	name    string
	start   int // 1-based
	end     int
	reverse bool
	peptide string
}

func feat(key, loc string) string { return fmt.Sprintf("     %-16s%s\n", key, loc) }
func qual(text string) string      { return strings.Repeat(" ", 21) + text + "\n" }

// genbank renders a minimal flat-file record.
func genbank(id, nt string, genes []cds) string {
	var b strings.Builder
	fmt.Fprintf(&b, "LOCUS       %-24s %d bp    DNA     linear   BCT 01-JAN-2020\n", id, len(nt))
	b.WriteString("FEATURES             Location/Qualifiers\n")
	b.WriteString(feat("source", fmt.Sprintf("1..%d", len(nt))))
	for _, g := range genes {
		loc := fmt.Sprintf("%d..%d", g.start, g.end)
		if g.reverse {
			loc = "complement(" + loc + ")"
		}
		b.WriteString(feat("CDS", loc))
		b.WriteString(qual(fmt.Sprintf("/gene=%q", g.name)))
		b.WriteString(qual(fmt.Sprintf("/translation=%q", g.peptide)))
	}
	b.WriteString("ORIGIN\n")
	for i := 0; i < len(nt); i += 60 {
		end := min(i+60, len(nt))
		fmt.Fprintf(&b, "%9d", i+1)
		for j := i; j < end; j += 10 {
			b.WriteString(" " + strings.ToLower(nt[j:min(j+10, end)]))
		}
		b.WriteString("\n")
	}
	b.WriteString("//\n")
	return b.String()
}

func complement(s string) string {
	r := map[byte]byte{'A': 'T', 'T': 'A', 'C': 'G', 'G': 'C'}
	out := make([]byte, len(s))
	for i := range s {
		out[len(s)-1-i] = r[s[i]]
	}
	return string(out)
}

// corpus writes n GenBank files under dir/genomes and a reference list, and
// returns (references path, genomes dir). Each record carries a forward and
// a reverse homolog behind a canonical promoter plus an unrelated gene.
func corpus(t *testing.T, dir string, n int) (string, string) {
	t.Helper()
	rng := rand.New(rand.NewSource(42))
	gdir := filepath.Join(dir, "genomes")
	if err := os.MkdirAll(filepath.Join(gdir, "nested"), 0o755); err != nil {
		t.Fatal(err)
	}
	random := func(k int) string {
		b := make([]byte, k)
		for i := range b {
			b[i] = "ACGT"[rng.Intn(4)]
		}
		return string(b)
	}
	for r := 0; r < n; r++ {
		// [pad][site][gap][fwd gene 60][pad][rev gene 60][gap][rc site][pad]
		pad := 20 + rng.Intn(40)
		gap := 5 + r%4
		var nt strings.Builder
		nt.WriteString(random(pad))
		nt.WriteString(site)
		nt.WriteString(random(gap))
		fwdStart := nt.Len() + 1
		nt.WriteString(random(60))
		nt.WriteString(random(80))
		revStart := nt.Len() + 1
		nt.WriteString(random(60))
		revEnd := nt.Len()
		nt.WriteString(random(gap))
		nt.WriteString(complement(site))
		nt.WriteString(random(pad))
		otherStart := nt.Len() + 1
		nt.WriteString(random(90))

		genes := []cds{
			{name: "fwd", start: fwdStart, end: fwdStart + 59, peptide: homolog},
			{name: "rev", start: revStart, end: revEnd, reverse: true, peptide: homolog},
			{name: "other", start: otherStart, end: otherStart + 89, peptide: unrelated},
		}
		sub := gdir
		if r%3 == 2 {
			sub = filepath.Join(gdir, "nested")
		}
		id := fmt.Sprintf("REC%03d", r)
		write(t, filepath.Join(sub, id+".gbk"), genbank(id, nt.String(), genes))
	}
	refs := write(t, filepath.Join(dir, "referenceGenes.list"),
		"fixA\n"+homolog+"\ncaiF\n"+unrelated+"\nyaaY\nWWWWWWWWWW\n")
	return refs, gdir
}

func write(t *testing.T, fn, data string) string {
	t.Helper()
	if err := os.WriteFile(fn, []byte(data), 0o644); err != nil {
		t.Fatalf("write %s: %v", fn, err)
	}
	return fn
}
