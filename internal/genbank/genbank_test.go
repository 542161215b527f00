package genbank

import (
	"compress/gzip"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"promoscan/internal/seq"
)

func feat(key, loc string) string { return fmt.Sprintf("     %-16s%s\n", key, loc) }
func qual(text string) string      { return strings.Repeat(" ", qualifierCol) + text + "\n" }

// 60 bp record: one forward CDS, one reverse CDS, one CDS without translation.
func sampleRecord() string {
	var b strings.Builder
	b.WriteString("LOCUS       TEST001                   60 bp    DNA     linear   BCT 01-JAN-2020\n")
	b.WriteString("DEFINITION  synthetic test record.\n")
	b.WriteString("FEATURES             Location/Qualifiers\n")
	b.WriteString(feat("source", "1..60"))
	b.WriteString(qual(`/organism="Escherichia coli"`))
	b.WriteString(feat("gene", "21..32"))
	b.WriteString(qual(`/gene="fwdA"`))
	b.WriteString(feat("CDS", "21..32"))
	b.WriteString(qual(`/gene="fwdA"`))
	b.WriteString(qual(`/note="first line`))
	b.WriteString(qual(`second line"`))
	b.WriteString(qual(`/translation="MKV`))
	b.WriteString(qual(`LA"`))
	b.WriteString(feat("CDS", "complement(5..16)"))
	b.WriteString(qual(`/locus_tag="b0002"`))
	b.WriteString(qual(`/translation="MRT"`))
	b.WriteString(feat("CDS", "join(40..45,"))
	b.WriteString(qual("50..55)"))
	b.WriteString(qual(`/pseudo`))
	b.WriteString("ORIGIN\n")
	b.WriteString("        1 acgtacgtac gtacgtacgt aaaaccccgg ggttttacgt acgtacgtac gtacgtacgt\n")
	b.WriteString("//\n")
	return b.String()
}

func TestParseRecord(t *testing.T) {
	rec, err := Parse(strings.NewReader(sampleRecord()))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if rec.ID != "TEST001" {
		t.Fatalf("id: %q", rec.ID)
	}
	if len(rec.Nucleotides) != 60 || !strings.HasPrefix(string(rec.Nucleotides), "acgtacgtac") {
		t.Fatalf("sequence: len=%d %q", len(rec.Nucleotides), rec.Nucleotides)
	}
	if len(rec.Genes) != 2 {
		t.Fatalf("want 2 genes, got %+v", rec.Genes)
	}
	f, r := rec.Genes[0], rec.Genes[1]
	if f.Name != "fwdA" || f.Strand != seq.Forward || f.Location != 21 || f.Peptide != "MKVLA" {
		t.Fatalf("forward gene: %+v", f)
	}
	// reverse genes are positioned in reverse-strand coordinates
	if r.Name != "b0002" || r.Strand != seq.Reverse || r.Location != 60-16+1 || r.Peptide != "MRT" {
		t.Fatalf("reverse gene: %+v", r)
	}
}

func TestParseMissingOrigin(t *testing.T) {
	in := "LOCUS       X 10 bp\nFEATURES             Location/Qualifiers\n//\n"
	if _, err := Parse(strings.NewReader(in)); !errors.Is(err, ErrNoSequence) {
		t.Fatalf("want ErrNoSequence, got %v", err)
	}
}

func TestParseGeneOutsideRecord(t *testing.T) {
	in := strings.Replace(sampleRecord(), "complement(5..16)", "complement(5..96)", 1)
	if _, err := Parse(strings.NewReader(in)); err == nil {
		t.Fatalf("expected error for a gene beyond the sequence")
	}
}

func TestParseLocation(t *testing.T) {
	cases := []struct {
		in         string
		start, end int
		strand     seq.Strand
	}{
		{"100..200", 100, 200, seq.Forward},
		{"<1..>50", 1, 50, seq.Forward},
		{"complement(30..60)", 30, 60, seq.Reverse},
		{"join(10..20,40..55)", 10, 55, seq.Forward},
		{"complement(join(5..9, 12..30))", 5, 30, seq.Reverse},
		{"join(complement(40..50),complement(1..10))", 1, 50, seq.Reverse},
		{"77", 77, 77, seq.Forward},
		{"12^13", 12, 13, seq.Forward},
	}
	for _, c := range cases {
		s, e, st, err := parseLocation(c.in)
		if err != nil {
			t.Fatalf("%q: %v", c.in, err)
		}
		if s != c.start || e != c.end || st != c.strand {
			t.Fatalf("%q: got %d..%d %s", c.in, s, e, st)
		}
	}
	for _, bad := range []string{"", "abc..10", "J00194.1:100..202", "0..5"} {
		if _, _, _, err := parseLocation(bad); !errors.Is(err, ErrBadLocation) {
			t.Fatalf("%q: want ErrBadLocation, got %v", bad, err)
		}
	}
}

func TestParseFileGzip(t *testing.T) {
	// no .gz suffix: detection is by magic number
	fn := filepath.Join(t.TempDir(), "record")
	fh, err := os.Create(fn)
	if err != nil {
		t.Fatal(err)
	}
	gw := gzip.NewWriter(fh)
	if _, err := gw.Write([]byte(sampleRecord())); err != nil {
		t.Fatal(err)
	}
	_ = gw.Close()
	_ = fh.Close()

	rec, err := ParseFile(context.Background(), fn)
	if err != nil {
		t.Fatalf("parse gz: %v", err)
	}
	if rec.Source != fn || len(rec.Genes) != 2 {
		t.Fatalf("gz record: source=%q genes=%d", rec.Source, len(rec.Genes))
	}
}

func TestDiscoverRecursive(t *testing.T) {
	dir := t.TempDir()
	sub := filepath.Join(dir, "b", "c")
	if err := os.MkdirAll(sub, 0o755); err != nil {
		t.Fatal(err)
	}
	for _, p := range []string{filepath.Join(dir, "a.gbk"), filepath.Join(dir, "b", "x"), filepath.Join(sub, "y.txt")} {
		if err := os.WriteFile(p, []byte("x"), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	got, err := Discover(dir)
	if err != nil {
		t.Fatalf("discover: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("want 3 files, got %v", got)
	}
	if filepath.Base(got[0]) != "a.gbk" {
		t.Fatalf("lexical order expected, got %v", got)
	}
}

func TestIngestSkipsBadFiles(t *testing.T) {
	dir := t.TempDir()
	good := filepath.Join(dir, "good.gbk")
	bad := filepath.Join(dir, "bad.gbk")
	if err := os.WriteFile(good, []byte(sampleRecord()), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(bad, []byte("LOCUS nothing here\n//\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	paths := []string{bad, good, filepath.Join(dir, "missing.gbk")}
	res := Ingest(context.Background(), paths, 4)
	if len(res) != 3 {
		t.Fatalf("want one result per path, got %d", len(res))
	}
	if res[0].OK() || !res[1].OK() || res[2].OK() {
		t.Fatalf("unexpected outcomes: %v / %v / %v", res[0].Err, res[1].Err, res[2].Err)
	}
	recs := Records(res)
	if len(recs) != 1 || recs[0].Source != good {
		t.Fatalf("only the good record should survive, got %d", len(recs))
	}
}

func TestIngestCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	res := Ingest(ctx, []string{"a", "b"}, 1)
	for _, r := range res {
		if !errors.Is(r.Err, context.Canceled) {
			t.Fatalf("want context.Canceled, got %v", r.Err)
		}
	}
}
