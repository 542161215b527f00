// internal/genbank/parse.go
package genbank

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"promoscan/internal/seq"
)

var (
	ErrNoSequence  = errors.New("genbank: record has no ORIGIN sequence")
	ErrBadLocation = errors.New("genbank: bad feature location")
)

const qualifierCol = 21

type feature struct {
	key      string
	location string
	quals    map[string]string
	lastQual string
}

func (f *feature) addQualifier(text string) {
	text = strings.TrimPrefix(text, "/")
	name, val, _ := strings.Cut(text, "=")
	if _, dup := f.quals[name]; dup {
		// keep the first value; later duplicates are ignored
		f.lastQual = ""
		return
	}
	f.quals[name] = val
	f.lastQual = name
}

func (f *feature) continueQualifier(text string) {
	if f.lastQual == "" {
		return
	}
	sep := " "
	if f.lastQual == "translation" {
		sep = ""
	}
	f.quals[f.lastQual] += sep + text
}

func (f *feature) qualifier(name string) string {
	return strings.Trim(f.quals[name], `"`)
}

// ParseFile reads one GenBank record from path (plain or gzip).
// Cancellation is checked between lines.
func ParseFile(ctx context.Context, path string) (seq.GenomeRecord, error) {
	rc, err := openReader(path)
	if err != nil {
		return seq.GenomeRecord{}, err
	}
	defer func() { _ = rc.Close() }()

	rec, err := parse(ctx, rc)
	if err != nil {
		return seq.GenomeRecord{}, fmt.Errorf("%s: %w", path, err)
	}
	rec.Source = path
	return rec, nil
}

// Parse reads the first GenBank record from r.
func Parse(r io.Reader) (seq.GenomeRecord, error) {
	return parse(context.Background(), r)
}

func parse(ctx context.Context, r io.Reader) (seq.GenomeRecord, error) {
	sc := bufio.NewScanner(r)
	const maxLine = 16 * 1024 * 1024
	sc.Buffer(make([]byte, 64*1024), maxLine)

	var (
		rec        seq.GenomeRecord
		features   []*feature
		cur        *feature
		inFeatures bool
		inOrigin   bool
		sawOrigin  bool
		inLocation bool
		nt         strings.Builder
		ln         int
	)

	for sc.Scan() {
		select {
		case <-ctx.Done():
			return rec, ctx.Err()
		default:
		}
		ln++
		line := strings.TrimRight(sc.Text(), "\r")

		if strings.HasPrefix(line, "//") {
			break
		}
		if inOrigin {
			for i := 0; i < len(line); i++ {
				c := line[i]
				if (c >= 'A' && c <= 'Z') || (c >= 'a' && c <= 'z') {
					nt.WriteByte(c)
				}
			}
			continue
		}
		if line == "" {
			continue
		}

		// top-level keyword
		if line[0] != ' ' {
			kw, rest, _ := strings.Cut(line, " ")
			inFeatures = kw == "FEATURES"
			cur = nil
			switch kw {
			case "LOCUS":
				if f := strings.Fields(rest); len(f) > 0 {
					rec.ID = f[0]
				}
			case "ORIGIN":
				inOrigin, sawOrigin = true, true
			}
			continue
		}
		if !inFeatures {
			continue
		}

		// feature key line: 5 spaces, key, location at column 21
		if len(line) > 5 && strings.HasPrefix(line, "     ") && line[5] != ' ' {
			key, loc := line, ""
			if len(line) > qualifierCol {
				key, loc = line[:qualifierCol], line[qualifierCol:]
			}
			cur = &feature{key: strings.TrimSpace(key), location: strings.TrimSpace(loc), quals: map[string]string{}}
			features = append(features, cur)
			inLocation = true
			continue
		}
		if cur == nil {
			return rec, fmt.Errorf("line %d: qualifier outside a feature", ln)
		}
		text := strings.TrimSpace(line)
		switch {
		case strings.HasPrefix(text, "/"):
			inLocation = false
			cur.addQualifier(text)
		case inLocation:
			cur.location += text
		default:
			cur.continueQualifier(text)
		}
	}
	if err := sc.Err(); err != nil {
		return rec, fmt.Errorf("genbank scan: %w", err)
	}
	if !sawOrigin || nt.Len() == 0 {
		return rec, ErrNoSequence
	}
	rec.Nucleotides = seq.Nucleotides(nt.String())

	n := len(rec.Nucleotides)
	for i, f := range features {
		if f.key != "CDS" {
			continue
		}
		tr := strings.ReplaceAll(f.qualifier("translation"), " ", "")
		if tr == "" {
			continue
		}
		start, end, strand, err := parseLocation(f.location)
		if err != nil {
			return rec, fmt.Errorf("feature %d: %w", i, err)
		}
		g := seq.Gene{Name: geneName(f, i), Strand: strand, Peptide: seq.Peptide(tr)}
		if strand == seq.Forward {
			g.Location = start
		} else {
			g.Location = seq.ReverseLocation(n, end)
		}
		rec.Genes = append(rec.Genes, g)
	}
	if err := rec.Validate(); err != nil {
		return rec, err
	}
	return rec, nil
}

func geneName(f *feature, idx int) string {
	for _, q := range []string{"gene", "locus_tag", "protein_id"} {
		if v := f.qualifier(q); v != "" {
			return v
		}
	}
	return fmt.Sprintf("cds%d", idx)
}
