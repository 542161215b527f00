// internal/refset/loader.go
package refset

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"promoscan/internal/seq"
)

// Pooled is the accumulator name that collects every match of a run. No
// reference gene may use it.
const Pooled = "all"

var (
	ErrReservedName  = errors.New("reference name is reserved")
	ErrDuplicateName = errors.New("duplicate reference name")
	ErrMissingSeq    = errors.New("reference name without sequence")
)

// Load reads a reference list: alternating name and peptide lines.
func Load(path string) ([]seq.Gene, error) {
	fh, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = fh.Close() }()

	genes, err := Read(fh)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return genes, nil
}

// Read parses a reference list from r. Reference genes are unpositioned
// (Location 0). Blank lines after the last pair are ignored.
func Read(r io.Reader) ([]seq.Gene, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), 16*1024*1024)

	var (
		list        []seq.Gene
		seen        = map[string]struct{}{}
		ln          int
		pending     string
		havePending bool
	)
	for sc.Scan() {
		ln++
		line := strings.TrimRight(sc.Text(), "\r")
		if !havePending {
			name := strings.TrimSpace(line)
			if name == "" {
				continue
			}
			if name == Pooled {
				return nil, fmt.Errorf("line %d: %q: %w", ln, name, ErrReservedName)
			}
			if _, dup := seen[name]; dup {
				return nil, fmt.Errorf("line %d: %q: %w", ln, name, ErrDuplicateName)
			}
			seen[name] = struct{}{}
			pending, havePending = name, true
			continue
		}
		pep := strings.ToUpper(strings.TrimSpace(line))
		if pep == "" {
			return nil, fmt.Errorf("line %d: %q: %w", ln, pending, ErrMissingSeq)
		}
		list = append(list, seq.Gene{Name: pending, Peptide: seq.Peptide(pep)})
		havePending = false
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	if havePending {
		return nil, fmt.Errorf("line %d: %q: %w", ln, pending, ErrMissingSeq)
	}
	return list, nil
}

// Names returns the gene names in file order.
func Names(genes []seq.Gene) []string {
	out := make([]string, len(genes))
	for i, g := range genes {
		out[i] = g.Name
	}
	return out
}
