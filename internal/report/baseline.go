// internal/report/baseline.go
package report

import (
	"errors"
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/pelletier/go-toml/v2"

	"promoscan/internal/consensus"
)

// BaselineVersion is the only baseline format this build reads.
const BaselineVersion = 1

var ErrBaselineVersion = errors.New("unsupported baseline version")

// Baseline is a known-good result: one expected consensus line per
// accumulator name.
type Baseline struct {
	Version     int               `toml:"version" comment:"promoscan baseline format"`
	Strategy    string            `toml:"strategy,omitempty" comment:"strategy that produced it (informational)"`
	Fingerprint string            `toml:"fingerprint,omitempty" comment:"blake2b-256 of the text rendering"`
	Consensus   map[string]string `toml:"consensus" comment:"expected consensus line per accumulator"`
}

// NewBaseline captures reg as a baseline.
func NewBaseline(reg *consensus.Registry, strategy string) *Baseline {
	b := &Baseline{
		Version:     BaselineVersion,
		Strategy:    strategy,
		Fingerprint: Fingerprint(reg),
		Consensus:   make(map[string]string),
	}
	for _, n := range reg.Names() {
		b.Consensus[n] = reg.Get(n).String()
	}
	return b
}

// LoadBaseline reads a baseline TOML file.
func LoadBaseline(path string) (*Baseline, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	b := &Baseline{}
	if err := toml.Unmarshal(data, b); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if b.Version != BaselineVersion {
		return nil, fmt.Errorf("%s: version %d: %w", path, b.Version, ErrBaselineVersion)
	}
	return b, nil
}

// WriteBaseline writes b as TOML.
func WriteBaseline(w io.Writer, b *Baseline) error {
	data, err := toml.Marshal(b)
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}

// SaveBaseline writes b to path.
func SaveBaseline(path string, b *Baseline) error {
	fh, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := WriteBaseline(fh, b); err != nil {
		_ = fh.Close()
		return fmt.Errorf("%s: %w", path, err)
	}
	return fh.Close()
}

// Compare checks every accumulator against the baseline and prints
// "name passed!" or "name failed!" with the expected and received lines.
// Names only the baseline knows about fail with an empty received line.
// It reports whether everything passed.
func Compare(out io.Writer, b *Baseline, reg *consensus.Registry) (bool, error) {
	ok := true
	seen := make(map[string]bool, len(b.Consensus))
	check := func(name, expected, received string) error {
		if expected == received {
			_, err := fmt.Fprintf(out, "%s passed!\n", name)
			return err
		}
		ok = false
		_, err := fmt.Fprintf(out, "%s failed!\nExpected: <%s>\nReceived: <%s>\n", name, expected, received)
		return err
	}
	for _, n := range reg.Names() {
		seen[n] = true
		if err := check(n, b.Consensus[n], reg.Get(n).String()); err != nil {
			return false, err
		}
	}
	for _, n := range sortedKeys(b.Consensus) {
		if seen[n] {
			continue
		}
		if err := check(n, b.Consensus[n], ""); err != nil {
			return false, err
		}
	}
	return ok, nil
}

func sortedKeys(m map[string]string) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
