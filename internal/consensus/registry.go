// internal/consensus/registry.go
package consensus

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"promoscan/internal/promoter"
	"promoscan/internal/refset"
)

// Pooled names the accumulator that receives every match.
const Pooled = refset.Pooled

var ErrUnknownName = errors.New("no accumulator with that name")

// Registry maps reference-gene names (plus Pooled) to accumulators. The set
// of names is fixed at construction, so lookups need no lock; each
// accumulator guards itself.
type Registry struct {
	accs  map[string]*Accumulator
	names []string // Pooled first, then sorted reference names
}

// NewRegistry creates one empty accumulator per reference name plus Pooled.
func NewRegistry(refNames []string) (*Registry, error) {
	r := &Registry{accs: make(map[string]*Accumulator, len(refNames)+1)}
	r.accs[Pooled] = &Accumulator{}
	for _, n := range refNames {
		if n == Pooled {
			return nil, fmt.Errorf("%q: %w", n, refset.ErrReservedName)
		}
		if _, dup := r.accs[n]; dup {
			return nil, fmt.Errorf("%q: %w", n, refset.ErrDuplicateName)
		}
		r.accs[n] = &Accumulator{}
	}
	sorted := append([]string(nil), refNames...)
	sort.Strings(sorted)
	r.names = append([]string{Pooled}, sorted...)
	return r, nil
}

// Add folds m into the named accumulator and into Pooled.
func (r *Registry) Add(name string, m promoter.Match) error {
	if name == Pooled {
		return fmt.Errorf("%q: %w", name, refset.ErrReservedName)
	}
	acc, ok := r.accs[name]
	if !ok {
		return fmt.Errorf("%q: %w", name, ErrUnknownName)
	}
	acc.AddMatch(m)
	r.accs[Pooled].AddMatch(m)
	return nil
}

// Get returns the named accumulator, or nil.
func (r *Registry) Get(name string) *Accumulator { return r.accs[name] }

// Names lists every accumulator name in render order.
func (r *Registry) Names() []string { return append([]string(nil), r.names...) }

// Merge folds every accumulator of o into the accumulator of the same name.
// Both registries must have been built from the same reference names.
func (r *Registry) Merge(o *Registry) error {
	for name, src := range o.accs {
		dst, ok := r.accs[name]
		if !ok {
			return fmt.Errorf("merge %q: %w", name, ErrUnknownName)
		}
		dst.Merge(src)
	}
	return nil
}

// Render prints one "name<consensus line>" per accumulator, Pooled first.
// Equal contents always render to the same bytes.
func (r *Registry) Render() string {
	var sb strings.Builder
	for _, n := range r.names {
		sb.WriteString(n)
		sb.WriteString(r.accs[n].String())
		sb.WriteByte('\n')
	}
	return sb.String()
}

// Matches is the total number of matches observed in the run.
func (r *Registry) Matches() int { return r.accs[Pooled].Count() }
