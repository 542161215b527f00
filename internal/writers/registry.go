// internal/writers/registry.go
package writers

import (
	"fmt"
	"io"
	"sort"
)

// Writer registry (format → handler). Formats register themselves in init()
// blocks of their own files.
var formats = map[string]func(w io.Writer, r Result) error{}

// Register adds or replaces a format (last wins).
func Register(format string, fn func(io.Writer, Result) error) { formats[format] = fn }

// Formats lists the registered format names, sorted.
func Formats() []string {
	out := make([]string, 0, len(formats))
	for f := range formats {
		out = append(out, f)
	}
	sort.Strings(out)
	return out
}

// Write dispatches r to the writer registered for format.
func Write(format string, w io.Writer, r Result) error {
	fn, ok := formats[format]
	if !ok {
		return fmt.Errorf("unknown output format %q (no writer registered)", format)
	}
	return fn(w, r)
}
