// internal/writers/text.go
package writers

import (
	"io"
)

func init() { Register("text", WriteText) }

// WriteText prints one "name Consensus: ..." line per accumulator, the same
// lines the baseline files store.
func WriteText(w io.Writer, r Result) error {
	_, err := io.WriteString(w, r.Registry.Render())
	return err
}
