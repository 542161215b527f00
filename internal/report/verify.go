// internal/report/verify.go
package report

import (
	"fmt"
	"io"

	"promoscan/internal/partition"
)

// Outcome is one strategy's fingerprint in a cross-check.
type Outcome struct {
	Strategy    partition.Strategy
	Workers     int
	Fingerprint string
}

// Verify compares every outcome with the baseline fingerprint (normally the
// sequential run) and prints one pass/fail line each. It reports whether all
// of them matched.
func Verify(out io.Writer, baseline Outcome, outcomes []Outcome) (bool, error) {
	if _, err := fmt.Fprintf(out, "%s baseline %s\n", baseline.Strategy, baseline.Fingerprint); err != nil {
		return false, err
	}
	ok := true
	for _, o := range outcomes {
		verdict := "passed!"
		if o.Fingerprint != baseline.Fingerprint {
			verdict = "failed!"
			ok = false
		}
		if _, err := fmt.Fprintf(out, "%s (%d workers) %s %s\n", o.Strategy, o.Workers, o.Fingerprint, verdict); err != nil {
			return false, err
		}
	}
	if ok {
		_, err := fmt.Fprintln(out, "Direct compare passed!")
		return true, err
	}
	_, err := fmt.Fprintln(out, "Direct compare failed!")
	return false, err
}
