// internal/genbank/location.go
package genbank

import (
	"fmt"
	"strconv"
	"strings"

	"promoscan/internal/seq"
)

// parseLocation reduces a feature location to its outer span and strand.
// Handles single bases, ranges, complement(), join()/order() and the partial
// markers < and >. Remote references (ACC:1..2) are rejected.
func parseLocation(loc string) (start, end int, strand seq.Strand, err error) {
	s := strings.ReplaceAll(loc, " ", "")
	if s == "" {
		return 0, 0, 0, fmt.Errorf("%w: empty", ErrBadLocation)
	}
	strand = seq.Forward
	if strings.Contains(s, "complement(") {
		strand = seq.Reverse
	}
	if strings.Contains(s, ":") {
		return 0, 0, 0, fmt.Errorf("%w: remote reference %q", ErrBadLocation, loc)
	}
	s = strings.NewReplacer(
		"complement(", "",
		"join(", "",
		"order(", "",
		")", "",
		"<", "",
		">", "",
		"^", "..",
	).Replace(s)

	start, end = -1, -1
	for _, part := range strings.Split(s, ",") {
		for _, num := range strings.Split(part, "..") {
			v, convErr := strconv.Atoi(num)
			if convErr != nil || v < 1 {
				return 0, 0, 0, fmt.Errorf("%w: %q", ErrBadLocation, loc)
			}
			if start < 0 || v < start {
				start = v
			}
			if v > end {
				end = v
			}
		}
	}
	return start, end, strand, nil
}
