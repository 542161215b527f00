// internal/writers/result.go
package writers

import (
	"promoscan/internal/consensus"
	"promoscan/internal/pipeline"
)

// Result is everything a writer may report about one run.
type Result struct {
	Registry    *consensus.Registry
	Stats       pipeline.Stats
	Records     int      // genome records analysed
	Skipped     []string // files that failed to ingest
	References  int
	Fingerprint string
}
