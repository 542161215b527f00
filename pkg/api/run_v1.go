// pkg/api/run_v1.go
package api

// RunV1 is the stable JSON document written by `promoscan -o json`.
type RunV1 struct {
	Version        int           `json:"version"` // always 1
	Strategy       string        `json:"strategy"`
	Workers        int           `json:"workers"`
	Records        int           `json:"records"`
	SkippedFiles   []string      `json:"skipped_files,omitempty"`
	ReferenceGenes int           `json:"reference_genes"`
	Jobs           int           `json:"jobs"`
	Comparisons    int           `json:"comparisons"`
	Homologous     int           `json:"homologous"`
	Matches        int           `json:"matches"`
	FailedJobs     int           `json:"failed_jobs,omitempty"`
	Alignment      TimingV1      `json:"alignment"`
	ElapsedMS      int64         `json:"elapsed_ms"`
	Fingerprint    string        `json:"fingerprint"` // blake2b-256 of the text rendering
	Consensus      []ConsensusV1 `json:"consensus"`   // "all" first, then by name
}

// TimingV1 summarises homology-check durations in nanoseconds.
type TimingV1 struct {
	Count  int   `json:"count"`
	MinNS  int64 `json:"min_ns"`
	MaxNS  int64 `json:"max_ns"`
	MeanNS int64 `json:"mean_ns"`
}
