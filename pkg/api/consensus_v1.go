// pkg/api/consensus_v1.go
package api

// ConsensusV1 is the stable JSON schema for one accumulator.
// Keep fields, names, and types stable. Add new fields only with ",omitempty".
type ConsensusV1 struct {
	Name          string        `json:"name"`
	Box35         string        `json:"box35"` // dominant symbol per column, "-" if unobserved
	Box10         string        `json:"box10"`
	AverageSpacer float64       `json:"average_spacer"`
	Matches       int           `json:"matches"`
	Box35Counts   []ColumnV1    `json:"box35_counts"`
	Box10Counts   []ColumnV1    `json:"box10_counts"`
	Spacers       []SpacerBinV1 `json:"spacers,omitempty"`
	Line          string        `json:"line"` // historical one-line rendering
}

// ColumnV1 counts the symbols observed in one box column.
type ColumnV1 struct {
	A int `json:"A"`
	C int `json:"C"`
	G int `json:"G"`
	T int `json:"T"`
	N int `json:"N,omitempty"`
}

// SpacerBinV1 is one spacer-length histogram bin.
type SpacerBinV1 struct {
	Spacer int `json:"spacer"`
	Count  int `json:"count"`
}
