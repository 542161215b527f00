// internal/writers/api_conv.go
package writers

import (
	"promoscan/internal/consensus"
	"promoscan/pkg/api"
)

func toAPIColumns(b consensus.Box) []api.ColumnV1 {
	out := make([]api.ColumnV1, len(b))
	for i, c := range b {
		out[i] = api.ColumnV1{A: c[0], C: c[1], G: c[2], T: c[3], N: c[4]}
	}
	return out
}

// ToAPIConsensus converts every accumulator in render order.
func ToAPIConsensus(reg *consensus.Registry) []api.ConsensusV1 {
	names := reg.Names()
	out := make([]api.ConsensusV1, 0, len(names))
	for _, n := range names {
		acc := reg.Get(n)
		s := acc.Summary()
		c := api.ConsensusV1{
			Name:          n,
			Box35:         s.Box35,
			Box10:         s.Box10,
			AverageSpacer: s.AverageSpacer,
			Matches:       s.Count,
			Box35Counts:   toAPIColumns(s.Box35Counts),
			Box10Counts:   toAPIColumns(s.Box10Counts),
			Line:          acc.String(),
		}
		for _, sp := range s.Spacers {
			c.Spacers = append(c.Spacers, api.SpacerBinV1{Spacer: sp.Spacer, Count: sp.Count})
		}
		out = append(out, c)
	}
	return out
}

// ToAPIRun converts a finished run.
func ToAPIRun(r Result) api.RunV1 {
	st := r.Stats
	return api.RunV1{
		Version:        1,
		Strategy:       string(st.Strategy),
		Workers:        st.Workers,
		Records:        r.Records,
		SkippedFiles:   r.Skipped,
		ReferenceGenes: r.References,
		Jobs:           st.Jobs,
		Comparisons:    st.Comparisons,
		Homologous:     st.Homologous,
		Matches:        st.Matches,
		FailedJobs:     st.FailedJobs,
		Alignment: api.TimingV1{
			Count:  st.Align.Count,
			MinNS:  st.Align.Min.Nanoseconds(),
			MaxNS:  st.Align.Max.Nanoseconds(),
			MeanNS: st.Align.Mean().Nanoseconds(),
		},
		ElapsedMS:   st.Elapsed.Milliseconds(),
		Fingerprint: r.Fingerprint,
		Consensus:   ToAPIConsensus(r.Registry),
	}
}
