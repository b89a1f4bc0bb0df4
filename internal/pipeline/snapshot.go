package pipeline

import "github.com/KaramelBytes/pipeview/internal/lead"

// Snapshot is everything derived from one normalized set and one set of parameters.
type Snapshot struct {
	TotalCount int
	Params     Params
	Filtered   []lead.Normalized
	Metrics    Metrics
	Rows       []Row
}

// Compute runs filter, aggregate and project in sequence.
func Compute(norm []lead.Normalized, p Params, threshold int, opt ProjectOptions) Snapshot {
	filtered := Filter(norm, p)
	m := Aggregate(filtered, threshold)
	return Snapshot{
		TotalCount: len(norm),
		Params:     p,
		Filtered:   filtered,
		Metrics:    m,
		Rows:       Project(m.Stalled, opt),
	}
}
