package pipeline

import (
	"sort"
	"strings"

	"github.com/KaramelBytes/pipeview/internal/lead"
)

// DefaultStalledThreshold is the minimum Days for an open deal to count as stalled.
const DefaultStalledThreshold = 7

// Group is one distinct value and how often it occurred.
type Group struct {
	Value string
	Count int
}

// Metrics are the aggregates computed over a filtered set.
type Metrics struct {
	Threshold    int
	Stalled      []lead.Normalized
	TotalValue   float64
	StalledValue float64
	ByStage      []Group
	// TopDeal is nil when the filtered set is empty.
	TopDeal *lead.Normalized
}

// WorstStage returns the stalled stage with the highest count.
func (m Metrics) WorstStage() (Group, bool) {
	if len(m.ByStage) == 0 {
		return Group{}, false
	}
	return m.ByStage[0], true
}

// Aggregate computes stalled detection, totals, stage grouping and the top
// deal. Nothing is cached between calls.
func Aggregate(filtered []lead.Normalized, threshold int) Metrics {
	stalled := Stalled(filtered, threshold)
	m := Metrics{
		Threshold:    threshold,
		Stalled:      stalled,
		TotalValue:   SumVal(filtered),
		StalledValue: SumVal(stalled),
		ByStage:      GroupCount(stalled, lead.FieldStage),
	}
	if top, ok := TopDeal(filtered); ok {
		m.TopDeal = &top
	}
	return m
}

// Stalled returns open records with Days >= threshold, longest first.
// Equal Days keep their input order.
func Stalled(rows []lead.Normalized, threshold int) []lead.Normalized {
	t := float64(threshold)
	out := make([]lead.Normalized, 0, len(rows))
	for _, r := range rows {
		if r.Days >= t && !lead.IsTerminal(r.Stage) {
			out = append(out, r)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Days > out[j].Days })
	return out
}

// GroupCount counts rows per trimmed value of field, blank values counting as
// "Unknown". Groups are ordered by descending count, ties by first appearance.
func GroupCount(rows []lead.Normalized, field string) []Group {
	idx := map[string]int{}
	var groups []Group
	for _, r := range rows {
		k := strings.TrimSpace(r.Get(field))
		if k == "" {
			k = "Unknown"
		}
		i, ok := idx[k]
		if !ok {
			i = len(groups)
			idx[k] = i
			groups = append(groups, Group{Value: k})
		}
		groups[i].Count++
	}
	sort.SliceStable(groups, func(i, j int) bool { return groups[i].Count > groups[j].Count })
	return groups
}

// SumVal adds up Val.
func SumVal(rows []lead.Normalized) float64 {
	var s float64
	for _, r := range rows {
		s += r.Val
	}
	return s
}

// TopDeal returns the record with the largest Val; the earliest one wins ties.
func TopDeal(rows []lead.Normalized) (lead.Normalized, bool) {
	if len(rows) == 0 {
		return lead.Normalized{}, false
	}
	best := 0
	for i := 1; i < len(rows); i++ {
		if rows[i].Val > rows[best].Val {
			best = i
		}
	}
	return rows[best], true
}
