package pipeline

import "github.com/KaramelBytes/pipeview/internal/lead"

// Normalize derives Days and Val for every record. Output order and length
// match the input; unparseable numbers become 0.
func Normalize(rows []lead.Record) []lead.Normalized {
	out := make([]lead.Normalized, len(rows))
	for i, r := range rows {
		out[i] = lead.Normalized{
			Record: r,
			Days:   lead.ToNum(r.DaysInStage),
			Val:    lead.ToNum(r.DealValue),
		}
	}
	return out
}
