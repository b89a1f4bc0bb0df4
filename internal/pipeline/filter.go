package pipeline

import (
	"strings"

	"github.com/KaramelBytes/pipeview/internal/lead"
)

// AllStages is the stage selector sentinel that matches every record.
const AllStages = "__all__"

// Params are the user-selected filters.
type Params struct {
	Query string
	Stage string
}

// DefaultParams matches everything.
func DefaultParams() Params {
	return Params{Stage: AllStages}
}

// Filter returns the records matching p, preserving input order.
func Filter(rows []lead.Normalized, p Params) []lead.Normalized {
	q := strings.ToLower(strings.TrimSpace(p.Query))
	out := make([]lead.Normalized, 0, len(rows))
	for _, r := range rows {
		if !stageMatches(r, p.Stage) || !queryMatches(r, q) {
			continue
		}
		out = append(out, r)
	}
	return out
}

func stageMatches(r lead.Normalized, stage string) bool {
	return stage == AllStages || stage == "" || r.Stage == stage
}

// q is already trimmed and lower-cased.
func queryMatches(r lead.Normalized, q string) bool {
	if q == "" {
		return true
	}
	hay := strings.Join([]string{r.LeadID, r.Company, r.Stage, r.Owner, r.NextAction}, " ")
	return strings.Contains(strings.ToLower(hay), q)
}
