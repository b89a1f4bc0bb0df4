package session

import (
	"slices"
	"strings"

	"github.com/KaramelBytes/pipeview/internal/lead"
	"github.com/KaramelBytes/pipeview/internal/pipeline"
	"go.uber.org/zap"
)

// DefaultNudgeDays is how far Nudge pushes days_in_stage.
const DefaultNudgeDays = 3

// ApplyPatch merges p over the first record with lead ID id, stamps
// last_updated with today's date and renormalizes the whole raw set.
// It returns false, changing nothing, when no record has that ID.
func (s *Session) ApplyPatch(id string, p lead.Patch) bool {
	i := s.indexOf(id)
	if i < 0 {
		return false
	}
	raw := slices.Clone(s.raw)
	rec := p.Apply(raw[i])
	rec.LastUpdated = s.Today()
	raw[i] = rec

	s.raw = raw
	s.norm = pipeline.Normalize(raw)
	s.stages = catalog(raw)
	s.log.Debug("lead updated", zap.String("lead_id", id), zap.String("stage", rec.Stage))
	return true
}

// Select marks a lead as the target of quick actions. Unknown IDs are ignored.
func (s *Session) Select(id string) bool {
	if s.indexOf(id) < 0 {
		return false
	}
	s.selected = id
	return true
}

// Selected returns the selected record, if it still exists.
func (s *Session) Selected() (lead.Record, bool) {
	if s.selected == "" {
		return lead.Record{}, false
	}
	return s.Lookup(s.selected)
}

// ClearSelection drops the selection.
func (s *Session) ClearSelection() { s.selected = "" }

func (s *Session) patchSelected(p lead.Patch) bool {
	if s.selected == "" {
		return false
	}
	return s.ApplyPatch(s.selected, p)
}

// MarkContacted moves the selected lead to the Contacted stage.
func (s *Session) MarkContacted() bool {
	return s.patchSelected(lead.Patch{Stage: lead.String(lead.StageContacted)})
}

// SaveNextAction sets the selected lead's next action. Blank text stores a dash.
func (s *Session) SaveNextAction(text string) bool {
	v := strings.TrimSpace(text)
	if v == "" {
		v = pipeline.Placeholder
	}
	return s.patchSelected(lead.Patch{NextAction: &v})
}

// Nudge adds days to the selected lead's days_in_stage.
func (s *Session) Nudge(days float64) bool {
	rec, ok := s.Selected()
	if !ok {
		return false
	}
	v := lead.FormatNum(lead.ToNum(rec.DaysInStage) + days)
	return s.ApplyPatch(rec.LeadID, lead.Patch{DaysInStage: &v})
}

// CloseLost closes the selected lead as lost and zeroes its value.
func (s *Session) CloseLost() bool {
	return s.patchSelected(lead.Patch{
		Stage:     lead.String(lead.StageClosedLost),
		DealValue: lead.String("0"),
	})
}
