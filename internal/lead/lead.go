package lead

import (
	"math"
	"strconv"
	"strings"
	"time"
)

// Field names as they appear in delimited headers and exports.
const (
	FieldLeadID      = "lead_id"
	FieldCompany     = "company"
	FieldStage       = "stage"
	FieldOwner       = "owner"
	FieldDaysInStage = "days_in_stage"
	FieldDealValue   = "deal_value"
	FieldNextAction  = "next_action"
	FieldLastUpdated = "last_updated"
)

// Fields is the fixed column order used by the delimited and structured exports.
var Fields = []string{
	FieldLeadID,
	FieldCompany,
	FieldStage,
	FieldOwner,
	FieldDaysInStage,
	FieldDealValue,
	FieldNextAction,
	FieldLastUpdated,
}

// Terminal stages never count as stalled.
const (
	StageClosedWon  = "Closed Won"
	StageClosedLost = "Closed Lost"
	StageContacted  = "Contacted"
)

// IsTerminal reports whether stage is Closed Won or Closed Lost.
func IsTerminal(stage string) bool {
	return stage == StageClosedWon || stage == StageClosedLost
}

// Record is an ingested lead. Every field is always present; missing input
// columns are the empty string.
type Record struct {
	LeadID      string
	Company     string
	Stage       string
	Owner       string
	DaysInStage string
	DealValue   string
	NextAction  string
	LastUpdated string
}

// FromMap builds a Record from a header-keyed row. Unknown keys are dropped.
func FromMap(m map[string]string) Record {
	return Record{
		LeadID:      m[FieldLeadID],
		Company:     m[FieldCompany],
		Stage:       m[FieldStage],
		Owner:       m[FieldOwner],
		DaysInStage: m[FieldDaysInStage],
		DealValue:   m[FieldDealValue],
		NextAction:  m[FieldNextAction],
		LastUpdated: m[FieldLastUpdated],
	}
}

// Get returns the value of the named field, or "" for unknown names.
func (r Record) Get(field string) string {
	switch field {
	case FieldLeadID:
		return r.LeadID
	case FieldCompany:
		return r.Company
	case FieldStage:
		return r.Stage
	case FieldOwner:
		return r.Owner
	case FieldDaysInStage:
		return r.DaysInStage
	case FieldDealValue:
		return r.DealValue
	case FieldNextAction:
		return r.NextAction
	case FieldLastUpdated:
		return r.LastUpdated
	}
	return ""
}

// Values returns the field values in Fields order.
func (r Record) Values() []string {
	out := make([]string, len(Fields))
	for i, f := range Fields {
		out[i] = r.Get(f)
	}
	return out
}

// Normalized is a Record plus the numeric fields derived from it.
type Normalized struct {
	Record
	Days float64
	Val  float64
}

// Patch is a partial update. Nil fields are left unchanged.
type Patch struct {
	Company     *string
	Stage       *string
	Owner       *string
	DaysInStage *string
	DealValue   *string
	NextAction  *string
	LastUpdated *string
}

// Empty reports whether the patch sets no field.
func (p Patch) Empty() bool {
	return p.Company == nil && p.Stage == nil && p.Owner == nil && p.DaysInStage == nil &&
		p.DealValue == nil && p.NextAction == nil && p.LastUpdated == nil
}

// Apply returns r with the patch merged over it. The lead ID is identity and
// cannot be patched.
func (p Patch) Apply(r Record) Record {
	set := func(dst *string, src *string) {
		if src != nil {
			*dst = *src
		}
	}
	set(&r.Company, p.Company)
	set(&r.Stage, p.Stage)
	set(&r.Owner, p.Owner)
	set(&r.DaysInStage, p.DaysInStage)
	set(&r.DealValue, p.DealValue)
	set(&r.NextAction, p.NextAction)
	set(&r.LastUpdated, p.LastUpdated)
	return r
}

// String is a small helper for building patches.
func String(s string) *string { return &s }

// ToNum parses s as a decimal number. Anything that does not parse to a
// finite value is 0, including Go-only literal forms such as digit
// separators ("1_000") and hex ("0x10", "0x1p4").
func ToNum(s string) float64 {
	s = strings.TrimSpace(s)
	if s == "" || !isDecimal(s) {
		return 0
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return f
}

func isDecimal(s string) bool {
	if strings.ContainsRune(s, '_') {
		return false
	}
	u := strings.TrimLeft(s, "+-")
	return !strings.HasPrefix(u, "0x") && !strings.HasPrefix(u, "0X")
}

// FormatNum renders a coerced number the shortest way that round-trips.
func FormatNum(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// Today returns t's UTC calendar date in ISO 8601 form.
func Today(t time.Time) string {
	return t.UTC().Format("2006-01-02")
}
