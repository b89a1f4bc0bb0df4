// Package export serializes a filtered lead set for download or copy.
package export

import (
	"errors"
	"fmt"
	"strings"

	"github.com/KaramelBytes/pipeview/internal/lead"
	"github.com/KaramelBytes/pipeview/internal/utils"
)

// Format names an export serialization.
type Format string

const (
	FormatCSV  Format = "csv"
	FormatJSON Format = "json"
	FormatXLSX Format = "xlsx"
)

// ErrUnknownFormat is returned for unsupported format names.
var ErrUnknownFormat = errors.New("unknown export format")

// ParseFormat accepts csv, json and xlsx (case-insensitive; "excel" is an alias of xlsx).
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "csv", "":
		return FormatCSV, nil
	case "json":
		return FormatJSON, nil
	case "xlsx", "excel":
		return FormatXLSX, nil
	}
	return "", fmt.Errorf("%w: %s", ErrUnknownFormat, s)
}

// DefaultFilename returns pipeline_export_<today>.<ext>.
func DefaultFilename(f Format, today string) string {
	return fmt.Sprintf("pipeline_export_%s.%s", today, f)
}

// Render serializes rows in the given format.
func Render(f Format, rows []lead.Normalized) ([]byte, error) {
	switch f {
	case FormatCSV:
		return []byte(CSV(rows)), nil
	case FormatJSON:
		s, err := JSON(rows)
		if err != nil {
			return nil, err
		}
		return []byte(s), nil
	case FormatXLSX:
		return XLSX(rows)
	}
	return nil, fmt.Errorf("%w: %s", ErrUnknownFormat, f)
}

// WriteFile renders rows and writes them atomically to path.
func WriteFile(path string, f Format, rows []lead.Normalized) error {
	b, err := Render(f, rows)
	if err != nil {
		return err
	}
	if err := utils.SafeWriteFile(path, b); err != nil {
		return fmt.Errorf("write export: %w", err)
	}
	return nil
}

// CSV renders the header and one line per record in lead.Fields order, joined
// by "\n" without a trailing newline. Values containing a comma, a double
// quote or a newline are quoted with inner quotes doubled.
func CSV(rows []lead.Normalized) string {
	lines := make([]string, 0, len(rows)+1)
	lines = append(lines, strings.Join(lead.Fields, ","))
	for _, r := range rows {
		vals := r.Values()
		for i, v := range vals {
			vals[i] = escapeCSV(v)
		}
		lines = append(lines, strings.Join(vals, ","))
	}
	return strings.Join(lines, "\n")
}

func escapeCSV(v string) string {
	if strings.ContainsAny(v, ",\"\n") {
		return `"` + strings.ReplaceAll(v, `"`, `""`) + `"`
	}
	return v
}

// jsonLead is the structured export shape; field order is the key order.
type jsonLead struct {
	LeadID      string  `json:"lead_id"`
	Company     string  `json:"company"`
	Stage       string  `json:"stage"`
	Owner       string  `json:"owner"`
	DaysInStage float64 `json:"days_in_stage"`
	DealValue   float64 `json:"deal_value"`
	NextAction  string  `json:"next_action"`
	LastUpdated string  `json:"last_updated"`
}

// JSON renders an indented array of records with days_in_stage and
// deal_value coerced to numbers.
func JSON(rows []lead.Normalized) (string, error) {
	out := make([]jsonLead, 0, len(rows))
	for _, r := range rows {
		out = append(out, jsonLead{
			LeadID:      r.LeadID,
			Company:     r.Company,
			Stage:       r.Stage,
			Owner:       r.Owner,
			DaysInStage: lead.ToNum(r.DaysInStage),
			DealValue:   lead.ToNum(r.DealValue),
			NextAction:  r.NextAction,
			LastUpdated: r.LastUpdated,
		})
	}
	b, err := utils.PrettyJSON(out)
	if err != nil {
		return "", err
	}
	return string(b), nil
}
