package pipeline

import (
	"math"

	"github.com/KaramelBytes/pipeview/internal/lead"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// DefaultPageSize bounds the projected table.
const DefaultPageSize = 25

// Placeholder is shown for empty cells.
const Placeholder = "—"

// Display column labels, in table order.
const (
	ColLead       = "Lead"
	ColCompany    = "Company"
	ColStage      = "Stage"
	ColDays       = "Days in Stage"
	ColValue      = "Value"
	ColOwner      = "Owner"
	ColNextAction = "Next Action"
	ColUpdated    = "Updated"
)

// Columns is the fixed display column order.
var Columns = []string{ColLead, ColCompany, ColStage, ColDays, ColValue, ColOwner, ColNextAction, ColUpdated}

// Row is a display-ready table row.
type Row struct {
	Cells map[string]string
	// Source is the record the row was built from.
	Source lead.Normalized
}

// Values returns the cells in Columns order.
func (r Row) Values() []string {
	out := make([]string, len(Columns))
	for i, c := range Columns {
		out[i] = r.Cells[c]
	}
	return out
}

// ProjectOptions tune projection.
type ProjectOptions struct {
	PageSize int
	Currency string
}

// Project formats rows for display and keeps the first PageSize of them.
// The input order is preserved.
func Project(rows []lead.Normalized, opt ProjectOptions) []Row {
	page := opt.PageSize
	if page <= 0 {
		page = DefaultPageSize
	}
	if len(rows) > page {
		rows = rows[:page]
	}
	out := make([]Row, 0, len(rows))
	for _, r := range rows {
		cells := map[string]string{
			ColLead:       r.LeadID,
			ColCompany:    r.Company,
			ColStage:      r.Stage,
			ColDays:       lead.FormatNum(r.Days),
			ColValue:      MoneyIn(opt.Currency, r.Val),
			ColOwner:      r.Owner,
			ColNextAction: r.NextAction,
			ColUpdated:    r.LastUpdated,
		}
		for k, v := range cells {
			if v == "" {
				cells[k] = Placeholder
			}
		}
		out = append(out, Row{Cells: cells, Source: r})
	}
	return out
}

var printer = message.NewPrinter(language.English)

// Money renders v as dollars rounded to the nearest whole unit.
func Money(v float64) string { return MoneyIn("$", v) }

// MoneyIn renders v rounded half-up with grouped thousands behind symbol.
// An empty symbol means "$".
func MoneyIn(symbol string, v float64) string {
	if symbol == "" {
		symbol = "$"
	}
	return symbol + printer.Sprintf("%.0f", math.Floor(v+0.5))
}
