// Package report renders computed snapshots as compact Markdown for the terminal.
package report

import (
	"fmt"
	"strings"

	"github.com/KaramelBytes/pipeview/internal/lead"
	"github.com/KaramelBytes/pipeview/internal/pipeline"
)

// Options control rendering.
type Options struct {
	AsOf     string
	Currency string
	Demo     bool
	// Notice is an extra line shown under the header, e.g. a load fallback.
	Notice string
}

// Markdown renders the summary, stage breakdown and stalled table.
func Markdown(s pipeline.Snapshot, opt Options) string {
	var b strings.Builder
	m := s.Metrics
	money := func(v float64) string { return pipeline.MoneyIn(opt.Currency, v) }

	b.WriteString("[PIPELINE SNAPSHOT]\n")
	if opt.AsOf != "" {
		b.WriteString(fmt.Sprintf("As of: %s\n", opt.AsOf))
	}
	if opt.Demo {
		b.WriteString("Data: synthetic (demo mode)\n")
	}
	if opt.Notice != "" {
		b.WriteString(fmt.Sprintf("Note: %s\n", opt.Notice))
	}
	b.WriteString(fmt.Sprintf("Leads: %d\n", s.TotalCount))
	b.WriteString(fmt.Sprintf("Stalled: %d\n", len(m.Stalled)))
	b.WriteString(fmt.Sprintf("Showing: %d (%d stalled)\n", len(s.Filtered), len(m.Stalled)))
	b.WriteString(fmt.Sprintf("Total value: %s\n", money(m.TotalValue)))
	b.WriteString(fmt.Sprintf("Stalled value: %s\n", money(m.StalledValue)))
	if g, ok := m.WorstStage(); ok {
		b.WriteString(fmt.Sprintf("Worst stage: %s (%d)\n", g.Value, g.Count))
	} else {
		b.WriteString("Worst stage: " + pipeline.Placeholder + "\n")
	}
	if m.TopDeal != nil {
		b.WriteString(fmt.Sprintf("Top deal: %s (%s)\n", m.TopDeal.Company, money(m.TopDeal.Val)))
	} else {
		b.WriteString("Top deal: " + pipeline.Placeholder + "\n")
	}
	b.WriteString(fmt.Sprintf("Filters: %s\n", describeParams(s.Params, m.Threshold)))

	if len(m.ByStage) > 0 {
		b.WriteString("\n[STALLED BY STAGE]\n")
		for _, g := range m.ByStage {
			b.WriteString(fmt.Sprintf("- %s: %d\n", g.Value, g.Count))
		}
	}

	b.WriteString("\n[STALLED DEALS]\n")
	if len(s.Rows) == 0 {
		b.WriteString("(none)\n")
		return b.String()
	}
	writeRow(&b, pipeline.Columns)
	seps := make([]string, len(pipeline.Columns))
	for i := range seps {
		seps[i] = "---"
	}
	writeRow(&b, seps)
	for _, r := range s.Rows {
		writeRow(&b, r.Values())
	}
	if n := len(m.Stalled); n > len(s.Rows) {
		b.WriteString(fmt.Sprintf("\n(showing first %d of %d stalled)\n", len(s.Rows), n))
	}
	return b.String()
}

func describeParams(p pipeline.Params, threshold int) string {
	stage := p.Stage
	if stage == "" || stage == pipeline.AllStages {
		stage = "All"
	}
	q := strings.TrimSpace(p.Query)
	if q == "" {
		return fmt.Sprintf("stage=%s, stalled at %dd+", stage, threshold)
	}
	return fmt.Sprintf("search=%q, stage=%s, stalled at %dd+", q, stage, threshold)
}

func writeRow(b *strings.Builder, cells []string) {
	b.WriteString("| ")
	for i, c := range cells {
		if i > 0 {
			b.WriteString(" | ")
		}
		b.WriteString(safeVal(c))
	}
	b.WriteString(" |\n")
}

func safeVal(s string) string { return strings.ReplaceAll(strings.ReplaceAll(s, "\n", " "), "|", "/") }

// Detail renders a single lead the way the deal drawer shows it.
func Detail(r lead.Record, currency string) string {
	dash := func(s string) string {
		if s == "" {
			return pipeline.Placeholder
		}
		return s
	}
	title := r.Company
	if title == "" {
		title = "Deal"
	}
	value := pipeline.MoneyIn(currency, lead.ToNum(r.DealValue))

	var b strings.Builder
	b.WriteString(fmt.Sprintf("[DEAL] %s\n", title))
	b.WriteString(fmt.Sprintf("%s • %s • %s\n", dash(r.Stage), value, dash(r.Owner)))
	b.WriteString(fmt.Sprintf("- Lead: %s\n", dash(r.LeadID)))
	b.WriteString(fmt.Sprintf("- Stage: %s\n", dash(r.Stage)))
	b.WriteString(fmt.Sprintf("- Owner: %s\n", dash(r.Owner)))
	b.WriteString(fmt.Sprintf("- Days in stage: %s\n", dash(r.DaysInStage)))
	b.WriteString(fmt.Sprintf("- Value: %s\n", value))
	b.WriteString(fmt.Sprintf("- Updated: %s\n", dash(r.LastUpdated)))
	b.WriteString(fmt.Sprintf("- Next action: %s\n", dash(r.NextAction)))
	return b.String()
}
