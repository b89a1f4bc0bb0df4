package export

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/KaramelBytes/pipeview/internal/lead"
	"github.com/KaramelBytes/pipeview/internal/pipeline"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func sample() []lead.Normalized {
	return pipeline.Normalize([]lead.Record{
		{LeadID: "LEAD-1", Company: "Acme", Stage: "Proposal", Owner: "Alex", DaysInStage: "10", DealValue: "5000", NextAction: "Call", LastUpdated: "2024-01-01"},
		{LeadID: "LEAD-2", Company: "Marble, Co", Stage: "Inbound", Owner: "Sam", DaysInStage: "x", DealValue: "12.5", NextAction: `say "hi"`, LastUpdated: "2024-01-02"},
	})
}

func TestCSV(t *testing.T) {
	got := CSV(sample())
	want := "lead_id,company,stage,owner,days_in_stage,deal_value,next_action,last_updated\n" +
		"LEAD-1,Acme,Proposal,Alex,10,5000,Call,2024-01-01\n" +
		"LEAD-2,\"Marble, Co\",Inbound,Sam,x,12.5,\"say \"\"hi\"\"\",2024-01-02"
	assert.Equal(t, want, got)
	assert.Equal(t, strings.Join(lead.Fields, ","), CSV(nil))
	assert.Equal(t, "\"a\nb\"", escapeCSV("a\nb"))
}

func TestCSVNaiveSplitRoundTrip(t *testing.T) {
	rows := sample()[:1]
	lines := strings.Split(CSV(rows), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, lead.Fields, strings.Split(lines[0], ","))
	assert.Equal(t, rows[0].Values(), strings.Split(lines[1], ","))
}

func TestJSON(t *testing.T) {
	got, err := JSON(sample())
	require.NoError(t, err)
	want := `[
  {
    "lead_id": "LEAD-1",
    "company": "Acme",
    "stage": "Proposal",
    "owner": "Alex",
    "days_in_stage": 10,
    "deal_value": 5000,
    "next_action": "Call",
    "last_updated": "2024-01-01"
  },
  {
    "lead_id": "LEAD-2",
    "company": "Marble, Co",
    "stage": "Inbound",
    "owner": "Sam",
    "days_in_stage": 0,
    "deal_value": 12.5,
    "next_action": "say \"hi\"",
    "last_updated": "2024-01-02"
  }
]`
	assert.Equal(t, want, got)

	empty, err := JSON(nil)
	require.NoError(t, err)
	assert.Equal(t, "[]", empty)
}

func TestXLSX(t *testing.T) {
	b, err := XLSX(sample())
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(b))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(SheetName)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, lead.Fields, rows[0])
	assert.Equal(t, "Marble, Co", rows[2][1])
	assert.Equal(t, "0", rows[2][4])
	assert.Equal(t, "12.5", rows[2][5])
}

func TestFormatsAndWriteFile(t *testing.T) {
	f, err := ParseFormat("EXCEL")
	require.NoError(t, err)
	assert.Equal(t, FormatXLSX, f)
	_, err = ParseFormat("pdf")
	assert.True(t, errors.Is(err, ErrUnknownFormat))
	_, err = Render(Format("pdf"), nil)
	assert.True(t, errors.Is(err, ErrUnknownFormat))

	assert.Equal(t, "pipeline_export_2026-01-05.csv", DefaultFilename(FormatCSV, "2026-01-05"))

	p := filepath.Join(t.TempDir(), DefaultFilename(FormatJSON, "2026-01-05"))
	require.NoError(t, WriteFile(p, FormatJSON, sample()))
	b, err := os.ReadFile(p)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(b), "[\n  {"))
}
