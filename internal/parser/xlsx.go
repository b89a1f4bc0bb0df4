package parser

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/KaramelBytes/pipeview/internal/lead"
	"github.com/xuri/excelize/v2"
)

// IsXLSX reports whether name (a path or URL) points at a workbook.
func IsXLSX(name string) bool {
	n := strings.ToLower(name)
	if i := strings.IndexAny(n, "?#"); i >= 0 {
		n = n[:i]
	}
	return strings.HasSuffix(n, ".xlsx")
}

// ParseXLSX reads lead rows from a workbook. The first row of the sheet is
// the header. An empty sheetName selects the first sheet.
func ParseXLSX(data []byte, sheetName string) ([]lead.Record, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("open xlsx: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return []lead.Record{}, nil
	}
	target := sheets[0]
	if sheetName != "" {
		target = ""
		for _, s := range sheets {
			if strings.EqualFold(s, sheetName) {
				target = s
				break
			}
		}
		if target == "" {
			return nil, fmt.Errorf("sheet '%s' not found in workbook.\nAvailable sheets: %s",
				sheetName, strings.Join(sheets, ", "))
		}
	}

	rows, err := f.GetRows(target)
	if err != nil {
		return nil, fmt.Errorf("read sheet %s: %w", target, err)
	}
	// drop fully blank trailing rows
	for len(rows) > 0 && isBlank(rows[len(rows)-1]) {
		rows = rows[:len(rows)-1]
	}
	if len(rows) == 0 {
		return []lead.Record{}, nil
	}
	for _, r := range rows {
		for i := range r {
			r[i] = strings.TrimSpace(r[i])
		}
	}
	return mapRows(rows[0], rows[1:]), nil
}

func isBlank(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
