package export

import (
	"fmt"

	"github.com/KaramelBytes/pipeview/internal/lead"
	"github.com/xuri/excelize/v2"
)

// SheetName is the worksheet holding exported leads.
const SheetName = "Pipeline"

// XLSX renders rows as a single-sheet workbook with the CSV column order.
// days_in_stage and deal_value are written as numbers.
func XLSX(rows []lead.Normalized) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetName); err != nil {
		return nil, fmt.Errorf("rename sheet: %w", err)
	}
	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		return nil, fmt.Errorf("create header style: %w", err)
	}

	for i, h := range lead.Fields {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(SheetName, cell, h); err != nil {
			return nil, fmt.Errorf("write header: %w", err)
		}
		if err := f.SetCellStyle(SheetName, cell, cell, headerStyle); err != nil {
			return nil, fmt.Errorf("style header: %w", err)
		}
	}

	for ri, r := range rows {
		for ci, field := range lead.Fields {
			cell, _ := excelize.CoordinatesToCellName(ci+1, ri+2)
			var v any = r.Get(field)
			switch field {
			case lead.FieldDaysInStage:
				v = lead.ToNum(r.DaysInStage)
			case lead.FieldDealValue:
				v = lead.ToNum(r.DealValue)
			}
			if err := f.SetCellValue(SheetName, cell, v); err != nil {
				return nil, fmt.Errorf("write cell %s: %w", cell, err)
			}
		}
	}

	for i := range lead.Fields {
		col, _ := excelize.ColumnNumberToName(i + 1)
		_ = f.SetColWidth(SheetName, col, col, 16)
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("encode xlsx: %w", err)
	}
	return buf.Bytes(), nil
}
