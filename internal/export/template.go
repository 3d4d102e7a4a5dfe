package export

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

// templateHeaders are the canonical snake_case column names the import
// alias table recognizes directly.
var templateHeaders = []string{"equipment_type", "service_tag", "license_type", "serial_number", "license_expired_date"}

var templateExample = []string{"Server", "ST001", "Standard", "SN001", "2026-05-20"}

// ImportTemplate renders a starter workbook for bulk import: styled header
// row plus one example data row.
func ImportTemplate() ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"D9E1F2"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create header style: %w", err)
	}

	if err := f.SetSheetRow(sheet, "A1", &templateHeaders); err != nil {
		return nil, err
	}
	if err := f.SetRowStyle(sheet, 1, 1, headerStyle); err != nil {
		return nil, err
	}
	if err := f.SetSheetRow(sheet, "A2", &templateExample); err != nil {
		return nil, err
	}
	if err := f.SetColWidth(sheet, "A", "E", 22); err != nil {
		return nil, err
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to encode template: %w", err)
	}
	return buf.Bytes(), nil
}
