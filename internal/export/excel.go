package export

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"datacenter-inventory-backend/internal/model"
)

// Columns is the fixed export column order shared by the xlsx and PDF
// renderers.
var Columns = []string{"ID", "Equipment Type", "Service Tag", "License Type", "Serial Number", "License Expiry Date"}

const sheetName = "Equipments"

// EquipmentExcel renders the equipment list as xlsx bytes.
func EquipmentExcel(eqs []model.Equipment) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), sheetName); err != nil {
		return nil, fmt.Errorf("failed to name sheet: %w", err)
	}
	if err := f.SetSheetRow(sheetName, "A1", &Columns); err != nil {
		return nil, fmt.Errorf("failed to write header row: %w", err)
	}

	for i, eq := range eqs {
		row := []any{
			eq.ID,
			eq.EquipmentType,
			eq.ServiceTag,
			eq.LicenseType,
			eq.SerialNumber,
			eq.LicenseExpiredDate.Format("2006-01-02"),
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		if err := f.SetSheetRow(sheetName, cell, &row); err != nil {
			return nil, fmt.Errorf("failed to write row %d: %w", i+2, err)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to encode workbook: %w", err)
	}
	return buf.Bytes(), nil
}

// ParseSheet decodes an uploaded workbook and returns the active sheet's
// rows as cell text, header row included. Date-typed cells are rendered
// as ISO dates instead of through their display format.
func ParseSheet(r io.Reader) ([][]string, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read workbook: %w", err)
	}
	defer f.Close()

	sheet := f.GetSheetName(f.GetActiveSheetIndex())
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet rows: %w", err)
	}

	for i, row := range rows {
		for j := range row {
			cell, err := excelize.CoordinatesToCellName(j+1, i+1)
			if err != nil {
				return nil, err
			}
			if iso, ok := dateCellISO(f, sheet, cell); ok {
				rows[i][j] = iso
			}
		}
	}
	return rows, nil
}

// dateCellISO returns the ISO date of a date-formatted numeric cell.
// Spreadsheets store dates as day serials shown through a number format,
// and the display text often carries a two-digit year, so the serial is
// converted directly.
func dateCellISO(f *excelize.File, sheet, cell string) (string, bool) {
	styleID, err := f.GetCellStyle(sheet, cell)
	if err != nil {
		return "", false
	}
	style, err := f.GetStyle(styleID)
	if err != nil || style == nil || !isDateNumFmt(style) {
		return "", false
	}

	raw, err := f.GetCellValue(sheet, cell, excelize.Options{RawCellValue: true})
	if err != nil {
		return "", false
	}
	serial, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return "", false
	}
	t, err := excelize.ExcelDateToTime(serial, false)
	if err != nil {
		return "", false
	}
	return t.Format("2006-01-02"), true
}

func isDateNumFmt(style *excelize.Style) bool {
	// Built-in date and time format IDs.
	if (style.NumFmt >= 14 && style.NumFmt <= 22) || (style.NumFmt >= 45 && style.NumFmt <= 47) {
		return true
	}
	if style.CustomNumFmt == nil {
		return false
	}
	custom := strings.ToLower(*style.CustomNumFmt)
	return strings.ContainsAny(custom, "ymd") && !strings.ContainsAny(custom, "#0")
}
