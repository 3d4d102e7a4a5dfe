package export

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"datacenter-inventory-backend/internal/model"
)

func TestEquipmentExcelRoundTrip(t *testing.T) {
	eqs := []model.Equipment{
		{ID: 1, EquipmentType: "Server", ServiceTag: "ST001", LicenseType: "Standard",
			SerialNumber: "SN001", LicenseExpiredDate: time.Date(2027, 3, 10, 0, 0, 0, 0, time.UTC)},
		{ID: 2, EquipmentType: "Switch", ServiceTag: "ST002", LicenseType: "Advanced",
			SerialNumber: "SN002", LicenseExpiredDate: time.Date(2027, 6, 15, 0, 0, 0, 0, time.UTC)},
	}

	data, err := EquipmentExcel(eqs)
	require.NoError(t, err)

	rows, err := ParseSheet(bytes.NewReader(data))
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, Columns, rows[0])
	assert.Equal(t, []string{"1", "Server", "ST001", "Standard", "SN001", "2027-03-10"}, rows[1])
	assert.Equal(t, []string{"2", "Switch", "ST002", "Advanced", "SN002", "2027-06-15"}, rows[2])
}

func TestEquipmentExcelEmptyList(t *testing.T) {
	data, err := EquipmentExcel(nil)
	require.NoError(t, err)

	rows, err := ParseSheet(bytes.NewReader(data))
	require.NoError(t, err)
	require.Len(t, rows, 1, "header only")
	assert.Equal(t, Columns, rows[0])
}

func TestImportTemplateHeaders(t *testing.T) {
	data, err := ImportTemplate()
	require.NoError(t, err)

	rows, err := ParseSheet(bytes.NewReader(data))
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, templateHeaders, rows[0])
	assert.Equal(t, templateExample, rows[1])
}

func TestParseSheetConvertsDateCells(t *testing.T) {
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	headers := []string{"equipment_type", "service_tag", "license_type", "serial_number", "license_expired_date"}
	require.NoError(t, f.SetSheetRow(sheet, "A1", &headers))
	require.NoError(t, f.SetCellValue(sheet, "A2", "Server"))
	require.NoError(t, f.SetCellValue(sheet, "B2", "ST001"))
	require.NoError(t, f.SetCellValue(sheet, "C2", "Standard"))
	require.NoError(t, f.SetCellValue(sheet, "D2", "SN001"))
	// A genuine date-typed cell, stored as a day serial with a date format.
	require.NoError(t, f.SetCellValue(sheet, "E2", time.Date(2027, 4, 25, 0, 0, 0, 0, time.UTC)))

	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	require.NoError(t, f.Close())

	rows, err := ParseSheet(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, "2027-04-25", rows[1][4], "date cells must surface their date component, not display text")
	assert.Equal(t, "Server", rows[1][0], "text cells pass through untouched")
	assert.Equal(t, headers, rows[0])
}

func TestParseSheetRejectsGarbage(t *testing.T) {
	_, err := ParseSheet(bytes.NewReader([]byte("not a workbook")))
	assert.Error(t, err)
}

func TestEquipmentPDFProducesDocument(t *testing.T) {
	data, err := EquipmentPDF([]model.Equipment{
		{ID: 1, EquipmentType: "Server", ServiceTag: "ST001", LicenseType: "Standard",
			SerialNumber: "SN001", LicenseExpiredDate: time.Date(2027, 3, 10, 0, 0, 0, 0, time.UTC)},
	})
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF")), "output should be a PDF document")
}
