package export

import (
	"bytes"
	"fmt"

	"github.com/go-pdf/fpdf"

	"datacenter-inventory-backend/internal/model"
)

var pdfColWidths = []float64{16, 48, 46, 42, 46, 46}

// EquipmentPDF renders the equipment list as a PDF table with the same
// column order as the xlsx export.
func EquipmentPDF(eqs []model.Equipment) ([]byte, error) {
	pdf := fpdf.New("L", "mm", "Letter", "")
	pdf.SetAutoPageBreak(true, 15)
	pdf.AddPage()

	// Header row: grey fill, white bold text.
	pdf.SetFont("Helvetica", "B", 10)
	pdf.SetFillColor(128, 128, 128)
	pdf.SetTextColor(255, 255, 255)
	for i, col := range Columns {
		pdf.CellFormat(pdfColWidths[i], 9, col, "1", 0, "C", true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 10)
	pdf.SetFillColor(245, 245, 245)
	pdf.SetTextColor(0, 0, 0)
	for _, eq := range eqs {
		cells := []string{
			fmt.Sprintf("%d", eq.ID),
			eq.EquipmentType,
			eq.ServiceTag,
			eq.LicenseType,
			eq.SerialNumber,
			eq.LicenseExpiredDate.Format("2006-01-02"),
		}
		for i, cell := range cells {
			pdf.CellFormat(pdfColWidths[i], 8, cell, "1", 0, "C", true, 0, "")
		}
		pdf.Ln(-1)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to render PDF: %w", err)
	}
	return buf.Bytes(), nil
}
