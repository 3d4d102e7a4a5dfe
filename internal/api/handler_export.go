package api

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"datacenter-inventory-backend/internal/export"
	"datacenter-inventory-backend/internal/notify"
)

const (
	xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	pdfContentType  = "application/pdf"
)

// ExportEquipmentExcel handles
// GET /api/datacenters/:datacenter_id/equipments/export-excel.
// The optional service_tag/license_type filters apply to the export too.
func (h *Handler) ExportEquipmentExcel(c *gin.Context) {
	dc, ok := h.datacenterOr404(c)
	if !ok {
		return
	}

	eqs, err := h.store.ListEquipment(c.Request.Context(), dc.ID, filterFromQuery(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to retrieve equipment"})
		return
	}

	data, err := export.EquipmentExcel(eqs)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to render spreadsheet"})
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", fmt.Sprintf("equipments_%d.xlsx", dc.ID)))
	c.Data(http.StatusOK, xlsxContentType, data)
}

// ExportEquipmentPDF handles
// GET /api/datacenters/:datacenter_id/equipments/export-pdf.
func (h *Handler) ExportEquipmentPDF(c *gin.Context) {
	dc, ok := h.datacenterOr404(c)
	if !ok {
		return
	}

	eqs, err := h.store.ListEquipment(c.Request.Context(), dc.ID, filterFromQuery(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to retrieve equipment"})
		return
	}

	data, err := export.EquipmentPDF(eqs)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to render PDF"})
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", fmt.Sprintf("equipments_%d.pdf", dc.ID)))
	c.Data(http.StatusOK, pdfContentType, data)
}

// ImportTemplate handles GET /api/equipments/import-template.
func (h *Handler) ImportTemplate(c *gin.Context) {
	data, err := export.ImportTemplate()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to render template"})
		return
	}
	c.Header("Content-Disposition", `attachment; filename="equipment_import_template.xlsx"`)
	c.Data(http.StatusOK, xlsxContentType, data)
}

type sendPDFRequest struct {
	Email string `json:"email" binding:"required,email"`
}

// SendEquipmentPDF handles POST /api/datacenters/:datacenter_id/equipments/send-pdf.
// It renders the datacenter's equipment report and emails it as a PDF
// attachment to the requested recipient.
func (h *Handler) SendEquipmentPDF(c *gin.Context) {
	dc, ok := h.datacenterOr404(c)
	if !ok {
		return
	}

	var req sendPDFRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	eqs, err := h.store.ListEquipment(c.Request.Context(), dc.ID, filterFromQuery(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to retrieve equipment"})
		return
	}
	if len(eqs) == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "no equipment found for this datacenter"})
		return
	}

	data, err := export.EquipmentPDF(eqs)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to render PDF"})
		return
	}

	msg := notify.Message{
		To:      []string{req.Email},
		Subject: fmt.Sprintf("Equipment Information for %s", dc.Name),
		Body:    fmt.Sprintf("Please find attached the equipment information for datacenter: %s.", dc.Name),
		Attachment: &notify.Attachment{
			Filename:    fmt.Sprintf("equipments_%s.pdf", dc.Name),
			ContentType: pdfContentType,
			Data:        data,
		},
	}
	if err := h.sender.Send(c.Request.Context(), msg); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to send email"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": fmt.Sprintf("PDF sent successfully to %s", req.Email)})
}
