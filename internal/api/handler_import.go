package api

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"datacenter-inventory-backend/internal/export"
	"datacenter-inventory-backend/internal/importer"
)

// ImportEquipmentExcel handles
// POST /api/datacenters/:datacenter_id/equipments/import-excel.
// The uploaded workbook's rows are upserted per serial number; row-level
// failures are reported but never abort the batch.
func (h *Handler) ImportEquipmentExcel(c *gin.Context) {
	dc, ok := h.datacenterOr404(c)
	if !ok {
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "no file uploaded"})
		return
	}
	// Legacy BIFF .xls workbooks are not parseable, so only .xlsx is accepted.
	name := strings.ToLower(fileHeader.Filename)
	if !strings.HasSuffix(name, ".xlsx") {
		c.JSON(http.StatusBadRequest, gin.H{"error": "please upload a valid Excel file (.xlsx)"})
		return
	}

	f, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to open uploaded file"})
		return
	}
	defer f.Close()

	rows, err := export.ParseSheet(f)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to read Excel file; ensure it is a valid .xlsx workbook"})
		return
	}

	sum, err := h.importer.Import(c.Request.Context(), dc.ID, rows)
	if err != nil {
		var headerErr *importer.HeaderError
		if errors.As(err, &headerErr) {
			c.JSON(http.StatusBadRequest, gin.H{
				"error":            "invalid file format: required columns are missing",
				"missing_columns":  headerErr.Missing,
				"received_headers": headerErr.Received,
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "import failed"})
		return
	}

	status := http.StatusOK
	if !sum.Success() {
		status = http.StatusBadRequest
	}
	c.JSON(status, gin.H{
		"created_count": sum.Created,
		"updated_count": sum.Updated,
		"error_count":   len(sum.Errors),
		"errors":        sum.Errors,
		"message": fmt.Sprintf("%d equipments created, %d updated, %d failed (batch %s)",
			sum.Created, sum.Updated, len(sum.Errors), uuid.NewString()),
	})
}
