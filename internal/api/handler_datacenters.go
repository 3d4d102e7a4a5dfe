package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"datacenter-inventory-backend/internal/model"
)

// DatacenterResponse represents the API response for a single datacenter.
type DatacenterResponse struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

func toDatacenterResponse(dc model.Datacenter) DatacenterResponse {
	return DatacenterResponse{ID: dc.ID, Name: dc.Name, Description: dc.Description}
}

// ListDatacenters handles GET /api/datacenters.
func (h *Handler) ListDatacenters(c *gin.Context) {
	dcs, err := h.store.ListDatacenters(c.Request.Context())
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "failed to retrieve datacenters"})
		return
	}

	responses := make([]DatacenterResponse, 0, len(dcs))
	for _, dc := range dcs {
		responses = append(responses, toDatacenterResponse(dc))
	}
	c.JSON(http.StatusOK, responses)
}

// GetDatacenter handles GET /api/datacenters/:datacenter_id.
func (h *Handler) GetDatacenter(c *gin.Context) {
	dc, ok := h.datacenterOr404(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, toDatacenterResponse(*dc))
}

type createDatacenterRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
}

// CreateDatacenter handles POST /api/datacenters.
func (h *Handler) CreateDatacenter(c *gin.Context) {
	var req createDatacenterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	dc := model.Datacenter{Name: req.Name, Description: req.Description}
	if err := h.store.CreateDatacenter(c.Request.Context(), &dc); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create datacenter"})
		return
	}
	c.JSON(http.StatusCreated, toDatacenterResponse(dc))
}

// DeleteDatacenter handles DELETE /api/datacenters/:datacenter_id.
// Deleting a datacenter also deletes every piece of equipment it owns.
func (h *Handler) DeleteDatacenter(c *gin.Context) {
	id, ok := pathID(c, "datacenter_id")
	if !ok {
		return
	}

	err := h.store.DeleteDatacenter(c.Request.Context(), id)
	if err == gorm.ErrRecordNotFound {
		c.JSON(http.StatusNotFound, gin.H{"error": "datacenter not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete datacenter"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "datacenter deleted successfully"})
}
