package api

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"datacenter-inventory-backend/internal/model"
	"datacenter-inventory-backend/internal/store"
)

// EquipmentResponse is the wire shape of one equipment record.
type EquipmentResponse struct {
	ID                 int64  `json:"id"`
	EquipmentType      string `json:"equipment_type"`
	ServiceTag         string `json:"service_tag"`
	LicenseType        string `json:"license_type"`
	SerialNumber       string `json:"serial_number"`
	LicenseExpiredDate string `json:"license_expired_date"`
	Datacenter         string `json:"datacenter"`
}

func toEquipmentResponse(eq model.Equipment, datacenterName string) EquipmentResponse {
	return EquipmentResponse{
		ID:                 eq.ID,
		EquipmentType:      eq.EquipmentType,
		ServiceTag:         eq.ServiceTag,
		LicenseType:        eq.LicenseType,
		SerialNumber:       eq.SerialNumber,
		LicenseExpiredDate: eq.LicenseExpiredDate.Format("2006-01-02"),
		Datacenter:         datacenterName,
	}
}

func filterFromQuery(c *gin.Context) store.EquipmentFilter {
	return store.EquipmentFilter{
		ServiceTag:  c.Query("service_tag"),
		LicenseType: c.Query("license_type"),
	}
}

// ListEquipment handles GET /api/datacenters/:datacenter_id/equipments.
func (h *Handler) ListEquipment(c *gin.Context) {
	dc, ok := h.datacenterOr404(c)
	if !ok {
		return
	}

	eqs, err := h.store.ListEquipment(c.Request.Context(), dc.ID, filterFromQuery(c))
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "failed to retrieve equipment"})
		return
	}

	responses := make([]EquipmentResponse, 0, len(eqs))
	for _, eq := range eqs {
		responses = append(responses, toEquipmentResponse(eq, dc.Name))
	}
	c.JSON(http.StatusOK, responses)
}

type addEquipmentRequest struct {
	EquipmentType      string `json:"equipment_type" binding:"required"`
	ServiceTag         string `json:"service_tag" binding:"required"`
	LicenseType        string `json:"license_type" binding:"required"`
	SerialNumber       string `json:"serial_number" binding:"required"`
	LicenseExpiredDate string `json:"license_expired_date" binding:"required"`
}

// AddEquipment handles POST /api/datacenters/:datacenter_id/equipments.
func (h *Handler) AddEquipment(c *gin.Context) {
	dc, ok := h.datacenterOr404(c)
	if !ok {
		return
	}

	var req addEquipmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	expiry, err := time.Parse("2006-01-02", req.LicenseExpiredDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "license_expired_date must be an ISO date (YYYY-MM-DD)"})
		return
	}

	eq := model.Equipment{
		EquipmentType:      req.EquipmentType,
		ServiceTag:         req.ServiceTag,
		LicenseType:        req.LicenseType,
		SerialNumber:       req.SerialNumber,
		LicenseExpiredDate: expiry,
		DatacenterID:       dc.ID,
	}
	if err := h.store.CreateEquipment(c.Request.Context(), &eq); err != nil {
		if isUniqueViolation(err) {
			c.JSON(http.StatusConflict, gin.H{"error": "service tag or serial number already exists"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create equipment"})
		return
	}

	c.JSON(http.StatusCreated, toEquipmentResponse(eq, dc.Name))
}

type modifyEquipmentRequest struct {
	EquipmentType      *string `json:"equipment_type"`
	ServiceTag         *string `json:"service_tag"`
	LicenseType        *string `json:"license_type"`
	SerialNumber       *string `json:"serial_number"`
	LicenseExpiredDate *string `json:"license_expired_date"`
}

// ModifyEquipment handles PATCH /api/datacenters/:datacenter_id/equipments/:equipment_id.
// Only the fields present in the request body are changed.
func (h *Handler) ModifyEquipment(c *gin.Context) {
	dc, ok := h.datacenterOr404(c)
	if !ok {
		return
	}
	eqID, ok := pathID(c, "equipment_id")
	if !ok {
		return
	}

	var req modifyEquipmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	eq, err := h.store.GetEquipment(c.Request.Context(), dc.ID, eqID)
	if err == gorm.ErrRecordNotFound {
		c.JSON(http.StatusNotFound, gin.H{"error": "equipment not found in this datacenter"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to retrieve equipment"})
		return
	}

	if req.EquipmentType != nil {
		eq.EquipmentType = *req.EquipmentType
	}
	if req.ServiceTag != nil {
		eq.ServiceTag = *req.ServiceTag
	}
	if req.LicenseType != nil {
		eq.LicenseType = *req.LicenseType
	}
	if req.SerialNumber != nil {
		eq.SerialNumber = *req.SerialNumber
	}
	if req.LicenseExpiredDate != nil {
		expiry, err := time.Parse("2006-01-02", *req.LicenseExpiredDate)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "license_expired_date must be an ISO date (YYYY-MM-DD)"})
			return
		}
		eq.LicenseExpiredDate = expiry
	}

	if err := h.store.UpdateEquipment(c.Request.Context(), eq); err != nil {
		if isUniqueViolation(err) {
			c.JSON(http.StatusConflict, gin.H{"error": "service tag or serial number already exists"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update equipment"})
		return
	}

	c.JSON(http.StatusOK, toEquipmentResponse(*eq, dc.Name))
}

// DeleteEquipment handles DELETE /api/datacenters/:datacenter_id/equipments/:equipment_id.
func (h *Handler) DeleteEquipment(c *gin.Context) {
	dc, ok := h.datacenterOr404(c)
	if !ok {
		return
	}
	eqID, ok := pathID(c, "equipment_id")
	if !ok {
		return
	}

	err := h.store.DeleteEquipment(c.Request.Context(), dc.ID, eqID)
	if err == gorm.ErrRecordNotFound {
		c.JSON(http.StatusNotFound, gin.H{"error": "equipment not found in this datacenter"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete equipment"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "equipment deleted successfully"})
}

// LicenseTypeAutocomplete handles
// GET /api/datacenters/:datacenter_id/equipments/license-types.
func (h *Handler) LicenseTypeAutocomplete(c *gin.Context) {
	h.autocomplete(c, h.store.DistinctLicenseTypes)
}

// ServiceTagAutocomplete handles
// GET /api/datacenters/:datacenter_id/equipments/service-tags.
func (h *Handler) ServiceTagAutocomplete(c *gin.Context) {
	h.autocomplete(c, h.store.DistinctServiceTags)
}

func (h *Handler) autocomplete(c *gin.Context, query func(ctx context.Context, datacenterID int64) ([]string, error)) {
	dc, ok := h.datacenterOr404(c)
	if !ok {
		return
	}

	values, err := query(c.Request.Context(), dc.ID)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "failed to retrieve values"})
		return
	}
	c.JSON(http.StatusOK, values)
}
