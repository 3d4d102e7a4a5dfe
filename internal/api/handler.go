package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"datacenter-inventory-backend/config"
	"datacenter-inventory-backend/internal/importer"
	"datacenter-inventory-backend/internal/model"
	"datacenter-inventory-backend/internal/notify"
	"datacenter-inventory-backend/internal/store"
)

// Handler holds shared dependencies for API handlers.
type Handler struct {
	store    store.Store
	cfg      *config.Config
	sender   notify.Sender
	importer *importer.Importer
}

// NewHandler creates a new API handler.
func NewHandler(cfg *config.Config, s store.Store, sender notify.Sender) *Handler {
	return &Handler{
		store:    s,
		cfg:      cfg,
		sender:   sender,
		importer: importer.New(s),
	}
}

// pathID parses a positive integer path parameter.
func pathID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid " + name})
		return 0, false
	}
	return id, true
}

// datacenterOr404 loads the datacenter addressed by the :datacenter_id
// parameter, responding 404 when it does not exist.
func (h *Handler) datacenterOr404(c *gin.Context) (*model.Datacenter, bool) {
	id, ok := pathID(c, "datacenter_id")
	if !ok {
		return nil, false
	}
	dc, err := h.store.GetDatacenter(c.Request.Context(), id)
	if err == gorm.ErrRecordNotFound {
		c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": "datacenter not found"})
		return nil, false
	}
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "failed to retrieve datacenter"})
		return nil, false
	}
	return dc, true
}
