package api

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/patrickmn/go-cache"
	"golang.org/x/time/rate"

	"datacenter-inventory-backend/config"
	"datacenter-inventory-backend/internal/mw"
	"datacenter-inventory-backend/internal/notify"
	"datacenter-inventory-backend/internal/store"
)

// NewRouter creates and configures a new Gin router.
func NewRouter(cfg *config.Config, s store.Store, sender notify.Sender) *gin.Engine {
	r := gin.Default()

	handler := NewHandler(cfg, s, sender)

	rateLimiter := mw.RateLimiter(rate.Limit(cfg.Server.RateLimitPerSec), cfg.Server.RateLimitBurst)

	cacheTTL := time.Duration(cfg.Server.CacheTTLSeconds) * time.Second
	cacheStore := cache.New(cacheTTL, 2*cacheTTL)
	caching := mw.Cache(cacheStore, cacheTTL)

	api := r.Group("/api")
	api.Use(rateLimiter)

	// Public auth routes
	api.POST("/auth/signup", handler.Signup)
	api.POST("/auth/login", handler.Login)
	api.POST("/auth/logout", handler.Logout)

	// Everything else requires a bearer token.
	protected := api.Group("")
	protected.Use(mw.RequireAuth([]byte(cfg.Auth.JWTSecret)))
	{
		protected.GET("/datacenters", handler.ListDatacenters)
		protected.POST("/datacenters", handler.CreateDatacenter)
		protected.GET("/datacenters/:datacenter_id", handler.GetDatacenter)
		protected.DELETE("/datacenters/:datacenter_id", handler.DeleteDatacenter)

		protected.GET("/datacenters/:datacenter_id/equipments", handler.ListEquipment)
		protected.POST("/datacenters/:datacenter_id/equipments", handler.AddEquipment)
		protected.PATCH("/datacenters/:datacenter_id/equipments/:equipment_id", handler.ModifyEquipment)
		protected.DELETE("/datacenters/:datacenter_id/equipments/:equipment_id", handler.DeleteEquipment)

		protected.GET("/datacenters/:datacenter_id/equipments/license-types", caching, handler.LicenseTypeAutocomplete)
		protected.GET("/datacenters/:datacenter_id/equipments/service-tags", caching, handler.ServiceTagAutocomplete)

		protected.GET("/datacenters/:datacenter_id/equipments/export-excel", handler.ExportEquipmentExcel)
		protected.GET("/datacenters/:datacenter_id/equipments/export-pdf", handler.ExportEquipmentPDF)
		protected.GET("/equipments/import-template", caching, handler.ImportTemplate)
		protected.POST("/datacenters/:datacenter_id/equipments/import-excel", handler.ImportEquipmentExcel)
		protected.POST("/datacenters/:datacenter_id/equipments/send-pdf", handler.SendEquipmentPDF)
	}

	return r
}
