package rest

import (
	"github.com/gin-gonic/gin"
)

// SetupRoutes configures all REST API routes
func SetupRoutes(router *gin.Engine, handler Handler) {
	// Health check endpoint (no version prefix)
	router.GET("/health", handler.HealthCheck)

	// API v1 routes (read-only views over the materialized store)
	v1 := router.Group("/api/v1")
	{
		v1.GET("/assets", handler.ListAssets)
		v1.GET("/assets/:id", handler.GetAsset)
		v1.GET("/assets/:id/transfers", handler.GetAssetTransfers)
		v1.GET("/owners/:address/assets", handler.GetOwnerAssets)
		v1.GET("/cursor", handler.GetCursor)
	}
}
