package rest

import (
	"github.com/gin-gonic/gin"
)

// SetupRoutes configures all REST API routes
func SetupRoutes(router *gin.Engine, handler Handler) {
	// Health check endpoint (no version prefix)
	router.GET("/health", handler.HealthCheck)

	v1 := router.Group("/api/v1")
	{
		v1.POST("/auctions", handler.CreateAuction)

		auctions := v1.Group("/auctions/:collection_id/:token_id")
		auctions.GET("/calculation", handler.Calculate)
		auctions.POST("/bids", handler.PlaceBid)
		auctions.POST("/withdrawals", handler.Withdraw)
		auctions.POST("/cancel", handler.CancelAuction)
	}
}
