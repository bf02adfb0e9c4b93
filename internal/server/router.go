package server

import (
	"net/http"

	"auction-marketplace/internal/auth"
	handler "auction-marketplace/services/auction/handler"
	"auction-marketplace/utils"

	"github.com/gin-gonic/gin"
)

// SetupRouter configures all Gin routes for the application
func SetupRouter(auctionService handler.AuctionServiceInterface, gatewaySecret string) *gin.Engine {
	router := gin.New() // New router without default middleware for full control over middleware and logging

	router.Use(gin.CustomRecovery(RecoveryHandler))
	router.Use(RequestIDMiddleware)
	router.Use(RequestLoggerMiddleware)

	router.GET("/health", func(c *gin.Context) {
		utils.JSONResponse(c, http.StatusOK, gin.H{"status": "ok"})
	})

	auctionHandler := handler.NewAuctionHandler(auctionService)

	auctions := router.Group("/api/auctions")
	{
		auctions.GET("/live", auctionHandler.LiveAuctionsHandler)
		auctions.GET("/featured", auctionHandler.FeaturedAuctionsHandler)
	}

	secured := auctions.Group("", auth.RequireAuth(gatewaySecret))
	{
		secured.POST("/bulk", auctionHandler.BulkOperationHandler)
		secured.GET("/watchlist", auctionHandler.WatchlistHandler)
	}

	return router
}
