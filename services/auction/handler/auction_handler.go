package handler

import (
	"context"
	"net/http"

	auction "auction-marketplace/internal/auctionService"
	"auction-marketplace/internal/auth"
	model "auction-marketplace/internal/models"
	"auction-marketplace/services/auction/helpers"
	"auction-marketplace/utils"

	"github.com/gin-gonic/gin"
)

type AuctionServiceInterface interface {
	BulkOperate(ctx context.Context, caller model.Caller, body map[string]any) (model.BulkResult, error)
	LiveAuctions(ctx context.Context) ([]model.Auction, error)
	FeaturedAuctions(ctx context.Context) ([]model.Auction, error)
	Watchlist(ctx context.Context, caller model.Caller) ([]model.WatchRecord, error)
}

type AuctionHandler struct {
	service AuctionServiceInterface
}

func NewAuctionHandler(service AuctionServiceInterface) *AuctionHandler {
	return &AuctionHandler{service: service}
}

// BulkOperationHandler handles POST /api/auctions/bulk
func (h *AuctionHandler) BulkOperationHandler(c *gin.Context) {
	caller, ok := auth.CallerFromContext(c)
	if !ok {
		utils.JSONError(c, http.StatusUnauthorized, auth.MsgUnauthorized)
		return
	}

	// the role decides 403 before the body shape is looked at
	if err := auction.AuthorizeBulk(caller); err != nil {
		status, message := helpers.MapErrorToHTTP(err, helpers.MsgBulkOperationFailed)
		utils.JSONError(c, status, message)
		utils.Warn("BulkOperationHandler: bulk request rejected", map[string]any{
			"handler":   "BulkOperationHandler",
			"caller_id": caller.ID,
			"role":      string(caller.Role),
			"status":    status,
		})
		return
	}

	var body map[string]any
	if err := c.ShouldBindJSON(&body); err != nil {
		helpers.HandleBindError(c, "BulkOperationHandler", err)
		return
	}

	result, err := h.service.BulkOperate(c.Request.Context(), caller, body)
	if err != nil {
		status, message := helpers.MapErrorToHTTP(err, helpers.MsgBulkOperationFailed)
		utils.JSONError(c, status, message)
		fields := map[string]any{
			"handler":   "BulkOperationHandler",
			"caller_id": caller.ID,
			"role":      string(caller.Role),
			"status":    status,
			"error":     err.Error(),
		}
		if status >= http.StatusInternalServerError {
			utils.Error("BulkOperationHandler: bulk operation failed", fields)
		} else {
			utils.Warn("BulkOperationHandler: bulk request rejected", fields)
		}
		return
	}

	c.JSON(http.StatusOK, helpers.BulkOperationResponse{
		Success: true,
		Results: result.Results,
		Summary: result.Summary,
	})
	helpers.LogSuccess("BulkOperationHandler", "bulk operation processed", map[string]any{
		"caller_id": caller.ID,
		"total":     result.Summary.Total,
		"succeeded": result.Summary.Succeeded,
		"failed":    result.Summary.Failed,
	})
}

// LiveAuctionsHandler handles GET /api/auctions/live
func (h *AuctionHandler) LiveAuctionsHandler(c *gin.Context) {
	auctions, err := h.service.LiveAuctions(c.Request.Context())
	if err != nil {
		status, message := helpers.MapErrorToHTTP(err, helpers.MsgFetchLiveFailed)
		utils.JSONError(c, status, message)
		utils.Error("LiveAuctionsHandler: error retrieving live auctions", map[string]any{"error": err.Error()})
		return
	}

	if auctions == nil {
		auctions = []model.Auction{}
	}

	c.JSON(http.StatusOK, helpers.AuctionListResponse{Success: true, Auctions: auctions})
	helpers.LogSuccess("LiveAuctionsHandler", "live auctions retrieved", map[string]any{"count": len(auctions)})
}

// FeaturedAuctionsHandler handles GET /api/auctions/featured
func (h *AuctionHandler) FeaturedAuctionsHandler(c *gin.Context) {
	auctions, err := h.service.FeaturedAuctions(c.Request.Context())
	if err != nil {
		status, message := helpers.MapErrorToHTTP(err, helpers.MsgFetchFeaturedFailed)
		utils.JSONError(c, status, message)
		utils.Error("FeaturedAuctionsHandler: error retrieving featured auctions", map[string]any{"error": err.Error()})
		return
	}

	if auctions == nil {
		auctions = []model.Auction{}
	}

	c.JSON(http.StatusOK, helpers.AuctionListResponse{Success: true, Auctions: auctions})
	helpers.LogSuccess("FeaturedAuctionsHandler", "featured auctions retrieved", map[string]any{"count": len(auctions)})
}

// WatchlistHandler handles GET /api/auctions/watchlist
func (h *AuctionHandler) WatchlistHandler(c *gin.Context) {
	caller, ok := auth.CallerFromContext(c)
	if !ok {
		utils.JSONError(c, http.StatusUnauthorized, auth.MsgUnauthorized)
		return
	}

	records, err := h.service.Watchlist(c.Request.Context(), caller)
	if err != nil {
		status, message := helpers.MapErrorToHTTP(err, helpers.MsgFetchWatchlistFailed)
		utils.JSONError(c, status, message)
		utils.Warn("WatchlistHandler: error retrieving watchlist", map[string]any{"user_id": caller.ID, "error": err.Error()})
		return
	}

	if records == nil {
		records = []model.WatchRecord{}
	}

	c.JSON(http.StatusOK, helpers.WatchlistResponse{Success: true, Watchlist: records})
	helpers.LogSuccess("WatchlistHandler", "watchlist retrieved", map[string]any{
		"user_id": caller.ID,
		"count":   len(records),
	})
}
