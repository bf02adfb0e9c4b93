package helpers

import model "auction-marketplace/internal/models"

// Response DTOs
type BulkOperationResponse struct {
	Success bool               `json:"success"`
	Results []model.ItemResult `json:"results"`
	Summary model.Summary      `json:"summary"`
}

type AuctionListResponse struct {
	Success  bool            `json:"success"`
	Auctions []model.Auction `json:"auctions"`
}

type WatchlistResponse struct {
	Success   bool                `json:"success"`
	Watchlist []model.WatchRecord `json:"watchlist"`
}
