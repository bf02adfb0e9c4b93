package repository

import (
	"context"
	"fmt"
	"time"

	"auction-marketplace/internal/auctionerrors"
	model "auction-marketplace/internal/models"
)

// AuctionDB defines the document storage interface for the marketplace
type AuctionDB interface {
	GetAuction(ctx context.Context, auctionID string) (model.Auction, error)
	UpdateAuction(ctx context.Context, auctionID string, fields map[string]any) error
	DeleteAuction(ctx context.Context, auctionID string) error
	ListLiveAuctions(ctx context.Context, now time.Time, limit int) ([]model.Auction, error)
	ListFeaturedAuctions(ctx context.Context, limit int) ([]model.Auction, error)
	UserOwnsShop(ctx context.Context, shopID, userID string) (bool, error)
	GetWatchlist(ctx context.Context, userID string, limit int) ([]model.WatchRecord, error)
}

// Seeder loads fixtures into a store
type Seeder interface {
	AddAuction(ctx context.Context, auction model.Auction) error
	AddShop(ctx context.Context, shop model.Shop) error
	AddWatch(ctx context.Context, watch model.WatchRecord) error
}

// mergeDocument applies a partial update on top of a stored document and
// parses the result, so a write can never leave a malformed auction behind.
func mergeDocument(auctionID string, current map[string]any, fields map[string]any) (model.Auction, error) {
	merged := make(map[string]any, len(current)+len(fields))
	for k, v := range current {
		merged[k] = v
	}
	for k, v := range fields {
		merged[k] = v
	}
	auction, err := model.ParseAuction(merged)
	if err != nil {
		return model.Auction{}, err
	}
	if auction.ID != auctionID {
		return model.Auction{}, fmt.Errorf("%w: id cannot change from %s to %s", auctionerrors.ErrInvalidDocument, auctionID, auction.ID)
	}
	return auction, nil
}
