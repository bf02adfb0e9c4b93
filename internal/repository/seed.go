package repository

import (
	"context"
	"fmt"
	"time"

	model "auction-marketplace/internal/models"
)

// SeedSampleData loads a small marketplace relative to now: two shops, one
// auction in every status and a buyer watchlist.
func SeedSampleData(ctx context.Context, s Seeder, now time.Time) error {
	now = now.UTC()
	at := func(d time.Duration) *time.Time {
		t := now.Add(d)
		return &t
	}
	created := now.Add(-7 * 24 * time.Hour)

	shops := []model.Shop{
		{ID: "shop-1", OwnerID: "seller-1", Name: "Vintage Finds"},
		{ID: "shop-2", OwnerID: "seller-2", Name: "Tool Shed"},
	}
	auctions := []model.Auction{
		{ID: "auction-1", ShopID: "shop-1", Name: "Brass desk lamp", Status: model.StatusDraft, StartingBid: 25, EndTime: at(72 * time.Hour)},
		{ID: "auction-2", ShopID: "shop-1", Name: "Oak side table", Status: model.StatusScheduled, StartingBid: 80, StartTime: at(time.Hour), EndTime: at(48 * time.Hour)},
		{ID: "auction-3", ShopID: "shop-1", Name: "Film camera", Status: model.StatusActive, StartingBid: 40, CurrentBid: 55, StartTime: at(-2 * time.Hour), EndTime: at(6 * time.Hour), IsFeatured: true, FeaturedPriority: 5},
		{ID: "auction-4", ShopID: "shop-2", Name: "Cordless drill", Status: model.StatusActive, StartingBid: 30, CurrentBid: 42, StartTime: at(-time.Hour), EndTime: at(2 * time.Hour), IsFeatured: true, FeaturedPriority: 9},
		{ID: "auction-5", ShopID: "shop-2", Name: "Socket set", Status: model.StatusEnded, StartingBid: 15, CurrentBid: 31, EndTime: at(-24 * time.Hour)},
		{ID: "auction-6", ShopID: "shop-2", Name: "Workbench", Status: model.StatusCancelled, StartingBid: 120},
	}
	watches := []model.WatchRecord{
		{ID: "watch-1", UserID: "buyer-1", Type: model.WatchTypeAuction, AuctionID: "auction-3", CreatedAt: now.Add(-time.Hour)},
		{ID: "watch-2", UserID: "buyer-1", Type: model.WatchTypeAuction, AuctionID: "auction-4", CreatedAt: now.Add(-30 * time.Minute)},
		{ID: "watch-3", UserID: "buyer-1", Type: "product_favorite", AuctionID: "product-9", CreatedAt: now.Add(-10 * time.Minute)},
	}

	for _, shop := range shops {
		if err := s.AddShop(ctx, shop); err != nil {
			return fmt.Errorf("seed shop %s: %w", shop.ID, err)
		}
	}
	for _, a := range auctions {
		a.CreatedAt = created
		a.UpdatedAt = created
		if err := s.AddAuction(ctx, a); err != nil {
			return fmt.Errorf("seed auction %s: %w", a.ID, err)
		}
	}
	for _, w := range watches {
		if err := s.AddWatch(ctx, w); err != nil {
			return fmt.Errorf("seed watch %s: %w", w.ID, err)
		}
	}
	return nil
}
