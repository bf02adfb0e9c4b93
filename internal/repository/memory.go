package repository

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"auction-marketplace/internal/auctionerrors"
	model "auction-marketplace/internal/models"
)

// MemoryRepo is a concurrency-safe in-memory implementation of AuctionDB
type MemoryRepo struct {
	mu       sync.RWMutex
	auctions map[string]map[string]any // key: auctionID -> value: raw document
	shops    map[string]model.Shop     // key: shopID -> value: shop
	watches  []model.WatchRecord
}

// NewMemoryRepo creates a new in-memory repository instance
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{
		auctions: make(map[string]map[string]any),
		shops:    make(map[string]model.Shop),
	}
}

// GetAuction returns the auction stored under auctionID
func (r *MemoryRepo) GetAuction(_ context.Context, auctionID string) (model.Auction, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	doc, ok := r.auctions[auctionID]
	if !ok {
		return model.Auction{}, fmt.Errorf("get auction %s: %w", auctionID, auctionerrors.ErrAuctionNotFound)
	}
	auction, err := model.ParseAuction(doc)
	if err != nil {
		return model.Auction{}, fmt.Errorf("get auction %s: %w", auctionID, err)
	}
	return auction, nil
}

// UpdateAuction merges fields into the stored auction document
func (r *MemoryRepo) UpdateAuction(_ context.Context, auctionID string, fields map[string]any) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	doc, ok := r.auctions[auctionID]
	if !ok {
		return fmt.Errorf("update auction %s: %w", auctionID, auctionerrors.ErrAuctionNotFound)
	}
	updated, err := mergeDocument(auctionID, doc, fields)
	if err != nil {
		return fmt.Errorf("update auction %s: %w", auctionID, err)
	}
	r.auctions[auctionID] = updated.Document()
	return nil
}

// DeleteAuction removes an auction
func (r *MemoryRepo) DeleteAuction(_ context.Context, auctionID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.auctions[auctionID]; !ok {
		return fmt.Errorf("delete auction %s: %w", auctionID, auctionerrors.ErrAuctionNotFound)
	}
	delete(r.auctions, auctionID)
	return nil
}

// ListLiveAuctions returns active auctions that have not reached their end time, soonest first
func (r *MemoryRepo) ListLiveAuctions(_ context.Context, now time.Time, limit int) ([]model.Auction, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	live := make([]model.Auction, 0)
	for id, doc := range r.auctions {
		auction, err := model.ParseAuction(doc)
		if err != nil {
			return nil, fmt.Errorf("list live auctions: auction %s: %w", id, err)
		}
		if auction.Status != model.StatusActive || auction.EndTime == nil || auction.EndTime.Before(now) {
			continue
		}
		live = append(live, auction)
	}

	sort.Slice(live, func(i, j int) bool {
		if live[i].EndTime.Equal(*live[j].EndTime) {
			return live[i].ID < live[j].ID
		}
		return live[i].EndTime.Before(*live[j].EndTime)
	})
	return truncate(live, limit), nil
}

// ListFeaturedAuctions returns featured auctions by descending priority
func (r *MemoryRepo) ListFeaturedAuctions(_ context.Context, limit int) ([]model.Auction, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	featured := make([]model.Auction, 0)
	for id, doc := range r.auctions {
		auction, err := model.ParseAuction(doc)
		if err != nil {
			return nil, fmt.Errorf("list featured auctions: auction %s: %w", id, err)
		}
		if auction.IsFeatured {
			featured = append(featured, auction)
		}
	}

	sort.Slice(featured, func(i, j int) bool {
		if featured[i].FeaturedPriority == featured[j].FeaturedPriority {
			return featured[i].ID < featured[j].ID
		}
		return featured[i].FeaturedPriority > featured[j].FeaturedPriority
	})
	return truncate(featured, limit), nil
}

// UserOwnsShop reports whether userID owns shopID. Unknown shops are not owned.
func (r *MemoryRepo) UserOwnsShop(_ context.Context, shopID, userID string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	shop, ok := r.shops[shopID]
	if !ok {
		return false, nil
	}
	return shop.OwnerID != "" && shop.OwnerID == userID, nil
}

// GetWatchlist returns the user's auction watch records, newest first
func (r *MemoryRepo) GetWatchlist(_ context.Context, userID string, limit int) ([]model.WatchRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	records := make([]model.WatchRecord, 0)
	for _, w := range r.watches {
		if w.UserID == userID && w.Type == model.WatchTypeAuction {
			records = append(records, w)
		}
	}

	sort.SliceStable(records, func(i, j int) bool {
		return records[i].CreatedAt.After(records[j].CreatedAt)
	})
	return truncate(records, limit), nil
}

// AddAuction stores or replaces an auction
func (r *MemoryRepo) AddAuction(_ context.Context, auction model.Auction) error {
	if err := auction.Validate(); err != nil {
		return fmt.Errorf("add auction: %w", err)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.auctions[auction.ID] = auction.Document()
	return nil
}

// AddShop stores or replaces a shop
func (r *MemoryRepo) AddShop(_ context.Context, shop model.Shop) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.shops[shop.ID] = shop
	return nil
}

// AddWatch stores or replaces a watch record
func (r *MemoryRepo) AddWatch(_ context.Context, watch model.WatchRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.watches {
		if r.watches[i].ID == watch.ID {
			r.watches[i] = watch
			return nil
		}
	}
	r.watches = append(r.watches, watch)
	return nil
}

func truncate[T any](items []T, limit int) []T {
	if limit > 0 && len(items) > limit {
		return items[:limit]
	}
	return items
}
