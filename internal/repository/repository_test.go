package repository

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"auction-marketplace/internal/auctionerrors"
	model "auction-marketplace/internal/models"

	"github.com/stretchr/testify/require"
)

// Helper to create a new Auction
func newAuction(id, shopID string, status model.AuctionStatus) model.Auction {
	created := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	return model.Auction{
		ID:          id,
		ShopID:      shopID,
		Name:        fmt.Sprintf("%s name", id),
		Status:      status,
		StartingBid: 10,
		CreatedAt:   created,
		UpdatedAt:   created,
	}
}

func withEnd(a model.Auction, end time.Time) model.Auction {
	a.EndTime = &end
	return a
}

func withFeatured(a model.Auction, priority int) model.Auction {
	a.IsFeatured = true
	a.FeaturedPriority = priority
	return a
}

// Test GetAuction
func TestMemoryRepo_GetAuction(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo := NewMemoryRepo()
	require.NoError(t, repo.AddAuction(ctx, newAuction("a1", "shop1", model.StatusDraft)))
	repo.auctions["broken"] = map[string]any{"id": "broken", "status": "unknown"}

	tests := []struct {
		name      string
		auctionID string
		wantErr   error
	}{
		{name: "existing_auction", auctionID: "a1"},
		{name: "missing_auction", auctionID: "nope", wantErr: auctionerrors.ErrAuctionNotFound},
		{name: "malformed_document", auctionID: "broken", wantErr: auctionerrors.ErrInvalidDocument},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			auction, err := repo.GetAuction(ctx, tc.auctionID)
			if tc.wantErr != nil {
				require.True(t, errors.Is(err, tc.wantErr), "expected %v, got %v", tc.wantErr, err)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tc.auctionID, auction.ID)
			require.Equal(t, model.StatusDraft, auction.Status)
		})
	}
}

// Test UpdateAuction
func TestMemoryRepo_UpdateAuction(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("merges_fields_and_keeps_others", func(t *testing.T) {
		repo := NewMemoryRepo()
		require.NoError(t, repo.AddAuction(ctx, newAuction("a1", "shop1", model.StatusScheduled)))

		now := time.Date(2026, 2, 1, 12, 0, 0, 0, time.UTC)
		err := repo.UpdateAuction(ctx, "a1", map[string]any{
			"status":     "active",
			"start_time": now,
			"updated_at": now,
			"condition":  "used",
		})
		require.NoError(t, err)

		got, err := repo.GetAuction(ctx, "a1")
		require.NoError(t, err)
		require.Equal(t, model.StatusActive, got.Status)
		require.NotNil(t, got.StartTime)
		require.True(t, got.StartTime.Equal(now))
		require.True(t, got.UpdatedAt.Equal(now))
		require.Equal(t, "shop1", got.ShopID)
		require.Equal(t, "a1 name", got.Name)
		require.Equal(t, "used", got.Extra["condition"])
	})

	t.Run("missing_auction", func(t *testing.T) {
		repo := NewMemoryRepo()
		err := repo.UpdateAuction(ctx, "nope", map[string]any{"name": "x"})
		require.ErrorIs(t, err, auctionerrors.ErrAuctionNotFound)
	})

	t.Run("rejects_invalid_status", func(t *testing.T) {
		repo := NewMemoryRepo()
		require.NoError(t, repo.AddAuction(ctx, newAuction("a1", "shop1", model.StatusDraft)))

		err := repo.UpdateAuction(ctx, "a1", map[string]any{"status": "paused"})
		require.ErrorIs(t, err, auctionerrors.ErrInvalidDocument)

		got, err := repo.GetAuction(ctx, "a1")
		require.NoError(t, err)
		require.Equal(t, model.StatusDraft, got.Status, "failed update must not be persisted")
	})

	t.Run("rejects_id_change", func(t *testing.T) {
		repo := NewMemoryRepo()
		require.NoError(t, repo.AddAuction(ctx, newAuction("a1", "shop1", model.StatusDraft)))

		err := repo.UpdateAuction(ctx, "a1", map[string]any{"id": "a2"})
		require.ErrorIs(t, err, auctionerrors.ErrInvalidDocument)
	})

	t.Run("rejects_wrong_field_type", func(t *testing.T) {
		repo := NewMemoryRepo()
		require.NoError(t, repo.AddAuction(ctx, newAuction("a1", "shop1", model.StatusDraft)))

		err := repo.UpdateAuction(ctx, "a1", map[string]any{"starting_bid": "lots"})
		require.ErrorIs(t, err, auctionerrors.ErrInvalidDocument)
	})

	// concurrency test
	t.Run("concurrent_updates", func(t *testing.T) {
		t.Parallel()

		repo := NewMemoryRepo()
		require.NoError(t, repo.AddAuction(ctx, newAuction("a1", "shop1", model.StatusActive)))

		var wg sync.WaitGroup
		for i := 0; i < 50; i++ {
			wg.Add(1)
			i := i
			go func() {
				defer wg.Done()
				_ = repo.UpdateAuction(ctx, "a1", map[string]any{"name": fmt.Sprintf("name-%d", i)})
			}()
		}
		wg.Wait()

		got, err := repo.GetAuction(ctx, "a1")
		require.NoError(t, err)
		require.Contains(t, got.Name, "name-")
	})
}

// Test DeleteAuction
func TestMemoryRepo_DeleteAuction(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo := NewMemoryRepo()
	require.NoError(t, repo.AddAuction(ctx, newAuction("a1", "shop1", model.StatusEnded)))

	require.NoError(t, repo.DeleteAuction(ctx, "a1"))
	_, err := repo.GetAuction(ctx, "a1")
	require.ErrorIs(t, err, auctionerrors.ErrAuctionNotFound)

	err = repo.DeleteAuction(ctx, "a1")
	require.ErrorIs(t, err, auctionerrors.ErrAuctionNotFound)
}

// Test ListLiveAuctions
func TestMemoryRepo_ListLiveAuctions(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	repo := NewMemoryRepo()

	seed := []model.Auction{
		withEnd(newAuction("late", "s", model.StatusActive), now.Add(3*time.Hour)),
		withEnd(newAuction("soon", "s", model.StatusActive), now.Add(time.Hour)),
		withEnd(newAuction("exact", "s", model.StatusActive), now),
		withEnd(newAuction("expired", "s", model.StatusActive), now.Add(-time.Minute)),
		withEnd(newAuction("scheduled", "s", model.StatusScheduled), now.Add(time.Hour)),
		newAuction("no_end", "s", model.StatusActive),
	}
	for _, a := range seed {
		require.NoError(t, repo.AddAuction(ctx, a))
	}

	live, err := repo.ListLiveAuctions(ctx, now, 50)
	require.NoError(t, err)
	require.Len(t, live, 3)
	require.Equal(t, "exact", live[0].ID)
	require.Equal(t, "soon", live[1].ID)
	require.Equal(t, "late", live[2].ID)

	limited, err := repo.ListLiveAuctions(ctx, now, 2)
	require.NoError(t, err)
	require.Len(t, limited, 2)
}

// Test ListFeaturedAuctions
func TestMemoryRepo_ListFeaturedAuctions(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo := NewMemoryRepo()
	require.NoError(t, repo.AddAuction(ctx, withFeatured(newAuction("low", "s", model.StatusActive), 1)))
	require.NoError(t, repo.AddAuction(ctx, withFeatured(newAuction("high", "s", model.StatusEnded), 9)))
	require.NoError(t, repo.AddAuction(ctx, newAuction("plain", "s", model.StatusActive)))

	featured, err := repo.ListFeaturedAuctions(ctx, 50)
	require.NoError(t, err)
	require.Len(t, featured, 2)
	require.Equal(t, "high", featured[0].ID)
	require.Equal(t, "low", featured[1].ID)
}

// Test UserOwnsShop
func TestMemoryRepo_UserOwnsShop(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo := NewMemoryRepo()
	require.NoError(t, repo.AddShop(ctx, model.Shop{ID: "shop1", OwnerID: "seller1"}))
	require.NoError(t, repo.AddShop(ctx, model.Shop{ID: "orphan"}))

	tests := []struct {
		name   string
		shopID string
		userID string
		want   bool
	}{
		{name: "owner", shopID: "shop1", userID: "seller1", want: true},
		{name: "other_user", shopID: "shop1", userID: "seller2", want: false},
		{name: "unknown_shop", shopID: "shopX", userID: "seller1", want: false},
		{name: "ownerless_shop_empty_user", shopID: "orphan", userID: "", want: false},
	}
	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got, err := repo.UserOwnsShop(ctx, tc.shopID, tc.userID)
			require.NoError(t, err)
			require.Equal(t, tc.want, got)
		})
	}
}

// Test GetWatchlist
func TestMemoryRepo_GetWatchlist(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	base := time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)
	repo := NewMemoryRepo()
	records := []model.WatchRecord{
		{ID: "w1", UserID: "u1", Type: model.WatchTypeAuction, AuctionID: "a1", CreatedAt: base},
		{ID: "w2", UserID: "u1", Type: model.WatchTypeAuction, AuctionID: "a2", CreatedAt: base.Add(time.Hour)},
		{ID: "w3", UserID: "u1", Type: "product_favorite", AuctionID: "p1", CreatedAt: base.Add(2 * time.Hour)},
		{ID: "w4", UserID: "u2", Type: model.WatchTypeAuction, AuctionID: "a1", CreatedAt: base},
	}
	for _, w := range records {
		require.NoError(t, repo.AddWatch(ctx, w))
	}

	got, err := repo.GetWatchlist(ctx, "u1", 100)
	require.NoError(t, err)
	require.Len(t, got, 2)
	require.Equal(t, "w2", got[0].ID)
	require.Equal(t, "w1", got[1].ID)

	empty, err := repo.GetWatchlist(ctx, "nobody", 100)
	require.NoError(t, err)
	require.Empty(t, empty)
}
