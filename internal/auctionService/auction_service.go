package auction

import (
	"context"
	"errors"
	"fmt"
	"time"

	"auction-marketplace/internal/auctionerrors"
	"auction-marketplace/internal/events"
	model "auction-marketplace/internal/models"
	"auction-marketplace/internal/repository"
	"auction-marketplace/utils"
)

// Query limits for the read endpoints
const (
	LiveAuctionsLimit     = 50
	FeaturedAuctionsLimit = 50
	WatchlistLimit        = 100
)

// OwnershipChecker answers whether a user owns a shop
type OwnershipChecker interface {
	UserOwnsShop(ctx context.Context, shopID, userID string) (bool, error)
}

// AuctionService implements bulk auction management and the auction read queries
type AuctionService struct {
	repo      repository.AuctionDB
	owners    OwnershipChecker
	publisher events.Publisher
	now       func() time.Time
}

// Option customises an AuctionService
type Option func(*AuctionService)

// WithOwnershipChecker replaces the store-backed shop ownership check
func WithOwnershipChecker(owners OwnershipChecker) Option {
	return func(s *AuctionService) { s.owners = owners }
}

// WithPublisher sets where auction events are sent after successful mutations
func WithPublisher(p events.Publisher) Option {
	return func(s *AuctionService) { s.publisher = p }
}

// WithClock overrides the time source
func WithClock(now func() time.Time) Option {
	return func(s *AuctionService) { s.now = now }
}

// NewAuctionService creates a new AuctionService instance
func NewAuctionService(repo repository.AuctionDB, opts ...Option) *AuctionService {
	s := &AuctionService{
		repo:      repo,
		owners:    repo,
		publisher: events.NopPublisher{},
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// BulkOperate validates a raw bulk request and applies its action to every
// auction id in order. Item failures are reported in the result; only
// request-level failures are returned as errors.
func (s *AuctionService) BulkOperate(ctx context.Context, caller model.Caller, body map[string]any) (model.BulkResult, error) {
	req, err := ValidateBulkRequest(caller, body)
	if err != nil {
		return model.BulkResult{}, err
	}

	// a bulk run is not abandoned half way when the client goes away
	ctx = context.WithoutCancel(ctx)

	results := make([]model.ItemResult, 0, len(req.AuctionIDs))
	for _, id := range req.AuctionIDs {
		result := model.ItemResult{ID: id, Success: true}
		if err := s.runItem(ctx, caller, req, id); err != nil {
			result.Success = false
			result.Error = ItemErrorMessage(err)
			utils.Warn("bulk operation item failed", map[string]any{
				"action":     string(req.Action),
				"auction_id": id,
				"caller_id":  caller.ID,
				"error":      err.Error(),
			})
		}
		results = append(results, result)
	}

	out := Aggregate(results)
	utils.Info("bulk operation completed", map[string]any{
		"action":    string(req.Action),
		"caller_id": caller.ID,
		"total":     out.Summary.Total,
		"succeeded": out.Summary.Succeeded,
		"failed":    out.Summary.Failed,
	})
	return out, nil
}

// Aggregate folds item results into a BulkResult, keeping their order
func Aggregate(results []model.ItemResult) model.BulkResult {
	succeeded := 0
	for _, r := range results {
		if r.Success {
			succeeded++
		}
	}
	return model.BulkResult{
		Results: results,
		Summary: model.Summary{
			Total:     len(results),
			Succeeded: succeeded,
			Failed:    len(results) - succeeded,
		},
	}
}

// ItemErrorMessage maps an item-level error to the message reported for that item
func ItemErrorMessage(err error) string {
	var transitionErr *auctionerrors.TransitionError
	switch {
	case errors.Is(err, auctionerrors.ErrAuctionNotFound):
		return MsgAuctionNotFound
	case errors.Is(err, auctionerrors.ErrNotOwner):
		return MsgNotAuthorizedToEdit
	case errors.As(err, &transitionErr):
		return transitionErr.Message
	case errors.Is(err, auctionerrors.ErrUpdateDataRequired):
		return MsgUpdateDataRequired
	default:
		return rootCause(err).Error()
	}
}

// rootCause strips service and repository context, leaving the store's own error
func rootCause(err error) error {
	for {
		next := errors.Unwrap(err)
		if next == nil {
			return err
		}
		err = next
	}
}

// runItem isolates one item so that even a panic only fails that item
func (s *AuctionService) runItem(ctx context.Context, caller model.Caller, req model.BulkRequest, auctionID string) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("service: processing auction %s: %w", auctionID, fmt.Errorf("panic: %v", r))
		}
	}()
	return s.processItem(ctx, caller, req, auctionID)
}

func (s *AuctionService) processItem(ctx context.Context, caller model.Caller, req model.BulkRequest, auctionID string) error {
	auction, err := s.repo.GetAuction(ctx, auctionID)
	if err != nil {
		return fmt.Errorf("service: failed to load auction %s: %w", auctionID, err)
	}

	if caller.Role == model.RoleSeller {
		owns, err := s.owners.UserOwnsShop(ctx, auction.ShopID, caller.ID)
		if err != nil {
			return fmt.Errorf("service: failed to check ownership of shop %s: %w", auction.ShopID, err)
		}
		if !owns {
			return fmt.Errorf("service: auction %s: %w", auctionID, auctionerrors.ErrNotOwner)
		}
	}

	if rule, ok := TransitionRuleFor(req.Action); ok && !rule.Allows(auction.Status) {
		return &auctionerrors.TransitionError{
			Action:  string(req.Action),
			Status:  string(auction.Status),
			Message: rule.RejectionMessage,
		}
	}

	now := s.now().UTC()
	if req.Action == model.ActionDelete {
		if err := s.repo.DeleteAuction(ctx, auctionID); err != nil {
			return fmt.Errorf("service: failed to delete auction %s: %w", auctionID, err)
		}
		s.publish(ctx, req.Action, auction, caller, now)
		return nil
	}

	fields := updateFields(req.Action, req.Data, now)
	if len(fields) == 0 {
		return fmt.Errorf("service: auction %s: %w", auctionID, auctionerrors.ErrUpdateDataRequired)
	}
	fields["updated_at"] = now

	if err := s.repo.UpdateAuction(ctx, auctionID, fields); err != nil {
		return fmt.Errorf("service: failed to update auction %s: %w", auctionID, err)
	}
	s.publish(ctx, req.Action, auction, caller, now)
	return nil
}

// protectedFields are never taken from caller-supplied update data
var protectedFields = map[string]struct{}{"id": {}, "shop_id": {}, "created_at": {}}

// updateFields builds the field changes an action applies. It returns nil
// for an update without usable data.
func updateFields(action model.BulkAction, data map[string]any, now time.Time) map[string]any {
	switch action {
	case model.ActionStart:
		return map[string]any{"status": string(model.StatusActive), "start_time": now}
	case model.ActionEnd:
		return map[string]any{"status": string(model.StatusEnded), "end_time": now}
	case model.ActionCancel:
		return map[string]any{"status": string(model.StatusCancelled)}
	case model.ActionFeature:
		return map[string]any{"is_featured": true}
	case model.ActionUnfeature:
		return map[string]any{"is_featured": false}
	case model.ActionUpdate:
		fields := make(map[string]any, len(data))
		for k, v := range data {
			if _, protected := protectedFields[k]; protected {
				continue
			}
			fields[k] = v
		}
		if len(fields) == 0 {
			return nil
		}
		return fields
	default:
		return nil
	}
}

// publish reports a mutation; a delivery failure never changes the item's outcome
func (s *AuctionService) publish(ctx context.Context, action model.BulkAction, auction model.Auction, caller model.Caller, at time.Time) {
	event := events.NewAuctionEvent(action, auction, caller.ID, at)
	if err := s.publisher.Publish(ctx, event); err != nil {
		utils.Error("failed to publish auction event", map[string]any{
			"event_type": event.Type,
			"auction_id": auction.ID,
			"error":      err.Error(),
		})
	}
}

// LiveAuctions returns active auctions that have not ended, soonest ending first
func (s *AuctionService) LiveAuctions(ctx context.Context) ([]model.Auction, error) {
	auctions, err := s.repo.ListLiveAuctions(ctx, s.now().UTC(), LiveAuctionsLimit)
	if err != nil {
		return nil, fmt.Errorf("service: failed to list live auctions: %w", err)
	}
	return auctions, nil
}

// FeaturedAuctions returns featured auctions by descending priority
func (s *AuctionService) FeaturedAuctions(ctx context.Context) ([]model.Auction, error) {
	auctions, err := s.repo.ListFeaturedAuctions(ctx, FeaturedAuctionsLimit)
	if err != nil {
		return nil, fmt.Errorf("service: failed to list featured auctions: %w", err)
	}
	return auctions, nil
}

// Watchlist returns the caller's watched auctions, newest first
func (s *AuctionService) Watchlist(ctx context.Context, caller model.Caller) ([]model.WatchRecord, error) {
	if caller.ID == "" {
		return nil, fmt.Errorf("service: watchlist: %w", auctionerrors.ErrUnauthenticated)
	}
	records, err := s.repo.GetWatchlist(ctx, caller.ID, WatchlistLimit)
	if err != nil {
		return nil, fmt.Errorf("service: failed to get watchlist for user %s: %w", caller.ID, err)
	}
	return records, nil
}
