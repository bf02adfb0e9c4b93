package events

import (
	"context"
	"encoding/json"
	"time"

	model "auction-marketplace/internal/models"
	"auction-marketplace/utils"
)

// Event types emitted after a successful bulk mutation
const (
	TypeAuctionStarted    = "auction.started"
	TypeAuctionEnded      = "auction.ended"
	TypeAuctionCancelled  = "auction.cancelled"
	TypeAuctionFeatured   = "auction.featured"
	TypeAuctionUnfeatured = "auction.unfeatured"
	TypeAuctionUpdated    = "auction.updated"
	TypeAuctionDeleted    = "auction.deleted"
)

var actionTypes = map[model.BulkAction]string{
	model.ActionStart:     TypeAuctionStarted,
	model.ActionEnd:       TypeAuctionEnded,
	model.ActionCancel:    TypeAuctionCancelled,
	model.ActionFeature:   TypeAuctionFeatured,
	model.ActionUnfeature: TypeAuctionUnfeatured,
	model.ActionUpdate:    TypeAuctionUpdated,
	model.ActionDelete:    TypeAuctionDeleted,
}

// AuctionEvent describes a change applied to an auction
type AuctionEvent struct {
	ID         string    `json:"id"`
	Type       string    `json:"type"`
	AuctionID  string    `json:"auction_id"`
	ShopID     string    `json:"shop_id"`
	ActorID    string    `json:"actor_id"`
	OccurredAt time.Time `json:"occurred_at"`
}

// NewAuctionEvent builds the event for an action applied to an auction
func NewAuctionEvent(action model.BulkAction, auction model.Auction, actorID string, at time.Time) AuctionEvent {
	return AuctionEvent{
		ID:         utils.GenerateID(),
		Type:       actionTypes[action],
		AuctionID:  auction.ID,
		ShopID:     auction.ShopID,
		ActorID:    actorID,
		OccurredAt: at.UTC(),
	}
}

// Publisher delivers auction events to downstream consumers
type Publisher interface {
	Publish(ctx context.Context, event AuctionEvent) error
	Close() error
}

// NopPublisher drops every event
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, AuctionEvent) error { return nil }
func (NopPublisher) Close() error                                { return nil }

func encode(event AuctionEvent) ([]byte, error) {
	return json.Marshal(event)
}
