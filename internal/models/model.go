package models

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"auction-marketplace/internal/auctionerrors"
)

// AuctionStatus is the lifecycle state of an auction
type AuctionStatus string

const (
	StatusDraft     AuctionStatus = "draft"
	StatusScheduled AuctionStatus = "scheduled"
	StatusActive    AuctionStatus = "active"
	StatusEnded     AuctionStatus = "ended"
	StatusCancelled AuctionStatus = "cancelled"
)

// Valid reports whether s is a known auction status
func (s AuctionStatus) Valid() bool {
	switch s {
	case StatusDraft, StatusScheduled, StatusActive, StatusEnded, StatusCancelled:
		return true
	}
	return false
}

// Role is the marketplace role of an authenticated caller
type Role string

const (
	RoleBuyer  Role = "buyer"
	RoleSeller Role = "seller"
	RoleAdmin  Role = "admin"
)

// Caller identifies the user on whose behalf a request runs
type Caller struct {
	ID   string `json:"id"`
	Role Role   `json:"role"`
}

// Shop represents a seller's storefront
type Shop struct {
	ID      string `json:"id"`
	OwnerID string `json:"owner_id"`
	Name    string `json:"name"`
}

// WatchTypeAuction marks a watch record that follows an auction
const WatchTypeAuction = "auction_watch"

// WatchRecord represents a user following a listing
type WatchRecord struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Type      string    `json:"type"`
	AuctionID string    `json:"auction_id"`
	CreatedAt time.Time `json:"created_at"`
}

// Auction represents an auction listing as stored in the document store.
// Fields the schema does not name are preserved in Extra.
type Auction struct {
	ID               string         `json:"id"`
	ShopID           string         `json:"shop_id"`
	Name             string         `json:"name"`
	Description      string         `json:"description,omitempty"`
	Status           AuctionStatus  `json:"status"`
	StartingBid      float64        `json:"starting_bid"`
	CurrentBid       float64        `json:"current_bid"`
	StartTime        *time.Time     `json:"start_time,omitempty"`
	EndTime          *time.Time     `json:"end_time,omitempty"`
	IsFeatured       bool           `json:"is_featured"`
	FeaturedPriority int            `json:"featured_priority"`
	CreatedAt        time.Time      `json:"created_at"`
	UpdatedAt        time.Time      `json:"updated_at"`
	Extra            map[string]any `json:"-"`
}

var auctionFields = map[string]struct{}{
	"id": {}, "shop_id": {}, "name": {}, "description": {}, "status": {},
	"starting_bid": {}, "current_bid": {}, "start_time": {}, "end_time": {},
	"is_featured": {}, "featured_priority": {}, "created_at": {}, "updated_at": {},
}

// auctionSchema has Auction's fields without its JSON methods
type auctionSchema Auction

// ParseAuction decodes a raw document into a validated Auction
func ParseAuction(doc map[string]any) (Auction, error) {
	raw, err := json.Marshal(doc)
	if err != nil {
		return Auction{}, fmt.Errorf("%w: %v", auctionerrors.ErrInvalidDocument, err)
	}

	var schema auctionSchema
	if err := json.Unmarshal(raw, &schema); err != nil {
		return Auction{}, fmt.Errorf("%w: %v", auctionerrors.ErrInvalidDocument, err)
	}
	a := Auction(schema)

	for k, v := range doc {
		if _, known := auctionFields[k]; known {
			continue
		}
		if a.Extra == nil {
			a.Extra = make(map[string]any)
		}
		a.Extra[k] = v
	}

	if err := a.Validate(); err != nil {
		return Auction{}, err
	}
	return a, nil
}

// Validate checks the invariants every stored auction must hold
func (a Auction) Validate() error {
	if strings.TrimSpace(a.ID) == "" {
		return fmt.Errorf("%w: missing id", auctionerrors.ErrInvalidDocument)
	}
	if !a.Status.Valid() {
		return fmt.Errorf("%w: unknown status %q", auctionerrors.ErrInvalidDocument, a.Status)
	}
	return nil
}

// Document flattens the auction, including Extra, into a raw document
func (a Auction) Document() map[string]any {
	doc := make(map[string]any, len(auctionFields)+len(a.Extra))
	for k, v := range a.Extra {
		doc[k] = v
	}

	doc["id"] = a.ID
	doc["shop_id"] = a.ShopID
	doc["name"] = a.Name
	if a.Description != "" {
		doc["description"] = a.Description
	}
	doc["status"] = string(a.Status)
	doc["starting_bid"] = a.StartingBid
	doc["current_bid"] = a.CurrentBid
	if a.StartTime != nil {
		doc["start_time"] = a.StartTime.UTC()
	}
	if a.EndTime != nil {
		doc["end_time"] = a.EndTime.UTC()
	}
	doc["is_featured"] = a.IsFeatured
	doc["featured_priority"] = a.FeaturedPriority
	doc["created_at"] = a.CreatedAt.UTC()
	doc["updated_at"] = a.UpdatedAt.UTC()
	return doc
}

// MarshalJSON writes the auction together with its extra fields
func (a Auction) MarshalJSON() ([]byte, error) {
	return json.Marshal(a.Document())
}

// UnmarshalJSON reads an auction document, keeping unknown fields in Extra
func (a *Auction) UnmarshalJSON(data []byte) error {
	var doc map[string]any
	if err := json.Unmarshal(data, &doc); err != nil {
		return err
	}
	parsed, err := ParseAuction(doc)
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}
