package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// AuctionStatus is derived from an auction's time bounds and the clock,
// never stored.
type AuctionStatus string

const (
	StatusScheduled AuctionStatus = "scheduled"
	StatusActive    AuctionStatus = "active"
	StatusEnded     AuctionStatus = "ended"
)

// User represents a participant in the auction system. Identity validation
// is owned by the session collaborator; the engine trusts the ids it is given.
type User struct {
	UserID   string `json:"user_id"`
	Username string `json:"username"`
}

// Auction represents a sellable item with a time-bounded bidding window.
// CurrentPrice and CurrentWinnerID are mutated only through bid admission;
// everything else is fixed at creation.
type Auction struct {
	AuctionID       string          `json:"auction_id"`
	SellerID        string          `json:"seller_id"`
	Title           string          `json:"title"`
	Description     string          `json:"description"`
	ImageURL        string          `json:"image_url,omitempty"`
	StartingPrice   decimal.Decimal `json:"starting_price"`
	CurrentPrice    decimal.Decimal `json:"current_price"`
	CurrentWinnerID string          `json:"current_winner_id,omitempty"`
	StartTime       time.Time       `json:"start_time"`
	EndTime         time.Time       `json:"end_time"`
	BidCount        int             `json:"bid_count"`
	CreatedAt       time.Time       `json:"created_at"`
}

// Bid represents an accepted offer on an auction. Sequence is assigned at
// commit time and totally orders accepted bids across the system.
type Bid struct {
	BidID      string          `json:"bid_id"`
	Sequence   uint64          `json:"sequence"`
	AuctionID  string          `json:"auction_id"`
	BidderID   string          `json:"bidder_id"`
	Amount     decimal.Decimal `json:"amount"`
	AcceptedAt time.Time       `json:"accepted_at"`
}
