package helpers

import (
	"time"

	model "auction-engine/internal/models"

	"github.com/shopspring/decimal"
)

// Request/Response DTOs
type PlaceBidRequest struct {
	BidderID string          `json:"bidder_id" binding:"required"`
	Amount   decimal.Decimal `json:"amount" binding:"required"`
}

type CreateAuctionRequest struct {
	SellerID      string          `json:"seller_id" binding:"required"`
	Title         string          `json:"title" binding:"required"`
	Description   string          `json:"description"`
	ImageURL      string          `json:"image_url"`
	StartingPrice decimal.Decimal `json:"starting_price" binding:"required"`
	StartTime     time.Time       `json:"start_time" binding:"required"`
	EndTime       time.Time       `json:"end_time" binding:"required"`
}

type BidResponse struct {
	BidID      string `json:"bid_id"`
	Sequence   uint64 `json:"sequence"`
	AuctionID  string `json:"auction_id"`
	BidderID   string `json:"bidder_id"`
	Amount     string `json:"amount"`
	AcceptedAt string `json:"accepted_at"`
}

type AuctionResponse struct {
	AuctionID       string `json:"auction_id"`
	SellerID        string `json:"seller_id"`
	Title           string `json:"title"`
	Description     string `json:"description"`
	ImageURL        string `json:"image_url,omitempty"`
	StartingPrice   string `json:"starting_price"`
	CurrentPrice    string `json:"current_price"`
	CurrentWinnerID string `json:"current_winner_id,omitempty"`
	Status          string `json:"status"`
	StartTime       string `json:"start_time"`
	EndTime         string `json:"end_time"`
	BidCount        int    `json:"bid_count"`
	CreatedAt       string `json:"created_at"`
}

// ToBidResponse converts a bid record to its response shape
func ToBidResponse(bid model.Bid) BidResponse {
	return BidResponse{
		BidID:      bid.BidID,
		Sequence:   bid.Sequence,
		AuctionID:  bid.AuctionID,
		BidderID:   bid.BidderID,
		Amount:     bid.Amount.String(),
		AcceptedAt: bid.AcceptedAt.UTC().Format(time.RFC3339),
	}
}

// ToAuctionResponse converts an auction record plus its derived status to
// the response shape
func ToAuctionResponse(a model.Auction, status model.AuctionStatus) AuctionResponse {
	return AuctionResponse{
		AuctionID:       a.AuctionID,
		SellerID:        a.SellerID,
		Title:           a.Title,
		Description:     a.Description,
		ImageURL:        a.ImageURL,
		StartingPrice:   a.StartingPrice.String(),
		CurrentPrice:    a.CurrentPrice.String(),
		CurrentWinnerID: a.CurrentWinnerID,
		Status:          string(status),
		StartTime:       a.StartTime.UTC().Format(time.RFC3339),
		EndTime:         a.EndTime.UTC().Format(time.RFC3339),
		BidCount:        a.BidCount,
		CreatedAt:       a.CreatedAt.UTC().Format(time.RFC3339),
	}
}
