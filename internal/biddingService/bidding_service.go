package bidding

import (
	"fmt"
	"time"

	"auction-engine/internal/auctionerrors"
	"auction-engine/internal/lifecycle"
	model "auction-engine/internal/models"
	"auction-engine/internal/repository"
	"auction-engine/utils"

	"github.com/shopspring/decimal"
)

// BiddingService is the admission controller for the auction engine: it owns
// bid validation, per-auction serialization of accepted bids (via the
// repository's CommitBid), and auction creation.
type BiddingService struct {
	repo         repository.AuctionDB
	clock        func() time.Time
	minIncrement decimal.Decimal
}

// Option configures a BiddingService.
type Option func(*BiddingService)

// WithClock overrides the time source. Used by tests to pin lifecycle
// boundaries.
func WithClock(clock func() time.Time) Option {
	return func(s *BiddingService) {
		s.clock = clock
	}
}

// WithMinIncrement requires bids to be at least currentPrice + inc. A zero
// increment keeps the default strictly-greater-than rule.
func WithMinIncrement(inc decimal.Decimal) Option {
	return func(s *BiddingService) {
		s.minIncrement = inc
	}
}

// NewBiddingService creates a new BiddingService instance
func NewBiddingService(repo repository.AuctionDB, opts ...Option) *BiddingService {
	s := &BiddingService{
		repo:  repo,
		clock: func() time.Time { return time.Now().UTC() },
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// CreateAuctionSpec carries the caller-supplied fields for a new auction.
type CreateAuctionSpec struct {
	SellerID      string
	Title         string
	Description   string
	ImageURL      string
	StartingPrice decimal.Decimal
	StartTime     time.Time
	EndTime       time.Time
}

// CreateAuction validates the spec and stores a new auction with
// currentPrice initialized to the starting price.
func (s *BiddingService) CreateAuction(spec CreateAuctionSpec) (model.Auction, error) {
	if spec.SellerID == "" {
		return model.Auction{}, fmt.Errorf("service: %w - missing seller id", auctionerrors.ErrInvalidAuctionSpec)
	}
	if spec.Title == "" {
		return model.Auction{}, fmt.Errorf("service: %w - missing title", auctionerrors.ErrInvalidAuctionSpec)
	}
	if !spec.StartingPrice.IsPositive() {
		return model.Auction{}, fmt.Errorf("service: %w - starting price must be positive", auctionerrors.ErrInvalidAuctionSpec)
	}
	if !spec.EndTime.After(spec.StartTime) {
		return model.Auction{}, fmt.Errorf("service: %w - end time must be after start time", auctionerrors.ErrInvalidAuctionSpec)
	}

	auction := model.Auction{
		AuctionID:     utils.GenerateID(),
		SellerID:      spec.SellerID,
		Title:         spec.Title,
		Description:   spec.Description,
		ImageURL:      spec.ImageURL,
		StartingPrice: spec.StartingPrice,
		CurrentPrice:  spec.StartingPrice,
		StartTime:     spec.StartTime,
		EndTime:       spec.EndTime,
		CreatedAt:     s.clock(),
	}

	if err := s.repo.CreateAuction(auction); err != nil {
		return model.Auction{}, fmt.Errorf("service: failed to create auction: %w", err)
	}
	return auction, nil
}

// PlaceBid validates and records a bid on an auction.
//
// Lookup, lifecycle and self-bid checks run first as cheap pre-checks; the
// authoritative validation happens again inside the repository's per-auction
// critical section, because the auction may end or gain a higher bid between
// the pre-check and the commit.
func (s *BiddingService) PlaceBid(auctionID, bidderID string, amount decimal.Decimal) (model.Bid, error) {
	if auctionID == "" || bidderID == "" {
		return model.Bid{}, fmt.Errorf("service: %w - missing auctionID or bidderID", auctionerrors.ErrInvalidBid)
	}

	// lookup comes first so an unknown auction is reported as not found
	// even when the bid itself is malformed
	auction, err := s.repo.GetAuction(auctionID)
	if err != nil {
		return model.Bid{}, fmt.Errorf("service: failed to look up auction %s: %w", auctionID, err)
	}

	if !amount.IsPositive() {
		return model.Bid{}, fmt.Errorf("service: %w - non-positive bid amount", auctionerrors.ErrInvalidBid)
	}

	if err := s.checkActive(auction, s.clock()); err != nil {
		return model.Bid{}, err
	}
	if auction.SellerID == bidderID {
		return model.Bid{}, fmt.Errorf("service: %w - auction %s", auctionerrors.ErrSelfBid, auctionID)
	}

	bid, _, err := s.repo.CommitBid(auctionID, func(current model.Auction) (model.Bid, error) {
		now := s.clock()
		if err := s.checkActive(current, now); err != nil {
			return model.Bid{}, err
		}
		if err := s.checkAmount(current.CurrentPrice, amount); err != nil {
			return model.Bid{}, err
		}
		return model.Bid{
			BidID:      utils.GenerateID(),
			AuctionID:  auctionID,
			BidderID:   bidderID,
			Amount:     amount,
			AcceptedAt: now,
		}, nil
	})
	if err != nil {
		return model.Bid{}, fmt.Errorf("service: failed to record bid for auction %s by bidder %s: %w", auctionID, bidderID, err)
	}

	return bid, nil
}

// checkActive rejects bids on auctions outside their bidding window,
// distinguishing scheduled from ended for the caller.
func (s *BiddingService) checkActive(a model.Auction, now time.Time) error {
	switch lifecycle.Of(a, now) {
	case model.StatusScheduled:
		return fmt.Errorf("service: %w - auction %s starts at %s", auctionerrors.ErrAuctionNotStarted, a.AuctionID, a.StartTime.UTC().Format(time.RFC3339))
	case model.StatusEnded:
		return fmt.Errorf("service: %w - auction %s ended at %s", auctionerrors.ErrAuctionEnded, a.AuctionID, a.EndTime.UTC().Format(time.RFC3339))
	}
	return nil
}

// checkAmount enforces the price rule: strictly greater than the current
// price, or at least currentPrice + minIncrement when one is configured.
func (s *BiddingService) checkAmount(currentPrice, amount decimal.Decimal) error {
	if s.minIncrement.IsPositive() {
		floor := currentPrice.Add(s.minIncrement)
		if amount.LessThan(floor) {
			return fmt.Errorf("service: %w - minimum acceptable bid is %s", auctionerrors.ErrBidTooLow, floor.String())
		}
		return nil
	}
	if amount.LessThanOrEqual(currentPrice) {
		return fmt.Errorf("service: %w - current price is %s", auctionerrors.ErrBidTooLow, currentPrice.String())
	}
	return nil
}

// GetAuction returns a consistent snapshot of an auction
func (s *BiddingService) GetAuction(auctionID string) (model.Auction, error) {
	if auctionID == "" {
		return model.Auction{}, fmt.Errorf("service: %w - empty auction ID", auctionerrors.ErrInvalidBid)
	}

	auction, err := s.repo.GetAuction(auctionID)
	if err != nil {
		return model.Auction{}, fmt.Errorf("service: failed to get auction %s: %w", auctionID, err)
	}
	return auction, nil
}

// ListAuctions returns auctions filtered by derived status, seller and
// title substring. Empty filter values match everything.
func (s *BiddingService) ListAuctions(status model.AuctionStatus, sellerID, search string) ([]model.Auction, error) {
	auctions, err := s.repo.ListAuctions(repository.AuctionFilter{
		Status:   status,
		SellerID: sellerID,
		Search:   search,
		Now:      s.clock(),
	})
	if err != nil {
		return nil, fmt.Errorf("service: failed to list auctions: %w", err)
	}
	return auctions, nil
}

// GetBidHistory returns a page of an auction's accepted bids, oldest first
func (s *BiddingService) GetBidHistory(auctionID string, offset, limit int) ([]model.Bid, error) {
	if auctionID == "" {
		return nil, fmt.Errorf("service: %w - empty auction ID", auctionerrors.ErrInvalidBid)
	}

	bids, err := s.repo.GetBidHistory(auctionID, offset, limit)
	if err != nil {
		return nil, fmt.Errorf("service: failed to get bid history for auction %s: %w", auctionID, err)
	}
	return bids, nil
}

// GetBidsByBidder returns all accepted bids placed by a bidder across
// auctions, in commit order
func (s *BiddingService) GetBidsByBidder(bidderID string) ([]model.Bid, error) {
	if bidderID == "" {
		return nil, fmt.Errorf("service: %w - empty bidder ID", auctionerrors.ErrInvalidBid)
	}

	bids, err := s.repo.GetBidsByBidder(bidderID)
	if err != nil {
		return nil, fmt.Errorf("service: failed to get bids for bidder %s: %w", bidderID, err)
	}
	return bids, nil
}

// GetWinningBid returns the latest accepted bid for an auction
func (s *BiddingService) GetWinningBid(auctionID string) (model.Bid, error) {
	if auctionID == "" {
		return model.Bid{}, fmt.Errorf("service: %w - empty auction ID", auctionerrors.ErrInvalidBid)
	}

	bid, err := s.repo.GetWinningBid(auctionID)
	if err != nil {
		return model.Bid{}, fmt.Errorf("service: failed to get winning bid for auction %s: %w", auctionID, err)
	}
	return bid, nil
}

// StatusOf derives an auction's lifecycle status against the service clock
func (s *BiddingService) StatusOf(a model.Auction) model.AuctionStatus {
	return lifecycle.Of(a, s.clock())
}
