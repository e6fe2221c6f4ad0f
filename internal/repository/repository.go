package repository

import (
	"fmt"
	"sort"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"auction-engine/internal/auctionerrors"
	"auction-engine/internal/lifecycle"
	model "auction-engine/internal/models"
)

// AuctionFilter narrows ListAuctions results. Zero-value fields match
// everything. Status is derived against Now at read time.
type AuctionFilter struct {
	Status   model.AuctionStatus
	SellerID string
	Search   string
	Now      time.Time
}

// AuctionDB defines the auction and bid storage interface for the engine.
//
// CommitBid is the only mutator of an auction's current price, winner and
// ledger: it runs decide under the auction's exclusive lock and, when decide
// yields a bid, appends it to the ledger and updates the auction record as
// one atomic unit. A decide error aborts with no state change.
type AuctionDB interface {
	CreateAuction(a model.Auction) error
	GetAuction(auctionID string) (model.Auction, error)
	ListAuctions(filter AuctionFilter) ([]model.Auction, error)
	GetBidHistory(auctionID string, offset, limit int) ([]model.Bid, error)
	GetBidsByBidder(bidderID string) ([]model.Bid, error)
	GetWinningBid(auctionID string) (model.Bid, error)
	CommitBid(auctionID string, decide func(current model.Auction) (model.Bid, error)) (model.Bid, model.Auction, error)
}

// auctionEntry bundles an auction record with its bid ledger under one lock.
// The entry lock is the per-auction serialization point: commits for the same
// auction never interleave, commits for different auctions never contend.
type auctionEntry struct {
	mu      sync.RWMutex
	auction model.Auction
	ledger  []model.Bid
}

// MemoryRepo is a concurrency-safe in-memory implementation of AuctionDB.
type MemoryRepo struct {
	mu      sync.RWMutex // guards the entries map, never held across a commit
	entries map[string]*auctionEntry
	seq     atomic.Uint64
}

// NewMemoryRepo creates a new in-memory repository instance
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{
		entries: make(map[string]*auctionEntry),
	}
}

func (r *MemoryRepo) entry(auctionID string) (*auctionEntry, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.entries[auctionID]
	return e, ok
}

// CreateAuction stores a new auction record
func (r *MemoryRepo) CreateAuction(a model.Auction) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.entries[a.AuctionID]; ok {
		return fmt.Errorf("create auction %s: %w", a.AuctionID, auctionerrors.ErrDuplicateID)
	}
	r.entries[a.AuctionID] = &auctionEntry{auction: a}
	return nil
}

// GetAuction returns a consistent snapshot of the auction record
func (r *MemoryRepo) GetAuction(auctionID string) (model.Auction, error) {
	e, ok := r.entry(auctionID)
	if !ok {
		return model.Auction{}, fmt.Errorf("get auction %s: %w", auctionID, auctionerrors.ErrAuctionNotFound)
	}

	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.auction, nil
}

// ListAuctions returns snapshots of all auctions matching the filter,
// ordered by creation time
func (r *MemoryRepo) ListAuctions(filter AuctionFilter) ([]model.Auction, error) {
	r.mu.RLock()
	entries := make([]*auctionEntry, 0, len(r.entries))
	for _, e := range r.entries {
		entries = append(entries, e)
	}
	r.mu.RUnlock()

	auctions := make([]model.Auction, 0, len(entries))
	for _, e := range entries {
		e.mu.RLock()
		a := e.auction
		e.mu.RUnlock()

		if filter.Status != "" && lifecycle.Of(a, filter.Now) != filter.Status {
			continue
		}
		if filter.SellerID != "" && a.SellerID != filter.SellerID {
			continue
		}
		if filter.Search != "" && !strings.Contains(strings.ToLower(a.Title), strings.ToLower(filter.Search)) {
			continue
		}
		auctions = append(auctions, a)
	}

	sort.Slice(auctions, func(i, j int) bool {
		if auctions[i].CreatedAt.Equal(auctions[j].CreatedAt) {
			return auctions[i].AuctionID < auctions[j].AuctionID
		}
		return auctions[i].CreatedAt.Before(auctions[j].CreatedAt)
	})
	return auctions, nil
}

// GetBidHistory returns a page of the auction's accepted bids, oldest first.
// limit <= 0 means all remaining bids from offset.
func (r *MemoryRepo) GetBidHistory(auctionID string, offset, limit int) ([]model.Bid, error) {
	e, ok := r.entry(auctionID)
	if !ok {
		return nil, fmt.Errorf("get bid history for auction %s: %w", auctionID, auctionerrors.ErrAuctionNotFound)
	}

	e.mu.RLock()
	defer e.mu.RUnlock()

	if len(e.ledger) == 0 {
		return nil, fmt.Errorf("get bid history for auction %s: %w", auctionID, auctionerrors.ErrNoBids)
	}
	if offset < 0 {
		offset = 0
	}
	if offset >= len(e.ledger) {
		return []model.Bid{}, nil
	}
	end := len(e.ledger)
	if limit > 0 && offset+limit < end {
		end = offset + limit
	}
	return append([]model.Bid(nil), e.ledger[offset:end]...), nil
}

// GetBidsByBidder returns every accepted bid a bidder has placed across all
// auctions, in commit order. A bidder with no bids gets an empty slice.
func (r *MemoryRepo) GetBidsByBidder(bidderID string) ([]model.Bid, error) {
	r.mu.RLock()
	entries := make([]*auctionEntry, 0, len(r.entries))
	for _, e := range r.entries {
		entries = append(entries, e)
	}
	r.mu.RUnlock()

	bids := make([]model.Bid, 0)
	for _, e := range entries {
		e.mu.RLock()
		for _, b := range e.ledger {
			if b.BidderID == bidderID {
				bids = append(bids, b)
			}
		}
		e.mu.RUnlock()
	}

	sort.Slice(bids, func(i, j int) bool {
		return bids[i].Sequence < bids[j].Sequence
	})
	return bids, nil
}

// GetWinningBid returns the most recently accepted bid for an auction. The
// ledger is strictly increasing in amount, so the last entry is the winner.
func (r *MemoryRepo) GetWinningBid(auctionID string) (model.Bid, error) {
	e, ok := r.entry(auctionID)
	if !ok {
		return model.Bid{}, fmt.Errorf("get winning bid for auction %s: %w", auctionID, auctionerrors.ErrAuctionNotFound)
	}

	e.mu.RLock()
	defer e.mu.RUnlock()

	if len(e.ledger) == 0 {
		return model.Bid{}, fmt.Errorf("get winning bid for auction %s: %w", auctionID, auctionerrors.ErrNoBids)
	}
	return e.ledger[len(e.ledger)-1], nil
}

// CommitBid serializes bid admission for one auction. decide is invoked with
// the current auction snapshot while the auction's write lock is held; if it
// returns a bid, the ledger append and the price/winner update are applied
// together before the lock is released. Callers must keep decide free of I/O.
func (r *MemoryRepo) CommitBid(auctionID string, decide func(current model.Auction) (model.Bid, error)) (model.Bid, model.Auction, error) {
	e, ok := r.entry(auctionID)
	if !ok {
		return model.Bid{}, model.Auction{}, fmt.Errorf("commit bid for auction %s: %w", auctionID, auctionerrors.ErrAuctionNotFound)
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	bid, err := decide(e.auction)
	if err != nil {
		return model.Bid{}, model.Auction{}, err
	}

	bid.Sequence = r.seq.Add(1)
	e.ledger = append(e.ledger, bid)
	e.auction.CurrentPrice = bid.Amount
	e.auction.CurrentWinnerID = bid.BidderID
	e.auction.BidCount = len(e.ledger)

	return bid, e.auction, nil
}
