package sweeper

import (
	"time"

	model "auction-engine/internal/models"
	"auction-engine/utils"
)

// auctionLister is the read-only slice of the bidding service the sweeper
// needs.
type auctionLister interface {
	ListAuctions(status model.AuctionStatus, sellerID, search string) ([]model.Auction, error)
}

// Sweeper periodically reports auctions whose bidding window has closed.
// It only reads derived status and never mutates engine state, so a missed
// or repeated tick is harmless. Each auction is reported once.
type Sweeper struct {
	svc      auctionLister
	interval time.Duration
	reported map[string]struct{}
	stop     chan struct{}
	done     chan struct{}
}

// New creates a sweeper that checks for newly ended auctions every interval
func New(svc auctionLister, interval time.Duration) *Sweeper {
	return &Sweeper{
		svc:      svc,
		interval: interval,
		reported: make(map[string]struct{}),
		stop:     make(chan struct{}),
		done:     make(chan struct{}),
	}
}

// Start launches the sweep loop in a goroutine
func (s *Sweeper) Start() {
	go func() {
		defer close(s.done)
		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				s.sweep()
			case <-s.stop:
				return
			}
		}
	}()
}

// Stop halts the sweep loop and waits for it to finish
func (s *Sweeper) Stop() {
	close(s.stop)
	<-s.done
}

// sweep logs every ended auction not yet reported. Returns the number of
// newly reported auctions.
func (s *Sweeper) sweep() int {
	auctions, err := s.svc.ListAuctions(model.StatusEnded, "", "")
	if err != nil {
		utils.Error("sweeper: failed to list ended auctions", map[string]any{"error": err.Error()})
		return 0
	}

	reported := 0
	for _, a := range auctions {
		if _, ok := s.reported[a.AuctionID]; ok {
			continue
		}
		s.reported[a.AuctionID] = struct{}{}
		reported++

		fields := map[string]any{
			"auction_id":  a.AuctionID,
			"seller_id":   a.SellerID,
			"title":       a.Title,
			"final_price": a.CurrentPrice.String(),
			"bid_count":   a.BidCount,
		}
		if a.CurrentWinnerID != "" {
			fields["winner_id"] = a.CurrentWinnerID
			utils.Info("sweeper: auction closed with winner", fields)
		} else {
			utils.Info("sweeper: auction closed without bids", fields)
		}
	}
	return reported
}
