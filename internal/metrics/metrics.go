package metrics

import (
	"errors"

	"auction-engine/internal/auctionerrors"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	BidsAccepted = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "auction_bids_accepted_total",
			Help: "Counter for accepted bids.",
		})
	BidsRejected = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "auction_bids_rejected_total",
			Help: "Counter for rejected bids by rejection reason.",
		},
		[]string{"reason"},
	)
	AuctionsCreated = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "auction_auctions_created_total",
			Help: "Counter for created auctions.",
		})
)

// RejectReason maps a rejection error to its metric label.
func RejectReason(err error) string {
	switch {
	case errors.Is(err, auctionerrors.ErrAuctionNotFound):
		return "not_found"
	case errors.Is(err, auctionerrors.ErrAuctionNotStarted):
		return "not_started"
	case errors.Is(err, auctionerrors.ErrAuctionEnded):
		return "ended"
	case errors.Is(err, auctionerrors.ErrSelfBid):
		return "self_bid"
	case errors.Is(err, auctionerrors.ErrBidTooLow):
		return "too_low"
	case errors.Is(err, auctionerrors.ErrInvalidBid):
		return "invalid"
	default:
		return "error"
	}
}
