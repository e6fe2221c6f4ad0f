package lifecycle

import (
	"time"

	model "auction-engine/internal/models"
)

// Status derives an auction's lifecycle status from its time bounds and the
// given clock reading. Pure function, no side effects.
//
// The upper boundary is inclusive: at now == endTime the auction is already
// ended, so a bid racing the boundary is rejected.
func Status(startTime, endTime, now time.Time) model.AuctionStatus {
	if now.Before(startTime) {
		return model.StatusScheduled
	}
	if now.Before(endTime) {
		return model.StatusActive
	}
	return model.StatusEnded
}

// Of is a convenience wrapper deriving the status of an auction record.
func Of(a model.Auction, now time.Time) model.AuctionStatus {
	return Status(a.StartTime, a.EndTime, now)
}
