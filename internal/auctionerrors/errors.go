package auctionerrors

import "errors"

// Repository-level errors
var (
	ErrAuctionNotFound = errors.New("auction not found")
	ErrDuplicateID     = errors.New("auction id already exists")
	ErrNoBids          = errors.New("no bids found for auction")
)

// business logic errors
var (
	ErrInvalidBid         = errors.New("invalid bid")
	ErrBidTooLow          = errors.New("bid amount too low")
	ErrSelfBid            = errors.New("seller cannot bid on own auction")
	ErrAuctionNotStarted  = errors.New("auction has not started")
	ErrAuctionEnded       = errors.New("auction has ended")
	ErrInvalidAuctionSpec = errors.New("invalid auction spec")
)
