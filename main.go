package main

import (
	"fmt"
	"os"
	"time"

	bidding "auction-engine/internal/biddingService"
	"auction-engine/internal/config"
	"auction-engine/internal/repository"
	"auction-engine/internal/server"
	"auction-engine/internal/sweeper"
	"auction-engine/utils"

	"github.com/shopspring/decimal"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	repo := repository.NewMemoryRepo()

	biddingSvc := bidding.NewBiddingService(repo, bidding.WithMinIncrement(cfg.MinIncrement))

	prepopulateAuctions(biddingSvc)

	sw := sweeper.New(biddingSvc, cfg.SweepInterval)
	sw.Start()
	defer sw.Stop()

	router := server.SetupRouter(biddingSvc)

	fmt.Printf("Starting auction server on %s...\n", cfg.Port)
	if err := router.Run(cfg.Port); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to start server: %v\n", err)
		os.Exit(1)
	}
}

// prepopulateAuctions adds sample auctions so the API is browsable out of
// the box
func prepopulateAuctions(svc *bidding.BiddingService) {
	now := time.Now().UTC()

	specs := []bidding.CreateAuctionSpec{
		{
			SellerID:      "seller1",
			Title:         "Vintage Camera",
			Description:   "1970s rangefinder in working condition",
			StartingPrice: decimal.NewFromFloat(100.00),
			StartTime:     now,
			EndTime:       now.Add(24 * time.Hour),
		},
		{
			SellerID:      "seller1",
			Title:         "Mountain Bike",
			Description:   "Hardtail, medium frame, recently serviced",
			StartingPrice: decimal.NewFromFloat(250.00),
			StartTime:     now,
			EndTime:       now.Add(48 * time.Hour),
		},
		{
			SellerID:      "seller2",
			Title:         "Antique Wall Clock",
			Description:   "Pendulum clock, chimes on the hour",
			StartingPrice: decimal.NewFromFloat(150.00),
			StartTime:     now.Add(1 * time.Hour),
			EndTime:       now.Add(72 * time.Hour),
		},
	}

	for _, spec := range specs {
		auction, err := svc.CreateAuction(spec)
		if err != nil {
			utils.Warn("failed to seed auction", map[string]any{"title": spec.Title, "error": err.Error()})
			continue
		}
		utils.Info("seeded auction", map[string]any{"auction_id": auction.AuctionID, "title": auction.Title})
	}
}
