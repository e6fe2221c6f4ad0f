package integrationtests

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func bidBody(bidderID, amount string) map[string]any {
	return map[string]any{"bidder_id": bidderID, "amount": amount}
}

// Full bidding scenario: create, outbid, reject low bid, close by time
func TestBiddingScenario(t *testing.T) {
	router, clock := SetupTestRouter()

	auctionID := createAuction(t, router, clock, map[string]any{
		"seller_id":      "seller1",
		"title":          "Vintage Camera",
		"description":    "1970s rangefinder",
		"starting_price": "10.00",
	})
	bidsURL := fmt.Sprintf("/auctions/%s/bids", auctionID)

	// Bidder A opens at 12.00
	resp, w := ExecuteRequestAndParse(t, router, http.MethodPost, bidsURL, bidBody("bidderA", "12.00"))
	require.Equal(t, http.StatusCreated, w.Code)
	require.Equal(t, "12", data(t, resp)["amount"])

	// Bidder B below the current price is rejected
	resp, w = ExecuteRequestAndParse(t, router, http.MethodPost, bidsURL, bidBody("bidderB", "11.00"))
	require.Equal(t, http.StatusConflict, w.Code)
	require.Equal(t, "bid amount too low", resp["message"])

	// Bidder B retries above and takes the lead
	resp, w = ExecuteRequestAndParse(t, router, http.MethodPost, bidsURL, bidBody("bidderB", "15.00"))
	require.Equal(t, http.StatusCreated, w.Code)

	resp, w = ExecuteRequestAndParse(t, router, http.MethodGet, "/auctions/"+auctionID, nil)
	require.Equal(t, http.StatusOK, w.Code)
	auction := data(t, resp)
	require.Equal(t, "15", auction["current_price"])
	require.Equal(t, "bidderB", auction["current_winner_id"])
	require.Equal(t, "active", auction["status"])
	require.Equal(t, float64(2), auction["bid_count"])

	// Past the end time every bid is rejected, however high
	clock.Advance(2 * time.Hour)

	resp, w = ExecuteRequestAndParse(t, router, http.MethodPost, bidsURL, bidBody("bidderC", "20.00"))
	require.Equal(t, http.StatusConflict, w.Code)
	require.Equal(t, "auction has ended", resp["message"])

	// Final state: B remains the winner at 15.00
	resp, w = ExecuteRequestAndParse(t, router, http.MethodGet, "/auctions/"+auctionID, nil)
	require.Equal(t, http.StatusOK, w.Code)
	auction = data(t, resp)
	require.Equal(t, "ended", auction["status"])
	require.Equal(t, "15", auction["current_price"])
	require.Equal(t, "bidderB", auction["current_winner_id"])

	resp, w = ExecuteRequestAndParse(t, router, http.MethodGet, fmt.Sprintf("/auctions/%s/winning", auctionID), nil)
	require.Equal(t, http.StatusOK, w.Code)
	winning := data(t, resp)
	require.Equal(t, "bidderB", winning["bidder_id"])
	require.Equal(t, "15", winning["amount"])

	// History is oldest-first and strictly increasing
	resp, w = ExecuteRequestAndParse(t, router, http.MethodGet, bidsURL, nil)
	require.Equal(t, http.StatusOK, w.Code)
	history := resp["data"].([]any)
	require.Len(t, history, 2)
	require.Equal(t, "12", history[0].(map[string]any)["amount"])
	require.Equal(t, "15", history[1].(map[string]any)["amount"])

	// each bidder sees exactly their own accepted bids
	resp, w = ExecuteRequestAndParse(t, router, http.MethodGet, "/users/bidderB/bids", nil)
	require.Equal(t, http.StatusOK, w.Code)
	mine := resp["data"].([]any)
	require.Len(t, mine, 1)
	require.Equal(t, "15", mine[0].(map[string]any)["amount"])

	resp, w = ExecuteRequestAndParse(t, router, http.MethodGet, "/users/bidderC/bids", nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.Len(t, resp["data"], 0)
}

// Lifecycle gating over HTTP
func TestBiddingLifecycle(t *testing.T) {
	router, clock := SetupTestRouter()

	auctionID := createAuction(t, router, clock, map[string]any{
		"seller_id":      "seller1",
		"title":          "Scheduled Item",
		"starting_price": "10.00",
		"start_time":     clock.Now().Add(time.Hour).Format(time.RFC3339),
		"end_time":       clock.Now().Add(2 * time.Hour).Format(time.RFC3339),
	})
	bidsURL := fmt.Sprintf("/auctions/%s/bids", auctionID)

	// not yet open
	resp, w := ExecuteRequestAndParse(t, router, http.MethodPost, bidsURL, bidBody("bidderA", "12.00"))
	require.Equal(t, http.StatusConflict, w.Code)
	require.Equal(t, "auction has not started", resp["message"])

	// the window opens at exactly start_time
	clock.Advance(time.Hour)
	_, w = ExecuteRequestAndParse(t, router, http.MethodPost, bidsURL, bidBody("bidderA", "12.00"))
	require.Equal(t, http.StatusCreated, w.Code)

	// the window closes at exactly end_time
	clock.Advance(time.Hour)
	resp, w = ExecuteRequestAndParse(t, router, http.MethodPost, bidsURL, bidBody("bidderB", "20.00"))
	require.Equal(t, http.StatusConflict, w.Code)
	require.Equal(t, "auction has ended", resp["message"])
}

// Seller self-bidding and validation failures
func TestBiddingRejections(t *testing.T) {
	router, clock := SetupTestRouter()

	auctionID := createAuction(t, router, clock, map[string]any{
		"seller_id":      "seller1",
		"title":          "Mountain Bike",
		"starting_price": "100.00",
	})
	bidsURL := fmt.Sprintf("/auctions/%s/bids", auctionID)

	tests := []struct {
		name       string
		url        string
		body       any
		wantStatus int
		wantMsg    string
	}{
		{
			name:       "self_bid",
			url:        bidsURL,
			body:       bidBody("seller1", "200.00"),
			wantStatus: http.StatusForbidden,
			wantMsg:    "seller cannot bid on own auction",
		},
		{
			name:       "equal_to_current_price",
			url:        bidsURL,
			body:       bidBody("bidderA", "100.00"),
			wantStatus: http.StatusConflict,
			wantMsg:    "bid amount too low",
		},
		{
			name:       "unknown_auction",
			url:        "/auctions/no-such-auction/bids",
			body:       bidBody("bidderA", "150.00"),
			wantStatus: http.StatusNotFound,
			wantMsg:    "auction not found",
		},
		{
			name:       "malformed_json",
			url:        bidsURL,
			body:       "{bidder_id: 'missing quotes'}",
			wantStatus: http.StatusBadRequest,
			wantMsg:    "invalid request payload",
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			resp, w := ExecuteRequestAndParse(t, router, http.MethodPost, tc.url, tc.body)
			require.Equal(t, tc.wantStatus, w.Code)
			require.Equal(t, tc.wantMsg, resp["message"])
		})
	}

	// smallest currency unit above the current price is accepted
	_, w := ExecuteRequestAndParse(t, router, http.MethodPost, bidsURL, bidBody("bidderA", "100.01"))
	require.Equal(t, http.StatusCreated, w.Code)
}

// Auction creation validation over HTTP
func TestCreateAuctionValidation(t *testing.T) {
	router, clock := SetupTestRouter()
	now := clock.Now()

	tests := []struct {
		name       string
		body       map[string]any
		wantStatus int
	}{
		{
			name: "valid",
			body: map[string]any{
				"seller_id": "seller1", "title": "ok", "starting_price": "5.00",
				"start_time": now.Format(time.RFC3339), "end_time": now.Add(time.Hour).Format(time.RFC3339),
			},
			wantStatus: http.StatusCreated,
		},
		{
			name: "zero_starting_price",
			body: map[string]any{
				"seller_id": "seller1", "title": "bad", "starting_price": "0",
				"start_time": now.Format(time.RFC3339), "end_time": now.Add(time.Hour).Format(time.RFC3339),
			},
			wantStatus: http.StatusBadRequest,
		},
		{
			name: "end_before_start",
			body: map[string]any{
				"seller_id": "seller1", "title": "bad", "starting_price": "5.00",
				"start_time": now.Format(time.RFC3339), "end_time": now.Add(-time.Hour).Format(time.RFC3339),
			},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "missing_fields",
			body:       map[string]any{"title": "bad"},
			wantStatus: http.StatusBadRequest,
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			_, w := ExecuteRequestAndParse(t, router, http.MethodPost, "/auctions", tc.body)
			require.Equal(t, tc.wantStatus, w.Code)
		})
	}
}

// Listing and filtering auctions
func TestListAuctions(t *testing.T) {
	router, clock := SetupTestRouter()
	now := clock.Now()

	createAuction(t, router, clock, map[string]any{
		"seller_id": "seller1", "title": "Vintage Camera", "starting_price": "10.00",
	})
	createAuction(t, router, clock, map[string]any{
		"seller_id": "seller2", "title": "Camera Tripod", "starting_price": "20.00",
		"start_time": now.Add(time.Hour).Format(time.RFC3339),
		"end_time":   now.Add(2 * time.Hour).Format(time.RFC3339),
	})
	createAuction(t, router, clock, map[string]any{
		"seller_id": "seller2", "title": "Mountain Bike", "starting_price": "30.00",
	})

	tests := []struct {
		name      string
		url       string
		wantCount int
	}{
		{name: "all", url: "/auctions", wantCount: 3},
		{name: "active", url: "/auctions?status=active", wantCount: 2},
		{name: "scheduled", url: "/auctions?status=scheduled", wantCount: 1},
		{name: "ended", url: "/auctions?status=ended", wantCount: 0},
		{name: "by_seller", url: "/auctions?seller_id=seller2", wantCount: 2},
		{name: "search", url: "/auctions?search=camera", wantCount: 2},
		{name: "seller_and_search", url: "/auctions?seller_id=seller2&search=camera", wantCount: 1},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			resp, w := ExecuteRequestAndParse(t, router, http.MethodGet, tc.url, nil)
			require.Equal(t, http.StatusOK, w.Code)
			require.Len(t, resp["data"], tc.wantCount)
		})
	}
}

// Metrics endpoint is wired
func TestMetricsEndpoint(t *testing.T) {
	router, _ := SetupTestRouter()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), "auction_bids_accepted_total")
}
