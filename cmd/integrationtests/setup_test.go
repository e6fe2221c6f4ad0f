package integrationtests

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	bidding "auction-engine/internal/biddingService"
	"auction-engine/internal/repository"
	"auction-engine/internal/server"

	"github.com/gin-gonic/gin"
)

// testClock is a mutable time source shared between a test and the engine
type testClock struct {
	mu  sync.Mutex
	now time.Time
}

func newTestClock(start time.Time) *testClock {
	return &testClock{now: start}
}

func (c *testClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *testClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

// SetupTestRouter initializes the router with an in-memory repository and a
// test-controlled clock.
func SetupTestRouter(opts ...bidding.Option) (*gin.Engine, *testClock) {
	gin.SetMode(gin.TestMode)

	clock := newTestClock(time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC))
	repo := repository.NewMemoryRepo()

	opts = append([]bidding.Option{bidding.WithClock(clock.Now)}, opts...)
	service := bidding.NewBiddingService(repo, opts...)
	router := server.SetupRouter(service)
	return router, clock
}

// ExecuteRequestAndParse executes an HTTP request on the given router and
// parses the response envelope
func ExecuteRequestAndParse(t *testing.T, router *gin.Engine, method, url string, body any) (map[string]any, *httptest.ResponseRecorder) {
	t.Helper()

	var reqBody []byte
	var err error

	switch v := body.(type) {
	case nil:
	case []byte:
		reqBody = v
	case string:
		reqBody = []byte(v)
	default:
		reqBody, err = json.Marshal(v)
		if err != nil {
			t.Fatalf("failed to marshal body: %v", err)
		}
	}

	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, url, bytes.NewReader(reqBody))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	var resp map[string]any
	if len(w.Body.Bytes()) > 0 {
		if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
			t.Fatalf("failed to unmarshal response: %v", err)
		}
	}

	return resp, w
}

// data extracts the data envelope field as an object
func data(t *testing.T, resp map[string]any) map[string]any {
	t.Helper()
	d, ok := resp["data"].(map[string]any)
	if !ok {
		t.Fatalf("response has no data object: %v", resp)
	}
	return d
}

// createAuction creates an auction over HTTP and returns its id
func createAuction(t *testing.T, router *gin.Engine, clock *testClock, body map[string]any) string {
	t.Helper()

	if _, ok := body["start_time"]; !ok {
		body["start_time"] = clock.Now().Format(time.RFC3339)
	}
	if _, ok := body["end_time"]; !ok {
		body["end_time"] = clock.Now().Add(time.Hour).Format(time.RFC3339)
	}

	resp, w := ExecuteRequestAndParse(t, router, "POST", "/auctions", body)
	if w.Code != 201 {
		t.Fatalf("failed to create auction: status %d body %s", w.Code, w.Body.String())
	}
	return data(t, resp)["auction_id"].(string)
}
