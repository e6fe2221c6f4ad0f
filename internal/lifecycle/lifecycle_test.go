package lifecycle

import (
	"testing"
	"time"

	model "auction-engine/internal/models"

	"github.com/stretchr/testify/require"
)

func TestStatus(t *testing.T) {
	t.Parallel()

	start := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	end := start.Add(1 * time.Hour)

	tests := []struct {
		name string
		now  time.Time
		want model.AuctionStatus
	}{
		{name: "well_before_start", now: start.Add(-24 * time.Hour), want: model.StatusScheduled},
		{name: "one_ns_before_start", now: start.Add(-time.Nanosecond), want: model.StatusScheduled},
		{name: "exactly_at_start", now: start, want: model.StatusActive},
		{name: "mid_window", now: start.Add(30 * time.Minute), want: model.StatusActive},
		{name: "one_ns_before_end", now: end.Add(-time.Nanosecond), want: model.StatusActive},
		{name: "exactly_at_end", now: end, want: model.StatusEnded},
		{name: "after_end", now: end.Add(time.Second), want: model.StatusEnded},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			require.Equal(t, tc.want, Status(start, end, tc.now))
		})
	}
}

func TestOf(t *testing.T) {
	t.Parallel()

	start := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	a := model.Auction{StartTime: start, EndTime: start.Add(time.Hour)}

	require.Equal(t, model.StatusActive, Of(a, start.Add(time.Minute)))
	require.Equal(t, model.StatusEnded, Of(a, start.Add(time.Hour)))
}
