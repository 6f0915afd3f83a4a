package queue

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatLine_Booked(t *testing.T) {
	body, err := json.Marshal(SeatsBookedEvent{
		BookingRef: "ref-1",
		VenueID:    1,
		Mode:       "scattered",
		Seats:      []int{1, 3, 5},
		BookedAt:   "2026-10-17T10:00:00Z",
	})
	require.NoError(t, err)

	line, err := FormatLine(SeatsBookedQueue, body)
	require.NoError(t, err)
	assert.Equal(t, "[2026-10-17T10:00:00Z] Seats booked | ref=ref-1 | venue_id=1 | mode=scattered | seats=[1,3,5]\n", line)
}

func TestFormatLine_Rejected(t *testing.T) {
	body, err := json.Marshal(SeatsRejectedEvent{VenueID: 2, Available: 5, Requested: 6, RejectedAt: "t"})
	require.NoError(t, err)

	line, err := FormatLine(SeatsRejectedQueue, body)
	require.NoError(t, err)
	assert.Equal(t, "[t] Booking rejected | venue_id=2 | available=5 | requested=6\n", line)
}

func TestFormatLine_Errors(t *testing.T) {
	_, err := FormatLine(SeatsBookedQueue, []byte("{"))
	assert.Error(t, err)
	_, err = FormatLine("other", []byte("{}"))
	assert.Error(t, err)
}

func TestAppendLine(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "logs")
	require.NoError(t, appendLine(dir, "a\n"))
	require.NoError(t, appendLine(dir, "b\n"))

	b, err := os.ReadFile(filepath.Join(dir, "booking.log"))
	require.NoError(t, err)
	assert.Equal(t, "a\nb\n", string(b))
}
