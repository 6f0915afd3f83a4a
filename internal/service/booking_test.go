package service

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/seat-booking/internal/config"
	"github.com/iliyamo/seat-booking/internal/repository"
	"github.com/iliyamo/seat-booking/internal/seating"
)

type recordingNotifier struct {
	mu       sync.Mutex
	booked   []Booking
	rejected []*seating.CapacityError
	err      error
}

func (n *recordingNotifier) Booked(_ context.Context, b Booking) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.booked = append(n.booked, b)
	return n.err
}

func (n *recordingNotifier) Rejected(_ context.Context, _ uint64, capErr *seating.CapacityError) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.rejected = append(n.rejected, capErr)
	return n.err
}

type countingRefresher struct {
	mu    sync.Mutex
	calls int
}

func (r *countingRefresher) Refresh(context.Context, uint64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls++
	return nil
}

func newTestService(l seating.Layout) (*BookingService, *recordingNotifier, *countingRefresher) {
	n := &recordingNotifier{}
	r := &countingRefresher{}
	store := repository.NewStaticVenues("Test Hall", l)
	return NewBookingService(store, n, r), n, r
}

var tenSeats = seating.Layout{TotalSeats: 10, SeatsPerRow: 5, LastRowSeats: 5}

func TestBook_CommitsAndNotifies(t *testing.T) {
	ctx := context.Background()
	svc, n, r := newTestService(tenSeats)

	b, err := svc.Book(ctx, repository.DefaultVenueID, 3)
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2, 3}, b.Outcome.Seats)
	assert.Equal(t, "Successfully booked 3 seats: 1, 2, 3.", b.Message)
	assert.NotEmpty(t, b.Ref)

	require.Len(t, n.booked, 1)
	assert.Equal(t, b.Ref, n.booked[0].Ref)
	assert.Equal(t, 1, r.calls)

	a, err := svc.Availability(ctx, repository.DefaultVenueID, nil)
	require.NoError(t, err)
	assert.Equal(t, 7, a.Free)
	assert.Equal(t, 10, a.Total)
	assert.Nil(t, a.WindowFree)
}

func TestBook_CapacityRejected(t *testing.T) {
	ctx := context.Background()
	svc, n, r := newTestService(tenSeats)
	_, err := svc.Book(ctx, repository.DefaultVenueID, 5)
	require.NoError(t, err)

	_, err = svc.Book(ctx, repository.DefaultVenueID, 6)
	var capErr *seating.CapacityError
	require.ErrorAs(t, err, &capErr)
	assert.Equal(t, 5, capErr.Available)

	require.Len(t, n.rejected, 1)
	assert.Equal(t, 1, r.calls, "rejections do not refresh views")

	m, err := svc.SeatMap(ctx, repository.DefaultVenueID)
	require.NoError(t, err)
	assert.Equal(t, 5, m.Free)
}

func TestBook_NotifierErrorDoesNotUndoBooking(t *testing.T) {
	ctx := context.Background()
	svc, n, _ := newTestService(tenSeats)
	n.err = errors.New("broker down")

	b, err := svc.Book(ctx, repository.DefaultVenueID, 2)
	require.NoError(t, err)
	assert.Len(t, b.Outcome.Seats, 2)
}

func TestBook_UnknownVenue(t *testing.T) {
	svc, _, _ := newTestService(tenSeats)
	_, err := svc.Book(context.Background(), 42, 1)
	assert.ErrorIs(t, err, repository.ErrVenueNotFound)
}

func TestBook_ConcurrentRequestsNeverDoubleBook(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newTestService(seating.Layout{TotalSeats: 80, SeatsPerRow: 7, LastRowSeats: 3})

	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		seen = make(map[int]bool)
	)
	for i := 0; i < 40; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			b, err := svc.Book(ctx, repository.DefaultVenueID, 2)
			if err != nil {
				return
			}
			mu.Lock()
			defer mu.Unlock()
			for _, s := range b.Outcome.Seats {
				assert.False(t, seen[s], "seat %d booked twice", s)
				seen[s] = true
			}
		}()
	}
	wg.Wait()
	assert.Len(t, seen, 80)
}

func TestLocate(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newTestService(seating.Layout{TotalSeats: 80, SeatsPerRow: 7, LastRowSeats: 3})
	_, err := svc.Book(ctx, repository.DefaultVenueID, 1)
	require.NoError(t, err)

	v, err := svc.Locate(ctx, repository.DefaultVenueID, 80)
	require.NoError(t, err)
	assert.Equal(t, SeatView{Number: 80, Row: 11, Column: 2, RowLabel: "L", Status: "FREE"}, v)

	v, err = svc.Locate(ctx, repository.DefaultVenueID, 1)
	require.NoError(t, err)
	assert.Equal(t, "OCCUPIED", v.Status)

	_, err = svc.Locate(ctx, repository.DefaultVenueID, 81)
	assert.ErrorIs(t, err, ErrSeatNotFound)
}

func TestAvailability_Window(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newTestService(tenSeats)
	_, err := svc.Book(ctx, repository.DefaultVenueID, 2)
	require.NoError(t, err)

	a, err := svc.Availability(ctx, repository.DefaultVenueID, &Window{Start: 0, Size: 2})
	require.NoError(t, err)
	require.NotNil(t, a.WindowFree)
	assert.False(t, *a.WindowFree)

	a, err = svc.Availability(ctx, repository.DefaultVenueID, &Window{Start: 2, Size: 3})
	require.NoError(t, err)
	assert.True(t, *a.WindowFree)
}

func TestReset_ReplacesGrid(t *testing.T) {
	ctx := context.Background()
	svc, _, r := newTestService(tenSeats)
	_, err := svc.Book(ctx, repository.DefaultVenueID, 4)
	require.NoError(t, err)

	m, err := svc.Reset(ctx, repository.DefaultVenueID, seating.Layout{TotalSeats: 12, SeatsPerRow: 5, LastRowSeats: 2})
	require.NoError(t, err)
	assert.Equal(t, 12, m.Free)
	require.Len(t, m.Rows, 3)
	assert.Len(t, m.Rows[2].Seats, 2)
	assert.Equal(t, "C", m.Rows[2].Label)
	assert.Equal(t, 12, m.Rows[2].Seats[1].Number)
	assert.Equal(t, 2, r.calls)

	venues, err := svc.Venues(ctx)
	require.NoError(t, err)
	require.Len(t, venues, 1)
	assert.Equal(t, 12, venues[0].Layout.TotalSeats)
}

func TestReset_InvalidLayout(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newTestService(tenSeats)
	_, err := svc.Book(ctx, repository.DefaultVenueID, 4)
	require.NoError(t, err)

	_, err = svc.Reset(ctx, repository.DefaultVenueID, seating.Layout{TotalSeats: 12, SeatsPerRow: 5, LastRowSeats: 5})
	require.Error(t, err)

	a, err := svc.Availability(ctx, repository.DefaultVenueID, nil)
	require.NoError(t, err)
	assert.Equal(t, 6, a.Free, "grid kept after rejected layout")
}

func TestReset_OversizedLayoutKeepsStoredLayout(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newTestService(tenSeats)

	_, err := svc.Reset(ctx, repository.DefaultVenueID, seating.Layout{TotalSeats: 4294967306, SeatsPerRow: 7, LastRowSeats: 7})
	require.Error(t, err)

	venues, err := svc.Venues(ctx)
	require.NoError(t, err)
	require.Len(t, venues, 1)
	assert.Equal(t, tenSeats, venues[0].Layout)

	m, err := svc.SeatMap(ctx, repository.DefaultVenueID)
	require.NoError(t, err)
	assert.Equal(t, 10, m.Free)
}

func TestRowLabel(t *testing.T) {
	assert.Equal(t, "A", RowLabel(0))
	assert.Equal(t, "Z", RowLabel(25))
	assert.Equal(t, "AA", RowLabel(26))
	assert.Equal(t, "AB", RowLabel(27))
	assert.Equal(t, "", RowLabel(-1))
}

func TestNewCacheRefresher_NilClient(t *testing.T) {
	assert.Nil(t, NewCacheRefresher(nil, config.CacheConfig{Prefix: "seatmap"}))
}
