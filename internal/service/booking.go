// Package service runs venue booking sessions.  Each venue gets one seat grid
// that lives for the session; requests against a venue are serialised so
// the seating package only ever sees one booking at a time.
package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"

	"github.com/google/uuid"

	"github.com/iliyamo/seat-booking/internal/config"
	"github.com/iliyamo/seat-booking/internal/repository"
	"github.com/iliyamo/seat-booking/internal/seating"
)

// ErrSeatNotFound is returned by Locate for a seat number outside the grid.
var ErrSeatNotFound = errors.New("seat not found")

// Notifier delivers booking results to whoever asked for the seats.
type Notifier interface {
	Booked(ctx context.Context, b Booking) error
	Rejected(ctx context.Context, venueID uint64, capErr *seating.CapacityError) error
}

// Refresher is told when a venue's seat map changed and views must redraw.
type Refresher interface {
	Refresh(ctx context.Context, venueID uint64) error
}

// Booking is a committed booking as reported to callers.
type Booking struct {
	Ref     string          `json:"booking_ref"`
	VenueID uint64          `json:"venue_id"`
	Outcome seating.Outcome `json:"outcome"`
	Message string          `json:"message"`
}

type session struct {
	mu   sync.Mutex
	name string
	grid *seating.Grid
}

// BookingService owns the seat grids of all open venues.
type BookingService struct {
	venues    repository.VenueStore
	notifier  Notifier
	refresher Refresher

	mu       sync.Mutex
	sessions map[uint64]*session
}

// NewBookingService wires the service.  Nil collaborators are replaced by
// no-op implementations.
func NewBookingService(venues repository.VenueStore, n Notifier, r Refresher) *BookingService {
	if venues == nil {
		panic("nil venue store passed to NewBookingService")
	}
	if n == nil {
		n = LogNotifier{}
	}
	if r == nil {
		r = nopRefresher{}
	}
	return &BookingService{
		venues:    venues,
		notifier:  n,
		refresher: r,
		sessions:  make(map[uint64]*session),
	}
}

// Venues lists the venues known to the store.
func (s *BookingService) Venues(ctx context.Context) ([]VenueSummary, error) {
	list, err := s.venues.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]VenueSummary, 0, len(list))
	for _, v := range list {
		out = append(out, VenueSummary{ID: v.ID, Name: v.Name, Layout: repository.LayoutOf(&v)})
	}
	return out, nil
}

// open returns the session for a venue, building its grid from the stored
// layout on first use.
func (s *BookingService) open(ctx context.Context, venueID uint64) (*session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if sess, ok := s.sessions[venueID]; ok {
		return sess, nil
	}
	v, err := s.venues.GetByID(ctx, venueID)
	if err != nil {
		return nil, err
	}
	layout := repository.LayoutOf(v)
	if err := config.ValidateLayout(layout); err != nil {
		return nil, fmt.Errorf("venue %d: %w", venueID, err)
	}
	sess := &session{name: v.Name, grid: seating.BuildGrid(layout)}
	s.sessions[venueID] = sess
	return sess, nil
}

// Book claims count seats in the venue.  A *seating.CapacityError means the
// grid was left unchanged.  Notification and refresh failures are logged and
// never undo a committed booking.
func (s *BookingService) Book(ctx context.Context, venueID uint64, count int) (Booking, error) {
	sess, err := s.open(ctx, venueID)
	if err != nil {
		return Booking{}, err
	}

	sess.mu.Lock()
	out, err := seating.BookSeats(sess.grid, count)
	sess.mu.Unlock()

	if err != nil {
		var capErr *seating.CapacityError
		if errors.As(err, &capErr) {
			if nerr := s.notifier.Rejected(ctx, venueID, capErr); nerr != nil {
				log.Printf("booking: notify rejection for venue %d failed: %v", venueID, nerr)
			}
		}
		return Booking{}, err
	}

	b := Booking{
		Ref:     uuid.NewString(),
		VenueID: venueID,
		Outcome: out,
		Message: seating.SuccessMessage(out),
	}
	if nerr := s.notifier.Booked(ctx, b); nerr != nil {
		log.Printf("booking: notify booking %s failed: %v", b.Ref, nerr)
	}
	if rerr := s.refresher.Refresh(ctx, venueID); rerr != nil {
		log.Printf("booking: refresh venue %d failed: %v", venueID, rerr)
	}
	return b, nil
}

// Availability reports free capacity.  When window is non-nil it also
// reports whether that column window is free in every row.
func (s *BookingService) Availability(ctx context.Context, venueID uint64, window *Window) (Availability, error) {
	sess, err := s.open(ctx, venueID)
	if err != nil {
		return Availability{}, err
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()
	a := Availability{
		VenueID: venueID,
		Free:    seating.CountFree(sess.grid),
		Total:   sess.grid.Size(),
	}
	if window != nil {
		ok := sess.grid.WindowFree(window.Start, window.Size)
		a.WindowFree = &ok
	}
	return a, nil
}

// SeatMap returns the current state of every seat in the venue.
func (s *BookingService) SeatMap(ctx context.Context, venueID uint64) (SeatMap, error) {
	sess, err := s.open(ctx, venueID)
	if err != nil {
		return SeatMap{}, err
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()
	return buildSeatMap(venueID, sess.name, sess.grid), nil
}

// Locate returns the position and state of a single seat.
func (s *BookingService) Locate(ctx context.Context, venueID uint64, number int) (SeatView, error) {
	sess, err := s.open(ctx, venueID)
	if err != nil {
		return SeatView{}, err
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()
	p, ok := sess.grid.Locate(number)
	if !ok {
		return SeatView{}, ErrSeatNotFound
	}
	st, _ := sess.grid.State(number)
	return SeatView{
		Number:   number,
		Row:      p.Row,
		Column:   p.Column,
		RowLabel: RowLabel(p.Row),
		Status:   st.String(),
	}, nil
}

// Reset stores a new layout for the venue and replaces its grid with a
// fresh, fully free one.  All bookings of the old grid are discarded.
func (s *BookingService) Reset(ctx context.Context, venueID uint64, layout seating.Layout) (SeatMap, error) {
	if err := config.ValidateLayout(layout); err != nil {
		return SeatMap{}, err
	}
	if err := s.venues.UpdateLayout(ctx, venueID, layout); err != nil {
		return SeatMap{}, err
	}
	sess, err := s.open(ctx, venueID)
	if err != nil {
		return SeatMap{}, err
	}
	sess.mu.Lock()
	sess.grid = seating.BuildGrid(layout)
	m := buildSeatMap(venueID, sess.name, sess.grid)
	sess.mu.Unlock()

	if rerr := s.refresher.Refresh(ctx, venueID); rerr != nil {
		log.Printf("booking: refresh venue %d failed: %v", venueID, rerr)
	}
	return m, nil
}

type nopRefresher struct{}

func (nopRefresher) Refresh(context.Context, uint64) error { return nil }
