package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/iliyamo/seat-booking/internal/model"
	"github.com/iliyamo/seat-booking/internal/seating"
)

// DefaultVenueID is the id of the venue served when MySQL is not configured.
const DefaultVenueID uint64 = 1

// StaticVenues is an in-process VenueStore holding a fixed set of venues.
// Layout updates are kept in memory only.
type StaticVenues struct {
	mu     sync.RWMutex
	venues map[uint64]model.Venue
}

// NewStaticVenues returns a store with a single venue built from l.
func NewStaticVenues(name string, l seating.Layout) *StaticVenues {
	now := time.Now().UTC()
	return &StaticVenues{venues: map[uint64]model.Venue{
		DefaultVenueID: {
			ID:           DefaultVenueID,
			Name:         name,
			TotalSeats:   uint32(l.TotalSeats),
			SeatsPerRow:  uint32(l.SeatsPerRow),
			LastRowSeats: uint32(l.LastRowSeats),
			CreatedAt:    now,
			UpdatedAt:    now,
		},
	}}
}

func (s *StaticVenues) GetByID(_ context.Context, id uint64) (*model.Venue, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.venues[id]
	if !ok {
		return nil, ErrVenueNotFound
	}
	return &v, nil
}

func (s *StaticVenues) List(_ context.Context) ([]model.Venue, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]model.Venue, 0, len(s.venues))
	for _, v := range s.venues {
		out = append(out, v)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *StaticVenues) UpdateLayout(_ context.Context, id uint64, l seating.Layout) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.venues[id]
	if !ok {
		return ErrVenueNotFound
	}
	v.TotalSeats = uint32(l.TotalSeats)
	v.SeatsPerRow = uint32(l.SeatsPerRow)
	v.LastRowSeats = uint32(l.LastRowSeats)
	v.UpdatedAt = time.Now().UTC()
	s.venues[id] = v
	return nil
}
