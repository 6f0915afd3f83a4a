package model

import "time"

// Venue is a seating area whose layout can be booked.  This struct
// corresponds to a row in the `venues` table.  Only the shape of the venue
// is stored; bookings live in memory for the lifetime of a session.
//
// Fields:
//
//	ID           – primary key identifier.
//	Name         – display name of the venue.
//	TotalSeats   – number of seats across all rows.
//	SeatsPerRow  – seats in every row but the last.
//	LastRowSeats – seats in the final row.
//	CreatedAt    – creation timestamp.
//	UpdatedAt    – last update timestamp.
type Venue struct {
	ID           uint64    // venues.id
	Name         string    // venues.name
	TotalSeats   uint32    // venues.total_seats
	SeatsPerRow  uint32    // venues.seats_per_row
	LastRowSeats uint32    // venues.last_row_seats
	CreatedAt    time.Time // venues.created_at
	UpdatedAt    time.Time // venues.updated_at
}
