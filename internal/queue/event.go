// Package queue defines message payloads exchanged over the message broker
// and the consumer that records them.
package queue

const (
	SeatsBookedQueue   = "seats.booked"
	SeatsRejectedQueue = "seats.rejected"
)

// SeatsBookedEvent is published when a booking is committed to a venue grid.
// Message carries the same summary the requester is shown.
type SeatsBookedEvent struct {
	BookingRef string `json:"booking_ref"`
	VenueID    uint64 `json:"venue_id"`
	Mode       string `json:"mode"`
	Seats      []int  `json:"seats"`
	Message    string `json:"message"`
	BookedAt   string `json:"booked_at"`
}

// SeatsRejectedEvent is published when a booking fails for lack of free seats.
type SeatsRejectedEvent struct {
	VenueID    uint64 `json:"venue_id"`
	Available  int    `json:"available"`
	Requested  int    `json:"requested"`
	Message    string `json:"message"`
	RejectedAt string `json:"rejected_at"`
}
