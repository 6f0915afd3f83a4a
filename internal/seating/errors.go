package seating

import (
	"errors"
	"fmt"
)

// ErrInvalidCount is returned when a booking asks for zero or fewer seats.
var ErrInvalidCount = errors.New("seat count must be greater than zero")

// CapacityError is returned when fewer seats are free than were requested.
// The grid is never modified when this error is returned.
type CapacityError struct {
	Available int
	Requested int
}

func (e *CapacityError) Error() string {
	return fmt.Sprintf("insufficient capacity: %d available, %d requested", e.Available, e.Requested)
}

// UserMessage is the text shown to the person who asked for the seats.
func (e *CapacityError) UserMessage() string {
	return fmt.Sprintf("Only %d seat(s) available. Cannot book %d seat(s).", e.Available, e.Requested)
}
