// Package repository provides access to stored venue layouts.  Bookings are
// never written here; they exist only in the in-memory seat grid of a
// running session.
package repository

import "errors"

// ErrVenueNotFound is returned when a venue lookup fails.
var ErrVenueNotFound = errors.New("venue not found")
