package config

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/iliyamo/seat-booking/internal/seating"
)

// ErrLayoutInconsistent is returned when the last row size does not match
// what remains of TotalSeats after the full rows.
var ErrLayoutInconsistent = errors.New("last row size does not match total seats")

var validate = validator.New()

// LoadLayout reads the default venue layout.  The defaults describe an 80
// seat hall with 7 seats per row; LAYOUT_LAST_ROW_SEATS may be omitted, in
// which case it is derived from the other two values.
func LoadLayout() seating.Layout {
	l := seating.Layout{
		TotalSeats:   envInt("LAYOUT_TOTAL_SEATS", 80),
		SeatsPerRow:  envInt("LAYOUT_SEATS_PER_ROW", 7),
		LastRowSeats: envInt("LAYOUT_LAST_ROW_SEATS", 0),
	}
	if l.LastRowSeats == 0 {
		l.LastRowSeats = DeriveLastRow(l.TotalSeats, l.SeatsPerRow)
	}
	return l
}

// DeriveLastRow returns the size of the final row for the given totals, or 0
// when either value is not positive.
func DeriveLastRow(total, perRow int) int {
	if total <= 0 || perRow <= 0 {
		return 0
	}
	if rem := total % perRow; rem != 0 {
		return rem
	}
	return perRow
}

// ValidateLayout checks a layout before it is handed to seating.BuildGrid,
// which does not validate its input.
func ValidateLayout(l seating.Layout) error {
	if err := validate.Struct(l); err != nil {
		return fmt.Errorf("layout: %w", err)
	}
	if l.LastRowSeats != DeriveLastRow(l.TotalSeats, l.SeatsPerRow) {
		return fmt.Errorf("layout: %w (want %d, got %d)",
			ErrLayoutInconsistent, DeriveLastRow(l.TotalSeats, l.SeatsPerRow), l.LastRowSeats)
	}
	return nil
}
