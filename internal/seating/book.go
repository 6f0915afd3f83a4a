package seating

import (
	"fmt"
	"strconv"
	"strings"
)

// Mode tells how a booking was satisfied.
type Mode string

const (
	ModeContiguous Mode = "contiguous" // one run inside a single row
	ModeScattered  Mode = "scattered"  // free seats in layout order, not adjacent
)

// Outcome is the result of a committed booking.  Seats holds the assigned
// seat numbers in the order they were claimed.
type Outcome struct {
	Seats []int `json:"seats"`
	Mode  Mode  `json:"mode"`
}

// BookSeats claims n seats on the grid.  It prefers the first run of n Free
// seats within one row and otherwise takes the first n Free seats in layout
// order.  When fewer than n seats are free it returns a *CapacityError and
// leaves the grid untouched.
func BookSeats(g *Grid, n int) (Outcome, error) {
	if n <= 0 {
		return Outcome{}, ErrInvalidCount
	}
	if free := CountFree(g); free < n {
		return Outcome{}, &CapacityError{Available: free, Requested: n}
	}

	out := Outcome{Mode: ModeContiguous, Seats: findRun(g, n)}
	if out.Seats == nil {
		out = Outcome{Mode: ModeScattered, Seats: collectFree(g, n)}
	}
	commit(g, out.Seats)
	return out, nil
}

// commit is the only place seat state is written.
func commit(g *Grid, numbers []int) {
	for _, num := range numbers {
		p, ok := g.Locate(num)
		if !ok {
			// allocators only produce numbers taken from the grid
			panic(fmt.Sprintf("seating: seat %d outside grid of %d", num, g.total))
		}
		g.rows[p.Row].Seats[p.Column] = Occupied
	}
}

// SuccessMessage formats the summary shown after a booking is committed.
func SuccessMessage(o Outcome) string {
	parts := make([]string, len(o.Seats))
	for i, n := range o.Seats {
		parts[i] = strconv.Itoa(n)
	}
	return fmt.Sprintf("Successfully booked %d seats: %s.", len(o.Seats), strings.Join(parts, ", "))
}
