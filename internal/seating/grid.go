// Package seating holds the in-memory seat grid of a venue and the booking
// routine that allocates seats on it.  It has no knowledge of HTTP, storage
// or messaging; callers own the Grid and map results to their own channels.
package seating

import "sort"

// SeatState is the occupancy of a single seat.
type SeatState uint8

const (
	Free     SeatState = iota // seat can be booked
	Occupied                  // seat was claimed by a booking
)

// String returns the upper-case status label used in API responses.
func (s SeatState) String() string {
	if s == Occupied {
		return "OCCUPIED"
	}
	return "FREE"
}

// Layout describes the shape of a venue.  Every row holds SeatsPerRow seats
// except the last one, which holds LastRowSeats.  Layout values are trusted
// here; callers validate them before BuildGrid.  Venues hold at most
// 100000 seats, which also keeps every count within a uint32 column.
type Layout struct {
	TotalSeats   int `json:"total_seats" validate:"required,gt=0,lte=100000"`
	SeatsPerRow  int `json:"seats_per_row" validate:"required,gt=0,lte=100000"`
	LastRowSeats int `json:"last_row_seats" validate:"required,gt=0,ltefield=SeatsPerRow"`
}

// RowCount returns ceil(TotalSeats / SeatsPerRow).
func (l Layout) RowCount() int {
	return (l.TotalSeats + l.SeatsPerRow - 1) / l.SeatsPerRow
}

// Row is an ordered run of seat states, left to right.
type Row struct {
	Seats []SeatState
}

// Position identifies a seat by zero-based row and column.
type Position struct {
	Row    int `json:"row"`
	Column int `json:"column"`
}

// Grid is the seat map of one venue session.  Seat numbers are 1-based and
// assigned row by row; offsets[r] is the number of seats before row r, so
// the numbering follows each row's stored length.
type Grid struct {
	layout  Layout
	rows    []Row
	offsets []int
	total   int
}

// BuildGrid creates a grid with every seat Free.
func BuildGrid(l Layout) *Grid {
	n := l.RowCount()
	g := &Grid{
		layout:  l,
		rows:    make([]Row, n),
		offsets: make([]int, n),
	}
	for r := 0; r < n; r++ {
		width := l.SeatsPerRow
		if r == n-1 {
			width = l.LastRowSeats
		}
		g.rows[r] = Row{Seats: make([]SeatState, width)}
		g.offsets[r] = g.total
		g.total += width
	}
	return g
}

// Layout returns the layout the grid was built from.
func (g *Grid) Layout() Layout { return g.layout }

// RowCount returns the number of rows.
func (g *Grid) RowCount() int { return len(g.rows) }

// RowLen returns the number of seats in row r, or 0 when r is out of range.
func (g *Grid) RowLen(r int) int {
	if r < 0 || r >= len(g.rows) {
		return 0
	}
	return len(g.rows[r].Seats)
}

// Size returns the total number of seats across all rows.
func (g *Grid) Size() int { return g.total }

// Number maps (row, column) to the seat number.
func (g *Grid) Number(row, col int) (int, bool) {
	if col < 0 || col >= g.RowLen(row) {
		return 0, false
	}
	return g.offsets[row] + col + 1, true
}

// Locate maps a seat number back to its position.
func (g *Grid) Locate(number int) (Position, bool) {
	if number < 1 || number > g.total {
		return Position{}, false
	}
	idx := number - 1
	// last row whose offset is <= idx
	r := sort.Search(len(g.offsets), func(i int) bool { return g.offsets[i] > idx }) - 1
	return Position{Row: r, Column: idx - g.offsets[r]}, true
}

// State returns the state of the seat with the given number.
func (g *Grid) State(number int) (SeatState, bool) {
	p, ok := g.Locate(number)
	if !ok {
		return Free, false
	}
	return g.rows[p.Row].Seats[p.Column], true
}

// Snapshot returns a deep copy of every row's seat states.
func (g *Grid) Snapshot() [][]SeatState {
	out := make([][]SeatState, len(g.rows))
	for r, row := range g.rows {
		out[r] = append([]SeatState(nil), row.Seats...)
	}
	return out
}
