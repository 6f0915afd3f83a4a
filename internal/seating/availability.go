package seating

// CountFree returns the number of Free seats in the grid.
func CountFree(g *Grid) int {
	n := 0
	for _, row := range g.rows {
		for _, s := range row.Seats {
			if s == Free {
				n++
			}
		}
	}
	return n
}

// WindowFree reports whether columns [start, start+n) are Free in every row.
// Rows shorter than start+n only contribute the columns they have, so a short
// last row never makes the window unavailable on its own.
func (g *Grid) WindowFree(start, n int) bool {
	if start < 0 || n <= 0 {
		return false
	}
	for _, row := range g.rows {
		end := start + n
		if end > len(row.Seats) {
			end = len(row.Seats)
		}
		for c := start; c < end; c++ {
			if row.Seats[c] != Free {
				return false
			}
		}
	}
	return true
}
