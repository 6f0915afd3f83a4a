package seating

// findRun returns the seat numbers of the first unbroken run of n Free seats
// inside a single row, scanning rows in order and seats left to right.  A run
// never continues past the end of its row.
func findRun(g *Grid, n int) []int {
	for r, row := range g.rows {
		run := make([]int, 0, n)
		for c, s := range row.Seats {
			if s != Free {
				run = run[:0]
				continue
			}
			run = append(run, g.offsets[r]+c+1)
			if len(run) == n {
				return run
			}
		}
	}
	return nil
}

// collectFree returns the first n Free seat numbers in row-major order,
// ignoring row boundaries.  It returns fewer than n only when the grid does
// not hold n Free seats, which BookSeats rules out beforehand.
func collectFree(g *Grid, n int) []int {
	picked := make([]int, 0, n)
	for r, row := range g.rows {
		for c, s := range row.Seats {
			if s != Free {
				continue
			}
			picked = append(picked, g.offsets[r]+c+1)
			if len(picked) == n {
				return picked
			}
		}
	}
	return picked
}
