package service

import "github.com/iliyamo/seat-booking/internal/seating"

// VenueSummary is a venue as listed by the API.
type VenueSummary struct {
	ID     uint64         `json:"id"`
	Name   string         `json:"name"`
	Layout seating.Layout `json:"layout"`
}

// Window selects columns [Start, Start+Size) in every row.
type Window struct {
	Start int
	Size  int
}

// Availability summarises free capacity of a venue.
type Availability struct {
	VenueID    uint64 `json:"venue_id"`
	Free       int    `json:"free"`
	Total      int    `json:"total"`
	WindowFree *bool  `json:"window_free,omitempty"`
}

// SeatView describes one seat for display.
type SeatView struct {
	Number   int    `json:"number"`
	Row      int    `json:"row"`
	Column   int    `json:"column"`
	RowLabel string `json:"row_label"`
	Status   string `json:"status"`
}

// RowView is one row of the seat map.
type RowView struct {
	Label string     `json:"label"`
	Seats []SeatView `json:"seats"`
}

// SeatMap is the full seat map of a venue, row by row.
type SeatMap struct {
	VenueID uint64         `json:"venue_id"`
	Name    string         `json:"name"`
	Layout  seating.Layout `json:"layout"`
	Free    int            `json:"free"`
	Rows    []RowView      `json:"rows"`
}

func buildSeatMap(venueID uint64, name string, g *seating.Grid) SeatMap {
	snap := g.Snapshot()
	m := SeatMap{
		VenueID: venueID,
		Name:    name,
		Layout:  g.Layout(),
		Free:    seating.CountFree(g),
		Rows:    make([]RowView, len(snap)),
	}
	for r, states := range snap {
		label := RowLabel(r)
		seats := make([]SeatView, len(states))
		for c, st := range states {
			num, _ := g.Number(r, c)
			seats[c] = SeatView{Number: num, Row: r, Column: c, RowLabel: label, Status: st.String()}
		}
		m.Rows[r] = RowView{Label: label, Seats: seats}
	}
	return m
}

// RowLabel converts a zero-based row index to an alphabetical label like
// A, B, ..., Z, AA.
func RowLabel(i int) string {
	if i < 0 {
		return ""
	}
	res := []rune{}
	for {
		res = append(res, rune('A'+i%26))
		i = i/26 - 1
		if i < 0 {
			break
		}
	}
	for j, k := 0, len(res)-1; j < k; j, k = j+1, k-1 {
		res[j], res[k] = res[k], res[j]
	}
	return string(res)
}
