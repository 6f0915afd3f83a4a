package repository // repository holds data access logic for venue layouts

import (
	"context"      // context is used to manage deadlines and cancellation
	"database/sql" // sql provides DB primitives
	"errors"       // errors package allows sentinel error definitions

	"github.com/iliyamo/seat-booking/internal/model"
	"github.com/iliyamo/seat-booking/internal/seating"
)

// VenueStore is the read/write surface the booking service needs.  VenueRepo
// implements it on MySQL and StaticVenues serves the built-in default.
type VenueStore interface {
	GetByID(ctx context.Context, id uint64) (*model.Venue, error)
	List(ctx context.Context) ([]model.Venue, error)
	UpdateLayout(ctx context.Context, id uint64, l seating.Layout) error
}

// VenueRepo provides methods to read and update venue layouts.
type VenueRepo struct {
	db *sql.DB // db is the underlying database connection
}

// NewVenueRepo constructs a VenueRepo with the given DB handle.
func NewVenueRepo(db *sql.DB) *VenueRepo {
	return &VenueRepo{db: db}
}

// GetByID retrieves a venue by its ID.  It returns ErrVenueNotFound when no
// row is found.
func (r *VenueRepo) GetByID(ctx context.Context, id uint64) (*model.Venue, error) {
	const q = `SELECT id, name, total_seats, seats_per_row, last_row_seats, created_at, updated_at
	           FROM venues WHERE id = ?`
	var v model.Venue
	err := r.db.QueryRowContext(ctx, q, id).
		Scan(&v.ID, &v.Name, &v.TotalSeats, &v.SeatsPerRow, &v.LastRowSeats, &v.CreatedAt, &v.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrVenueNotFound
		}
		return nil, err
	}
	return &v, nil
}

// List returns all venues ordered by id.
func (r *VenueRepo) List(ctx context.Context) ([]model.Venue, error) {
	const q = `SELECT id, name, total_seats, seats_per_row, last_row_seats, created_at, updated_at
	           FROM venues ORDER BY id`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.Venue
	for rows.Next() {
		var v model.Venue
		if err := rows.Scan(&v.ID, &v.Name, &v.TotalSeats, &v.SeatsPerRow, &v.LastRowSeats, &v.CreatedAt, &v.UpdatedAt); err != nil {
			return nil, err
		}
		result = append(result, v)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// UpdateLayout stores a new layout for an existing venue.  Returns
// ErrVenueNotFound when the venue does not exist.
func (r *VenueRepo) UpdateLayout(ctx context.Context, id uint64, l seating.Layout) error {
	const q = `UPDATE venues
	           SET total_seats = ?, seats_per_row = ?, last_row_seats = ?, updated_at = CURRENT_TIMESTAMP
	           WHERE id = ?`
	res, err := r.db.ExecContext(ctx, q, l.TotalSeats, l.SeatsPerRow, l.LastRowSeats, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		// MySQL reports 0 affected rows when values are unchanged, so check existence
		if _, err := r.GetByID(ctx, id); err != nil {
			return err
		}
	}
	return nil
}

// LayoutOf converts a stored venue into a seating layout.
func LayoutOf(v *model.Venue) seating.Layout {
	return seating.Layout{
		TotalSeats:   int(v.TotalSeats),
		SeatsPerRow:  int(v.SeatsPerRow),
		LastRowSeats: int(v.LastRowSeats),
	}
}
