package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/go-sql-driver/mysql"

	"github.com/iliyamo/seat-booking/internal/config"
	"github.com/iliyamo/seat-booking/internal/seating"
)

// Open connects to MySQL and verifies the connection.
func Open(cfg config.Config) (*sql.DB, error) {
	auth := cfg.DBUser
	if cfg.DBPass != "" {
		auth = fmt.Sprintf("%s:%s", cfg.DBUser, cfg.DBPass)
	}
	// parseTime=true -> DATETIME -> time.Time | loc=UTC keeps times consistent
	dsn := fmt.Sprintf("%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=true&loc=UTC",
		auth, cfg.DBHost, cfg.DBPort, cfg.DBName)

	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, err
	}

	// layouts are read once per venue session, so a small pool is plenty
	db.SetMaxOpenConns(5)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(30 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping mysql: %w", err)
	}
	if err := EnsureSchema(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

const venuesDDL = `CREATE TABLE IF NOT EXISTS venues (
	id             BIGINT UNSIGNED NOT NULL AUTO_INCREMENT PRIMARY KEY,
	name           VARCHAR(120)    NOT NULL,
	total_seats    INT UNSIGNED    NOT NULL,
	seats_per_row  INT UNSIGNED    NOT NULL,
	last_row_seats INT UNSIGNED    NOT NULL,
	created_at     DATETIME        NOT NULL DEFAULT CURRENT_TIMESTAMP,
	updated_at     DATETIME        NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`

// EnsureSchema creates the venues table when it does not exist yet.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	if _, err := db.ExecContext(ctx, venuesDDL); err != nil {
		return fmt.Errorf("create venues table: %w", err)
	}
	return nil
}

// SeedDefaultVenue inserts the built-in venue with the given id when the
// table does not hold it yet.  Existing rows are left untouched.
func SeedDefaultVenue(ctx context.Context, db *sql.DB, id uint64, name string, l seating.Layout) error {
	_, err := db.ExecContext(ctx,
		`INSERT IGNORE INTO venues (id, name, total_seats, seats_per_row, last_row_seats) VALUES (?, ?, ?, ?, ?)`,
		id, name, l.TotalSeats, l.SeatsPerRow, l.LastRowSeats)
	if err != nil {
		return fmt.Errorf("seed venue %d: %w", id, err)
	}
	return nil
}
