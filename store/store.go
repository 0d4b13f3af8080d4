// Package store provides durable storage for meal records behind one
// contract with two interchangeable backends: a SQL store (embedded SQLite
// or Postgres) and a single-file JSON store for environments without a
// database. Both must behave identically from the caller's perspective.
package store

import (
	"context"
	"errors"
	"time"

	"foodvision/models"
)

// ErrDuplicateID is returned by Insert when a record with the same id
// already exists. Enforced by both backends.
var ErrDuplicateID = errors.New("store: duplicate meal id")

// MealStore is the storage contract for meal records.
//
// Timestamps are ISO-8601 UTC strings (see FormatISO); range queries compare
// them lexically, which matches temporal order for that fixed-width layout.
// Point lookups on a missing id return (nil, nil), never an error.
type MealStore interface {
	// Insert appends a new record. Fails with ErrDuplicateID if the id exists.
	Insert(ctx context.Context, rec models.MealRecord) error
	// Update replaces all mutable fields of the record matched by id.
	// ID and CreatedAt are never changed. A missing id is a no-op, not an
	// error; callers must not read failure as "record absent".
	Update(ctx context.Context, rec models.MealRecord) error
	// Delete removes the record with that id. No-op if absent.
	Delete(ctx context.Context, id string) error
	// DeleteAll clears the entire collection. Irreversible.
	DeleteAll(ctx context.Context) error
	// GetByID returns the record, or (nil, nil) when absent.
	GetByID(ctx context.Context, id string) (*models.MealRecord, error)
	// GetAll returns every record ordered by CreatedAt descending.
	GetAll(ctx context.Context) ([]models.MealRecord, error)
	// GetRecent is GetAll bounded to the newest limit records.
	GetRecent(ctx context.Context, limit int) ([]models.MealRecord, error)
	// GetByDateRange returns records whose CreatedAt lies in the closed
	// interval [startISO, endISO], newest first. A reversed range yields an
	// empty result, not an error.
	GetByDateRange(ctx context.Context, startISO, endISO string) ([]models.MealRecord, error)
	// GetAllDates returns the CreatedAt string of every record, in no
	// particular order. Used for streak computation.
	GetAllDates(ctx context.Context) ([]string, error)
	Close() error
}

// isoLayout mirrors JavaScript's Date.toISOString output so records written
// by the mobile app sort and compare identically.
const isoLayout = "2006-01-02T15:04:05.000Z"

// FormatISO renders t as an ISO-8601 UTC string with millisecond precision.
func FormatISO(t time.Time) string {
	return t.UTC().Format(isoLayout)
}

// ParseISO parses a timestamp produced by FormatISO (or any RFC 3339 string).
func ParseISO(s string) (time.Time, error) {
	if t, err := time.Parse(isoLayout, s); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, s)
}
