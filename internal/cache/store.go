package cache

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/mkhalil/rent-finder/internal/property"
)

// ErrNotFound is returned when a listing is not in the cache.
var ErrNotFound = errors.New("listing not cached")

// Store provides read and write access to cached listings.
type Store struct {
	db *sql.DB
}

// NewStore creates a listings store over an open cache database.
func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

const upsertSQL = `INSERT INTO listings
	(id, title, price, property_type, city, governate, raw_json, is_favorite)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	ON CONFLICT(id) DO UPDATE SET
		title = excluded.title,
		price = excluded.price,
		property_type = excluded.property_type,
		city = excluded.city,
		governate = excluded.governate,
		raw_json = excluded.raw_json,
		is_favorite = excluded.is_favorite,
		cached_at = CURRENT_TIMESTAMP`

// Upsert inserts or replaces one cached listing.
func (s *Store) Upsert(p *property.Property) error {
	raw, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("encoding listing %d: %w", p.ID, err)
	}

	_, err = s.db.Exec(upsertSQL,
		p.ID, p.Title, p.Price, p.PropertyType, p.City, p.Governate,
		string(raw), p.IsFavorite,
	)
	if err != nil {
		return fmt.Errorf("caching listing %d: %w", p.ID, err)
	}
	return nil
}

// UpsertAll caches a batch of listings, typically one result page.
func (s *Store) UpsertAll(props []*property.Property) error {
	for _, p := range props {
		if err := s.Upsert(p); err != nil {
			return err
		}
	}
	return nil
}

// Get returns a cached listing by id.
func (s *Store) Get(id int64) (*property.Property, error) {
	row := s.db.QueryRow("SELECT raw_json, is_favorite FROM listings WHERE id = ?", id)

	p, err := scanListing(row)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("reading cached listing %d: %w", id, err)
	}
	return p, nil
}

// ListOptions controls filtering for List.
type ListOptions struct {
	City          string // empty = all
	Governate     string // empty = all
	FavoritesOnly bool
}

// List returns cached listings, newest first, optionally filtered.
func (s *Store) List(opts ListOptions) ([]*property.Property, error) {
	query := "SELECT raw_json, is_favorite FROM listings"
	var args []interface{}
	var conditions []string

	if opts.City != "" {
		conditions = append(conditions, "city = ?")
		args = append(args, opts.City)
	}
	if opts.Governate != "" {
		conditions = append(conditions, "governate = ?")
		args = append(args, opts.Governate)
	}
	if opts.FavoritesOnly {
		conditions = append(conditions, "is_favorite = 1")
	}

	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY cached_at DESC, id DESC"

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing cached listings: %w", err)
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil {
			err = fmt.Errorf("closing rows: %w", closeErr)
		}
	}()

	var props []*property.Property
	for rows.Next() {
		p, err := scanListing(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning cached listing: %w", err)
		}
		props = append(props, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating cached listings: %w", err)
	}

	return props, nil
}

// SetFavorite updates the cached favorite flag for a listing.
func (s *Store) SetFavorite(id int64, favorite bool) error {
	result, err := s.db.Exec("UPDATE listings SET is_favorite = ? WHERE id = ?", favorite, id)
	if err != nil {
		return fmt.Errorf("updating favorite flag: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("getting rows affected: %w", err)
	}
	if rows == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes a listing from the cache.
func (s *Store) Delete(id int64) error {
	if _, err := s.db.Exec("DELETE FROM listings WHERE id = ?", id); err != nil {
		return fmt.Errorf("deleting cached listing %d: %w", id, err)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

// scanListing decodes one listings row. The cached favorite column wins
// over whatever flag was serialized into raw_json.
func scanListing(row rowScanner) (*property.Property, error) {
	var raw string
	var favorite bool
	if err := row.Scan(&raw, &favorite); err != nil {
		return nil, err
	}

	var p property.Property
	if err := json.Unmarshal([]byte(raw), &p); err != nil {
		return nil, fmt.Errorf("decoding cached listing: %w", err)
	}
	p.IsFavorite = favorite
	return &p, nil
}
