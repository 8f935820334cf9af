// Package regions maintains the region lookup list. Region names double as
// free-text values on hotel records, so renames cascade and deletes are
// refused while any hotel still references the name.
package regions

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	// ErrEmptyName is returned for blank or whitespace-only region names
	ErrEmptyName = errors.New("region name is required")

	// ErrRegionInUse is returned when deleting a region a hotel still references
	ErrRegionInUse = errors.New("region is still referenced by hotels")
)

// DB is the pgx surface the registry needs.
type DB interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Begin(ctx context.Context) (pgx.Tx, error)
}

// Registry stores the region lookup list.
type Registry struct {
	db DB
}

// NewRegistry initializes a registry backed by pgxpool.
func NewRegistry(pool *pgxpool.Pool) *Registry {
	if pool == nil {
		panic("regions: pgx pool required")
	}
	return &Registry{db: pool}
}

// NewRegistryWithDB allows injecting a mock database for testing.
func NewRegistryWithDB(db DB) *Registry {
	return &Registry{db: db}
}

// List returns the union of the lookup list and the distinct region values
// present on hotel records, deduplicated and sorted ascending.
func (r *Registry) List(ctx context.Context) ([]string, error) {
	seen := map[string]struct{}{}

	if err := r.collect(ctx, `SELECT DISTINCT name FROM regions ORDER BY name`, seen); err != nil {
		return nil, fmt.Errorf("regions: list lookup: %w", err)
	}
	if err := r.collect(ctx, `SELECT DISTINCT region FROM hotels WHERE region IS NOT NULL AND region <> '' ORDER BY region`, seen); err != nil {
		return nil, fmt.Errorf("regions: list hotel regions: %w", err)
	}

	out := make([]string, 0, len(seen))
	for name := range seen {
		out = append(out, name)
	}
	sort.Strings(out)
	return out, nil
}

func (r *Registry) collect(ctx context.Context, query string, into map[string]struct{}) error {
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return err
	}
	defer rows.Close()
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return err
		}
		into[name] = struct{}{}
	}
	return rows.Err()
}

// Create adds a region name. Creating a name that already exists is a no-op.
func (r *Registry) Create(ctx context.Context, name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", ErrEmptyName
	}
	_, err := r.db.Exec(ctx, `INSERT INTO regions (name) VALUES ($1) ON CONFLICT (name) DO NOTHING`, name)
	if err != nil {
		return "", fmt.Errorf("regions: insert: %w", err)
	}
	return name, nil
}

// Rename updates the lookup entry and cascades the new name to every hotel
// still carrying the old one. Both writes share one transaction so the
// lookup list and the hotel rows cannot diverge.
func (r *Registry) Rename(ctx context.Context, oldName, newName string) error {
	if strings.TrimSpace(oldName) == "" || strings.TrimSpace(newName) == "" {
		return ErrEmptyName
	}

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("regions: begin rename: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if _, err := tx.Exec(ctx, `UPDATE regions SET name = $1 WHERE name = $2`, newName, oldName); err != nil {
		return fmt.Errorf("regions: rename lookup: %w", err)
	}
	if _, err := tx.Exec(ctx, `UPDATE hotels SET region = $1 WHERE region = $2`, newName, oldName); err != nil {
		return fmt.Errorf("regions: cascade rename: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("regions: commit rename: %w", err)
	}
	return nil
}

// Delete removes a region from the lookup list. The delete is refused while
// any hotel still references the name.
func (r *Registry) Delete(ctx context.Context, name string) error {
	if strings.TrimSpace(name) == "" {
		return ErrEmptyName
	}

	var count int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM hotels WHERE region = $1`, name).Scan(&count); err != nil {
		return fmt.Errorf("regions: count references: %w", err)
	}
	if count > 0 {
		return ErrRegionInUse
	}

	if _, err := r.db.Exec(ctx, `DELETE FROM regions WHERE name = $1`, name); err != nil {
		return fmt.Errorf("regions: delete: %w", err)
	}
	return nil
}
