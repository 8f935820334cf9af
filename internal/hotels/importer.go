package hotels

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// Import reconciles a batch of externally sourced records against storage,
// one record at a time. A record whose (hotel_name, region) pair exactly
// matches an existing row overwrites that row's contact fields and keeps its
// id, status, assignee and follow-up date; anything else is inserted fresh
// with status NEW. Matching is case-sensitive and records are not deduped
// within the batch, so a batch containing the same pair twice reconciles it
// twice.
func (r *Repository) Import(ctx context.Context, batch []ImportHotel) (ImportResult, error) {
	var result ImportResult

	for _, rec := range batch {
		var existingID string
		err := r.db.QueryRow(ctx,
			`SELECT id FROM hotels WHERE hotel_name = $1 AND region = $2`,
			rec.HotelName, rec.Region).Scan(&existingID)
		switch {
		case err == nil:
			_, err = r.db.Exec(ctx, `
				UPDATE hotels
				SET hotel_name = $1, region = $2, address = $3, phone = $4, email = $5, website = $6,
				    last_updated_at = now()
				WHERE id = $7`,
				rec.HotelName, rec.Region, emptyToNull(rec.Address), emptyToNull(rec.Phone),
				emptyToNull(rec.Email), emptyToNull(rec.Website), existingID)
			if err != nil {
				return result, fmt.Errorf("hotels: import update: %w", err)
			}
			result.Updated++
		case errors.Is(err, pgx.ErrNoRows):
			_, err = r.db.Exec(ctx, `
				INSERT INTO hotels (id, hotel_name, region, address, phone, email, website, status, assignee_id, next_follow_up_date, created_at, last_updated_at)
				VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NULL, NULL, now(), now())`,
				uuid.NewString(), rec.HotelName, rec.Region, emptyToNull(rec.Address),
				emptyToNull(rec.Phone), emptyToNull(rec.Email), emptyToNull(rec.Website), StatusNew)
			if err != nil {
				return result, fmt.Errorf("hotels: import insert: %w", err)
			}
			result.Created++
		default:
			return result, fmt.Errorf("hotels: import lookup: %w", err)
		}
	}

	return result, nil
}
