package hotels

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// ListNotes returns the notes attached to a hotel, newest first.
func (r *Repository) ListNotes(ctx context.Context, hotelID string) ([]Note, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, hotel_id, author_name, content, created_at
		FROM notes WHERE hotel_id = $1 ORDER BY created_at DESC`, hotelID)
	if err != nil {
		return nil, fmt.Errorf("hotels: list notes: %w", err)
	}
	defer rows.Close()

	out := []Note{}
	for rows.Next() {
		var n Note
		if err := rows.Scan(&n.ID, &n.HotelID, &n.AuthorName, &n.Content, &n.CreatedAt); err != nil {
			return nil, fmt.Errorf("hotels: scan note: %w", err)
		}
		out = append(out, n)
	}
	return out, rows.Err()
}

// CreateNote attaches a new note to a hotel. Notes are immutable once written.
func (r *Repository) CreateNote(ctx context.Context, hotelID, authorName, content string) (*Note, error) {
	if strings.TrimSpace(content) == "" {
		return nil, ErrMissingContent
	}
	if authorName == "" {
		authorName = "System"
	}

	var n Note
	err := r.db.QueryRow(ctx, `
		INSERT INTO notes (id, hotel_id, author_name, content, created_at)
		VALUES ($1, $2, $3, $4, now())
		RETURNING id, hotel_id, author_name, content, created_at`,
		uuid.NewString(), hotelID, authorName, content).
		Scan(&n.ID, &n.HotelID, &n.AuthorName, &n.Content, &n.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("hotels: insert note: %w", err)
	}
	return &n, nil
}
