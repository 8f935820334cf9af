package hotels

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

// insertActivity appends one immutable audit row. Callers pass the
// transaction of the mutation that triggered it.
func insertActivity(ctx context.Context, q querier, entry ActivityLog) error {
	if entry.ID == "" {
		entry.ID = uuid.NewString()
	}
	_, err := q.Exec(ctx, `
		INSERT INTO activity_logs (id, hotel_id, user_id, user_name, action, old_status, new_status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, now())`,
		entry.ID, entry.HotelID, entry.UserID, entry.UserName, entry.Action, entry.OldStatus, entry.NewStatus)
	if err != nil {
		return fmt.Errorf("hotels: insert activity: %w", err)
	}
	return nil
}

// ListActivity returns the audit trail for a hotel, newest first.
func (r *Repository) ListActivity(ctx context.Context, hotelID string) ([]ActivityLog, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, hotel_id, user_id, user_name, action, old_status, new_status, created_at
		FROM activity_logs WHERE hotel_id = $1 ORDER BY created_at DESC`, hotelID)
	if err != nil {
		return nil, fmt.Errorf("hotels: list activity: %w", err)
	}
	defer rows.Close()

	out := []ActivityLog{}
	for rows.Next() {
		var entry ActivityLog
		if err := rows.Scan(&entry.ID, &entry.HotelID, &entry.UserID, &entry.UserName,
			&entry.Action, &entry.OldStatus, &entry.NewStatus, &entry.CreatedAt); err != nil {
			return nil, fmt.Errorf("hotels: scan activity: %w", err)
		}
		out = append(out, entry)
	}
	return out, rows.Err()
}
