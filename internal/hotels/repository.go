package hotels

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const dateLayout = "2006-01-02"

// DB is the subset of pgxpool.Pool the repository needs. Narrowed so tests
// can substitute a pgxmock pool.
type DB interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Begin(ctx context.Context) (pgx.Tx, error)
}

// querier is satisfied by both DB and pgx.Tx, so statement helpers can run
// inside or outside a transaction.
type querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Repository provides CRUD, filtered listing, bulk update and import over
// the hotels table and its child tables.
type Repository struct {
	db  DB
	now func() time.Time
}

// NewRepository initializes a repository backed by pgxpool.
func NewRepository(pool *pgxpool.Pool) *Repository {
	if pool == nil {
		panic("hotels: pgx pool required")
	}
	return &Repository{db: pool, now: time.Now}
}

// NewRepositoryWithDB allows injecting a mock database for testing.
func NewRepositoryWithDB(db DB) *Repository {
	return &Repository{db: db, now: time.Now}
}

const hotelColumns = `id, hotel_name, region, address, phone, email, website, status, assignee_id, next_follow_up_date, created_at, last_updated_at`

func scanHotel(row pgx.Row) (Hotel, error) {
	var (
		h        Hotel
		address  *string
		phone    *string
		email    *string
		website  *string
		followUp *time.Time
	)
	err := row.Scan(&h.ID, &h.HotelName, &h.Region, &address, &phone, &email, &website,
		&h.Status, &h.Assignee, &followUp, &h.CreatedAt, &h.LastUpdatedAt)
	if err != nil {
		return Hotel{}, err
	}
	h.Address = deref(address)
	h.Phone = deref(phone)
	h.Email = deref(email)
	h.Website = deref(website)
	if followUp != nil {
		d := followUp.Format(dateLayout)
		h.NextFollowUpDate = &d
	}
	return h, nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// buildWhere turns the filter set into a predicate conjunction. The same
// clause backs both the count and the page query so the two stay consistent.
func (r *Repository) buildWhere(f ListFilters) (string, []any) {
	var sb strings.Builder
	sb.WriteString(" WHERE 1=1")
	var args []any

	if f.Region != "" {
		args = append(args, f.Region)
		fmt.Fprintf(&sb, " AND region = $%d", len(args))
	}
	if len(f.Statuses) > 0 {
		args = append(args, f.Statuses)
		fmt.Fprintf(&sb, " AND status = ANY($%d)", len(args))
	}
	if f.Assignee != "" && f.Assignee != "all" {
		if f.Assignee == "me" {
			// Identity is not authenticated; "me" narrows to assigned records.
			sb.WriteString(" AND assignee_id IS NOT NULL")
		} else {
			args = append(args, f.Assignee)
			fmt.Fprintf(&sb, " AND assignee_id = $%d", len(args))
		}
	}

	if f.FollowUpWindow != "" && f.FollowUpWindow != FollowUpAll {
		today := r.now().Format(dateLayout)
		switch f.FollowUpWindow {
		case FollowUpToday:
			args = append(args, today)
			fmt.Fprintf(&sb, " AND next_follow_up_date = $%d", len(args))
		case FollowUpThisWeek:
			start, end := weekBounds(r.now())
			args = append(args, start)
			fmt.Fprintf(&sb, " AND next_follow_up_date >= $%d", len(args))
			args = append(args, end)
			fmt.Fprintf(&sb, " AND next_follow_up_date <= $%d", len(args))
		case FollowUpOverdue:
			args = append(args, today)
			fmt.Fprintf(&sb, " AND next_follow_up_date < $%d", len(args))
		}
	}

	return sb.String(), args
}

// weekBounds returns the Sunday and Saturday of the calendar week containing t.
func weekBounds(t time.Time) (string, string) {
	start := t.AddDate(0, 0, -int(t.Weekday()))
	end := start.AddDate(0, 0, 6)
	return start.Format(dateLayout), end.Format(dateLayout)
}

// List returns one page of hotels matching the filters, most recently
// updated first, along with the total count under the same predicate.
func (r *Repository) List(ctx context.Context, f ListFilters, page, pageSize int) (*HotelPage, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 10
	}

	where, args := r.buildWhere(f)

	var total int
	countQuery := `SELECT COUNT(*) FROM hotels` + where
	if err := r.db.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, fmt.Errorf("hotels: count: %w", err)
	}

	args = append(args, pageSize)
	limitIdx := len(args)
	args = append(args, (page-1)*pageSize)
	listQuery := fmt.Sprintf(`SELECT %s FROM hotels%s ORDER BY last_updated_at DESC LIMIT $%d OFFSET $%d`,
		hotelColumns, where, limitIdx, limitIdx+1)

	rows, err := r.db.Query(ctx, listQuery, args...)
	if err != nil {
		return nil, fmt.Errorf("hotels: list: %w", err)
	}
	defer rows.Close()

	data := []Hotel{}
	for rows.Next() {
		h, err := scanHotel(rows)
		if err != nil {
			return nil, fmt.Errorf("hotels: scan: %w", err)
		}
		data = append(data, h)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("hotels: list rows: %w", err)
	}

	return &HotelPage{Data: data, TotalCount: total, Page: page, PageSize: pageSize}, nil
}

// GetByID fetches a single hotel.
func (r *Repository) GetByID(ctx context.Context, id string) (*Hotel, error) {
	row := r.db.QueryRow(ctx, `SELECT `+hotelColumns+` FROM hotels WHERE id = $1`, id)
	h, err := scanHotel(row)
	if err != nil {
		if noSuchHotel(err) {
			return nil, ErrHotelNotFound
		}
		return nil, fmt.Errorf("hotels: get: %w", err)
	}
	return &h, nil
}

// noSuchHotel reports whether err means the requested id cannot match any
// row: either no rows came back, or the id is not valid uuid syntax
// (SQLSTATE 22P02), which a caller-supplied id can always trigger.
func noSuchHotel(err error) bool {
	if errors.Is(err, pgx.ErrNoRows) {
		return true
	}
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "22P02"
}

// Create inserts a new hotel and appends a "created" audit entry in the
// same transaction.
func (r *Repository) Create(ctx context.Context, req CreateHotel, actor Actor) (*Hotel, error) {
	status := StatusNew
	if req.Status != nil {
		status = *req.Status
	}
	if !status.Valid() {
		return nil, ErrInvalidStatus
	}

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("hotels: begin create: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	id := uuid.NewString()
	row := tx.QueryRow(ctx, `
		INSERT INTO hotels (id, hotel_name, region, address, phone, email, website, status, assignee_id, next_follow_up_date, created_at, last_updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, now(), now())
		RETURNING `+hotelColumns,
		id, req.HotelName, req.Region, req.Address, req.Phone, req.Email, req.Website,
		status, req.Assignee, req.NextFollowUpDate)
	h, err := scanHotel(row)
	if err != nil {
		return nil, fmt.Errorf("hotels: insert: %w", err)
	}

	if err := insertActivity(ctx, tx, ActivityLog{
		HotelID:  h.ID,
		UserID:   actor.UserID,
		UserName: actor.Name(),
		Action:   ActionCreated,
	}); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("hotels: commit create: %w", err)
	}
	return &h, nil
}

// Update applies the non-nil fields of u to the hotel, refreshing
// last_updated_at unconditionally. A status change additionally appends one
// status_changed audit entry; update and audit share one transaction so a
// half-applied pair can never be observed.
func (r *Repository) Update(ctx context.Context, id string, u HotelUpdate, actor Actor) (*Hotel, error) {
	if u.Empty() {
		return nil, ErrNoFields
	}
	if u.Status != nil && !u.Status.Valid() {
		return nil, ErrInvalidStatus
	}

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("hotels: begin update: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	var current Status
	err = tx.QueryRow(ctx, `SELECT status FROM hotels WHERE id = $1`, id).Scan(&current)
	if err != nil {
		if noSuchHotel(err) {
			return nil, ErrHotelNotFound
		}
		return nil, fmt.Errorf("hotels: load current: %w", err)
	}

	var sets []string
	var args []any
	set := func(column string, value any) {
		args = append(args, value)
		sets = append(sets, fmt.Sprintf("%s = $%d", column, len(args)))
	}
	if u.HotelName != nil {
		set("hotel_name", *u.HotelName)
	}
	if u.Region != nil {
		set("region", *u.Region)
	}
	if u.Address != nil {
		set("address", emptyToNull(u.Address))
	}
	if u.Phone != nil {
		set("phone", emptyToNull(u.Phone))
	}
	if u.Email != nil {
		set("email", emptyToNull(u.Email))
	}
	if u.Website != nil {
		set("website", emptyToNull(u.Website))
	}
	if u.Status != nil {
		set("status", *u.Status)
	}
	if u.Assignee != nil {
		set("assignee_id", emptyToNull(u.Assignee))
	}
	if u.NextFollowUpDate != nil {
		set("next_follow_up_date", emptyToNull(u.NextFollowUpDate))
	}
	sets = append(sets, "last_updated_at = now()")

	args = append(args, id)
	updateQuery := fmt.Sprintf(`UPDATE hotels SET %s WHERE id = $%d RETURNING %s`,
		strings.Join(sets, ", "), len(args), hotelColumns)
	h, err := scanHotel(tx.QueryRow(ctx, updateQuery, args...))
	if err != nil {
		return nil, fmt.Errorf("hotels: update: %w", err)
	}

	if u.Status != nil && *u.Status != current {
		old := current
		updated := *u.Status
		if err := insertActivity(ctx, tx, ActivityLog{
			HotelID:   id,
			UserID:    actor.UserID,
			UserName:  actor.Name(),
			Action:    ActionStatusChanged,
			OldStatus: &old,
			NewStatus: &updated,
		}); err != nil {
			return nil, err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("hotels: commit update: %w", err)
	}
	return &h, nil
}

// BulkUpdate applies the same field subset to every listed hotel in a
// single statement. The bulk path deliberately emits no audit entries.
func (r *Repository) BulkUpdate(ctx context.Context, ids []string, u BulkHotelUpdate) (int, error) {
	if len(ids) == 0 {
		return 0, ErrNoIDs
	}
	if u.Empty() {
		return 0, ErrNoFields
	}
	if u.Status != nil && !u.Status.Valid() {
		return 0, ErrInvalidStatus
	}

	var sets []string
	var args []any
	set := func(column string, value any) {
		args = append(args, value)
		sets = append(sets, fmt.Sprintf("%s = $%d", column, len(args)))
	}
	if u.Status != nil {
		set("status", *u.Status)
	}
	if u.Assignee != nil {
		set("assignee_id", emptyToNull(u.Assignee))
	}
	if u.NextFollowUpDate != nil {
		set("next_follow_up_date", emptyToNull(u.NextFollowUpDate))
	}
	sets = append(sets, "last_updated_at = now()")

	args = append(args, ids)
	query := fmt.Sprintf(`UPDATE hotels SET %s WHERE id = ANY($%d)`, strings.Join(sets, ", "), len(args))
	ct, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("hotels: bulk update: %w", err)
	}
	return int(ct.RowsAffected()), nil
}

// emptyToNull maps the empty string to SQL NULL so cleared fields
// never persist as "".
func emptyToNull(s *string) any {
	if s == nil || *s == "" {
		return nil
	}
	return *s
}
