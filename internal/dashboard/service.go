// Package dashboard computes aggregate views over the full hotel set.
// Both reports are plain full-table scans; nothing is maintained
// incrementally.
package dashboard

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/thurein/hotel-outreach/internal/hotels"
)

const dateLayout = "2006-01-02"

// Summary is the aggregate dashboard payload.
type Summary struct {
	TotalHotels        int                              `json:"totalHotels"`
	NewHotels          int                              `json:"newHotels"`
	InterestedHotels   int                              `json:"interestedHotels"`
	SignedHotels       int                              `json:"signedHotels"`
	StatusDistribution map[hotels.Status]int            `json:"statusDistribution"`
	RegionStatusMatrix map[string]map[hotels.Status]int `json:"regionStatusMatrix"`
}

// DB is the pgx surface the service needs.
type DB interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

// Service computes the dashboard reports.
type Service struct {
	db  DB
	now func() time.Time
}

// NewService initializes a service backed by pgxpool.
func NewService(pool *pgxpool.Pool) *Service {
	if pool == nil {
		panic("dashboard: pgx pool required")
	}
	return &Service{db: pool, now: time.Now}
}

// NewServiceWithDB allows injecting a mock database for testing.
func NewServiceWithDB(db DB) *Service {
	return &Service{db: db, now: time.Now}
}

// Summary scans (status, region) across every hotel and folds the result
// into totals, a per-status histogram and a region-by-status matrix. The
// histogram always carries all seven statuses, zeroes included. Hotels with
// an empty region land in the "Unknown" bucket.
func (s *Service) Summary(ctx context.Context) (*Summary, error) {
	rows, err := s.db.Query(ctx, `SELECT status, region FROM hotels`)
	if err != nil {
		return nil, fmt.Errorf("dashboard: scan hotels: %w", err)
	}
	defer rows.Close()

	summary := &Summary{
		StatusDistribution: emptyDistribution(),
		RegionStatusMatrix: map[string]map[hotels.Status]int{},
	}

	for rows.Next() {
		var status hotels.Status
		var region string
		if err := rows.Scan(&status, &region); err != nil {
			return nil, fmt.Errorf("dashboard: scan row: %w", err)
		}

		summary.TotalHotels++
		summary.StatusDistribution[status]++

		if region == "" {
			region = "Unknown"
		}
		if summary.RegionStatusMatrix[region] == nil {
			summary.RegionStatusMatrix[region] = emptyDistribution()
		}
		summary.RegionStatusMatrix[region][status]++
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("dashboard: scan rows: %w", err)
	}

	summary.NewHotels = summary.StatusDistribution[hotels.StatusNew]
	summary.InterestedHotels = summary.StatusDistribution[hotels.StatusInterested] +
		summary.StatusDistribution[hotels.StatusDemoBooked]
	summary.SignedHotels = summary.StatusDistribution[hotels.StatusSigned]
	return summary, nil
}

func emptyDistribution() map[hotels.Status]int {
	dist := make(map[hotels.Status]int, len(hotels.AllStatuses))
	for _, s := range hotels.AllStatuses {
		dist[s] = 0
	}
	return dist
}

// UpcomingFollowUps returns every hotel whose follow-up date is today or
// earlier, most overdue first. Hotels with no follow-up date are excluded.
func (s *Service) UpcomingFollowUps(ctx context.Context) ([]hotels.Hotel, error) {
	today := s.now().Format(dateLayout)
	rows, err := s.db.Query(ctx, `
		SELECT id, hotel_name, region, address, phone, email, website, status, assignee_id, next_follow_up_date, created_at, last_updated_at
		FROM hotels
		WHERE next_follow_up_date IS NOT NULL AND next_follow_up_date <= $1
		ORDER BY next_follow_up_date ASC`, today)
	if err != nil {
		return nil, fmt.Errorf("dashboard: follow-ups: %w", err)
	}
	defer rows.Close()

	out := []hotels.Hotel{}
	for rows.Next() {
		var (
			h        hotels.Hotel
			address  *string
			phone    *string
			email    *string
			website  *string
			followUp *time.Time
		)
		if err := rows.Scan(&h.ID, &h.HotelName, &h.Region, &address, &phone, &email, &website,
			&h.Status, &h.Assignee, &followUp, &h.CreatedAt, &h.LastUpdatedAt); err != nil {
			return nil, fmt.Errorf("dashboard: scan follow-up: %w", err)
		}
		h.Address = orEmpty(address)
		h.Phone = orEmpty(phone)
		h.Email = orEmpty(email)
		h.Website = orEmpty(website)
		if followUp != nil {
			d := followUp.Format(dateLayout)
			h.NextFollowUpDate = &d
		}
		out = append(out, h)
	}
	return out, rows.Err()
}

func orEmpty(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
