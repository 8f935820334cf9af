package hotels

import "time"

// Hotel is a single outreach prospect.
type Hotel struct {
	ID               string    `json:"id"`
	HotelName        string    `json:"hotelName"`
	Region           string    `json:"region"`
	Address          string    `json:"address"`
	Phone            string    `json:"phone"`
	Email            string    `json:"email"`
	Website          string    `json:"website"`
	Status           Status    `json:"status"`
	Assignee         *string   `json:"assignee"`
	NextFollowUpDate *string   `json:"nextFollowUpDate"`
	CreatedAt        time.Time `json:"createdAt"`
	LastUpdatedAt    time.Time `json:"lastUpdatedAt"`
}

// Note is a free-text comment attached to a hotel. Immutable once created.
type Note struct {
	ID         string    `json:"id"`
	HotelID    string    `json:"hotelId"`
	AuthorName string    `json:"authorName"`
	Content    string    `json:"content"`
	CreatedAt  time.Time `json:"createdAt"`
}

// ActivityLog is an append-only audit entry. OldStatus/NewStatus are set
// only for status_changed entries.
type ActivityLog struct {
	ID        string    `json:"id"`
	HotelID   string    `json:"hotelId"`
	UserID    *string   `json:"userId"`
	UserName  string    `json:"userName"`
	Action    string    `json:"action"`
	OldStatus *Status   `json:"oldStatus,omitempty"`
	NewStatus *Status   `json:"newStatus,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// Audit action tags.
const (
	ActionCreated       = "created"
	ActionStatusChanged = "status_changed"
)

// Actor identifies who performed a mutation. Identity is trusted as given;
// there is no authentication layer in front of this service.
type Actor struct {
	UserID   *string
	UserName string
}

// Name returns the display name, defaulting to System when absent.
func (a Actor) Name() string {
	if a.UserName == "" {
		return "System"
	}
	return a.UserName
}

// CreateHotel carries the fields accepted when creating a hotel.
type CreateHotel struct {
	HotelName        string
	Region           string
	Address          *string
	Phone            *string
	Email            *string
	Website          *string
	Status           *Status
	Assignee         *string
	NextFollowUpDate *string
}

// HotelUpdate is a partial update: only non-nil fields are applied.
// A nil pointer means "leave unchanged", which is distinct from a pointer
// to the empty string (clear the field).
type HotelUpdate struct {
	HotelName        *string
	Region           *string
	Address          *string
	Phone            *string
	Email            *string
	Website          *string
	Status           *Status
	Assignee         *string
	NextFollowUpDate *string
}

// Empty reports whether the update carries no recognized field.
func (u HotelUpdate) Empty() bool {
	return u.HotelName == nil && u.Region == nil && u.Address == nil &&
		u.Phone == nil && u.Email == nil && u.Website == nil &&
		u.Status == nil && u.Assignee == nil && u.NextFollowUpDate == nil
}

// BulkHotelUpdate is the field subset allowed on the bulk path.
type BulkHotelUpdate struct {
	Status           *Status
	Assignee         *string
	NextFollowUpDate *string
}

// Empty reports whether the bulk update carries no recognized field.
func (u BulkHotelUpdate) Empty() bool {
	return u.Status == nil && u.Assignee == nil && u.NextFollowUpDate == nil
}

// FollowUpWindow names a date-range filter evaluated against the server's
// current date.
type FollowUpWindow string

const (
	FollowUpAll      FollowUpWindow = "all"
	FollowUpToday    FollowUpWindow = "today"
	FollowUpThisWeek FollowUpWindow = "thisWeek"
	FollowUpOverdue  FollowUpWindow = "overdue"
)

// ListFilters is the predicate conjunction for List. Zero values mean
// "no constraint".
type ListFilters struct {
	Region         string
	Statuses       []Status
	Assignee       string // user id, "me" for any assignee, "" or "all" for no constraint
	FollowUpWindow FollowUpWindow
}

// HotelPage is one page of list results plus the total matching count.
type HotelPage struct {
	Data       []Hotel `json:"data"`
	TotalCount int     `json:"totalCount"`
	Page       int     `json:"page"`
	PageSize   int     `json:"pageSize"`
}

// ImportHotel is one externally sourced record. Name and region form the
// natural key used for reconciliation.
type ImportHotel struct {
	HotelName string  `json:"hotelName"`
	Region    string  `json:"region"`
	Address   *string `json:"address"`
	Phone     *string `json:"phone"`
	Email     *string `json:"email"`
	Website   *string `json:"website"`
}

// ImportResult counts the outcome of an import batch. Skipped is reserved
// for intra-batch duplicate detection and is always zero today.
type ImportResult struct {
	Created int `json:"created"`
	Updated int `json:"updated"`
	Skipped int `json:"skipped"`
}
