package hotels

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/thurein/hotel-outreach/internal/api/respond"
	"github.com/thurein/hotel-outreach/internal/db"
	"github.com/thurein/hotel-outreach/pkg/logging"
)

// Handler handles HTTP requests for hotels
type Handler struct {
	repo            *Repository
	logger          *logging.Logger
	defaultPageSize int
	maxPageSize     int
}

// NewHandler creates a new hotels handler
func NewHandler(repo *Repository, logger *logging.Logger) *Handler {
	if logger == nil {
		logger = logging.Default()
	}
	return &Handler{repo: repo, logger: logger, defaultPageSize: 10, maxPageSize: 100}
}

// WithPageSizes overrides the pagination bounds.
func (h *Handler) WithPageSizes(defaultSize, maxSize int) *Handler {
	if defaultSize > 0 {
		h.defaultPageSize = defaultSize
	}
	if maxSize > 0 {
		h.maxPageSize = maxSize
	}
	return h
}

// Routes mounts the hotel endpoints.
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.List)
	r.Post("/", h.Create)
	r.Post("/bulk", h.BulkUpdate)
	r.Post("/import", h.Import)
	r.Route("/{hotelID}", func(r chi.Router) {
		r.Get("/", h.Get)
		r.Patch("/", h.Update)
		r.Get("/notes", h.ListNotes)
		r.Post("/notes", h.CreateNote)
		r.Get("/activity", h.ListActivity)
	})
	return r
}

// List handles GET /hotels
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	page := 1
	if v, err := strconv.Atoi(q.Get("page")); err == nil && v > 0 {
		page = v
	}
	pageSize := h.defaultPageSize
	if v, err := strconv.Atoi(q.Get("pageSize")); err == nil && v > 0 && v <= h.maxPageSize {
		pageSize = v
	}

	filters := ListFilters{
		Region:         q.Get("region"),
		Assignee:       q.Get("assignee"),
		FollowUpWindow: FollowUpWindow(q.Get("followUpFilter")),
	}
	for _, s := range q["status"] {
		status := Status(s)
		if !status.Valid() {
			respond.Error(w, http.StatusBadRequest, ErrInvalidStatus.Error())
			return
		}
		filters.Statuses = append(filters.Statuses, status)
	}

	result, err := h.repo.List(r.Context(), filters, page, pageSize)
	if err != nil {
		h.logger.Error("failed to list hotels", "error", err)
		h.writeError(w, err)
		return
	}
	respond.JSON(w, http.StatusOK, result)
}

// Get handles GET /hotels/{hotelID}
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	hotel, err := h.repo.GetByID(r.Context(), chi.URLParam(r, "hotelID"))
	if err != nil {
		h.writeError(w, err)
		return
	}
	respond.JSON(w, http.StatusOK, hotel)
}

type createRequest struct {
	HotelName        string  `json:"hotelName"`
	Region           string  `json:"region"`
	Address          *string `json:"address"`
	Phone            *string `json:"phone"`
	Email            *string `json:"email"`
	Website          *string `json:"website"`
	Status           *Status `json:"status"`
	Assignee         *string `json:"assignee"`
	NextFollowUpDate *string `json:"nextFollowUpDate"`
	UserID           *string `json:"userId"`
	UserName         string  `json:"userName"`
}

// Create handles POST /hotels
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req createRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Error(w, http.StatusBadRequest, "invalid json: "+err.Error())
		return
	}

	hotel, err := h.repo.Create(r.Context(), CreateHotel{
		HotelName:        req.HotelName,
		Region:           req.Region,
		Address:          req.Address,
		Phone:            req.Phone,
		Email:            req.Email,
		Website:          req.Website,
		Status:           req.Status,
		Assignee:         req.Assignee,
		NextFollowUpDate: req.NextFollowUpDate,
	}, Actor{UserID: req.UserID, UserName: req.UserName})
	if err != nil {
		h.logger.Error("failed to create hotel", "error", err)
		h.writeError(w, err)
		return
	}

	h.logger.Info("hotel created", "id", hotel.ID, "name", hotel.HotelName)
	respond.JSON(w, http.StatusCreated, hotel)
}

type updateRequest struct {
	HotelName        *string `json:"hotelName"`
	Region           *string `json:"region"`
	Address          *string `json:"address"`
	Phone            *string `json:"phone"`
	Email            *string `json:"email"`
	Website          *string `json:"website"`
	Status           *Status `json:"status"`
	Assignee         *string `json:"assignee"`
	NextFollowUpDate *string `json:"nextFollowUpDate"`
	UserID           *string `json:"userId"`
	UserName         string  `json:"userName"`
}

// Update handles PATCH /hotels/{hotelID}
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	var req updateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Error(w, http.StatusBadRequest, "invalid json: "+err.Error())
		return
	}

	id := chi.URLParam(r, "hotelID")
	hotel, err := h.repo.Update(r.Context(), id, HotelUpdate{
		HotelName:        req.HotelName,
		Region:           req.Region,
		Address:          req.Address,
		Phone:            req.Phone,
		Email:            req.Email,
		Website:          req.Website,
		Status:           req.Status,
		Assignee:         req.Assignee,
		NextFollowUpDate: req.NextFollowUpDate,
	}, Actor{UserID: req.UserID, UserName: req.UserName})
	if err != nil {
		h.logger.Error("failed to update hotel", "error", err, "id", id)
		h.writeError(w, err)
		return
	}
	respond.JSON(w, http.StatusOK, hotel)
}

type bulkRequest struct {
	HotelIDs []string `json:"hotelIds"`
	Updates  struct {
		Status           *Status `json:"status"`
		Assignee         *string `json:"assignee"`
		NextFollowUpDate *string `json:"nextFollowUpDate"`
	} `json:"updates"`
}

// BulkUpdate handles POST /hotels/bulk
func (h *Handler) BulkUpdate(w http.ResponseWriter, r *http.Request) {
	var req bulkRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Error(w, http.StatusBadRequest, "invalid json: "+err.Error())
		return
	}

	updated, err := h.repo.BulkUpdate(r.Context(), req.HotelIDs, BulkHotelUpdate{
		Status:           req.Updates.Status,
		Assignee:         req.Updates.Assignee,
		NextFollowUpDate: req.Updates.NextFollowUpDate,
	})
	if err != nil {
		h.logger.Error("failed to bulk update hotels", "error", err)
		h.writeError(w, err)
		return
	}

	h.logger.Info("hotels bulk updated", "count", updated)
	respond.JSON(w, http.StatusOK, map[string]int{"updated": updated})
}

type importRequest struct {
	Hotels []ImportHotel `json:"hotels"`
}

// Import handles POST /hotels/import
func (h *Handler) Import(w http.ResponseWriter, r *http.Request) {
	var req importRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Error(w, http.StatusBadRequest, "invalid json: "+err.Error())
		return
	}

	result, err := h.repo.Import(r.Context(), req.Hotels)
	if err != nil {
		h.logger.Error("failed to import hotels", "error", err)
		h.writeError(w, err)
		return
	}

	h.logger.Info("hotels imported", "created", result.Created, "updated", result.Updated)
	respond.JSON(w, http.StatusOK, result)
}

// ListNotes handles GET /hotels/{hotelID}/notes
func (h *Handler) ListNotes(w http.ResponseWriter, r *http.Request) {
	notes, err := h.repo.ListNotes(r.Context(), chi.URLParam(r, "hotelID"))
	if err != nil {
		h.logger.Error("failed to list notes", "error", err)
		h.writeError(w, err)
		return
	}
	respond.JSON(w, http.StatusOK, notes)
}

type noteRequest struct {
	AuthorName string `json:"authorName"`
	Content    string `json:"content"`
}

// CreateNote handles POST /hotels/{hotelID}/notes
func (h *Handler) CreateNote(w http.ResponseWriter, r *http.Request) {
	var req noteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Error(w, http.StatusBadRequest, "invalid json: "+err.Error())
		return
	}

	note, err := h.repo.CreateNote(r.Context(), chi.URLParam(r, "hotelID"), req.AuthorName, req.Content)
	if err != nil {
		h.writeError(w, err)
		return
	}
	respond.JSON(w, http.StatusCreated, note)
}

// ListActivity handles GET /hotels/{hotelID}/activity
func (h *Handler) ListActivity(w http.ResponseWriter, r *http.Request) {
	entries, err := h.repo.ListActivity(r.Context(), chi.URLParam(r, "hotelID"))
	if err != nil {
		h.logger.Error("failed to list activity", "error", err)
		h.writeError(w, err)
		return
	}
	respond.JSON(w, http.StatusOK, entries)
}

func (h *Handler) writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrHotelNotFound):
		respond.Error(w, http.StatusNotFound, err.Error())
	case errors.Is(err, ErrNoFields), errors.Is(err, ErrNoIDs),
		errors.Is(err, ErrInvalidStatus), errors.Is(err, ErrMissingContent):
		respond.Error(w, http.StatusBadRequest, err.Error())
	case db.Unavailable(err):
		respond.Error(w, http.StatusServiceUnavailable, "storage unavailable")
	default:
		respond.Error(w, http.StatusInternalServerError, err.Error())
	}
}
