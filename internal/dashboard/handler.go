package dashboard

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/thurein/hotel-outreach/internal/api/respond"
	"github.com/thurein/hotel-outreach/internal/db"
	"github.com/thurein/hotel-outreach/pkg/logging"
)

// Handler serves the dashboard endpoints.
type Handler struct {
	service *Service
	cache   *SummaryCache
	logger  *logging.Logger
}

// NewHandler creates a new dashboard handler. cache may be nil.
func NewHandler(service *Service, cache *SummaryCache, logger *logging.Logger) *Handler {
	if logger == nil {
		logger = logging.Default()
	}
	return &Handler{service: service, cache: cache, logger: logger}
}

// Routes mounts the dashboard endpoints.
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Get("/summary", h.Summary)
	r.Get("/followups", h.FollowUps)
	return r
}

// Summary handles GET /dashboard/summary
func (h *Handler) Summary(w http.ResponseWriter, r *http.Request) {
	if cached := h.cache.Get(r.Context()); cached != nil {
		respond.JSON(w, http.StatusOK, cached)
		return
	}

	summary, err := h.service.Summary(r.Context())
	if err != nil {
		h.logger.Error("failed to compute summary", "error", err)
		h.writeError(w, err)
		return
	}
	h.cache.Set(r.Context(), summary)
	respond.JSON(w, http.StatusOK, summary)
}

// FollowUps handles GET /dashboard/followups
func (h *Handler) FollowUps(w http.ResponseWriter, r *http.Request) {
	list, err := h.service.UpcomingFollowUps(r.Context())
	if err != nil {
		h.logger.Error("failed to list follow-ups", "error", err)
		h.writeError(w, err)
		return
	}
	respond.JSON(w, http.StatusOK, list)
}

func (h *Handler) writeError(w http.ResponseWriter, err error) {
	if db.Unavailable(err) {
		respond.Error(w, http.StatusServiceUnavailable, "storage unavailable")
		return
	}
	respond.Error(w, http.StatusInternalServerError, err.Error())
}
