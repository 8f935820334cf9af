package users

import (
	"net/http"

	"github.com/thurein/hotel-outreach/internal/api/respond"
	"github.com/thurein/hotel-outreach/internal/db"
	"github.com/thurein/hotel-outreach/pkg/logging"
)

// Handler serves GET /users.
type Handler struct {
	repo   *Repository
	logger *logging.Logger
}

func NewHandler(repo *Repository, logger *logging.Logger) *Handler {
	if logger == nil {
		logger = logging.Default()
	}
	return &Handler{repo: repo, logger: logger}
}

// List handles GET /users
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	list, err := h.repo.List(r.Context())
	if err != nil {
		h.logger.Error("failed to list users", "error", err)
		if db.Unavailable(err) {
			respond.Error(w, http.StatusServiceUnavailable, "storage unavailable")
			return
		}
		respond.Error(w, http.StatusInternalServerError, err.Error())
		return
	}
	respond.JSON(w, http.StatusOK, list)
}
