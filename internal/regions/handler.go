package regions

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/thurein/hotel-outreach/internal/api/respond"
	"github.com/thurein/hotel-outreach/internal/db"
	"github.com/thurein/hotel-outreach/pkg/logging"
)

// Handler handles HTTP requests for the region registry
type Handler struct {
	registry *Registry
	logger   *logging.Logger
}

// NewHandler creates a new regions handler
func NewHandler(registry *Registry, logger *logging.Logger) *Handler {
	if logger == nil {
		logger = logging.Default()
	}
	return &Handler{registry: registry, logger: logger}
}

// Routes mounts the region endpoints.
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.List)
	r.Post("/", h.Create)
	r.Patch("/", h.Rename)
	r.Delete("/", h.Delete)
	return r
}

// List handles GET /regions
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	names, err := h.registry.List(r.Context())
	if err != nil {
		h.logger.Error("failed to list regions", "error", err)
		h.writeError(w, err)
		return
	}
	respond.JSON(w, http.StatusOK, names)
}

type createRegionRequest struct {
	Region string `json:"region"`
	Name   string `json:"name"`
}

// Create handles POST /regions. The body accepts either "region" or "name".
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req createRegionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Error(w, http.StatusBadRequest, "invalid json: "+err.Error())
		return
	}

	name := req.Region
	if name == "" {
		name = req.Name
	}

	created, err := h.registry.Create(r.Context(), name)
	if err != nil {
		h.writeError(w, err)
		return
	}

	h.logger.Info("region created", "name", created)
	respond.JSON(w, http.StatusCreated, created)
}

type renameRegionRequest struct {
	OldRegion string `json:"oldRegion"`
	NewRegion string `json:"newRegion"`
}

// Rename handles PATCH /regions
func (h *Handler) Rename(w http.ResponseWriter, r *http.Request) {
	var req renameRegionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Error(w, http.StatusBadRequest, "invalid json: "+err.Error())
		return
	}

	if err := h.registry.Rename(r.Context(), req.OldRegion, req.NewRegion); err != nil {
		h.logger.Error("failed to rename region", "error", err, "old", req.OldRegion, "new", req.NewRegion)
		h.writeError(w, err)
		return
	}

	h.logger.Info("region renamed", "old", req.OldRegion, "new", req.NewRegion)
	respond.JSON(w, http.StatusOK, map[string]string{"oldRegion": req.OldRegion, "newRegion": req.NewRegion})
}

// Delete handles DELETE /regions?region=
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	name := r.URL.Query().Get("region")
	if err := h.registry.Delete(r.Context(), name); err != nil {
		h.writeError(w, err)
		return
	}

	h.logger.Info("region deleted", "name", name)
	respond.JSON(w, http.StatusOK, name)
}

func (h *Handler) writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrEmptyName), errors.Is(err, ErrRegionInUse):
		respond.Error(w, http.StatusBadRequest, err.Error())
	case db.Unavailable(err):
		respond.Error(w, http.StatusServiceUnavailable, "storage unavailable")
	default:
		respond.Error(w, http.StatusInternalServerError, err.Error())
	}
}
