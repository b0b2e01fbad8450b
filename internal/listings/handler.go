package listings

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/gorilla/mux"

	"prism/infrastructure"
	"prism/internal/geo"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// List handles GET /api/mutual-aid/ with type/category filters and
// optional lat/lng proximity.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := Filter{
		ListingType: q.Get("type"),
		Category:    q.Get("category"),
	}

	var lat, lng *float64
	if latStr, lngStr := q.Get("lat"), q.Get("lng"); latStr != "" && lngStr != "" {
		la, ln, err := geo.ParseCoordinates(latStr, lngStr)
		if err != nil {
			infrastructure.WriteError(w, err)
			return
		}
		lat, lng = &la, &ln
	}

	out, err := h.service.Browse(r.Context(), filter, lat, lng)
	if err != nil {
		infrastructure.WriteError(w, err)
		return
	}
	infrastructure.WriteJSON(w, http.StatusOK, out)
}

// Create handles POST /api/mutual-aid/.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	creatorHash := infrastructure.CallerHash(r)
	if creatorHash == "" {
		infrastructure.WriteDetail(w, http.StatusUnauthorized, "user hash required")
		return
	}

	var req CreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		infrastructure.WriteError(w, fmt.Errorf("%w: %v", infrastructure.ErrInvalidInput, err))
		return
	}

	listing, err := h.service.Create(r.Context(), creatorHash, &req)
	if err != nil {
		infrastructure.WriteError(w, err)
		return
	}
	infrastructure.WriteJSON(w, http.StatusCreated, listing)
}

// Fulfill handles POST /api/mutual-aid/{id}/fulfill/.
func (h *Handler) Fulfill(w http.ResponseWriter, r *http.Request) {
	creatorHash := infrastructure.CallerHash(r)
	if creatorHash == "" {
		infrastructure.WriteDetail(w, http.StatusUnauthorized, "user hash required")
		return
	}

	if err := h.service.Fulfill(r.Context(), mux.Vars(r)["id"], creatorHash); err != nil {
		infrastructure.WriteError(w, err)
		return
	}
	infrastructure.WriteJSON(w, http.StatusOK, map[string]string{"status": "fulfilled"})
}
