package caches

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"

	"prism/infrastructure"
	"prism/internal/geo"
)

type Handler struct {
	repo Repository
}

func NewHandler(repo Repository) *Handler {
	return &Handler{repo: repo}
}

type listItem struct {
	Cache
	Distance float64 `json:"distance"`
}

// List handles GET /api/caches/?lat=..&lng=..: drops within 5km, nearest
// first, with computed distance.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	latStr, lngStr := r.URL.Query().Get("lat"), r.URL.Query().Get("lng")
	if latStr == "" || lngStr == "" {
		infrastructure.WriteDetail(w, http.StatusBadRequest, "location required")
		return
	}
	lat, lng, err := geo.ParseCoordinates(latStr, lngStr)
	if err != nil {
		infrastructure.WriteError(w, err)
		return
	}

	all, err := h.repo.Active(r.Context())
	if err != nil {
		infrastructure.WriteError(w, err)
		return
	}

	nearby, distances := geo.FilterByRadius(all, lat, lng, searchRadiusMeters)
	items := make([]listItem, 0, len(nearby))
	for i, c := range nearby {
		items = append(items, listItem{Cache: c, Distance: distances[i]})
	}
	infrastructure.WriteJSON(w, http.StatusOK, items)
}

type createRequest struct {
	Latitude   float64 `json:"latitude"`
	Longitude  float64 `json:"longitude"`
	Ciphertext string  `json:"ciphertext"`
	IconType   string  `json:"icon_type"`
}

// Create handles POST /api/caches/.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req createRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		infrastructure.WriteError(w, fmt.Errorf("%w: %v", infrastructure.ErrInvalidInput, err))
		return
	}
	if err := geo.ValidateCoordinates(req.Latitude, req.Longitude); err != nil {
		infrastructure.WriteError(w, err)
		return
	}
	if req.Ciphertext == "" {
		infrastructure.WriteDetail(w, http.StatusBadRequest, "ciphertext is required")
		return
	}
	if req.IconType == "" {
		req.IconType = "heart"
	}
	if !IconTypes[req.IconType] {
		infrastructure.WriteDetail(w, http.StatusBadRequest, "invalid icon_type")
		return
	}

	now := time.Now().UTC()
	cache := &Cache{
		ID:         uuid.NewString(),
		Latitude:   req.Latitude,
		Longitude:  req.Longitude,
		Ciphertext: req.Ciphertext,
		IconType:   req.IconType,
		CreatedAt:  now,
		ExpiresAt:  now.Add(lifetime),
	}
	if err := h.repo.Create(r.Context(), cache); err != nil {
		infrastructure.WriteError(w, err)
		return
	}
	infrastructure.WriteJSON(w, http.StatusCreated, cache)
}
