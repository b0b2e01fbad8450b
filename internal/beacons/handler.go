package beacons

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"

	"prism/infrastructure"
)

type Handler struct {
	repo Repository
}

func NewHandler(repo Repository) *Handler {
	return &Handler{repo: repo}
}

// List handles GET /api/beacons/?topic=...&geohash=...
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	topic := r.URL.Query().Get("topic")
	if topic == "" {
		infrastructure.WriteDetail(w, http.StatusBadRequest, "topic required")
		return
	}

	prefix := r.URL.Query().Get("geohash")
	if len(prefix) > geohashPrefixLen {
		prefix = prefix[:geohashPrefixLen]
	}

	out, err := h.repo.ActiveByTopic(r.Context(), topic, prefix)
	if err != nil {
		infrastructure.WriteError(w, err)
		return
	}
	if out == nil {
		out = []Beacon{}
	}
	infrastructure.WriteJSON(w, http.StatusOK, out)
}

type createRequest struct {
	Topic         string `json:"topic"`
	BroadcastHash string `json:"broadcast_hash"`
	Geohash       string `json:"geohash"`
}

// Create handles POST /api/beacons/.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	if infrastructure.CallerHash(r) == "" {
		infrastructure.WriteDetail(w, http.StatusUnauthorized, "user hash required")
		return
	}

	var req createRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		infrastructure.WriteError(w, fmt.Errorf("%w: %v", infrastructure.ErrInvalidInput, err))
		return
	}
	if !Topics[req.Topic] {
		infrastructure.WriteDetail(w, http.StatusBadRequest, "invalid topic")
		return
	}
	if req.BroadcastHash == "" || len(req.BroadcastHash) > 64 {
		infrastructure.WriteDetail(w, http.StatusBadRequest, "broadcast_hash is required")
		return
	}
	if len(req.Geohash) > 6 {
		infrastructure.WriteDetail(w, http.StatusBadRequest, "geohash too long")
		return
	}

	now := time.Now().UTC()
	beacon := &Beacon{
		ID:            uuid.NewString(),
		Topic:         req.Topic,
		BroadcastHash: req.BroadcastHash,
		Geohash:       req.Geohash,
		CreatedAt:     now,
		ExpiresAt:     now.Add(lifetime),
	}
	if err := h.repo.Create(r.Context(), beacon); err != nil {
		infrastructure.WriteError(w, err)
		return
	}
	infrastructure.WriteJSON(w, http.StatusCreated, beacon)
}
