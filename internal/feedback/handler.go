package feedback

import (
	"encoding/json"
	"fmt"
	"net/http"

	"prism/infrastructure"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Submit handles POST /api/feedback/.
func (h *Handler) Submit(w http.ResponseWriter, r *http.Request) {
	var req SubmitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		infrastructure.WriteError(w, fmt.Errorf("%w: %v", infrastructure.ErrInvalidInput, err))
		return
	}

	fb, err := h.service.Submit(r.Context(), &req)
	if err != nil {
		infrastructure.WriteError(w, err)
		return
	}
	infrastructure.WriteJSON(w, http.StatusCreated, map[string]string{
		"status": "received",
		"id":     fb.ID,
	})
}

// Bridge handles GET /api/community-bridge/.
func (h *Handler) Bridge(w http.ResponseWriter, r *http.Request) {
	out, err := h.service.Bridge(r.Context())
	if err != nil {
		infrastructure.WriteError(w, err)
		return
	}
	infrastructure.WriteJSON(w, http.StatusOK, out)
}

// Apply handles POST /api/admin-applications/.
func (h *Handler) Apply(w http.ResponseWriter, r *http.Request) {
	var req ApplyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		infrastructure.WriteError(w, fmt.Errorf("%w: %v", infrastructure.ErrInvalidInput, err))
		return
	}

	app, err := h.service.Apply(r.Context(), &req)
	if err != nil {
		infrastructure.WriteError(w, err)
		return
	}
	infrastructure.WriteJSON(w, http.StatusCreated, app)
}
