package messages

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/gorilla/mux"

	"prism/infrastructure"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// List handles GET /api/messages/: pending messages for the caller.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	userHash := infrastructure.CallerHash(r)
	if userHash == "" {
		infrastructure.WriteDetail(w, http.StatusUnauthorized, "user hash required")
		return
	}

	msgs, err := h.service.Pending(r.Context(), userHash)
	if err != nil {
		infrastructure.WriteError(w, err)
		return
	}
	if msgs == nil {
		msgs = []EncryptedMessage{}
	}
	infrastructure.WriteJSON(w, http.StatusOK, msgs)
}

// Create handles POST /api/messages/.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	userHash := infrastructure.CallerHash(r)
	if userHash == "" {
		infrastructure.WriteDetail(w, http.StatusUnauthorized, "user hash required")
		return
	}

	var req SendRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		infrastructure.WriteError(w, fmt.Errorf("%w: %v", infrastructure.ErrInvalidInput, err))
		return
	}

	msg, err := h.service.Send(r.Context(), userHash, &req)
	if err != nil {
		infrastructure.WriteError(w, err)
		return
	}
	infrastructure.WriteJSON(w, http.StatusCreated, map[string]string{"id": msg.ID})
}

// Ack handles POST /api/messages/{id}/ack/.
func (h *Handler) Ack(w http.ResponseWriter, r *http.Request) {
	userHash := infrastructure.CallerHash(r)
	if userHash == "" {
		infrastructure.WriteDetail(w, http.StatusUnauthorized, "user hash required")
		return
	}

	if err := h.service.Ack(r.Context(), mux.Vars(r)["id"], userHash); err != nil {
		infrastructure.WriteError(w, err)
		return
	}
	infrastructure.WriteJSON(w, http.StatusOK, map[string]string{"status": "acknowledged"})
}

// Delete handles DELETE /api/messages/{id}/.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	userHash := infrastructure.CallerHash(r)
	if userHash == "" {
		infrastructure.WriteDetail(w, http.StatusUnauthorized, "authentication required")
		return
	}

	if err := h.service.Delete(r.Context(), mux.Vars(r)["id"], userHash); err != nil {
		infrastructure.WriteError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
