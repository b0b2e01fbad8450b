package keys

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

// Register handles POST /api/users/.
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		infrastructure.WriteError(w, fmt.Errorf("%w: %v", infrastructure.ErrInvalidInput, err))
		return
	}

	userHash, err := h.service.Register(r.Context(), &req)
	if err != nil {
		infrastructure.WriteError(w, err)
		return
	}

	infrastructure.WriteJSON(w, http.StatusCreated, map[string]string{"user_hash": userHash})
}

// Bundle handles GET /api/users/{user_hash}/prekey/.
func (h *Handler) Bundle(w http.ResponseWriter, r *http.Request) {
	userHash := mux.Vars(r)["user_hash"]

	bundle, err := h.service.IssueBundle(r.Context(), userHash)
	if err != nil {
		infrastructure.WriteError(w, err)
		return
	}

	infrastructure.WriteJSON(w, http.StatusOK, bundle)
}

// Upload handles POST /api/users/prekeys/.
func (h *Handler) Upload(w http.ResponseWriter, r *http.Request) {
	userHash := infrastructure.CallerHash(r)
	if userHash == "" {
		infrastructure.WriteDetail(w, http.StatusUnauthorized, "user hash required")
		return
	}

	var req UploadRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		infrastructure.WriteError(w, fmt.Errorf("%w: %v", infrastructure.ErrInvalidInput, err))
		return
	}

	uploaded, available, err := h.service.UploadPreKeys(r.Context(), userHash, &req)
	if err != nil {
		infrastructure.WriteError(w, err)
		return
	}

	infrastructure.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"uploaded":           uploaded,
		"pre_keys_available": available,
	})
}

// Rotate handles POST /api/users/signedprekey/.
func (h *Handler) Rotate(w http.ResponseWriter, r *http.Request) {
	userHash := infrastructure.CallerHash(r)
	if userHash == "" {
		infrastructure.WriteDetail(w, http.StatusUnauthorized, "user hash required")
		return
	}

	var req RotateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		infrastructure.WriteError(w, fmt.Errorf("%w: %v", infrastructure.ErrInvalidInput, err))
		return
	}

	if err := h.service.RotateSignedPreKey(r.Context(), userHash, &req); err != nil {
		infrastructure.WriteError(w, err)
		return
	}

	infrastructure.WriteJSON(w, http.StatusOK, map[string]string{"status": "rotated"})
}
