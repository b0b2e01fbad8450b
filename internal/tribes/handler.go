package tribes

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"prism/config"
	"prism/infrastructure"
	"prism/pkg/jwt"
)

type Handler struct {
	service  *Service
	adminKey string
	tokens   *jwt.JWT
}

func NewHandler(service *Service, cfg *config.Config, tokens *jwt.JWT) *Handler {
	return &Handler{service: service, adminKey: cfg.AdminKey, tokens: tokens}
}

// List handles GET /api/tribes/{tribe_id}/posts/.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	posts, err := h.service.ListPosts(r.Context(), mux.Vars(r)["tribe_id"])
	if err != nil {
		infrastructure.WriteError(w, err)
		return
	}
	infrastructure.WriteJSON(w, http.StatusOK, posts)
}

// Create handles POST /api/tribes/{tribe_id}/posts/.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Content string `json:"content"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		infrastructure.WriteError(w, fmt.Errorf("%w: %v", infrastructure.ErrInvalidInput, err))
		return
	}

	post, err := h.service.CreatePost(r.Context(), mux.Vars(r)["tribe_id"], req.Content, r.RemoteAddr)
	if err != nil {
		infrastructure.WriteError(w, err)
		return
	}
	infrastructure.WriteJSON(w, http.StatusCreated, post)
}

// Delete handles DELETE /api/posts/{post_id}/delete/. Moderators only.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	if !infrastructure.AdminAuthorized(r, h.adminKey, h.tokens) {
		infrastructure.WriteDetail(w, http.StatusForbidden, "admin access required")
		return
	}

	id, err := postID(r)
	if err != nil {
		infrastructure.WriteError(w, err)
		return
	}

	var req struct {
		AdminEmail string `json:"admin_email"`
		Reason     string `json:"reason"`
	}
	// Body is optional for deletes.
	_ = json.NewDecoder(r.Body).Decode(&req)

	if err := h.service.DeletePost(r.Context(), id, req.AdminEmail, req.Reason); err != nil {
		infrastructure.WriteError(w, err)
		return
	}
	infrastructure.WriteJSON(w, http.StatusOK, map[string]string{"message": "post deleted"})
}

// React handles POST /api/posts/{post_id}/react/.
func (h *Handler) React(w http.ResponseWriter, r *http.Request) {
	id, err := postID(r)
	if err != nil {
		infrastructure.WriteError(w, err)
		return
	}

	var req struct {
		ReactionType string `json:"reaction_type"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		infrastructure.WriteError(w, fmt.Errorf("%w: %v", infrastructure.ErrInvalidInput, err))
		return
	}

	added, err := h.service.React(r.Context(), id, reactorHash(r), req.ReactionType)
	if err != nil {
		infrastructure.WriteError(w, err)
		return
	}
	if added {
		infrastructure.WriteJSON(w, http.StatusCreated, map[string]string{"message": "reaction added"})
		return
	}
	infrastructure.WriteJSON(w, http.StatusOK, map[string]string{"message": "reaction removed"})
}

func postID(r *http.Request) (uint, error) {
	id, err := strconv.ParseUint(mux.Vars(r)["post_id"], 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: invalid post id", infrastructure.ErrInvalidInput)
	}
	return uint(id), nil
}

// reactorHash identifies the reacting user. Registered callers send their
// user hash; everyone else gets a stable per-address pseudonym so toggling
// still works.
func reactorHash(r *http.Request) string {
	if hash := infrastructure.CallerHash(r); hash != "" {
		return hash
	}
	sum := sha256.Sum256([]byte(r.RemoteAddr))
	return hex.EncodeToString(sum[:])[:16]
}
