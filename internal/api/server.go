package api

import (
	"crypto/subtle"
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"prism/config"
	"prism/infrastructure"
	"prism/internal/beacons"
	"prism/internal/caches"
	"prism/internal/feedback"
	"prism/internal/keys"
	"prism/internal/listings"
	"prism/internal/messages"
	"prism/internal/orgs"
	"prism/internal/ratelimit"
	"prism/internal/tribes"
	"prism/pkg/jwt"
)

const adminTokenTTLSeconds = 3600

type Handlers struct {
	Keys     *keys.Handler
	Messages *messages.Handler
	Orgs     *orgs.Handler
	Beacons  *beacons.Handler
	Caches   *caches.Handler
	Listings *listings.Handler
	Tribes   *tribes.Handler
	Feedback *feedback.Handler
}

type Server struct {
	router  *mux.Router
	cfg     *config.Config
	limiter ratelimit.Limiter
	tokens  *jwt.JWT
}

func NewServer(cfg *config.Config, limiter ratelimit.Limiter, tokens *jwt.JWT, h Handlers) *Server {
	s := &Server{
		router:  mux.NewRouter(),
		cfg:     cfg,
		limiter: limiter,
		tokens:  tokens,
	}
	s.router.Use(Recovery, Logger, Throttle(100))
	s.setupRoutes(h)
	return s
}

func (s *Server) setupRoutes(h Handlers) {
	s.router.HandleFunc("/health", s.healthCheck).Methods(http.MethodGet)

	api := s.router.PathPrefix("/api").Subrouter()

	registerLimit := limitBy(s.limiter, "register", s.cfg.RegisterPerHour, time.Hour, clientIP)
	keyLimit := limitBy(s.limiter, "keys", s.cfg.KeyOpsPerMinute, time.Minute, callerOrIP)
	messageLimit := limitBy(s.limiter, "messages", s.cfg.MessagesPerMinute, time.Minute, callerOrIP)

	// Registration and key distribution.
	api.HandleFunc("/users/", registerLimit(h.Keys.Register)).Methods(http.MethodPost)
	api.HandleFunc("/users/prekeys/", keyLimit(h.Keys.Upload)).Methods(http.MethodPost)
	api.HandleFunc("/users/signedprekey/", keyLimit(h.Keys.Rotate)).Methods(http.MethodPost)
	api.HandleFunc("/users/{user_hash}/prekey/", keyLimit(h.Keys.Bundle)).Methods(http.MethodGet)

	// Message relay.
	api.HandleFunc("/messages/", messageLimit(h.Messages.List)).Methods(http.MethodGet)
	api.HandleFunc("/messages/", messageLimit(h.Messages.Create)).Methods(http.MethodPost)
	api.HandleFunc("/messages/{id}/ack/", messageLimit(h.Messages.Ack)).Methods(http.MethodPost)
	api.HandleFunc("/messages/{id}/", messageLimit(h.Messages.Delete)).Methods(http.MethodDelete)

	// Organization directory.
	api.HandleFunc("/orgs/", h.Orgs.List).Methods(http.MethodGet)
	api.HandleFunc("/orgs/{id}/", h.Orgs.Get).Methods(http.MethodGet)

	// Beacons.
	api.HandleFunc("/beacons/", h.Beacons.List).Methods(http.MethodGet)
	api.HandleFunc("/beacons/", h.Beacons.Create).Methods(http.MethodPost)

	// Caches.
	api.HandleFunc("/caches/", h.Caches.List).Methods(http.MethodGet)
	api.HandleFunc("/caches/", h.Caches.Create).Methods(http.MethodPost)

	// Mutual aid.
	api.HandleFunc("/mutual-aid/", h.Listings.List).Methods(http.MethodGet)
	api.HandleFunc("/mutual-aid/", h.Listings.Create).Methods(http.MethodPost)
	api.HandleFunc("/mutual-aid/{id}/fulfill/", h.Listings.Fulfill).Methods(http.MethodPost)

	// Tribes.
	api.HandleFunc("/tribes/{tribe_id}/posts/", h.Tribes.List).Methods(http.MethodGet)
	api.HandleFunc("/tribes/{tribe_id}/posts/", h.Tribes.Create).Methods(http.MethodPost)
	api.HandleFunc("/posts/{post_id}/delete/", h.Tribes.Delete).Methods(http.MethodDelete)
	api.HandleFunc("/posts/{post_id}/react/", h.Tribes.React).Methods(http.MethodPost)

	// Feedback and admin applications.
	api.HandleFunc("/feedback/", h.Feedback.Submit).Methods(http.MethodPost)
	api.HandleFunc("/community-bridge/", h.Feedback.Bridge).Methods(http.MethodGet)
	api.HandleFunc("/admin-applications/", h.Feedback.Apply).Methods(http.MethodPost)

	api.HandleFunc("/admin/login/", s.adminLogin).Methods(http.MethodPost)
}

func (s *Server) healthCheck(w http.ResponseWriter, _ *http.Request) {
	infrastructure.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// adminLogin exchanges the shared admin key for a short-lived bearer token.
func (s *Server) adminLogin(w http.ResponseWriter, r *http.Request) {
	var req struct {
		AdminKey string `json:"admin_key"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		infrastructure.WriteDetail(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if s.cfg.AdminKey == "" ||
		subtle.ConstantTimeCompare([]byte(req.AdminKey), []byte(s.cfg.AdminKey)) != 1 {
		infrastructure.WriteDetail(w, http.StatusUnauthorized, "invalid admin key")
		return
	}

	token, err := s.tokens.GenerateToken(jwt.RoleAdmin)
	if err != nil {
		infrastructure.WriteError(w, err)
		return
	}
	infrastructure.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"token":      token,
		"expires_in": adminTokenTTLSeconds,
	})
}

func (s *Server) Handler() http.Handler { return s.router }

func (s *Server) Run(addr string) error {
	srv := &http.Server{
		Addr:         addr,
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	return srv.ListenAndServe()
}
