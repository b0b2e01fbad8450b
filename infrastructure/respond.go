package infrastructure

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog/log"
)

// CallerHash returns the caller identity carried out-of-band in the
// X-User-Hash header. The value is a claim, not a verified credential;
// endpoints that mutate key material verify a signature on top of it.
func CallerHash(r *http.Request) string {
	return r.Header.Get("X-User-Hash")
}

func WriteJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Warn().Err(err).Msg("failed to encode response")
	}
}

func WriteDetail(w http.ResponseWriter, status int, detail string) {
	WriteJSON(w, status, map[string]string{"detail": detail})
}

// WriteError maps the shared error values onto HTTP statuses. Anything
// unrecognized is treated as an internal error and not leaked to the caller.
func WriteError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrInvalidInput), errors.Is(err, ErrRequestExpired):
		WriteDetail(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, ErrUnauthorized), errors.Is(err, ErrSignatureInvalid):
		WriteDetail(w, http.StatusUnauthorized, err.Error())
	case errors.Is(err, ErrForbidden):
		WriteDetail(w, http.StatusForbidden, err.Error())
	case errors.Is(err, ErrUserNotFound), errors.Is(err, ErrNotFound), errors.Is(err, ErrSignedPreKeyMissing):
		WriteDetail(w, http.StatusNotFound, err.Error())
	case errors.Is(err, ErrUserAlreadyExists):
		WriteDetail(w, http.StatusConflict, err.Error())
	default:
		log.Error().Err(err).Msg("request failed")
		WriteDetail(w, http.StatusInternalServerError, ErrInternalServer.Error())
	}
}
