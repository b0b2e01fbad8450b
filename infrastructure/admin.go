package infrastructure

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"prism/pkg/jwt"
)

// AdminAuthorized accepts either the shared X-Admin-Key header or a
// bearer token carrying the admin role.
func AdminAuthorized(r *http.Request, adminKey string, tokens *jwt.JWT) bool {
	if key := r.Header.Get("X-Admin-Key"); key != "" && adminKey != "" {
		if subtle.ConstantTimeCompare([]byte(key), []byte(adminKey)) == 1 {
			return true
		}
	}

	auth := r.Header.Get("Authorization")
	if tokens != nil && strings.HasPrefix(auth, "Bearer ") {
		claims, err := tokens.ValidateToken(strings.TrimPrefix(auth, "Bearer "))
		return err == nil && claims.Role == jwt.RoleAdmin
	}
	return false
}
