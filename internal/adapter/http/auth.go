package http

import (
	"net/http"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/avior/infuser/internal/infrastructure/logger"
)

// HashToken returns the bcrypt hash stored as api_token_hash.
func HashToken(token string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(token), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// TokenMiddleware requires a token matching tokenHash, sent as
// "Authorization: Bearer <token>" or, for browsers opening the status page
// and its event stream, as the token query parameter. An empty tokenHash
// leaves the route open.
func TokenMiddleware(tokenHash string, next http.HandlerFunc) http.HandlerFunc {
	if tokenHash == "" {
		return next
	}
	return func(w http.ResponseWriter, r *http.Request) {
		token, ok := requestToken(r)
		if !ok {
			w.Header().Set("WWW-Authenticate", `Bearer realm="infuser"`)
			writeError(w, http.StatusUnauthorized, "missing token")
			return
		}

		if err := bcrypt.CompareHashAndPassword([]byte(tokenHash), []byte(token)); err != nil {
			logger.Log.Warn().Str("remote", r.RemoteAddr).Msg("rejected api token")
			writeError(w, http.StatusUnauthorized, "invalid token")
			return
		}

		next(w, r)
	}
}

func requestToken(r *http.Request) (string, bool) {
	if token, ok := bearerToken(r); ok {
		return token, true
	}
	token := r.URL.Query().Get("token")
	return token, token != ""
}

func bearerToken(r *http.Request) (string, bool) {
	h := r.Header.Get("Authorization")
	scheme, token, found := strings.Cut(h, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}
