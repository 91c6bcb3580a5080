package session

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"mywallet-api/internal/session/entity"
)

// contextKey is a private type so the session context value cannot collide.
type contextKey struct{}

var sessionKey contextKey

// FromContext returns the session the guard stored for this request, or nil
// for requests that did not pass through the guard.
func FromContext(ctx context.Context) *entity.Session {
	s, _ := ctx.Value(sessionKey).(*entity.Session)
	return s
}

// Guard returns a middleware that resolves the bearer token before the
// request body is touched and rejects unauthenticated requests with 401.
// A missing header, a malformed header and an unknown token are treated
// identically. The resolved session is placed on the request context.
func Guard(svc *SessionService, logger *zap.SugaredLogger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := bearerToken(r)
			if token == "" {
				unauthorized(w)
				return
			}
			sess, err := svc.Resolve(r.Context(), token)
			if err != nil {
				if errors.Is(err, ErrNoSession) {
					unauthorized(w)
					return
				}
				logger.Errorw("session resolution failed", "err", err)
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusInternalServerError)
				_ = json.NewEncoder(w).Encode(map[string]string{"error": "Could not verify your session. Try again later"})
				return
			}
			next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), sessionKey, sess)))
		})
	}
}

func bearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	const prefix = "Bearer "
	if !strings.HasPrefix(header, prefix) {
		return ""
	}
	return strings.TrimSpace(header[len(prefix):])
}

func unauthorized(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": "Invalid Token. Please Login Again"})
}
