package httpapi

import (
	"context"
	"net/http"
	"time"

	"github.com/Mbarca89/vete-front-v2/internal/backend"
	"github.com/google/uuid"
)

const sessionCookie = "vdp_session"

type contextKey string

const sessionIDKey contextKey = "session_id"

// SessionMiddleware gives every visitor a stable session ID via cookie. The
// cart and any stored token are keyed by it. Only values we minted (valid
// UUIDs) are accepted back; anything else gets a fresh ID, so arbitrary
// client-chosen strings never become KV keys.
func SessionMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var sessionID string
		if c, err := r.Cookie(sessionCookie); err == nil {
			if _, parseErr := uuid.Parse(c.Value); parseErr == nil {
				sessionID = c.Value
			}
		}
		if sessionID == "" {
			sessionID = uuid.NewString()
			http.SetCookie(w, &http.Cookie{
				Name:     sessionCookie,
				Value:    sessionID,
				Path:     "/",
				Expires:  time.Now().Add(30 * 24 * time.Hour),
				HttpOnly: true,
				SameSite: http.SameSiteLaxMode,
			})
		}

		ctx := context.WithValue(r.Context(), sessionIDKey, sessionID)
		ctx = backend.WithSession(ctx, sessionID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func sessionIDFromContext(ctx context.Context) string {
	if id, ok := ctx.Value(sessionIDKey).(string); ok {
		return id
	}
	return ""
}
