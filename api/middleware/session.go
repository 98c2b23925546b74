package middleware

import (
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/jerseystore/jerseystore-backend/pkg/logger"
)

// Session assigns each storefront visitor a session cookie. The session id
// keys the visitor's persisted cart and recently-viewed list; there are no
// accounts, so the cookie is the whole identity model.
func Session(cookieName string, ttl time.Duration, logg *logger.Logger) func(http.Handler) http.Handler {
	if cookieName == "" {
		cookieName = "js_session"
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sessionID := ""
			if cookie, err := r.Cookie(cookieName); err == nil && cookie.Value != "" {
				if _, err := uuid.Parse(cookie.Value); err == nil {
					sessionID = cookie.Value
				}
			}

			if sessionID == "" {
				sessionID = uuid.NewString()
				http.SetCookie(w, &http.Cookie{
					Name:     cookieName,
					Value:    sessionID,
					Path:     "/",
					MaxAge:   int(ttl / time.Second),
					HttpOnly: true,
					SameSite: http.SameSiteLaxMode,
				})
			}

			ctx := WithSessionID(r.Context(), sessionID)
			if logg != nil {
				ctx = logg.WithSessionID(ctx, sessionID)
			}

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
