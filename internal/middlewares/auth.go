package middlewares

import (
	"context"
	"net/http"

	"github.com/pkruczek/accounts-chat/internal/logger"
	"github.com/pkruczek/accounts-chat/internal/sessions"
)

// SessionLoader defines the minimal session store interface needed by the
// middleware.
type SessionLoader interface {
	Load(ctx context.Context, r *http.Request) (*sessions.Session, error)
}

// sessionContextKey is an unexported type for keys in context
type sessionContextKey struct{}

var sessionKey = sessionContextKey{}

// AuthMiddleware returns a middleware that resolves the session cookie and
// rejects requests whose session is not bound to an account. Unauthenticated
// access is 403, matching the API contract.
func AuthMiddleware(store SessionLoader) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			sess, err := store.Load(ctx, r)
			if err != nil {
				logger.Log.Errorw("failed to load session", "err", err)
				w.WriteHeader(http.StatusInternalServerError)
				return
			}

			if !sess.IsAuthenticated() {
				w.WriteHeader(http.StatusForbidden)
				return
			}

			ctx = setSessionToContext(ctx, sess)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// setSessionToContext stores the session in the context.
func setSessionToContext(ctx context.Context, sess *sessions.Session) context.Context {
	return context.WithValue(ctx, sessionKey, sess)
}

// GetSessionFromContext retrieves the session from the context. Returns nil
// if not present.
func GetSessionFromContext(ctx context.Context) *sessions.Session {
	sess, _ := ctx.Value(sessionKey).(*sessions.Session)
	return sess
}

// GetUserIDFromContext returns the authenticated account id, or false when
// the request carries no authenticated session.
func GetUserIDFromContext(ctx context.Context) (int64, bool) {
	sess := GetSessionFromContext(ctx)
	if sess == nil || !sess.IsAuthenticated() {
		return 0, false
	}
	return sess.UserID, true
}
