package handlers

import (
	"net/http"

	"github.com/pkruczek/accounts-chat/internal/middlewares"
)

// NewLogoutHandler returns an HTTP handler that destroys the caller's
// session.
// @Summary User logout
// @Description Deletes the session record and expires the session cookie.
// @Tags accounts
// @Success 204 "Session destroyed"
// @Failure 403 "Not authenticated"
// @Router /accounts/logout [post]
func NewLogoutHandler(store SessionStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		sess := middlewares.GetSessionFromContext(ctx)
		if sess == nil {
			w.WriteHeader(http.StatusForbidden)
			return
		}

		if err := store.Destroy(ctx, w, sess); err != nil {
			writeInternalError(w, err)
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}
