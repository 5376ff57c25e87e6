package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/pkruczek/accounts-chat/internal/models"
	"github.com/pkruczek/accounts-chat/internal/services"
	"github.com/pkruczek/accounts-chat/internal/sessions"
)

// Loginer defines the interface that the auth service must implement.
type Loginer interface {
	Login(ctx context.Context, sess *sessions.Session, username, password string) error
}

// NewLoginHandler returns an HTTP handler for user login.
// @Summary User login
// @Description Verifies credentials and binds the caller's session to the account. Every failure mode returns the same empty 401.
// @Tags accounts
// @Accept json
// @Success 200 "Logged in, session cookie set"
// @Failure 401 "Invalid credentials"
// @Router /accounts/login [post]
func NewLoginHandler(svc Loginer, store SessionStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		var req models.LoginRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}

		sess, err := store.Load(ctx, r)
		if err != nil {
			writeInternalError(w, err)
			return
		}

		if err := svc.Login(ctx, sess, req.Username, req.Password); err != nil {
			if errors.Is(err, services.ErrInvalidCredentials) {
				w.WriteHeader(http.StatusUnauthorized)
				return
			}
			writeInternalError(w, err)
			return
		}

		if err := store.Save(ctx, w, sess); err != nil {
			writeInternalError(w, err)
			return
		}

		w.WriteHeader(http.StatusOK)
	}
}
