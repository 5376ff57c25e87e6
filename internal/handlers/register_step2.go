package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/pkruczek/accounts-chat/internal/models"
	"github.com/pkruczek/accounts-chat/internal/services"
	"github.com/pkruczek/accounts-chat/internal/sessions"
	"github.com/pkruczek/accounts-chat/internal/validation"
)

// RegistrationCompleter defines the interface that the registration service
// must implement for step 2.
type RegistrationCompleter interface {
	Complete(ctx context.Context, sess *sessions.Session, req models.ProfileRequest) (*models.AccountView, error)
}

// NewRegisterStep2Handler returns an HTTP handler for registration step 2.
// @Summary Complete registration
// @Description Creates the account and profile from the pending registration in the caller's session. A username conflict destroys the session; the client must restart from step 1.
// @Tags accounts
// @Accept json
// @Produce json
// @Param profileRequest body models.ProfileRequest true "Profile fields"
// @Success 200 {object} models.AccountView "Created account with nested profile"
// @Failure 400 {object} validation.Errors "Field-keyed validation errors or username conflict"
// @Failure 403 "No pending registration in session"
// @Router /accounts/register/step/2 [post]
func NewRegisterStep2Handler(svc RegistrationCompleter, store SessionStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		var req models.ProfileRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeFieldErrors(w, http.StatusBadRequest, validation.Errors{
				"non_field_errors": {validation.MsgInvalid},
			})
			return
		}

		sess, err := store.Load(ctx, r)
		if err != nil {
			writeInternalError(w, err)
			return
		}

		view, err := svc.Complete(ctx, sess, req)
		if err != nil {
			var verrs validation.Errors
			switch {
			case errors.Is(err, services.ErrNoPendingRegistration):
				w.WriteHeader(http.StatusForbidden)
			case errors.Is(err, services.ErrUsernameConflict):
				if derr := store.Destroy(ctx, w, sess); derr != nil {
					writeInternalError(w, derr)
					return
				}
				writeFieldErrors(w, http.StatusBadRequest, validation.Errors{
					"username": {validation.MsgUnique},
				})
			case errors.As(err, &verrs):
				// Pending registration stays in place for a corrected retry.
				writeFieldErrors(w, http.StatusBadRequest, verrs)
			default:
				writeInternalError(w, err)
			}
			return
		}

		if err := store.Save(ctx, w, sess); err != nil {
			writeInternalError(w, err)
			return
		}

		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(view)
	}
}
