package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/pkruczek/accounts-chat/internal/logger"
	"github.com/pkruczek/accounts-chat/internal/models"
	"github.com/pkruczek/accounts-chat/internal/sessions"
	"github.com/pkruczek/accounts-chat/internal/validation"
)

// SessionStore defines the session persistence interface handlers need.
type SessionStore interface {
	Load(ctx context.Context, r *http.Request) (*sessions.Session, error)
	Save(ctx context.Context, w http.ResponseWriter, sess *sessions.Session) error
	Destroy(ctx context.Context, w http.ResponseWriter, sess *sessions.Session) error
}

// RegistrationBeginner defines the interface that the registration service
// must implement for step 1.
type RegistrationBeginner interface {
	Begin(ctx context.Context, sess *sessions.Session, username, password, email string) error
}

// ErrorResponse represents a generic error response
// swagger:model ErrorResponse
type ErrorResponse struct {
	// Error message
	// example: Internal server error
	Error string `json:"error"`
}

// writeFieldErrors encodes a field-keyed validation error body with the
// given status.
func writeFieldErrors(w http.ResponseWriter, status int, verrs validation.Errors) {
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(verrs)
}

// writeInternalError logs the error and responds with 500.
func writeInternalError(w http.ResponseWriter, err error) {
	logger.Log.Errorw("internal server error", "err", err)
	w.WriteHeader(http.StatusInternalServerError)
	json.NewEncoder(w).Encode(ErrorResponse{
		Error: "Internal server error",
	})
}

// NewRegisterHandler returns an HTTP handler for registration step 1.
// @Summary Begin registration
// @Description Validates signup credentials and parks them in the caller's session. No account is created yet; step 2 completes the flow.
// @Tags accounts
// @Accept json
// @Produce json
// @Param registerRequest body models.RegisterRequest true "Signup credentials"
// @Success 202 "Credentials accepted, session cookie set"
// @Failure 400 {object} validation.Errors "Field-keyed validation errors"
// @Router /accounts/register [post]
func NewRegisterHandler(svc RegistrationBeginner, store SessionStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		var req models.RegisterRequest
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

		if err := svc.Begin(ctx, sess, req.Username, req.Password, req.Email); err != nil {
			var verrs validation.Errors
			if errors.As(err, &verrs) {
				writeFieldErrors(w, http.StatusBadRequest, verrs)
				return
			}
			writeInternalError(w, err)
			return
		}

		if err := store.Save(ctx, w, sess); err != nil {
			writeInternalError(w, err)
			return
		}

		w.WriteHeader(http.StatusAccepted)
	}
}
