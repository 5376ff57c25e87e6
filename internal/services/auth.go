package services

import (
	"context"
	"errors"

	"golang.org/x/crypto/bcrypt"

	"github.com/pkruczek/accounts-chat/internal/logger"
	"github.com/pkruczek/accounts-chat/internal/sessions"
)

// ErrInvalidCredentials covers every login failure: unknown username, wrong
// password, missing fields. Callers must not be able to tell them apart.
var ErrInvalidCredentials = errors.New("invalid username or password")

// dummyHash is compared against when the username does not exist, so a
// failed lookup costs the same as a failed password check.
var dummyHash = []byte("$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy")

// AuthService handles session login.
type AuthService struct {
	reader UserReader
}

// NewAuthService creates a new AuthService instance.
func NewAuthService(reader UserReader) *AuthService {
	return &AuthService{reader: reader}
}

// Login verifies the credentials and, on success, binds the session to the
// account. On failure the session is left untouched.
func (svc *AuthService) Login(ctx context.Context, sess *sessions.Session, username, password string) error {
	if username == "" || password == "" {
		return ErrInvalidCredentials
	}

	user, err := svc.reader.GetByUsername(ctx, username)
	if err != nil {
		logger.Log.Errorw("failed to get user", "err", err)
		return err
	}
	if user == nil {
		bcrypt.CompareHashAndPassword(dummyHash, []byte(password))
		return ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		logger.Log.Infow("invalid credentials", "username", username)
		return ErrInvalidCredentials
	}

	sess.Authenticate(user.UserID)
	return nil
}
