package services

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"golang.org/x/crypto/bcrypt"

	"github.com/pkruczek/accounts-chat/internal/logger"
	"github.com/pkruczek/accounts-chat/internal/models"
	"github.com/pkruczek/accounts-chat/internal/sessions"
	"github.com/pkruczek/accounts-chat/internal/validation"
)

// Error variables
var (
	// ErrNoPendingRegistration means step 2 was called without step 1.
	ErrNoPendingRegistration = errors.New("no pending registration in session")
	// ErrUsernameConflict means another registration for the same username
	// completed between step 1 and step 2. The caller's session is dead;
	// the whole flow must be restarted.
	ErrUsernameConflict = errors.New("username already exists")
)

const birthDateLayout = "2006-01-02"

// pg error code for unique_violation
const pgUniqueViolation = "23505"

// UserReader defines read-only operations for accounts.
type UserReader interface {
	GetByUsername(ctx context.Context, username string) (*models.UserDB, error)
}

// UserWriter defines account creation.
type UserWriter interface {
	Save(ctx context.Context, username, passwordHash, email string) (int64, error)
}

// ProfileWriter defines profile creation.
type ProfileWriter interface {
	Save(ctx context.Context, profile models.ProfileDB) error
}

// RegistrationService drives the two-step signup flow. Step 1 parks
// credentials in the caller's session; step 2 turns them into a durable
// account plus profile. The account INSERT's unique constraint, not the
// step-1 check, decides which registration wins a race.
type RegistrationService struct {
	reader        UserReader
	userWriter    UserWriter
	profileWriter ProfileWriter
}

// NewRegistrationService creates a new RegistrationService instance.
func NewRegistrationService(reader UserReader, userWriter UserWriter, profileWriter ProfileWriter) *RegistrationService {
	return &RegistrationService{
		reader:        reader,
		userWriter:    userWriter,
		profileWriter: profileWriter,
	}
}

// Begin validates step-1 credentials and parks them in the session. The
// uniqueness check here is advisory only; no account is created and the
// username is not reserved.
func (svc *RegistrationService) Begin(ctx context.Context, sess *sessions.Session, username, password, email string) error {
	verrs := validation.Errors{}
	if username == "" {
		verrs.Add("username", validation.MsgRequired)
	}
	if password == "" {
		verrs.Add("password", validation.MsgRequired)
	}
	if len(verrs) > 0 {
		return verrs
	}

	user, err := svc.reader.GetByUsername(ctx, username)
	if err != nil {
		logger.Log.Errorw("failed to check username", "err", err)
		return err
	}
	if user != nil {
		return validation.Errors{"username": {validation.MsgUnique}}
	}

	sess.SetPending(sessions.PendingRegistration{
		Username: username,
		Password: password,
		Email:    email,
	})
	return nil
}

// Complete consumes the pending registration: hashes the parked password,
// creates the account and profile, and clears the pending state. Validation
// failures leave the pending registration in place for a retry; a username
// conflict returns ErrUsernameConflict and the caller must tear the session
// down.
func (svc *RegistrationService) Complete(ctx context.Context, sess *sessions.Session, req models.ProfileRequest) (*models.AccountView, error) {
	if !sess.IsPending() {
		return nil, ErrNoPendingRegistration
	}

	verrs := validation.Errors{}
	var birthDate time.Time
	if req.BirthDate == "" {
		verrs.Add("birth_date", validation.MsgRequired)
	} else {
		var err error
		birthDate, err = time.Parse(birthDateLayout, req.BirthDate)
		if err != nil {
			verrs.Add("birth_date", validation.MsgDateFormat)
		}
	}
	if req.Country == "" {
		verrs.Add("country", validation.MsgRequired)
	}
	if req.City == "" {
		verrs.Add("city", validation.MsgRequired)
	}
	if req.PostCode == "" {
		verrs.Add("post_code", validation.MsgRequired)
	}
	if req.TelephoneNumber == "" {
		verrs.Add("telephone_number", validation.MsgRequired)
	}
	if len(verrs) > 0 {
		return nil, verrs
	}

	pending := sess.Pending

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(pending.Password), bcrypt.DefaultCost)
	if err != nil {
		logger.Log.Errorw("failed to hash password", "err", err)
		return nil, err
	}

	userID, err := svc.userWriter.Save(ctx, pending.Username, string(hashedPassword), pending.Email)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			logger.Log.Infow("username registered meantime", "username", pending.Username)
			return nil, ErrUsernameConflict
		}
		logger.Log.Errorw("failed to save user", "err", err)
		return nil, err
	}

	profile := models.ProfileDB{
		UserID:          userID,
		BirthDate:       birthDate,
		Country:         req.Country,
		City:            req.City,
		PostCode:        req.PostCode,
		TelephoneNumber: req.TelephoneNumber,
	}
	if err := svc.profileWriter.Save(ctx, profile); err != nil {
		logger.Log.Errorw("failed to save profile", "err", err)
		return nil, err
	}

	view := &models.AccountView{
		ID:       userID,
		Username: pending.Username,
		Email:    pending.Email,
		UserProfile: models.ProfileView{
			BirthDate:       req.BirthDate,
			Country:         req.Country,
			City:            req.City,
			PostCode:        req.PostCode,
			TelephoneNumber: req.TelephoneNumber,
		},
	}

	sess.ClearPending()
	return view, nil
}
