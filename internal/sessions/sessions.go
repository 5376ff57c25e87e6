package sessions

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/pkruczek/accounts-chat/internal/logger"
)

// CookieName is the name of the session cookie.
const CookieName = "sessionid"

// State identifies what a session currently holds.
type State string

const (
	// StateEmpty is a fresh session with nothing attached.
	StateEmpty State = "empty"
	// StatePending holds unconfirmed registration credentials between
	// step 1 and step 2.
	StatePending State = "pending"
	// StateAuthenticated is bound to an account id after login.
	StateAuthenticated State = "authenticated"
)

// PendingRegistration is the transient record of a step-1 signup awaiting
// profile completion. The plaintext password lives only here, only until
// step 2 consumes it.
type PendingRegistration struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Email    string `json:"email"`
}

// Session is the explicit per-client state passed into the registration and
// auth services. Exactly one of Pending/UserID is meaningful, selected by
// State.
type Session struct {
	ID      string               `json:"id"`
	State   State                `json:"state"`
	Pending *PendingRegistration `json:"pending,omitempty"`
	UserID  int64                `json:"user_id,omitempty"`
}

// New returns a fresh empty session with a random id.
func New() *Session {
	return &Session{
		ID:    uuid.NewString(),
		State: StateEmpty,
	}
}

// SetPending attaches step-1 credentials, replacing any previous state.
func (s *Session) SetPending(p PendingRegistration) {
	s.Pending = &p
	s.UserID = 0
	s.State = StatePending
}

// ClearPending drops the pending registration after step 2 consumed it.
func (s *Session) ClearPending() {
	s.Pending = nil
	if s.State == StatePending {
		s.State = StateEmpty
	}
}

// Authenticate binds the session to an account id.
func (s *Session) Authenticate(userID int64) {
	s.UserID = userID
	s.Pending = nil
	s.State = StateAuthenticated
}

// IsPending reports whether step-1 credentials are waiting for step 2.
func (s *Session) IsPending() bool {
	return s.State == StatePending && s.Pending != nil
}

// IsAuthenticated reports whether the session is bound to an account.
func (s *Session) IsAuthenticated() bool {
	return s.State == StateAuthenticated && s.UserID != 0
}

// TokenCodec signs session ids into cookie values and back.
type TokenCodec interface {
	Generate(ctx context.Context, sessionID string) (string, error)
	GetSessionID(ctx context.Context, tokenString string) (string, error)
}

// KV is the subset of redis client commands the store needs.
type KV interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
}

// Store persists sessions in redis, keyed "session:<id>" with a TTL, and
// manages the signed session cookie on HTTP responses. Missing or garbage
// cookies resolve to a fresh empty session, never an error.
type Store struct {
	rdb    KV
	tokens TokenCodec
	ttl    time.Duration
}

// NewStore creates a session store.
func NewStore(rdb KV, tokens TokenCodec, ttl time.Duration) *Store {
	return &Store{
		rdb:    rdb,
		tokens: tokens,
		ttl:    ttl,
	}
}

func sessionKey(id string) string {
	return "session:" + id
}

// Load resolves the request's session cookie to a session. Only redis
// infrastructure failures are returned as errors.
func (st *Store) Load(ctx context.Context, r *http.Request) (*Session, error) {
	cookie, err := r.Cookie(CookieName)
	if err != nil || cookie.Value == "" {
		return New(), nil
	}

	sid, err := st.tokens.GetSessionID(ctx, cookie.Value)
	if err != nil {
		logger.Log.Infow("discarding unverifiable session cookie", "err", err)
		return New(), nil
	}

	data, err := st.rdb.Get(ctx, sessionKey(sid)).Bytes()
	if errors.Is(err, redis.Nil) {
		return New(), nil
	}
	if err != nil {
		logger.Log.Errorw("failed to load session", "session_id", sid, "err", err)
		return nil, err
	}

	var sess Session
	if err := json.Unmarshal(data, &sess); err != nil {
		logger.Log.Errorw("discarding corrupt session record", "session_id", sid, "err", err)
		return New(), nil
	}
	return &sess, nil
}

// Save writes the session to redis and sets the signed cookie on the
// response. Must be called before the response status is written.
func (st *Store) Save(ctx context.Context, w http.ResponseWriter, sess *Session) error {
	data, err := json.Marshal(sess)
	if err != nil {
		return err
	}

	if err := st.rdb.Set(ctx, sessionKey(sess.ID), data, st.ttl).Err(); err != nil {
		logger.Log.Errorw("failed to save session", "session_id", sess.ID, "err", err)
		return err
	}

	token, err := st.tokens.Generate(ctx, sess.ID)
	if err != nil {
		return err
	}

	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		MaxAge:   int(st.ttl / time.Second),
	})
	return nil
}

// Destroy deletes the session record and expires the cookie. The session
// value is reset to empty so callers cannot reuse stale state.
func (st *Store) Destroy(ctx context.Context, w http.ResponseWriter, sess *Session) error {
	if err := st.rdb.Del(ctx, sessionKey(sess.ID)).Err(); err != nil {
		logger.Log.Errorw("failed to delete session", "session_id", sess.ID, "err", err)
		return err
	}

	sess.Pending = nil
	sess.UserID = 0
	sess.State = StateEmpty

	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		MaxAge:   -1,
	})
	return nil
}
