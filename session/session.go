// Package session tracks the console's logged-in user. The session and user
// ids are persisted in a JSON file so that a restart can restore and
// re-validate the previous session instead of starting anonymous.
package session

import (
	"context"
	"fmt"
	"sync"

	"github.com/decred/slog"

	"github.com/salesdesk/salesdesk/client"
	"github.com/salesdesk/salesdesk/internal/jsonfile"
)

// State is the lifecycle state of the store.
type State int

const (
	// StateAnonymous means no session is active.
	StateAnonymous State = iota

	// StatePendingValidation means a persisted session was restored but
	// not yet confirmed with the backend.
	StatePendingValidation

	// StateLoggingIn means a login call is in flight.
	StateLoggingIn

	// StateAuthenticated means the session was confirmed and the user
	// is cached.
	StateAuthenticated
)

func (s State) String() string {
	switch s {
	case StateAnonymous:
		return "anonymous"
	case StatePendingValidation:
		return "pending validation"
	case StateLoggingIn:
		return "logging in"
	case StateAuthenticated:
		return "authenticated"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// persisted is the on-disk form of the store.
type persisted struct {
	SessionID string `json:"sessionId"`
	UserID    string `json:"userId"`
}

// Store is the process-wide session holder. It is safe for use from multiple
// goroutines; in practice the UI loop and its command goroutines.
type Store struct {
	path string
	log  slog.Logger

	mtx       sync.Mutex
	state     State
	sessionID string
	userID    string
	user      *client.User
}

// NewStore creates a store persisting to path.
func NewStore(path string, log slog.Logger) *Store {
	if log == nil {
		log = slog.Disabled
	}
	return &Store{path: path, log: log, state: StateAnonymous}
}

// Load restores a previously persisted session. A missing file leaves the
// store anonymous. The restored session is not trusted until Validate
// confirms it.
func (s *Store) Load() error {
	var p persisted
	err := jsonfile.Read(s.path, &p)
	if err == jsonfile.ErrNotFound {
		return nil
	}
	if err != nil {
		return fmt.Errorf("unable to read session file: %w", err)
	}

	s.mtx.Lock()
	defer s.mtx.Unlock()
	s.sessionID = p.SessionID
	s.userID = p.UserID
	if s.sessionID != "" {
		s.state = StatePendingValidation
	}
	return nil
}

// Validate confirms a restored session with the backend. On failure the
// stored session is discarded and the store reverts to anonymous.
func (s *Store) Validate(ctx context.Context, c *client.Client) (*client.User, error) {
	s.mtx.Lock()
	sessID := s.sessionID
	s.mtx.Unlock()
	if sessID == "" {
		return nil, nil
	}

	u, err := c.Me(ctx, sessID)
	if err != nil {
		s.log.Warnf("Stored session rejected by server: %v", err)
		s.clear()
		return nil, err
	}

	s.mtx.Lock()
	s.userID = u.UserID
	s.user = u
	s.state = StateAuthenticated
	s.mtx.Unlock()
	s.persist()
	s.log.Infof("Restored session for user %s", u.UserID)
	return u, nil
}

// Login starts a new session for username and caches the resolved user. Any
// failure leaves the store anonymous.
func (s *Store) Login(ctx context.Context, c *client.Client, username string) (*client.User, error) {
	s.mtx.Lock()
	s.state = StateLoggingIn
	s.mtx.Unlock()

	sessID, err := c.Login(ctx, username)
	if err != nil {
		s.clear()
		return nil, err
	}

	u, err := c.Me(ctx, sessID)
	if err != nil {
		s.clear()
		return nil, fmt.Errorf("session issued but user lookup failed: %w", err)
	}

	s.mtx.Lock()
	s.sessionID = sessID
	s.userID = u.UserID
	s.user = u
	s.state = StateAuthenticated
	s.mtx.Unlock()
	s.persist()
	s.log.Infof("Logged in as %s (session %s)", u.UserID, sessID)
	return u, nil
}

// Logout invalidates the server-side session and clears the local state.
// Local state is cleared even when the server call fails; the error is still
// returned so the failure can be surfaced.
func (s *Store) Logout(ctx context.Context, c *client.Client) error {
	s.mtx.Lock()
	sessID := s.sessionID
	s.mtx.Unlock()

	var err error
	if sessID != "" {
		err = c.Logout(ctx, sessID)
	}
	s.clear()
	return err
}

// clear reverts to anonymous and removes the persisted session.
func (s *Store) clear() {
	s.mtx.Lock()
	s.sessionID = ""
	s.userID = ""
	s.user = nil
	s.state = StateAnonymous
	s.mtx.Unlock()

	if err := jsonfile.RemoveIfExists(s.path); err != nil {
		s.log.Warnf("Unable to remove session file: %v", err)
	}
}

func (s *Store) persist() {
	s.mtx.Lock()
	p := persisted{SessionID: s.sessionID, UserID: s.userID}
	s.mtx.Unlock()

	if err := jsonfile.Write(s.path, &p, s.log); err != nil {
		s.log.Warnf("Unable to persist session: %v", err)
	}
}

// State returns the current lifecycle state.
func (s *Store) State() State {
	s.mtx.Lock()
	defer s.mtx.Unlock()
	return s.state
}

// Authenticated returns true when a validated session is active.
func (s *Store) Authenticated() bool {
	return s.State() == StateAuthenticated
}

// SessionID returns the active session id or "".
func (s *Store) SessionID() string {
	s.mtx.Lock()
	defer s.mtx.Unlock()
	return s.sessionID
}

// UserID returns the active user id or "".
func (s *Store) UserID() string {
	s.mtx.Lock()
	defer s.mtx.Unlock()
	return s.userID
}

// User returns the cached user or nil.
func (s *Store) User() *client.User {
	s.mtx.Lock()
	defer s.mtx.Unlock()
	return s.user
}
