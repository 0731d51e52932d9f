package session

import (
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/salesdesk/salesdesk/client"
	"github.com/salesdesk/salesdesk/internal/assert"
	"github.com/salesdesk/salesdesk/internal/jsonfile"
)

// newTestBackend creates a fake backend that accepts logins for "alice" and
// validates the session id it issued.
func newTestBackend(t *testing.T) (*client.Client, *string) {
	t.Helper()
	var issued string
	mux := http.NewServeMux()
	mux.HandleFunc("POST /users/login", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("username") != "alice" {
			http.Error(w, "no such user", http.StatusNotFound)
			return
		}
		issued = "sess-test"
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"data":{"sessionId":"sess-test"}}`))
	})
	mux.HandleFunc("GET /users/me", func(w http.ResponseWriter, r *http.Request) {
		if issued == "" || r.URL.Query().Get("sessionId") != issued {
			http.Error(w, "invalid session", http.StatusUnauthorized)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"userId":"u1","username":"alice","status":1}`))
	})
	mux.HandleFunc("POST /users/logout", func(w http.ResponseWriter, r *http.Request) {
		issued = ""
		w.WriteHeader(http.StatusOK)
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	c, err := client.New(client.Config{BaseURL: srv.URL})
	assert.NilErr(t, err)
	return c, &issued
}

func TestLoadMissingFileIsAnonymous(t *testing.T) {
	s := NewStore(filepath.Join(t.TempDir(), "session.json"), nil)
	assert.NilErr(t, s.Load())
	assert.DeepEqual(t, s.State(), StateAnonymous)
}

func TestLoginLogoutLifecycle(t *testing.T) {
	c, _ := newTestBackend(t)
	path := filepath.Join(t.TempDir(), "session.json")
	s := NewStore(path, nil)
	ctx := context.Background()

	u, err := s.Login(ctx, c, "alice")
	assert.NilErr(t, err)
	assert.DeepEqual(t, u.UserID, "u1")
	assert.DeepEqual(t, s.State(), StateAuthenticated)
	assert.DeepEqual(t, s.SessionID(), "sess-test")
	assert.BoolIs(t, jsonfile.Exists(path), true)

	assert.NilErr(t, s.Logout(ctx, c))
	assert.DeepEqual(t, s.State(), StateAnonymous)
	assert.DeepEqual(t, s.SessionID(), "")
	assert.BoolIs(t, jsonfile.Exists(path), false)
}

func TestLoginFailureStaysAnonymous(t *testing.T) {
	c, _ := newTestBackend(t)
	s := NewStore(filepath.Join(t.TempDir(), "session.json"), nil)

	_, err := s.Login(context.Background(), c, "mallory")
	assert.NonNilErr(t, err)
	assert.DeepEqual(t, s.State(), StateAnonymous)
}

func TestRestoreAndValidate(t *testing.T) {
	c, issued := newTestBackend(t)
	path := filepath.Join(t.TempDir(), "session.json")
	ctx := context.Background()

	// First run: log in so the session is persisted.
	first := NewStore(path, nil)
	_, err := first.Login(ctx, c, "alice")
	assert.NilErr(t, err)

	// Second run: restore and validate.
	s := NewStore(path, nil)
	assert.NilErr(t, s.Load())
	assert.DeepEqual(t, s.State(), StatePendingValidation)

	u, err := s.Validate(ctx, c)
	assert.NilErr(t, err)
	assert.DeepEqual(t, u.UserID, "u1")
	assert.DeepEqual(t, s.State(), StateAuthenticated)

	// Third run: server no longer recognizes the session. The store must
	// discard it, including the persisted copy.
	*issued = ""
	stale := NewStore(path, nil)
	assert.NilErr(t, stale.Load())
	_, err = stale.Validate(ctx, c)
	assert.NonNilErr(t, err)
	assert.DeepEqual(t, stale.State(), StateAnonymous)
	assert.BoolIs(t, jsonfile.Exists(path), false)
}
