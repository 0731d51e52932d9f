package main

import (
	"encoding/json"
	"net/http"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/salesdesk/salesdesk/client"
)

func TestRegisterFormSendsUserID(t *testing.T) {
	var got client.User
	mux := http.NewServeMux()
	mux.HandleFunc("POST /users/register", func(w http.ResponseWriter, r *http.Request) {
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("unable to decode body: %v", err)
		}
	})
	as, calls := newTestAppState(t, mux)

	model, _ := newRegisterFormWindow(as)
	rfw := model.(registerFormWindow)
	rfw.userID.SetValue("u9")
	rfw.username.SetValue("alice")

	cmd, ok := rfw.submit()
	if !ok {
		t.Fatalf("submit rejected the form: %q", lastToastText(as))
	}
	done, ok := cmd().(msgActionDone)
	if !ok {
		t.Fatal("submit cmd did not produce an action result")
	}
	if done.err != nil {
		t.Fatal(done.err)
	}
	if n := atomic.LoadInt32(calls); n != 1 {
		t.Fatalf("backend was called %d times", n)
	}
	if got.UserID != "u9" || got.Username != "alice" {
		t.Fatalf("unexpected registered user: %+v", got)
	}
	if got.Status != client.UserActive {
		t.Fatalf("unexpected status: %d", got.Status)
	}
}

func TestRegisterFormRequiresUserID(t *testing.T) {
	as, calls := newTestAppState(t, nil)

	model, _ := newRegisterFormWindow(as)
	rfw := model.(registerFormWindow)
	rfw.username.SetValue("alice")

	cmd, ok := rfw.submit()
	if ok {
		t.Fatal("submit accepted a form without a user id")
	}
	if cmd == nil {
		t.Fatal("expected a toast cmd")
	}
	if got := lastToastText(as); !strings.Contains(got, "User id") {
		t.Fatalf("unexpected toast: %q", got)
	}
	if n := atomic.LoadInt32(calls); n != 0 {
		t.Fatalf("backend was called %d times", n)
	}
}
