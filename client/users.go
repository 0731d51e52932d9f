package client

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
)

// Register creates a new user account.
func (c *Client) Register(ctx context.Context, u *User) error {
	if u.UserID == "" {
		return errMissingUserID()
	}
	if u.Username == "" {
		return &ValidationError{Field: "username", Msg: "no username provided"}
	}
	return c.do(ctx, http.MethodPost, "/users/register", u, nil)
}

// Login starts a session for the given username and returns the session id
// issued by the server.
func (c *Client) Login(ctx context.Context, username string) (string, error) {
	if username == "" {
		return "", &ValidationError{Field: "username", Msg: "no username provided"}
	}

	// The login response wraps the session id in an envelope.
	var res struct {
		Data struct {
			SessionID string `json:"sessionId"`
		} `json:"data"`
	}
	path := "/users/login?username=" + url.QueryEscape(username)
	if err := c.do(ctx, http.MethodPost, path, nil, &res); err != nil {
		return "", err
	}
	if res.Data.SessionID == "" {
		return "", errors.New("login response carried no session id")
	}
	return res.Data.SessionID, nil
}

// Logout invalidates the server-side session.
func (c *Client) Logout(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return &ValidationError{Field: "sessionId", Msg: "no session id provided"}
	}
	path := "/users/logout?sessionId=" + url.QueryEscape(sessionID)
	return c.do(ctx, http.MethodPost, path, nil, nil)
}

// Me resolves the user that owns the given session.
func (c *Client) Me(ctx context.Context, sessionID string) (*User, error) {
	if sessionID == "" {
		return nil, &ValidationError{Field: "sessionId", Msg: "no session id provided"}
	}
	var res User
	path := "/users/me?sessionId=" + url.QueryEscape(sessionID)
	if err := c.do(ctx, http.MethodGet, path, nil, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

// User fetches a single user by id.
func (c *Client) User(ctx context.Context, id string) (*User, error) {
	if id == "" {
		return nil, errMissingUserID()
	}
	var res User
	path := "/users/" + url.PathEscape(id)
	if err := c.do(ctx, http.MethodGet, path, nil, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

// UsersByStatus lists up to limit users with the given status code.
func (c *Client) UsersByStatus(ctx context.Context, status, limit int) ([]User, error) {
	var res []User
	path := fmt.Sprintf("/users/status/%d?limit=%d", status, limit)
	if err := c.do(ctx, http.MethodGet, path, nil, &res); err != nil {
		return nil, err
	}
	return res, nil
}
