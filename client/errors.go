package client

import "fmt"

// maxErrBody limits how much of a response body is carried inside errors
// returned by the client.
const maxErrBody = 300

// HTTPError is returned when the backend answers with a non-2xx status. It
// carries the numeric status and a truncated snippet of the response body for
// diagnostics.
type HTTPError struct {
	Status int
	Body   string
}

func (err *HTTPError) Error() string {
	return fmt.Sprintf("HTTP %d: %s", err.Status, err.Body)
}

// DecodeError is returned when a response that declares a JSON content type
// cannot be decoded. Raw holds a truncated copy of the offending payload.
type DecodeError struct {
	Raw string
	Err error
}

func (err *DecodeError) Error() string {
	return fmt.Sprintf("unable to decode response %q: %v", err.Raw, err.Err)
}

func (err *DecodeError) Unwrap() error {
	return err.Err
}

// ValidationError is returned when a request is rejected locally, before any
// network call is made (missing user id, quantity below one and so on).
type ValidationError struct {
	Field string
	Msg   string
}

func (err *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", err.Field, err.Msg)
}

// errMissingUserID is the validation error for calls that need a user id.
func errMissingUserID() error {
	return &ValidationError{Field: "userId", Msg: "no user id provided"}
}

// limitStr truncates s to at most maxLen bytes.
func limitStr(s string, maxLen int) string {
	if maxLen >= 0 && len(s) > maxLen {
		return s[:maxLen]
	}
	return s
}
