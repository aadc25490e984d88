package remote

import (
	"errors"
	"fmt"
	"net/http"
)

// StatusConnectivity is the status reported when no response reached the client.
const StatusConnectivity = 0

// Error is the failure returned by every Resource call.
// Status is the HTTP status, or StatusConnectivity when the request never got an answer.
// Message is the server-provided message and may be empty.
type Error struct {
	Status  int
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Status == StatusConnectivity {
		if e.Err != nil {
			return fmt.Sprintf("remote: connectivity failure: %v", e.Err)
		}
		return "remote: connectivity failure"
	}
	if e.Message != "" {
		return fmt.Sprintf("remote: status %d: %s", e.Status, e.Message)
	}
	return fmt.Sprintf("remote: status %d", e.Status)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Connectivity reports whether the failure happened before any server response.
func (e *Error) Connectivity() bool {
	return e.Status == StatusConnectivity
}

// AsError extracts a *Error from err.
func AsError(err error) (*Error, bool) {
	var re *Error
	if errors.As(err, &re) {
		return re, true
	}
	return nil, false
}

// StatusOf returns the status carried by err, if err is a remote failure.
func StatusOf(err error) (int, bool) {
	re, ok := AsError(err)
	if !ok {
		return 0, false
	}
	return re.Status, true
}

// IsNotFound reports whether err is a 404 from the server.
func IsNotFound(err error) bool {
	status, ok := StatusOf(err)
	return ok && status == http.StatusNotFound
}

// IsConnectivity reports whether err is a connectivity failure.
func IsConnectivity(err error) bool {
	re, ok := AsError(err)
	return ok && re.Connectivity()
}
