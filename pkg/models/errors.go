package models

import (
	"errors"
	"fmt"
)

// ErrInvalidSeason is returned for seasons not in "YYYY-YY" form
var ErrInvalidSeason = errors.New("invalid season")

// ResolutionError means a player name matched no upstream record
type ResolutionError struct {
	Provider string
	Player   string
}

func (e *ResolutionError) Error() string {
	return fmt.Sprintf("%s: no player found with name %q", e.Provider, e.Player)
}

// FetchError means an upstream call failed at the transport level or
// returned a non-success status
type FetchError struct {
	Provider   string
	Call       string // "resolve", "shots"
	StatusCode int    // 0 on transport errors
	Body       string
	Err        error
}

func (e *FetchError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s %s: upstream status=%d, body=%s", e.Provider, e.Call, e.StatusCode, e.Body)
	}
	return fmt.Sprintf("%s %s: %v", e.Provider, e.Call, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// ErrorKind names the failure class of err for display and metrics
func ErrorKind(err error) string {
	var resErr *ResolutionError
	var fetchErr *FetchError
	switch {
	case err == nil:
		return ""
	case errors.As(err, &resErr):
		return "resolution_failure"
	case errors.As(err, &fetchErr):
		return "fetch_failure"
	default:
		return "error"
	}
}

// ErrorResponse is the JSON body of an API error
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Code    int    `json:"code"`
	Kind    string `json:"kind,omitempty"`
}
