package api

import (
	"errors"
	"fmt"
)

// ErrAuthMissing means no usable token was available at call time. The
// operation is skipped rather than attempted; callers sitting behind an
// authenticated view treat this as a silent no-op, not a user-facing error.
var ErrAuthMissing = errors.New("no valid session token")

// FetchError is any transport failure or non-2xx response from the platform
// API. It carries the attempted operation name so the caller can surface a
// message without inspecting the response further. Previously loaded data
// must be retained when one of these comes back; a failed refresh never
// blanks a view.
type FetchError struct {
	Op         string
	StatusCode int // zero when the request never got a response
	Message    string
	Err        error
}

func (e *FetchError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%s failed: %s", e.Op, e.Message)
	}
	if e.Err != nil {
		return fmt.Sprintf("%s failed: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("%s failed: status %d", e.Op, e.StatusCode)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}
