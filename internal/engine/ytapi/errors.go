package ytapi

import (
	"errors"
	"fmt"
)

// Kind classifies a backend failure.
type Kind string

const (
	KindBadRequest    Kind = "bad_request"
	KindAuth          Kind = "auth"
	KindQuotaExceeded Kind = "quota_exceeded"
	KindNotFound      Kind = "not_found"
	KindTransient     Kind = "transient"
	KindMisconfigured Kind = "misconfigured"
	KindUnexpected    Kind = "unexpected"
)

// Error is a classified backend failure. Message never contains the API key
// or the request URL.
type Error struct {
	Kind    Kind
	Op      Operation
	Status  int    // HTTP status, 0 when no response was received
	Reason  string // platform reason code (error.errors[0].reason), may be empty
	Message string
	Err     error // underlying cause, already credential-free
}

func (e *Error) Error() string {
	msg := "youtube: " + e.Message
	if e.Op != "" {
		msg = fmt.Sprintf("youtube %s: %s", e.Op, e.Message)
	}
	if e.Status != 0 {
		msg += fmt.Sprintf(" (status %d", e.Status)
		if e.Reason != "" {
			msg += ", reason " + e.Reason
		}
		msg += ")"
	} else if e.Reason != "" {
		msg += " (reason " + e.Reason + ")"
	}
	return msg
}

func (e *Error) Unwrap() error { return e.Err }

// Retryable reports whether another attempt may succeed.
func (e *Error) Retryable() bool { return e.Kind == KindTransient }

// KindOf returns the Kind of err, or "" when err is not a backend error.
func KindOf(err error) Kind {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.Kind
	}
	return ""
}

// IsKind reports whether err is a backend error of kind k.
func IsKind(err error, k Kind) bool {
	return KindOf(err) == k
}
