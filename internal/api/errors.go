package api

import (
	"errors"
	"fmt"
)

// GenericErrorMessage is what users see for failures that carry no usable
// detail (network trouble, detail-less rejections).
const GenericErrorMessage = "Unexpected error. Please try again."

// ValidationError is a client-side failure: a required field is empty after
// trimming. It is raised before any network activity.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

// TransportError wraps a failure to complete the HTTP round trip at all
// (dial, timeout, broken body). The underlying cause is kept for logs but is
// never shown to users.
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string { return fmt.Sprintf("%s: %v", e.Op, e.Err) }
func (e *TransportError) Unwrap() error { return e.Err }

// ServerRejection is a completed round trip the server answered with a
// non-success status. Detail carries the server's `detail` body field when
// present; it is user-facing text and surfaced verbatim.
type ServerRejection struct {
	Status int
	Detail string
}

func (e *ServerRejection) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("server rejected request (status %d): %s", e.Status, e.Detail)
	}
	return fmt.Sprintf("server rejected request (status %d)", e.Status)
}

// UserMessage maps any gateway error to the text shown in the UI.
// Validation messages and server-provided details come through verbatim;
// everything else collapses to a generic message.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve.Msg
	}
	var sr *ServerRejection
	if errors.As(err, &sr) && sr.Detail != "" {
		return sr.Detail
	}
	return GenericErrorMessage
}
