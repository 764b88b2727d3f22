package remote

import (
	"encoding/json"
	"errors"
	"fmt"
)

// Every cloud_slice_ms endpoint answers with the same envelope shape,
// success and failure alike.
type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message,omitempty"`
	Data    json.RawMessage `json:"data,omitempty"`
}

// GenericFailureMessage is what users see for transport-level failures
// (timeouts, DNS, 5xx without an envelope). The underlying cause stays
// wrapped for logs.
const GenericFailureMessage = "Request failed. Please try again."

// RejectedError is a server-side rejection: the request arrived, the
// service said no. Message is the server's verbatim explanation and is
// safe to show to the user.
type RejectedError struct {
	Message string
}

func (e *RejectedError) Error() string {
	if e.Message == "" {
		return "request rejected by server"
	}
	return e.Message
}

// IsRejected reports whether err is a server rejection as opposed to a
// transport failure
func IsRejected(err error) bool {
	var rej *RejectedError
	return errors.As(err, &rej)
}

// UserMessage maps any sync error to the string shown in the
// notification banner: server rejections verbatim, everything else the
// generic fallback.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	var rej *RejectedError
	if errors.As(err, &rej) && rej.Message != "" {
		return rej.Message
	}
	return GenericFailureMessage
}

// decodeEnvelope parses a response body and converts success=false
// into a RejectedError
func decodeEnvelope(body []byte) (json.RawMessage, error) {
	var env envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, fmt.Errorf("%s: %w", GenericFailureMessage, err)
	}
	if !env.Success {
		return nil, &RejectedError{Message: env.Message}
	}
	return env.Data, nil
}
