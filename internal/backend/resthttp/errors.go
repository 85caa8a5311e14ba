package resthttp

import "fmt"

// APIError is a completed request the server rejected. Message comes from
// the response body's "message" field when present, else a generic
// status-based message.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return e.Message
}

// MalformedResponseError is a response body that could not be decoded or
// failed validation at the boundary. Nothing malformed is admitted into
// local state.
type MalformedResponseError struct {
	Endpoint string
	Err      error
}

func (e *MalformedResponseError) Error() string {
	return fmt.Sprintf("malformed response from %s: %v", e.Endpoint, e.Err)
}

func (e *MalformedResponseError) Unwrap() error {
	return e.Err
}
