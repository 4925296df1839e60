package backend

import "fmt"

// BusinessError is a rejection the backend expressed in its response
// envelope ({success:false, message}). The message is surfaced verbatim to
// the user-facing layer.
type BusinessError struct {
	StatusCode int
	Message    string
}

func (e *BusinessError) Error() string { return e.Message }

// TransportError is a network failure or a non-2xx response without a
// readable envelope. It is presented as a generic retryable condition; the
// client never retries on its own.
type TransportError struct {
	StatusCode int // 0 when the request never completed
	Err        error
}

func (e *TransportError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("backend unreachable: %v", e.Err)
	}
	return fmt.Sprintf("backend returned HTTP %d", e.StatusCode)
}

func (e *TransportError) Unwrap() error { return e.Err }
