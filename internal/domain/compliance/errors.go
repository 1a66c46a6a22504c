package compliance

import (
	"errors"
	"fmt"
)

// ErrMalformedResponse marks a provider reply that is not a list of insights.
var ErrMalformedResponse = errors.New("malformed provider response")

// ExternalServiceError wraps any failure talking to the AI provider. It is
// never surfaced as an HTTP error; Analyze converts it into a warning insight.
type ExternalServiceError struct {
	Err error
}

func (e *ExternalServiceError) Error() string {
	return fmt.Sprintf("ai provider: %v", e.Err)
}

func (e *ExternalServiceError) Unwrap() error {
	return e.Err
}
