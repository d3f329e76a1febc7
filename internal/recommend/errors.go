package recommend

import "fmt"

// RequestError marks an inbound payload that fails structural validation.
// The HTTP layer maps it to a 400.
type RequestError struct {
	Message string
	Cause   error
}

func (e *RequestError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("invalid recommendation request: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("invalid recommendation request: %s", e.Message)
}

func (e *RequestError) Unwrap() error {
	return e.Cause
}
