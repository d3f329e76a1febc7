package analysis

import "fmt"

// TransportError wraps failures reaching the model provider. Callers map it
// to a retryable condition.
type TransportError struct {
	Cause error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("analysis request failed: %v", e.Cause)
}

func (e *TransportError) Unwrap() error {
	return e.Cause
}

// ProtocolError wraps responses that arrived but do not satisfy the report
// contract. Retrying rarely helps; callers surface it as a server fault.
type ProtocolError struct {
	Message string
	Cause   error
}

func (e *ProtocolError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("malformed analysis response: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("malformed analysis response: %s", e.Message)
}

func (e *ProtocolError) Unwrap() error {
	return e.Cause
}
