package llm

import "fmt"

const (
	networkErrorFormat       = "call generation backend: %v"
	networkStatusErrorFormat = "generation backend returned HTTP %d: %s"
	responseErrorFormat      = "unexpected generation backend response: %s"
)

// NetworkError covers transport failures and non-success HTTP statuses:
// transient infrastructure conditions, as opposed to contract violations.
type NetworkError struct {
	Status int
	Body   string
	Err    error
}

func (e *NetworkError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf(networkStatusErrorFormat, e.Status, e.Body)
	}
	return fmt.Sprintf(networkErrorFormat, e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

// ResponseError covers backend replies that violate the chat contract:
// undecodable bodies or a missing/empty message content. These are reported,
// never silently defaulted to empty output.
type ResponseError struct {
	Reason string
}

func (e *ResponseError) Error() string {
	return fmt.Sprintf(responseErrorFormat, e.Reason)
}
