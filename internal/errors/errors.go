// Package errors defines the domain error values shared across services
// and handlers. Errors carry a stable machine code and a user-safe
// message; anything more detailed stays in logs.
package errors

// DomainError is an error with a stable code callers can match on.
type DomainError struct {
	Code    string
	Message string
}

func (e *DomainError) Error() string {
	return e.Message
}
