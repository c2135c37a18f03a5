package cart

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrNetwork wraps transport failures and non-2xx answers that carry no errors array.
	ErrNetwork = errors.New("cart: network error")

	ErrEmptyCart        = errors.New("cart: cart is empty")
	ErrInvalidToken     = errors.New("cart: invalid or expired token")
	ErrNotAuthenticated = errors.New("cart: login required")

	// ErrSessionExpired means the server refused the stored bearer token.
	ErrSessionExpired = errors.New("cart: session expired")
)

// BusinessError is a rejection by the backend's business rules: the response
// body carried an errors array.
type BusinessError struct {
	Status  int
	Message string
	Errors  []string
}

func (e *BusinessError) Error() string {
	if len(e.Errors) == 0 {
		return fmt.Sprintf("cart: %s (status %d)", e.Message, e.Status)
	}
	return fmt.Sprintf("cart: %s (status %d): %s", e.Message, e.Status, strings.Join(e.Errors, "; "))
}

// userMessage is the toast text for err.
func userMessage(err error) string {
	if errors.Is(err, ErrSessionExpired) {
		return "Your session expired, please log in again"
	}
	var be *BusinessError
	if errors.As(err, &be) {
		if be.Message != "" {
			return be.Message
		}
		if len(be.Errors) > 0 {
			return be.Errors[0]
		}
	}
	return "Could not reach the store, please try again"
}
