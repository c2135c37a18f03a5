// Package session holds the identity rules shared by the cart client and the
// storefront backend: anonymous session ids and local bearer-token inspection.
package session

import (
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const (
	// Prefix marks an anonymous session id.
	Prefix = "session_"

	// Header carries the anonymous session id on requests and responses.
	Header = "X-Session-Id"

	// Local storage keys.
	KeySessionID          = "sessionId"
	KeyAuthToken          = "authToken"
	KeyNeedsCartMigration = "needsCartMigration"
	KeyRedirectAfterLogin = "redirectAfterLogin"
)

var ErrMalformedToken = errors.New("session: malformed token")

// NewID returns a fresh anonymous session id.
func NewID() string {
	return Prefix + uuid.NewString()
}

// IsID reports whether id is a well-formed anonymous session id.
func IsID(id string) bool {
	guid, ok := strings.CutPrefix(id, Prefix)
	if !ok {
		return false
	}
	_, err := uuid.Parse(guid)
	return err == nil
}

// GUID returns the id without its prefix; the migrate endpoint takes only this part.
func GUID(id string) string {
	return strings.TrimPrefix(id, Prefix)
}

// FromGUID is the inverse of GUID.
func FromGUID(guid string) string {
	return Prefix + guid
}

// TokenExpiry decodes the exp claim of a JWT without verifying its signature.
func TokenExpiry(token string) (time.Time, error) {
	token = strings.TrimSpace(strings.TrimPrefix(token, "Bearer "))
	if token == "" {
		return time.Time{}, ErrMalformedToken
	}

	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return time.Time{}, ErrMalformedToken
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}, ErrMalformedToken
	}
	return exp.Time, nil
}

// IsTokenLive reports whether token is well formed and unexpired at now.
// It is a UX shortcut to skip doomed requests, never an authorization check.
func IsTokenLive(token string, now time.Time) bool {
	exp, err := TokenExpiry(token)
	if err != nil {
		return false
	}
	return now.Before(exp)
}
