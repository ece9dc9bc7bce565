package credentials

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrNoExpiry is returned when a decodable token carries no exp claim.
var ErrNoExpiry = errors.New("token has no expiry claim")

// Expiry decodes the payload segment of a JWT-shaped bearer token and
// returns its expiry instant. The signature is NOT verified: the client
// only ever reads exp for timing, authorization stays with the server.
func Expiry(token string) (time.Time, error) {
	claims := jwt.MapClaims{}
	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(token, claims); err != nil {
		return time.Time{}, fmt.Errorf("failed to decode token: %w", err)
	}

	exp, err := claims.GetExpirationTime()
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to read expiry claim: %w", err)
	}
	if exp == nil {
		return time.Time{}, ErrNoExpiry
	}

	return exp.Time, nil
}

// Remaining returns how long the token is still valid relative to now.
// Negative values mean the token has already expired.
func Remaining(token string, now time.Time) (time.Duration, error) {
	expiry, err := Expiry(token)
	if err != nil {
		return 0, err
	}
	return expiry.Sub(now), nil
}
