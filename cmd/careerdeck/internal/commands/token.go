package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenCmd mints a short-lived HS256 token for local development. The
// backend dev profile accepts these; production tokens always come from
// the identity provider.
type TokenCmd struct {
	Subject    string        `help:"Subject identifier" required:""`
	Email      string        `help:"Email claim" default:"dev@campus.edu"`
	Role       string        `help:"Role claim (STUDENT, EMPLOYER, STAFF, FACULTY)" default:"STUDENT"`
	TTL        time.Duration `help:"Token lifetime" default:"1h"`
	SigningKey string        `help:"JWT signing key" required:"" env:"JWT_SIGNING_KEY"`
}

func (t *TokenCmd) Run(ctx context.Context) error {
	token, err := mintToken(t.Subject, t.Email, t.Role, t.TTL, []byte(t.SigningKey))
	if err != nil {
		return err
	}

	fmt.Println(token)
	return nil
}

func mintToken(subject, email, role string, ttl time.Duration, key []byte) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"iss":   "careerdeck",
		"sub":   subject,
		"email": email,
		"role":  role,
		"iat":   jwt.NewNumericDate(now),
		"exp":   jwt.NewNumericDate(now.Add(ttl)),
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(key)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	return token, nil
}
