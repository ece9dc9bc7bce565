// Package credentials owns the durable representation of the bearer
// token and client-side detection of its expiry.
package credentials

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog/log"
)

// Sentinel errors
var (
	// ErrNoToken is returned when no bearer token is stored.
	ErrNoToken = errors.New("no token stored")
)

const tokenFileName = "token"

// Store persists the current bearer token on the local filesystem so it
// survives process restarts. There is exactly one current token; writers
// are the identity bootstrap (initial write), explicit logout (clear)
// and the expiry watcher (clear on expiry).
type Store struct {
	baseDir string
}

// NewStore creates a token store rooted at baseDir.
// If baseDir is empty, uses ~/.careerdeck/
func NewStore(baseDir string) (*Store, error) {
	if baseDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to get home directory: %w", err)
		}
		baseDir = filepath.Join(home, ".careerdeck")
	}

	if err := os.MkdirAll(baseDir, 0700); err != nil {
		return nil, fmt.Errorf("failed to create credentials directory: %w", err)
	}

	log.Debug().Str("baseDir", baseDir).Msg("credential store initialized")

	return &Store{baseDir: baseDir}, nil
}

// Write replaces the stored token. The write is atomic so a crash never
// leaves a partial token behind.
func (s *Store) Write(token string) error {
	tokenPath := filepath.Join(s.baseDir, tokenFileName)
	tempPath := tokenPath + ".tmp"

	if err := os.WriteFile(tempPath, []byte(token), 0600); err != nil {
		return fmt.Errorf("failed to write token: %w", err)
	}

	if err := os.Rename(tempPath, tokenPath); err != nil {
		os.Remove(tempPath)
		return fmt.Errorf("failed to save token: %w", err)
	}

	log.Debug().Str("path", tokenPath).Msg("token stored")

	return nil
}

// Read returns the stored token, or ErrNoToken if none is present.
func (s *Store) Read() (string, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, tokenFileName))
	if err != nil {
		if os.IsNotExist(err) {
			return "", ErrNoToken
		}
		return "", fmt.Errorf("failed to read token: %w", err)
	}

	token := strings.TrimSpace(string(data))
	if token == "" {
		return "", ErrNoToken
	}

	return token, nil
}

// Clear removes the stored token. Clearing an empty store is not an error.
func (s *Store) Clear() error {
	if err := os.Remove(filepath.Join(s.baseDir, tokenFileName)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove token: %w", err)
	}

	log.Debug().Msg("token cleared")

	return nil
}

// Dir returns the directory backing the store.
func (s *Store) Dir() string {
	return s.baseDir
}
