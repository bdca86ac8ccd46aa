// Package session persists the signed-in user's identity between
// invocations. The session file only carries identity and role; the API
// token itself lives in the OS keyring.
package session

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/auroracare/aurora-cli/internal/constants"
	"github.com/auroracare/aurora-cli/internal/models"
)

var userConfigDirFunc = os.UserConfigDir

const sessionFileName = "session.json"

// ConfigDir returns the aurora config directory, creating it when missing.
func ConfigDir() (string, error) {
	base, err := userConfigDirFunc()
	if err != nil {
		return "", fmt.Errorf("failed to get user config dir: %w", err)
	}
	dir := filepath.Join(base, constants.AppName)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return "", fmt.Errorf("failed to create config directory: %w", err)
	}
	return dir, nil
}

// Current returns the stored session user, or nil when no one is signed in
// or the session file is unreadable. A missing or malformed session is the
// expected unauthenticated state, not an error.
func Current() *models.SessionUser {
	dir, err := ConfigDir()
	if err != nil {
		return nil
	}

	data, err := os.ReadFile(filepath.Join(dir, sessionFileName))
	if err != nil {
		return nil
	}

	var user models.SessionUser
	if err := json.Unmarshal(data, &user); err != nil {
		return nil
	}
	if user.ID == "" {
		return nil
	}
	return &user
}

// Set persists the session user.
func Set(user models.SessionUser) error {
	dir, err := ConfigDir()
	if err != nil {
		return err
	}

	data, err := json.MarshalIndent(user, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode session: %w", err)
	}

	if err := os.WriteFile(filepath.Join(dir, sessionFileName), data, 0600); err != nil {
		return fmt.Errorf("failed to write session file: %w", err)
	}
	return nil
}

// Clear removes the stored session. Clearing an absent session is a no-op.
func Clear() error {
	dir, err := ConfigDir()
	if err != nil {
		return err
	}

	err = os.Remove(filepath.Join(dir, sessionFileName))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove session file: %w", err)
	}
	return nil
}
