package session

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/auroracare/aurora-cli/internal/constants"
	"github.com/auroracare/aurora-cli/internal/models"
)

func withTempConfigDir(t *testing.T) string {
	t.Helper()

	tempDir := t.TempDir()
	oldFunc := userConfigDirFunc
	t.Cleanup(func() { userConfigDirFunc = oldFunc })
	userConfigDirFunc = func() (string, error) {
		return tempDir, nil
	}
	return tempDir
}

func TestCurrentWithoutSession(t *testing.T) {
	withTempConfigDir(t)

	if user := Current(); user != nil {
		t.Errorf("expected nil session, got %+v", user)
	}
}

func TestSetAndCurrent(t *testing.T) {
	withTempConfigDir(t)

	want := models.SessionUser{
		ID:      "user-1",
		Name:    "Ana",
		Role:    constants.RoleFamily,
		ElderID: "elder-1",
	}
	if err := Set(want); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got := Current()
	if got == nil {
		t.Fatal("expected a session user")
	}
	if got.ID != want.ID || got.Role != want.Role || got.ElderID != want.ElderID {
		t.Errorf("got %+v, want %+v", got, want)
	}
}

func TestCurrentMalformedSession(t *testing.T) {
	tempDir := withTempConfigDir(t)

	dir := filepath.Join(tempDir, constants.AppName)
	if err := os.MkdirAll(dir, 0700); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, sessionFileName), []byte("{not json"), 0600); err != nil {
		t.Fatal(err)
	}

	if user := Current(); user != nil {
		t.Errorf("expected nil for malformed session, got %+v", user)
	}
}

func TestClear(t *testing.T) {
	withTempConfigDir(t)

	if err := Set(models.SessionUser{ID: "user-1", Role: constants.RoleElder}); err != nil {
		t.Fatal(err)
	}
	if err := Clear(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if user := Current(); user != nil {
		t.Error("expected session cleared")
	}

	// Clearing again is a no-op
	if err := Clear(); err != nil {
		t.Errorf("expected clearing an absent session to succeed, got %v", err)
	}
}
