package cli

import (
	"fmt"
	"strings"

	"github.com/auroracare/aurora-cli/internal/api"
	"github.com/auroracare/aurora-cli/internal/keyring"
	"github.com/auroracare/aurora-cli/internal/models"
	"github.com/auroracare/aurora-cli/internal/session"
)

// Context carries the dependencies every command shares. Client and User are
// populated by EnsureAuthenticated; commands that work offline leave them nil.
type Context struct {
	APIURL    string
	RedisAddr string
	SoundPath string

	Client *api.Client
	User   *models.SessionUser
}

// EnsureAuthenticated loads the stored session and token and builds an
// authenticated API client from them.
func (c *Context) EnsureAuthenticated() error {
	user := session.Current()
	if user == nil {
		return fmt.Errorf("not signed in — run 'aurora login' first")
	}
	token, err := keyring.GetToken()
	if err != nil {
		return fmt.Errorf("no stored credentials — run 'aurora login' first: %w", err)
	}
	c.User = user
	c.Client = api.NewClient(c.APIURL, token)
	return nil
}

func formatReminderLine(r models.Reminder, completed bool) string {
	mark := " "
	if completed {
		mark = "✓"
	}
	line := fmt.Sprintf("[%s] %s  %-10s %s", mark, r.Time, r.Category, r.Title)
	if rec := r.FormatRecurrence(); rec != "" {
		line += "  (" + rec + ")"
	}
	return line
}

func formatEmergencyLine(e models.Emergency) string {
	name := e.ElderName
	if name == "" {
		name = e.ElderID
	}
	if e.Resolved {
		line := fmt.Sprintf("resolved   %s  %s", e.CreatedAt.Format("2006-01-02 15:04"), name)
		if e.Observation != "" {
			line += "  — " + strings.TrimSpace(e.Observation)
		}
		return line
	}
	return fmt.Sprintf("UNRESOLVED %s  %s", e.CreatedAt.Format("2006-01-02 15:04"), name)
}
