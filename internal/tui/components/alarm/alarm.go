// Package alarm renders the full-screen SOS override. While an alert is
// displayed it replaces every other surface until dismissed; dismissal never
// resolves the emergency itself.
package alarm

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/auroracare/aurora-cli/internal/constants"
	"github.com/auroracare/aurora-cli/internal/push"
)

var (
	screenStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("52"))

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.DoubleBorder()).
			BorderForeground(lipgloss.Color("196")).
			Padding(1, 4).
			Align(lipgloss.Center)

	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")).
			Bold(true)

	nameStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("231")).
			Bold(true)

	mutedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214")).
			Bold(true).
			Blink(true)

	hintStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("245"))
)

// View renders the alarm overlay for the given alert payload.
func View(event push.EmergencyEvent, muted bool, width, height int) string {
	name := event.ElderName
	if name == "" {
		name = "The elder"
	}
	contact := event.Contact
	if contact == "" {
		contact = constants.DefaultEmergencyContact
	}

	lines := []string{
		titleStyle.Render("🚨  SOS ALERT  🚨"),
		"",
		nameStyle.Render(name) + " needs help!",
		"",
		hintStyle.Render("call now: " + contact),
		"",
	}
	if muted {
		// Audio was blocked; the visual alert stays up and the user can
		// retry the sound by hand.
		lines = append(lines, mutedStyle.Render("⚠ sound blocked — press m to activate the alarm"), "")
	}
	lines = append(lines, hintStyle.Render("esc dismiss (does not resolve)"))

	box := boxStyle.Render(lipgloss.JoinVertical(lipgloss.Center, lines...))
	return screenStyle.Render(lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, box))
}
