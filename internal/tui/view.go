package tui

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/auroracare/aurora-cli/internal/constants"
	"github.com/auroracare/aurora-cli/internal/models"
	"github.com/auroracare/aurora-cli/internal/push"
	"github.com/auroracare/aurora-cli/internal/tui/components/alarm"
)

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	// An incoming SOS overrides every other surface until dismissed.
	if m.listener.State() == push.Alerting {
		event, _ := m.listener.Current()
		return alarm.View(event, m.listener.Muted(), m.width, m.height)
	}

	if m.inForm() {
		return docStyle.Render(m.form.View())
	}

	header := m.renderTabs()

	switch m.state {
	case constants.StateDashboard:
		return m.viewDashboard(header)
	case constants.StateReminders:
		return docStyle.Render(lipgloss.JoinVertical(lipgloss.Left,
			header, "", m.remindersList.View(), "", m.footer()))
	case constants.StateEmergencies:
		return docStyle.Render(lipgloss.JoinVertical(lipgloss.Left,
			header, "", m.emergenciesList.View(), "", m.footer()))
	case constants.StateRoster:
		return docStyle.Render(lipgloss.JoinVertical(lipgloss.Left,
			header, "", m.rosterView.View(), "", m.footer()))
	case constants.StateSettings:
		return docStyle.Render(lipgloss.JoinVertical(lipgloss.Left,
			header, "", m.viewSettings(), "", m.footer()))
	}
	return ""
}

func (m Model) renderTabs() string {
	var rendered []string
	for _, tab := range m.tabs() {
		label := tabLabel(tab)
		if tab == m.state {
			rendered = append(rendered, activeTabStyle.Render(label))
		} else {
			rendered = append(rendered, inactiveTabStyle.Render(label))
		}
	}
	return strings.Join(rendered, " ")
}

func (m Model) footer() string {
	var parts []string
	if m.notice != "" {
		parts = append(parts, noticeStyle.Render(m.notice))
	}
	parts = append(parts, m.help.View(m.keys))
	return strings.Join(parts, "\n")
}

// viewDashboard lays itself out without docStyle so the SOS slider's screen
// position stays predictable for mouse hit-testing.
func (m Model) viewDashboard(header string) string {
	lines := []string{
		"",
		"  " + header,
		"",
		"  " + greetingStyle.Render(greeting(time.Now())+", "+m.user.Name),
		"",
	}

	if e, ok := m.store.ActiveEmergency(); ok {
		name := e.ElderName
		if name == "" {
			name = e.ElderID
		}
		lines = append(lines,
			"  "+dangerStyle.Render("🚨 active emergency — "+name),
			"")
	}

	today := m.todayReminders()
	done := 0
	for _, r := range today {
		if m.store.IsCompleted(r.ID) {
			done++
		}
	}
	lines = append(lines, fmt.Sprintf("  Today: %d of %d reminders done", done, len(today)))
	lines = append(lines, "")
	for i, r := range today {
		if i == 5 {
			lines = append(lines, statusStyle.Render(fmt.Sprintf("    … and %d more", len(today)-5)))
			break
		}
		mark := "·"
		if m.store.IsCompleted(r.ID) {
			mark = "✓"
		}
		lines = append(lines, fmt.Sprintf("    %s %s  %s", mark, r.Time, r.Title))
	}

	if !m.user.IsElder() {
		if activities := m.store.Activities(); len(activities) > 0 {
			lines = append(lines, "", "  "+statusStyle.Render("Recent activity"))
			for i, a := range activities {
				if i == 5 {
					break
				}
				lines = append(lines, statusStyle.Render("    "+a.User+" "+a.Action))
			}
		}
	}

	body := strings.Join(lines, "\n")

	if !m.showSOS() {
		return body + "\n\n  " + strings.ReplaceAll(m.footer(), "\n", "\n  ")
	}

	// Pin the slider to the row registered with its mouse hit-test.
	used := strings.Count(body, "\n") + 1
	pad := m.height - used - 3
	if pad < 1 {
		pad = 1
	}
	return body +
		strings.Repeat("\n", pad) +
		"  " + m.sosSlider.View() +
		"\n  " + m.help.View(m.keys)
}

func (m Model) viewSettings() string {
	onOff := func(v bool) string {
		if v {
			return "on"
		}
		return "off"
	}
	prefs := m.store.Preferences()

	lines := []string{
		greetingStyle.Render("Settings"),
		"",
		fmt.Sprintf("  Emergency button      %s", onOff(prefs.EmergencyButtonEnabled)),
		fmt.Sprintf("  Elder edits routine   %s", onOff(prefs.ElderCanEditRoutine)),
		"",
		statusStyle.Render("  Emergency contact: " + constants.DefaultEmergencyContact),
		statusStyle.Render("  Signed in as " + m.user.Name + " (" + string(m.user.Role) + ")"),
		statusStyle.Render("  " + constants.AppName + " " + constants.Version),
	}
	if !m.user.IsElder() {
		lines = append(lines, "", statusStyle.Render("  e toggle emergency button · r toggle routine editing"))
	}
	return strings.Join(lines, "\n")
}

// todayReminders returns the reminders that apply today, earliest first.
func (m Model) todayReminders() []models.Reminder {
	now := time.Now()
	var today []models.Reminder
	for _, r := range m.store.Reminders() {
		if r.AppliesOn(now) {
			today = append(today, r)
		}
	}
	sort.SliceStable(today, func(i, j int) bool { return today[i].Time < today[j].Time })
	return today
}

func greeting(t time.Time) string {
	switch {
	case t.Hour() < 12:
		return "Good morning"
	case t.Hour() < 18:
		return "Good afternoon"
	default:
		return "Good evening"
	}
}
