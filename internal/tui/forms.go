package tui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/auroracare/aurora-cli/internal/constants"
	"github.com/auroracare/aurora-cli/internal/models"
)

func (m Model) inForm() bool {
	switch m.state {
	case constants.StateAddReminder, constants.StateEditReminder,
		constants.StateConfirmDelete, constants.StateResolveEmergency:
		return m.form != nil
	}
	return false
}

func (m *Model) openAddReminderForm() tea.Cmd {
	v := &reminderFormValues{
		Time:       "08:00",
		Date:       time.Now().Format(constants.DateFormat),
		Category:   constants.CategoryMedication,
		Recurrence: constants.RecurrenceDaily,
	}
	m.reminderForm = v
	m.form = reminderForm(v)
	m.previous = m.state
	m.state = constants.StateAddReminder
	return m.form.Init()
}

// openEditReminderForm opens the composer pre-filled with an existing
// reminder. Unknown ids are a silent no-op, same as the store's own misses.
func (m *Model) openEditReminderForm(id string) tea.Cmd {
	var current *models.Reminder
	for _, r := range m.store.Reminders() {
		if r.ID == id {
			current = &r
			break
		}
	}
	if current == nil {
		return nil
	}

	v := &reminderFormValues{
		Title:      current.Title,
		Time:       current.Time,
		Date:       current.Date,
		Category:   current.Category,
		Recurrence: current.Recurrence.Type,
		Weekdays:   formatWeekdaysShort(current.Recurrence.Weekdays),
	}
	if v.Date == "" {
		v.Date = time.Now().Format(constants.DateFormat)
	}
	m.reminderForm = v
	m.editID = id
	m.form = reminderForm(v)
	m.previous = m.state
	m.state = constants.StateEditReminder
	return m.form.Init()
}

func reminderForm(v *reminderFormValues) *huh.Form {
	return huh.NewForm(huh.NewGroup(
		huh.NewInput().
			Title("Title").
			Placeholder("Take blood pressure medication").
			Value(&v.Title).
			Validate(func(s string) error {
				if strings.TrimSpace(s) == "" {
					return fmt.Errorf("title is required")
				}
				return nil
			}),
		huh.NewInput().
			Title("Time (HH:MM)").
			Value(&v.Time).
			Validate(func(s string) error {
				if _, err := time.Parse(constants.TimeFormat, strings.TrimSpace(s)); err != nil {
					return fmt.Errorf("time must look like 08:30")
				}
				return nil
			}),
		huh.NewSelect[constants.ReminderCategory]().
			Title("Category").
			Options(
				huh.NewOption("Medication", constants.CategoryMedication),
				huh.NewOption("Meal", constants.CategoryMeal),
				huh.NewOption("Routine", constants.CategoryRoutine),
				huh.NewOption("Event", constants.CategoryEvent),
				huh.NewOption("Voice note", constants.CategoryVoiceNote),
			).
			Value(&v.Category),
		huh.NewSelect[constants.RecurrenceType]().
			Title("Repeats").
			Options(
				huh.NewOption("Every day", constants.RecurrenceDaily),
				huh.NewOption("On weekdays", constants.RecurrenceWeekly),
				huh.NewOption("One time", constants.RecurrenceOnce),
			).
			Value(&v.Recurrence),
		huh.NewInput().
			Title("Weekdays (mon,wed,fri — weekly only)").
			Value(&v.Weekdays),
		huh.NewInput().
			Title("Date (YYYY-MM-DD — one time only)").
			Value(&v.Date),
	))
}

func (m *Model) openDeleteConfirm(id string) tea.Cmd {
	title := id
	for _, r := range m.store.Reminders() {
		if r.ID == id {
			title = r.Title
			break
		}
	}
	v := &deleteFormValues{}
	m.deleteForm = v
	m.deleteID = id
	m.form = huh.NewForm(huh.NewGroup(
		huh.NewConfirm().
			Title(fmt.Sprintf("Delete %q?", title)).
			Affirmative("Delete").
			Negative("Keep").
			Value(&v.Confirmed),
	))
	m.previous = m.state
	m.state = constants.StateConfirmDelete
	return m.form.Init()
}

func (m *Model) openResolveForm(id string) tea.Cmd {
	v := &resolveFormValues{}
	m.resolveForm = v
	m.resolveID = id
	m.form = huh.NewForm(huh.NewGroup(
		huh.NewText().
			Title("What happened?").
			Placeholder("False alarm, spoke with her on the phone").
			Value(&v.Observation),
	))
	m.previous = m.state
	m.state = constants.StateResolveEmergency
	return m.form.Init()
}

func (m *Model) closeForm() {
	m.form = nil
	m.reminderForm = nil
	m.resolveForm = nil
	m.deleteForm = nil
	m.resolveID = ""
	m.deleteID = ""
	m.editID = ""
	m.state = m.previous
}

func formatWeekdaysShort(days []time.Weekday) string {
	parts := make([]string, len(days))
	for i, d := range days {
		parts[i] = strings.ToLower(d.String()[:3])
	}
	return strings.Join(parts, ",")
}

// reminder assembles and validates a reminder from the submitted form.
func (v reminderFormValues) reminder() (models.Reminder, error) {
	r := models.Reminder{
		Title:    strings.TrimSpace(v.Title),
		Time:     strings.TrimSpace(v.Time),
		Category: v.Category,
	}
	switch v.Recurrence {
	case constants.RecurrenceWeekly:
		days, err := models.ParseWeekdays(v.Weekdays)
		if err != nil {
			return r, err
		}
		r.Recurrence = models.Weekly(days...)
	case constants.RecurrenceOnce:
		r.Recurrence = models.Once()
		r.Date = strings.TrimSpace(v.Date)
	default:
		r.Recurrence = models.Daily()
	}
	if err := r.Validate(); err != nil {
		return r, err
	}
	return r, nil
}
