package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/auroracare/aurora-cli/internal/constants"
)

// Recurrence is the closed rule set governing which calendar days a reminder
// is active. The variant is decided at construction time: Daily carries no
// payload, Weekly carries a non-empty weekday set, Once relies on the
// reminder's anchor date.
type Recurrence struct {
	Type     constants.RecurrenceType `json:"type"`
	Weekdays []time.Weekday           `json:"weekdays,omitempty"`
}

func Daily() Recurrence {
	return Recurrence{Type: constants.RecurrenceDaily}
}

func Weekly(days ...time.Weekday) Recurrence {
	return Recurrence{Type: constants.RecurrenceWeekly, Weekdays: days}
}

func Once() Recurrence {
	return Recurrence{Type: constants.RecurrenceOnce}
}

type Reminder struct {
	ID         string                     `json:"id"`
	Title      string                     `json:"title"`
	Time       string                     `json:"time"` // HH:MM format
	Date       string                     `json:"date"` // YYYY-MM-DD, anchor for one-off reminders
	Category   constants.ReminderCategory `json:"category"`
	CreatedBy  constants.Role             `json:"created_by"`
	Recurrence Recurrence                 `json:"recurrence"`
	CreatedAt  time.Time                  `json:"created_at"`
}

func (r *Reminder) Validate() error {
	if r.Title == "" {
		return fmt.Errorf("reminder title cannot be empty")
	}

	if _, err := time.Parse(constants.TimeFormat, r.Time); err != nil {
		return fmt.Errorf("invalid time format (expected HH:MM): %w", err)
	}

	switch r.Category {
	case constants.CategoryMedication, constants.CategoryMeal, constants.CategoryRoutine:
	case constants.CategoryEvent, constants.CategoryVoiceNote:
		// Events and voice notes are pinned to one concrete day.
		if r.Recurrence.Type != constants.RecurrenceOnce {
			return fmt.Errorf("%s reminders must use one-time recurrence", r.Category)
		}
		if r.Date == "" {
			return fmt.Errorf("%s reminders require a date", r.Category)
		}
	default:
		return fmt.Errorf("unknown reminder category: %q", r.Category)
	}

	switch r.Recurrence.Type {
	case constants.RecurrenceDaily:
	case constants.RecurrenceWeekly:
		if len(r.Recurrence.Weekdays) == 0 {
			return fmt.Errorf("weekdays must be specified for weekly recurrence")
		}
	case constants.RecurrenceOnce:
		if r.Date == "" {
			return fmt.Errorf("one-time reminders require a date")
		}
	default:
		return fmt.Errorf("unknown recurrence type: %q", r.Recurrence.Type)
	}

	if r.Date != "" {
		if _, err := time.Parse(constants.DateFormat, r.Date); err != nil {
			return fmt.Errorf("invalid date format (expected YYYY-MM-DD): %w", err)
		}
	}

	return nil
}

// AppliesOn reports whether the reminder is active on the given calendar day.
// One-time reminders match on calendar-day equality with the anchor date, so a
// past anchor never reappears. Weekly reminders match on the weekday set. An
// absent or unrecognized rule is treated as daily.
func (r *Reminder) AppliesOn(day time.Time) bool {
	// Voice notes are always one-shot regardless of the stored rule.
	if r.Recurrence.Type == constants.RecurrenceOnce || r.Category == constants.CategoryVoiceNote {
		anchor, err := time.Parse(constants.DateFormat, r.Date)
		if err != nil {
			return false
		}
		return anchor.Year() == day.Year() &&
			anchor.Month() == day.Month() &&
			anchor.Day() == day.Day()
	}

	if r.Recurrence.Type == constants.RecurrenceWeekly {
		for _, wd := range r.Recurrence.Weekdays {
			if wd == day.Weekday() {
				return true
			}
		}
		return false
	}

	return true
}

// FormatRecurrence returns a human-readable string describing the reminder's recurrence
func (r *Reminder) FormatRecurrence() string {
	switch r.Recurrence.Type {
	case constants.RecurrenceWeekly:
		days := make([]string, len(r.Recurrence.Weekdays))
		for i, wd := range r.Recurrence.Weekdays {
			days[i] = wd.String()[:3]
		}
		return fmt.Sprintf("Weekly: %s", strings.Join(days, ", "))
	case constants.RecurrenceOnce:
		return fmt.Sprintf("Once on %s", r.Date)
	default:
		return "Daily"
	}
}
