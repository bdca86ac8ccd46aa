package models

import (
	"testing"
	"time"

	"github.com/auroracare/aurora-cli/internal/constants"
)

func TestAppliesOn_OneTime(t *testing.T) {
	reminder := Reminder{
		ID:         "once-1",
		Title:      "Cardiologist appointment",
		Time:       "14:30",
		Date:       "2026-03-10",
		Category:   constants.CategoryEvent,
		Recurrence: Once(),
	}

	// Exact day matches regardless of time-of-day
	morning := time.Date(2026, 3, 10, 6, 0, 0, 0, time.UTC)
	if !reminder.AppliesOn(morning) {
		t.Error("expected one-time reminder to apply on its anchor date (morning)")
	}

	night := time.Date(2026, 3, 10, 23, 59, 0, 0, time.UTC)
	if !reminder.AppliesOn(night) {
		t.Error("expected one-time reminder to apply on its anchor date (night)")
	}

	// One day off must not match
	dayBefore := time.Date(2026, 3, 9, 14, 30, 0, 0, time.UTC)
	if reminder.AppliesOn(dayBefore) {
		t.Error("expected one-time reminder not to apply the day before")
	}

	dayAfter := time.Date(2026, 3, 11, 14, 30, 0, 0, time.UTC)
	if reminder.AppliesOn(dayAfter) {
		t.Error("expected one-time reminder not to apply the day after; one-offs expire")
	}
}

func TestAppliesOn_VoiceNoteAlwaysOneTime(t *testing.T) {
	// A voice note is one-shot even if a recurring rule slipped into the record.
	reminder := Reminder{
		ID:         "voice-1",
		Title:      "Message from Ana",
		Time:       "09:00",
		Date:       "2026-03-10",
		Category:   constants.CategoryVoiceNote,
		Recurrence: Daily(),
	}

	anchor := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	if !reminder.AppliesOn(anchor) {
		t.Error("expected voice note to apply on its anchor date")
	}

	nextDay := time.Date(2026, 3, 11, 9, 0, 0, 0, time.UTC)
	if reminder.AppliesOn(nextDay) {
		t.Error("expected voice note not to recur")
	}
}

func TestAppliesOn_Weekly(t *testing.T) {
	reminder := Reminder{
		ID:         "weekly-1",
		Title:      "Physiotherapy",
		Time:       "10:00",
		Category:   constants.CategoryRoutine,
		Recurrence: Weekly(time.Monday, time.Wednesday),
	}

	monday := time.Date(2026, 3, 9, 10, 0, 0, 0, time.UTC)
	if monday.Weekday() != time.Monday {
		t.Fatal("test date is not a Monday")
	}
	if !reminder.AppliesOn(monday) {
		t.Error("expected weekly reminder to apply on Monday")
	}

	wednesday := time.Date(2026, 3, 11, 10, 0, 0, 0, time.UTC)
	if !reminder.AppliesOn(wednesday) {
		t.Error("expected weekly reminder to apply on Wednesday")
	}

	tuesday := time.Date(2026, 3, 10, 10, 0, 0, 0, time.UTC)
	if reminder.AppliesOn(tuesday) {
		t.Error("expected weekly reminder not to apply on Tuesday")
	}

	sunday := time.Date(2026, 3, 8, 10, 0, 0, 0, time.UTC)
	if reminder.AppliesOn(sunday) {
		t.Error("expected weekly reminder not to apply on Sunday")
	}
}

func TestAppliesOn_DailyAndUnset(t *testing.T) {
	daily := Reminder{
		ID:         "daily-1",
		Title:      "Take blood-pressure pill",
		Time:       "08:00",
		Category:   constants.CategoryMedication,
		Recurrence: Daily(),
	}

	unset := Reminder{
		ID:       "legacy-1",
		Title:    "Lunch",
		Time:     "12:00",
		Category: constants.CategoryMeal,
	}

	dates := []time.Time{
		time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2026, 6, 15, 12, 0, 0, 0, time.UTC),
		time.Date(2027, 12, 31, 23, 59, 0, 0, time.UTC),
	}

	for _, d := range dates {
		if !daily.AppliesOn(d) {
			t.Errorf("expected daily reminder to apply on %s", d)
		}
		if !unset.AppliesOn(d) {
			t.Errorf("expected reminder without recurrence to apply on %s", d)
		}
	}
}

func TestReminderValidate(t *testing.T) {
	valid := Reminder{
		Title:      "Take blood-pressure pill",
		Time:       "08:00",
		Category:   constants.CategoryMedication,
		Recurrence: Daily(),
	}
	if err := valid.Validate(); err != nil {
		t.Errorf("unexpected error for valid reminder: %v", err)
	}

	badTime := valid
	badTime.Time = "8 o'clock"
	if err := badTime.Validate(); err == nil {
		t.Error("expected error for malformed time")
	}

	weeklyNoDays := Reminder{
		Title:      "Walk",
		Time:       "17:00",
		Category:   constants.CategoryRoutine,
		Recurrence: Recurrence{Type: constants.RecurrenceWeekly},
	}
	if err := weeklyNoDays.Validate(); err == nil {
		t.Error("expected error for weekly recurrence without weekdays")
	}

	eventRecurring := Reminder{
		Title:      "Birthday party",
		Time:       "15:00",
		Date:       "2026-04-02",
		Category:   constants.CategoryEvent,
		Recurrence: Daily(),
	}
	if err := eventRecurring.Validate(); err == nil {
		t.Error("expected error for event with recurring rule")
	}

	voiceNoDate := Reminder{
		Title:      "Voice message",
		Time:       "10:00",
		Category:   constants.CategoryVoiceNote,
		Recurrence: Once(),
	}
	if err := voiceNoDate.Validate(); err == nil {
		t.Error("expected error for voice note without date")
	}
}
