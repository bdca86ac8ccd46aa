package snapshot

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/auroracare/aurora-cli/internal/constants"
	"github.com/auroracare/aurora-cli/internal/models"
)

func newTestCache(t *testing.T) *Cache {
	t.Helper()

	cache := New(filepath.Join(t.TempDir(), "snapshot.db"))
	if err := cache.Init(); err != nil {
		t.Fatalf("failed to init cache: %v", err)
	}
	t.Cleanup(func() { cache.Close() })
	return cache
}

func TestReminderSnapshotRoundTrip(t *testing.T) {
	cache := newTestCache(t)

	reminders := []models.Reminder{
		{
			ID:         "r1",
			Title:      "Take blood-pressure pill",
			Time:       "08:00",
			Category:   constants.CategoryMedication,
			CreatedBy:  constants.RoleFamily,
			Recurrence: models.Weekly(time.Monday, time.Wednesday),
			CreatedAt:  time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC),
		},
		{
			ID:         "r2",
			Title:      "Cardiologist appointment",
			Time:       "14:30",
			Date:       "2026-03-10",
			Category:   constants.CategoryEvent,
			Recurrence: models.Once(),
		},
	}

	if err := cache.SaveReminders(reminders); err != nil {
		t.Fatalf("failed to save: %v", err)
	}

	loaded, err := cache.LoadReminders()
	if err != nil {
		t.Fatalf("failed to load: %v", err)
	}
	if len(loaded) != 2 {
		t.Fatalf("expected 2 reminders, got %d", len(loaded))
	}

	byID := map[string]models.Reminder{}
	for _, r := range loaded {
		byID[r.ID] = r
	}

	weekly := byID["r1"]
	if weekly.Recurrence.Type != constants.RecurrenceWeekly {
		t.Errorf("expected weekly recurrence, got %q", weekly.Recurrence.Type)
	}
	if len(weekly.Recurrence.Weekdays) != 2 || weekly.Recurrence.Weekdays[0] != time.Monday {
		t.Errorf("unexpected weekday set: %v", weekly.Recurrence.Weekdays)
	}

	once := byID["r2"]
	if once.Date != "2026-03-10" {
		t.Errorf("expected anchor date preserved, got %q", once.Date)
	}
}

func TestSaveRemindersReplacesWholesale(t *testing.T) {
	cache := newTestCache(t)

	first := []models.Reminder{{ID: "r1", Title: "Pill", Time: "08:00", Category: constants.CategoryMedication, Recurrence: models.Daily()}}
	second := []models.Reminder{{ID: "r2", Title: "Lunch", Time: "12:00", Category: constants.CategoryMeal, Recurrence: models.Daily()}}

	if err := cache.SaveReminders(first); err != nil {
		t.Fatal(err)
	}
	if err := cache.SaveReminders(second); err != nil {
		t.Fatal(err)
	}

	loaded, err := cache.LoadReminders()
	if err != nil {
		t.Fatal(err)
	}
	if len(loaded) != 1 || loaded[0].ID != "r2" {
		t.Errorf("expected snapshot replaced wholesale, got %+v", loaded)
	}
}

func TestEmergencySnapshotPreservesOrder(t *testing.T) {
	cache := newTestCache(t)

	resolvedAt := time.Date(2026, 3, 9, 18, 0, 0, 0, time.UTC)
	emergencies := []models.Emergency{
		{ID: "e2", ElderID: "elder-1", CreatedAt: time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)},
		{
			ID: "e1", ElderID: "elder-1", CreatedAt: time.Date(2026, 3, 9, 17, 0, 0, 0, time.UTC),
			Resolved: true, ResolvedAt: &resolvedAt, Observation: "false alarm",
		},
	}

	if err := cache.SaveEmergencies(emergencies); err != nil {
		t.Fatalf("failed to save: %v", err)
	}

	loaded, err := cache.LoadEmergencies()
	if err != nil {
		t.Fatalf("failed to load: %v", err)
	}
	if len(loaded) != 2 {
		t.Fatalf("expected 2 emergencies, got %d", len(loaded))
	}
	if loaded[0].ID != "e2" || loaded[1].ID != "e1" {
		t.Error("expected newest-first order preserved")
	}
	if !loaded[1].Resolved || loaded[1].ResolvedAt == nil || !loaded[1].ResolvedAt.Equal(resolvedAt) {
		t.Errorf("expected resolution fields preserved, got %+v", loaded[1])
	}
}
