package tui

import (
	"errors"
	"testing"

	"github.com/auroracare/aurora-cli/internal/api"
	"github.com/auroracare/aurora-cli/internal/constants"
	"github.com/auroracare/aurora-cli/internal/models"
	"github.com/auroracare/aurora-cli/internal/push"
	"github.com/auroracare/aurora-cli/internal/store"
	"github.com/auroracare/aurora-cli/internal/tui/components/reminders"
	"github.com/auroracare/aurora-cli/internal/tui/components/sosbutton"
)

func newTestModel(t *testing.T, user *models.SessionUser) (Model, *store.Store) {
	t.Helper()

	st := store.New()
	client := api.NewClient("http://127.0.0.1:0", "test-token")
	listener := push.NewListener(nil, st, nil, func() *models.SessionUser { return nil }, "")
	m := NewModel(st, client, listener, nil, user)
	t.Cleanup(m.sync.Close)
	return m, st
}

func familyUser() *models.SessionUser {
	return &models.SessionUser{
		ID:      "fam-1",
		Name:    "Maria",
		Role:    constants.RoleFamily,
		ElderID: "elder-1",
	}
}

func elderUser() *models.SessionUser {
	return &models.SessionUser{
		ID:   "elder-1",
		Name: "Rosa",
		Role: constants.RoleElder,
	}
}

func TestToggleCompleteIsOptimisticAndRevertsOnFailure(t *testing.T) {
	m, st := newTestModel(t, familyUser())
	r := st.AddReminder(models.Reminder{
		Title:      "Pill",
		Time:       "08:00",
		Category:   constants.CategoryMedication,
		Recurrence: models.Daily(),
	})

	updated, cmd := m.Update(reminders.ToggleCompleteMsg{ID: r.ID})
	m = updated.(Model)
	if !st.IsCompleted(r.ID) {
		t.Fatal("expected completion to apply before the network round-trip")
	}
	if cmd == nil {
		t.Fatal("expected a command carrying the server sync")
	}

	updated, _ = m.Update(reminderCompletedMsg{id: r.ID, err: errors.New("boom")})
	m = updated.(Model)
	if st.IsCompleted(r.ID) {
		t.Error("expected failed sync to revert the completion")
	}
	if m.notice == "" {
		t.Error("expected a notice after the revert")
	}
}

func TestUncheckingStaysLocal(t *testing.T) {
	m, st := newTestModel(t, familyUser())
	r := st.AddReminder(models.Reminder{
		Title:      "Lunch",
		Time:       "12:00",
		Category:   constants.CategoryMeal,
		Recurrence: models.Daily(),
	})
	st.MarkCompleted(r.ID)

	_, cmd := m.Update(reminders.ToggleCompleteMsg{ID: r.ID})
	if st.IsCompleted(r.ID) {
		t.Error("expected toggle to clear the completion")
	}
	if cmd != nil {
		t.Error("expected no server call when un-checking")
	}
}

func TestSOSTriggerInsertsOptimisticEmergency(t *testing.T) {
	m, st := newTestModel(t, elderUser())

	_, cmd := m.Update(sosbutton.TriggeredMsg{})
	if cmd == nil {
		t.Fatal("expected a command carrying the SOS request")
	}

	list := st.Emergencies()
	if len(list) != 1 {
		t.Fatalf("expected 1 emergency, got %d", len(list))
	}
	if list[0].ElderID != "elder-1" {
		t.Errorf("unexpected elder id: %s", list[0].ElderID)
	}
	if list[0].Resolved {
		t.Error("optimistic emergency must start unresolved")
	}
}

func TestSOSFailureKeepsLocalEntryAndWarns(t *testing.T) {
	m, st := newTestModel(t, elderUser())

	updated, _ := m.Update(sosbutton.TriggeredMsg{})
	m = updated.(Model)
	updated, _ = m.Update(sosSentMsg{err: errors.New("network down")})
	m = updated.(Model)

	if len(st.Emergencies()) != 1 {
		t.Error("local emergency must survive a failed SOS upload")
	}
	if m.notice == "" {
		t.Error("expected a notice pointing at the fallback contact")
	}
}

func TestFetchedRemindersReplaceStoreAndMarkCompletions(t *testing.T) {
	m, st := newTestModel(t, familyUser())

	fetched := []models.Reminder{
		{ID: "r1", Title: "Pill", Time: "08:00", Category: constants.CategoryMedication, Recurrence: models.Daily()},
		{ID: "r2", Title: "Walk", Time: "17:00", Category: constants.CategoryRoutine, Recurrence: models.Daily()},
	}
	m.Update(remindersFetchedMsg{reminders: fetched, completed: []string{"r2"}})

	if got := len(st.Reminders()); got != 2 {
		t.Fatalf("expected 2 reminders, got %d", got)
	}
	if st.IsCompleted("r1") {
		t.Error("r1 should not be completed")
	}
	if !st.IsCompleted("r2") {
		t.Error("r2 should carry the server's completion")
	}
}

func TestSubmittedReminderCarriesCreatorRole(t *testing.T) {
	m, st := newTestModel(t, familyUser())

	m.openAddReminderForm()
	m.reminderForm.Title = "Evening pill"
	m.reminderForm.Time = "20:00"

	updated, cmd := m.submitForm()
	m = updated.(Model)
	if cmd == nil {
		t.Fatal("expected a command carrying the create request")
	}

	list := st.Reminders()
	if len(list) != 1 {
		t.Fatalf("expected 1 reminder, got %d", len(list))
	}
	if list[0].CreatedBy != constants.RoleFamily {
		t.Errorf("expected creator role %q, got %q", constants.RoleFamily, list[0].CreatedBy)
	}
}

func TestEditReminderAppliesChangesBeforeServerAck(t *testing.T) {
	m, st := newTestModel(t, familyUser())
	r := st.AddReminder(models.Reminder{
		Title:      "Pill",
		Time:       "08:00",
		Category:   constants.CategoryMedication,
		Recurrence: models.Daily(),
	})

	m.openEditReminderForm(r.ID)
	if m.state != constants.StateEditReminder {
		t.Fatalf("expected edit state, got %v", m.state)
	}
	if m.reminderForm.Title != "Pill" {
		t.Fatalf("expected pre-filled title, got %q", m.reminderForm.Title)
	}

	m.reminderForm.Title = "Morning pill"
	m.reminderForm.Time = "09:00"
	updated, cmd := m.submitForm()
	m = updated.(Model)
	if cmd == nil {
		t.Fatal("expected a command carrying the update request")
	}

	list := st.Reminders()
	if list[0].Title != "Morning pill" || list[0].Time != "09:00" {
		t.Errorf("expected edit to apply before the network round-trip, got %+v", list[0])
	}

	updated, cmd = m.Update(reminderUpdatedMsg{id: r.ID, err: errors.New("boom")})
	m = updated.(Model)
	if m.notice == "" {
		t.Error("expected a notice after a failed update")
	}
	if cmd == nil {
		t.Error("expected a refetch after a failed update")
	}
}

func TestEditUnknownReminderIsNoOp(t *testing.T) {
	m, _ := newTestModel(t, familyUser())

	if cmd := m.openEditReminderForm("missing"); cmd != nil {
		t.Error("expected no command for an unknown id")
	}
	if m.state != constants.StateDashboard {
		t.Errorf("expected state to stay put, got %v", m.state)
	}
}

func TestTabsFollowRole(t *testing.T) {
	elder, _ := newTestModel(t, elderUser())
	for _, tab := range elder.tabs() {
		if tab == constants.StateEmergencies || tab == constants.StateRoster {
			t.Errorf("elder should not see tab %v", tab)
		}
	}

	admin, _ := newTestModel(t, &models.SessionUser{ID: "a", Name: "Ana", Role: constants.RoleAdmin})
	found := false
	for _, tab := range admin.tabs() {
		if tab == constants.StateRoster {
			found = true
		}
	}
	if !found {
		t.Error("admin should see the roster tab")
	}
}

func TestElderEditabilityFollowsPreferences(t *testing.T) {
	m, st := newTestModel(t, elderUser())
	if m.editable() {
		t.Fatal("elder must start read-only")
	}

	v := true
	st.UpdatePreferences(store.PreferencesPatch{ElderCanEditRoutine: &v})
	if !m.editable() {
		t.Error("granting routine editing should make the elder's list editable")
	}
}

func TestCycleTabWraps(t *testing.T) {
	m, _ := newTestModel(t, familyUser())

	tabs := m.tabs()
	for range tabs {
		m.cycleTab(1)
	}
	if m.state != constants.StateDashboard {
		t.Errorf("expected to wrap back to the dashboard, got %v", m.state)
	}

	m.cycleTab(-1)
	if m.state != tabs[len(tabs)-1] {
		t.Errorf("expected reverse wrap to the last tab, got %v", m.state)
	}
}
