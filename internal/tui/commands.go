package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/auroracare/aurora-cli/internal/constants"
	"github.com/auroracare/aurora-cli/internal/logger"
	"github.com/auroracare/aurora-cli/internal/models"
)

type pollTickMsg time.Time

type remindersFetchedMsg struct {
	reminders []models.Reminder
	completed []string
	err       error
}

type emergenciesFetchedMsg struct {
	emergencies []models.Emergency
	err         error
}

type rostersFetchedMsg struct {
	elders        []models.Person
	collaborators []models.Person
	err           error
}

type reminderCreatedMsg struct {
	localID string
	created models.Reminder
	err     error
}

type reminderUpdatedMsg struct {
	id  string
	err error
}

type reminderCompletedMsg struct {
	id  string
	err error
}

type reminderDeletedMsg struct {
	id  string
	err error
}

type emergencyResolvedMsg struct {
	id  string
	err error
}

type sosSentMsg struct {
	emergency models.Emergency
	err       error
}

func (m Model) pollTick() tea.Cmd {
	return tea.Tick(constants.ReminderRefreshInterval, func(t time.Time) tea.Msg {
		return pollTickMsg(t)
	})
}

func (m Model) fetchReminders() tea.Cmd {
	elderID := m.user.SOSElderID()
	return func() tea.Msg {
		list, completed, err := m.client.DailyReminders(context.Background(), elderID)
		return remindersFetchedMsg{reminders: list, completed: completed, err: err}
	}
}

func (m Model) fetchEmergencies() tea.Cmd {
	return func() tea.Msg {
		list, err := m.client.Emergencies(context.Background())
		return emergenciesFetchedMsg{emergencies: list, err: err}
	}
}

func (m Model) fetchRosters() tea.Cmd {
	return func() tea.Msg {
		elders, err := m.client.Elders(context.Background())
		if err != nil {
			return rostersFetchedMsg{err: err}
		}
		collaborators, err := m.client.Collaborators(context.Background())
		if err != nil {
			return rostersFetchedMsg{err: err}
		}
		return rostersFetchedMsg{elders: elders, collaborators: collaborators}
	}
}

func (m Model) createReminder(localID string, r models.Reminder) tea.Cmd {
	elderID := m.user.SOSElderID()
	return func() tea.Msg {
		created, err := m.client.CreateReminder(context.Background(), elderID, r)
		return reminderCreatedMsg{localID: localID, created: created, err: err}
	}
}

func (m Model) updateReminder(id string, r models.Reminder) tea.Cmd {
	return func() tea.Msg {
		err := m.client.UpdateReminder(context.Background(), id, r)
		return reminderUpdatedMsg{id: id, err: err}
	}
}

func (m Model) completeReminder(id string) tea.Cmd {
	return func() tea.Msg {
		err := m.client.CompleteReminder(context.Background(), id)
		return reminderCompletedMsg{id: id, err: err}
	}
}

func (m Model) deleteReminder(id string) tea.Cmd {
	return func() tea.Msg {
		err := m.client.DeleteReminder(context.Background(), id)
		return reminderDeletedMsg{id: id, err: err}
	}
}

func (m Model) resolveEmergency(id, observation string) tea.Cmd {
	return func() tea.Msg {
		err := m.client.ResolveEmergency(context.Background(), id, observation)
		return emergencyResolvedMsg{id: id, err: err}
	}
}

// saveSnapshot persists the store's reminders and emergencies to the offline
// cache. Best-effort: a cache failure only logs.
func (m Model) saveSnapshot() tea.Cmd {
	if m.cache == nil {
		return nil
	}
	st := m.store
	cache := m.cache
	return func() tea.Msg {
		if err := cache.SaveReminders(st.Reminders()); err != nil {
			logger.Warn("snapshot save failed", "table", "reminders", "error", err)
		}
		if err := cache.SaveEmergencies(st.Emergencies()); err != nil {
			logger.Warn("snapshot save failed", "table", "emergencies", "error", err)
		}
		return nil
	}
}

func (m Model) triggerSOS() tea.Cmd {
	return func() tea.Msg {
		e, err := m.client.TriggerSOS(context.Background())
		return sosSentMsg{emergency: e, err: err}
	}
}
