package tui

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/auroracare/aurora-cli/internal/constants"
	"github.com/auroracare/aurora-cli/internal/logger"
	"github.com/auroracare/aurora-cli/internal/models"
	"github.com/auroracare/aurora-cli/internal/push"
	"github.com/auroracare/aurora-cli/internal/store"
	"github.com/auroracare/aurora-cli/internal/tui/components/emergencies"
	"github.com/auroracare/aurora-cli/internal/tui/components/reminders"
	"github.com/auroracare/aurora-cli/internal/tui/components/sosbutton"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	// While an alarm is on screen it owns all input. Background messages
	// (fetch results, store wake-ups) still flow so the store stays fresh.
	switch msg.(type) {
	case tea.KeyMsg, tea.MouseMsg:
		if m.listener.State() == push.Alerting {
			return m.updateAlarm(msg)
		}
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width

		contentW := msg.Width - 4
		contentH := msg.Height - 8
		if contentH < 5 {
			contentH = 5
		}
		m.remindersList.SetSize(contentW, contentH)
		m.emergenciesList.SetSize(contentW, contentH)
		m.rosterView.SetWidth(contentW)
		m.sosSlider.SetWidth(msg.Width - 8)
		m.sosSlider.SetPosition(2, msg.Height-3)
		return m, nil

	case StoreChangedMsg:
		m.syncComponents()
		cmds := []tea.Cmd{m.sync.WaitForChange()}
		if msg.Kind == store.ChangeReminders || msg.Kind == store.ChangeEmergencies {
			cmds = append(cmds, m.saveSnapshot())
		}
		return m, tea.Batch(cmds...)

	case pollTickMsg:
		return m, tea.Batch(m.fetchReminders(), m.fetchEmergencies(), m.pollTick())

	case remindersFetchedMsg:
		if msg.err != nil {
			logger.Warn("reminder fetch failed", "error", msg.err)
			m.notice = "offline — showing cached reminders"
			if m.cache != nil && len(m.store.Reminders()) == 0 {
				if cached, err := m.cache.LoadReminders(); err == nil && len(cached) > 0 {
					m.store.SetReminders(cached)
				}
			}
			return m, nil
		}
		m.notice = ""
		m.store.SetReminders(msg.reminders)
		for _, id := range msg.completed {
			m.store.MarkCompleted(id)
		}
		return m, nil

	case emergenciesFetchedMsg:
		if msg.err != nil {
			logger.Warn("emergency fetch failed", "error", msg.err)
			if m.cache != nil && len(m.store.Emergencies()) == 0 {
				if cached, err := m.cache.LoadEmergencies(); err == nil && len(cached) > 0 {
					m.store.SetEmergencies(cached)
				}
			}
			return m, nil
		}
		m.store.SetEmergencies(msg.emergencies)
		return m, nil

	case rostersFetchedMsg:
		if msg.err != nil {
			logger.Warn("roster fetch failed", "error", msg.err)
			return m, nil
		}
		m.store.SetElders(msg.elders)
		m.store.SetCollaborators(msg.collaborators)
		return m, nil

	case reminderCreatedMsg:
		if msg.err != nil {
			// Roll the optimistic insert back and tell the user.
			m.store.DeleteReminder(msg.localID)
			m.notice = "could not save reminder: " + msg.err.Error()
			return m, nil
		}
		if msg.created.ID != "" && msg.created.ID != msg.localID {
			// Swap the locally assigned id for the server's.
			m.store.DeleteReminder(msg.localID)
			m.store.AddReminder(msg.created)
		}
		return m, nil

	case reminderUpdatedMsg:
		if msg.err != nil {
			// Take the server's version back rather than guessing at a revert.
			m.notice = "could not save changes, refreshing"
			return m, m.fetchReminders()
		}
		return m, nil

	case reminderCompletedMsg:
		if msg.err != nil {
			m.store.ToggleCompleted(msg.id)
			m.notice = "could not sync completion, reverted"
		}
		return m, nil

	case reminderDeletedMsg:
		if msg.err != nil {
			m.notice = "could not delete reminder, refreshing"
			return m, m.fetchReminders()
		}
		return m, nil

	case emergencyResolvedMsg:
		if msg.err != nil {
			m.notice = "could not resolve emergency, refreshing"
			return m, m.fetchEmergencies()
		}
		return m, nil

	case sosSentMsg:
		if msg.err != nil {
			logger.Error("SOS did not reach the server", "error", msg.err)
			m.notice = "SOS failed — call " + constants.DefaultEmergencyContact + " directly"
			return m, nil
		}
		// Replace the optimistic entry with server truth.
		return m, m.fetchEmergencies()

	case reminders.AddReminderMsg:
		cmd := m.openAddReminderForm()
		return m, cmd

	case reminders.EditReminderMsg:
		cmd := m.openEditReminderForm(msg.ID)
		return m, cmd

	case reminders.DeleteReminderMsg:
		cmd := m.openDeleteConfirm(msg.ID)
		return m, cmd

	case reminders.ToggleCompleteMsg:
		wasDone := m.store.IsCompleted(msg.ID)
		m.store.ToggleCompleted(msg.ID)
		if wasDone {
			// Un-checking is a local affordance; the server only records
			// completions.
			return m, nil
		}
		m.store.AddActivity(models.Activity{
			ID:        msg.ID,
			User:      m.user.Name,
			Action:    "completed a reminder",
			Timestamp: time.Now(),
		})
		return m, m.completeReminder(msg.ID)

	case emergencies.ResolveEmergencyMsg:
		cmd := m.openResolveForm(msg.ID)
		return m, cmd

	case sosbutton.TriggeredMsg:
		m.store.AddEmergency(models.Emergency{
			ElderID:   m.user.SOSElderID(),
			ElderName: m.user.Name,
		})
		return m, m.triggerSOS()

	case sosbutton.CooldownMsg:
		var cmd tea.Cmd
		m.sosSlider, cmd = m.sosSlider.Update(msg)
		return m, cmd
	}

	if m.inForm() {
		return m.updateForm(msg)
	}

	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		return m.updateKeys(keyMsg)
	}
	if mouseMsg, ok := msg.(tea.MouseMsg); ok {
		if m.state == constants.StateDashboard && m.showSOS() {
			var cmd tea.Cmd
			m.sosSlider, cmd = m.sosSlider.Update(mouseMsg)
			return m, cmd
		}
		return m, nil
	}

	return m.updateActive(msg)
}

func (m Model) updateAlarm(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch keyMsg.String() {
	case "ctrl+c":
		return m.quit()
	case "esc":
		m.listener.Dismiss()
	case "m":
		m.listener.Unmute()
	}
	return m, nil
}

func (m Model) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	f, cmd := m.form.Update(msg)
	if form, ok := f.(*huh.Form); ok {
		m.form = form
	}

	switch m.form.State {
	case huh.StateCompleted:
		return m.submitForm()
	case huh.StateAborted:
		m.closeForm()
		return m, nil
	}
	return m, cmd
}

func (m Model) submitForm() (tea.Model, tea.Cmd) {
	switch m.state {
	case constants.StateAddReminder:
		r, err := m.reminderForm.reminder()
		m.closeForm()
		if err != nil {
			m.notice = err.Error()
			return m, nil
		}
		if r.Category == constants.CategoryVoiceNote && !m.store.CanAddVoiceReminder() {
			m.notice = fmt.Sprintf("voice reminder limit reached (%d)", constants.MaxVoiceReminders)
			return m, nil
		}
		r.CreatedBy = m.user.Role
		local := m.store.AddReminder(r)
		m.store.AddActivity(models.Activity{
			ID:        local.ID,
			User:      m.user.Name,
			Action:    "added reminder " + local.Title,
			Timestamp: time.Now(),
		})
		return m, m.createReminder(local.ID, local)

	case constants.StateEditReminder:
		id := m.editID
		r, err := m.reminderForm.reminder()
		m.closeForm()
		if err != nil {
			m.notice = err.Error()
			return m, nil
		}
		m.store.UpdateReminder(id, store.ReminderPatch{
			Title:      &r.Title,
			Time:       &r.Time,
			Date:       &r.Date,
			Category:   &r.Category,
			Recurrence: &r.Recurrence,
		})
		m.store.AddActivity(models.Activity{
			ID:        id,
			User:      m.user.Name,
			Action:    "updated reminder " + r.Title,
			Timestamp: time.Now(),
		})
		return m, m.updateReminder(id, r)

	case constants.StateConfirmDelete:
		id := m.deleteID
		confirmed := m.deleteForm.Confirmed
		m.closeForm()
		if !confirmed {
			return m, nil
		}
		m.store.DeleteReminder(id)
		return m, m.deleteReminder(id)

	case constants.StateResolveEmergency:
		id := m.resolveID
		observation := m.resolveForm.Observation
		m.closeForm()
		m.store.ResolveEmergency(id, observation)
		m.store.AddActivity(models.Activity{
			ID:        id,
			User:      m.user.Name,
			Action:    "resolved an emergency",
			Timestamp: time.Now(),
		})
		return m, m.resolveEmergency(id, observation)
	}

	m.closeForm()
	return m, nil
}

func (m Model) updateKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	filtering := (m.state == constants.StateReminders && m.remindersList.Filtering()) ||
		(m.state == constants.StateEmergencies && m.emergenciesList.Filtering())

	if !filtering {
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m.quit()
		case key.Matches(msg, m.keys.Tab):
			m.cycleTab(1)
			return m, nil
		case key.Matches(msg, m.keys.ShiftTab):
			m.cycleTab(-1)
			return m, nil
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
			return m, nil
		}
	}

	switch m.state {
	case constants.StateDashboard:
		if m.showSOS() {
			var cmd tea.Cmd
			m.sosSlider, cmd = m.sosSlider.Update(msg)
			return m, cmd
		}
		return m, nil

	case constants.StateSettings:
		return m.updateSettings(msg)
	}

	return m.updateActive(msg)
}

func (m Model) updateSettings(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.user.IsElder() {
		return m, nil
	}
	switch msg.String() {
	case "e":
		v := !m.store.Preferences().EmergencyButtonEnabled
		m.store.UpdatePreferences(store.PreferencesPatch{EmergencyButtonEnabled: &v})
	case "r":
		v := !m.store.Preferences().ElderCanEditRoutine
		m.store.UpdatePreferences(store.PreferencesPatch{ElderCanEditRoutine: &v})
	}
	return m, nil
}

func (m Model) updateActive(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.state {
	case constants.StateReminders:
		m.remindersList, cmd = m.remindersList.Update(msg)
	case constants.StateEmergencies:
		m.emergenciesList, cmd = m.emergenciesList.Update(msg)
	}
	return m, cmd
}

// showSOS reports whether the dashboard renders the slide-to-send control.
func (m Model) showSOS() bool {
	return m.user.IsElder() && m.store.Preferences().EmergencyButtonEnabled
}

func (m *Model) cycleTab(direction int) {
	tabs := m.tabs()
	current := 0
	for i, s := range tabs {
		if s == m.state {
			current = i
			break
		}
	}
	next := (current + direction + len(tabs)) % len(tabs)
	m.state = tabs[next]
	m.notice = ""
}

func (m Model) quit() (tea.Model, tea.Cmd) {
	m.quitting = true
	m.sync.Close()
	m.listener.Stop()
	return m, tea.Quit
}
