// Package tui is the interactive caregiving dashboard. It renders whatever
// the shared store currently holds and never caches domain state of its own:
// every mutation goes through the store, and the store's change
// notifications are the only thing that wakes the view.
package tui

import (
	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/auroracare/aurora-cli/internal/api"
	"github.com/auroracare/aurora-cli/internal/constants"
	"github.com/auroracare/aurora-cli/internal/models"
	"github.com/auroracare/aurora-cli/internal/push"
	"github.com/auroracare/aurora-cli/internal/snapshot"
	"github.com/auroracare/aurora-cli/internal/store"
	"github.com/auroracare/aurora-cli/internal/tui/components/emergencies"
	"github.com/auroracare/aurora-cli/internal/tui/components/reminders"
	"github.com/auroracare/aurora-cli/internal/tui/components/roster"
	"github.com/auroracare/aurora-cli/internal/tui/components/sosbutton"
)

type reminderFormValues struct {
	Title      string
	Time       string
	Date       string
	Category   constants.ReminderCategory
	Recurrence constants.RecurrenceType
	Weekdays   string
}

type resolveFormValues struct {
	Observation string
}

type deleteFormValues struct {
	Confirmed bool
}

type Model struct {
	store    *store.Store
	client   *api.Client
	listener *push.Listener
	sync     *Sync
	cache    *snapshot.Cache
	user     *models.SessionUser

	state    constants.SessionState
	previous constants.SessionState

	keys KeyMap
	help help.Model

	remindersList   reminders.Model
	emergenciesList emergencies.Model
	rosterView      roster.Model
	sosSlider       sosbutton.Model

	form         *huh.Form
	reminderForm *reminderFormValues
	resolveForm  *resolveFormValues
	deleteForm   *deleteFormValues
	resolveID    string
	deleteID     string
	editID       string

	notice   string
	width    int
	height   int
	quitting bool
}

func NewModel(st *store.Store, client *api.Client, listener *push.Listener, cache *snapshot.Cache, user *models.SessionUser) Model {
	m := Model{
		store:    st,
		client:   client,
		listener: listener,
		sync:     NewSync(st),
		cache:    cache,
		user:     user,
		state:    constants.StateDashboard,
		keys:     DefaultKeyMap(),
		help:     help.New(),
	}

	m.remindersList = reminders.New(80, 20, m.editable())
	m.emergenciesList = emergencies.New(80, 20, user.CanResolve())
	m.rosterView = roster.New(80)
	m.sosSlider = sosbutton.New(60)

	m.syncComponents()
	return m
}

// editable reports whether the signed-in user may add or delete reminders.
// Elders are read-only unless their caregivers granted routine editing.
func (m Model) editable() bool {
	if !m.user.IsElder() {
		return true
	}
	return m.store.Preferences().ElderCanEditRoutine
}

// tabs returns the screens available to the signed-in user's role.
func (m Model) tabs() []constants.SessionState {
	if m.user.IsElder() {
		return []constants.SessionState{
			constants.StateDashboard,
			constants.StateReminders,
			constants.StateSettings,
		}
	}
	tabs := []constants.SessionState{
		constants.StateDashboard,
		constants.StateReminders,
		constants.StateEmergencies,
	}
	if m.user.Role == constants.RoleAdmin || m.user.Role == constants.RoleFamily {
		tabs = append(tabs, constants.StateRoster)
	}
	return append(tabs, constants.StateSettings)
}

func tabLabel(state constants.SessionState) string {
	switch state {
	case constants.StateDashboard:
		return "Dashboard"
	case constants.StateReminders:
		return "Reminders"
	case constants.StateEmergencies:
		return "Emergencies"
	case constants.StateRoster:
		return "People"
	case constants.StateSettings:
		return "Settings"
	default:
		return ""
	}
}

// syncComponents re-reads the store into every component. Called after each
// store change notification so the view always reflects the latest state.
func (m *Model) syncComponents() {
	m.remindersList.SetReminders(m.store.Reminders(), m.store.IsCompleted)
	m.remindersList.SetEditable(m.editable())
	m.emergenciesList.SetEmergencies(m.store.Emergencies())
	m.rosterView.SetRosters(m.store.Elders(), m.store.Collaborators())
}

func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{
		m.sync.WaitForChange(),
		m.fetchReminders(),
		m.fetchEmergencies(),
		m.pollTick(),
	}
	if m.user.Role == constants.RoleAdmin || m.user.Role == constants.RoleFamily {
		cmds = append(cmds, m.fetchRosters())
	}
	return tea.Batch(cmds...)
}
