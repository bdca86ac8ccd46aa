package emergencies

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/auroracare/aurora-cli/internal/constants"
	"github.com/auroracare/aurora-cli/internal/models"
)

// ResolveEmergencyMsg asks the parent to open the resolve flow for an
// unresolved emergency.
type ResolveEmergencyMsg struct {
	ID string
}

type Item struct {
	Emergency models.Emergency
}

func (i Item) Title() string {
	name := i.Emergency.ElderName
	if name == "" {
		name = i.Emergency.ElderID
	}
	if i.Emergency.Resolved {
		return fmt.Sprintf("✓ SOS from %s", name)
	}
	return fmt.Sprintf("🚨 SOS from %s", name)
}

func (i Item) Description() string {
	if i.Emergency.Resolved {
		desc := "resolved"
		if i.Emergency.ResolvedAt != nil {
			desc += " " + i.Emergency.ResolvedAt.Format(constants.DateFormat+" "+constants.TimeFormat)
		}
		if i.Emergency.Observation != "" {
			desc += " — " + i.Emergency.Observation
		}
		return desc
	}
	return "UNRESOLVED — raised " + i.Emergency.CreatedAt.Format(constants.DateFormat+" "+constants.TimeFormat)
}

func (i Item) FilterValue() string { return i.Emergency.ElderName }

type KeyMap struct {
	Resolve key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Resolve: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "resolve"),
		),
	}
}

type Model struct {
	list       list.Model
	keys       KeyMap
	canResolve bool
}

func New(width, height int, canResolve bool) Model {
	l := list.New(nil, list.NewDefaultDelegate(), width, height)
	l.Title = "Emergencies"
	l.SetShowTitle(false)
	l.SetShowHelp(false)

	keys := DefaultKeyMap()
	l.AdditionalShortHelpKeys = func() []key.Binding {
		return []key.Binding{keys.Resolve}
	}
	l.AdditionalFullHelpKeys = func() []key.Binding {
		return []key.Binding{keys.Resolve}
	}

	return Model{
		list:       l,
		keys:       keys,
		canResolve: canResolve,
	}
}

// SetEmergencies rebuilds the list items; the store hands them over newest
// first and that order is kept.
func (m *Model) SetEmergencies(emergencies []models.Emergency) {
	items := make([]list.Item, len(emergencies))
	for i, e := range emergencies {
		items[i] = Item{Emergency: e}
	}
	m.list.SetItems(items)
}

// Filtering reports whether the list is capturing keystrokes for its filter.
func (m Model) Filtering() bool {
	return m.list.FilterState() == list.Filtering
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.list.FilterState() == list.Filtering {
			break
		}

		if key.Matches(msg, m.keys.Resolve) && m.canResolve {
			if item, ok := m.list.SelectedItem().(Item); ok && !item.Emergency.Resolved {
				return m, func() tea.Msg {
					return ResolveEmergencyMsg{ID: item.Emergency.ID}
				}
			}
		}
	}

	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	return m.list.View()
}

func (m *Model) SetSize(width, height int) {
	m.list.SetSize(width, height)
}
