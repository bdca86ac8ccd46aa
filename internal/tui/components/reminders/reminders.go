package reminders

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/auroracare/aurora-cli/internal/constants"
	"github.com/auroracare/aurora-cli/internal/models"
)

type AddReminderMsg struct{}

// EditReminderMsg asks the parent to open the edit form for a reminder.
type EditReminderMsg struct {
	ID string
}

type DeleteReminderMsg struct {
	ID string
}

type ToggleCompleteMsg struct {
	ID string
}

type Item struct {
	Reminder  models.Reminder
	Completed bool
}

func (i Item) Title() string {
	title := fmt.Sprintf("%s %s at %s", categoryIcon(i.Reminder.Category), i.Reminder.Title, i.Reminder.Time)
	if i.Completed {
		title = "✓ " + title
	}
	return title
}

func (i Item) Description() string {
	return i.Reminder.FormatRecurrence()
}

func (i Item) FilterValue() string { return i.Reminder.Title }

func categoryIcon(category constants.ReminderCategory) string {
	switch category {
	case constants.CategoryMedication:
		return "💊"
	case constants.CategoryMeal:
		return "🍽"
	case constants.CategoryRoutine:
		return "🔁"
	case constants.CategoryEvent:
		return "📅"
	case constants.CategoryVoiceNote:
		return "🎙"
	default:
		return "•"
	}
}

type KeyMap struct {
	Add      key.Binding
	Edit     key.Binding
	Delete   key.Binding
	Complete key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Add: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "add"),
		),
		Edit: key.NewBinding(
			key.WithKeys("e"),
			key.WithHelp("e", "edit"),
		),
		Delete: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "delete"),
		),
		Complete: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "toggle done"),
		),
	}
}

type Model struct {
	list     list.Model
	keys     KeyMap
	editable bool
}

func New(width, height int, editable bool) Model {
	l := list.New(nil, list.NewDefaultDelegate(), width, height)
	l.Title = "Reminders"
	l.SetShowTitle(false)
	l.SetShowHelp(false)

	keys := DefaultKeyMap()
	l.AdditionalShortHelpKeys = func() []key.Binding {
		return []key.Binding{keys.Add, keys.Edit, keys.Delete, keys.Complete}
	}
	l.AdditionalFullHelpKeys = func() []key.Binding {
		return []key.Binding{keys.Add, keys.Edit, keys.Delete, keys.Complete}
	}

	return Model{
		list:     l,
		keys:     keys,
		editable: editable,
	}
}

// SetReminders rebuilds the list items from a fresh store read.
func (m *Model) SetReminders(reminders []models.Reminder, completed func(id string) bool) {
	items := make([]list.Item, len(reminders))
	for i, r := range reminders {
		items[i] = Item{Reminder: r, Completed: completed(r.ID)}
	}
	m.list.SetItems(items)
}

// SetEditable controls whether add/delete keys are honored; elders without
// routine-edit permission can still toggle completion.
func (m *Model) SetEditable(editable bool) {
	m.editable = editable
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

		switch {
		case key.Matches(msg, m.keys.Add):
			if m.editable {
				return m, func() tea.Msg { return AddReminderMsg{} }
			}
		case key.Matches(msg, m.keys.Edit):
			if !m.editable {
				break
			}
			if item, ok := m.list.SelectedItem().(Item); ok {
				return m, func() tea.Msg {
					return EditReminderMsg{ID: item.Reminder.ID}
				}
			}
		case key.Matches(msg, m.keys.Delete):
			if !m.editable {
				break
			}
			if item, ok := m.list.SelectedItem().(Item); ok {
				return m, func() tea.Msg {
					return DeleteReminderMsg{ID: item.Reminder.ID}
				}
			}
		case key.Matches(msg, m.keys.Complete):
			if item, ok := m.list.SelectedItem().(Item); ok {
				return m, func() tea.Msg {
					return ToggleCompleteMsg{ID: item.Reminder.ID}
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
