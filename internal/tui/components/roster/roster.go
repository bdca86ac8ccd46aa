package roster

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/auroracare/aurora-cli/internal/models"
)

var (
	headingStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")).
			Bold(true)

	entryStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252"))

	emptyStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			Italic(true)
)

// Model renders the cached elder and collaborator rosters side by side.
// Both lists come from the store wholesale; this component never fetches.
type Model struct {
	elders        []models.Person
	collaborators []models.Person
	width         int
}

func New(width int) Model {
	return Model{width: width}
}

func (m *Model) SetRosters(elders, collaborators []models.Person) {
	m.elders = elders
	m.collaborators = collaborators
}

func (m *Model) SetWidth(width int) {
	m.width = width
}

func (m Model) View() string {
	left := m.renderColumn("Elders", m.elders)
	right := m.renderColumn("Collaborators", m.collaborators)
	return lipgloss.JoinHorizontal(lipgloss.Top, left, "    ", right)
}

func (m Model) renderColumn(title string, people []models.Person) string {
	var b strings.Builder
	b.WriteString(headingStyle.Render(fmt.Sprintf("%s (%d)", title, len(people))))
	b.WriteString("\n\n")

	if len(people) == 0 {
		b.WriteString(emptyStyle.Render("nobody here yet"))
		return b.String()
	}

	for _, p := range people {
		line := "• " + p.Name
		if p.Age > 0 {
			line += fmt.Sprintf(" (%d)", p.Age)
		}
		if p.Email != "" {
			line += "  " + emptyStyle.Render(p.Email)
		}
		b.WriteString(entryStyle.Render(line))
		b.WriteString("\n")
	}
	return b.String()
}
