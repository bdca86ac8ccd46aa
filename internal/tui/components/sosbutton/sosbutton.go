// Package sosbutton implements the gesture-confirmed emergency trigger: a
// draggable handle on a horizontal track. The SOS fires only when the drag
// ends past the activation threshold, so a stray tap can never raise an
// alert, while the whole track stays grabbable for users without fine motor
// precision.
package sosbutton

import (
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/auroracare/aurora-cli/internal/constants"
)

// TriggeredMsg is emitted exactly once per completed gesture past the
// activation threshold.
type TriggeredMsg struct{}

// CooldownMsg re-arms the control after the post-trigger window.
type CooldownMsg struct{}

const handleWidth = 7

var (
	handleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("231")).
			Background(lipgloss.Color("196")).
			Bold(true)

	trackStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")).
			Background(lipgloss.Color("52"))

	sentStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("231")).
			Background(lipgloss.Color("28")).
			Bold(true)
)

type Model struct {
	width int // track width in cells

	// pos is the handle's left offset within the track.
	pos     int
	grabbed bool
	grabX   int
	sent    bool

	// originX/originY place the track on screen for mouse hit-testing.
	originX int
	originY int
}

func New(width int) Model {
	if width < handleWidth*2 {
		width = handleWidth * 2
	}
	return Model{width: width}
}

// SetPosition tells the control where its track starts on screen.
func (m *Model) SetPosition(x, y int) {
	m.originX = x
	m.originY = y
}

func (m *Model) SetWidth(width int) {
	if width >= handleWidth*2 {
		m.width = width
	}
}

// travel is the maximum horizontal displacement available to the handle.
func (m Model) travel() int {
	return m.width - handleWidth
}

// Ratio returns the handle displacement as a fraction of available travel.
func (m Model) Ratio() float64 {
	return float64(m.pos) / float64(m.travel())
}

// Sent reports whether the control is in its post-trigger cool-down.
func (m Model) Sent() bool {
	return m.sent
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.MouseMsg:
		return m.updateMouse(msg)

	case tea.KeyMsg:
		// Keyboard fallback: arrows drag the handle, enter/space lets go.
		if m.sent {
			return m, nil
		}
		switch msg.String() {
		case "right", "l":
			m.pos += 2
			if m.pos > m.travel() {
				m.pos = m.travel()
			}
		case "left", "h":
			m.pos -= 2
			if m.pos < 0 {
				m.pos = 0
			}
		case "enter", " ":
			return m.release()
		case "esc":
			m.pos = 0
		}
		return m, nil

	case CooldownMsg:
		m.sent = false
		m.pos = 0
		return m, nil
	}
	return m, nil
}

func (m Model) updateMouse(msg tea.MouseMsg) (Model, tea.Cmd) {
	if m.sent {
		return m, nil
	}

	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft || msg.Y != m.originY {
			return m, nil
		}
		x := msg.X - m.originX
		// The whole track is grabbable; grabbing outside the handle snaps
		// the handle under the pointer.
		if x < 0 || x >= m.width {
			return m, nil
		}
		m.grabbed = true
		if x >= m.pos && x < m.pos+handleWidth {
			m.grabX = x - m.pos
		} else {
			m.grabX = handleWidth / 2
			m.pos = clamp(x-m.grabX, 0, m.travel())
		}

	case tea.MouseActionMotion:
		if !m.grabbed {
			return m, nil
		}
		m.pos = clamp(msg.X-m.originX-m.grabX, 0, m.travel())

	case tea.MouseActionRelease:
		if !m.grabbed {
			return m, nil
		}
		m.grabbed = false
		return m.release()
	}
	return m, nil
}

// release evaluates the gesture at the moment it ends. At or past the
// threshold the callback fires once and the control enters its cool-down;
// below it the handle simply snaps back.
func (m Model) release() (Model, tea.Cmd) {
	if m.sent {
		return m, nil
	}
	if m.Ratio() >= constants.SOSActivationThreshold {
		m.sent = true
		m.pos = m.travel()
		return m, tea.Batch(
			func() tea.Msg { return TriggeredMsg{} },
			tea.Tick(constants.SOSCooldown, func(time.Time) tea.Msg { return CooldownMsg{} }),
		)
	}
	m.pos = 0
	return m, nil
}

func (m Model) View() string {
	if m.sent {
		label := " SOS sent! "
		pad := m.width - lipgloss.Width(label)
		if pad < 0 {
			pad = 0
		}
		return sentStyle.Render(label + strings.Repeat(" ", pad))
	}

	handle := handleStyle.Render(" !SOS! ")
	left := trackStyle.Render(strings.Repeat("═", m.pos))
	rightWidth := m.travel() - m.pos
	label := " slide to send SOS → "
	var right string
	if rightWidth >= lipgloss.Width(label) {
		right = trackStyle.Render(label + strings.Repeat("═", rightWidth-lipgloss.Width(label)))
	} else {
		right = trackStyle.Render(strings.Repeat("═", rightWidth))
	}
	return left + handle + right
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
