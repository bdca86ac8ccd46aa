package sosbutton

import (
	"sync"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

// collectMsgs runs a command tree and returns every message it produces.
// Tick commands block until they fire, so tests exercising the cool-down
// take a few seconds of wall time.
func collectMsgs(t *testing.T, cmd tea.Cmd) []tea.Msg {
	t.Helper()

	if cmd == nil {
		return nil
	}

	var mu sync.Mutex
	var msgs []tea.Msg
	var wg sync.WaitGroup

	var run func(c tea.Cmd)
	run = func(c tea.Cmd) {
		defer wg.Done()
		msg := c()
		if batch, ok := msg.(tea.BatchMsg); ok {
			for _, inner := range batch {
				if inner == nil {
					continue
				}
				wg.Add(1)
				go run(inner)
			}
			return
		}
		mu.Lock()
		msgs = append(msgs, msg)
		mu.Unlock()
	}

	wg.Add(1)
	run(cmd)
	wg.Wait()
	return msgs
}

func countTriggered(msgs []tea.Msg) int {
	n := 0
	for _, msg := range msgs {
		if _, ok := msg.(TriggeredMsg); ok {
			n++
		}
	}
	return n
}

// drag performs a full mouse gesture ending at the given handle offset.
func drag(m Model, toPos int) (Model, tea.Cmd) {
	press := tea.MouseMsg{X: 3, Y: 0, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft}
	m, _ = m.Update(press)

	motion := tea.MouseMsg{X: toPos + 3, Y: 0, Action: tea.MouseActionMotion}
	m, _ = m.Update(motion)

	release := tea.MouseMsg{X: toPos + 3, Y: 0, Action: tea.MouseActionRelease}
	return m.Update(release)
}

func TestDragBelowThresholdNeverFires(t *testing.T) {
	m := New(107) // travel = 100 cells, one cell per percent

	m, cmd := drag(m, 59)
	if got := countTriggered(collectMsgs(t, cmd)); got != 0 {
		t.Errorf("expected no trigger at 59%%, got %d", got)
	}
	if m.Sent() {
		t.Error("expected control still armed")
	}
	if m.Ratio() != 0 {
		t.Error("expected handle snapped back to rest")
	}
}

func TestDragPastThresholdFiresExactlyOnce(t *testing.T) {
	m := New(107)

	m, cmd := drag(m, 61)
	if got := countTriggered(collectMsgs(t, cmd)); got != 1 {
		t.Errorf("expected exactly one trigger at 61%%, got %d", got)
	}
	if !m.Sent() {
		t.Error("expected control in sent state")
	}
}

func TestCooldownBlocksSecondGesture(t *testing.T) {
	m := New(107)

	m, cmd := drag(m, 90)
	msgs := collectMsgs(t, cmd)
	if countTriggered(msgs) != 1 {
		t.Fatal("expected first gesture to trigger")
	}

	// A second gesture inside the cool-down window must not fire.
	m, cmd = drag(m, 90)
	if got := countTriggered(collectMsgs(t, cmd)); got != 0 {
		t.Errorf("expected no trigger during cool-down, got %d", got)
	}

	// collectMsgs waited for the tick, so the CooldownMsg is among msgs.
	var rearmed bool
	for _, msg := range msgs {
		if _, ok := msg.(CooldownMsg); ok {
			rearmed = true
		}
	}
	if !rearmed {
		t.Fatal("expected a cool-down message after the window")
	}

	m, _ = m.Update(CooldownMsg{})
	if m.Sent() {
		t.Error("expected control re-armed after cool-down")
	}

	m, cmd = drag(m, 90)
	if got := countTriggered(collectMsgs(t, cmd)); got != 1 {
		t.Errorf("expected a new gesture to trigger after cool-down, got %d", got)
	}
}

func TestKeyboardFallback(t *testing.T) {
	m := New(107)

	// 31 right presses move the handle 62 cells, past the threshold.
	for i := 0; i < 31; i++ {
		m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRight})
	}
	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})

	if got := countTriggered(collectMsgs(t, cmd)); got != 1 {
		t.Errorf("expected keyboard gesture to trigger once, got %d", got)
	}
}

func TestKeyboardBelowThresholdResets(t *testing.T) {
	m := New(107)

	for i := 0; i < 10; i++ {
		m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRight})
	}
	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})

	if got := countTriggered(collectMsgs(t, cmd)); got != 0 {
		t.Errorf("expected no trigger below threshold, got %d", got)
	}
	if m.Ratio() != 0 {
		t.Error("expected handle reset")
	}
}

func TestGrabAnywhereOnTrack(t *testing.T) {
	m := New(107)

	// Pressing mid-track snaps the handle under the pointer; releasing
	// past the threshold still counts as a full deliberate gesture.
	press := tea.MouseMsg{X: 50, Y: 0, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft}
	m, _ = m.Update(press)
	motion := tea.MouseMsg{X: 95, Y: 0, Action: tea.MouseActionMotion}
	m, _ = m.Update(motion)
	release := tea.MouseMsg{X: 95, Y: 0, Action: tea.MouseActionRelease}
	m, cmd := m.Update(release)

	if got := countTriggered(collectMsgs(t, cmd)); got != 1 {
		t.Errorf("expected trigger from mid-track grab, got %d", got)
	}
}

func TestPressOffTrackIgnored(t *testing.T) {
	m := New(107)

	press := tea.MouseMsg{X: 3, Y: 5, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft}
	m, _ = m.Update(press)
	release := tea.MouseMsg{X: 100, Y: 5, Action: tea.MouseActionRelease}
	m, cmd := m.Update(release)

	if got := countTriggered(collectMsgs(t, cmd)); got != 0 {
		t.Errorf("expected off-track press ignored, got %d triggers", got)
	}
}
