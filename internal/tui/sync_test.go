package tui

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/auroracare/aurora-cli/internal/constants"
	"github.com/auroracare/aurora-cli/internal/models"
	"github.com/auroracare/aurora-cli/internal/store"
)

func runCmd(t *testing.T, cmd tea.Cmd, timeout time.Duration) tea.Msg {
	t.Helper()

	result := make(chan tea.Msg, 1)
	go func() { result <- cmd() }()

	select {
	case msg := <-result:
		return msg
	case <-time.After(timeout):
		t.Fatal("timed out waiting for command")
		return nil
	}
}

func TestWaitForChangeDeliversWakeUp(t *testing.T) {
	st := store.New()
	s := NewSync(st)
	defer s.Close()

	go st.AddReminder(models.Reminder{
		Title:      "Pill",
		Time:       "08:00",
		Category:   constants.CategoryMedication,
		Recurrence: models.Daily(),
	})

	msg := runCmd(t, s.WaitForChange(), 2*time.Second)
	changed, ok := msg.(StoreChangedMsg)
	if !ok {
		t.Fatalf("expected StoreChangedMsg, got %T", msg)
	}
	if changed.Kind != store.ChangeReminders {
		t.Errorf("unexpected change kind: %s", changed.Kind)
	}
}

func TestBurstsCoalesce(t *testing.T) {
	st := store.New()
	s := NewSync(st)
	defer s.Close()

	// Several mutations before anyone waits collapse into at most two
	// wake-ups: the buffered one and possibly one mid-flight.
	for i := 0; i < 10; i++ {
		st.AddEmergency(models.Emergency{ElderID: "elder-1"})
	}

	msg := runCmd(t, s.WaitForChange(), 2*time.Second)
	if _, ok := msg.(StoreChangedMsg); !ok {
		t.Fatalf("expected StoreChangedMsg, got %T", msg)
	}

	// The channel holds at most one more pending change.
	pending := 0
	for {
		select {
		case <-s.ch:
			pending++
			continue
		default:
		}
		break
	}
	if pending > 1 {
		t.Errorf("expected coalesced notifications, found %d pending", pending)
	}
}

func TestCloseUnblocksWaiter(t *testing.T) {
	st := store.New()
	s := NewSync(st)

	done := make(chan tea.Msg, 1)
	go func() { done <- s.WaitForChange()() }()

	s.Close()

	select {
	case msg := <-done:
		if msg != nil {
			t.Errorf("expected nil message on close, got %v", msg)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("waiter not released on close")
	}

	// Mutations after close stay silent.
	st.AddEmergency(models.Emergency{ElderID: "elder-1"})
	select {
	case c := <-s.ch:
		t.Errorf("expected no notification after close, got %v", c)
	default:
	}

	// Closing twice is harmless.
	s.Close()
}
