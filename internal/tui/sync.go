package tui

import (
	"sync"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/auroracare/aurora-cli/internal/store"
)

// StoreChangedMsg wakes the TUI after a store mutation. It deliberately
// carries no state beyond the change kind: the model re-reads the store's
// accessors when it renders, so the message is only a wake-up signal.
type StoreChangedMsg struct {
	Kind store.ChangeKind
}

// Sync subscribes the Bubble Tea program to store notifications. Change
// callbacks arrive on whatever goroutine mutated the store; Sync coalesces
// them into a single-slot channel that WaitForChange turns back into
// messages on the program's own loop.
type Sync struct {
	ch          chan store.Change
	done        chan struct{}
	unsubscribe func()
	once        sync.Once
}

func NewSync(st *store.Store) *Sync {
	s := &Sync{
		ch:   make(chan store.Change, 1),
		done: make(chan struct{}),
	}
	s.unsubscribe = st.Subscribe(func(c store.Change) {
		// Drop the change when one is already pending: the consumer
		// re-reads everything anyway, so bursts collapse into one wake-up.
		select {
		case s.ch <- c:
		default:
		}
	})
	return s
}

// WaitForChange blocks until the next store change. The model must re-issue
// it after handling each StoreChangedMsg to stay subscribed.
func (s *Sync) WaitForChange() tea.Cmd {
	return func() tea.Msg {
		select {
		case c := <-s.ch:
			return StoreChangedMsg{Kind: c.Kind}
		case <-s.done:
			return nil
		}
	}
}

// Close detaches from the store. Pending waiters return nil.
func (s *Sync) Close() {
	s.once.Do(func() {
		s.unsubscribe()
		close(s.done)
	})
}
