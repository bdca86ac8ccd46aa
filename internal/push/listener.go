package push

import (
	"context"
	"sync"

	"github.com/auroracare/aurora-cli/internal/audio"
	"github.com/auroracare/aurora-cli/internal/logger"
	"github.com/auroracare/aurora-cli/internal/models"
	"github.com/auroracare/aurora-cli/internal/store"
)

// State is the listener's connection/alert state.
type State int

const (
	// Disconnected: no session, or the channel was never joined.
	Disconnected State = iota
	// ConnectedIdle: joined and waiting for events.
	ConnectedIdle
	// Alerting: an emergency is being displayed until dismissed.
	Alerting
)

// Listener is the singleton bridge from the push channel to the store and
// the alarm. It owns the audio resource exclusively; dismissing the alarm
// never resolves the emergency in the store.
type Listener struct {
	channel   Channel
	store     *store.Store
	player    audio.Player
	sessionFn func() *models.SessionUser
	soundPath string

	mu      sync.Mutex
	state   State
	current *EmergencyEvent
	muted   bool
	onAlert func()

	cancel context.CancelFunc
}

func NewListener(ch Channel, st *store.Store, player audio.Player, sessionFn func() *models.SessionUser, soundPath string) *Listener {
	return &Listener{
		channel:   ch,
		store:     st,
		player:    player,
		sessionFn: sessionFn,
		soundPath: soundPath,
		state:     Disconnected,
	}
}

// SetOnAlert registers a callback fired after each received event, once the
// store write and audio attempt are done. The TUI uses it as a wake-up.
func (l *Listener) SetOnAlert(fn func()) {
	l.mu.Lock()
	l.onAlert = fn
	l.mu.Unlock()
}

// Start joins the channel group keyed by the current user's identity. With
// no session it stays Disconnected and returns nil: unauthenticated is the
// expected state, not an error.
func (l *Listener) Start(ctx context.Context) error {
	user := l.sessionFn()
	if user == nil {
		logger.Debug("no session, push listener staying disconnected")
		return nil
	}

	if err := l.channel.Connect(ctx); err != nil {
		return err
	}
	if err := l.channel.Join(ctx, user.ID); err != nil {
		return err
	}

	if err := l.player.Load(l.soundPath); err != nil {
		// Audio is best-effort; the visual alert carries the alarm.
		logger.Warn("alarm sound unavailable", "error", err)
	}

	ctx, cancel := context.WithCancel(ctx)
	l.mu.Lock()
	l.cancel = cancel
	l.state = ConnectedIdle
	l.mu.Unlock()

	go l.loop(ctx)
	return nil
}

func (l *Listener) loop(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-l.channel.Events():
			if !ok {
				return
			}
			l.handle(event)
		}
	}
}

func (l *Listener) handle(event EmergencyEvent) {
	logger.Info("emergency received", "id", event.ID, "elder", event.ElderID)

	l.store.AddEmergency(models.Emergency{
		ID:        event.ID,
		ElderID:   event.ElderID,
		ElderName: event.ElderName,
		Contact:   event.Contact,
	})

	// Restart the alarm from the beginning for each event.
	l.player.Rewind()
	playErr := l.player.Play()

	l.mu.Lock()
	// A new event while already alerting replaces the displayed payload;
	// the store keeps every event.
	l.current = &event
	l.state = Alerting
	l.muted = playErr != nil
	notify := l.onAlert
	l.mu.Unlock()

	if playErr != nil {
		logger.Warn("alarm audio blocked, showing muted alert", "error", playErr)
	}
	if notify != nil {
		notify()
	}
}

// Dismiss stops the audio and clears the displayed alert. The emergency
// stays unresolved in the store; resolution is a separate action on the
// emergency screen.
func (l *Listener) Dismiss() {
	l.mu.Lock()
	if l.state != Alerting {
		l.mu.Unlock()
		return
	}
	l.current = nil
	l.state = ConnectedIdle
	l.mu.Unlock()

	l.player.Pause()
}

// Unmute retries audio playback after it was blocked on alert.
func (l *Listener) Unmute() {
	err := l.player.Play()

	l.mu.Lock()
	l.muted = err != nil
	l.mu.Unlock()

	if err != nil {
		logger.Warn("alarm audio still blocked", "error", err)
	}
}

// Stop leaves the channel and releases the audio resource.
func (l *Listener) Stop() {
	l.mu.Lock()
	cancel := l.cancel
	l.cancel = nil
	l.current = nil
	l.state = Disconnected
	l.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	l.player.Pause()
	if err := l.channel.Close(); err != nil {
		logger.Warn("push channel close failed", "error", err)
	}
}

// State returns the listener state.
func (l *Listener) State() State {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.state
}

// Current returns the displayed alert payload while alerting.
func (l *Listener) Current() (EmergencyEvent, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.current == nil {
		return EmergencyEvent{}, false
	}
	return *l.current, true
}

// Muted reports whether the alarm is showing without sound.
func (l *Listener) Muted() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.muted
}
