// Package audio wraps the system audio player used for the emergency alarm.
// Playback failure is always recoverable: the caller keeps the visual alert
// up and offers a manual retry.
package audio

import (
	"fmt"
	"os"
	"os/exec"
	"sync"

	"github.com/auroracare/aurora-cli/internal/logger"
)

// Player is the playback primitive the emergency listener owns. Play returns
// an error when playback cannot start; the alert must still surface visually.
type Player interface {
	Load(source string) error
	Play() error
	Pause()
	Rewind()
}

// playerBinaries are tried in order; the first one on PATH wins.
var playerBinaries = []string{"paplay", "aplay", "afplay", "mpg123", "ffplay"}

var lookPathFunc = exec.LookPath

// ExecPlayer loops a sound file through whichever system player is
// installed. Each playback run starts from the beginning of the file.
type ExecPlayer struct {
	mu      sync.Mutex
	source  string
	bin     string
	playing bool
	stop    chan struct{}
}

func NewExecPlayer() *ExecPlayer {
	return &ExecPlayer{}
}

func (p *ExecPlayer) Load(source string) error {
	if _, err := os.Stat(source); err != nil {
		return fmt.Errorf("alarm sound not found: %w", err)
	}

	bin := ""
	for _, candidate := range playerBinaries {
		if path, err := lookPathFunc(candidate); err == nil {
			bin = path
			break
		}
	}
	if bin == "" {
		return fmt.Errorf("no audio player found on PATH (tried %v)", playerBinaries)
	}

	p.mu.Lock()
	p.source = source
	p.bin = bin
	p.mu.Unlock()
	return nil
}

// Play starts looping playback. Calling Play while already playing restarts
// from the beginning.
func (p *ExecPlayer) Play() error {
	p.mu.Lock()
	if p.bin == "" || p.source == "" {
		p.mu.Unlock()
		return fmt.Errorf("no alarm sound loaded")
	}
	if p.playing {
		p.stopLocked()
	}
	stop := make(chan struct{})
	p.stop = stop
	p.playing = true
	bin, source := p.bin, p.source
	p.mu.Unlock()

	go func() {
		for {
			cmd := exec.Command(bin, source)
			if err := cmd.Start(); err != nil {
				logger.Warn("alarm playback failed to start", "error", err)
				return
			}
			done := make(chan error, 1)
			go func() { done <- cmd.Wait() }()
			select {
			case <-stop:
				_ = cmd.Process.Kill()
				<-done
				return
			case <-done:
				// Loop the alarm until explicitly paused.
			}
			select {
			case <-stop:
				return
			default:
			}
		}
	}()
	return nil
}

func (p *ExecPlayer) Pause() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.stopLocked()
}

// Rewind is a no-op for the exec player: every run starts at the beginning.
func (p *ExecPlayer) Rewind() {}

func (p *ExecPlayer) stopLocked() {
	if p.playing {
		close(p.stop)
		p.playing = false
	}
}
