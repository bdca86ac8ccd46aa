package cli

import (
	"context"
	"fmt"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/auroracare/aurora-cli/internal/audio"
	"github.com/auroracare/aurora-cli/internal/constants"
	"github.com/auroracare/aurora-cli/internal/logger"
	"github.com/auroracare/aurora-cli/internal/push"
	"github.com/auroracare/aurora-cli/internal/session"
	"github.com/auroracare/aurora-cli/internal/snapshot"
	"github.com/auroracare/aurora-cli/internal/store"
	"github.com/auroracare/aurora-cli/internal/tui"
)

type TuiCmd struct{}

func (c *TuiCmd) Run(ctx *Context) error {
	if err := ctx.EnsureAuthenticated(); err != nil {
		return err
	}

	st := store.New()

	var cache *snapshot.Cache
	if dir, err := session.ConfigDir(); err == nil {
		cache = snapshot.New(filepath.Join(dir, constants.SnapshotFileName))
		if err := cache.Init(); err != nil {
			// The dashboard works without the offline cache.
			logger.Warn("snapshot cache unavailable", "error", err)
			cache = nil
		} else {
			defer cache.Close()
		}
	}

	channel := push.NewRedisChannel(ctx.RedisAddr, "")
	listener := push.NewListener(channel, st, audio.NewExecPlayer(), session.Current, ctx.SoundPath)
	if err := listener.Start(context.Background()); err != nil {
		// Emergencies still arrive through polling; push just makes them
		// immediate.
		logger.Warn("push channel unavailable, falling back to polling", "error", err)
	}

	p := tea.NewProgram(
		tui.NewModel(st, ctx.Client, listener, cache, ctx.User),
		tea.WithAltScreen(),
		tea.WithMouseAllMotion(),
	)
	listener.SetOnAlert(func() {
		p.Send(tui.StoreChangedMsg{Kind: store.ChangeEmergencies})
	})

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("dashboard crashed: %w", err)
	}
	return nil
}
