package cli

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/auroracare/aurora-cli/internal/constants"
	"github.com/auroracare/aurora-cli/internal/keyring"
	"github.com/auroracare/aurora-cli/internal/session"
	"github.com/auroracare/aurora-cli/internal/snapshot"
)

type DoctorCmd struct{}

func (cmd *DoctorCmd) Run(ctx *Context) error {
	fmt.Println("Running diagnostics...")
	fmt.Println()

	hasError := false

	// Check 1: session present
	if user := session.Current(); user == nil {
		fmt.Printf("⚠ Session: not signed in\n")
	} else {
		fmt.Printf("✓ Session: %s (%s)\n", user.Name, user.Role)
	}

	// Check 2: keyring usable
	if !keyring.IsAvailable() {
		fmt.Printf("❌ Keyring: FAIL\n")
		fmt.Printf("   No system keyring available; tokens cannot be stored\n")
		hasError = true
	} else {
		fmt.Printf("✓ Keyring: OK\n")
	}

	// Check 3: API reachable (needs a token)
	if err := checkAPIReachable(ctx); err != nil {
		fmt.Printf("❌ API reachable: FAIL\n")
		fmt.Printf("   Error: %v\n", err)
		hasError = true
	} else {
		fmt.Printf("✓ API reachable: OK\n")
	}

	// Check 4: snapshot cache openable
	if err := checkSnapshotCache(); err != nil {
		fmt.Printf("⚠ Offline cache: WARNING\n")
		fmt.Printf("   %v\n", err)
	} else {
		fmt.Printf("✓ Offline cache: OK\n")
	}

	// Check 5: clock sanity
	if err := checkClock(); err != nil {
		fmt.Printf("❌ Clock: FAIL\n")
		fmt.Printf("   Error: %v\n", err)
		hasError = true
	} else {
		fmt.Printf("✓ Clock: OK\n")
	}

	fmt.Println()
	if hasError {
		fmt.Println("Diagnostics completed with errors.")
		return fmt.Errorf("one or more health checks failed")
	}
	fmt.Println("All diagnostics passed!")
	return nil
}

func checkAPIReachable(ctx *Context) error {
	if err := ctx.EnsureAuthenticated(); err != nil {
		return err
	}
	reqCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if _, _, err := ctx.Client.DailyReminders(reqCtx, ctx.User.SOSElderID()); err != nil {
		return err
	}
	return nil
}

func checkSnapshotCache() error {
	dir, err := session.ConfigDir()
	if err != nil {
		return fmt.Errorf("config directory unavailable: %w", err)
	}
	cache := snapshot.New(filepath.Join(dir, constants.SnapshotFileName))
	if err := cache.Init(); err != nil {
		return fmt.Errorf("cache not writable: %w", err)
	}
	defer cache.Close()
	if _, err := cache.LoadReminders(); err != nil {
		return fmt.Errorf("cache not readable: %w", err)
	}
	return nil
}

func checkClock() error {
	now := time.Now()
	if now.Year() < 2020 || now.Year() > 2100 {
		return fmt.Errorf("system time appears incorrect: %s", now.Format(time.RFC3339))
	}
	return nil
}
