package cli

import (
	"context"
	"fmt"

	"github.com/auroracare/aurora-cli/internal/constants"
	"github.com/auroracare/aurora-cli/internal/logger"
)

type EmergencyListCmd struct {
	All bool `help:"Include resolved emergencies."`
}

func (c *EmergencyListCmd) Run(ctx *Context) error {
	if err := ctx.EnsureAuthenticated(); err != nil {
		return err
	}

	emergencies, err := ctx.Client.Emergencies(context.Background())
	if err != nil {
		return err
	}

	shown := 0
	for _, e := range emergencies {
		if e.Resolved && !c.All {
			continue
		}
		fmt.Println(formatEmergencyLine(e))
		if !e.Resolved {
			fmt.Printf("           id: %s\n", e.ID)
		}
		shown++
	}
	if shown == 0 {
		fmt.Println("No emergencies. All quiet.")
	}
	return nil
}

type EmergencyResolveCmd struct {
	ID          string `arg:"" help:"Emergency id to resolve."`
	Observation string `short:"o" help:"What happened."`
}

func (c *EmergencyResolveCmd) Run(ctx *Context) error {
	if err := ctx.EnsureAuthenticated(); err != nil {
		return err
	}
	if !ctx.User.CanResolve() {
		return fmt.Errorf("only family members and admins can resolve emergencies")
	}
	if err := ctx.Client.ResolveEmergency(context.Background(), c.ID, c.Observation); err != nil {
		return err
	}
	fmt.Println("Emergency resolved.")
	return nil
}

// SOSCmd raises an emergency immediately, with none of the TUI's gesture
// confirmation. It exists for scripts and accessibility tooling, so it asks
// for an explicit flag instead.
type SOSCmd struct {
	Yes bool `help:"Confirm sending the SOS." required:""`
}

func (c *SOSCmd) Run(ctx *Context) error {
	if err := ctx.EnsureAuthenticated(); err != nil {
		return err
	}

	e, err := ctx.Client.TriggerSOS(context.Background())
	if err != nil {
		logger.Error("SOS did not reach the server", "error", err)
		return fmt.Errorf("SOS failed — call %s directly: %w", constants.DefaultEmergencyContact, err)
	}
	fmt.Printf("SOS sent. Your caregivers have been alerted (id: %s).\n", e.ID)
	return nil
}
