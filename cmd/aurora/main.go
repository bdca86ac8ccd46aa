package main

import (
	"fmt"
	"os"

	"github.com/alecthomas/kong"

	"github.com/auroracare/aurora-cli/internal/cli"
	"github.com/auroracare/aurora-cli/internal/constants"
	"github.com/auroracare/aurora-cli/internal/errors"
	"github.com/auroracare/aurora-cli/internal/logger"
	"github.com/auroracare/aurora-cli/internal/session"
)

var CLI struct {
	Version kong.VersionFlag
	Debug   bool   `help:"Enable debug logging to stderr." env:"AURORA_DEBUG"`
	API     string `help:"Aurora API base URL." env:"AURORA_API_URL" default:"${api_url}"`
	Redis   string `help:"Redis address for the emergency push channel." env:"AURORA_REDIS_ADDR" default:"localhost:6379"`
	Sound   string `help:"Alarm sound file." env:"AURORA_ALARM_SOUND" type:"path"`

	Login  cli.LoginCmd  `cmd:"" help:"Sign in and store credentials."`
	Logout cli.LogoutCmd `cmd:"" help:"Sign out and forget credentials."`
	Whoami cli.WhoamiCmd `cmd:"" help:"Show the signed-in user."`
	Tui    cli.TuiCmd    `cmd:"" help:"Launch the caregiving dashboard." default:"1"`
	Doctor cli.DoctorCmd `cmd:"" help:"Run health checks."`

	Reminder struct {
		Add    cli.ReminderAddCmd    `cmd:"" help:"Add a reminder."`
		Edit   cli.ReminderEditCmd   `cmd:"" help:"Edit a reminder."`
		List   cli.ReminderListCmd   `cmd:"" help:"List today's reminders."`
		Done   cli.ReminderDoneCmd   `cmd:"" help:"Mark a reminder done."`
		Delete cli.ReminderDeleteCmd `cmd:"" help:"Delete a reminder."`
	} `cmd:"" help:"Manage reminders."`

	Emergency struct {
		List    cli.EmergencyListCmd    `cmd:"" help:"List emergencies."`
		Resolve cli.EmergencyResolveCmd `cmd:"" help:"Resolve an emergency."`
	} `cmd:"" help:"Manage emergencies."`

	SOS cli.SOSCmd `cmd:"" name:"sos" help:"Send an SOS right now."`
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name(constants.AppName),
		kong.Description("Caregiving coordination companion for elders and their caregivers"),
		kong.UsageOnError(),
		kong.Vars{
			"version": constants.Version,
			"api_url": constants.DefaultAPIURL,
		},
	)

	if dir, err := session.ConfigDir(); err == nil {
		if err := logger.Init(logger.Config{Debug: CLI.Debug, ConfigDir: dir}); err != nil {
			fmt.Fprintf(os.Stderr, "warning: logging disabled: %v\n", err)
		}
	}

	appCtx := &cli.Context{
		APIURL:    CLI.API,
		RedisAddr: CLI.Redis,
		SoundPath: CLI.Sound,
	}

	if err := ctx.Run(appCtx); err != nil {
		errors.Fatal(err)
	}
}
