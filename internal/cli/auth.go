package cli

import (
	"context"
	"fmt"

	"github.com/charmbracelet/huh"

	"github.com/auroracare/aurora-cli/internal/api"
	"github.com/auroracare/aurora-cli/internal/keyring"
	"github.com/auroracare/aurora-cli/internal/logger"
	"github.com/auroracare/aurora-cli/internal/session"
)

type LoginCmd struct {
	Email    string `short:"e" help:"Account email." env:"AURORA_EMAIL"`
	Password string `short:"p" help:"Account password." env:"AURORA_PASSWORD"`
}

func (c *LoginCmd) Run(ctx *Context) error {
	if c.Email == "" || c.Password == "" {
		form := huh.NewForm(huh.NewGroup(
			huh.NewInput().
				Title("Email").
				Value(&c.Email),
			huh.NewInput().
				Title("Password").
				EchoMode(huh.EchoModePassword).
				Value(&c.Password),
		))
		if err := form.Run(); err != nil {
			return err
		}
	}
	if c.Email == "" || c.Password == "" {
		return fmt.Errorf("email and password are required")
	}

	client := api.NewClient(ctx.APIURL, "")
	res, err := client.Login(context.Background(), c.Email, c.Password)
	if err != nil {
		return fmt.Errorf("login failed: %w", err)
	}

	if err := keyring.SetToken(res.Token); err != nil {
		return fmt.Errorf("failed to store token: %w", err)
	}
	if err := session.Set(res.User); err != nil {
		return fmt.Errorf("failed to store session: %w", err)
	}

	logger.Info("signed in", "user", res.User.ID, "role", res.User.Role)
	fmt.Printf("Signed in as %s (%s)\n", res.User.Name, res.User.Role)
	return nil
}

type LogoutCmd struct{}

func (c *LogoutCmd) Run(ctx *Context) error {
	if err := keyring.DeleteToken(); err != nil {
		logger.Warn("token removal failed", "error", err)
	}
	if err := session.Clear(); err != nil {
		return fmt.Errorf("failed to clear session: %w", err)
	}
	fmt.Println("Signed out.")
	return nil
}

type WhoamiCmd struct{}

func (c *WhoamiCmd) Run(ctx *Context) error {
	user := session.Current()
	if user == nil {
		return fmt.Errorf("not signed in")
	}
	fmt.Printf("%s <%s> — %s\n", user.Name, user.Email, user.Role)
	if user.ElderID != "" {
		fmt.Printf("caring for elder %s\n", user.ElderID)
	}
	return nil
}
