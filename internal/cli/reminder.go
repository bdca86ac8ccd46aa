package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/auroracare/aurora-cli/internal/constants"
	"github.com/auroracare/aurora-cli/internal/models"
)

type ReminderAddCmd struct {
	Title      string `arg:"" help:"What to remind about."`
	Time       string `short:"t" help:"Time of day (HH:MM)." required:""`
	Category   string `short:"c" help:"Category (medication|meal|routine|event|voice-note)." default:"routine"`
	Recurrence string `short:"r" help:"Recurrence (daily|weekly|once)." default:"daily"`
	Weekdays   string `short:"w" help:"Comma-separated weekdays for weekly recurrence."`
	Date       string `short:"d" help:"Date (YYYY-MM-DD) for one-time reminders."`
}

func (c *ReminderAddCmd) Validate() error {
	if _, err := time.Parse(constants.TimeFormat, c.Time); err != nil {
		return fmt.Errorf("invalid time %q, expected HH:MM", c.Time)
	}
	return nil
}

func (c *ReminderAddCmd) Run(ctx *Context) error {
	if err := ctx.EnsureAuthenticated(); err != nil {
		return err
	}

	r := models.Reminder{
		Title:     c.Title,
		Time:      c.Time,
		Category:  constants.ReminderCategory(c.Category),
		CreatedBy: ctx.User.Role,
	}
	switch constants.RecurrenceType(c.Recurrence) {
	case constants.RecurrenceDaily:
		r.Recurrence = models.Daily()
	case constants.RecurrenceWeekly:
		days, err := models.ParseWeekdays(c.Weekdays)
		if err != nil {
			return err
		}
		r.Recurrence = models.Weekly(days...)
	case constants.RecurrenceOnce:
		r.Recurrence = models.Once()
		r.Date = c.Date
	default:
		return fmt.Errorf("invalid recurrence: %s", c.Recurrence)
	}
	if err := r.Validate(); err != nil {
		return err
	}

	created, err := ctx.Client.CreateReminder(context.Background(), ctx.User.SOSElderID(), r)
	if err != nil {
		return err
	}
	fmt.Printf("Added reminder: %s (ID: %s)\n", created.Title, created.ID)
	return nil
}

type ReminderListCmd struct{}

func (c *ReminderListCmd) Run(ctx *Context) error {
	if err := ctx.EnsureAuthenticated(); err != nil {
		return err
	}

	reminders, completed, err := ctx.Client.DailyReminders(context.Background(), ctx.User.SOSElderID())
	if err != nil {
		return err
	}
	if len(reminders) == 0 {
		fmt.Println("No reminders for today.")
		return nil
	}

	done := make(map[string]bool, len(completed))
	for _, id := range completed {
		done[id] = true
	}
	for _, r := range reminders {
		fmt.Println(formatReminderLine(r, done[r.ID]))
	}
	return nil
}

type ReminderEditCmd struct {
	ID         string `arg:"" help:"Reminder id to edit."`
	Title      string `help:"New title."`
	Time       string `short:"t" help:"New time of day (HH:MM)."`
	Category   string `short:"c" help:"New category (medication|meal|routine|event|voice-note)."`
	Recurrence string `short:"r" help:"New recurrence (daily|weekly|once)."`
	Weekdays   string `short:"w" help:"Comma-separated weekdays for weekly recurrence."`
	Date       string `short:"d" help:"Date (YYYY-MM-DD) for one-time reminders."`
}

// Run merges the provided flags over the reminder's current fields, so an
// edit only has to name what changes.
func (c *ReminderEditCmd) Run(ctx *Context) error {
	if err := ctx.EnsureAuthenticated(); err != nil {
		return err
	}

	reminders, _, err := ctx.Client.DailyReminders(context.Background(), ctx.User.SOSElderID())
	if err != nil {
		return err
	}
	var current *models.Reminder
	for _, r := range reminders {
		if r.ID == c.ID {
			current = &r
			break
		}
	}
	if current == nil {
		return fmt.Errorf("no reminder with id %s in today's list", c.ID)
	}

	r := *current
	if c.Title != "" {
		r.Title = c.Title
	}
	if c.Time != "" {
		if _, err := time.Parse(constants.TimeFormat, c.Time); err != nil {
			return fmt.Errorf("invalid time %q, expected HH:MM", c.Time)
		}
		r.Time = c.Time
	}
	if c.Category != "" {
		r.Category = constants.ReminderCategory(c.Category)
	}
	if c.Date != "" {
		r.Date = c.Date
	}
	switch constants.RecurrenceType(c.Recurrence) {
	case constants.RecurrenceDaily:
		r.Recurrence = models.Daily()
	case constants.RecurrenceWeekly:
		days, err := models.ParseWeekdays(c.Weekdays)
		if err != nil {
			return err
		}
		r.Recurrence = models.Weekly(days...)
	case constants.RecurrenceOnce:
		r.Recurrence = models.Once()
	case "":
		// Recurrence untouched.
	default:
		return fmt.Errorf("invalid recurrence: %s", c.Recurrence)
	}
	if err := r.Validate(); err != nil {
		return err
	}

	if err := ctx.Client.UpdateReminder(context.Background(), c.ID, r); err != nil {
		return err
	}
	fmt.Printf("Updated reminder: %s\n", r.Title)
	return nil
}

type ReminderDoneCmd struct {
	ID string `arg:"" help:"Reminder id to mark done."`
}

func (c *ReminderDoneCmd) Run(ctx *Context) error {
	if err := ctx.EnsureAuthenticated(); err != nil {
		return err
	}
	if err := ctx.Client.CompleteReminder(context.Background(), c.ID); err != nil {
		return err
	}
	fmt.Println("Marked done.")
	return nil
}

type ReminderDeleteCmd struct {
	ID string `arg:"" help:"Reminder id to delete."`
}

func (c *ReminderDeleteCmd) Run(ctx *Context) error {
	if err := ctx.EnsureAuthenticated(); err != nil {
		return err
	}
	if err := ctx.Client.DeleteReminder(context.Background(), c.ID); err != nil {
		return err
	}
	fmt.Println("Deleted.")
	return nil
}
