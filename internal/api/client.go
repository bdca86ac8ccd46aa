// Package api is the HTTP client for the hosted Aurora service. Payload
// shapes are pass-through; the reactive core never inspects wire formats
// beyond decoding into the shared models.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/auroracare/aurora-cli/internal/models"
)

type Client struct {
	baseURL string
	token   string
	http    *http.Client
}

func NewClient(baseURL, token string) *Client {
	return &Client{
		baseURL: baseURL,
		token:   token,
		http:    &http.Client{Timeout: 15 * time.Second},
	}
}

// LoginResponse carries the token and identity returned by the auth endpoint.
type LoginResponse struct {
	Token string             `json:"token"`
	User  models.SessionUser `json:"user"`
}

// Login exchanges credentials for an API token and the session identity.
func (c *Client) Login(ctx context.Context, email, password string) (LoginResponse, error) {
	var out LoginResponse
	err := c.do(ctx, http.MethodPost, "/auth/login", map[string]string{
		"email":    email,
		"password": password,
	}, &out)
	if err != nil {
		return LoginResponse{}, err
	}
	if out.Token == "" {
		return LoginResponse{}, fmt.Errorf("login response carried no token")
	}
	return out, nil
}

// reminderPayload is the server's reminder projection. Completion arrives as
// a boolean here; the store folds it into its completed-id set so both
// representations read as the same "done" signal.
type reminderPayload struct {
	models.Reminder
	IsCompleted bool `json:"is_completed"`
}

// CreateReminder creates a reminder for the given elder.
func (c *Client) CreateReminder(ctx context.Context, elderID string, r models.Reminder) (models.Reminder, error) {
	body := struct {
		models.Reminder
		ElderID string `json:"elder_id"`
	}{Reminder: r, ElderID: elderID}

	var out models.Reminder
	if err := c.do(ctx, http.MethodPost, "/create_reminders", body, &out); err != nil {
		return models.Reminder{}, err
	}
	return out, nil
}

// DailyReminders fetches today's reminders for an elder. The second return
// value lists the ids the server already considers completed.
func (c *Client) DailyReminders(ctx context.Context, elderID string) ([]models.Reminder, []string, error) {
	path := "/getDaily-reminders?" + url.Values{"elderId": {elderID}}.Encode()

	var payload []reminderPayload
	if err := c.do(ctx, http.MethodGet, path, nil, &payload); err != nil {
		return nil, nil, err
	}

	reminders := make([]models.Reminder, 0, len(payload))
	var completed []string
	for _, p := range payload {
		reminders = append(reminders, p.Reminder)
		if p.IsCompleted {
			completed = append(completed, p.ID)
		}
	}
	return reminders, completed, nil
}

// UpdateReminder replaces a reminder's fields on the server.
func (c *Client) UpdateReminder(ctx context.Context, reminderID string, r models.Reminder) error {
	if reminderID == "" {
		return fmt.Errorf("reminder id is required")
	}
	return c.do(ctx, http.MethodPatch, "/reminders/"+url.PathEscape(reminderID), r, nil)
}

// CompleteReminder marks a reminder done on the server.
func (c *Client) CompleteReminder(ctx context.Context, reminderID string) error {
	return c.do(ctx, http.MethodPatch, "/complete-reminder/"+url.PathEscape(reminderID), nil, nil)
}

// DeleteReminder removes a reminder.
func (c *Client) DeleteReminder(ctx context.Context, reminderID string) error {
	return c.do(ctx, http.MethodDelete, "/reminders/"+url.PathEscape(reminderID), nil, nil)
}

// Emergencies lists emergencies, newest first.
func (c *Client) Emergencies(ctx context.Context) ([]models.Emergency, error) {
	var out []models.Emergency
	if err := c.do(ctx, http.MethodGet, "/emergencies", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// TriggerSOS raises an SOS for the current session's elder. The server
// assigns the emergency id and fans the event out over the push channel.
func (c *Client) TriggerSOS(ctx context.Context) (models.Emergency, error) {
	var out models.Emergency
	if err := c.do(ctx, http.MethodPost, "/emergencies/trigger", nil, &out); err != nil {
		return models.Emergency{}, err
	}
	return out, nil
}

// ResolveEmergency resolves an emergency, optionally with an observation.
func (c *Client) ResolveEmergency(ctx context.Context, id, observation string) error {
	if id == "" {
		return fmt.Errorf("emergency id is required")
	}
	body := map[string]string{"observation": observation}
	return c.do(ctx, http.MethodPatch, "/emergencies/"+url.PathEscape(id)+"/resolve", body, nil)
}

// Elders fetches the elder roster.
func (c *Client) Elders(ctx context.Context) ([]models.Person, error) {
	var out []models.Person
	if err := c.do(ctx, http.MethodGet, "/auth/all-elders", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Collaborators fetches the collaborator roster.
func (c *Client) Collaborators(ctx context.Context) ([]models.Person, error) {
	var out []models.Person
	if err := c.do(ctx, http.MethodGet, "/collaborators/my-collaborators", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	res, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode > 299 {
		data, _ := io.ReadAll(io.LimitReader(res.Body, 4096))
		return fmt.Errorf("%s %s failed with status %d: %s", method, path, res.StatusCode, string(data))
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(res.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
