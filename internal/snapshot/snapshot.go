// Package snapshot caches the last server-fetched reminders and emergencies
// in a local SQLite database, so the dashboard can still render something
// useful when the Aurora API is unreachable. The cache is written wholesale
// after each successful refetch, never mutated piecemeal.
package snapshot

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/auroracare/aurora-cli/internal/constants"
	"github.com/auroracare/aurora-cli/internal/models"
)

type Cache struct {
	path string
	db   *sql.DB
}

func New(path string) *Cache {
	return &Cache{path: path}
}

func (c *Cache) Init() error {
	dir := filepath.Dir(c.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create cache directory: %w", err)
	}

	db, err := sql.Open("sqlite", c.path)
	if err != nil {
		return fmt.Errorf("failed to open snapshot cache: %w", err)
	}
	c.db = db

	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS reminders (
			id TEXT PRIMARY KEY,
			title TEXT NOT NULL,
			time TEXT NOT NULL,
			date TEXT,
			category TEXT NOT NULL,
			created_by TEXT,
			recurrence_type TEXT,
			recurrence_weekdays TEXT,
			created_at TEXT
		);
		CREATE TABLE IF NOT EXISTS emergencies (
			position INTEGER PRIMARY KEY,
			id TEXT NOT NULL,
			elder_id TEXT NOT NULL,
			elder_name TEXT,
			created_at TEXT,
			resolved INTEGER NOT NULL,
			resolved_at TEXT,
			observation TEXT,
			contact TEXT
		);
	`)
	if err != nil {
		return fmt.Errorf("failed to create snapshot schema: %w", err)
	}
	return nil
}

func (c *Cache) Close() error {
	if c.db != nil {
		return c.db.Close()
	}
	return nil
}

// SaveReminders replaces the cached reminder snapshot.
func (c *Cache) SaveReminders(reminders []models.Reminder) error {
	tx, err := c.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM reminders`); err != nil {
		return fmt.Errorf("failed to clear reminder snapshot: %w", err)
	}

	for _, r := range reminders {
		weekdaysJSON, err := json.Marshal(r.Recurrence.Weekdays)
		if err != nil {
			return fmt.Errorf("failed to marshal weekdays: %w", err)
		}
		_, err = tx.Exec(`
			INSERT INTO reminders (
				id, title, time, date, category, created_by,
				recurrence_type, recurrence_weekdays, created_at
			) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		`,
			r.ID, r.Title, r.Time, r.Date, string(r.Category), string(r.CreatedBy),
			string(r.Recurrence.Type), string(weekdaysJSON), r.CreatedAt.Format(time.RFC3339),
		)
		if err != nil {
			return fmt.Errorf("failed to insert reminder: %w", err)
		}
	}

	return tx.Commit()
}

// LoadReminders returns the cached reminder snapshot.
func (c *Cache) LoadReminders() ([]models.Reminder, error) {
	rows, err := c.db.Query(`
		SELECT id, title, time, date, category, created_by,
			recurrence_type, recurrence_weekdays, created_at
		FROM reminders
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query reminder snapshot: %w", err)
	}
	defer rows.Close()

	var out []models.Reminder
	for rows.Next() {
		var r models.Reminder
		var category, createdBy, recurrenceType, weekdaysJSON, createdAtStr string
		if err := rows.Scan(
			&r.ID, &r.Title, &r.Time, &r.Date, &category, &createdBy,
			&recurrenceType, &weekdaysJSON, &createdAtStr,
		); err != nil {
			return nil, fmt.Errorf("failed to scan reminder: %w", err)
		}

		r.Category = constants.ReminderCategory(category)
		r.CreatedBy = constants.Role(createdBy)
		r.Recurrence.Type = constants.RecurrenceType(recurrenceType)
		if err := json.Unmarshal([]byte(weekdaysJSON), &r.Recurrence.Weekdays); err != nil {
			return nil, fmt.Errorf("failed to unmarshal weekdays: %w", err)
		}
		if t, err := time.Parse(time.RFC3339, createdAtStr); err == nil {
			r.CreatedAt = t
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// SaveEmergencies replaces the cached emergency snapshot, preserving the
// newest-first list order.
func (c *Cache) SaveEmergencies(emergencies []models.Emergency) error {
	tx, err := c.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM emergencies`); err != nil {
		return fmt.Errorf("failed to clear emergency snapshot: %w", err)
	}

	for i, e := range emergencies {
		var resolvedAtStr *string
		if e.ResolvedAt != nil {
			str := e.ResolvedAt.Format(time.RFC3339)
			resolvedAtStr = &str
		}
		_, err = tx.Exec(`
			INSERT INTO emergencies (
				position, id, elder_id, elder_name, created_at,
				resolved, resolved_at, observation, contact
			) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		`,
			i, e.ID, e.ElderID, e.ElderName, e.CreatedAt.Format(time.RFC3339),
			e.Resolved, resolvedAtStr, e.Observation, e.Contact,
		)
		if err != nil {
			return fmt.Errorf("failed to insert emergency: %w", err)
		}
	}

	return tx.Commit()
}

// LoadEmergencies returns the cached emergency snapshot, newest first.
func (c *Cache) LoadEmergencies() ([]models.Emergency, error) {
	rows, err := c.db.Query(`
		SELECT id, elder_id, elder_name, created_at,
			resolved, resolved_at, observation, contact
		FROM emergencies
		ORDER BY position
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query emergency snapshot: %w", err)
	}
	defer rows.Close()

	var out []models.Emergency
	for rows.Next() {
		var e models.Emergency
		var createdAtStr string
		var resolvedAtStr *string
		if err := rows.Scan(
			&e.ID, &e.ElderID, &e.ElderName, &createdAtStr,
			&e.Resolved, &resolvedAtStr, &e.Observation, &e.Contact,
		); err != nil {
			return nil, fmt.Errorf("failed to scan emergency: %w", err)
		}
		if t, err := time.Parse(time.RFC3339, createdAtStr); err == nil {
			e.CreatedAt = t
		}
		if resolvedAtStr != nil {
			if t, err := time.Parse(time.RFC3339, *resolvedAtStr); err == nil {
				e.ResolvedAt = &t
			}
		}
		out = append(out, e)
	}
	return out, rows.Err()
}
