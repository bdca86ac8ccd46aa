package constants

import "time"

// SessionState represents the current state of the TUI application
type SessionState int

// ReminderCategory represents the kind of care action a reminder schedules
type ReminderCategory string

// RecurrenceType represents the recurrence rule of a reminder
type RecurrenceType string

// Role represents the role of the signed-in user
type Role string

const (
	AppName           = "aurora"
	DefaultKeyringUser = "api-token"
	Version           = "v0.3.0"

	// DefaultAPIURL is the hosted Aurora API endpoint
	DefaultAPIURL = "https://aurora-api-095s.onrender.com"

	// DateFormat is the standard date format used throughout the application (YYYY-MM-DD)
	DateFormat = "2006-01-02"

	// TimeFormat is the standard time format used throughout the application (HH:MM)
	TimeFormat = "15:04"

	// SOS trigger control
	SOSActivationThreshold = 0.6
	SOSCooldown            = 3 * time.Second

	// DefaultEmergencyContact is dialed when an alert carries no contact number
	DefaultEmergencyContact = "192"

	// MaxVoiceReminders caps voice reminders per elder
	MaxVoiceReminders = 2

	// MaxActivities bounds the in-memory activity feed
	MaxActivities = 50

	// ReminderRefreshInterval is the dashboard polling period for today's reminders
	ReminderRefreshInterval = 60 * time.Second

	// SnapshotFileName is the offline cache database under the config dir
	SnapshotFileName = "snapshot.db"

	// Reminder categories
	CategoryMedication ReminderCategory = "medication"
	CategoryMeal       ReminderCategory = "meal"
	CategoryRoutine    ReminderCategory = "routine"
	CategoryEvent      ReminderCategory = "event"
	CategoryVoiceNote  ReminderCategory = "voice-note"

	// Recurrence rules
	RecurrenceDaily  RecurrenceType = "daily"
	RecurrenceWeekly RecurrenceType = "weekly"
	RecurrenceOnce   RecurrenceType = "once"

	// Roles
	RoleElder        Role = "elder"
	RoleFamily       Role = "family"
	RoleCollaborator Role = "collaborator"
	RoleAdmin        Role = "admin"
)

// Session states
const (
	StateDashboard SessionState = iota
	StateReminders
	StateEmergencies
	StateRoster
	StateSettings
	StateAddReminder
	StateEditReminder
	StateConfirmDelete
	StateResolveEmergency
)
