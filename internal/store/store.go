// Package store holds the shared in-memory state every UI surface renders
// from: reminders, emergencies, preferences, and cached roster lists. It is
// the single source of truth for the lifetime of the session; components
// never keep private copies, they re-read after each change notification.
package store

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/auroracare/aurora-cli/internal/constants"
	"github.com/auroracare/aurora-cli/internal/models"
)

// ChangeKind describes which collection a notification refers to, so
// listeners that care can re-render selectively. Most listeners treat any
// change as a wake-up signal and re-read everything.
type ChangeKind string

const (
	ChangeReminders   ChangeKind = "reminders"
	ChangeEmergencies ChangeKind = "emergencies"
	ChangePreferences ChangeKind = "preferences"
	ChangeRoster      ChangeKind = "roster"
	ChangeActivities  ChangeKind = "activities"
)

// Change is the descriptor delivered to listeners.
type Change struct {
	Kind ChangeKind
}

// Listener is a change callback. Listeners must not assume any invocation
// order relative to other listeners.
type Listener func(Change)

// Store owns all shared client state. One instance per application root (or
// per test). All mutators end by notifying subscribers; invalid ids are
// silent no-ops.
type Store struct {
	mu  sync.Mutex
	now func() time.Time

	reminders   []models.Reminder
	completed   map[string]struct{} // keyed by id@YYYY-MM-DD
	emergencies []models.Emergency
	prefs       models.Preferences

	elders        []models.Person
	collaborators []models.Person
	activities    []models.Activity

	listeners  map[int]Listener
	nextHandle int
}

func New() *Store {
	return &Store{
		now:       time.Now,
		completed: make(map[string]struct{}),
		prefs:     models.DefaultPreferences(),
		listeners: make(map[int]Listener),
	}
}

// Subscribe registers a change listener and returns its unsubscribe
// function. Calling unsubscribe more than once is harmless.
func (s *Store) Subscribe(fn Listener) func() {
	s.mu.Lock()
	handle := s.nextHandle
	s.nextHandle++
	s.listeners[handle] = fn
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.listeners, handle)
		s.mu.Unlock()
	}
}

// notify invokes every registered listener. Listeners run outside the store
// lock so they can read back from the store.
func (s *Store) notify(kind ChangeKind) {
	s.mu.Lock()
	snapshot := make([]Listener, 0, len(s.listeners))
	for _, fn := range s.listeners {
		snapshot = append(snapshot, fn)
	}
	s.mu.Unlock()

	for _, fn := range snapshot {
		fn(Change{Kind: kind})
	}
}

// --- Reminders ---

// Reminders returns a snapshot of the reminder list.
func (s *Store) Reminders() []models.Reminder {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Reminder, len(s.reminders))
	copy(out, s.reminders)
	return out
}

// AddReminder assigns a fresh id when none is set, anchors dateless one-time
// reminders to today, appends, and notifies. Returns the stored reminder.
func (s *Store) AddReminder(r models.Reminder) models.Reminder {
	s.mu.Lock()
	if r.ID == "" {
		r.ID = uuid.New().String()
	}
	if r.Date == "" && r.Recurrence.Type == constants.RecurrenceOnce {
		r.Date = s.now().Format(constants.DateFormat)
	}
	if r.CreatedAt.IsZero() {
		r.CreatedAt = s.now()
	}
	s.reminders = append(s.reminders, r)
	s.mu.Unlock()

	s.notify(ChangeReminders)
	return r
}

// ReminderPatch is a merge-patch for UpdateReminder; nil fields are left
// untouched.
type ReminderPatch struct {
	Title      *string
	Time       *string
	Date       *string
	Category   *constants.ReminderCategory
	Recurrence *models.Recurrence
}

// UpdateReminder merges the patch into the reminder with the given id. An
// unknown id is a silent no-op and does not notify.
func (s *Store) UpdateReminder(id string, patch ReminderPatch) {
	s.mu.Lock()
	idx := s.reminderIndex(id)
	if idx < 0 {
		s.mu.Unlock()
		return
	}
	r := &s.reminders[idx]
	if patch.Title != nil {
		r.Title = *patch.Title
	}
	if patch.Time != nil {
		r.Time = *patch.Time
	}
	if patch.Date != nil {
		r.Date = *patch.Date
	}
	if patch.Category != nil {
		r.Category = *patch.Category
	}
	if patch.Recurrence != nil {
		r.Recurrence = *patch.Recurrence
	}
	s.mu.Unlock()

	s.notify(ChangeReminders)
}

// DeleteReminder removes the reminder and purges every completion entry
// recorded for it. Unknown ids are ignored.
func (s *Store) DeleteReminder(id string) {
	s.mu.Lock()
	out := s.reminders[:0]
	for _, r := range s.reminders {
		if r.ID != id {
			out = append(out, r)
		}
	}
	s.reminders = out
	for key := range s.completed {
		if completedKeyID(key) == id {
			delete(s.completed, key)
		}
	}
	s.mu.Unlock()

	s.notify(ChangeReminders)
}

// SetReminders replaces the reminder list wholesale after a server refetch.
func (s *Store) SetReminders(list []models.Reminder) {
	s.mu.Lock()
	s.reminders = append([]models.Reminder(nil), list...)
	s.mu.Unlock()

	s.notify(ChangeReminders)
}

func (s *Store) reminderIndex(id string) int {
	for i, r := range s.reminders {
		if r.ID == id {
			return i
		}
	}
	return -1
}

// CountVoiceReminders returns how many voice reminders are loaded.
func (s *Store) CountVoiceReminders() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, r := range s.reminders {
		if r.Category == constants.CategoryVoiceNote {
			n++
		}
	}
	return n
}

// CanAddVoiceReminder reports whether the per-elder voice reminder cap allows
// another one.
func (s *Store) CanAddVoiceReminder() bool {
	return s.CountVoiceReminders() < constants.MaxVoiceReminders
}

// --- Completion ---

// Completion is tracked per reminder per calendar day, so a daily reminder
// resets at midnight. The server's boolean "done" projection feeds the same
// set via MarkCompleted.

func completedKey(id, day string) string {
	return id + "@" + day
}

func completedKeyID(key string) string {
	for i := len(key) - 1; i >= 0; i-- {
		if key[i] == '@' {
			return key[:i]
		}
	}
	return key
}

// ToggleCompleted flips today's completion state for the reminder.
func (s *Store) ToggleCompleted(id string) {
	s.mu.Lock()
	key := completedKey(id, s.now().Format(constants.DateFormat))
	if _, ok := s.completed[key]; ok {
		delete(s.completed, key)
	} else {
		s.completed[key] = struct{}{}
	}
	s.mu.Unlock()

	s.notify(ChangeReminders)
}

// MarkCompleted records a server-reported completion for today. Idempotent.
func (s *Store) MarkCompleted(id string) {
	s.mu.Lock()
	key := completedKey(id, s.now().Format(constants.DateFormat))
	if _, ok := s.completed[key]; ok {
		s.mu.Unlock()
		return
	}
	s.completed[key] = struct{}{}
	s.mu.Unlock()

	s.notify(ChangeReminders)
}

// IsCompleted reports whether the reminder was completed today.
func (s *Store) IsCompleted(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.completed[completedKey(id, s.now().Format(constants.DateFormat))]
	return ok
}

// --- Emergencies ---

// Emergencies returns a snapshot of the emergency list, newest first.
func (s *Store) Emergencies() []models.Emergency {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Emergency, len(s.emergencies))
	copy(out, s.emergencies)
	return out
}

// AddEmergency front-inserts an unresolved emergency and notifies. A
// caller-supplied id wins; otherwise a fresh one is assigned. Inserting an id
// already present is a no-op, so the optimistic local write and the push
// delivery of the same server event cannot double-insert.
func (s *Store) AddEmergency(e models.Emergency) models.Emergency {
	s.mu.Lock()
	if e.ID != "" {
		for _, existing := range s.emergencies {
			if existing.ID == e.ID {
				s.mu.Unlock()
				return existing
			}
		}
	} else {
		e.ID = uuid.New().String()
	}
	if e.CreatedAt.IsZero() {
		e.CreatedAt = s.now()
	}
	e.Resolved = false
	e.ResolvedAt = nil
	s.emergencies = append([]models.Emergency{e}, s.emergencies...)
	s.mu.Unlock()

	s.notify(ChangeEmergencies)
	return e
}

// ResolveEmergency marks the emergency resolved, stamps the resolution time,
// and stores the observation. Resolution is one-way: unknown or already
// resolved ids are silent no-ops and do not notify.
func (s *Store) ResolveEmergency(id string, observation string) {
	s.mu.Lock()
	for i := range s.emergencies {
		if s.emergencies[i].ID != id || s.emergencies[i].Resolved {
			continue
		}
		resolvedAt := s.now()
		s.emergencies[i].Resolved = true
		s.emergencies[i].ResolvedAt = &resolvedAt
		s.emergencies[i].Observation = observation
		s.mu.Unlock()

		s.notify(ChangeEmergencies)
		return
	}
	s.mu.Unlock()
}

// SetEmergencies replaces the emergency list wholesale after a server
// refetch. The caller is expected to pass a newest-first list.
func (s *Store) SetEmergencies(list []models.Emergency) {
	s.mu.Lock()
	s.emergencies = append([]models.Emergency(nil), list...)
	s.mu.Unlock()

	s.notify(ChangeEmergencies)
}

// ActiveEmergency returns the newest unresolved emergency, if any.
func (s *Store) ActiveEmergency() (models.Emergency, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, e := range s.emergencies {
		if !e.Resolved {
			return e, true
		}
	}
	return models.Emergency{}, false
}

// --- Preferences ---

func (s *Store) Preferences() models.Preferences {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.prefs
}

// PreferencesPatch is a merge-patch for UpdatePreferences.
type PreferencesPatch struct {
	EmergencyButtonEnabled *bool
	ElderCanEditRoutine    *bool
}

func (s *Store) UpdatePreferences(patch PreferencesPatch) {
	s.mu.Lock()
	if patch.EmergencyButtonEnabled != nil {
		s.prefs.EmergencyButtonEnabled = *patch.EmergencyButtonEnabled
	}
	if patch.ElderCanEditRoutine != nil {
		s.prefs.ElderCanEditRoutine = *patch.ElderCanEditRoutine
	}
	s.mu.Unlock()

	s.notify(ChangePreferences)
}

// --- Rosters ---

func (s *Store) Elders() []models.Person {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Person, len(s.elders))
	copy(out, s.elders)
	return out
}

func (s *Store) SetElders(list []models.Person) {
	s.mu.Lock()
	s.elders = append([]models.Person(nil), list...)
	s.mu.Unlock()

	s.notify(ChangeRoster)
}

func (s *Store) CountElders() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.elders)
}

func (s *Store) CanAddElder(limit int) bool {
	return s.CountElders() < limit
}

func (s *Store) Collaborators() []models.Person {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Person, len(s.collaborators))
	copy(out, s.collaborators)
	return out
}

func (s *Store) SetCollaborators(list []models.Person) {
	s.mu.Lock()
	s.collaborators = append([]models.Person(nil), list...)
	s.mu.Unlock()

	s.notify(ChangeRoster)
}

func (s *Store) CountCollaborators() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.collaborators)
}

func (s *Store) CanAddCollaborator(limit int) bool {
	return s.CountCollaborators() < limit
}

// --- Activity feed ---

func (s *Store) Activities() []models.Activity {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Activity, len(s.activities))
	copy(out, s.activities)
	return out
}

// AddActivity front-inserts an activity entry, keeping the feed bounded.
func (s *Store) AddActivity(a models.Activity) {
	s.mu.Lock()
	if a.ID == "" {
		a.ID = uuid.New().String()
	}
	if a.Timestamp.IsZero() {
		a.Timestamp = s.now()
	}
	s.activities = append([]models.Activity{a}, s.activities...)
	if len(s.activities) > constants.MaxActivities {
		s.activities = s.activities[:constants.MaxActivities]
	}
	s.mu.Unlock()

	s.notify(ChangeActivities)
}
