package models

// Preferences are process-wide toggles mutated by admin actors and read by
// every sidebar and dashboard to decide what to render.
type Preferences struct {
	EmergencyButtonEnabled bool `json:"emergency_button_enabled"`
	ElderCanEditRoutine    bool `json:"elder_can_edit_routine"`
}

// DefaultPreferences mirrors the server defaults for a fresh session.
func DefaultPreferences() Preferences {
	return Preferences{
		EmergencyButtonEnabled: true,
		ElderCanEditRoutine:    false,
	}
}
