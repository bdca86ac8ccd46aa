package models

import "github.com/auroracare/aurora-cli/internal/constants"

// SessionUser is the identity of the signed-in user as returned by the
// session accessor. ElderID is set for family members and points at the
// elder profile they coordinate care for.
type SessionUser struct {
	ID      string         `json:"id"`
	Name    string         `json:"name"`
	Email   string         `json:"email,omitempty"`
	Role    constants.Role `json:"role"`
	ElderID string         `json:"elder_id,omitempty"`
}

// IsElder reports whether the session belongs to the elder themselves.
func (u *SessionUser) IsElder() bool {
	return u.Role == constants.RoleElder
}

// CanResolve reports whether the session may resolve emergencies.
func (u *SessionUser) CanResolve() bool {
	return u.Role == constants.RoleFamily || u.Role == constants.RoleAdmin
}

// SOSElderID returns the elder an SOS from this session is raised for.
func (u *SessionUser) SOSElderID() string {
	if u.ElderID != "" {
		return u.ElderID
	}
	return u.ID
}
