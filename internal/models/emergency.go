package models

import "time"

// Emergency is one SOS event raised by or on behalf of an elder. It is
// tracked until a family or admin actor resolves it; resolution is one-way.
type Emergency struct {
	ID          string     `json:"id"`
	ElderID     string     `json:"elder_id"`
	ElderName   string     `json:"elder_name,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	Resolved    bool       `json:"resolved"`
	ResolvedAt  *time.Time `json:"resolved_at,omitempty"`
	Observation string     `json:"observation,omitempty"`

	// Contact is an optional phone number to dial from the alarm screen.
	Contact string `json:"contact,omitempty"`
}
