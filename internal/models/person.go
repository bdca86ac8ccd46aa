package models

import "time"

// Person is a roster entry: an elder under care or a family collaborator.
// These lists are server-owned; the client caches them wholesale so every
// surface renders the same snapshot.
type Person struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email,omitempty"`
	Age   int    `json:"age,omitempty"`
}

// Activity is one entry in the recent-activity feed shown on admin screens.
type Activity struct {
	ID        string    `json:"id"`
	User      string    `json:"user"`
	Action    string    `json:"action"`
	Timestamp time.Time `json:"timestamp"`
}
