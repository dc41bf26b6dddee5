package models

import "time"

// Notification is a broadcast message shown in the dashboards
type Notification struct {
	ID       string     `json:"id"`
	Title    string     `json:"title"`
	Message  string     `json:"message"`
	Type     string     `json:"type"`     // info, warning, success, error
	Audience string     `json:"audience"` // all, students, trainers, admins
	Date     time.Time  `json:"date"`
	Expiry   *time.Time `json:"expiry,omitempty"`
	ReadBy   []string   `json:"readBy"`
}
