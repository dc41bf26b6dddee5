package models

import "time"

// Booking is a counseling session request. Date and time are stored as the
// requester submitted them: an ISO date string plus a 12-hour clock time
// ("hh:mm AM/PM") in the deployment's local timezone.
type Booking struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Phone  string `json:"phone"`
	Course string `json:"course"`
	Notes  string `json:"notes"`

	SelectedDate string `json:"selectedDate"`
	SelectedTime string `json:"selectedTime"`
	// "online" or "offline"
	Mode               string `json:"mode"`
	Location           string `json:"location,omitempty"`
	PreferredCounselor string `json:"preferredCounselor,omitempty"`

	Status string `json:"status"`
	// Display-name reference into the counselor roster; empty until assigned.
	AssignedCounselor string `json:"assignedCounselor"`
	CounselorEmail    string `json:"counselorEmail,omitempty"`
	AutoAssigned      bool   `json:"autoAssigned,omitempty"`

	MeetingLink     string `json:"meetingLink,omitempty"`
	LocationAddress string `json:"locationAddress,omitempty"`
	AdminNotes      string `json:"adminNotes,omitempty"`

	// Transitions false -> true exactly once, when the 30-minute reminder
	// has been dispatched.
	ReminderSent bool `json:"reminderSent"`

	SubmittedAt time.Time  `json:"submittedAt"`
	AssignedAt  *time.Time `json:"assignedAt,omitempty"`
	CompletedAt *time.Time `json:"completedAt,omitempty"`
}
