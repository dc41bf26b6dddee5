package utils

// Booking status constants. "Confirmed" keeps the original capitalised wire
// value used by auto-assignment; "assigned" is the manually-assigned state
// the reminder sweep watches.
const (
	BookingPending   = "pending"
	BookingConfirmed = "Confirmed"
	BookingAssigned  = "assigned"
	BookingCompleted = "completed"
	BookingRejected  = "rejected"
)

// Session mode constants
const (
	ModeOnline  = "online"
	ModeOffline = "offline"
	ModeBoth    = "both"
)

// Payment status constants
const (
	PaymentPending = "PENDING"
	PaymentPaid    = "PAID"
)

// Trainer application status constants
const (
	TrainerPending  = "pending"
	TrainerApproved = "approved"
	TrainerRejected = "rejected"
)
