package models

import "time"

// TrainerSpecializations groups the subjects a trainer covers
type TrainerSpecializations struct {
	Courses []string            `json:"courses"`
	Topics  map[string][]string `json:"topics"`
}

// Trainer is a trainer application / profile. Applications start out
// "pending" and become visible publicly once reviewed and "approved".
type Trainer struct {
	ID              string                 `json:"id"`
	Name            string                 `json:"name"`
	Email           string                 `json:"email"`
	Phone           string                 `json:"phone"`
	PasswordHash    string                 `json:"passwordHash,omitempty"`
	ProfilePicture  string                 `json:"profilePicture,omitempty"`
	Bio             string                 `json:"bio,omitempty"`
	Experience      string                 `json:"experience,omitempty"`
	Qualifications  string                 `json:"qualifications,omitempty"`
	Specializations TrainerSpecializations `json:"specializations"`
	Status          string                 `json:"status"`
	AppliedAt       time.Time              `json:"appliedAt"`
	ReviewedAt      *time.Time             `json:"reviewedAt,omitempty"`
	ReviewedBy      string                 `json:"reviewedBy,omitempty"`
}

// Public strips credentials for API responses
func (t Trainer) Public() Trainer {
	t.PasswordHash = ""
	return t
}
