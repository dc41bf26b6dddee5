package models

import "time"

// User is a platform account created through signup. The identifier may be
// an email address or an Indian mobile number; IdentifierType records which.
type User struct {
	ID                string     `json:"id"`
	FirstName         string     `json:"firstName"`
	LastName          string     `json:"lastName"`
	Email             string     `json:"email"`
	IdentifierType    string     `json:"identifierType"`
	PasswordHash      string     `json:"passwordHash"`
	VerificationToken string     `json:"verificationToken,omitempty"`
	IsVerified        bool       `json:"isVerified"`
	ResetToken        string     `json:"resetToken,omitempty"`
	ResetTokenExpiry  *time.Time `json:"resetTokenExpiry,omitempty"`
	CreatedAt         time.Time  `json:"createdAt"`
	UpdatedAt         time.Time  `json:"updatedAt"`
}

// PublicUser is the credential-free view returned by the API
type PublicUser struct {
	ID         string `json:"id"`
	FirstName  string `json:"firstName"`
	LastName   string `json:"lastName"`
	Email      string `json:"email"`
	IsVerified bool   `json:"isVerified"`
}

// Public strips credentials and tokens for API responses
func (u *User) Public() PublicUser {
	return PublicUser{
		ID:         u.ID,
		FirstName:  u.FirstName,
		LastName:   u.LastName,
		Email:      u.Email,
		IsVerified: u.IsVerified,
	}
}

// Admin is a back-office administrator account
type Admin struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	PasswordHash string `json:"passwordHash"`
	Role         string `json:"role"`
	Status       string `json:"status"`
}
