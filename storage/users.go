package storage

import (
	"strings"
	"time"

	"techpro-backoffice/errors"
	"techpro-backoffice/models"
)

type userDoc struct {
	Users       []models.User `json:"users"`
	LastUpdated *time.Time    `json:"lastUpdated"`
}

// UserStore persists platform accounts in users.json
type UserStore struct {
	c *collection[userDoc]
}

func NewUserStore(dir string) *UserStore {
	return &UserStore{c: newCollection(dir, "users.json", func() userDoc {
		return userDoc{Users: []models.User{}}
	})}
}

func (s *UserStore) All() ([]models.User, error) {
	var out []models.User
	err := s.c.View(func(doc userDoc) error {
		out = doc.Users
		return nil
	})
	return out, err
}

func (s *UserStore) FindByEmail(email string) (*models.User, error) {
	return s.find(func(u *models.User) bool {
		return strings.EqualFold(u.Email, email)
	})
}

func (s *UserStore) FindByVerificationToken(token string) (*models.User, error) {
	return s.find(func(u *models.User) bool {
		return u.VerificationToken != "" && u.VerificationToken == token
	})
}

func (s *UserStore) find(match func(u *models.User) bool) (*models.User, error) {
	var found *models.User
	err := s.c.View(func(doc userDoc) error {
		for i := range doc.Users {
			if match(&doc.Users[i]) {
				u := doc.Users[i]
				found = &u
				return nil
			}
		}
		return nil
	})
	return found, err
}

// Add rejects duplicate registrations by identifier
func (s *UserStore) Add(user models.User) error {
	return s.c.Update(func(doc *userDoc) error {
		for _, u := range doc.Users {
			if strings.EqualFold(u.Email, user.Email) {
				return errors.NewConflictError("ALREADY_REGISTERED")
			}
		}
		doc.Users = append(doc.Users, user)
		now := time.Now()
		doc.LastUpdated = &now
		return nil
	})
}

func (s *UserStore) UpdateByID(id string, mutate func(u *models.User) error) (models.User, error) {
	var updated models.User
	err := s.c.Update(func(doc *userDoc) error {
		for i := range doc.Users {
			if doc.Users[i].ID == id {
				if err := mutate(&doc.Users[i]); err != nil {
					return err
				}
				doc.Users[i].UpdatedAt = time.Now()
				updated = doc.Users[i]
				now := time.Now()
				doc.LastUpdated = &now
				return nil
			}
		}
		return errors.NewNotFoundError("User not found")
	})
	return updated, err
}
