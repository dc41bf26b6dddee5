package storage

import (
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"techpro-backoffice/models"
)

type adminDoc struct {
	Admins      []models.Admin `json:"admins"`
	SuperAdmins []models.Admin `json:"superAdmins"`
	LastUpdated *time.Time     `json:"lastUpdated"`
}

// AdminStore persists administrator accounts in admins.json. A first run
// seeds one admin and one super admin with the default password "admin";
// deployments are expected to rotate these immediately.
type AdminStore struct {
	c *collection[adminDoc]
}

func NewAdminStore(dir string) *AdminStore {
	return &AdminStore{c: newCollection(dir, "admins.json", func() adminDoc {
		return adminDoc{
			Admins: []models.Admin{{
				ID:           "ADM-1",
				Name:         "Admin",
				Email:        "admin@techpro.local",
				PasswordHash: mustHash("admin"),
				Role:         "Admin",
				Status:       "Active",
			}},
			SuperAdmins: []models.Admin{{
				ID:           "SAD-1",
				Name:         "Super Admin",
				Email:        "superadmin@techpro.local",
				PasswordHash: mustHash("admin"),
				Role:         "SuperAdmin",
				Status:       "Active",
			}},
		}
	})}
}

// FindAdmin looks up an active admin by email
func (s *AdminStore) FindAdmin(email string) (*models.Admin, error) {
	var found *models.Admin
	err := s.c.View(func(doc adminDoc) error {
		for i := range doc.Admins {
			a := doc.Admins[i]
			if strings.EqualFold(a.Email, email) && a.Status == "Active" {
				found = &a
				return nil
			}
		}
		return nil
	})
	return found, err
}

// FindSuperAdmin looks up an active super admin by email or id
func (s *AdminStore) FindSuperAdmin(identifier string) (*models.Admin, error) {
	var found *models.Admin
	err := s.c.View(func(doc adminDoc) error {
		for i := range doc.SuperAdmins {
			a := doc.SuperAdmins[i]
			if (strings.EqualFold(a.Email, identifier) || a.ID == identifier) && a.Status == "Active" {
				found = &a
				return nil
			}
		}
		return nil
	})
	return found, err
}

func mustHash(password string) string {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		panic(err)
	}
	return string(hash)
}
