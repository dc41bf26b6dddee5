package storage

import (
	"techpro-backoffice/errors"
	"techpro-backoffice/models"
)

type counselorDoc struct {
	Counselors []models.Counselor `json:"counselors"`
}

// CounselorStore persists the counselor roster in counselors.json
type CounselorStore struct {
	c *collection[counselorDoc]
}

func NewCounselorStore(dir string) *CounselorStore {
	return &CounselorStore{c: newCollection(dir, "counselors.json", func() counselorDoc {
		return counselorDoc{Counselors: []models.Counselor{}}
	})}
}

// All returns the roster in stored order. Roster order is load-bearing: the
// assignment engine breaks load ties by first position.
func (s *CounselorStore) All() ([]models.Counselor, error) {
	var out []models.Counselor
	err := s.c.View(func(doc counselorDoc) error {
		out = doc.Counselors
		return nil
	})
	return out, err
}

func (s *CounselorStore) Add(counselor models.Counselor) error {
	return s.c.Update(func(doc *counselorDoc) error {
		doc.Counselors = append(doc.Counselors, counselor)
		return nil
	})
}

func (s *CounselorStore) Delete(id string) error {
	return s.c.Update(func(doc *counselorDoc) error {
		for i, c := range doc.Counselors {
			if c.ID == id {
				doc.Counselors = append(doc.Counselors[:i], doc.Counselors[i+1:]...)
				return nil
			}
		}
		return errors.NewNotFoundError("Counselor not found")
	})
}

// FindByName resolves a counselor by display name, the reference bookings
// carry. Returns nil when no counselor matches.
func (s *CounselorStore) FindByName(name string) (*models.Counselor, error) {
	var found *models.Counselor
	err := s.c.View(func(doc counselorDoc) error {
		for i := range doc.Counselors {
			if doc.Counselors[i].Name == name {
				c := doc.Counselors[i]
				found = &c
				return nil
			}
		}
		return nil
	})
	return found, err
}
