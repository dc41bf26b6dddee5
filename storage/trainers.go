package storage

import (
	"strings"
	"time"

	"techpro-backoffice/errors"
	"techpro-backoffice/models"
)

type trainerDoc struct {
	Trainers    []models.Trainer `json:"trainers"`
	LastUpdated *time.Time       `json:"lastUpdated"`
}

// TrainerStore persists trainer applications and profiles in trainers.json
type TrainerStore struct {
	c *collection[trainerDoc]
}

func NewTrainerStore(dir string) *TrainerStore {
	return &TrainerStore{c: newCollection(dir, "trainers.json", func() trainerDoc {
		return trainerDoc{Trainers: []models.Trainer{}}
	})}
}

func (s *TrainerStore) All() ([]models.Trainer, error) {
	var out []models.Trainer
	err := s.c.View(func(doc trainerDoc) error {
		out = doc.Trainers
		return nil
	})
	return out, err
}

func (s *TrainerStore) FindByEmail(email string) (*models.Trainer, error) {
	var found *models.Trainer
	err := s.c.View(func(doc trainerDoc) error {
		for i := range doc.Trainers {
			if strings.EqualFold(doc.Trainers[i].Email, email) {
				t := doc.Trainers[i]
				found = &t
				return nil
			}
		}
		return nil
	})
	return found, err
}

// Add rejects duplicate applications by email
func (s *TrainerStore) Add(trainer models.Trainer) error {
	return s.c.Update(func(doc *trainerDoc) error {
		for _, t := range doc.Trainers {
			if strings.EqualFold(t.Email, trainer.Email) {
				return errors.NewConflictError("A trainer with this email already exists")
			}
		}
		doc.Trainers = append(doc.Trainers, trainer)
		now := time.Now()
		doc.LastUpdated = &now
		return nil
	})
}

func (s *TrainerStore) UpdateByID(id string, mutate func(t *models.Trainer) error) (models.Trainer, error) {
	var updated models.Trainer
	err := s.c.Update(func(doc *trainerDoc) error {
		for i := range doc.Trainers {
			if doc.Trainers[i].ID == id {
				if err := mutate(&doc.Trainers[i]); err != nil {
					return err
				}
				updated = doc.Trainers[i]
				now := time.Now()
				doc.LastUpdated = &now
				return nil
			}
		}
		return errors.NewNotFoundError("Trainer not found")
	})
	return updated, err
}

func (s *TrainerStore) Delete(id string) error {
	return s.c.Update(func(doc *trainerDoc) error {
		for i := range doc.Trainers {
			if doc.Trainers[i].ID == id {
				doc.Trainers = append(doc.Trainers[:i], doc.Trainers[i+1:]...)
				now := time.Now()
				doc.LastUpdated = &now
				return nil
			}
		}
		return errors.NewNotFoundError("Trainer not found")
	})
}
