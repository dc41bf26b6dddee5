package storage

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"techpro-backoffice/errors"
	"techpro-backoffice/models"
)

type studentDoc struct {
	Students    []models.Student `json:"students"`
	LastUpdated *time.Time       `json:"lastUpdated"`
}

// StudentStore persists student records in students.json
type StudentStore struct {
	c *collection[studentDoc]
}

func NewStudentStore(dir string) *StudentStore {
	return &StudentStore{c: newCollection(dir, "students.json", func() studentDoc {
		return studentDoc{Students: []models.Student{}}
	})}
}

func (s *StudentStore) All() ([]models.Student, error) {
	var out []models.Student
	err := s.c.View(func(doc studentDoc) error {
		out = doc.Students
		return nil
	})
	return out, err
}

func (s *StudentStore) Get(id string) (*models.Student, error) {
	var found *models.Student
	err := s.c.View(func(doc studentDoc) error {
		for i := range doc.Students {
			if doc.Students[i].ID == id {
				st := doc.Students[i]
				found = &st
				return nil
			}
		}
		return errors.NewNotFoundError("Student not found")
	})
	if err != nil {
		return nil, err
	}
	return found, nil
}

// Create assigns a YYMM#### id (sequence resets each month) and prepends
// the student, newest first.
func (s *StudentStore) Create(student models.Student, now time.Time) (models.Student, error) {
	err := s.c.Update(func(doc *studentDoc) error {
		student.ID = nextStudentID(doc.Students, now)
		student.CreatedAt = now
		student.UpdatedAt = now
		doc.Students = append([]models.Student{student}, doc.Students...)
		doc.LastUpdated = &now
		return nil
	})
	return student, err
}

// BulkCreate inserts every student, assigning ids sequentially, and reports
// how many were added. Students whose email already exists are skipped.
func (s *StudentStore) BulkCreate(students []models.Student, now time.Time) (int, error) {
	added := 0
	err := s.c.Update(func(doc *studentDoc) error {
		existing := make(map[string]bool, len(doc.Students))
		for _, st := range doc.Students {
			existing[strings.ToLower(st.Email)] = true
		}
		for _, st := range students {
			key := strings.ToLower(st.Email)
			if existing[key] {
				continue
			}
			existing[key] = true
			st.ID = nextStudentID(doc.Students, now)
			st.CreatedAt = now
			st.UpdatedAt = now
			doc.Students = append([]models.Student{st}, doc.Students...)
			added++
		}
		doc.LastUpdated = &now
		return nil
	})
	return added, err
}

func (s *StudentStore) UpdateByID(id string, mutate func(st *models.Student) error) (models.Student, error) {
	var updated models.Student
	err := s.c.Update(func(doc *studentDoc) error {
		for i := range doc.Students {
			if doc.Students[i].ID == id {
				if err := mutate(&doc.Students[i]); err != nil {
					return err
				}
				doc.Students[i].UpdatedAt = time.Now()
				updated = doc.Students[i]
				now := time.Now()
				doc.LastUpdated = &now
				return nil
			}
		}
		return errors.NewNotFoundError("Student not found")
	})
	return updated, err
}

func (s *StudentStore) Delete(id string) error {
	return s.c.Update(func(doc *studentDoc) error {
		for i := range doc.Students {
			if doc.Students[i].ID == id {
				doc.Students = append(doc.Students[:i], doc.Students[i+1:]...)
				now := time.Now()
				doc.LastUpdated = &now
				return nil
			}
		}
		return errors.NewNotFoundError("Student not found")
	})
}

// nextStudentID generates the YYMM#### id: two-digit year, two-digit month,
// then a four-digit sequence scoped to that month.
func nextStudentID(students []models.Student, now time.Time) string {
	yearMonth := now.Format("0601")
	maxSequence := 0
	for _, st := range students {
		if len(st.ID) != 8 || !strings.HasPrefix(st.ID, yearMonth) {
			continue
		}
		if seq, err := strconv.Atoi(st.ID[4:]); err == nil && seq > maxSequence {
			maxSequence = seq
		}
	}
	return fmt.Sprintf("%s%04d", yearMonth, maxSequence+1)
}
