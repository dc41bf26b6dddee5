package storage

import (
	"techpro-backoffice/errors"
	"techpro-backoffice/models"
)

type courseDoc struct {
	Courses []models.Course `json:"courses"`
}

// CourseStore persists the course catalog in courses.json
type CourseStore struct {
	c *collection[courseDoc]
}

func NewCourseStore(dir string) *CourseStore {
	return &CourseStore{c: newCollection(dir, "courses.json", func() courseDoc {
		return courseDoc{Courses: []models.Course{}}
	})}
}

func (s *CourseStore) All() ([]models.Course, error) {
	var out []models.Course
	err := s.c.View(func(doc courseDoc) error {
		out = doc.Courses
		return nil
	})
	return out, err
}

func (s *CourseStore) Get(id string) (*models.Course, error) {
	var found *models.Course
	err := s.c.View(func(doc courseDoc) error {
		for i := range doc.Courses {
			if doc.Courses[i].ID == id {
				c := doc.Courses[i]
				found = &c
				return nil
			}
		}
		return errors.NewNotFoundError("Course not found")
	})
	if err != nil {
		return nil, err
	}
	return found, nil
}

func (s *CourseStore) Add(course models.Course) error {
	return s.c.Update(func(doc *courseDoc) error {
		doc.Courses = append(doc.Courses, course)
		return nil
	})
}

func (s *CourseStore) UpdateByID(id string, mutate func(c *models.Course) error) (models.Course, error) {
	var updated models.Course
	err := s.c.Update(func(doc *courseDoc) error {
		for i := range doc.Courses {
			if doc.Courses[i].ID == id {
				if err := mutate(&doc.Courses[i]); err != nil {
					return err
				}
				updated = doc.Courses[i]
				return nil
			}
		}
		return errors.NewNotFoundError("Course not found")
	})
	return updated, err
}
