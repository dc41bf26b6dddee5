package handlers

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	resp "techpro-backoffice/http/response"
	"techpro-backoffice/logger"
	"techpro-backoffice/models"
	"techpro-backoffice/storage"
	"techpro-backoffice/utils"
)

// CourseService manages the course catalog
type CourseService struct {
	courses *storage.CourseStore
	log     *logger.Logger
}

func NewCourseService(courses *storage.CourseStore, log *logger.Logger) *CourseService {
	return &CourseService{courses: courses, log: log}
}

// Courses handles GET (list) and POST (create) on /api/courses
func (s *CourseService) Courses(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		courses, err := s.courses.All()
		if err != nil {
			s.log.Error("Error reading courses: %v", err)
			resp.Error(w, http.StatusInternalServerError, "Failed to retrieve courses")
			return
		}
		resp.List(w, len(courses), courses)

	case http.MethodPost:
		var course models.Course
		if err := json.NewDecoder(r.Body).Decode(&course); err != nil {
			resp.Error(w, http.StatusBadRequest, "Invalid JSON: "+err.Error())
			return
		}
		if err := utils.ValidateName(course.Name); err != nil {
			resp.Error(w, http.StatusBadRequest, err.Error())
			return
		}
		if course.Fee < 0 {
			resp.Error(w, http.StatusBadRequest, "Fee cannot be negative")
			return
		}

		course.ID = uuid.NewString()
		course.IsActive = true
		course.CreatedAt = time.Now()
		course.UpdatedAt = course.CreatedAt

		if err := s.courses.Add(course); err != nil {
			s.log.Error("Error creating course: %v", err)
			resp.Error(w, http.StatusInternalServerError, "Failed to create course")
			return
		}

		s.log.Info("Course created: %s (%s)", course.ID, course.Name)
		resp.Success(w, http.StatusCreated, "Course created successfully", course)

	default:
		resp.Error(w, http.StatusMethodNotAllowed, "Method not allowed")
	}
}

// CourseByID handles GET and PUT on /api/courses/{id}
func (s *CourseService) CourseByID(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimPrefix(r.URL.Path, "/api/courses/")
	if id == "" || strings.Contains(id, "/") {
		resp.Error(w, http.StatusBadRequest, "Course id is required")
		return
	}

	switch r.Method {
	case http.MethodGet:
		course, err := s.courses.Get(id)
		if err != nil {
			resp.FromError(w, err)
			return
		}
		resp.OK(w, "", course)

	case http.MethodPut:
		var patch struct {
			Name        *string  `json:"name"`
			Description *string  `json:"description"`
			Fee         *float64 `json:"fee"`
			Duration    *string  `json:"duration"`
			IsActive    *bool    `json:"isActive"`
		}
		if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
			resp.Error(w, http.StatusBadRequest, "Invalid JSON: "+err.Error())
			return
		}
		updated, err := s.courses.UpdateByID(id, func(c *models.Course) error {
			if patch.Name != nil {
				c.Name = *patch.Name
			}
			if patch.Description != nil {
				c.Description = *patch.Description
			}
			if patch.Fee != nil {
				if *patch.Fee < 0 {
					return errInvalidFee
				}
				c.Fee = *patch.Fee
			}
			if patch.Duration != nil {
				c.Duration = *patch.Duration
			}
			if patch.IsActive != nil {
				c.IsActive = *patch.IsActive
			}
			c.UpdatedAt = time.Now()
			return nil
		})
		if err != nil {
			resp.FromError(w, err)
			return
		}
		resp.OK(w, "Course updated successfully", updated)

	default:
		resp.Error(w, http.StatusMethodNotAllowed, "Method not allowed")
	}
}
