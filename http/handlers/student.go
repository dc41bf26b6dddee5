package handlers

import (
	"encoding/json"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	resp "techpro-backoffice/http/response"
	"techpro-backoffice/logger"
	"techpro-backoffice/models"
	"techpro-backoffice/services"
	"techpro-backoffice/storage"
	"techpro-backoffice/utils"
)

// StudentService manages student records
type StudentService struct {
	students *storage.StudentStore
	log      *logger.Logger
}

func NewStudentService(students *storage.StudentStore, log *logger.Logger) *StudentService {
	return &StudentService{students: students, log: log}
}

// Students handles GET (list) and POST (create) on /api/students
func (s *StudentService) Students(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		s.list(w)
	case http.MethodPost:
		s.create(w, r)
	default:
		resp.Error(w, http.StatusMethodNotAllowed, "Method not allowed")
	}
}

func (s *StudentService) list(w http.ResponseWriter) {
	students, err := s.students.All()
	if err != nil {
		s.log.Error("Error reading students: %v", err)
		resp.Error(w, http.StatusInternalServerError, "Failed to retrieve students")
		return
	}
	resp.List(w, len(students), students)
}

func (s *StudentService) create(w http.ResponseWriter, r *http.Request) {
	var student models.Student
	if err := json.NewDecoder(r.Body).Decode(&student); err != nil {
		resp.Error(w, http.StatusBadRequest, "Invalid JSON: "+err.Error())
		return
	}

	if err := utils.ValidateName(student.Name); err != nil {
		resp.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := utils.ValidateEmail(student.Email); err != nil {
		resp.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	created, err := s.students.Create(student, time.Now())
	if err != nil {
		s.log.Error("Error creating student: %v", err)
		resp.Error(w, http.StatusInternalServerError, "Failed to create student")
		return
	}

	s.log.Info("Student created: %s (%s)", created.ID, created.Email)
	resp.Success(w, http.StatusCreated, "Student created successfully", created)
}

// StudentByID handles GET, PUT and DELETE on /api/students/{id}
func (s *StudentService) StudentByID(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimPrefix(r.URL.Path, "/api/students/")
	if id == "" || strings.Contains(id, "/") {
		resp.Error(w, http.StatusBadRequest, "Student id is required")
		return
	}

	switch r.Method {
	case http.MethodGet:
		student, err := s.students.Get(id)
		if err != nil {
			resp.FromError(w, err)
			return
		}
		resp.OK(w, "", student)

	case http.MethodPut:
		var patch models.Student
		if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
			resp.Error(w, http.StatusBadRequest, "Invalid JSON: "+err.Error())
			return
		}
		updated, err := s.students.UpdateByID(id, func(st *models.Student) error {
			applyStudentPatch(st, patch)
			return nil
		})
		if err != nil {
			resp.FromError(w, err)
			return
		}
		resp.OK(w, "Student updated successfully", updated)

	case http.MethodDelete:
		if err := s.students.Delete(id); err != nil {
			resp.FromError(w, err)
			return
		}
		resp.OK(w, "Student deleted successfully", nil)

	default:
		resp.Error(w, http.StatusMethodNotAllowed, "Method not allowed")
	}
}

// applyStudentPatch copies only the submitted fields onto the record
func applyStudentPatch(st *models.Student, patch models.Student) {
	if patch.Name != "" {
		st.Name = patch.Name
	}
	if patch.Email != "" {
		st.Email = patch.Email
	}
	if patch.Phone != "" {
		st.Phone = patch.Phone
	}
	if patch.Education != "" {
		st.Education = patch.Education
	}
	if patch.DesiredCourse != "" {
		st.DesiredCourse = patch.DesiredCourse
	}
	if patch.Batch != "" {
		st.Batch = patch.Batch
	}
	if patch.Status != "" {
		st.Status = patch.Status
	}
}

// Stats handles GET /api/students/stats/dashboard. The completion, rating
// and trend figures are derived display heuristics, not stored data.
func (s *StudentService) Stats(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		resp.Error(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	students, err := s.students.All()
	if err != nil {
		s.log.Error("Error reading students: %v", err)
		resp.Error(w, http.StatusInternalServerError, "Failed to calculate statistics")
		return
	}

	total := len(students)
	courses := map[string]bool{}
	for _, st := range students {
		if st.DesiredCourse != "" {
			courses[st.DesiredCourse] = true
		}
	}

	variance := total / 20
	if variance > 7 {
		variance = 7
	}
	avgCompletion := 68 + variance
	if avgCompletion > 85 {
		avgCompletion = 85
	}

	rating := 4.6 + float64(total)/1000
	if rating > 4.9 {
		rating = 4.9
	}

	trend := total * 12 / 100
	if trend > 25 {
		trend = 25
	}

	resp.OK(w, "", models.DashboardStats{
		TotalStudents: total,
		ActiveCourses: len(courses),
		AvgCompletion: avgCompletion,
		CourseRating:  float64(int(rating*10)) / 10,
		ReviewCount:   total * 27 / 100,
		TrendPercent:  trend,
	})
}

// Import handles POST /api/students/import, a bulk upload via spreadsheet
func (s *StudentService) Import(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		resp.Error(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		resp.Error(w, http.StatusBadRequest, "Invalid file")
		return
	}
	defer file.Close()

	s.log.Info("Processing student upload: %s", header.Filename)

	tempFile, err := os.CreateTemp("", "students_*.xlsx")
	if err != nil {
		s.log.Error("Error creating temp file: %v", err)
		resp.Error(w, http.StatusInternalServerError, "Error processing file")
		return
	}
	tempPath := tempFile.Name()
	defer func() {
		tempFile.Close()
		os.Remove(tempPath)
	}()

	if _, err := io.Copy(tempFile, file); err != nil {
		s.log.Error("Error copying upload: %v", err)
		resp.Error(w, http.StatusInternalServerError, "Error saving file")
		return
	}
	if err := tempFile.Close(); err != nil {
		s.log.Warn("Error closing temp file: %v", err)
	}

	students, err := services.ParseStudentsExcel(tempPath)
	if err != nil {
		resp.Error(w, http.StatusBadRequest, "Error parsing Excel: "+err.Error())
		return
	}

	added, err := s.students.BulkCreate(students, time.Now())
	if err != nil {
		s.log.Error("Error saving imported students: %v", err)
		resp.Error(w, http.StatusInternalServerError, "Failed to save students")
		return
	}

	s.log.Info("Bulk upload completed: %d added, %d skipped", added, len(students)-added)
	resp.OK(w, "Import completed", map[string]int{
		"total":   len(students),
		"added":   added,
		"skipped": len(students) - added,
	})
}
