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

// CounselorService manages the counseling roster
type CounselorService struct {
	counselors *storage.CounselorStore
	log        *logger.Logger
}

func NewCounselorService(counselors *storage.CounselorStore, log *logger.Logger) *CounselorService {
	return &CounselorService{counselors: counselors, log: log}
}

// Counselors handles GET (list) and POST (add) on /api/counselors
func (s *CounselorService) Counselors(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		s.list(w)
	case http.MethodPost:
		s.add(w, r)
	default:
		resp.Error(w, http.StatusMethodNotAllowed, "Method not allowed")
	}
}

func (s *CounselorService) list(w http.ResponseWriter) {
	counselors, err := s.counselors.All()
	if err != nil {
		s.log.Error("Error reading counselors: %v", err)
		resp.Error(w, http.StatusInternalServerError, "Failed to read counselors")
		return
	}
	resp.OK(w, "", counselors)
}

func (s *CounselorService) add(w http.ResponseWriter, r *http.Request) {
	var counselor models.Counselor
	if err := json.NewDecoder(r.Body).Decode(&counselor); err != nil {
		resp.Error(w, http.StatusBadRequest, "Invalid JSON: "+err.Error())
		return
	}

	if err := utils.ValidateName(counselor.Name); err != nil {
		resp.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := utils.ValidateEmail(counselor.Email); err != nil {
		resp.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := utils.ValidateMode(counselor.Mode); err != nil {
		resp.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	counselor.ID = uuid.NewString()
	counselor.CreatedAt = time.Now()

	if err := s.counselors.Add(counselor); err != nil {
		s.log.Error("Error adding counselor: %v", err)
		resp.Error(w, http.StatusInternalServerError, "Failed to add counselor")
		return
	}

	s.log.Info("Counselor added: %s (%s, mode=%s)", counselor.Name, counselor.Email, counselor.Mode)
	resp.OK(w, "Counselor added", counselor)
}

// CounselorByID handles DELETE /api/counselors/{id}
func (s *CounselorService) CounselorByID(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodDelete {
		resp.Error(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	id := strings.TrimPrefix(r.URL.Path, "/api/counselors/")
	if id == "" {
		resp.Error(w, http.StatusBadRequest, "Counselor id is required")
		return
	}

	if err := s.counselors.Delete(id); err != nil {
		resp.FromError(w, err)
		return
	}

	s.log.Info("Counselor deleted: %s", id)
	resp.OK(w, "Counselor deleted", nil)
}
