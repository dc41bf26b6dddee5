package handlers

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	apperrors "techpro-backoffice/errors"
	resp "techpro-backoffice/http/response"
	"techpro-backoffice/logger"
	"techpro-backoffice/models"
	"techpro-backoffice/storage"
	"techpro-backoffice/utils"
)

// TrainerService manages trainer applications and profiles
type TrainerService struct {
	trainers *storage.TrainerStore
	log      *logger.Logger
}

func NewTrainerService(trainers *storage.TrainerStore, log *logger.Logger) *TrainerService {
	return &TrainerService{trainers: trainers, log: log}
}

type trainerApplication struct {
	Name            string                        `json:"name"`
	Email           string                        `json:"email"`
	Phone           string                        `json:"phone"`
	Password        string                        `json:"password"`
	ProfilePicture  string                        `json:"profilePicture"`
	Bio             string                        `json:"bio"`
	Experience      string                        `json:"experience"`
	Qualifications  string                        `json:"qualifications"`
	Specializations models.TrainerSpecializations `json:"specializations"`
}

// Trainers handles GET (approved roster) and POST (apply) on /api/trainers
func (s *TrainerService) Trainers(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		s.listApproved(w)
	case http.MethodPost:
		s.apply(w, r)
	default:
		resp.Error(w, http.StatusMethodNotAllowed, "Method not allowed")
	}
}

// listApproved returns approved trainers only; pending and rejected
// applications stay internal.
func (s *TrainerService) listApproved(w http.ResponseWriter) {
	trainers, err := s.trainers.All()
	if err != nil {
		s.log.Error("Error reading trainers: %v", err)
		resp.Error(w, http.StatusInternalServerError, "Failed to retrieve trainers")
		return
	}
	approved := make([]models.Trainer, 0, len(trainers))
	for _, t := range trainers {
		if t.Status == utils.TrainerApproved {
			approved = append(approved, t.Public())
		}
	}
	resp.List(w, len(approved), approved)
}

// Apply handles POST /api/trainers/apply
func (s *TrainerService) Apply(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		resp.Error(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}
	s.apply(w, r)
}

func (s *TrainerService) apply(w http.ResponseWriter, r *http.Request) {
	var app trainerApplication
	if err := json.NewDecoder(r.Body).Decode(&app); err != nil {
		resp.Error(w, http.StatusBadRequest, "Invalid JSON: "+err.Error())
		return
	}

	if err := utils.ValidateName(app.Name); err != nil {
		resp.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := utils.ValidateEmail(app.Email); err != nil {
		resp.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	if len(app.Password) < 6 {
		resp.Error(w, http.StatusBadRequest, "Password must be at least 6 characters")
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(app.Password), bcrypt.DefaultCost)
	if err != nil {
		s.log.Error("Error hashing password: %v", err)
		resp.Error(w, http.StatusInternalServerError, "Failed to process application")
		return
	}

	trainer := models.Trainer{
		ID:              uuid.NewString(),
		Name:            app.Name,
		Email:           app.Email,
		Phone:           app.Phone,
		PasswordHash:    string(hash),
		ProfilePicture:  app.ProfilePicture,
		Bio:             app.Bio,
		Experience:      app.Experience,
		Qualifications:  app.Qualifications,
		Specializations: app.Specializations,
		Status:          utils.TrainerPending,
		AppliedAt:       time.Now(),
	}

	if err := s.trainers.Add(trainer); err != nil {
		resp.FromError(w, err)
		return
	}

	s.log.Info("Trainer application received: %s (%s)", trainer.ID, trainer.Email)
	resp.Success(w, http.StatusCreated, "Application submitted successfully", trainer.Public())
}

// Applications handles GET /api/trainers/applications, the full list
// including pending and rejected, for admin review.
func (s *TrainerService) Applications(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		resp.Error(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}
	trainers, err := s.trainers.All()
	if err != nil {
		s.log.Error("Error reading trainers: %v", err)
		resp.Error(w, http.StatusInternalServerError, "Failed to retrieve applications")
		return
	}
	public := make([]models.Trainer, 0, len(trainers))
	for _, t := range trainers {
		public = append(public, t.Public())
	}
	resp.List(w, len(public), public)
}

type reviewRequest struct {
	Status     string `json:"status"`
	ReviewedBy string `json:"reviewedBy"`
}

// Review handles PUT /api/trainers/{id}/review, approving or rejecting
// a pending application.
func (s *TrainerService) Review(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPut {
		resp.Error(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	id := strings.TrimSuffix(strings.TrimPrefix(r.URL.Path, "/api/trainers/"), "/review")
	if id == "" {
		resp.Error(w, http.StatusBadRequest, "Trainer id is required")
		return
	}

	var req reviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		resp.Error(w, http.StatusBadRequest, "Invalid JSON: "+err.Error())
		return
	}
	if req.Status != utils.TrainerApproved && req.Status != utils.TrainerRejected {
		resp.Error(w, http.StatusBadRequest, "Status must be approved or rejected")
		return
	}

	updated, err := s.trainers.UpdateByID(id, func(t *models.Trainer) error {
		if t.Status != utils.TrainerPending {
			return apperrors.NewConflictError("Application has already been reviewed")
		}
		now := time.Now()
		t.Status = req.Status
		t.ReviewedAt = &now
		t.ReviewedBy = req.ReviewedBy
		return nil
	})
	if err != nil {
		resp.FromError(w, err)
		return
	}

	s.log.Info("Trainer %s reviewed: %s", id, req.Status)
	resp.OK(w, "Application "+req.Status, updated.Public())
}

type trainerLoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login handles POST /api/trainers/login. Only approved trainers may log in.
func (s *TrainerService) Login(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		resp.Error(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	var req trainerLoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		resp.Error(w, http.StatusBadRequest, "Invalid JSON: "+err.Error())
		return
	}

	trainer, err := s.trainers.FindByEmail(req.Email)
	if err != nil {
		s.log.Error("Error reading trainers: %v", err)
		resp.Error(w, http.StatusInternalServerError, "Login failed")
		return
	}
	if trainer == nil {
		resp.Error(w, http.StatusUnauthorized, "Invalid email or password")
		return
	}
	if err := bcrypt.CompareHashAndPassword([]byte(trainer.PasswordHash), []byte(req.Password)); err != nil {
		resp.Error(w, http.StatusUnauthorized, "Invalid email or password")
		return
	}
	if trainer.Status != utils.TrainerApproved {
		resp.Error(w, http.StatusForbidden, "Your application has not been approved yet")
		return
	}

	s.log.Info("Trainer login: %s", trainer.Email)
	resp.OK(w, "Login successful", trainer.Public())
}

// TrainerByID handles DELETE /api/trainers/{id}
func (s *TrainerService) TrainerByID(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimPrefix(r.URL.Path, "/api/trainers/")
	if id == "" || strings.Contains(id, "/") {
		resp.Error(w, http.StatusBadRequest, "Trainer id is required")
		return
	}

	switch r.Method {
	case http.MethodDelete:
		if err := s.trainers.Delete(id); err != nil {
			resp.FromError(w, err)
			return
		}
		s.log.Info("Trainer deleted: %s", id)
		resp.OK(w, "Trainer deleted successfully", nil)
	default:
		resp.Error(w, http.StatusMethodNotAllowed, "Method not allowed")
	}
}
