package handlers

import (
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	resp "techpro-backoffice/http/response"
	"techpro-backoffice/logger"
	"techpro-backoffice/models"
	"techpro-backoffice/services"
	"techpro-backoffice/storage"
	"techpro-backoffice/utils"
)

// AuthService handles platform sign-up, verification and the admin logins
type AuthService struct {
	users  *storage.UserStore
	admins *storage.AdminStore
	mailer *services.Mailer
	log    *logger.Logger
}

func NewAuthService(users *storage.UserStore, admins *storage.AdminStore, mailer *services.Mailer, log *logger.Logger) *AuthService {
	return &AuthService{users: users, admins: admins, mailer: mailer, log: log}
}

type signupRequest struct {
	FirstName  string `json:"firstName"`
	LastName   string `json:"lastName"`
	Identifier string `json:"identifier"`
	Password   string `json:"password"`
}

// Users handles GET (admin list) and POST (signup) on /api/users
func (s *AuthService) Users(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		users, err := s.users.All()
		if err != nil {
			s.log.Error("Error reading users: %v", err)
			resp.Error(w, http.StatusInternalServerError, "Failed to retrieve users")
			return
		}
		public := make([]models.PublicUser, 0, len(users))
		for i := range users {
			public = append(public, users[i].Public())
		}
		resp.List(w, len(public), public)

	case http.MethodPost:
		s.signup(w, r)

	default:
		resp.Error(w, http.StatusMethodNotAllowed, "Method not allowed")
	}
}

// Signup handles POST /api/users/signup. The identifier may be an email
// address or an Indian mobile number; email signups get a verification link
// while phone signups are verified immediately.
func (s *AuthService) Signup(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		resp.Error(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}
	s.signup(w, r)
}

func (s *AuthService) signup(w http.ResponseWriter, r *http.Request) {
	var req signupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		resp.Error(w, http.StatusBadRequest, "Invalid JSON: "+err.Error())
		return
	}

	if req.FirstName == "" || req.Identifier == "" || req.Password == "" {
		resp.Error(w, http.StatusBadRequest, "firstName, identifier and password are required")
		return
	}
	if len(req.Password) < 6 {
		resp.Error(w, http.StatusBadRequest, "Password must be at least 6 characters")
		return
	}

	identifier := strings.TrimSpace(req.Identifier)
	var identifierType string
	switch {
	case utils.EmailRegex.MatchString(identifier):
		identifierType = "email"
		identifier = strings.ToLower(identifier)
	case utils.IndianPhoneRegex.MatchString(identifier):
		identifierType = "phone"
	default:
		resp.Error(w, http.StatusBadRequest, "Identifier must be a valid email or mobile number")
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		s.log.Error("Error hashing password: %v", err)
		resp.Error(w, http.StatusInternalServerError, "Signup failed")
		return
	}

	now := time.Now()
	user := models.User{
		ID:             uuid.NewString(),
		FirstName:      req.FirstName,
		LastName:       req.LastName,
		Email:          identifier,
		IdentifierType: identifierType,
		PasswordHash:   string(hash),
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if identifierType == "email" {
		user.VerificationToken = randomToken()
	} else {
		user.IsVerified = true
	}

	if err := s.users.Add(user); err != nil {
		resp.FromError(w, err)
		return
	}

	if identifierType == "email" {
		go func() {
			if err := s.mailer.SendVerificationEmail(user.Email, user.FirstName, user.VerificationToken); err != nil {
				s.log.Warn("Verification email to %s failed: %v", user.Email, err)
			}
		}()
	}

	s.log.Info("User registered: %s (%s)", user.ID, identifierType)
	resp.Success(w, http.StatusCreated, "Registration successful", user.Public())
}

// Verify handles GET /api/users/verify/{token}
func (s *AuthService) Verify(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		resp.Error(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	token := strings.TrimPrefix(r.URL.Path, "/api/users/verify/")
	if token == "" {
		resp.Error(w, http.StatusBadRequest, "Verification token is required")
		return
	}

	user, err := s.users.FindByVerificationToken(token)
	if err != nil {
		s.log.Error("Error reading users: %v", err)
		resp.Error(w, http.StatusInternalServerError, "Verification failed")
		return
	}
	if user == nil {
		resp.Error(w, http.StatusNotFound, "Invalid or expired verification link")
		return
	}

	updated, err := s.users.UpdateByID(user.ID, func(u *models.User) error {
		u.IsVerified = true
		u.VerificationToken = ""
		return nil
	})
	if err != nil {
		resp.FromError(w, err)
		return
	}

	s.log.Info("User verified: %s", updated.ID)
	resp.OK(w, "Email verified successfully", updated.Public())
}

type loginRequest struct {
	Identifier string `json:"identifier"`
	Password   string `json:"password"`
}

// Login handles POST /api/users/login
func (s *AuthService) Login(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		resp.Error(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		resp.Error(w, http.StatusBadRequest, "Invalid JSON: "+err.Error())
		return
	}

	user, err := s.users.FindByEmail(strings.TrimSpace(req.Identifier))
	if err != nil {
		s.log.Error("Error reading users: %v", err)
		resp.Error(w, http.StatusInternalServerError, "Login failed")
		return
	}
	if user == nil {
		resp.Error(w, http.StatusUnauthorized, "Invalid credentials")
		return
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		resp.Error(w, http.StatusUnauthorized, "Invalid credentials")
		return
	}
	if !user.IsVerified {
		resp.Error(w, http.StatusForbidden, "Please verify your email before logging in")
		return
	}

	if user.IdentifierType == "email" {
		name := user.FirstName
		email := user.Email
		go func() {
			if err := s.mailer.SendLoginSuccessEmail(email, name, "user"); err != nil {
				s.log.Warn("Login email to %s failed: %v", email, err)
			}
		}()
	}

	s.log.Info("User login: %s", user.ID)
	resp.OK(w, "Login successful", user.Public())
}

type forgotPasswordRequest struct {
	Identifier string `json:"identifier"`
}

// ForgotPassword handles POST /api/forgot-password. The response does
// not reveal whether the account exists.
func (s *AuthService) ForgotPassword(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		resp.Error(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	var req forgotPasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		resp.Error(w, http.StatusBadRequest, "Invalid JSON: "+err.Error())
		return
	}

	const reply = "If an account exists, a reset link has been sent"

	user, err := s.users.FindByEmail(strings.TrimSpace(req.Identifier))
	if err != nil {
		s.log.Error("Error reading users: %v", err)
		resp.Error(w, http.StatusInternalServerError, "Request failed")
		return
	}
	if user == nil || user.IdentifierType != "email" {
		resp.OK(w, reply, nil)
		return
	}

	token := randomToken()
	expiry := time.Now().Add(time.Hour)
	if _, err := s.users.UpdateByID(user.ID, func(u *models.User) error {
		u.ResetToken = token
		u.ResetTokenExpiry = &expiry
		return nil
	}); err != nil {
		resp.FromError(w, err)
		return
	}

	email, name := user.Email, user.FirstName
	go func() {
		if err := s.mailer.SendPasswordResetEmail(email, name, token); err != nil {
			s.log.Warn("Reset email to %s failed: %v", email, err)
		}
	}()

	resp.OK(w, reply, nil)
}

type resetPasswordRequest struct {
	Token       string `json:"token"`
	NewPassword string `json:"newPassword"`
}

// ResetPassword handles POST /api/reset-password
func (s *AuthService) ResetPassword(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		resp.Error(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	var req resetPasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		resp.Error(w, http.StatusBadRequest, "Invalid JSON: "+err.Error())
		return
	}
	if req.Token == "" || len(req.NewPassword) < 6 {
		resp.Error(w, http.StatusBadRequest, "Token and a password of at least 6 characters are required")
		return
	}

	users, err := s.users.All()
	if err != nil {
		s.log.Error("Error reading users: %v", err)
		resp.Error(w, http.StatusInternalServerError, "Reset failed")
		return
	}

	var target *models.User
	for i := range users {
		if users[i].ResetToken != "" && users[i].ResetToken == req.Token {
			target = &users[i]
			break
		}
	}
	if target == nil || target.ResetTokenExpiry == nil || time.Now().After(*target.ResetTokenExpiry) {
		resp.Error(w, http.StatusBadRequest, "Invalid or expired reset token")
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		s.log.Error("Error hashing password: %v", err)
		resp.Error(w, http.StatusInternalServerError, "Reset failed")
		return
	}

	if _, err := s.users.UpdateByID(target.ID, func(u *models.User) error {
		u.PasswordHash = string(hash)
		u.ResetToken = ""
		u.ResetTokenExpiry = nil
		return nil
	}); err != nil {
		resp.FromError(w, err)
		return
	}

	s.log.Info("Password reset for user %s", target.ID)
	resp.OK(w, "Password reset successfully", nil)
}

type adminLoginRequest struct {
	Email      string `json:"email"`
	Identifier string `json:"identifier"`
	Password   string `json:"password"`
}

// AdminLogin handles POST /api/admins/login
func (s *AuthService) AdminLogin(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		resp.Error(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	var req adminLoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		resp.Error(w, http.StatusBadRequest, "Invalid JSON: "+err.Error())
		return
	}

	admin, err := s.admins.FindAdmin(req.Email)
	if err != nil {
		s.log.Error("Error reading admins: %v", err)
		resp.Error(w, http.StatusInternalServerError, "Login failed")
		return
	}
	s.finishAdminLogin(w, admin, req.Password, "admin")
}

// SuperAdminLogin handles POST /api/super-admins/login. The identifier may
// be an email address or the super admin id.
func (s *AuthService) SuperAdminLogin(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		resp.Error(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	var req adminLoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		resp.Error(w, http.StatusBadRequest, "Invalid JSON: "+err.Error())
		return
	}
	identifier := req.Identifier
	if identifier == "" {
		identifier = req.Email
	}

	admin, err := s.admins.FindSuperAdmin(identifier)
	if err != nil {
		s.log.Error("Error reading admins: %v", err)
		resp.Error(w, http.StatusInternalServerError, "Login failed")
		return
	}
	s.finishAdminLogin(w, admin, req.Password, "super admin")
}

func (s *AuthService) finishAdminLogin(w http.ResponseWriter, admin *models.Admin, password, role string) {
	if admin == nil {
		resp.Error(w, http.StatusUnauthorized, "Invalid credentials")
		return
	}
	if err := bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(password)); err != nil {
		resp.Error(w, http.StatusUnauthorized, "Invalid credentials")
		return
	}

	email, name := admin.Email, admin.Name
	go func() {
		if err := s.mailer.SendLoginSuccessEmail(email, name, role); err != nil {
			s.log.Warn("Login email to %s failed: %v", email, err)
		}
	}()

	s.log.Info("%s login: %s", role, admin.ID)
	resp.OK(w, "Login successful", map[string]string{
		"id":    admin.ID,
		"name":  admin.Name,
		"email": admin.Email,
		"role":  admin.Role,
	})
}

func randomToken() string {
	buf := make([]byte, 24)
	if _, err := rand.Read(buf); err != nil {
		return uuid.NewString()
	}
	return hex.EncodeToString(buf)
}
