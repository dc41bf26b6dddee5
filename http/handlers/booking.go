package handlers

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	apperrors "techpro-backoffice/errors"
	resp "techpro-backoffice/http/response"
	"techpro-backoffice/logger"
	"techpro-backoffice/models"
	"techpro-backoffice/scheduling"
	"techpro-backoffice/services"
	"techpro-backoffice/storage"
	"techpro-backoffice/utils"
)

// BookingMailer is the subset of the mailer the booking flow uses
type BookingMailer interface {
	SendBookingConfirmation(b models.Booking) error
	SendCounselorAssignment(b models.Booking) error
}

// BookingService handles counseling session bookings, including counselor
// auto-assignment on submission.
type BookingService struct {
	bookings   *storage.BookingStore
	counselors *storage.CounselorStore
	mailer     BookingMailer
	log        *logger.Logger
}

func NewBookingService(bookings *storage.BookingStore, counselors *storage.CounselorStore, mailer BookingMailer, log *logger.Logger) *BookingService {
	return &BookingService{bookings: bookings, counselors: counselors, mailer: mailer, log: log}
}

// Bookings handles GET (list) and POST (submit) on /api/counsellor-bookings.
// Offline submissions are auto-assigned immediately; online submissions stay
// pending for manual assignment.
func (s *BookingService) Bookings(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		s.list(w)
	case http.MethodPost:
		s.create(w, r, false)
	default:
		resp.Error(w, http.StatusMethodNotAllowed, "Method not allowed")
	}
}

// InPersonBookings handles GET and POST on /api/in-person-bookings. Unlike
// the regular submission flow, a walk-in booking is only accepted when the
// engine finds an eligible counselor.
func (s *BookingService) InPersonBookings(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		s.list(w)
	case http.MethodPost:
		s.create(w, r, true)
	default:
		resp.Error(w, http.StatusMethodNotAllowed, "Method not allowed")
	}
}

func (s *BookingService) list(w http.ResponseWriter) {
	bookings, err := s.bookings.All()
	if err != nil {
		s.log.Error("Error reading bookings: %v", err)
		resp.Error(w, http.StatusInternalServerError, "Failed to read bookings")
		return
	}
	resp.OK(w, "", bookings)
}

type createBookingRequest struct {
	Name               string `json:"name"`
	Email              string `json:"email"`
	Phone              string `json:"phone"`
	Course             string `json:"course"`
	Notes              string `json:"notes"`
	Location           string `json:"location"`
	SelectedDate       string `json:"selectedDate"`
	SelectedTime       string `json:"selectedTime"`
	Mode               string `json:"mode"`
	PreferredCounselor string `json:"preferredCounselor"`
}

func (s *BookingService) create(w http.ResponseWriter, r *http.Request, requireAssignment bool) {
	var req createBookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		resp.Error(w, http.StatusBadRequest, "Invalid JSON: "+err.Error())
		return
	}

	if err := utils.ValidateName(req.Name); err != nil {
		resp.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := utils.ValidateEmail(req.Email); err != nil {
		resp.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	if req.Mode != utils.ModeOnline && req.Mode != utils.ModeOffline {
		resp.Error(w, http.StatusBadRequest, "mode must be online or offline")
		return
	}

	roster, err := s.counselors.All()
	if err != nil {
		s.log.Error("Error reading counselors: %v", err)
		resp.Error(w, http.StatusInternalServerError, "Failed to create booking")
		return
	}

	booking := models.Booking{
		ID:                 uuid.NewString(),
		Name:               req.Name,
		Email:              req.Email,
		Phone:              req.Phone,
		Course:             req.Course,
		Notes:              req.Notes,
		Location:           req.Location,
		SelectedDate:       req.SelectedDate,
		SelectedTime:       req.SelectedTime,
		Mode:               req.Mode,
		PreferredCounselor: req.PreferredCounselor,
		Status:             utils.BookingPending,
		SubmittedAt:        time.Now(),
	}

	// Walk-ins always go through the engine; the regular flow only
	// auto-assigns offline submissions.
	autoAssign := requireAssignment || req.Mode == utils.ModeOffline

	created, err := s.bookings.Create(func(existing []models.Booking) (models.Booking, error) {
		if !autoAssign {
			return booking, nil
		}

		chosen := scheduling.AutoAssign(roster, existing, req.Mode)
		if chosen == nil {
			s.log.Warn("No available counselor for auto-assignment (mode=%s)", req.Mode)
			if requireAssignment {
				// Reject without writing anything.
				return booking, errNoCounselor
			}
			return booking, nil
		}

		s.logAssignment(roster, existing, req.Mode)

		now := time.Now()
		booking.AssignedCounselor = chosen.Name
		booking.CounselorEmail = chosen.Email
		booking.AutoAssigned = true
		booking.Status = utils.BookingConfirmed
		booking.AssignedAt = &now
		return booking, nil
	})
	if err != nil {
		// The no-counselor rejection is a user-facing outcome; anything
		// else is a store failure and must not masquerade as one.
		if apperrors.Is(err, errNoCounselor) {
			resp.Error(w, http.StatusBadRequest, "No counselors available for the selected time and location")
			return
		}
		s.log.Error("Error creating booking: %v", err)
		resp.Error(w, http.StatusInternalServerError, "Failed to create booking")
		return
	}

	go services.PublishEvent(services.EventBookingCreated, created.ID, map[string]interface{}{
		"booking_id": created.ID,
		"mode":       created.Mode,
		"status":     created.Status,
	})

	if created.AssignedCounselor != "" {
		s.log.Info("Auto-assigned %s to %s", created.Name, created.AssignedCounselor)
		s.notifyAssignment(created)
	}

	resp.OK(w, "Booking submitted successfully", created)
}

// logAssignment records the load analysis behind an assignment decision
func (s *BookingService) logAssignment(roster []models.Counselor, existing []models.Booking, mode string) {
	s.log.Info("Auto-assignment analysis (mode=%s):", mode)
	for _, cl := range scheduling.AssignmentAnalysis(roster, existing, mode) {
		s.log.Info("   %s: %d assignments", cl.Counselor.Name, cl.Load)
	}
}

// notifyAssignment fires both assignment emails and the assigned event,
// best-effort: the booking is already persisted, email failure only logs.
func (s *BookingService) notifyAssignment(b models.Booking) {
	go func() {
		if err := s.mailer.SendBookingConfirmation(b); err != nil {
			s.log.Error("Student email error for booking %s: %v", b.ID, err)
		}
	}()
	go func() {
		if err := s.mailer.SendCounselorAssignment(b); err != nil {
			s.log.Error("Counselor email error for booking %s: %v", b.ID, err)
		}
	}()
	go services.PublishEvent(services.EventBookingAssigned, b.ID, map[string]interface{}{
		"booking_id": b.ID,
		"counselor":  b.AssignedCounselor,
		"status":     b.Status,
	})
}

type assignRequest struct {
	BookingID       string `json:"bookingId"`
	Counselor       string `json:"counselor"`
	MeetingLink     string `json:"meetingLink"`
	LocationAddress string `json:"locationAddress"`
	Notes           string `json:"notes"`
}

// Assign handles POST /api/counsellor-bookings/assign: the admin assigns a
// counselor plus the session access details. The booking moves to the
// "assigned" state the reminder sweep watches.
func (s *BookingService) Assign(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		resp.Error(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	var req assignRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		resp.Error(w, http.StatusBadRequest, "Invalid JSON: "+err.Error())
		return
	}
	if req.BookingID == "" || req.Counselor == "" {
		resp.Error(w, http.StatusBadRequest, "bookingId and counselor are required")
		return
	}

	counselorEmail := s.lookupCounselorEmail(req.Counselor)

	updated, err := s.bookings.UpdateByID(req.BookingID, func(b *models.Booking) error {
		if err := assignable(b.Status); err != nil {
			return err
		}
		now := time.Now()
		b.Status = utils.BookingAssigned
		b.AssignedCounselor = req.Counselor
		b.CounselorEmail = counselorEmail
		b.MeetingLink = req.MeetingLink
		b.LocationAddress = req.LocationAddress
		b.AdminNotes = req.Notes
		b.AssignedAt = &now
		return nil
	})
	if err != nil {
		resp.FromError(w, err)
		return
	}

	s.notifyAssignment(updated)
	resp.OK(w, "Counselor assigned", updated)
}

type assignByIDRequest struct {
	CounselorName string `json:"counselorName"`
	Status        string `json:"status"`
}

// AssignByID handles PUT /api/counsellor-bookings/{id}/assign, the
// approve-and-confirm flow used by the admin dashboard.
func (s *BookingService) AssignByID(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPut {
		resp.Error(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	id := strings.TrimPrefix(r.URL.Path, "/api/counsellor-bookings/")
	id = strings.TrimSuffix(id, "/assign")
	if id == "" || strings.Contains(id, "/") {
		resp.Error(w, http.StatusBadRequest, "Booking id is required")
		return
	}

	var req assignByIDRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		resp.Error(w, http.StatusBadRequest, "Invalid JSON: "+err.Error())
		return
	}
	if req.CounselorName == "" {
		resp.Error(w, http.StatusBadRequest, "counselorName is required")
		return
	}

	status := req.Status
	if status == "" {
		status = utils.BookingConfirmed
	}

	counselorEmail := s.lookupCounselorEmail(req.CounselorName)

	updated, err := s.bookings.UpdateByID(id, func(b *models.Booking) error {
		if err := assignable(b.Status); err != nil {
			return err
		}
		now := time.Now()
		b.AssignedCounselor = req.CounselorName
		b.CounselorEmail = counselorEmail
		b.Status = status
		b.AssignedAt = &now
		return nil
	})
	if err != nil {
		resp.FromError(w, err)
		return
	}

	s.notifyAssignment(updated)
	resp.OK(w, "Counselor assigned successfully", updated)
}

type completeRequest struct {
	BookingID string `json:"bookingId"`
}

// Complete handles POST /api/counsellor-bookings/complete. Completion is
// terminal.
func (s *BookingService) Complete(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		resp.Error(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	var req completeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		resp.Error(w, http.StatusBadRequest, "Invalid JSON: "+err.Error())
		return
	}

	updated, err := s.bookings.UpdateByID(req.BookingID, func(b *models.Booking) error {
		if b.Status == utils.BookingCompleted || b.Status == utils.BookingRejected {
			return apperrConflict(b.Status)
		}
		now := time.Now()
		b.Status = utils.BookingCompleted
		b.CompletedAt = &now
		return nil
	})
	if err != nil {
		resp.FromError(w, err)
		return
	}

	go services.PublishEvent(services.EventBookingCompleted, updated.ID, map[string]interface{}{
		"booking_id": updated.ID,
		"counselor":  updated.AssignedCounselor,
	})

	resp.OK(w, "Booking marked as completed", updated)
}

// Export handles GET /api/counsellor-bookings/export, streaming the booking
// list as a spreadsheet.
func (s *BookingService) Export(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		resp.Error(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	bookings, err := s.bookings.All()
	if err != nil {
		s.log.Error("Error reading bookings for export: %v", err)
		resp.Error(w, http.StatusInternalServerError, "Failed to export bookings")
		return
	}

	f, err := services.ExportBookingsExcel(bookings)
	if err != nil {
		s.log.Error("Error building bookings export: %v", err)
		resp.Error(w, http.StatusInternalServerError, "Failed to export bookings")
		return
	}

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="bookings.xlsx"`)
	if err := f.Write(w); err != nil {
		s.log.Error("Error streaming bookings export: %v", err)
	}
}

func (s *BookingService) lookupCounselorEmail(name string) string {
	counselor, err := s.counselors.FindByName(name)
	if err != nil {
		s.log.Error("Error looking up counselor %q: %v", name, err)
		return ""
	}
	if counselor == nil {
		s.log.Warn("No email found for counselor: %s", name)
		return ""
	}
	return counselor.Email
}

// assignable rejects assignment into terminal states
func assignable(status string) error {
	if status == utils.BookingCompleted || status == utils.BookingRejected {
		return apperrConflict(status)
	}
	return nil
}
