package handlers

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"techpro-backoffice/models"
	"techpro-backoffice/storage"
	"techpro-backoffice/utils"
)

func walkInRequest() *http.Request {
	body := `{
		"name": "Asha Rao",
		"email": "asha@example.com",
		"phone": "+919876543210",
		"course": "Go Fundamentals",
		"mode": "offline",
		"selectedDate": "2026-09-15",
		"selectedTime": "02:15 PM"
	}`
	return httptest.NewRequest(http.MethodPost, "/api/in-person-bookings", strings.NewReader(body))
}

func TestInPersonBooking_NoEligibleCounselorRejectsWithoutWrite(t *testing.T) {
	dir := t.TempDir()
	bookings := storage.NewBookingStore(dir)
	counselors := storage.NewCounselorStore(dir)
	// Only an online counselor on the roster; the offline walk-in has no match.
	require.NoError(t, counselors.Add(models.Counselor{ID: "c1", Name: "Priya", Email: "priya@techpro.local", Mode: utils.ModeOnline}))

	svc := NewBookingService(bookings, counselors, noopMailer{}, quietLogger())

	w := httptest.NewRecorder()
	svc.InPersonBookings(w, walkInRequest())

	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Contains(t, w.Body.String(), "No counselors available for the selected time and location")

	all, err := bookings.All()
	require.NoError(t, err)
	require.Empty(t, all, "rejected walk-in must not be persisted")
}

func TestInPersonBooking_StoreFailureIsNotMistakenForNoCounselor(t *testing.T) {
	dir := t.TempDir()
	counselors := storage.NewCounselorStore(dir)
	require.NoError(t, counselors.Add(models.Counselor{ID: "c1", Name: "Priya", Email: "priya@techpro.local", Mode: utils.ModeOffline}))

	// A regular file where the booking store expects its directory makes
	// every read/write on the store fail.
	blocked := filepath.Join(dir, "blocked")
	require.NoError(t, os.WriteFile(blocked, []byte("x"), 0o644))
	bookings := storage.NewBookingStore(blocked)

	svc := NewBookingService(bookings, counselors, noopMailer{}, quietLogger())

	w := httptest.NewRecorder()
	svc.InPersonBookings(w, walkInRequest())

	require.Equal(t, http.StatusInternalServerError, w.Code)
	require.NotContains(t, w.Body.String(), "No counselors available")
}

func TestInPersonBooking_AssignsEligibleCounselor(t *testing.T) {
	dir := t.TempDir()
	bookings := storage.NewBookingStore(dir)
	counselors := storage.NewCounselorStore(dir)
	require.NoError(t, counselors.Add(models.Counselor{ID: "c1", Name: "Priya", Email: "priya@techpro.local", Mode: utils.ModeOffline, CreatedAt: time.Now()}))

	svc := NewBookingService(bookings, counselors, noopMailer{}, quietLogger())

	w := httptest.NewRecorder()
	svc.InPersonBookings(w, walkInRequest())

	require.Equal(t, http.StatusOK, w.Code)

	all, err := bookings.All()
	require.NoError(t, err)
	require.Len(t, all, 1)
	require.Equal(t, "Priya", all[0].AssignedCounselor)
	require.Equal(t, utils.BookingConfirmed, all[0].Status)
	require.True(t, all[0].AutoAssigned)
}
