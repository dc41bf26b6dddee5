package scheduling

import (
	"fmt"
	"io"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"techpro-backoffice/logger"
	"techpro-backoffice/models"
	"techpro-backoffice/utils"
)

// fakeBookings is an in-memory BookingSource
type fakeBookings struct {
	bookings []models.Booking
	loadErr  error
	markErr  error
	marks    int
}

func (f *fakeBookings) All() ([]models.Booking, error) {
	if f.loadErr != nil {
		return nil, f.loadErr
	}
	out := make([]models.Booking, len(f.bookings))
	copy(out, f.bookings)
	return out, nil
}

func (f *fakeBookings) MarkReminded(ids []string) error {
	f.marks++
	if f.markErr != nil {
		return f.markErr
	}
	for _, id := range ids {
		for i := range f.bookings {
			if f.bookings[i].ID == id {
				f.bookings[i].ReminderSent = true
			}
		}
	}
	return nil
}

// fakeMailer records reminder deliveries per recipient side
type fakeMailer struct {
	students     []string
	counselors   []string
	studentErr   error
	counselorErr error
}

func (f *fakeMailer) SendStudentReminder(b models.Booking) error {
	if f.studentErr != nil {
		return f.studentErr
	}
	f.students = append(f.students, b.ID)
	return nil
}

func (f *fakeMailer) SendCounselorReminder(b models.Booking) error {
	if f.counselorErr != nil {
		return f.counselorErr
	}
	f.counselors = append(f.counselors, b.ID)
	return nil
}

func quietLogger() *logger.Logger {
	return logger.New(logger.Config{Level: logger.ERROR + 1, Output: io.Discard})
}

func assignedBooking(id string, start time.Time) models.Booking {
	return models.Booking{
		ID:             id,
		Name:           "Student",
		Email:          "student@example.com",
		SelectedDate:   start.Format("2006-01-02"),
		SelectedTime:   start.Format("3:04 PM"),
		Status:         utils.BookingAssigned,
		CounselorEmail: "counselor@techpro.local",
	}
}

func newTestScanner(store *fakeBookings, mailer *fakeMailer, now time.Time) (*Scanner, *time.Time) {
	current := now
	clock := func() time.Time { return current }
	s := NewScanner(store, mailer, quietLogger(), time.Minute, Window{Min: 29, Max: 31}, clock)
	return s, &current
}

func TestSweep_FiresExactlyOnceAcrossRepeatedSweeps(t *testing.T) {
	now := time.Date(2026, 3, 10, 13, 45, 0, 0, time.Local)
	store := &fakeBookings{bookings: []models.Booking{
		assignedBooking("b1", now.Add(30*time.Minute)), // 02:15 PM, exactly 30 min out
	}}
	mailer := &fakeMailer{}
	scanner, clock := newTestScanner(store, mailer, now)

	fired := 0
	// Simulate five sweeps at 60-second cadence around the window.
	for i := 0; i < 5; i++ {
		fired += len(scanner.Sweep())
		*clock = clock.Add(time.Minute)
	}

	require.Equal(t, 1, fired, "booking 30 minutes out must fire exactly once")
	require.Equal(t, []string{"b1"}, mailer.students)
	require.Equal(t, []string{"b1"}, mailer.counselors)
	require.True(t, store.bookings[0].ReminderSent)
}

func TestSweep_AlreadyRemindedNeverReselected(t *testing.T) {
	now := time.Date(2026, 3, 10, 13, 45, 0, 0, time.Local)
	b := assignedBooking("b1", now.Add(30*time.Minute))
	b.ReminderSent = true
	store := &fakeBookings{bookings: []models.Booking{b}}
	mailer := &fakeMailer{}
	scanner, _ := newTestScanner(store, mailer, now)

	require.Empty(t, scanner.Sweep())
	require.Empty(t, mailer.students)
}

func TestSweep_OutsideWindowNotSelected(t *testing.T) {
	now := time.Date(2026, 3, 10, 13, 0, 0, 0, time.Local)
	store := &fakeBookings{bookings: []models.Booking{
		assignedBooking("faraway", now.Add(45*time.Minute)),
		assignedBooking("past", now.Add(-10*time.Minute)),
		assignedBooking("boundary", now.Add(29*time.Minute)), // 29.0 is outside (29, 31]
	}}
	mailer := &fakeMailer{}
	scanner, _ := newTestScanner(store, mailer, now)

	require.Empty(t, scanner.Sweep())
	require.Empty(t, mailer.students)
	require.Zero(t, store.marks)
}

func TestSweep_UpperBoundInclusive(t *testing.T) {
	now := time.Date(2026, 3, 10, 13, 0, 0, 0, time.Local)
	store := &fakeBookings{bookings: []models.Booking{
		assignedBooking("b1", now.Add(31*time.Minute)),
	}}
	mailer := &fakeMailer{}
	scanner, _ := newTestScanner(store, mailer, now)

	require.Equal(t, []string{"b1"}, scanner.Sweep())
}

func TestSweep_OnlyAssignedStatusEligible(t *testing.T) {
	now := time.Date(2026, 3, 10, 13, 0, 0, 0, time.Local)
	start := now.Add(30 * time.Minute)

	var bookings []models.Booking
	for _, status := range []string{utils.BookingPending, utils.BookingConfirmed, utils.BookingCompleted, utils.BookingRejected} {
		b := assignedBooking("b-"+status, start)
		b.Status = status
		bookings = append(bookings, b)
	}
	store := &fakeBookings{bookings: bookings}
	mailer := &fakeMailer{}
	scanner, _ := newTestScanner(store, mailer, now)

	require.Empty(t, scanner.Sweep())
}

func TestSweep_MalformedTimeSkippedWithoutAbortingScan(t *testing.T) {
	now := time.Date(2026, 3, 10, 13, 0, 0, 0, time.Local)

	bad := assignedBooking("bad", now)
	bad.SelectedTime = "13:00 FM"
	good := assignedBooking("good", now.Add(30*time.Minute))

	store := &fakeBookings{bookings: []models.Booking{bad, good}}
	mailer := &fakeMailer{}
	scanner, _ := newTestScanner(store, mailer, now)

	require.Equal(t, []string{"good"}, scanner.Sweep())
	require.False(t, store.bookings[0].ReminderSent, "malformed booking must stay eligible")
	require.True(t, store.bookings[1].ReminderSent)
}

func TestSweep_DeliveryFailureStillMarksReminded(t *testing.T) {
	now := time.Date(2026, 3, 10, 13, 0, 0, 0, time.Local)
	store := &fakeBookings{bookings: []models.Booking{
		assignedBooking("b1", now.Add(30*time.Minute)),
	}}
	mailer := &fakeMailer{studentErr: fmt.Errorf("smtp down")}
	scanner, _ := newTestScanner(store, mailer, now)

	// Delivery is at-most-once: a failed student email neither blocks the
	// counselor email nor keeps the booking eligible.
	require.Equal(t, []string{"b1"}, scanner.Sweep())
	require.Equal(t, []string{"b1"}, mailer.counselors)
	require.True(t, store.bookings[0].ReminderSent)
}

func TestSweep_PersistFailureLeavesBookingEligible(t *testing.T) {
	now := time.Date(2026, 3, 10, 13, 0, 0, 0, time.Local)
	store := &fakeBookings{
		bookings: []models.Booking{assignedBooking("b1", now.Add(30*time.Minute))},
		markErr:  fmt.Errorf("disk full"),
	}
	mailer := &fakeMailer{}
	scanner, _ := newTestScanner(store, mailer, now)

	require.Empty(t, scanner.Sweep())
	require.False(t, store.bookings[0].ReminderSent)

	// Next tick retries naturally once the write succeeds.
	store.markErr = nil
	require.Equal(t, []string{"b1"}, scanner.Sweep())
	require.True(t, store.bookings[0].ReminderSent)
}

func TestSweep_LoadErrorReturnsNothing(t *testing.T) {
	store := &fakeBookings{loadErr: fmt.Errorf("corrupt file")}
	mailer := &fakeMailer{}
	scanner, _ := newTestScanner(store, mailer, time.Now())

	require.Empty(t, scanner.Sweep())
	require.Empty(t, mailer.students)
}

func TestSweep_EmptyStoreTolerated(t *testing.T) {
	store := &fakeBookings{}
	mailer := &fakeMailer{}
	scanner, _ := newTestScanner(store, mailer, time.Now())

	require.Empty(t, scanner.Sweep())
	require.Zero(t, store.marks)
}
