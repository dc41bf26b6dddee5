package scheduling

import (
	"context"
	"time"

	"techpro-backoffice/logger"
	"techpro-backoffice/models"
	"techpro-backoffice/utils"
)

// BookingSource is the booking store surface the sweep needs
type BookingSource interface {
	All() ([]models.Booking, error)
	MarkReminded(ids []string) error
}

// ReminderMailer delivers the two reminder notifications for a due booking.
// Deliveries are independent: a student failure must not block the
// counselor's reminder, and vice versa.
type ReminderMailer interface {
	SendStudentReminder(b models.Booking) error
	SendCounselorReminder(b models.Booking) error
}

// Window bounds the minutes-to-start band, half open: a booking is due when
// Min < minutes <= Max. The sweep interval must stay below Max-Min so every
// qualifying booking is seen by at least one sweep.
type Window struct {
	Min float64
	Max float64
}

// Scanner runs the recurring reminder sweep over the booking store. The
// clock is injected so tests can pin "now"; production passes time.Now.
type Scanner struct {
	bookings BookingSource
	mailer   ReminderMailer
	log      *logger.Logger
	interval time.Duration
	window   Window
	now      func() time.Time
	stopChan chan struct{}
}

func NewScanner(bookings BookingSource, mailer ReminderMailer, log *logger.Logger, interval time.Duration, window Window, now func() time.Time) *Scanner {
	if now == nil {
		now = time.Now
	}
	return &Scanner{
		bookings: bookings,
		mailer:   mailer,
		log:      log,
		interval: interval,
		window:   window,
		now:      now,
		stopChan: make(chan struct{}),
	}
}

// Start launches the sweep loop. The first sweep runs immediately, then on
// every tick until Stop is called or ctx is cancelled.
func (s *Scanner) Start(ctx context.Context) {
	s.log.Info("Reminder scanner started - sweeping every %s, window (%v, %v] minutes",
		s.interval, s.window.Min, s.window.Max)

	go func() {
		s.Sweep()

		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				s.Sweep()
			case <-s.stopChan:
				s.log.Info("Reminder scanner stopped")
				return
			case <-ctx.Done():
				s.log.Info("Reminder scanner cancelled")
				return
			}
		}
	}()
}

// Stop ends the sweep loop
func (s *Scanner) Stop() {
	close(s.stopChan)
}

// Sweep runs one pass over the booking store: finds assigned bookings whose
// start time falls inside the reminder window, dispatches both reminder
// emails, and marks them reminded in a single write. The mark happens after
// dispatch is attempted and regardless of delivery outcome, so delivery is
// at-most-once per booking. Returns the ids marked this pass.
func (s *Scanner) Sweep() []string {
	bookings, err := s.bookings.All()
	if err != nil {
		s.log.Error("Reminder sweep: failed to load bookings: %v", err)
		return nil
	}

	now := s.now()
	var due []models.Booking
	for _, b := range bookings {
		if b.Status != utils.BookingAssigned || b.ReminderSent {
			continue
		}

		start, err := SessionStart(b.SelectedDate, b.SelectedTime, now.Location())
		if err != nil {
			// Malformed date/time must not abort the remaining scan.
			s.log.Warn("Reminder sweep: skipping booking %s: %v", b.ID, err)
			continue
		}

		minutesUntilStart := start.Sub(now).Minutes()
		if minutesUntilStart > s.window.Min && minutesUntilStart <= s.window.Max {
			due = append(due, b)
		}
	}

	if len(due) == 0 {
		return nil
	}

	ids := make([]string, 0, len(due))
	for _, b := range due {
		s.log.Info("Sending 30-minute reminder for booking %s", b.ID)

		if err := s.mailer.SendStudentReminder(b); err != nil {
			s.log.Error("Reminder sweep: student reminder for booking %s failed: %v", b.ID, err)
		}
		if err := s.mailer.SendCounselorReminder(b); err != nil {
			s.log.Error("Reminder sweep: counselor reminder for booking %s failed: %v", b.ID, err)
		}

		ids = append(ids, b.ID)
	}

	if err := s.bookings.MarkReminded(ids); err != nil {
		// The flags were never set; the next tick retries naturally.
		s.log.Error("Reminder sweep: failed to persist reminder flags: %v", err)
		return nil
	}
	return ids
}
