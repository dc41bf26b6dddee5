package handlers

import (
	"io"

	"techpro-backoffice/logger"
	"techpro-backoffice/models"
)

func quietLogger() *logger.Logger {
	return logger.New(logger.Config{Level: logger.ERROR + 1, Output: io.Discard})
}

// noopMailer satisfies BookingMailer for handler tests
type noopMailer struct{}

func (noopMailer) SendBookingConfirmation(models.Booking) error { return nil }
func (noopMailer) SendCounselorAssignment(models.Booking) error { return nil }
