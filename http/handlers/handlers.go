// Package handlers contains the HTTP handler services. Each service wraps
// its stores and collaborators; routes are wired in http.SetupRoutes.
package handlers

import (
	apperrors "techpro-backoffice/errors"
)

func apperrConflict(status string) error {
	return apperrors.NewConflictError("Booking is already " + status)
}

var errInvalidFee = apperrors.NewInvalidParamsError("Fee cannot be negative")

// errNoCounselor marks the walk-in rejection path so it can be told apart
// from store failures when the create closure errors.
var errNoCounselor = apperrors.NewError("no counselors available")
