// Package scheduling holds the two pieces of counseling logic the rest of
// the back office is glue around: least-loaded counselor auto-assignment and
// the periodic session reminder sweep.
package scheduling

import (
	"techpro-backoffice/models"
	"techpro-backoffice/utils"
)

// CounselorLoad pairs a roster entry with its computed load for logging the
// assignment decision. The load is a point-in-time annotation, never stored.
type CounselorLoad struct {
	Counselor models.Counselor
	Load      int
}

// AutoAssign picks the counselor for a new booking with the given mode.
//
// Eligibility: the counselor's declared mode equals the requested mode, or
// is "both". Load: the number of existing bookings carrying the counselor's
// name in the Confirmed state, recomputed on every call so it can never go
// stale. Ties break to the first minimal counselor in roster order. Returns
// nil when no counselor is eligible; load values never affect that outcome.
//
// Bookings reference counselors by display name, so two counselors sharing a
// name are indistinguishable to the load computation. Kept for
// compatibility with existing data files; see DESIGN.md.
func AutoAssign(counselors []models.Counselor, existing []models.Booking, mode string) *models.Counselor {
	loads := computeLoads(counselors, existing, mode)
	if len(loads) == 0 {
		return nil
	}

	best := 0
	for i := 1; i < len(loads); i++ {
		if loads[i].Load < loads[best].Load {
			best = i
		}
	}

	chosen := loads[best].Counselor
	return &chosen
}

// AssignmentAnalysis returns every eligible counselor with its current load,
// in roster order, for the decision log.
func AssignmentAnalysis(counselors []models.Counselor, existing []models.Booking, mode string) []CounselorLoad {
	return computeLoads(counselors, existing, mode)
}

func computeLoads(counselors []models.Counselor, existing []models.Booking, mode string) []CounselorLoad {
	var loads []CounselorLoad
	for _, c := range counselors {
		if !c.CanServe(mode) {
			continue
		}
		load := 0
		for _, b := range existing {
			if b.AssignedCounselor == c.Name && b.Status == utils.BookingConfirmed {
				load++
			}
		}
		loads = append(loads, CounselorLoad{Counselor: c, Load: load})
	}
	return loads
}
