package scheduling

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"techpro-backoffice/models"
	"techpro-backoffice/utils"
)

func roster(modes ...string) []models.Counselor {
	counselors := make([]models.Counselor, len(modes))
	for i, mode := range modes {
		counselors[i] = models.Counselor{
			ID:    fmt.Sprintf("c-%d", i),
			Name:  fmt.Sprintf("Counselor %d", i),
			Email: fmt.Sprintf("c%d@techpro.local", i),
			Mode:  mode,
		}
	}
	return counselors
}

func confirmedBookings(counselorName string, n int) []models.Booking {
	bookings := make([]models.Booking, n)
	for i := range bookings {
		bookings[i] = models.Booking{
			ID:                fmt.Sprintf("b-%s-%d", counselorName, i),
			AssignedCounselor: counselorName,
			Status:            utils.BookingConfirmed,
		}
	}
	return bookings
}

func TestAutoAssign_PicksLeastLoadedEligible(t *testing.T) {
	// A(offline, load 2), B(both, load 1), C(online, load 0); offline request
	counselors := []models.Counselor{
		{Name: "A", Mode: utils.ModeOffline},
		{Name: "B", Mode: utils.ModeBoth},
		{Name: "C", Mode: utils.ModeOnline},
	}
	bookings := append(confirmedBookings("A", 2), confirmedBookings("B", 1)...)

	chosen := AutoAssign(counselors, bookings, utils.ModeOffline)
	require.NotNil(t, chosen)
	// C has the lowest load but cannot serve offline; B beats A on load.
	require.Equal(t, "B", chosen.Name)
}

func TestAutoAssign_NoEligibleCounselor(t *testing.T) {
	counselors := []models.Counselor{{Name: "A", Mode: utils.ModeOnline}}

	chosen := AutoAssign(counselors, nil, utils.ModeOffline)
	require.Nil(t, chosen)
}

func TestAutoAssign_EmptyRoster(t *testing.T) {
	require.Nil(t, AutoAssign(nil, nil, utils.ModeOnline))
}

func TestAutoAssign_TieBreaksByRosterOrder(t *testing.T) {
	counselors := []models.Counselor{
		{Name: "X", Mode: utils.ModeOffline},
		{Name: "Y", Mode: utils.ModeOffline},
	}

	chosen := AutoAssign(counselors, nil, utils.ModeOffline)
	require.NotNil(t, chosen)
	require.Equal(t, "X", chosen.Name)
}

func TestAutoAssign_ZeroLoadBeatsPositionRegardlessOfOrder(t *testing.T) {
	counselors := []models.Counselor{
		{Name: "First", Mode: utils.ModeOffline},
		{Name: "Fresh", Mode: utils.ModeOffline},
	}
	bookings := confirmedBookings("First", 1)

	chosen := AutoAssign(counselors, bookings, utils.ModeOffline)
	require.NotNil(t, chosen)
	require.Equal(t, "Fresh", chosen.Name)
}

func TestAutoAssign_OnlyConfirmedBookingsCount(t *testing.T) {
	counselors := []models.Counselor{
		{Name: "A", Mode: utils.ModeOffline},
		{Name: "B", Mode: utils.ModeOffline},
	}
	// A carries pending and completed bookings only; its load is 0 and it
	// keeps the roster-order tie-break.
	bookings := []models.Booking{
		{ID: "1", AssignedCounselor: "A", Status: utils.BookingPending},
		{ID: "2", AssignedCounselor: "A", Status: utils.BookingCompleted},
	}

	chosen := AutoAssign(counselors, bookings, utils.ModeOffline)
	require.NotNil(t, chosen)
	require.Equal(t, "A", chosen.Name)
}

func TestAutoAssign_NeverReturnsIneligibleMode(t *testing.T) {
	counselors := roster(utils.ModeOnline, utils.ModeOffline, utils.ModeBoth, utils.ModeOnline)

	for _, mode := range []string{utils.ModeOnline, utils.ModeOffline} {
		chosen := AutoAssign(counselors, nil, mode)
		require.NotNil(t, chosen)
		require.True(t, chosen.Mode == mode || chosen.Mode == utils.ModeBoth,
			"mode %s got counselor with mode %s", mode, chosen.Mode)
	}
}

func TestAutoAssign_Idempotent(t *testing.T) {
	counselors := roster(utils.ModeBoth, utils.ModeOffline, utils.ModeBoth)
	bookings := append(confirmedBookings("Counselor 0", 3), confirmedBookings("Counselor 1", 1)...)

	first := AutoAssign(counselors, bookings, utils.ModeOffline)
	second := AutoAssign(counselors, bookings, utils.ModeOffline)
	require.NotNil(t, first)
	require.NotNil(t, second)
	require.Equal(t, first.Name, second.Name)
}

func TestAssignmentAnalysis_RosterOrderAndLoads(t *testing.T) {
	counselors := []models.Counselor{
		{Name: "A", Mode: utils.ModeOffline},
		{Name: "B", Mode: utils.ModeOnline},
		{Name: "C", Mode: utils.ModeBoth},
	}
	bookings := confirmedBookings("C", 2)

	loads := AssignmentAnalysis(counselors, bookings, utils.ModeOffline)
	require.Len(t, loads, 2)
	require.Equal(t, "A", loads[0].Counselor.Name)
	require.Equal(t, 0, loads[0].Load)
	require.Equal(t, "C", loads[1].Counselor.Name)
	require.Equal(t, 2, loads[1].Load)
}
