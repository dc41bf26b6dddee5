package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	apperrors "techpro-backoffice/errors"
	"techpro-backoffice/models"
	"techpro-backoffice/utils"
)

func TestBookingStoreRoundTrip(t *testing.T) {
	dir := t.TempDir()
	store := NewBookingStore(dir)

	created, err := store.Create(func(existing []models.Booking) (models.Booking, error) {
		require.Empty(t, existing)
		return models.Booking{ID: "b1", Name: "Asha", Status: utils.BookingPending}, nil
	})
	require.NoError(t, err)
	require.Equal(t, "b1", created.ID)

	// A fresh store over the same directory must see the persisted booking.
	reopened := NewBookingStore(dir)
	all, err := reopened.All()
	require.NoError(t, err)
	require.Len(t, all, 1)
	require.Equal(t, "Asha", all[0].Name)
}

func TestBookingStoreCreateErrorWritesNothing(t *testing.T) {
	dir := t.TempDir()
	store := NewBookingStore(dir)

	_, err := store.Create(func(existing []models.Booking) (models.Booking, error) {
		return models.Booking{}, apperrors.NewInvalidParamsError("no counselor available")
	})
	require.Error(t, err)

	all, err := store.All()
	require.NoError(t, err)
	require.Empty(t, all)
}

func TestBookingStoreCreateSeesConcurrentAppends(t *testing.T) {
	dir := t.TempDir()
	store := NewBookingStore(dir)

	// Each prepare records how many bookings it saw. Because prepare and the
	// append share one lock, the observed counts must all differ.
	var mu sync.Mutex
	seen := map[int]bool{}

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			_, err := store.Create(func(existing []models.Booking) (models.Booking, error) {
				mu.Lock()
				require.False(t, seen[len(existing)])
				seen[len(existing)] = true
				mu.Unlock()
				return models.Booking{ID: string(rune('a' + n))}, nil
			})
			require.NoError(t, err)
		}(i)
	}
	wg.Wait()

	all, err := store.All()
	require.NoError(t, err)
	require.Len(t, all, 8)
}

func TestBookingStoreMarkReminded(t *testing.T) {
	dir := t.TempDir()
	store := NewBookingStore(dir)

	for _, id := range []string{"b1", "b2", "b3"} {
		id := id
		_, err := store.Create(func([]models.Booking) (models.Booking, error) {
			return models.Booking{ID: id, Status: utils.BookingAssigned}, nil
		})
		require.NoError(t, err)
	}

	require.NoError(t, store.MarkReminded([]string{"b1", "b3", "gone"}))

	all, err := store.All()
	require.NoError(t, err)
	require.True(t, all[0].ReminderSent)
	require.False(t, all[1].ReminderSent)
	require.True(t, all[2].ReminderSent)
}

func TestBookingStoreUpdateErrorRollsBack(t *testing.T) {
	dir := t.TempDir()
	store := NewBookingStore(dir)

	_, err := store.Create(func([]models.Booking) (models.Booking, error) {
		return models.Booking{ID: "b1", Status: utils.BookingCompleted}, nil
	})
	require.NoError(t, err)

	_, err = store.UpdateByID("b1", func(b *models.Booking) error {
		b.Status = utils.BookingAssigned
		return apperrors.NewConflictError("Booking is already completed")
	})
	require.Error(t, err)

	got, err := store.Get("b1")
	require.NoError(t, err)
	require.Equal(t, utils.BookingCompleted, got.Status)
}

func TestCounselorStorePreservesRosterOrder(t *testing.T) {
	dir := t.TempDir()
	store := NewCounselorStore(dir)

	names := []string{"Priya", "Arjun", "Meera"}
	for i, name := range names {
		require.NoError(t, store.Add(models.Counselor{ID: string(rune('1' + i)), Name: name}))
	}

	all, err := store.All()
	require.NoError(t, err)
	require.Len(t, all, 3)
	for i, name := range names {
		require.Equal(t, name, all[i].Name)
	}
}

func TestStudentIDSequence(t *testing.T) {
	dir := t.TempDir()
	store := NewStudentStore(dir)

	jan := time.Date(2026, time.January, 10, 0, 0, 0, 0, time.UTC)
	first, err := store.Create(models.Student{Name: "One", Email: "one@example.com"}, jan)
	require.NoError(t, err)
	require.Equal(t, "26010001", first.ID)

	second, err := store.Create(models.Student{Name: "Two", Email: "two@example.com"}, jan)
	require.NoError(t, err)
	require.Equal(t, "26010002", second.ID)

	// The sequence starts over in a new month.
	feb := time.Date(2026, time.February, 1, 0, 0, 0, 0, time.UTC)
	third, err := store.Create(models.Student{Name: "Three", Email: "three@example.com"}, feb)
	require.NoError(t, err)
	require.Equal(t, "26020001", third.ID)
}

func TestStudentBulkCreateSkipsDuplicateEmails(t *testing.T) {
	dir := t.TempDir()
	store := NewStudentStore(dir)

	now := time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC)
	_, err := store.Create(models.Student{Name: "Asha", Email: "asha@example.com"}, now)
	require.NoError(t, err)

	added, err := store.BulkCreate([]models.Student{
		{Name: "Asha Again", Email: "ASHA@example.com"},
		{Name: "Ravi", Email: "ravi@example.com"},
		{Name: "Ravi Twice", Email: "ravi@example.com"},
	}, now)
	require.NoError(t, err)
	require.Equal(t, 2, added)

	all, err := store.All()
	require.NoError(t, err)
	require.Len(t, all, 3)
}

func TestPaymentUpsertReusesPendingAndRejectsPaid(t *testing.T) {
	dir := t.TempDir()
	store := NewPaymentStore(dir)

	now := time.Now()
	first, err := store.Upsert(models.Payment{
		ID: "p1", StudentID: "s1", CourseID: "c1",
		Amount: 1870, Status: utils.PaymentPending, OrderID: "order_1",
		CreatedAt: now, UpdatedAt: now,
	})
	require.NoError(t, err)

	// A retry for the same student+course reuses the pending record.
	second, err := store.Upsert(models.Payment{
		ID: "p2", StudentID: "s1", CourseID: "c1",
		Amount: 1870, Status: utils.PaymentPending, OrderID: "order_2",
		CreatedAt: now, UpdatedAt: now,
	})
	require.NoError(t, err)
	require.Equal(t, first.ID, second.ID)
	require.Equal(t, "order_2", second.OrderID)

	all, err := store.All()
	require.NoError(t, err)
	require.Len(t, all, 1)

	_, err = store.UpdateByOrderID("order_2", func(p *models.Payment) error {
		p.Status = utils.PaymentPaid
		return nil
	})
	require.NoError(t, err)

	_, err = store.Upsert(models.Payment{
		ID: "p3", StudentID: "s1", CourseID: "c1",
		Amount: 1870, Status: utils.PaymentPending, OrderID: "order_3",
	})
	require.Error(t, err)
}

func TestUserStoreRejectsDuplicateIdentifier(t *testing.T) {
	dir := t.TempDir()
	store := NewUserStore(dir)

	require.NoError(t, store.Add(models.User{ID: "u1", Email: "a@b.com"}))
	err := store.Add(models.User{ID: "u2", Email: "A@B.COM"})
	require.Error(t, err)
	require.Equal(t, "ALREADY_REGISTERED", apperrors.Message(err))
}

func TestPermissionStoreSeedsDefaults(t *testing.T) {
	dir := t.TempDir()
	store := NewPermissionStore(dir)

	allowed, err := store.Check("admin", "viewStudents")
	require.NoError(t, err)
	require.True(t, allowed)

	allowed, err = store.Check("faculty", "deleteStudents")
	require.NoError(t, err)
	require.False(t, allowed)

	// Unknown roles are denied rather than erroring.
	allowed, err = store.Check("ghost", "viewStudents")
	require.NoError(t, err)
	require.False(t, allowed)
}

func TestNotificationStoreCapsList(t *testing.T) {
	dir := t.TempDir()
	store := NewNotificationStore(dir)

	for i := 0; i < maxNotifications+5; i++ {
		require.NoError(t, store.Push(models.Notification{ID: fmt.Sprintf("n%d", i), Title: "t"}))
	}

	all, err := store.All()
	require.NoError(t, err)
	require.Len(t, all, maxNotifications)
}

func TestPersistIsAtomic(t *testing.T) {
	dir := t.TempDir()
	store := NewCounselorStore(dir)
	require.NoError(t, store.Add(models.Counselor{ID: "c1", Name: "Priya"}))

	// No temp file may be left behind after a write.
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	for _, e := range entries {
		require.NotEqual(t, ".tmp", filepath.Ext(e.Name()))
	}
}
