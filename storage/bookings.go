package storage

import (
	"techpro-backoffice/errors"
	"techpro-backoffice/models"
)

type bookingDoc struct {
	Bookings []models.Booking `json:"bookings"`
}

// BookingStore persists counseling bookings in bookings.json
type BookingStore struct {
	c *collection[bookingDoc]
}

func NewBookingStore(dir string) *BookingStore {
	return &BookingStore{c: newCollection(dir, "bookings.json", func() bookingDoc {
		return bookingDoc{Bookings: []models.Booking{}}
	})}
}

func (s *BookingStore) All() ([]models.Booking, error) {
	var out []models.Booking
	err := s.c.View(func(doc bookingDoc) error {
		out = doc.Bookings
		return nil
	})
	return out, err
}

func (s *BookingStore) Get(id string) (*models.Booking, error) {
	var found *models.Booking
	err := s.c.View(func(doc bookingDoc) error {
		for i := range doc.Bookings {
			if doc.Bookings[i].ID == id {
				b := doc.Bookings[i]
				found = &b
				return nil
			}
		}
		return errors.NewNotFoundError("Booking not found")
	})
	if err != nil {
		return nil, err
	}
	return found, nil
}

// Create appends a booking built by prepare, which receives the current
// booking list (for load computation) and returns the new booking. The
// snapshot prepare sees and the append happen under one lock, so a
// concurrent create cannot skew the load counts mid-decision.
func (s *BookingStore) Create(prepare func(existing []models.Booking) (models.Booking, error)) (models.Booking, error) {
	var created models.Booking
	err := s.c.Update(func(doc *bookingDoc) error {
		b, err := prepare(doc.Bookings)
		if err != nil {
			return err
		}
		doc.Bookings = append(doc.Bookings, b)
		created = b
		return nil
	})
	return created, err
}

// UpdateByID applies mutate to the matching booking and persists the list
func (s *BookingStore) UpdateByID(id string, mutate func(b *models.Booking) error) (models.Booking, error) {
	var updated models.Booking
	err := s.c.Update(func(doc *bookingDoc) error {
		for i := range doc.Bookings {
			if doc.Bookings[i].ID == id {
				if err := mutate(&doc.Bookings[i]); err != nil {
					return err
				}
				updated = doc.Bookings[i]
				return nil
			}
		}
		return errors.NewNotFoundError("Booking not found")
	})
	return updated, err
}

// MarkReminded flips reminderSent on every listed booking in one write.
// Bookings deleted between the sweep's read and this call are skipped.
func (s *BookingStore) MarkReminded(ids []string) error {
	if len(ids) == 0 {
		return nil
	}
	set := make(map[string]bool, len(ids))
	for _, id := range ids {
		set[id] = true
	}
	return s.c.Update(func(doc *bookingDoc) error {
		for i := range doc.Bookings {
			if set[doc.Bookings[i].ID] {
				doc.Bookings[i].ReminderSent = true
			}
		}
		return nil
	})
}
