package storage

import (
	"techpro-backoffice/errors"
	"techpro-backoffice/models"
)

type paymentDoc struct {
	Payments []models.Payment `json:"payments"`
}

// PaymentStore persists payment attempts in payments.json
type PaymentStore struct {
	c *collection[paymentDoc]
}

func NewPaymentStore(dir string) *PaymentStore {
	return &PaymentStore{c: newCollection(dir, "payments.json", func() paymentDoc {
		return paymentDoc{Payments: []models.Payment{}}
	})}
}

func (s *PaymentStore) All() ([]models.Payment, error) {
	var out []models.Payment
	err := s.c.View(func(doc paymentDoc) error {
		out = doc.Payments
		return nil
	})
	return out, err
}

// Upsert re-uses an existing PENDING record for the same student+course and
// rejects a second attempt once PAID, matching the admission flow.
func (s *PaymentStore) Upsert(payment models.Payment) (models.Payment, error) {
	var saved models.Payment
	err := s.c.Update(func(doc *paymentDoc) error {
		for i := range doc.Payments {
			p := &doc.Payments[i]
			if p.StudentID != payment.StudentID || p.CourseID != payment.CourseID {
				continue
			}
			if p.Status == "PAID" {
				return errors.NewConflictError("Payment already completed")
			}
			p.OrderID = payment.OrderID
			p.Amount = payment.Amount
			p.UpdatedAt = payment.UpdatedAt
			saved = *p
			return nil
		}
		doc.Payments = append(doc.Payments, payment)
		saved = payment
		return nil
	})
	return saved, err
}

func (s *PaymentStore) UpdateByOrderID(orderID string, mutate func(p *models.Payment) error) (models.Payment, error) {
	var updated models.Payment
	err := s.c.Update(func(doc *paymentDoc) error {
		for i := range doc.Payments {
			if doc.Payments[i].OrderID == orderID {
				if err := mutate(&doc.Payments[i]); err != nil {
					return err
				}
				updated = doc.Payments[i]
				return nil
			}
		}
		return errors.NewNotFoundError("Payment not found")
	})
	return updated, err
}
