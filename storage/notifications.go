package storage

import (
	"techpro-backoffice/models"
)

// Keep only the newest notifications to prevent the file from growing
// without bound.
const maxNotifications = 50

type notificationDoc struct {
	Notifications []models.Notification `json:"notifications"`
}

// NotificationStore persists dashboard broadcasts in notifications.json
type NotificationStore struct {
	c *collection[notificationDoc]
}

func NewNotificationStore(dir string) *NotificationStore {
	return &NotificationStore{c: newCollection(dir, "notifications.json", func() notificationDoc {
		return notificationDoc{Notifications: []models.Notification{}}
	})}
}

// All returns notifications newest first
func (s *NotificationStore) All() ([]models.Notification, error) {
	var out []models.Notification
	err := s.c.View(func(doc notificationDoc) error {
		out = doc.Notifications
		return nil
	})
	return out, err
}

// Push prepends the notification and trims the list to the cap
func (s *NotificationStore) Push(n models.Notification) error {
	return s.c.Update(func(doc *notificationDoc) error {
		doc.Notifications = append([]models.Notification{n}, doc.Notifications...)
		if len(doc.Notifications) > maxNotifications {
			doc.Notifications = doc.Notifications[:maxNotifications]
		}
		return nil
	})
}
