package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/google/uuid"

	resp "techpro-backoffice/http/response"
	"techpro-backoffice/logger"
	"techpro-backoffice/models"
	"techpro-backoffice/storage"
)

// NotificationService manages dashboard broadcast messages
type NotificationService struct {
	notifications *storage.NotificationStore
	log           *logger.Logger
}

func NewNotificationService(notifications *storage.NotificationStore, log *logger.Logger) *NotificationService {
	return &NotificationService{notifications: notifications, log: log}
}

// Notifications handles GET (list, expired filtered out) and POST (broadcast)
// on /api/notifications
func (s *NotificationService) Notifications(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		all, err := s.notifications.All()
		if err != nil {
			s.log.Error("Error reading notifications: %v", err)
			resp.Error(w, http.StatusInternalServerError, "Failed to retrieve notifications")
			return
		}
		now := time.Now()
		active := make([]models.Notification, 0, len(all))
		for _, n := range all {
			if n.Expiry != nil && now.After(*n.Expiry) {
				continue
			}
			active = append(active, n)
		}
		resp.List(w, len(active), active)

	case http.MethodPost:
		var n models.Notification
		if err := json.NewDecoder(r.Body).Decode(&n); err != nil {
			resp.Error(w, http.StatusBadRequest, "Invalid JSON: "+err.Error())
			return
		}
		if n.Title == "" || n.Message == "" {
			resp.Error(w, http.StatusBadRequest, "Title and message are required")
			return
		}
		if n.Type == "" {
			n.Type = "info"
		}
		if n.Audience == "" {
			n.Audience = "all"
		}
		n.ID = uuid.NewString()
		n.Date = time.Now()
		n.ReadBy = []string{}

		if err := s.notifications.Push(n); err != nil {
			s.log.Error("Error saving notification: %v", err)
			resp.Error(w, http.StatusInternalServerError, "Failed to save notification")
			return
		}

		s.log.Info("Notification broadcast: %s (%s)", n.ID, n.Audience)
		resp.Success(w, http.StatusCreated, "Notification created", n)

	default:
		resp.Error(w, http.StatusMethodNotAllowed, "Method not allowed")
	}
}
