package handlers

import (
	"encoding/json"
	"net/http"

	resp "techpro-backoffice/http/response"
	"techpro-backoffice/logger"
	"techpro-backoffice/storage"
)

// PermissionService manages the role permission matrix the front end
// uses to gate navigation and actions.
type PermissionService struct {
	permissions *storage.PermissionStore
	log         *logger.Logger
}

func NewPermissionService(permissions *storage.PermissionStore, log *logger.Logger) *PermissionService {
	return &PermissionService{permissions: permissions, log: log}
}

// Permissions handles GET (full matrix) and POST (replace matrix) on
// /api/permissions
func (s *PermissionService) Permissions(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		matrix, err := s.permissions.Matrix()
		if err != nil {
			s.log.Error("Error reading permissions: %v", err)
			resp.Error(w, http.StatusInternalServerError, "Failed to retrieve permissions")
			return
		}
		resp.OK(w, "", matrix)

	case http.MethodPost:
		var matrix storage.PermissionMatrix
		if err := json.NewDecoder(r.Body).Decode(&matrix); err != nil {
			resp.Error(w, http.StatusBadRequest, "Invalid JSON: "+err.Error())
			return
		}
		if len(matrix) == 0 {
			resp.Error(w, http.StatusBadRequest, "Permission matrix cannot be empty")
			return
		}
		if err := s.permissions.Replace(matrix); err != nil {
			s.log.Error("Error saving permissions: %v", err)
			resp.Error(w, http.StatusInternalServerError, "Failed to save permissions")
			return
		}
		s.log.Info("Permission matrix updated (%d roles)", len(matrix))
		resp.OK(w, "Permissions saved", matrix)

	default:
		resp.Error(w, http.StatusMethodNotAllowed, "Method not allowed")
	}
}

// Check handles GET /api/permissions/check?role=...&permission=...
func (s *PermissionService) Check(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		resp.Error(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	role := r.URL.Query().Get("role")
	permission := r.URL.Query().Get("permission")
	if role == "" || permission == "" {
		resp.Error(w, http.StatusBadRequest, "role and permission query parameters are required")
		return
	}

	allowed, err := s.permissions.Check(role, permission)
	if err != nil {
		s.log.Error("Error checking permission: %v", err)
		resp.Error(w, http.StatusInternalServerError, "Failed to check permission")
		return
	}

	resp.OK(w, "", map[string]interface{}{
		"role":       role,
		"permission": permission,
		"allowed":    allowed,
	})
}
