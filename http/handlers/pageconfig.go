package handlers

import (
	"encoding/json"
	"io"
	"net/http"
	"strings"

	resp "techpro-backoffice/http/response"
	"techpro-backoffice/logger"
	"techpro-backoffice/storage"
)

// Page ids the front end is allowed to store configuration for. Anything
// else is rejected so arbitrary blobs cannot be parked in the store.
var allowedPageIDs = map[string]bool{
	"hub":     true,
	"online":  true,
	"offline": true,
	"hybrid":  true,
	"payment": true,
}

// PageConfigService manages the editable page configuration blobs
type PageConfigService struct {
	configs *storage.PageConfigStore
	log     *logger.Logger
}

func NewPageConfigService(configs *storage.PageConfigStore, log *logger.Logger) *PageConfigService {
	return &PageConfigService{configs: configs, log: log}
}

// PageConfigs handles GET /api/page-configs, all configs keyed by page id
func (s *PageConfigService) PageConfigs(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		resp.Error(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}
	configs, err := s.configs.All()
	if err != nil {
		s.log.Error("Error reading page configs: %v", err)
		resp.Error(w, http.StatusInternalServerError, "Failed to retrieve page configs")
		return
	}
	resp.OK(w, "", configs)
}

// PageConfigByID handles GET and PUT on /api/page-configs/{pageId}
func (s *PageConfigService) PageConfigByID(w http.ResponseWriter, r *http.Request) {
	pageID := strings.TrimPrefix(r.URL.Path, "/api/page-configs/")
	if !allowedPageIDs[pageID] {
		resp.Error(w, http.StatusBadRequest, "Unknown page id")
		return
	}

	switch r.Method {
	case http.MethodGet:
		cfg, err := s.configs.Get(pageID)
		if err != nil {
			resp.FromError(w, err)
			return
		}
		resp.OK(w, "", cfg)

	case http.MethodPut:
		body, err := io.ReadAll(r.Body)
		if err != nil {
			resp.Error(w, http.StatusBadRequest, "Failed to read request body")
			return
		}
		if !json.Valid(body) {
			resp.Error(w, http.StatusBadRequest, "Body must be valid JSON")
			return
		}
		if err := s.configs.Put(pageID, json.RawMessage(body)); err != nil {
			s.log.Error("Error saving page config %s: %v", pageID, err)
			resp.Error(w, http.StatusInternalServerError, "Failed to save page config")
			return
		}
		s.log.Info("Page config updated: %s", pageID)
		resp.OK(w, "Configuration saved", json.RawMessage(body))

	default:
		resp.Error(w, http.StatusMethodNotAllowed, "Method not allowed")
	}
}
