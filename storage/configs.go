package storage

import (
	"encoding/json"

	"techpro-backoffice/errors"
)

type pageConfigDoc struct {
	Configs map[string]json.RawMessage `json:"configs"`
}

// PageConfigStore persists the editable page configuration blobs
// (counseling hub cards, pricing banners, batch info) in page-configs.json.
// The payloads are front-end owned; the back office stores them opaquely.
type PageConfigStore struct {
	c *collection[pageConfigDoc]
}

func NewPageConfigStore(dir string) *PageConfigStore {
	return &PageConfigStore{c: newCollection(dir, "page-configs.json", func() pageConfigDoc {
		return pageConfigDoc{Configs: map[string]json.RawMessage{}}
	})}
}

func (s *PageConfigStore) All() (map[string]json.RawMessage, error) {
	var out map[string]json.RawMessage
	err := s.c.View(func(doc pageConfigDoc) error {
		out = doc.Configs
		return nil
	})
	return out, err
}

func (s *PageConfigStore) Get(pageID string) (json.RawMessage, error) {
	var out json.RawMessage
	err := s.c.View(func(doc pageConfigDoc) error {
		cfg, ok := doc.Configs[pageID]
		if !ok {
			return errors.NewNotFoundError("No configuration for page " + pageID)
		}
		out = cfg
		return nil
	})
	return out, err
}

func (s *PageConfigStore) Put(pageID string, cfg json.RawMessage) error {
	return s.c.Update(func(doc *pageConfigDoc) error {
		if doc.Configs == nil {
			doc.Configs = map[string]json.RawMessage{}
		}
		doc.Configs[pageID] = cfg
		return nil
	})
}
