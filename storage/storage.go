// Package storage persists every back-office collection as a flat JSON
// document file under the configured data directory, mirroring the files the
// front office reads (counselors.json, bookings.json, ...). Each store
// serialises access with a per-collection mutex and writes through a temp
// file + rename so a partially written document is never observable.
package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// collection is the shared file-backed document primitive the typed stores
// build on. D is the whole document shape (e.g. {"bookings": [...]}).
type collection[D any] struct {
	path string
	mu   sync.RWMutex
	seed func() D
}

func newCollection[D any](dir, file string, seed func() D) *collection[D] {
	return &collection[D]{path: filepath.Join(dir, file), seed: seed}
}

// load reads the document, seeding the file when absent. Callers must hold
// the lock.
func (c *collection[D]) load() (D, error) {
	data, err := os.ReadFile(c.path)
	if os.IsNotExist(err) {
		doc := c.seed()
		if err := c.persist(doc); err != nil {
			return doc, err
		}
		return doc, nil
	}
	var doc D
	if err != nil {
		return doc, fmt.Errorf("reading %s: %w", c.path, err)
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		return doc, fmt.Errorf("parsing %s: %w", c.path, err)
	}
	return doc, nil
}

// persist writes the document atomically. Callers must hold the lock.
func (c *collection[D]) persist(doc D) error {
	if err := os.MkdirAll(filepath.Dir(c.path), 0o755); err != nil {
		return fmt.Errorf("creating data dir: %w", err)
	}
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding %s: %w", c.path, err)
	}
	tmp := c.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", tmp, err)
	}
	if err := os.Rename(tmp, c.path); err != nil {
		return fmt.Errorf("replacing %s: %w", c.path, err)
	}
	return nil
}

// View runs fn against a read-locked snapshot of the document.
func (c *collection[D]) View(fn func(doc D) error) error {
	c.mu.RLock()
	defer c.mu.RUnlock()
	doc, err := c.load()
	if err != nil {
		return err
	}
	return fn(doc)
}

// Update runs fn as an atomic read-modify-write. When fn returns an error
// nothing is persisted, so callers get "no partial write" for free.
func (c *collection[D]) Update(fn func(doc *D) error) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	doc, err := c.load()
	if err != nil {
		return err
	}
	if err := fn(&doc); err != nil {
		return err
	}
	return c.persist(doc)
}

// Stores bundles every collection for wiring into the handlers
type Stores struct {
	Counselors    *CounselorStore
	Bookings      *BookingStore
	Students      *StudentStore
	Trainers      *TrainerStore
	Users         *UserStore
	Admins        *AdminStore
	Courses       *CourseStore
	Payments      *PaymentStore
	Notifications *NotificationStore
	PageConfigs   *PageConfigStore
	Permissions   *PermissionStore
}

// NewStores opens (and seeds, where applicable) every store under dir
func NewStores(dir string) *Stores {
	return &Stores{
		Counselors:    NewCounselorStore(dir),
		Bookings:      NewBookingStore(dir),
		Students:      NewStudentStore(dir),
		Trainers:      NewTrainerStore(dir),
		Users:         NewUserStore(dir),
		Admins:        NewAdminStore(dir),
		Courses:       NewCourseStore(dir),
		Payments:      NewPaymentStore(dir),
		Notifications: NewNotificationStore(dir),
		PageConfigs:   NewPageConfigStore(dir),
		Permissions:   NewPermissionStore(dir),
	}
}
