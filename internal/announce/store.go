// Package announce holds the in-memory announcement store. Announcements are
// deliberately ephemeral: the store is created at startup, cleared at
// shutdown, and its contents do not survive a restart.
package announce

import (
	"sync"
	"time"
)

// Announcement is a site-wide notice published by an admin.
type Announcement struct {
	ID        uint      `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	IsActive  bool      `json:"isActive"`
	CreatedAt time.Time `json:"createdAt"`
}

// Store is a mutex-guarded announcement list with monotonically assigned ids.
// It is injected explicitly wherever announcements are needed; there is no
// package-level singleton.
type Store struct {
	mu     sync.RWMutex
	nextID uint
	items  []Announcement
}

// NewStore creates an empty announcement store.
func NewStore() *Store {
	return &Store{nextID: 1}
}

// Create appends a new announcement and returns it.
func (s *Store) Create(title, content string, isActive bool) Announcement {
	s.mu.Lock()
	defer s.mu.Unlock()

	a := Announcement{
		ID:        s.nextID,
		Title:     title,
		Content:   content,
		IsActive:  isActive,
		CreatedAt: time.Now().UTC(),
	}
	s.nextID++
	s.items = append(s.items, a)
	return a
}

// ListActive returns the active announcements in creation order.
func (s *Store) ListActive() []Announcement {
	s.mu.RLock()
	defer s.mu.RUnlock()

	active := make([]Announcement, 0, len(s.items))
	for _, a := range s.items {
		if a.IsActive {
			active = append(active, a)
		}
	}
	return active
}

// Clear empties the store. Called on shutdown.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = nil
}
