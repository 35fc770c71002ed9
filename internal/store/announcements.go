package store

import (
	"context"
	"sort"
	"time"

	"github.com/rennsz/fansite/internal/entities"
)

// ListAnnouncements returns every announcement ordered pinned-first, then
// newest createdAt first within each group.
func (s *Store) ListAnnouncements() []entities.Announcement {
	s.mu.RLock()
	defer s.mu.RUnlock()

	list := make([]entities.Announcement, 0, len(s.announcements))
	for _, a := range s.announcements {
		list = append(list, a)
	}
	sort.SliceStable(list, func(i, j int) bool {
		if list[i].IsPinned != list[j].IsPinned {
			return list[i].IsPinned
		}
		return list[i].CreatedAt.After(list[j].CreatedAt)
	})
	return list
}

// GetAnnouncement returns the announcement with the given id.
func (s *Store) GetAnnouncement(id int) (entities.Announcement, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	a, ok := s.announcements[id]
	return a, ok
}

// CreateAnnouncement assigns the next id and createdAt, inserts, persists
// and returns the stored record. An empty category gets the default.
func (s *Store) CreateAnnouncement(ctx context.Context, a entities.Announcement) (entities.Announcement, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	a.ID = s.nextIDLocked(counterAnnouncements)
	a.CreatedAt = time.Now().UTC()
	if a.Category == "" {
		a.Category = entities.DefaultAnnouncementCategory
	}
	s.announcements[a.ID] = a

	if err := s.saveLocked(ctx); err != nil {
		return entities.Announcement{}, err
	}
	return a, nil
}

// UpdateAnnouncement shallow-merges the patch into an existing record and
// persists. Returns ErrNotFound when the id is absent.
func (s *Store) UpdateAnnouncement(ctx context.Context, id int, patch entities.AnnouncementPatch) (entities.Announcement, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	a, ok := s.announcements[id]
	if !ok {
		return entities.Announcement{}, ErrNotFound
	}

	if patch.Title != nil {
		a.Title = *patch.Title
	}
	if patch.Content != nil {
		a.Content = *patch.Content
	}
	if patch.Category != nil {
		a.Category = *patch.Category
	}
	if patch.IsPinned != nil {
		a.IsPinned = *patch.IsPinned
	}
	s.announcements[id] = a

	if err := s.saveLocked(ctx); err != nil {
		return entities.Announcement{}, err
	}
	return a, nil
}

// DeleteAnnouncement removes the record if present and persists. Deleting a
// missing id is a no-op, not an error.
func (s *Store) DeleteAnnouncement(ctx context.Context, id int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.announcements, id)
	return s.saveLocked(ctx)
}
