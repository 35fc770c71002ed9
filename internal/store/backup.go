package store

import (
	"context"
	"time"

	"github.com/rennsz/fansite/internal/entities"
)

// BackupData is a full snapshot of the working set, used by the admin
// download/restore endpoints. Users are intentionally excluded so that
// credential hashes never leave the server.
type BackupData struct {
	Announcements   []entities.Announcement  `json:"announcements"`
	Logs            []entities.SystemLog     `json:"logs"`
	StreamSettings  entities.StreamSettings  `json:"streamSettings"`
	ThemeSettings   entities.ThemeSettings   `json:"themeSettings"`
	WebhookSettings entities.WebhookSettings `json:"webhookSettings"`
	MetaTags        entities.MetaTags        `json:"metaTags"`
	ExportedAt      time.Time                `json:"exportedAt"`
}

// Snapshot produces a downloadable copy of the current state.
func (s *Store) Snapshot() BackupData {
	s.mu.RLock()
	defer s.mu.RUnlock()

	announcements := make([]entities.Announcement, 0, len(s.announcements))
	for _, a := range s.announcements {
		announcements = append(announcements, a)
	}
	logs := make([]entities.SystemLog, len(s.logs))
	copy(logs, s.logs)

	return BackupData{
		Announcements:   announcements,
		Logs:            logs,
		StreamSettings:  s.streamSettings,
		ThemeSettings:   s.themeSettings,
		WebhookSettings: s.webhookSettings,
		MetaTags:        s.metaTags,
		ExportedAt:      time.Now().UTC(),
	}
}

// Restore replaces the content collections and singletons with the snapshot
// and persists. Logs beyond the retention cap are evicted oldest first. The
// user collection and id counters for users are left untouched.
func (s *Store) Restore(ctx context.Context, backup BackupData) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.announcements = make(map[int]entities.Announcement, len(backup.Announcements))
	maxAnnouncementID := 0
	for _, a := range backup.Announcements {
		s.announcements[a.ID] = a
		if a.ID > maxAnnouncementID {
			maxAnnouncementID = a.ID
		}
	}
	s.currentID[counterAnnouncements] = maxAnnouncementID + 1

	s.logs = make([]entities.SystemLog, len(backup.Logs))
	copy(s.logs, backup.Logs)
	if len(s.logs) > maxLogEntries {
		s.logs = s.logs[len(s.logs)-maxLogEntries:]
	}
	maxLogID := 0
	for _, entry := range s.logs {
		if entry.ID > maxLogID {
			maxLogID = entry.ID
		}
	}
	s.currentID[counterLogs] = maxLogID + 1

	s.streamSettings = backup.StreamSettings
	s.themeSettings = backup.ThemeSettings
	s.webhookSettings = backup.WebhookSettings
	s.metaTags = backup.MetaTags

	return s.saveLocked(ctx)
}
