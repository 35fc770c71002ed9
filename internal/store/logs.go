package store

import (
	"context"
	"sort"
	"time"

	"github.com/rennsz/fansite/internal/entities"
)

// AppendLog appends a system log entry, evicting the oldest entries beyond
// the retention cap, and persists.
func (s *Store) AppendLog(ctx context.Context, level entities.LogLevel, message, source string) (entities.SystemLog, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry := entities.SystemLog{
		ID:        s.nextIDLocked(counterLogs),
		Level:     level,
		Message:   message,
		Source:    source,
		Timestamp: time.Now().UTC(),
	}
	s.logs = append(s.logs, entry)
	if len(s.logs) > maxLogEntries {
		s.logs = s.logs[len(s.logs)-maxLogEntries:]
	}

	if err := s.saveLocked(ctx); err != nil {
		return entities.SystemLog{}, err
	}
	return entry, nil
}

// SystemLogs returns up to limit entries, newest first.
func (s *Store) SystemLogs(limit int) []entities.SystemLog {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return newestFirst(s.logs, limit, func(entities.SystemLog) bool { return true })
}

// RecentActivity returns up to limit entries for the activity feed, newest
// first, omitting internal error entries emitted by the system itself.
func (s *Store) RecentActivity(limit int) []entities.SystemLog {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return newestFirst(s.logs, limit, func(entry entities.SystemLog) bool {
		return entry.Level != entities.LogLevelError || entry.Source != "system"
	})
}

// LogCount reports the number of retained log entries.
func (s *Store) LogCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.logs)
}

func newestFirst(logs []entities.SystemLog, limit int, keep func(entities.SystemLog) bool) []entities.SystemLog {
	filtered := make([]entities.SystemLog, 0, len(logs))
	for _, entry := range logs {
		if keep(entry) {
			filtered = append(filtered, entry)
		}
	}
	sort.SliceStable(filtered, func(i, j int) bool {
		return filtered[i].Timestamp.After(filtered[j].Timestamp)
	})
	if limit > 0 && len(filtered) > limit {
		filtered = filtered[:limit]
	}
	return filtered
}
