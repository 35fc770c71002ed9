// Package store is the single point of truth for all persisted application
// state. It keeps every entity family in memory, mirrors each one to its own
// JSON file under the data directory, and writes a timestamped backup copy
// alongside every persist.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/rennsz/fansite/internal/discord"
	"github.com/rennsz/fansite/internal/entities"
)

// ErrNotFound is returned when an update targets an id that is absent.
var ErrNotFound = errors.New("not found")

// Data file names, one per entity family.
const (
	usersFile           = "users.json"
	announcementsFile   = "announcements.json"
	logsFile            = "logs.json"
	streamSettingsFile  = "streamSettings.json"
	themeSettingsFile   = "themeSettings.json"
	webhookSettingsFile = "webhookSettings.json"
	metaTagsFile        = "metaTags.json"
)

// Per-type id counter keys.
const (
	counterUsers         = "users"
	counterAnnouncements = "announcements"
	counterLogs          = "logs"
)

// maxLogEntries caps the system log; the oldest entries are evicted first.
const maxLogEntries = 1000

// BackupNotifier delivers the backup-complete notification. Satisfied by
// *discord.Notifier.
type BackupNotifier interface {
	SendEmbed(ctx context.Context, webhookURL string, embed discord.Embed) bool
}

// Config holds Store construction parameters.
type Config struct {
	DataDir string
	// Number of timestamped backup copies kept per data file; zero keeps
	// everything.
	BackupRetention int
	// Optional notifier for backup-complete events.
	Notifier BackupNotifier
	// Seed admin credentials, created when the user collection is empty
	// after load. SeedPasswordHash must already be a bcrypt hash.
	SeedUsername     string
	SeedPasswordHash string
}

// Store owns the in-memory collections and their disk mirror. All access
// goes through its methods; the mutex makes each operation atomic with
// respect to concurrent handlers and the periodic flush.
type Store struct {
	mu sync.RWMutex

	dataDir          string
	backupRetention  int
	notifier         BackupNotifier
	seedUsername     string
	seedPasswordHash string

	users           map[int]entities.User
	announcements   map[int]entities.Announcement
	logs            []entities.SystemLog
	streamSettings  entities.StreamSettings
	themeSettings   entities.ThemeSettings
	webhookSettings entities.WebhookSettings
	metaTags        entities.MetaTags
	currentID       map[string]int
}

// New creates a Store and performs the initial load from disk. A missing or
// unreadable data directory entry falls back to defaults; only a failure to
// create the directory itself is fatal.
func New(cfg Config) (*Store, error) {
	s := &Store{
		dataDir:          cfg.DataDir,
		backupRetention:  cfg.BackupRetention,
		notifier:         cfg.Notifier,
		seedUsername:     cfg.SeedUsername,
		seedPasswordHash: cfg.SeedPasswordHash,
		users:            make(map[int]entities.User),
		announcements:    make(map[int]entities.Announcement),
		currentID:        make(map[string]int),
	}
	s.resetDefaultsLocked()

	if err := s.ensureDataDir(); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}
	if err := s.Load(context.Background()); err != nil {
		return nil, err
	}
	return s, nil
}

// resetDefaultsLocked initialises every singleton so that reads never see an
// uninitialised object.
func (s *Store) resetDefaultsLocked() {
	s.streamSettings = entities.StreamSettings{FeaturedStream: "auto"}
	s.themeSettings = entities.ThemeSettings{CurrentTheme: "default"}
	s.webhookSettings = entities.WebhookSettings{
		LogLevel:        entities.LogLevelInfo,
		RealTimeLogging: true,
	}
	s.metaTags = entities.MetaTags{}
}

func (s *Store) ensureDataDir() error {
	if _, err := os.Stat(s.dataDir); os.IsNotExist(err) {
		return os.MkdirAll(s.dataDir, 0755)
	}
	return nil
}

// Load reads every data file that exists, overwriting the in-memory state.
// Individual read errors are logged and treated as "no data". Each id
// counter is rebuilt as max existing id + 1, and the seed admin is created
// when the user collection comes up empty.
func (s *Store) Load(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loadLocked(ctx)
}

func (s *Store) loadLocked(ctx context.Context) error {
	if err := s.ensureDataDir(); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}

	var users map[int]entities.User
	if readJSONFile(s.dataDir, usersFile, &users) && users != nil {
		s.users = users
		s.currentID[counterUsers] = maxKey(users) + 1
	}

	var announcements map[int]entities.Announcement
	if readJSONFile(s.dataDir, announcementsFile, &announcements) && announcements != nil {
		s.announcements = announcements
		s.currentID[counterAnnouncements] = maxKey(announcements) + 1
	}

	var logs []entities.SystemLog
	if readJSONFile(s.dataDir, logsFile, &logs) && logs != nil {
		s.logs = logs
		maxID := 0
		for _, entry := range logs {
			if entry.ID > maxID {
				maxID = entry.ID
			}
		}
		s.currentID[counterLogs] = maxID + 1
	}

	var stream entities.StreamSettings
	if readJSONFile(s.dataDir, streamSettingsFile, &stream) {
		s.streamSettings = stream
	}
	var theme entities.ThemeSettings
	if readJSONFile(s.dataDir, themeSettingsFile, &theme) {
		s.themeSettings = theme
	}
	var webhook entities.WebhookSettings
	if readJSONFile(s.dataDir, webhookSettingsFile, &webhook) {
		s.webhookSettings = webhook
	}
	var meta entities.MetaTags
	if readJSONFile(s.dataDir, metaTagsFile, &meta) {
		s.metaTags = meta
	}

	if len(s.users) == 0 && s.seedUsername != "" {
		id := s.nextIDLocked(counterUsers)
		s.users[id] = entities.User{
			ID:       id,
			Username: s.seedUsername,
			Password: s.seedPasswordHash,
		}
		if err := s.saveLocked(ctx); err != nil {
			return fmt.Errorf("failed to persist seed admin: %w", err)
		}
		log.Printf("Store: seeded admin user %q", s.seedUsername)
	}

	return nil
}

// Save flushes the whole working set to disk and emits the backup-complete
// notification. Used by the periodic scheduler; mutating operations persist
// through the same path before they return.
func (s *Store) Save(ctx context.Context) error {
	s.mu.Lock()
	err := s.saveLocked(ctx)
	s.mu.Unlock()
	return err
}

// saveLocked serializes every collection and singleton to its own file plus
// a timestamped backup copy. Write errors surface to the caller.
func (s *Store) saveLocked(ctx context.Context) error {
	backupTime := time.Now().UTC()
	s.webhookSettings.LastBackup = &backupTime

	files := []struct {
		name string
		data any
	}{
		{usersFile, s.users},
		{announcementsFile, s.announcements},
		{logsFile, s.logsOrEmpty()},
		{streamSettingsFile, s.streamSettings},
		{themeSettingsFile, s.themeSettings},
		{webhookSettingsFile, s.webhookSettings},
		{metaTagsFile, s.metaTags},
	}

	totalBytes := 0
	for _, f := range files {
		n, err := s.writeJSONFile(f.name, f.data, backupTime)
		if err != nil {
			return fmt.Errorf("failed to write %s: %w", f.name, err)
		}
		totalBytes += n
	}

	// Delivery happens off the lock; a slow webhook endpoint must not
	// stall store operations while the notifier is on the wire.
	go s.notifyBackup(context.WithoutCancel(ctx), s.webhookSettings.URL, backupTime, totalBytes)
	return nil
}

// logsOrEmpty avoids serializing a nil slice as JSON null.
func (s *Store) logsOrEmpty() []entities.SystemLog {
	if s.logs == nil {
		return []entities.SystemLog{}
	}
	return s.logs
}

// writeJSONFile writes one data file and its timestamped backup copy,
// returning the serialized size in bytes.
func (s *Store) writeJSONFile(name string, data any, backupTime time.Time) (int, error) {
	payload, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return 0, err
	}

	path := filepath.Join(s.dataDir, name)
	if err := os.WriteFile(path, payload, 0644); err != nil {
		return 0, err
	}

	base := strings.TrimSuffix(name, ".json")
	backupName := fmt.Sprintf("backup_%s_%d.json", base, backupTime.UnixMilli())
	if err := os.WriteFile(filepath.Join(s.dataDir, backupName), payload, 0644); err != nil {
		return 0, err
	}

	if s.backupRetention > 0 {
		s.pruneBackups(base)
	}

	return len(payload), nil
}

// pruneBackups keeps only the newest backupRetention copies for a file.
// Pruning failures are logged, never surfaced.
func (s *Store) pruneBackups(base string) {
	pattern := filepath.Join(s.dataDir, fmt.Sprintf("backup_%s_*.json", base))
	matches, err := filepath.Glob(pattern)
	if err != nil || len(matches) <= s.backupRetention {
		return
	}
	// Millisecond timestamps sort lexicographically within same digit
	// count; sort descending and drop the tail.
	sort.Sort(sort.Reverse(sort.StringSlice(matches)))
	for _, stale := range matches[s.backupRetention:] {
		if err := os.Remove(stale); err != nil {
			log.Printf("Store: failed to prune backup %s: %v", stale, err)
		}
	}
}

// notifyBackup reports a completed persist with its size and timestamp.
func (s *Store) notifyBackup(ctx context.Context, webhookURL string, backupTime time.Time, sizeBytes int) {
	if s.notifier == nil {
		return
	}
	stamp := backupTime.Format(time.RFC3339)
	s.notifier.SendEmbed(ctx, webhookURL, discord.Embed{
		Title:       "System Backup Complete",
		Description: "Data snapshot written to disk",
		Color:       discord.ColorBackup,
		Fields: []discord.EmbedField{
			{Name: "Backup Time", Value: stamp, Inline: true},
			{Name: "Size", Value: fmt.Sprintf("%.2f KB", float64(sizeBytes)/1024), Inline: true},
		},
		Timestamp: stamp,
	})
}

// nextIDLocked returns the next id for an entity type and advances the
// counter. Counters start at 1.
func (s *Store) nextIDLocked(counter string) int {
	id := s.currentID[counter]
	if id == 0 {
		id = 1
	}
	s.currentID[counter] = id + 1
	return id
}

// readJSONFile reads one data file into out, reporting whether anything was
// loaded. A missing file is silent; any other failure is logged and treated
// the same way.
func readJSONFile(dir, name string, out any) bool {
	path := filepath.Join(dir, name)
	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			log.Printf("Store: error reading %s: %v", name, err)
		}
		return false
	}
	if err := json.Unmarshal(data, out); err != nil {
		log.Printf("Store: error parsing %s: %v", name, err)
		return false
	}
	return true
}

func maxKey[V any](m map[int]V) int {
	maxID := 0
	for id := range m {
		if id > maxID {
			maxID = id
		}
	}
	return maxID
}
