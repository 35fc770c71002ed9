// Package scheduler runs the periodic persistence job: every tick the whole
// working set is flushed to disk (with timestamped backup copies) and then,
// when enabled, reloaded so out-of-band file edits take effect.
package scheduler

import (
	"context"
	"fmt"
	"log"
	"sync"

	"github.com/robfig/cron/v3"

	"github.com/rennsz/fansite/internal/audit"
)

// PersistentStore is the slice of the store the scheduler drives.
type PersistentStore interface {
	Save(ctx context.Context) error
	Load(ctx context.Context) error
}

// Config holds BackupScheduler construction parameters.
type Config struct {
	// Schedule is a standard 5-field cron expression; the default flushes
	// every five minutes.
	Schedule string
	// ReloadEnabled reloads the working set from disk after each save.
	ReloadEnabled bool
}

// BackupScheduler flushes the store on a cron schedule.
type BackupScheduler struct {
	store  PersistentStore
	audit  *audit.Logger
	config Config

	cron        *cron.Cron
	mu          sync.Mutex
	isRunning   bool
	cancelFunc  context.CancelFunc
	watcherDone chan struct{}
}

func NewBackupScheduler(store PersistentStore, auditLogger *audit.Logger, cfg Config) *BackupScheduler {
	return &BackupScheduler{
		store:  store,
		audit:  auditLogger,
		config: cfg,
		cron:   cron.New(cron.WithParser(cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow))),
	}
}

// Start begins the periodic flush.
func (s *BackupScheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isRunning {
		return nil
	}

	if _, err := s.cron.AddFunc(s.config.Schedule, func() {
		s.runBackup(context.Background())
	}); err != nil {
		return fmt.Errorf("failed to schedule backup job: %w", err)
	}

	var cancelCtx context.Context
	cancelCtx, s.cancelFunc = context.WithCancel(ctx)

	s.cron.Start()
	s.isRunning = true
	log.Printf("Backup scheduler: started with schedule '%s' (reload: %v)",
		s.config.Schedule, s.config.ReloadEnabled)

	s.watcherDone = make(chan struct{})
	go func(done chan struct{}) {
		defer close(done)
		<-cancelCtx.Done()
		s.Stop()
	}(s.watcherDone)

	return nil
}

// Stop gracefully stops the scheduler, waiting for a running flush.
func (s *BackupScheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.isRunning {
		return
	}

	ctx := s.cron.Stop()
	<-ctx.Done()

	// Release the watcher goroutine when Stop is called directly rather
	// than through context cancellation.
	s.cancelFunc()
	s.isRunning = false
	s.cancelFunc = nil

	log.Printf("Backup scheduler: stopped")
}

// runBackup is one tick: save, then reload. Save must complete before the
// reload so the reload only ever observes the state just written.
func (s *BackupScheduler) runBackup(ctx context.Context) {
	if err := s.store.Save(ctx); err != nil {
		log.Printf("Backup scheduler: save failed: %v", err)
		s.audit.Error(ctx, fmt.Sprintf("Scheduled backup failed: %v", err), "backup")
		return
	}

	if !s.config.ReloadEnabled {
		return
	}
	if err := s.store.Load(ctx); err != nil {
		log.Printf("Backup scheduler: reload failed: %v", err)
		s.audit.Error(ctx, fmt.Sprintf("Scheduled reload failed: %v", err), "backup")
	}
}
