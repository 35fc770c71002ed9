// Package entrypoint wires every component together and runs the HTTP
// server with graceful shutdown.
package entrypoint

import (
	"context"
	"encoding/hex"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/rennsz/fansite/internal/audit"
	"github.com/rennsz/fansite/internal/auth"
	"github.com/rennsz/fansite/internal/config"
	"github.com/rennsz/fansite/internal/discord"
	http_controllers "github.com/rennsz/fansite/internal/http"
	"github.com/rennsz/fansite/internal/scheduler"
	"github.com/rennsz/fansite/internal/store"
	"github.com/rennsz/fansite/internal/twitch"
)

// ShutdownFunc is called during graceful shutdown to clean up resources.
type ShutdownFunc func(ctx context.Context)

func Serve(router *gin.Engine, cfg *config.Config, onShutdown ShutdownFunc) {
	timeout := time.Duration(cfg.Global.ShutdownTimeoutInSeconds) * time.Second

	srv := &http.Server{
		Addr:    fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port),
		Handler: router,
	}

	go func() {
		fmt.Printf("Starting server at %s:%d\n", cfg.HTTP.Host, cfg.HTTP.Port)
		// service connections
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	// Graceful shutdown on SIGINT/SIGTERM. SIGKILL can't be caught, so it is
	// not registered.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Printf("Shutdown Server, waiting %v before killing\n", timeout)

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	// Call shutdown callback first (e.g., to stop the backup scheduler and
	// flush the store)
	if onShutdown != nil {
		onShutdown(ctx)
	}

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server Shutdown:", err)
	}

	log.Println("Server exiting")
}

func Run(cfg *config.Config, version string) {
	log.Printf("Starting RENNSZ fan site v%s", version)

	// Notifier for backup events, audit forwarding, and the public log
	// endpoint.
	notifier := discord.NewNotifier(discord.Config{
		FallbackURL: cfg.Webhook.FallbackURL,
		Username:    cfg.Webhook.Username,
		AvatarURL:   cfg.Webhook.AvatarURL,
		Timeout:     cfg.Webhook.Timeout,
	})

	// Seed password is hashed before the store ever sees it.
	seedHash, err := auth.HashPassword(cfg.Auth.AdminPassword, cfg.Auth.BcryptCost)
	if err != nil {
		log.Fatalf("Failed to hash admin password: %v", err)
	}

	dataStore, err := store.New(store.Config{
		DataDir:          cfg.Store.DataDir,
		BackupRetention:  cfg.Store.BackupRetention,
		Notifier:         notifier,
		SeedUsername:     cfg.Auth.AdminUsername,
		SeedPasswordHash: seedHash,
	})
	if err != nil {
		log.Fatalf("Failed to initialize store: %v", err)
	}

	auditLogger := audit.NewLogger(dataStore, notifier)
	auditor := audit.NewAuditor(filepath.Join(cfg.Store.DataDir, "audit"))

	// Live status provider: Helix when credentials are set, a static
	// offline provider otherwise.
	var provider twitch.StatusProvider
	if cfg.Twitch.ClientID != "" && cfg.Twitch.ClientSecret != "" {
		log.Printf("Twitch status provider: helix (%s, %s)", cfg.Twitch.MainChannel, cfg.Twitch.EventChannel)
		provider = twitch.NewHelixClient(cfg.Twitch.ClientID, cfg.Twitch.ClientSecret,
			cfg.Twitch.MainChannel, cfg.Twitch.EventChannel)
	} else {
		log.Printf("Twitch status provider: static (set TWITCH_CLIENT_ID/TWITCH_CLIENT_SECRET to enable live data)")
		provider = twitch.NewStaticProvider(cfg.Twitch.MainChannel, cfg.Twitch.EventChannel)
	}

	sessionManager := auth.NewSessionManager(cfg.Auth)
	authService := auth.NewService(dataStore)

	// CSRF protection is opt-in; the admin SPA authenticates with a
	// SameSite=Lax session cookie.
	var csrfSecret []byte
	if cfg.Auth.CSRFEnabled {
		if cfg.Auth.SessionSecret != "" {
			csrfSecret, err = hex.DecodeString(cfg.Auth.SessionSecret)
			if err != nil {
				// Not hex, use as raw bytes
				csrfSecret = []byte(cfg.Auth.SessionSecret)
			}
		} else {
			secret, err := auth.GenerateSessionSecret()
			if err != nil {
				log.Fatalf("Failed to generate CSRF secret: %v", err)
			}
			csrfSecret, _ = hex.DecodeString(secret)
			log.Printf("Generated session secret (set SESSION_SECRET to persist)")
		}
	}

	// Periodic flush+reload job.
	backupScheduler := scheduler.NewBackupScheduler(dataStore, auditLogger, scheduler.Config{
		Schedule:      cfg.Store.BackupSchedule,
		ReloadEnabled: cfg.Store.ReloadEnabled,
	})
	schedulerCtx, schedulerCancel := context.WithCancel(context.Background())
	if err := backupScheduler.Start(schedulerCtx); err != nil {
		log.Fatalf("Failed to start backup scheduler: %v", err)
	}

	router := http_controllers.NewRouter(http_controllers.RouterConfig{
		Store:              dataStore,
		Provider:           provider,
		Sender:             notifier,
		Sessions:           sessionManager,
		AuthService:        authService,
		AuditLogger:        auditLogger,
		Auditor:            auditor,
		FallbackWebhookURL: cfg.Webhook.FallbackURL,
		CORSOrigins:        cfg.HTTP.CORSOrigins,
		CSRFSecret:         csrfSecret,
		SecureCookies:      cfg.Auth.SecureCookies,
		Version:            version,
	})

	onShutdown := func(ctx context.Context) {
		schedulerCancel()
		backupScheduler.Stop()
		// Final flush so nothing mutated since the last tick is lost.
		if err := dataStore.Save(ctx); err != nil {
			log.Printf("Final save failed: %v", err)
		}
	}

	Serve(router, cfg, onShutdown)
}
