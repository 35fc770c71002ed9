package config

import (
	"strings"
	"time"

	"github.com/spf13/viper"
)

type (
	Config struct {
		HTTP
		Store
		Auth
		Webhook
		Twitch
		Global
	}

	HTTP struct {
		Port int32
		Host string
		// Allowed CORS origins for the SPA client, comma separated.
		CORSOrigins []string
	}

	Store struct {
		DataDir string
		// Cron expression for the periodic flush+reload cycle.
		BackupSchedule string
		// When false the periodic job only flushes to disk; in-memory
		// state stays authoritative.
		ReloadEnabled bool
		// Number of timestamped backup copies kept per file. Zero keeps
		// everything.
		BackupRetention int
	}

	Auth struct {
		SessionSecret   string
		SessionLifetime time.Duration
		BcryptCost      int
		SecureCookies   bool
		CSRFEnabled     bool

		// Seed credentials for the admin account created on first run.
		AdminUsername string
		AdminPassword string
	}

	Webhook struct {
		// Used when no webhook URL has been configured through the admin
		// panel.
		FallbackURL string
		Username    string
		AvatarURL   string
		Timeout     time.Duration
	}

	Twitch struct {
		ClientID     string
		ClientSecret string
		MainChannel  string
		EventChannel string
	}

	Global struct {
		ShutdownTimeoutInSeconds int
	}
)

func NewConfig() *Config {
	v := viper.New()
	v.AutomaticEnv()
	v.SetDefault("port", 5000)
	v.SetDefault("host", "0.0.0.0")
	v.SetDefault("cors_origins", "")
	v.SetDefault("shutdown_timeout_in_seconds", 2)

	// Store defaults
	v.SetDefault("data_dir", DefaultDataDir)
	v.SetDefault("backup_schedule", "*/5 * * * *") // Every 5 minutes
	v.SetDefault("store_reload_enabled", true)
	v.SetDefault("backup_retention", 0)

	// Auth defaults
	v.SetDefault("session_secret", "")      // Auto-generated if empty
	v.SetDefault("session_lifetime", "24h") // 24 hours
	v.SetDefault("bcrypt_cost", 12)
	v.SetDefault("secure_cookies", false)
	v.SetDefault("csrf_enabled", false)
	v.SetDefault("admin_username", "admin")
	v.SetDefault("admin_password", "Rennsz5842")

	// Webhook defaults
	v.SetDefault("webhook_fallback_url", "")
	v.SetDefault("webhook_username", "RENNSZ Website")
	v.SetDefault("webhook_avatar_url", DefaultProfileImageURL)
	v.SetDefault("webhook_timeout", "10s")

	// Twitch defaults
	v.SetDefault("twitch_client_id", "")
	v.SetDefault("twitch_client_secret", "")
	v.SetDefault("twitch_main_channel", "rennsz")
	v.SetDefault("twitch_event_channel", "rennszino")

	return &Config{
		HTTP: HTTP{
			Port:        v.GetInt32("PORT"),
			Host:        v.GetString("HOST"),
			CORSOrigins: splitOrigins(v.GetString("CORS_ORIGINS")),
		},
		Store: Store{
			DataDir:         v.GetString("DATA_DIR"),
			BackupSchedule:  v.GetString("BACKUP_SCHEDULE"),
			ReloadEnabled:   v.GetBool("STORE_RELOAD_ENABLED"),
			BackupRetention: v.GetInt("BACKUP_RETENTION"),
		},
		Auth: Auth{
			SessionSecret:   v.GetString("SESSION_SECRET"),
			SessionLifetime: v.GetDuration("SESSION_LIFETIME"),
			BcryptCost:      v.GetInt("BCRYPT_COST"),
			SecureCookies:   v.GetBool("SECURE_COOKIES"),
			CSRFEnabled:     v.GetBool("CSRF_ENABLED"),
			AdminUsername:   v.GetString("ADMIN_USERNAME"),
			AdminPassword:   v.GetString("ADMIN_PASSWORD"),
		},
		Webhook: Webhook{
			FallbackURL: v.GetString("WEBHOOK_FALLBACK_URL"),
			Username:    v.GetString("WEBHOOK_USERNAME"),
			AvatarURL:   v.GetString("WEBHOOK_AVATAR_URL"),
			Timeout:     v.GetDuration("WEBHOOK_TIMEOUT"),
		},
		Twitch: Twitch{
			ClientID:     v.GetString("TWITCH_CLIENT_ID"),
			ClientSecret: v.GetString("TWITCH_CLIENT_SECRET"),
			MainChannel:  v.GetString("TWITCH_MAIN_CHANNEL"),
			EventChannel: v.GetString("TWITCH_EVENT_CHANNEL"),
		},
		Global: Global{
			ShutdownTimeoutInSeconds: v.GetInt("SHUTDOWN_TIMEOUT_IN_SECONDS"),
		},
	}
}

func splitOrigins(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	origins := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			origins = append(origins, trimmed)
		}
	}
	return origins
}
