// Package audit records admin and system actions: every action becomes a
// system log entry, and entries at or above the configured threshold are
// forwarded to the Discord webhook when real-time logging is on.
package audit

import (
	"context"
	"log"

	"github.com/rennsz/fansite/internal/discord"
	"github.com/rennsz/fansite/internal/entities"
)

// LogStore is the slice of the store the logger needs.
type LogStore interface {
	AppendLog(ctx context.Context, level entities.LogLevel, message, source string) (entities.SystemLog, error)
	WebhookSettings() entities.WebhookSettings
}

// Notifier delivers forwarded entries. Satisfied by *discord.Notifier.
type Notifier interface {
	SendEmbed(ctx context.Context, webhookURL string, embed discord.Embed) bool
}

// Logger appends system log entries and mirrors them to the webhook
// according to the stored webhook settings. Logging never fails the caller:
// all errors are swallowed and reported to the process log only.
type Logger struct {
	store    LogStore
	notifier Notifier
}

func NewLogger(store LogStore, notifier Notifier) *Logger {
	return &Logger{store: store, notifier: notifier}
}

// Log records one action. Safe to call from any handler; a nil receiver is
// a no-op so wiring stays optional in tests.
func (l *Logger) Log(ctx context.Context, level entities.LogLevel, message, source string) {
	if l == nil {
		return
	}

	if _, err := l.store.AppendLog(ctx, level, message, source); err != nil {
		log.Printf("Audit: failed to append log entry: %v", err)
		return
	}

	settings := l.store.WebhookSettings()
	if settings.URL == "" || !settings.RealTimeLogging {
		return
	}
	if !shouldForward(level, settings.LogLevel) {
		return
	}

	l.notifier.SendEmbed(ctx, settings.URL, discord.Embed{
		Title:       levelTitle(level, source),
		Description: message,
		Color:       LevelColor(level),
	})
}

// Info is shorthand for Log at the info level.
func (l *Logger) Info(ctx context.Context, message, source string) {
	l.Log(ctx, entities.LogLevelInfo, message, source)
}

// Warning is shorthand for Log at the warning level.
func (l *Logger) Warning(ctx context.Context, message, source string) {
	l.Log(ctx, entities.LogLevelWarning, message, source)
}

// Error is shorthand for Log at the error level.
func (l *Logger) Error(ctx context.Context, message, source string) {
	l.Log(ctx, entities.LogLevelError, message, source)
}

// shouldForward applies the configured threshold: errors always go out,
// warnings unless the threshold is error, info only at the info threshold.
func shouldForward(level, threshold entities.LogLevel) bool {
	switch level {
	case entities.LogLevelError:
		return true
	case entities.LogLevelWarning:
		return threshold != entities.LogLevelError
	default:
		return threshold == entities.LogLevelInfo
	}
}

// LevelColor maps a log level to its embed colour.
func LevelColor(level entities.LogLevel) int {
	switch level {
	case entities.LogLevelWarning:
		return discord.ColorWarning
	case entities.LogLevelError:
		return discord.ColorError
	default:
		return discord.ColorInfo
	}
}

func levelTitle(level entities.LogLevel, source string) string {
	switch level {
	case entities.LogLevelWarning:
		return "WARNING: " + source
	case entities.LogLevelError:
		return "ERROR: " + source
	default:
		return "INFO: " + source
	}
}
