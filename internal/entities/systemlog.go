package entities

import "time"

type LogLevel string

const (
	LogLevelInfo    LogLevel = "info"
	LogLevelWarning LogLevel = "warning"
	LogLevelError   LogLevel = "error"
)

// ValidLogLevel reports whether s is one of the known levels.
func ValidLogLevel(s string) bool {
	switch LogLevel(s) {
	case LogLevelInfo, LogLevelWarning, LogLevelError:
		return true
	}
	return false
}

type SystemLog struct {
	ID        int       `json:"id"`
	Level     LogLevel  `json:"level"`
	Message   string    `json:"message"`
	Source    string    `json:"source"`
	Timestamp time.Time `json:"timestamp"`
}
