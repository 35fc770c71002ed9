package http

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/rennsz/fansite/internal/audit"
	"github.com/rennsz/fansite/internal/entities"
	"github.com/rennsz/fansite/internal/twitch"
	"github.com/rennsz/fansite/internal/utils"
)

const (
	systemLogsLimit = 100
	activityLimit   = 10
)

// LogReader is the slice of the store the controller needs.
type LogReader interface {
	SystemLogs(limit int) []entities.SystemLog
	RecentActivity(limit int) []entities.SystemLog
	LogCount() int
	ListAnnouncements() []entities.Announcement
}

// ActivityItem is one row of the admin dashboard's activity feed.
type ActivityItem struct {
	ID          int    `json:"id"`
	Type        string `json:"type"`
	Description string `json:"description"`
	Timestamp   string `json:"timestamp"`
	Icon        string `json:"icon"`
}

type LogsController struct {
	store    LogReader
	provider twitch.StatusProvider
	audit    *audit.Logger
}

func NewLogsController(store LogReader, provider twitch.StatusProvider, auditLogger *audit.Logger) *LogsController {
	return &LogsController{store: store, provider: provider, audit: auditLogger}
}

// List serves the most recent system log entries, newest first.
func (controller *LogsController) List(c *gin.Context) {
	c.JSON(http.StatusOK, controller.store.SystemLogs(systemLogsLimit))
}

// Activity serves the dashboard feed: recent non-error, non-system entries
// with relative timestamps and an icon hint for the frontend.
func (controller *LogsController) Activity(c *gin.Context) {
	now := time.Now()
	logs := controller.store.RecentActivity(activityLimit)

	items := make([]ActivityItem, 0, len(logs))
	for _, entry := range logs {
		items = append(items, ActivityItem{
			ID:          entry.ID,
			Type:        string(entry.Level),
			Description: entry.Message,
			Timestamp:   utils.TimeAgo(entry.Timestamp, now),
			Icon:        logIcon(entry.Level, entry.Source),
		})
	}
	c.JSON(http.StatusOK, items)
}

// Stats aggregates dashboard counters.
func (controller *LogsController) Stats(c *gin.Context) {
	viewers := 0
	if metrics, err := controller.provider.CurrentViewers(c.Request.Context()); err == nil {
		viewers = metrics.Viewers
	}

	c.JSON(http.StatusOK, gin.H{
		"announcements": len(controller.store.ListAnnouncements()),
		"viewers":       viewers,
		"logs":          controller.store.LogCount(),
	})
}

// ViewerMetrics serves the current viewership numbers.
func (controller *LogsController) ViewerMetrics(c *gin.Context) {
	metrics, err := controller.provider.CurrentViewers(c.Request.Context())
	if err != nil {
		controller.audit.Error(c.Request.Context(), fmt.Sprintf("Error fetching viewer metrics: %v", err), "api")
		respondInternalError(c, err, "Failed to fetch viewer metrics")
		return
	}
	c.JSON(http.StatusOK, metrics)
}

// logIcon picks the frontend icon for an activity entry. Source takes
// precedence over level.
func logIcon(level entities.LogLevel, source string) string {
	switch source {
	case "auth":
		return "user-shield"
	case "admin":
		return "user-edit"
	case "backup":
		return "database"
	}

	switch level {
	case entities.LogLevelWarning:
		return "exclamation-triangle"
	case entities.LogLevelError:
		return "exclamation-circle"
	default:
		return "info-circle"
	}
}
