package http

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/rennsz/fansite/internal/audit"
	"github.com/rennsz/fansite/internal/discord"
	"github.com/rennsz/fansite/internal/entities"
)

// WebhookSettingsStore is the slice of the store the controller needs.
type WebhookSettingsStore interface {
	WebhookSettings() entities.WebhookSettings
	UpdateWebhookSettings(ctx context.Context, patch entities.WebhookSettingsPatch) (entities.WebhookSettings, error)
}

// WebhookSender delivers notification messages.
type WebhookSender interface {
	Send(ctx context.Context, webhookURL string, msg discord.Message) bool
}

type updateWebhookSettingsRequest struct {
	URL             string `json:"url" binding:"required"`
	LogLevel        string `json:"logLevel"`
	RealTimeLogging *bool  `json:"realTimeLogging"`
}

// webhookLogRequest accepts the three client payload shapes: a direct embed,
// a social-media interaction, or raw embeds.
type webhookLogRequest struct {
	Title       string          `json:"title"`
	Description string          `json:"description"`
	Color       int             `json:"color"`
	Platform    string          `json:"platform"`
	Action      string          `json:"action"`
	Embeds      []discord.Embed `json:"embeds"`
}

type WebhooksController struct {
	store       WebhookSettingsStore
	sender      WebhookSender
	fallbackURL string
	audit       *audit.Logger
}

func NewWebhooksController(store WebhookSettingsStore, sender WebhookSender, fallbackURL string, auditLogger *audit.Logger) *WebhooksController {
	return &WebhooksController{store: store, sender: sender, fallbackURL: fallbackURL, audit: auditLogger}
}

// GetSettings serves the webhook settings, substituting the fallback URL
// when none has been saved yet.
func (controller *WebhooksController) GetSettings(c *gin.Context) {
	settings := controller.store.WebhookSettings()
	if settings.URL == "" {
		settings.URL = controller.fallbackURL
	}
	c.JSON(http.StatusOK, settings)
}

// UpdateSettings saves the webhook endpoint and forwarding policy.
func (controller *WebhooksController) UpdateSettings(c *gin.Context) {
	var req updateWebhookSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "Webhook URL is required")
		return
	}

	logLevel := entities.LogLevelInfo
	if req.LogLevel != "" {
		if !entities.ValidLogLevel(req.LogLevel) {
			respondBadRequest(c, "Failed to update webhook settings")
			return
		}
		logLevel = entities.LogLevel(req.LogLevel)
	}

	realTime := true
	if req.RealTimeLogging != nil {
		realTime = *req.RealTimeLogging
	}

	settings, err := controller.store.UpdateWebhookSettings(c.Request.Context(), entities.WebhookSettingsPatch{
		URL:             &req.URL,
		LogLevel:        &logLevel,
		RealTimeLogging: &realTime,
	})
	if err != nil {
		respondInternalError(c, err, "Failed to update webhook settings")
		return
	}

	controller.audit.Info(c.Request.Context(), "Webhook settings updated", "admin")
	c.JSON(http.StatusOK, settings)
}

// Log accepts client-side notification requests, records them in the system
// log, and forwards them to the configured webhook. Public so the marketing
// page can report interactions without a session.
func (controller *WebhooksController) Log(c *gin.Context) {
	var req webhookLogRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "Invalid webhook data format")
		return
	}

	embeds, ok := buildLogEmbeds(req)
	if !ok {
		respondBadRequest(c, "Invalid webhook data format")
		return
	}

	logMessage := embeds[0].Title
	if logMessage == "" {
		logMessage = "Discord webhook log"
	}
	controller.audit.Info(c.Request.Context(), logMessage, "webhook")

	// An unset stored URL makes the notifier fall back to the built-in one.
	url := controller.store.WebhookSettings().URL
	if controller.sender.Send(c.Request.Context(), url, discord.Message{Embeds: embeds}) {
		c.JSON(http.StatusOK, gin.H{"success": true, "message": "Webhook sent successfully"})
		return
	}
	c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to send webhook"})
}

// buildLogEmbeds normalises the accepted payload shapes into embeds.
func buildLogEmbeds(req webhookLogRequest) ([]discord.Embed, bool) {
	switch {
	case len(req.Embeds) > 0:
		return req.Embeds, true
	case req.Title != "" && req.Description != "":
		color := req.Color
		if color == 0 {
			color = discord.ColorSuccess
		}
		return []discord.Embed{{Title: req.Title, Description: req.Description, Color: color}}, true
	case req.Platform != "" && req.Action != "":
		return []discord.Embed{{
			Title:       "Social Media Interaction: " + req.Platform,
			Description: "User " + req.Action,
			Color:       platformColor(req.Platform),
		}}, true
	}
	return nil, false
}

func platformColor(platform string) int {
	switch platform {
	case "Discord":
		return 0x5865F2
	case "Twitter":
		return 0x1DA1F2
	case "Instagram":
		return 0xE1306C
	default:
		return discord.ColorSuccess
	}
}
