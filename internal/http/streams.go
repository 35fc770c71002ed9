package http

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/rennsz/fansite/internal/audit"
	"github.com/rennsz/fansite/internal/entities"
	"github.com/rennsz/fansite/internal/twitch"
)

// StreamSettingsStore is the slice of the store the controller needs.
type StreamSettingsStore interface {
	StreamSettings() entities.StreamSettings
	UpdateStreamSettings(ctx context.Context, patch entities.StreamSettingsPatch) (entities.StreamSettings, error)
}

type featuredStreamRequest struct {
	Featured  string `json:"featured" binding:"required"`
	CustomURL string `json:"customUrl"`
}

type StreamsController struct {
	store    StreamSettingsStore
	provider twitch.StatusProvider
	audit    *audit.Logger
}

func NewStreamsController(store StreamSettingsStore, provider twitch.StatusProvider, auditLogger *audit.Logger) *StreamsController {
	return &StreamsController{store: store, provider: provider, audit: auditLogger}
}

// GetSettings serves the stream settings to the admin panel.
func (controller *StreamsController) GetSettings(c *gin.Context) {
	c.JSON(http.StatusOK, controller.store.StreamSettings())
}

// UpdateFeatured selects which stream the landing page embeds.
func (controller *StreamsController) UpdateFeatured(c *gin.Context) {
	var req featuredStreamRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "Featured stream type is required")
		return
	}

	patch := entities.StreamSettingsPatch{FeaturedStream: &req.Featured}
	if req.Featured == "custom" && req.CustomURL != "" {
		patch.CustomEmbedURL = &req.CustomURL
	}

	settings, err := controller.store.UpdateStreamSettings(c.Request.Context(), patch)
	if err != nil {
		respondInternalError(c, err, "Failed to update stream settings")
		return
	}

	controller.audit.Info(c.Request.Context(), fmt.Sprintf("Stream settings updated: featured=%s", req.Featured), "admin")
	c.JSON(http.StatusOK, settings)
}

// Live reports which configured channel is currently live, if any.
func (controller *StreamsController) Live(c *gin.Context) {
	status, live, err := controller.provider.LiveStreamer(c.Request.Context())
	if err != nil {
		controller.audit.Error(c.Request.Context(), fmt.Sprintf("Error fetching live streamer: %v", err), "api")
		respondInternalError(c, err, "Failed to fetch live streamer")
		return
	}
	if !live {
		c.JSON(http.StatusOK, gin.H{"isLive": false})
		return
	}
	c.JSON(http.StatusOK, status)
}

// Streamers lists the status of every configured channel.
func (controller *StreamsController) Streamers(c *gin.Context) {
	statuses, err := controller.provider.AllStreamers(c.Request.Context())
	if err != nil {
		controller.audit.Error(c.Request.Context(), fmt.Sprintf("Error fetching streamers status: %v", err), "api")
		respondInternalError(c, err, "Failed to fetch streamers status")
		return
	}
	c.JSON(http.StatusOK, statuses)
}

// Streamer reports one channel's status.
func (controller *StreamsController) Streamer(c *gin.Context) {
	channel := c.Param("channel")

	status, err := controller.provider.Streamer(c.Request.Context(), channel)
	if err != nil {
		if errors.Is(err, twitch.ErrUnknownChannel) {
			respondNotFound(c, "Channel")
			return
		}
		controller.audit.Error(c.Request.Context(), fmt.Sprintf("Error fetching stream data: %v", err), "api")
		respondInternalError(c, err, "Failed to fetch stream data")
		return
	}
	c.JSON(http.StatusOK, status)
}
