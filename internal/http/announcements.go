package http

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/rennsz/fansite/internal/audit"
	"github.com/rennsz/fansite/internal/entities"
	"github.com/rennsz/fansite/internal/store"
)

// AnnouncementStore is the slice of the store the controller needs.
type AnnouncementStore interface {
	ListAnnouncements() []entities.Announcement
	GetAnnouncement(id int) (entities.Announcement, bool)
	CreateAnnouncement(ctx context.Context, a entities.Announcement) (entities.Announcement, error)
	UpdateAnnouncement(ctx context.Context, id int, patch entities.AnnouncementPatch) (entities.Announcement, error)
	DeleteAnnouncement(ctx context.Context, id int) error
}

type createAnnouncementRequest struct {
	Title    string `json:"title" binding:"required"`
	Content  string `json:"content" binding:"required"`
	Category string `json:"category"`
	IsPinned bool   `json:"isPinned"`
}

type AnnouncementsController struct {
	store AnnouncementStore
	audit *audit.Logger
}

func NewAnnouncementsController(store AnnouncementStore, auditLogger *audit.Logger) *AnnouncementsController {
	return &AnnouncementsController{store: store, audit: auditLogger}
}

// List returns all announcements, pinned first, newest first within each
// group. Public endpoint.
func (controller *AnnouncementsController) List(c *gin.Context) {
	c.JSON(http.StatusOK, controller.store.ListAnnouncements())
}

func (controller *AnnouncementsController) Create(c *gin.Context) {
	var req createAnnouncementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "Invalid announcement data")
		return
	}

	announcement, err := controller.store.CreateAnnouncement(c.Request.Context(), entities.Announcement{
		Title:    req.Title,
		Content:  req.Content,
		Category: req.Category,
		IsPinned: req.IsPinned,
	})
	if err != nil {
		respondInternalError(c, err, "Failed to create announcement")
		return
	}

	controller.audit.Info(c.Request.Context(), fmt.Sprintf("New announcement created: %s", announcement.Title), "admin")
	c.JSON(http.StatusCreated, announcement)
}

func (controller *AnnouncementsController) Update(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var patch entities.AnnouncementPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		respondBadRequest(c, "Failed to update announcement")
		return
	}

	announcement, err := controller.store.UpdateAnnouncement(c.Request.Context(), id, patch)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			respondNotFound(c, "Announcement")
			return
		}
		respondInternalError(c, err, "Failed to update announcement")
		return
	}

	controller.audit.Info(c.Request.Context(), fmt.Sprintf("Announcement updated: ID %d", id), "admin")
	c.JSON(http.StatusOK, announcement)
}

func (controller *AnnouncementsController) Delete(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if _, exists := controller.store.GetAnnouncement(id); !exists {
		respondNotFound(c, "Announcement")
		return
	}

	if err := controller.store.DeleteAnnouncement(c.Request.Context(), id); err != nil {
		respondInternalError(c, err, "Failed to delete announcement")
		return
	}

	controller.audit.Info(c.Request.Context(), fmt.Sprintf("Announcement deleted: ID %d", id), "admin")
	c.JSON(http.StatusOK, gin.H{"success": true})
}
