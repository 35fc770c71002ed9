package http

import (
	"context"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/rennsz/fansite/internal/audit"
	"github.com/rennsz/fansite/internal/store"
)

// BackupStore is the slice of the store the controller needs.
type BackupStore interface {
	Snapshot() store.BackupData
	Restore(ctx context.Context, backup store.BackupData) error
}

type BackupController struct {
	store   BackupStore
	auditor *audit.Auditor
	audit   *audit.Logger
}

func NewBackupController(backupStore BackupStore, auditor *audit.Auditor, auditLogger *audit.Logger) *BackupController {
	return &BackupController{store: backupStore, auditor: auditor, audit: auditLogger}
}

// Download serves a full snapshot of the working set as JSON.
func (controller *BackupController) Download(c *gin.Context) {
	controller.audit.Info(c.Request.Context(), "Backup downloaded", "backup")
	c.JSON(http.StatusOK, controller.store.Snapshot())
}

// Restore replaces the working set with an uploaded snapshot. The raw
// payload is written to the audit directory before anything is touched, so a
// bad restore can be rolled back.
func (controller *BackupController) Restore(c *gin.Context) {
	var backup store.BackupData
	if err := c.ShouldBindJSON(&backup); err != nil {
		respondBadRequest(c, "Invalid backup data")
		return
	}

	if controller.auditor != nil {
		if path, err := controller.auditor.SaveJSON(backup); err != nil {
			log.Printf("Backup restore: failed to audit payload: %v", err)
		} else {
			log.Printf("Backup restore: payload audited to %s", path)
		}
	}

	if err := controller.store.Restore(c.Request.Context(), backup); err != nil {
		respondInternalError(c, err, "Failed to restore from backup")
		return
	}

	controller.audit.Warning(c.Request.Context(), "Data restored from uploaded backup", "backup")
	c.JSON(http.StatusOK, gin.H{"success": true})
}
