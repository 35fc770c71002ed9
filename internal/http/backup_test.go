package http

import (
	"context"
	"encoding/json"
	"net/http"
	"os"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rennsz/fansite/internal/audit"
	"github.com/rennsz/fansite/internal/entities"
	"github.com/rennsz/fansite/internal/store"
)

func TestBackupController_DownloadRestore(t *testing.T) {
	router, s := newTestRouter(t)
	cookie := adminCookie(t, router)

	_, err := s.CreateAnnouncement(context.Background(), entities.Announcement{Title: "keep me", Content: "c"})
	require.NoError(t, err)

	rec := doJSON(router, http.MethodGet, "/api/admin/backup/download", "", cookie)
	require.Equal(t, http.StatusOK, rec.Code)

	var backup store.BackupData
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &backup))
	require.Len(t, backup.Announcements, 1)
	assert.False(t, backup.ExportedAt.IsZero())

	// Wipe the announcement, then restore the snapshot into a fresh router.
	require.NoError(t, s.DeleteAnnouncement(context.Background(), backup.Announcements[0].ID))
	assert.Empty(t, s.ListAnnouncements())

	rec = doJSON(router, http.MethodPost, "/api/admin/backup/restore", rec.Body.String(), cookie)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"success":true}`, rec.Body.String())

	restored := s.ListAnnouncements()
	require.Len(t, restored, 1)
	assert.Equal(t, "keep me", restored[0].Title)
}

func TestBackupController_RestoreAuditsPayload(t *testing.T) {
	gin.SetMode(gin.TestMode)

	auditDir := t.TempDir()
	s := newTestStore(t)
	controller := NewBackupController(s, audit.NewAuditor(auditDir), nil)

	router := gin.New()
	router.POST("/api/admin/backup/restore", controller.Restore)

	rec := doJSON(router, http.MethodPost, "/api/admin/backup/restore",
		`{"announcements":[{"id":1,"title":"t","content":"c","category":"general","isPinned":false,"createdAt":"2026-08-30T12:00:00Z"}]}`, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	entries, err := os.ReadDir(auditDir)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}
