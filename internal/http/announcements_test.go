package http

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rennsz/fansite/internal/entities"
)

func TestAnnouncementsController_Create(t *testing.T) {
	router, _ := newTestRouter(t)
	cookie := adminCookie(t, router)

	t.Run("creates with defaults", func(t *testing.T) {
		rec := doJSON(router, http.MethodPost, "/api/announcements",
			`{"title":"Stream tonight","content":"Going live at 8pm"}`, cookie)
		require.Equal(t, http.StatusCreated, rec.Code)

		var created entities.Announcement
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
		assert.Equal(t, 1, created.ID)
		assert.Equal(t, entities.DefaultAnnouncementCategory, created.Category)
		assert.False(t, created.IsPinned)
		assert.False(t, created.CreatedAt.IsZero())
	})

	t.Run("missing title is invalid", func(t *testing.T) {
		rec := doJSON(router, http.MethodPost, "/api/announcements",
			`{"content":"no title"}`, cookie)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.JSONEq(t, `{"message":"Invalid announcement data"}`, rec.Body.String())
	})
}

func TestAnnouncementsController_List(t *testing.T) {
	router, _ := newTestRouter(t)
	cookie := adminCookie(t, router)

	for _, body := range []string{
		`{"title":"oldest","content":"c"}`,
		`{"title":"pinned","content":"c","isPinned":true}`,
		`{"title":"newest","content":"c"}`,
	} {
		rec := doJSON(router, http.MethodPost, "/api/announcements", body, cookie)
		require.Equal(t, http.StatusCreated, rec.Code)
	}

	rec := doJSON(router, http.MethodGet, "/api/announcements", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var listed []entities.Announcement
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &listed))
	require.Len(t, listed, 3)
	assert.Equal(t, "pinned", listed[0].Title)
	assert.Equal(t, "newest", listed[1].Title)
	assert.Equal(t, "oldest", listed[2].Title)
}

func TestAnnouncementsController_Update(t *testing.T) {
	router, _ := newTestRouter(t)
	cookie := adminCookie(t, router)

	rec := doJSON(router, http.MethodPost, "/api/announcements",
		`{"title":"original","content":"body"}`, cookie)
	require.Equal(t, http.StatusCreated, rec.Code)

	t.Run("patches only supplied fields", func(t *testing.T) {
		rec := doJSON(router, http.MethodPatch, "/api/announcements/1",
			`{"isPinned":true}`, cookie)
		require.Equal(t, http.StatusOK, rec.Code)

		var updated entities.Announcement
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &updated))
		assert.True(t, updated.IsPinned)
		assert.Equal(t, "original", updated.Title)
	})

	t.Run("missing id is not found", func(t *testing.T) {
		rec := doJSON(router, http.MethodPatch, "/api/announcements/99",
			`{"isPinned":true}`, cookie)
		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.JSONEq(t, `{"message":"Announcement not found"}`, rec.Body.String())
	})

	t.Run("non-numeric id is invalid", func(t *testing.T) {
		rec := doJSON(router, http.MethodPatch, "/api/announcements/abc",
			`{"isPinned":true}`, cookie)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.JSONEq(t, `{"message":"Invalid announcement ID"}`, rec.Body.String())
	})
}

func TestAnnouncementsController_Delete(t *testing.T) {
	router, _ := newTestRouter(t)
	cookie := adminCookie(t, router)

	rec := doJSON(router, http.MethodPost, "/api/announcements",
		`{"title":"to delete","content":"body"}`, cookie)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = doJSON(router, http.MethodDelete, "/api/announcements/1", "", cookie)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"success":true}`, rec.Body.String())

	rec = doJSON(router, http.MethodDelete, "/api/announcements/1", "", cookie)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
