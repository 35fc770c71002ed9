package http

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rennsz/fansite/internal/entities"
	"github.com/rennsz/fansite/internal/twitch"
)

func TestStreamsController_Settings(t *testing.T) {
	router, _ := newTestRouter(t)
	cookie := adminCookie(t, router)

	t.Run("featured type is required", func(t *testing.T) {
		rec := doJSON(router, http.MethodPost, "/api/admin/stream-settings/featured", `{}`, cookie)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.JSONEq(t, `{"message":"Featured stream type is required"}`, rec.Body.String())
	})

	t.Run("custom embed keeps its URL", func(t *testing.T) {
		rec := doJSON(router, http.MethodPost, "/api/admin/stream-settings/featured",
			`{"featured":"custom","customUrl":"https://player.example.com/embed"}`, cookie)
		require.Equal(t, http.StatusOK, rec.Code)

		var settings entities.StreamSettings
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &settings))
		assert.Equal(t, "custom", settings.FeaturedStream)
		assert.Equal(t, "https://player.example.com/embed", settings.CustomEmbedURL)
	})

	t.Run("switching back leaves the custom URL alone", func(t *testing.T) {
		rec := doJSON(router, http.MethodPost, "/api/admin/stream-settings/featured",
			`{"featured":"auto"}`, cookie)
		require.Equal(t, http.StatusOK, rec.Code)

		var settings entities.StreamSettings
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &settings))
		assert.Equal(t, "auto", settings.FeaturedStream)
		assert.Equal(t, "https://player.example.com/embed", settings.CustomEmbedURL)
	})
}

func TestStreamsController_Twitch(t *testing.T) {
	router, _ := newTestRouter(t)

	t.Run("nobody live with the static provider", func(t *testing.T) {
		rec := doJSON(router, http.MethodGet, "/api/twitch/live", "", nil)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"isLive":false}`, rec.Body.String())
	})

	t.Run("lists both configured channels", func(t *testing.T) {
		rec := doJSON(router, http.MethodGet, "/api/twitch/streamers", "", nil)
		require.Equal(t, http.StatusOK, rec.Code)

		var statuses []twitch.StreamerStatus
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &statuses))
		require.Len(t, statuses, 2)
		assert.Equal(t, "rennsz", statuses[0].Channel)
		assert.Equal(t, "rennszino", statuses[1].Channel)
	})

	t.Run("known channel", func(t *testing.T) {
		rec := doJSON(router, http.MethodGet, "/api/twitch/streams/rennsz", "", nil)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"channel":"rennsz"`)
	})

	t.Run("unknown channel", func(t *testing.T) {
		rec := doJSON(router, http.MethodGet, "/api/twitch/streams/somebody", "", nil)
		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.JSONEq(t, `{"message":"Channel not found"}`, rec.Body.String())
	})
}
