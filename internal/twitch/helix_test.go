package twitch

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newFakeHelix spins up token/streams/users endpoints and wires a client to
// them. liveChannels controls which channels the streams endpoint reports.
func newFakeHelix(t *testing.T, liveChannels map[string]int) (*HelixClient, *int) {
	t.Helper()

	tokenCalls := 0
	mux := http.NewServeMux()
	mux.HandleFunc("/oauth2/token", func(w http.ResponseWriter, r *http.Request) {
		tokenCalls++
		require.Equal(t, http.MethodPost, r.Method)
		require.NoError(t, r.ParseForm())
		require.Equal(t, "client_credentials", r.FormValue("grant_type"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"access_token":"app-token","expires_in":3600}`))
	})
	mux.HandleFunc("/helix/streams", func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "Bearer app-token", r.Header.Get("Authorization"))
		require.Equal(t, "test-client", r.Header.Get("Client-Id"))

		w.Header().Set("Content-Type", "application/json")
		body := `{"data":[`
		first := true
		for _, login := range r.URL.Query()["user_login"] {
			viewers, ok := liveChannels[login]
			if !ok {
				continue
			}
			if !first {
				body += ","
			}
			first = false
			body += `{"user_login":"` + login + `","user_name":"` + login + `","game_name":"IRL","title":"Exploring","viewer_count":` +
				strconv.Itoa(viewers) + `,"started_at":"2026-08-30T12:00:00Z","thumbnail_url":"https://example.com/thumb.jpg"}`
		}
		body += `]}`
		_, _ = w.Write([]byte(body))
	})
	mux.HandleFunc("/helix/users", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		body := `{"data":[`
		for i, login := range r.URL.Query()["login"] {
			if i > 0 {
				body += ","
			}
			body += `{"login":"` + login + `","display_name":"` + login + `_display"}`
		}
		body += `]}`
		_, _ = w.Write([]byte(body))
	})

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	client := NewHelixClient("test-client", "test-secret", "rennsz", "rennszino")
	client.tokenURL = server.URL + "/oauth2/token"
	client.streamsURL = server.URL + "/helix/streams"
	client.usersURL = server.URL + "/helix/users"
	return client, &tokenCalls
}

func TestHelixClient_AllStreamers(t *testing.T) {
	client, _ := newFakeHelix(t, map[string]int{"rennsz": 428})

	statuses, err := client.AllStreamers(context.Background())
	require.NoError(t, err)
	require.Len(t, statuses, 2)

	main := statuses[0]
	assert.Equal(t, "rennsz", main.Channel)
	assert.Equal(t, "rennsz_display", main.DisplayName)
	assert.True(t, main.IsLive)
	assert.Equal(t, 428, main.Viewers)
	assert.Equal(t, "IRL", main.Game)
	require.NotNil(t, main.StartedAt)

	event := statuses[1]
	assert.False(t, event.IsLive)
	assert.Zero(t, event.Viewers)
}

func TestHelixClient_LiveStreamer(t *testing.T) {
	t.Run("prefers the main channel", func(t *testing.T) {
		client, _ := newFakeHelix(t, map[string]int{"rennsz": 100, "rennszino": 50})

		status, live, err := client.LiveStreamer(context.Background())
		require.NoError(t, err)
		require.True(t, live)
		assert.Equal(t, "rennsz", status.Channel)
	})

	t.Run("falls through to the event channel", func(t *testing.T) {
		client, _ := newFakeHelix(t, map[string]int{"rennszino": 50})

		status, live, err := client.LiveStreamer(context.Background())
		require.NoError(t, err)
		require.True(t, live)
		assert.Equal(t, "rennszino", status.Channel)
	})

	t.Run("nobody live", func(t *testing.T) {
		client, _ := newFakeHelix(t, nil)

		_, live, err := client.LiveStreamer(context.Background())
		require.NoError(t, err)
		assert.False(t, live)
	})
}

func TestHelixClient_Streamer(t *testing.T) {
	client, _ := newFakeHelix(t, map[string]int{"rennszino": 73})

	status, err := client.Streamer(context.Background(), "RENNSZINO")
	require.NoError(t, err)
	assert.Equal(t, "rennszino", status.Channel)
	assert.True(t, status.IsLive)

	_, err = client.Streamer(context.Background(), "somebody")
	assert.ErrorIs(t, err, ErrUnknownChannel)
}

func TestHelixClient_CurrentViewers(t *testing.T) {
	client, _ := newFakeHelix(t, map[string]int{"rennsz": 100, "rennszino": 50})

	metrics, err := client.CurrentViewers(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 150, metrics.Viewers)
	assert.Equal(t, "rennsz", metrics.Channel)
}

func TestHelixClient_TokenIsCached(t *testing.T) {
	client, tokenCalls := newFakeHelix(t, nil)

	_, err := client.AllStreamers(context.Background())
	require.NoError(t, err)
	_, err = client.AllStreamers(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, *tokenCalls)
}
