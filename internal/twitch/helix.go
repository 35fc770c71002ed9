package twitch

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"
)

const (
	defaultTokenURL   = "https://id.twitch.tv/oauth2/token"
	defaultStreamsURL = "https://api.twitch.tv/helix/streams"
	defaultUsersURL   = "https://api.twitch.tv/helix/users"

	defaultTimeout = 10 * time.Second

	// Refresh the app token slightly before Twitch expires it.
	tokenExpiryMargin = time.Minute
)

// HelixClient implements StatusProvider against the Twitch Helix API using
// an app access token (client-credentials grant).
type HelixClient struct {
	httpClient   *http.Client
	clientID     string
	clientSecret string
	channels     []string

	// Endpoint URLs, overridable in tests.
	tokenURL   string
	streamsURL string
	usersURL   string

	mu          sync.Mutex
	token       string
	tokenExpiry time.Time
}

// NewHelixClient creates a Helix-backed provider for the given channels.
func NewHelixClient(clientID, clientSecret string, channels ...string) *HelixClient {
	return &HelixClient{
		httpClient:   &http.Client{Timeout: defaultTimeout},
		clientID:     clientID,
		clientSecret: clientSecret,
		channels:     channels,
		tokenURL:     defaultTokenURL,
		streamsURL:   defaultStreamsURL,
		usersURL:     defaultUsersURL,
	}
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int    `json:"expires_in"`
}

type streamData struct {
	UserLogin    string    `json:"user_login"`
	UserName     string    `json:"user_name"`
	GameName     string    `json:"game_name"`
	Title        string    `json:"title"`
	ViewerCount  int       `json:"viewer_count"`
	StartedAt    time.Time `json:"started_at"`
	ThumbnailURL string    `json:"thumbnail_url"`
}

type streamsResponse struct {
	Data []streamData `json:"data"`
}

type userData struct {
	Login       string `json:"login"`
	DisplayName string `json:"display_name"`
}

type usersResponse struct {
	Data []userData `json:"data"`
}

// accessToken returns a cached app token, fetching a fresh one when needed.
func (c *HelixClient) accessToken(ctx context.Context) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.token != "" && time.Now().Before(c.tokenExpiry) {
		return c.token, nil
	}

	form := url.Values{}
	form.Set("client_id", c.clientID)
	form.Set("client_secret", c.clientSecret)
	form.Set("grant_type", "client_credentials")

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.tokenURL, strings.NewReader(form.Encode()))
	if err != nil {
		return "", fmt.Errorf("failed to create token request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("token request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("unexpected token status %d: %s", resp.StatusCode, string(body))
	}

	var token tokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&token); err != nil {
		return "", fmt.Errorf("failed to decode token response: %w", err)
	}

	c.token = token.AccessToken
	c.tokenExpiry = time.Now().Add(time.Duration(token.ExpiresIn)*time.Second - tokenExpiryMargin)
	return c.token, nil
}

func (c *HelixClient) doHelix(ctx context.Context, rawURL string, out any) error {
	token, err := c.accessToken(ctx)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Client-Id", c.clientID)
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("unexpected status %d: %s", resp.StatusCode, string(body))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

// liveStreams fetches the live subset of the given channels.
func (c *HelixClient) liveStreams(ctx context.Context, channels []string) (map[string]streamData, error) {
	query := url.Values{}
	for _, channel := range channels {
		query.Add("user_login", channel)
	}

	var resp streamsResponse
	if err := c.doHelix(ctx, c.streamsURL+"?"+query.Encode(), &resp); err != nil {
		return nil, err
	}

	live := make(map[string]streamData, len(resp.Data))
	for _, stream := range resp.Data {
		live[strings.ToLower(stream.UserLogin)] = stream
	}
	return live, nil
}

// displayNames resolves the display names of the given channels. Failures
// degrade to the login name rather than failing the whole status lookup.
func (c *HelixClient) displayNames(ctx context.Context, channels []string) map[string]string {
	query := url.Values{}
	for _, channel := range channels {
		query.Add("login", channel)
	}

	names := make(map[string]string, len(channels))
	var resp usersResponse
	if err := c.doHelix(ctx, c.usersURL+"?"+query.Encode(), &resp); err != nil {
		return names
	}
	for _, user := range resp.Data {
		names[strings.ToLower(user.Login)] = user.DisplayName
	}
	return names
}

func (c *HelixClient) statuses(ctx context.Context, channels []string) ([]StreamerStatus, error) {
	live, err := c.liveStreams(ctx, channels)
	if err != nil {
		return nil, err
	}
	names := c.displayNames(ctx, channels)

	statuses := make([]StreamerStatus, 0, len(channels))
	for _, channel := range channels {
		status := StreamerStatus{
			Channel:     channel,
			DisplayName: channel,
			URL:         "https://www.twitch.tv/" + channel,
		}
		if name, ok := names[strings.ToLower(channel)]; ok && name != "" {
			status.DisplayName = name
		}
		if stream, ok := live[strings.ToLower(channel)]; ok {
			startedAt := stream.StartedAt
			status.IsLive = true
			status.Title = stream.Title
			status.Game = stream.GameName
			status.Viewers = stream.ViewerCount
			status.ThumbnailURL = stream.ThumbnailURL
			status.StartedAt = &startedAt
		}
		statuses = append(statuses, status)
	}
	return statuses, nil
}

func (c *HelixClient) LiveStreamer(ctx context.Context) (StreamerStatus, bool, error) {
	statuses, err := c.statuses(ctx, c.channels)
	if err != nil {
		return StreamerStatus{}, false, err
	}
	// Channel order encodes preference: the main channel is listed first.
	for _, status := range statuses {
		if status.IsLive {
			return status, true, nil
		}
	}
	return StreamerStatus{}, false, nil
}

func (c *HelixClient) AllStreamers(ctx context.Context) ([]StreamerStatus, error) {
	return c.statuses(ctx, c.channels)
}

func (c *HelixClient) Streamer(ctx context.Context, channel string) (StreamerStatus, error) {
	for _, known := range c.channels {
		if strings.EqualFold(known, channel) {
			statuses, err := c.statuses(ctx, []string{known})
			if err != nil {
				return StreamerStatus{}, err
			}
			return statuses[0], nil
		}
	}
	return StreamerStatus{}, ErrUnknownChannel
}

func (c *HelixClient) CurrentViewers(ctx context.Context) (ViewerMetrics, error) {
	statuses, err := c.statuses(ctx, c.channels)
	if err != nil {
		return ViewerMetrics{}, err
	}

	metrics := ViewerMetrics{UpdatedAt: time.Now().UTC()}
	for _, status := range statuses {
		if !status.IsLive {
			continue
		}
		metrics.Viewers += status.Viewers
		if metrics.Channel == "" {
			metrics.Channel = status.Channel
		}
	}
	return metrics, nil
}
