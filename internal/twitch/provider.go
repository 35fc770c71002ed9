// Package twitch resolves live-status information for the site's channels.
//
// StatusProvider is the boundary the HTTP layer talks to. The Helix client
// implements it against the real Twitch API; StaticProvider is the fallback
// used when no API credentials are configured.
package twitch

import (
	"context"
	"errors"
	"time"
)

// ErrUnknownChannel is returned when a channel is not one of the site's
// configured streamers.
var ErrUnknownChannel = errors.New("unknown channel")

// StreamerStatus describes one channel's current state.
type StreamerStatus struct {
	Channel      string     `json:"channel"`
	DisplayName  string     `json:"displayName"`
	URL          string     `json:"url"`
	IsLive       bool       `json:"isLive"`
	Title        string     `json:"title,omitempty"`
	Game         string     `json:"game,omitempty"`
	Viewers      int        `json:"viewers"`
	ThumbnailURL string     `json:"thumbnailUrl,omitempty"`
	StartedAt    *time.Time `json:"startedAt,omitempty"`
}

// ViewerMetrics aggregates current viewership across the site's channels.
type ViewerMetrics struct {
	Viewers   int       `json:"viewers"`
	Channel   string    `json:"channel,omitempty"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// StatusProvider answers live-status questions for the configured channels.
type StatusProvider interface {
	// LiveStreamer returns the currently live channel, preferring the main
	// channel when both are live. Second return is false when nobody is live.
	LiveStreamer(ctx context.Context) (StreamerStatus, bool, error)
	// AllStreamers returns the status of every configured channel.
	AllStreamers(ctx context.Context) ([]StreamerStatus, error)
	// Streamer returns one channel's status.
	Streamer(ctx context.Context, channel string) (StreamerStatus, error)
	// CurrentViewers sums viewers over all live configured channels.
	CurrentViewers(ctx context.Context) (ViewerMetrics, error)
}

// StaticProvider reports every configured channel as offline. It stands in
// for the Helix client when TWITCH_CLIENT_ID/SECRET are not set, so public
// endpoints keep answering with stable data instead of failing.
type StaticProvider struct {
	channels []string
}

func NewStaticProvider(channels ...string) *StaticProvider {
	return &StaticProvider{channels: channels}
}

func (p *StaticProvider) status(channel string) StreamerStatus {
	return StreamerStatus{
		Channel:     channel,
		DisplayName: channel,
		URL:         "https://www.twitch.tv/" + channel,
		IsLive:      false,
		Viewers:     0,
	}
}

func (p *StaticProvider) LiveStreamer(ctx context.Context) (StreamerStatus, bool, error) {
	return StreamerStatus{}, false, nil
}

func (p *StaticProvider) AllStreamers(ctx context.Context) ([]StreamerStatus, error) {
	statuses := make([]StreamerStatus, 0, len(p.channels))
	for _, channel := range p.channels {
		statuses = append(statuses, p.status(channel))
	}
	return statuses, nil
}

func (p *StaticProvider) Streamer(ctx context.Context, channel string) (StreamerStatus, error) {
	for _, known := range p.channels {
		if known == channel {
			return p.status(channel), nil
		}
	}
	return StreamerStatus{}, ErrUnknownChannel
}

func (p *StaticProvider) CurrentViewers(ctx context.Context) (ViewerMetrics, error) {
	return ViewerMetrics{Viewers: 0, UpdatedAt: time.Now().UTC()}, nil
}
