// Package discord delivers structured notification messages (embeds) to a
// Discord-compatible webhook endpoint. Delivery is fire-and-forget: a single
// POST per call, no retries, and every transport or validation failure is
// logged and reported as a boolean rather than an error.
package discord

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"
)

const defaultTimeout = 10 * time.Second

// Embed colour palette used across the site.
const (
	ColorInfo    = 0x0099FF
	ColorWarning = 0xFFCC00
	ColorError   = 0xFF0000
	ColorSuccess = 0x00FF00
	ColorBackup  = 0x00FF00
)

type EmbedField struct {
	Name   string `json:"name"`
	Value  string `json:"value"`
	Inline bool   `json:"inline,omitempty"`
}

type EmbedFooter struct {
	Text    string `json:"text"`
	IconURL string `json:"icon_url,omitempty"`
}

type EmbedThumbnail struct {
	URL string `json:"url"`
}

type EmbedAuthor struct {
	Name    string `json:"name"`
	IconURL string `json:"icon_url,omitempty"`
	URL     string `json:"url,omitempty"`
}

// Embed is a single structured notification payload.
type Embed struct {
	Title       string          `json:"title,omitempty"`
	Description string          `json:"description"`
	Color       int             `json:"color,omitempty"`
	Fields      []EmbedField    `json:"fields,omitempty"`
	Footer      *EmbedFooter    `json:"footer,omitempty"`
	Timestamp   string          `json:"timestamp,omitempty"`
	Thumbnail   *EmbedThumbnail `json:"thumbnail,omitempty"`
	Author      *EmbedAuthor    `json:"author,omitempty"`
}

// Message is the full webhook payload sent to the endpoint.
type Message struct {
	Content   string  `json:"content,omitempty"`
	Username  string  `json:"username,omitempty"`
	AvatarURL string  `json:"avatar_url,omitempty"`
	Embeds    []Embed `json:"embeds,omitempty"`
}

var (
	errNoPayload        = errors.New("message has neither content nor embeds")
	errEmptyDescription = errors.New("embed description must not be empty")
	errEmptyField       = errors.New("embed field name and value must not be empty")
)

// validate enforces the payload shape before anything leaves the process.
func validate(msg Message) error {
	if msg.Content == "" && len(msg.Embeds) == 0 {
		return errNoPayload
	}
	for i, embed := range msg.Embeds {
		if embed.Description == "" {
			return fmt.Errorf("embed %d: %w", i, errEmptyDescription)
		}
		for j, field := range embed.Fields {
			if field.Name == "" || field.Value == "" {
				return fmt.Errorf("embed %d field %d: %w", i, j, errEmptyField)
			}
		}
	}
	return nil
}

// Notifier posts webhook messages to a configured endpoint, falling back to
// a fixed URL when none is supplied per call.
type Notifier struct {
	httpClient  *http.Client
	fallbackURL string
	username    string
	avatarURL   string
}

// Config holds Notifier construction parameters.
type Config struct {
	FallbackURL string
	Username    string
	AvatarURL   string
	Timeout     time.Duration
}

func NewNotifier(cfg Config) *Notifier {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Notifier{
		httpClient:  &http.Client{Timeout: timeout},
		fallbackURL: cfg.FallbackURL,
		username:    cfg.Username,
		avatarURL:   cfg.AvatarURL,
	}
}

// SendEmbed wraps a single embed in a full message and delivers it.
func (n *Notifier) SendEmbed(ctx context.Context, webhookURL string, embed Embed) bool {
	return n.Send(ctx, webhookURL, Message{Embeds: []Embed{embed}})
}

// Send delivers one webhook message. An empty webhookURL falls back to the
// configured fallback endpoint. The result is reported as a boolean; all
// failures are logged and swallowed.
func (n *Notifier) Send(ctx context.Context, webhookURL string, msg Message) bool {
	if webhookURL == "" {
		webhookURL = n.fallbackURL
	}
	if webhookURL == "" {
		log.Printf("Webhook notifier: no endpoint configured, dropping message")
		return false
	}

	if msg.Username == "" {
		msg.Username = n.username
	}
	if msg.AvatarURL == "" {
		msg.AvatarURL = n.avatarURL
	}

	if err := validate(msg); err != nil {
		log.Printf("Webhook notifier: invalid message: %v", err)
		return false
	}

	body, err := json.Marshal(msg)
	if err != nil {
		log.Printf("Webhook notifier: failed to marshal message: %v", err)
		return false
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, webhookURL, bytes.NewReader(body))
	if err != nil {
		log.Printf("Webhook notifier: failed to create request: %v", err)
		return false
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.httpClient.Do(req)
	if err != nil {
		log.Printf("Webhook notifier: request failed: %v", err)
		return false
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		errText, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		log.Printf("Webhook notifier: endpoint returned %d: %s", resp.StatusCode, string(errText))
		return false
	}

	return true
}
