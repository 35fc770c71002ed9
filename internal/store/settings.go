package store

import (
	"context"
	"time"

	"github.com/rennsz/fansite/internal/entities"
)

// StreamSettings returns the current stream configuration singleton.
func (s *Store) StreamSettings() entities.StreamSettings {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.streamSettings
}

// UpdateStreamSettings shallow-merges the patch, bumps updatedAt, persists
// and returns the merged object.
func (s *Store) UpdateStreamSettings(ctx context.Context, patch entities.StreamSettingsPatch) (entities.StreamSettings, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if patch.FeaturedStream != nil {
		s.streamSettings.FeaturedStream = *patch.FeaturedStream
	}
	if patch.CustomEmbedURL != nil {
		s.streamSettings.CustomEmbedURL = *patch.CustomEmbedURL
	}
	if patch.ScheduleImageURL != nil {
		s.streamSettings.ScheduleImageURL = *patch.ScheduleImageURL
	}
	s.streamSettings.UpdatedAt = time.Now().UTC()

	if err := s.saveLocked(ctx); err != nil {
		return entities.StreamSettings{}, err
	}
	return s.streamSettings, nil
}

// ThemeSettings returns the current theme singleton.
func (s *Store) ThemeSettings() entities.ThemeSettings {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.themeSettings
}

// UpdateThemeSettings shallow-merges the patch, bumps updatedAt, persists
// and returns the merged object.
func (s *Store) UpdateThemeSettings(ctx context.Context, patch entities.ThemeSettingsPatch) (entities.ThemeSettings, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if patch.CurrentTheme != nil {
		s.themeSettings.CurrentTheme = *patch.CurrentTheme
	}
	if patch.CustomTheme != nil {
		s.themeSettings.CustomTheme = patch.CustomTheme
	}
	if patch.BackgroundImageURL != nil {
		s.themeSettings.BackgroundImageURL = *patch.BackgroundImageURL
	}
	if patch.MaintenanceMode != nil {
		s.themeSettings.MaintenanceMode = *patch.MaintenanceMode
	}
	if patch.MaintenanceMessage != nil {
		s.themeSettings.MaintenanceMessage = *patch.MaintenanceMessage
	}
	s.themeSettings.UpdatedAt = time.Now().UTC()

	if err := s.saveLocked(ctx); err != nil {
		return entities.ThemeSettings{}, err
	}
	return s.themeSettings, nil
}

// WebhookSettings returns the notifier configuration singleton.
func (s *Store) WebhookSettings() entities.WebhookSettings {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.webhookSettings
}

// UpdateWebhookSettings shallow-merges the patch, bumps updatedAt, persists
// and returns the merged object.
func (s *Store) UpdateWebhookSettings(ctx context.Context, patch entities.WebhookSettingsPatch) (entities.WebhookSettings, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if patch.URL != nil {
		s.webhookSettings.URL = *patch.URL
	}
	if patch.LogLevel != nil {
		s.webhookSettings.LogLevel = *patch.LogLevel
	}
	if patch.RealTimeLogging != nil {
		s.webhookSettings.RealTimeLogging = *patch.RealTimeLogging
	}
	s.webhookSettings.UpdatedAt = time.Now().UTC()

	if err := s.saveLocked(ctx); err != nil {
		return entities.WebhookSettings{}, err
	}
	return s.webhookSettings, nil
}

// MetaTags returns the SEO metadata singleton.
func (s *Store) MetaTags() entities.MetaTags {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.metaTags
}

// UpdateMetaTags shallow-merges the patch, bumps updatedAt, persists and
// returns the merged object.
func (s *Store) UpdateMetaTags(ctx context.Context, patch entities.MetaTagsPatch) (entities.MetaTags, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if patch.Title != nil {
		s.metaTags.Title = *patch.Title
	}
	if patch.Description != nil {
		s.metaTags.Description = *patch.Description
	}
	if patch.Keywords != nil {
		s.metaTags.Keywords = *patch.Keywords
	}
	s.metaTags.UpdatedAt = time.Now().UTC()

	if err := s.saveLocked(ctx); err != nil {
		return entities.MetaTags{}, err
	}
	return s.metaTags, nil
}
