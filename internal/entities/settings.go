package entities

import "time"

// Singleton settings records. Each one is merged in place on update rather
// than collection-indexed; the store bumps UpdatedAt on every merge.

type StreamSettings struct {
	FeaturedStream   string    `json:"featuredStream"`
	CustomEmbedURL   string    `json:"customEmbedUrl,omitempty"`
	ScheduleImageURL string    `json:"scheduleImageUrl,omitempty"`
	UpdatedAt        time.Time `json:"updatedAt"`
}

// StreamSettingsPatch is a partial update; nil fields keep their value.
type StreamSettingsPatch struct {
	FeaturedStream   *string `json:"featuredStream,omitempty"`
	CustomEmbedURL   *string `json:"customEmbedUrl,omitempty"`
	ScheduleImageURL *string `json:"scheduleImageUrl,omitempty"`
}

// CustomTheme is a free-form colour palette applied when the current theme
// is "custom".
type CustomTheme struct {
	PrimaryColor    string `json:"primaryColor,omitempty"`
	SecondaryColor  string `json:"secondaryColor,omitempty"`
	AccentColor     string `json:"accentColor,omitempty"`
	BackgroundColor string `json:"backgroundColor,omitempty"`
	TextColor       string `json:"textColor,omitempty"`
	BackgroundImage string `json:"backgroundImage,omitempty"`
}

type ThemeSettings struct {
	CurrentTheme       string       `json:"currentTheme"`
	CustomTheme        *CustomTheme `json:"customTheme,omitempty"`
	BackgroundImageURL string       `json:"backgroundImageUrl,omitempty"`
	MaintenanceMode    bool         `json:"maintenanceMode"`
	MaintenanceMessage string       `json:"maintenanceMessage,omitempty"`
	UpdatedAt          time.Time    `json:"updatedAt"`
}

type ThemeSettingsPatch struct {
	CurrentTheme       *string      `json:"currentTheme,omitempty"`
	CustomTheme        *CustomTheme `json:"customTheme,omitempty"`
	BackgroundImageURL *string      `json:"backgroundImageUrl,omitempty"`
	MaintenanceMode    *bool        `json:"maintenanceMode,omitempty"`
	MaintenanceMessage *string      `json:"maintenanceMessage,omitempty"`
}

type WebhookSettings struct {
	URL             string     `json:"url"`
	LogLevel        LogLevel   `json:"logLevel"`
	RealTimeLogging bool       `json:"realTimeLogging"`
	LastBackup      *time.Time `json:"lastBackup,omitempty"`
	UpdatedAt       time.Time  `json:"updatedAt"`
}

type WebhookSettingsPatch struct {
	URL             *string   `json:"url,omitempty"`
	LogLevel        *LogLevel `json:"logLevel,omitempty"`
	RealTimeLogging *bool     `json:"realTimeLogging,omitempty"`
}

// MetaTags holds the SEO metadata served to the marketing page.
type MetaTags struct {
	Title       string    `json:"title,omitempty"`
	Description string    `json:"description,omitempty"`
	Keywords    string    `json:"keywords,omitempty"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

type MetaTagsPatch struct {
	Title       *string `json:"title,omitempty"`
	Description *string `json:"description,omitempty"`
	Keywords    *string `json:"keywords,omitempty"`
}
