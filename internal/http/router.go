package http

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/rennsz/fansite/internal/audit"
	"github.com/rennsz/fansite/internal/auth"
	"github.com/rennsz/fansite/internal/store"
	"github.com/rennsz/fansite/internal/twitch"
)

// RouterConfig receives all router dependencies, improving testability and
// reducing parameter count.
type RouterConfig struct {
	Store    *store.Store
	Provider twitch.StatusProvider
	Sender   WebhookSender

	Sessions    *auth.SessionManager
	AuthService *auth.Service

	AuditLogger *audit.Logger
	Auditor     *audit.Auditor

	FallbackWebhookURL string
	CORSOrigins        []string
	CSRFSecret         []byte
	SecureCookies      bool
	Version            string
}

// NewRouter creates and configures the HTTP router with all endpoints.
func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())

	// Apply security headers to all responses
	router.Use(auth.SecurityHeadersMiddleware())

	// HSTS only makes sense on TLS deployments, which also set secure
	// cookies.
	if cfg.SecureCookies {
		router.Use(auth.StrictTransportSecurityMiddleware())
	}

	router.Use(cors.New(corsConfig(cfg.CORSOrigins)))

	// CSRF must run before session so that session context is preserved
	if len(cfg.CSRFSecret) > 0 {
		router.Use(auth.CSRFMiddleware(cfg.CSRFSecret, cfg.SecureCookies))
	}

	// Session runs after CSRF so session context isn't overwritten by CSRF's
	// request replacement
	router.Use(cfg.Sessions.SessionLoadSave())

	authController := auth.NewAuthController(cfg.AuthService, cfg.Sessions, cfg.AuditLogger)
	announcements := NewAnnouncementsController(cfg.Store, cfg.AuditLogger)
	themes := NewThemesController(cfg.Store, cfg.AuditLogger)
	streams := NewStreamsController(cfg.Store, cfg.Provider, cfg.AuditLogger)
	logs := NewLogsController(cfg.Store, cfg.Provider, cfg.AuditLogger)
	webhooks := NewWebhooksController(cfg.Store, cfg.Sender, cfg.FallbackWebhookURL, cfg.AuditLogger)
	seo := NewSEOController(cfg.Store, cfg.AuditLogger)
	backup := NewBackupController(cfg.Store, cfg.Auditor, cfg.AuditLogger)
	health := NewHealthController(cfg.Store, cfg.Version)

	// Health endpoints
	router.GET("/health", health.Status)
	router.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"message": "pong",
		})
	})
	router.GET("/sitemap.xml", seo.Sitemap)

	// Session endpoints
	router.POST("/api/admin/login", authController.Login)
	router.POST("/api/admin/logout", authController.Logout)
	router.GET("/api/admin/check-auth", authController.CheckAuth)

	// Public marketing endpoints
	router.GET("/api/announcements", announcements.List)
	router.GET("/api/theme", themes.Get)
	router.POST("/api/theme", themes.Update)
	router.GET("/api/twitch/live", streams.Live)
	router.GET("/api/twitch/streamers", streams.Streamers)
	router.GET("/api/twitch/streams/:channel", streams.Streamer)
	router.POST("/api/discord/log", webhooks.Log)

	// Announcement management
	requireAuth := auth.RequireAuth(cfg.Sessions)
	router.POST("/api/announcements", requireAuth, announcements.Create)
	router.PATCH("/api/announcements/:id", requireAuth, announcements.Update)
	router.DELETE("/api/announcements/:id", requireAuth, announcements.Delete)

	// Admin panel endpoints
	admin := router.Group("/api/admin", requireAuth)
	admin.GET("/stream-settings", streams.GetSettings)
	admin.POST("/stream-settings/featured", streams.UpdateFeatured)
	admin.GET("/theme-settings", themes.AdminGet)
	admin.POST("/theme-settings", themes.AdminUpdate)
	admin.POST("/theme-settings/custom", themes.AdminUpdateCustom)
	admin.GET("/logs", logs.List)
	admin.GET("/activity", logs.Activity)
	admin.GET("/stats", logs.Stats)
	admin.GET("/metrics/viewers", logs.ViewerMetrics)
	admin.GET("/webhook-settings", webhooks.GetSettings)
	admin.POST("/webhook-settings", webhooks.UpdateSettings)
	admin.GET("/seo/meta", seo.GetMeta)
	admin.POST("/seo/meta", seo.UpdateMeta)
	admin.GET("/backup/download", backup.Download)
	admin.POST("/backup/restore", backup.Restore)

	return router
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", auth.CSRFTokenHeader},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if len(origins) == 0 {
		// Credentials forbid the wildcard, so echo the caller's origin.
		cfg.AllowOriginFunc = func(origin string) bool { return true }
		return cfg
	}
	cfg.AllowOrigins = origins
	return cfg
}
