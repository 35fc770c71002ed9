package http

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/rennsz/fansite/internal/audit"
	"github.com/rennsz/fansite/internal/entities"
)

// MetaTagStore is the slice of the store the controller needs.
type MetaTagStore interface {
	MetaTags() entities.MetaTags
	UpdateMetaTags(ctx context.Context, patch entities.MetaTagsPatch) (entities.MetaTags, error)
}

type SEOController struct {
	store MetaTagStore
	audit *audit.Logger
}

func NewSEOController(store MetaTagStore, auditLogger *audit.Logger) *SEOController {
	return &SEOController{store: store, audit: auditLogger}
}

func (controller *SEOController) GetMeta(c *gin.Context) {
	c.JSON(http.StatusOK, controller.store.MetaTags())
}

func (controller *SEOController) UpdateMeta(c *gin.Context) {
	var patch entities.MetaTagsPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		respondBadRequest(c, "Failed to update meta tags")
		return
	}

	settings, err := controller.store.UpdateMetaTags(c.Request.Context(), patch)
	if err != nil {
		respondInternalError(c, err, "Failed to update meta tags")
		return
	}

	controller.audit.Info(c.Request.Context(), "Updated SEO meta tags", "admin")
	c.JSON(http.StatusOK, settings)
}

// Sitemap serves a static sitemap for the marketing pages. The host is taken
// from the request so the same binary works on any domain.
func (controller *SEOController) Sitemap(c *gin.Context) {
	baseURL := "https://" + c.Request.Host

	sitemap := `<?xml version="1.0" encoding="UTF-8"?>
<urlset xmlns="http://www.sitemaps.org/schemas/sitemap/0.9">
  <url>
    <loc>` + baseURL + `/</loc>
    <changefreq>daily</changefreq>
    <priority>1.0</priority>
  </url>
  <url>
    <loc>` + baseURL + `/streams</loc>
    <changefreq>always</changefreq>
    <priority>0.9</priority>
  </url>
  <url>
    <loc>` + baseURL + `/announcements</loc>
    <changefreq>daily</changefreq>
    <priority>0.8</priority>
  </url>
</urlset>`

	c.Data(http.StatusOK, "application/xml", []byte(sitemap))
}
