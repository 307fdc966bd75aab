package handler

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/templui/rincon/internal/service"
)

type SEOHandler struct {
	sitemapService *service.SitemapService
	baseURL        string
}

func NewSEOHandler(pageService *service.PageService, baseURL string) *SEOHandler {
	return &SEOHandler{
		sitemapService: service.NewSitemapService(pageService, baseURL),
		baseURL:        strings.TrimSuffix(baseURL, "/"),
	}
}

// Robots serves robots.txt. Private areas are excluded.
func (h *SEOHandler) Robots(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Write([]byte("User-agent: *\nAllow: /\nDisallow: /api/\nDisallow: /dashboard\nDisallow: /reset-password/\nSitemap: " + h.baseURL + "/sitemap.xml\n"))
}

// Sitemap generates and serves the sitemap.xml dynamically
func (h *SEOHandler) Sitemap(w http.ResponseWriter, r *http.Request) {
	sitemap, err := h.sitemapService.GenerateSitemap()
	if err != nil {
		slog.Error("failed to generate sitemap", "error", err)
		http.Error(w, "Failed to generate sitemap", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/xml; charset=utf-8")
	w.Write(sitemap)
}
