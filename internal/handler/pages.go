package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/templui/rincon/internal/service"
	"github.com/templui/rincon/internal/ui"
	"github.com/templui/rincon/internal/ui/pages"
)

type PageHandler struct {
	pageService       *service.PageService
	siteConfigService *service.SiteConfigService
}

func NewPageHandler(pageService *service.PageService, siteConfigService *service.SiteConfigService) *PageHandler {
	handler := &PageHandler{
		pageService:       pageService,
		siteConfigService: siteConfigService,
	}

	// Load pages on initialization
	err := handler.pageService.LoadPages()
	if err != nil {
		// Continue: pages might be added later
		slog.Warn("failed to load pages", "error", err)
	}

	return handler
}

func (h *PageHandler) ShowPage(w http.ResponseWriter, r *http.Request) {
	slug := r.PathValue("slug")

	page, err := h.pageService.Page(slug)
	if err != nil {
		if !errors.Is(err, service.ErrPageNotFound) {
			slog.Error("failed to load page", "error", err, "slug", slug)
		}
		w.WriteHeader(http.StatusNotFound)
		ui.Render(w, r, pages.NotFound())
		return
	}

	theme, err := h.siteConfigService.Get(r.Context())
	if err != nil {
		// Render with the default theme
		slog.Warn("failed to get site config", "error", err)
	}

	ui.Render(w, r, pages.InfoPage(page, theme))
}
