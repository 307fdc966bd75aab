package handler

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/templui/rincon/internal/service"
	"github.com/templui/rincon/internal/ui"
	"github.com/templui/rincon/internal/ui/pages"
)

type HomeHandler struct {
	productService    *service.ProductService
	siteConfigService *service.SiteConfigService
	pageService       *service.PageService
}

func NewHomeHandler(productService *service.ProductService, siteConfigService *service.SiteConfigService, pageService *service.PageService) *HomeHandler {
	return &HomeHandler{
		productService:    productService,
		siteConfigService: siteConfigService,
		pageService:       pageService,
	}
}

// HomePage renders the storefront.
func (h *HomeHandler) HomePage(w http.ResponseWriter, r *http.Request) {
	products, err := h.productService.List(r.Context())
	if err != nil {
		slog.Error("failed to list products", "error", err)
		http.Error(w, "Failed to load products", http.StatusInternalServerError)
		return
	}

	theme, err := h.siteConfigService.Get(r.Context())
	if err != nil {
		slog.Error("failed to get site config", "error", err)
		http.Error(w, "Failed to load products", http.StatusInternalServerError)
		return
	}

	err = h.pageService.LoadPages()
	if err != nil {
		// Links to info pages are optional
		slog.Warn("failed to load pages", "error", err)
	}

	ui.Render(w, r, pages.Home(products, theme, h.pageService.Pages()))
}

func (h *HomeHandler) NotFoundPage(w http.ResponseWriter, r *http.Request) {
	if strings.HasPrefix(r.URL.Path, "/api/") {
		JSONError(w, "Not found", http.StatusNotFound)
		return
	}
	w.WriteHeader(http.StatusNotFound)
	ui.Render(w, r, pages.NotFound())
}
