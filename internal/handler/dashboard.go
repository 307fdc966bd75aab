package handler

import (
	"log/slog"
	"net/http"

	"github.com/templui/rincon/internal/ctxkeys"
	"github.com/templui/rincon/internal/service"
	"github.com/templui/rincon/internal/ui"
	"github.com/templui/rincon/internal/ui/pages"
)

type DashboardHandler struct {
	productService    *service.ProductService
	siteConfigService *service.SiteConfigService
}

func NewDashboardHandler(productService *service.ProductService, siteConfigService *service.SiteConfigService) *DashboardHandler {
	return &DashboardHandler{
		productService:    productService,
		siteConfigService: siteConfigService,
	}
}

func (h *DashboardHandler) DashboardPage(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	products, err := h.productService.List(r.Context())
	if err != nil {
		slog.Error("failed to list products", "error", err, "user_id", user.ID)
		http.Error(w, "Failed to load dashboard", http.StatusInternalServerError)
		return
	}

	theme, err := h.siteConfigService.Get(r.Context())
	if err != nil {
		slog.Error("failed to get site config", "error", err, "user_id", user.ID)
		http.Error(w, "Failed to load dashboard", http.StatusInternalServerError)
		return
	}

	ui.Render(w, r, pages.Dashboard(products, theme))
}
