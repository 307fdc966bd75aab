package routes

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/templui/rincon/assets"
	"github.com/templui/rincon/internal/app"
	"github.com/templui/rincon/internal/handler"
	"github.com/templui/rincon/internal/middleware"
)

func SetupRoutes(app *app.App) http.Handler {
	// Handlers
	home := handler.NewHomeHandler(app.ProductService, app.SiteConfigService, app.PageService)
	seo := handler.NewSEOHandler(app.PageService, app.Cfg.AppURL)
	infoPages := handler.NewPageHandler(app.PageService, app.SiteConfigService)
	auth := handler.NewAuthHandler(app.AuthService)
	dashboard := handler.NewDashboardHandler(app.ProductService, app.SiteConfigService)
	products := handler.NewProductHandler(app.ProductService, app.Cfg.MaxUploadBytes)
	siteConfig := handler.NewSiteConfigHandler(app.SiteConfigService)
	health := handler.NewHealthHandler(app.DB)

	mux := http.NewServeMux()

	// ============================================================================
	// PUBLIC ROUTES
	// ============================================================================

	// Static files
	mux.Handle("GET /assets/", http.StripPrefix("/assets/", http.FileServer(http.FS(assets.AssetsFS))))

	// Operations
	mux.Handle("GET /metrics", promhttp.Handler())
	mux.HandleFunc("GET /healthz", health.Healthz)

	// SEO
	mux.HandleFunc("GET /robots.txt", seo.Robots)
	mux.HandleFunc("GET /sitemap.xml", seo.Sitemap)

	// Storefront
	mux.HandleFunc("GET /{$}", home.HomePage)
	mux.HandleFunc("GET /pages/{slug}", infoPages.ShowPage)

	// Auth Pages
	mux.HandleFunc("GET /login", middleware.RequireGuest(auth.LoginPage))
	mux.HandleFunc("GET /forgot-password", middleware.RequireGuest(auth.ForgotPasswordPage))
	mux.HandleFunc("GET /reset-password/{token}", auth.ResetPasswordPage)
	mux.HandleFunc("POST /logout", auth.LogoutPage)

	// Auth API (rate limited per client IP)
	rateLimiter := middleware.RateLimitAuth(app.Cfg.AuthRateLimit, app.Cfg.AuthRateWindow, app.Cfg.TrustProxyHeaders)

	mux.HandleFunc("POST /api/register", rateLimiter(auth.Register))
	mux.HandleFunc("POST /api/login", rateLimiter(auth.Login))
	mux.HandleFunc("POST /api/forgot-password", rateLimiter(auth.ForgotPassword))
	mux.HandleFunc("POST /api/reset-password", rateLimiter(auth.ResetPassword))
	mux.HandleFunc("POST /api/logout", auth.Logout)

	// Catalog API
	mux.HandleFunc("GET /api/products", products.List)
	mux.HandleFunc("GET /api/config", siteConfig.Get)

	// ============================================================================
	// PROTECTED ROUTES
	// ============================================================================

	mux.HandleFunc("GET /dashboard", middleware.RequireAuth(dashboard.DashboardPage))
	mux.HandleFunc("GET /api/me", middleware.RequireAuth(auth.Me))

	mux.HandleFunc("POST /api/products", middleware.RequireAuth(products.Create))
	mux.HandleFunc("PUT /api/products/{id}", middleware.RequireAuth(products.Update))
	mux.HandleFunc("DELETE /api/products/{id}", middleware.RequireAuth(products.Delete))
	mux.HandleFunc("PUT /api/config", middleware.RequireAuth(siteConfig.Update))

	// ============================================================================
	// FALLBACK
	// ============================================================================

	// 404
	mux.HandleFunc("/{path...}", home.NotFoundPage)

	var imageHosts []string
	if app.Cfg.S3Endpoint != "" {
		imageHosts = append(imageHosts, app.Cfg.S3Endpoint)
	}

	// Global middleware - executed in order (top to bottom)
	// Recoverer sits inside the logging and metrics wrappers so recovered
	// panics are recorded as 500s. Config must precede CSRFProtection (Secure
	// flag) and Nonce must precede SecurityHeaders.
	handler := middleware.Chain(
		mux,
		middleware.RequestLogging,
		middleware.Prometheus,
		middleware.Recoverer,
		middleware.Config(app.Cfg),
		middleware.Nonce,
		middleware.SecurityHeaders(app.Cfg.IsProduction(), imageHosts...),
		middleware.Auth(app.AuthService),
		middleware.CSRFProtection,
		middleware.WithURLPath,
	)

	return handler
}
