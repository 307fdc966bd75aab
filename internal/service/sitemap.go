package service

import (
	"encoding/xml"
	"fmt"
	"strings"
	"time"

	"github.com/templui/rincon/internal/model"
)

// publicRoutes are the static storefront routes listed in the sitemap.
// Auth-protected pages like /dashboard stay out.
var publicRoutes = []struct {
	Path       string
	Priority   string
	ChangeFreq string
}{
	{"/", "1.0", "daily"},
	{"/login", "0.3", "monthly"},
}

type SitemapService struct {
	pageService *PageService
	baseURL     string
	now         func() time.Time
}

func NewSitemapService(pageService *PageService, baseURL string) *SitemapService {
	return &SitemapService{
		pageService: pageService,
		baseURL:     strings.TrimSuffix(baseURL, "/"),
		now:         time.Now,
	}
}

// GenerateSitemap lists the static routes and every store info page.
func (s *SitemapService) GenerateSitemap() ([]byte, error) {
	err := s.pageService.LoadPages()
	if err != nil {
		return nil, fmt.Errorf("failed to load pages: %w", err)
	}

	today := s.now().Format("2006-01-02")

	sitemap := model.Sitemap{
		XMLNS: "http://www.sitemaps.org/schemas/sitemap/0.9",
	}

	for _, route := range publicRoutes {
		sitemap.URLs = append(sitemap.URLs, model.SitemapURL{
			Loc:        s.baseURL + route.Path,
			LastMod:    today,
			ChangeFreq: route.ChangeFreq,
			Priority:   route.Priority,
		})
	}

	for _, page := range s.pageService.Pages() {
		lastMod := today
		updated, err := time.Parse(pageDateLayout, page.LastUpdated)
		if err == nil {
			lastMod = updated.Format("2006-01-02")
		}
		sitemap.URLs = append(sitemap.URLs, model.SitemapURL{
			Loc:        s.baseURL + "/pages/" + page.Slug,
			LastMod:    lastMod,
			ChangeFreq: "monthly",
			Priority:   "0.5",
		})
	}

	output, err := xml.MarshalIndent(sitemap, "", "  ")
	if err != nil {
		return nil, err
	}

	return []byte(xml.Header + string(output)), nil
}
