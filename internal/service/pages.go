package service

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/templui/rincon/internal/markdown"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// pageDateLayout is how LastUpdated is displayed (dd/mm/yyyy).
const pageDateLayout = "02/01/2006"

// Page is a store information page rendered from markdown.
type Page struct {
	Title       string
	Slug        string
	Description string
	Content     string
	LastUpdated string
}

type PageService struct {
	contentDir string
	parser     *markdown.Parser

	mu    sync.RWMutex
	pages map[string]*Page
}

func NewPageService(contentDir string) *PageService {
	return &PageService{
		contentDir: filepath.Join(contentDir, "pages"),
		parser:     markdown.NewParser(),
		pages:      make(map[string]*Page),
	}
}

func (s *PageService) LoadPages() error {
	files, err := os.ReadDir(s.contentDir)
	if err != nil {
		if os.IsNotExist(err) {
			// Create directory if it doesn't exist
			err = os.MkdirAll(s.contentDir, 0755)
			if err != nil {
				return fmt.Errorf("failed to create pages directory: %w", err)
			}
			return nil
		}
		return fmt.Errorf("failed to read pages directory: %w", err)
	}

	pages := make(map[string]*Page)
	for _, file := range files {
		if file.IsDir() || !strings.HasSuffix(file.Name(), ".md") {
			continue
		}

		slug := strings.TrimSuffix(file.Name(), ".md")
		page, err := s.loadPage(slug)
		if err != nil {
			return fmt.Errorf("failed to load page %s: %w", slug, err)
		}

		pages[slug] = page
	}

	s.mu.Lock()
	s.pages = pages
	s.mu.Unlock()

	return nil
}

func (s *PageService) loadPage(slug string) (*Page, error) {
	filePath := filepath.Join(s.contentDir, slug+".md")
	content, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	html, meta, err := s.parser.ParseWithFrontmatter(content)
	if err != nil {
		return nil, fmt.Errorf("failed to parse markdown: %w", err)
	}

	// Get file info for last updated date
	info, err := os.Stat(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to get file info: %w", err)
	}

	title, _ := meta["title"].(string)
	if title == "" {
		// Generate title from slug
		title = cases.Title(language.Spanish).String(strings.ReplaceAll(slug, "-", " "))
	}

	description, _ := meta["description"].(string)

	// Get lastUpdated from frontmatter first, fallback to file modification time
	var lastUpdated string
	dateValue, ok := meta["lastUpdated"]
	if ok {
		// Try to parse various date formats
		lastUpdated = parseDate(dateValue)
	}

	// Fallback to file modification time if not in frontmatter
	if lastUpdated == "" {
		lastUpdated = info.ModTime().Format(pageDateLayout)
	}

	return &Page{
		Title:       title,
		Slug:        slug,
		Description: description,
		Content:     string(html),
		LastUpdated: lastUpdated,
	}, nil
}

// Page returns the page for slug, reloading content from disk.
func (s *PageService) Page(slug string) (*Page, error) {
	// Reload to get latest content
	err := s.LoadPages()
	if err != nil {
		return nil, err
	}

	s.mu.RLock()
	page, ok := s.pages[slug]
	s.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrPageNotFound, slug)
	}

	return page, nil
}

// parseDate tries to parse various date formats and returns formatted date
func parseDate(value any) string {
	var dateStr string

	switch v := value.(type) {
	case string:
		dateStr = v
	case time.Time:
		return v.Format(pageDateLayout)
	default:
		return ""
	}

	// Try various date formats
	formats := []string{
		"2006-01-02",      // ISO date
		"2006/01/02",      // Alternative
		"02.01.2006",      // European
		"01/02/2006",      // US format
		"Jan 2, 2006",     // Short month
		"January 2, 2006", // Full month
		time.RFC3339,      // RFC3339
	}

	for _, format := range formats {
		t, err := time.Parse(format, dateStr)
		if err == nil {
			return t.Format(pageDateLayout)
		}
	}

	// Return as-is if parsing fails
	return dateStr
}

// Pages lists loaded pages ordered by slug.
func (s *PageService) Pages() []*Page {
	s.mu.RLock()
	defer s.mu.RUnlock()

	pages := make([]*Page, 0, len(s.pages))
	for _, page := range s.pages {
		pages = append(pages, page)
	}
	sort.Slice(pages, func(i, j int) bool { return pages[i].Slug < pages[j].Slug })
	return pages
}
