package service

import (
	"encoding/xml"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/templui/rincon/internal/model"
)

func TestSitemapService_GenerateSitemap(t *testing.T) {
	dir := t.TempDir()
	writePage(t, dir, "envios.md", "---\nlastUpdated: \"2025-03-01\"\n---\nEnvíos.")

	pages := NewPageService(dir)
	require.NoError(t, pages.LoadPages())

	s := NewSitemapService(pages, "https://rincon.example/")
	s.now = func() time.Time { return time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC) }

	out, err := s.GenerateSitemap()
	require.NoError(t, err)
	assert.Contains(t, string(out), `<?xml version="1.0" encoding="UTF-8"?>`)

	var sitemap model.Sitemap
	require.NoError(t, xml.Unmarshal(out, &sitemap))
	require.Len(t, sitemap.URLs, 3)
	assert.Equal(t, "https://rincon.example/", sitemap.URLs[0].Loc)
	assert.Equal(t, "2025-06-01", sitemap.URLs[0].LastMod)
	assert.Equal(t, "https://rincon.example/pages/envios", sitemap.URLs[2].Loc)
	assert.Equal(t, "2025-03-01", sitemap.URLs[2].LastMod)
}
