package service

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writePage(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "pages"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "pages", name), []byte(content), 0644))
}

func TestPageService_Page(t *testing.T) {
	dir := t.TempDir()
	writePage(t, dir, "envios.md", "---\ntitle: Envíos y retiros\nlastUpdated: \"2025-03-01\"\n---\nEnviamos a **todo** el país.")
	writePage(t, dir, "como-comprar.md", "Escribinos por WhatsApp.")
	writePage(t, dir, "notes.txt", "ignored")

	s := NewPageService(dir)

	page, err := s.Page("envios")
	require.NoError(t, err)
	assert.Equal(t, "Envíos y retiros", page.Title)
	assert.Equal(t, "01/03/2025", page.LastUpdated)
	assert.Contains(t, page.Content, "<strong>todo</strong>")

	page, err = s.Page("como-comprar")
	require.NoError(t, err)
	assert.Equal(t, "Como Comprar", page.Title)

	_, err = s.Page("notes")
	assert.ErrorIs(t, err, ErrPageNotFound)

	pages := s.Pages()
	require.Len(t, pages, 2)
	assert.Equal(t, "como-comprar", pages[0].Slug)
}

func TestPageService_CreatesMissingDirectory(t *testing.T) {
	dir := t.TempDir()
	s := NewPageService(dir)

	require.NoError(t, s.LoadPages())
	assert.DirExists(t, filepath.Join(dir, "pages"))
	assert.Empty(t, s.Pages())
}

func TestParseDate(t *testing.T) {
	assert.Equal(t, "01/03/2025", parseDate("2025-03-01"))
	assert.Equal(t, "01/03/2025", parseDate(time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, "sometime", parseDate("sometime"))
	assert.Equal(t, "", parseDate(42))
}
