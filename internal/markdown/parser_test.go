package markdown

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParser_Parse(t *testing.T) {
	p := NewParser()

	html, err := p.Parse([]byte("**Mate** de calabaza\n\n- uno\n- dos"))
	require.NoError(t, err)
	assert.Contains(t, string(html), "<strong>Mate</strong>")
	assert.Contains(t, string(html), "<li>uno</li>")
}

func TestParser_EscapesRawHTML(t *testing.T) {
	p := NewParser()

	html, err := p.Parse([]byte("hola <script>alert(1)</script>"))
	require.NoError(t, err)
	assert.NotContains(t, string(html), "<script>")
}

func TestParser_ParseWithFrontmatter(t *testing.T) {
	p := NewParser()
	source := []byte("---\ntitle: Envíos\nlastUpdated: 2025-03-01\n---\n# Envíos\n\nA todo el país.")

	html, meta, err := p.ParseWithFrontmatter(source)
	require.NoError(t, err)
	assert.Equal(t, "Envíos", meta["title"])
	assert.Contains(t, string(html), "A todo el país.")
	assert.NotContains(t, string(html), "title:")
}

func TestParser_ParseWithoutFrontmatter(t *testing.T) {
	p := NewParser()

	_, meta, err := p.ParseWithFrontmatter([]byte("solo texto"))
	require.NoError(t, err)
	assert.Empty(t, meta)
}
