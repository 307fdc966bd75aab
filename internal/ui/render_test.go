package ui

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/a-h/templ"
	"github.com/stretchr/testify/assert"
)

func TestClass(t *testing.T) {
	assert.Equal(t, "py-2 px-6", Class("px-4 py-2", "px-6"))
	assert.Equal(t, "rounded-lg bg-pink-500", Class("rounded-lg bg-white", "bg-pink-500"))
}

func TestRender(t *testing.T) {
	ok := templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		_, err := io.WriteString(w, "<p>hola</p>")
		return err
	})
	rec := httptest.NewRecorder()
	Render(rec, httptest.NewRequest(http.MethodGet, "/", nil), ok)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "<p>hola</p>", rec.Body.String())
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/html")

	failing := templ.ComponentFunc(func(context.Context, io.Writer) error {
		return errors.New("boom")
	})
	rec = httptest.NewRecorder()
	Render(rec, httptest.NewRequest(http.MethodGet, "/", nil), failing)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
