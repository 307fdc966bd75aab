package handler

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/templui/rincon/internal/model"
)

func TestSiteConfigHandler_GetDefaults(t *testing.T) {
	f := newFixture(t)
	h := NewSiteConfigHandler(f.siteConfig)

	rec := httptest.NewRecorder()
	h.Get(rec, httptest.NewRequest(http.MethodGet, "/api/config", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	body := decodeBody(t, rec)
	assert.Equal(t, model.DefaultPrimaryColor, body["primary_color"])
	assert.Equal(t, model.DefaultBackgroundColor, body["background_color"])
	assert.Equal(t, model.DefaultProductBgColor, body["product_bg_color"])
	assert.Equal(t, "1121820759", body["whatsapp_number"])
	assert.NotContains(t, body, "id")
}

func TestSiteConfigHandler_Update(t *testing.T) {
	f := newFixture(t)
	h := NewSiteConfigHandler(f.siteConfig)

	rec := httptest.NewRecorder()
	h.Update(rec, withUser(jsonRequest(t, http.MethodPut, "/api/config", map[string]string{
		"primary_color":   "#123abc",
		"whatsapp_number": "5491122334455",
	}), admin))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "Configuration updated successfully", decodeBody(t, rec)["message"])

	rec = httptest.NewRecorder()
	h.Get(rec, httptest.NewRequest(http.MethodGet, "/api/config", nil))
	body := decodeBody(t, rec)
	assert.Equal(t, "#123abc", body["primary_color"])
	assert.Equal(t, model.DefaultBackgroundColor, body["background_color"])
	assert.Equal(t, "5491122334455", body["whatsapp_number"])
}

func TestSiteConfigHandler_UpdateInvalid(t *testing.T) {
	f := newFixture(t)
	h := NewSiteConfigHandler(f.siteConfig)

	rec := httptest.NewRecorder()
	h.Update(rec, withUser(jsonRequest(t, http.MethodPut, "/api/config", map[string]string{
		"primary_color": "pink",
	}), admin))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, decodeBody(t, rec)["error"], "primary_color")

	rec = httptest.NewRecorder()
	req := withUser(httptest.NewRequest(http.MethodPut, "/api/config", strings.NewReader("[")), admin)
	h.Update(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Invalid request body", decodeBody(t, rec)["error"])
}
