package handler

import (
	"errors"
	"net/http"

	"github.com/templui/rincon/internal/service"
)

type SiteConfigHandler struct {
	siteConfigService *service.SiteConfigService
}

func NewSiteConfigHandler(siteConfigService *service.SiteConfigService) *SiteConfigHandler {
	return &SiteConfigHandler{siteConfigService: siteConfigService}
}

func (h *SiteConfigHandler) Get(w http.ResponseWriter, r *http.Request) {
	cfg, err := h.siteConfigService.Get(r.Context())
	if err != nil {
		internalError(w, r, "failed to get site config", err)
		return
	}
	writeJSON(w, http.StatusOK, cfg)
}

func (h *SiteConfigHandler) Update(w http.ResponseWriter, r *http.Request) {
	var input service.SiteConfigInput
	err := decodeJSON(w, r, &input)
	if err != nil {
		JSONError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	_, err = h.siteConfigService.Update(r.Context(), input)
	if err != nil {
		if errors.Is(err, service.ErrInvalidSiteConfig) {
			JSONError(w, err.Error(), http.StatusBadRequest)
			return
		}
		internalError(w, r, "failed to update site config", err)
		return
	}

	writeJSON(w, http.StatusOK, messageResponse{Message: "Configuration updated successfully"})
}
