package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/templui/rincon/internal/model"
	"github.com/templui/rincon/internal/repository"
	"github.com/templui/rincon/internal/validation"
)

// SiteConfigInput holds a partial theme update. Empty fields are ignored.
type SiteConfigInput struct {
	PrimaryColor    string `json:"primary_color"`
	BackgroundColor string `json:"background_color"`
	ProductBgColor  string `json:"product_bg_color"`
	WhatsAppNumber  string `json:"whatsapp_number"`
}

type SiteConfigService struct {
	repo            repository.SiteConfigRepository
	defaultWhatsApp string
}

func NewSiteConfigService(repo repository.SiteConfigRepository, defaultWhatsApp string) *SiteConfigService {
	return &SiteConfigService{
		repo:            repo,
		defaultWhatsApp: defaultWhatsApp,
	}
}

// Get returns the theme, storing the defaults on first use.
func (s *SiteConfigService) Get(ctx context.Context) (*model.SiteConfig, error) {
	cfg, err := s.repo.Get(ctx)
	if err == nil {
		return cfg, nil
	}
	if !errors.Is(err, repository.ErrSiteConfigNotFound) {
		return nil, fmt.Errorf("failed to get site config: %w", err)
	}

	cfg = s.defaults()
	err = s.repo.Save(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create default site config: %w", err)
	}

	slog.Info("default site config created")
	return cfg, nil
}

// Update validates and applies the non-empty fields of input.
func (s *SiteConfigService) Update(ctx context.Context, input SiteConfigInput) (*model.SiteConfig, error) {
	input = SiteConfigInput{
		PrimaryColor:    strings.TrimSpace(input.PrimaryColor),
		BackgroundColor: strings.TrimSpace(input.BackgroundColor),
		ProductBgColor:  strings.TrimSpace(input.ProductBgColor),
		WhatsAppNumber:  strings.TrimSpace(input.WhatsAppNumber),
	}

	colors := map[string]string{
		"primary_color":    input.PrimaryColor,
		"background_color": input.BackgroundColor,
		"product_bg_color": input.ProductBgColor,
	}
	for field, value := range colors {
		if value == "" {
			continue
		}
		err := validation.ValidateHexColor(value)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrInvalidSiteConfig, field, err)
		}
	}
	if input.WhatsAppNumber != "" {
		err := validation.ValidateWhatsAppNumber(input.WhatsAppNumber)
		if err != nil {
			return nil, fmt.Errorf("%w: whatsapp_number: %w", ErrInvalidSiteConfig, err)
		}
	}

	cfg, err := s.Get(ctx)
	if err != nil {
		return nil, err
	}

	if input.PrimaryColor != "" {
		cfg.PrimaryColor = input.PrimaryColor
	}
	if input.BackgroundColor != "" {
		cfg.BackgroundColor = input.BackgroundColor
	}
	if input.ProductBgColor != "" {
		cfg.ProductBgColor = input.ProductBgColor
	}
	if input.WhatsAppNumber != "" {
		cfg.WhatsAppNumber = input.WhatsAppNumber
	}

	err = s.repo.Save(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to save site config: %w", err)
	}

	slog.Info("site config updated")
	return cfg, nil
}

func (s *SiteConfigService) defaults() *model.SiteConfig {
	return &model.SiteConfig{
		PrimaryColor:    model.DefaultPrimaryColor,
		BackgroundColor: model.DefaultBackgroundColor,
		ProductBgColor:  model.DefaultProductBgColor,
		WhatsAppNumber:  s.defaultWhatsApp,
	}
}
