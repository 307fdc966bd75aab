package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/templui/rincon/internal/model"
	"github.com/templui/rincon/internal/repository"
	"github.com/templui/rincon/internal/testutil"
)

func newSiteConfigService(t *testing.T) *SiteConfigService {
	t.Helper()
	return NewSiteConfigService(repository.NewSiteConfigRepository(testutil.NewDB(t)), "1121820759")
}

func TestSiteConfigService_GetCreatesDefaults(t *testing.T) {
	s := newSiteConfigService(t)
	ctx := context.Background()

	cfg, err := s.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, model.DefaultPrimaryColor, cfg.PrimaryColor)
	assert.Equal(t, "#fff5f8", cfg.BackgroundColor)
	assert.Equal(t, "#ffffff", cfg.ProductBgColor)
	assert.Equal(t, "1121820759", cfg.WhatsAppNumber)

	again, err := s.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, cfg.PrimaryColor, again.PrimaryColor)
}

func TestSiteConfigService_UpdatePartial(t *testing.T) {
	s := newSiteConfigService(t)
	ctx := context.Background()

	cfg, err := s.Update(ctx, SiteConfigInput{PrimaryColor: "#123abc", WhatsAppNumber: "+5491100000000"})
	require.NoError(t, err)
	assert.Equal(t, "#123abc", cfg.PrimaryColor)
	assert.Equal(t, model.DefaultBackgroundColor, cfg.BackgroundColor)
	assert.Equal(t, "+5491100000000", cfg.WhatsAppNumber)

	stored, err := s.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, "#123abc", stored.PrimaryColor)
}

func TestSiteConfigService_UpdateValidation(t *testing.T) {
	s := newSiteConfigService(t)
	ctx := context.Background()

	_, err := s.Update(ctx, SiteConfigInput{BackgroundColor: "pink"})
	assert.ErrorIs(t, err, ErrInvalidSiteConfig)

	_, err = s.Update(ctx, SiteConfigInput{WhatsAppNumber: "call me"})
	assert.ErrorIs(t, err, ErrInvalidSiteConfig)

	cfg, err := s.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, model.DefaultBackgroundColor, cfg.BackgroundColor)
}
