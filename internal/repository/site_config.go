package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/templui/rincon/internal/model"
)

var (
	ErrSiteConfigNotFound = errors.New("site config not found")
)

// siteConfigID is the primary key of the only site_config row.
const siteConfigID = 1

type SiteConfigRepository interface {
	Get(ctx context.Context) (*model.SiteConfig, error)
	Save(ctx context.Context, cfg *model.SiteConfig) error
}

type siteConfigRepository struct {
	db *sqlx.DB
}

func NewSiteConfigRepository(db *sqlx.DB) SiteConfigRepository {
	return &siteConfigRepository{db: db}
}

func (r *siteConfigRepository) Get(ctx context.Context) (*model.SiteConfig, error) {
	cfg := &model.SiteConfig{}
	query := `SELECT * FROM site_config WHERE id = $1`

	err := r.db.GetContext(ctx, cfg, query, siteConfigID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrSiteConfigNotFound
	}
	if err != nil {
		return nil, err
	}

	return cfg, nil
}

// Save inserts or replaces the singleton row.
func (r *siteConfigRepository) Save(ctx context.Context, cfg *model.SiteConfig) error {
	cfg.ID = siteConfigID
	cfg.UpdatedAt = time.Now().UTC()

	query := `INSERT INTO site_config (id, primary_color, background_color, product_bg_color, whatsapp_number, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6)
	          ON CONFLICT (id) DO UPDATE SET
	              primary_color = excluded.primary_color,
	              background_color = excluded.background_color,
	              product_bg_color = excluded.product_bg_color,
	              whatsapp_number = excluded.whatsapp_number,
	              updated_at = excluded.updated_at`

	_, err := r.db.ExecContext(ctx, query, cfg.ID, cfg.PrimaryColor, cfg.BackgroundColor, cfg.ProductBgColor, cfg.WhatsAppNumber, cfg.UpdatedAt)
	return err
}
