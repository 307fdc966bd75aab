package model

import "time"

const (
	DefaultPrimaryColor    = "#ff6b9d"
	DefaultBackgroundColor = "#fff5f8"
	DefaultProductBgColor  = "#ffffff"
)

// SiteConfig is the single row of storefront theme settings.
type SiteConfig struct {
	ID              int       `db:"id" json:"-"`
	PrimaryColor    string    `db:"primary_color" json:"primary_color"`
	BackgroundColor string    `db:"background_color" json:"background_color"`
	ProductBgColor  string    `db:"product_bg_color" json:"product_bg_color"`
	WhatsAppNumber  string    `db:"whatsapp_number" json:"whatsapp_number"`
	UpdatedAt       time.Time `db:"updated_at" json:"updated_at"`
}
