package model

import (
	"html/template"
	"time"
)

type Product struct {
	ID          string    `db:"id" json:"id"`
	Name        string    `db:"name" json:"name"`
	Description string    `db:"description" json:"description"`
	Price       *float64  `db:"price" json:"price"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time `db:"updated_at" json:"updated_at"`

	// Computed fields (not in database)
	ImageURL        string        `db:"-" json:"image"`
	DescriptionHTML template.HTML `db:"-" json:"description_html"`
}
