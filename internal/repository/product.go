package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/templui/rincon/internal/model"
)

var (
	ErrProductNotFound = errors.New("product not found")
)

type ProductRepository interface {
	Create(ctx context.Context, product *model.Product) error
	ByID(ctx context.Context, id string) (*model.Product, error)
	List(ctx context.Context) ([]*model.Product, error)
	Update(ctx context.Context, product *model.Product) error
	Delete(ctx context.Context, id string) error
}

type productRepository struct {
	db *sqlx.DB
}

func NewProductRepository(db *sqlx.DB) ProductRepository {
	return &productRepository{db: db}
}

func (r *productRepository) Create(ctx context.Context, product *model.Product) error {
	if product.ID == "" {
		product.ID = uuid.New().String()
	}
	now := time.Now().UTC()
	if product.CreatedAt.IsZero() {
		product.CreatedAt = now
	}
	product.UpdatedAt = product.CreatedAt

	query := `INSERT INTO products (id, name, description, price, created_at, updated_at) VALUES ($1, $2, $3, $4, $5, $6)`

	_, err := r.db.ExecContext(ctx, query, product.ID, product.Name, product.Description, product.Price, product.CreatedAt, product.UpdatedAt)
	return err
}

func (r *productRepository) ByID(ctx context.Context, id string) (*model.Product, error) {
	product := &model.Product{}
	query := `SELECT * FROM products WHERE id = $1`

	err := r.db.GetContext(ctx, product, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrProductNotFound
	}
	if err != nil {
		return nil, err
	}

	return product, nil
}

// List returns all products, newest first.
func (r *productRepository) List(ctx context.Context) ([]*model.Product, error) {
	var products []*model.Product
	query := `SELECT * FROM products ORDER BY created_at DESC, id`

	err := r.db.SelectContext(ctx, &products, query)
	if err != nil {
		return nil, err
	}

	return products, nil
}

func (r *productRepository) Update(ctx context.Context, product *model.Product) error {
	product.UpdatedAt = time.Now().UTC()
	query := `UPDATE products SET name = $1, description = $2, price = $3, updated_at = $4 WHERE id = $5`

	result, err := r.db.ExecContext(ctx, query, product.Name, product.Description, product.Price, product.UpdatedAt, product.ID)
	if err != nil {
		return err
	}

	return expectRow(result, ErrProductNotFound)
}

func (r *productRepository) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM products WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}

	return expectRow(result, ErrProductNotFound)
}
