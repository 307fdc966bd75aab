package service

import (
	"context"
	"errors"
	"fmt"
	"html/template"
	"log/slog"
	"math"
	"mime/multipart"
	"strings"

	"github.com/templui/rincon/internal/markdown"
	"github.com/templui/rincon/internal/model"
	"github.com/templui/rincon/internal/repository"
	"github.com/templui/rincon/internal/validation"
)

// ProductInput holds form values. Nil fields are left unchanged on update.
type ProductInput struct {
	Name        *string
	Description *string
	Price       *float64
}

// Upload is an image file taken from a multipart form.
type Upload struct {
	File   multipart.File
	Header *multipart.FileHeader
}

type ProductService struct {
	products repository.ProductRepository
	files    *FileService
	parser   *markdown.Parser
}

func NewProductService(products repository.ProductRepository, files *FileService) *ProductService {
	return &ProductService{
		products: products,
		files:    files,
		parser:   markdown.NewParser(),
	}
}

// List returns all products newest first, with image URLs resolved.
func (s *ProductService) List(ctx context.Context) ([]*model.Product, error) {
	products, err := s.products.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}

	for _, p := range products {
		s.decorate(ctx, p)
	}

	return products, nil
}

func (s *ProductService) ByID(ctx context.Context, id string) (*model.Product, error) {
	product, err := s.products.ByID(ctx, id)
	if errors.Is(err, repository.ErrProductNotFound) {
		return nil, ErrProductNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get product: %w", err)
	}

	s.decorate(ctx, product)
	return product, nil
}

// Create adds a product. An image is required.
func (s *ProductService) Create(ctx context.Context, userID string, input ProductInput, image *Upload) (*model.Product, error) {
	product := &model.Product{}
	if input.Name == nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidProduct, validation.ErrNameRequired)
	}

	err := applyProductInput(product, input)
	if err != nil {
		return nil, err
	}

	if image == nil || image.Header == nil {
		return nil, ErrImageRequired
	}
	err = validation.ValidateFile(image.Header, validation.ImageConstraints)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidImage, err)
	}

	err = s.products.Create(ctx, product)
	if err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}

	_, err = s.files.Upload(ctx, userID, model.OwnerTypeProduct, product.ID, model.FileTypeProductImage, image.File, image.Header, true)
	if err != nil {
		delErr := s.products.Delete(ctx, product.ID)
		if delErr != nil {
			slog.Error("failed to remove product after image upload failure", "error", delErr, "product_id", product.ID)
		}
		return nil, fmt.Errorf("failed to upload product image: %w", err)
	}

	slog.Info("product created", "product_id", product.ID, "user_id", userID)
	s.decorate(ctx, product)
	return product, nil
}

// Update applies the provided fields and optionally replaces the image.
func (s *ProductService) Update(ctx context.Context, userID, id string, input ProductInput, image *Upload) (*model.Product, error) {
	product, err := s.products.ByID(ctx, id)
	if errors.Is(err, repository.ErrProductNotFound) {
		return nil, ErrProductNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get product: %w", err)
	}

	// An empty name keeps the current one
	if input.Name != nil && strings.TrimSpace(*input.Name) == "" {
		input.Name = nil
	}
	err = applyProductInput(product, input)
	if err != nil {
		return nil, err
	}

	var previous, uploaded *model.File
	if image != nil && image.Header != nil {
		err = validation.ValidateFile(image.Header, validation.ImageConstraints)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidImage, err)
		}

		previous, err = s.files.FileByType(ctx, model.OwnerTypeProduct, product.ID, model.FileTypeProductImage)
		if err != nil && !errors.Is(err, repository.ErrFileNotFound) {
			return nil, fmt.Errorf("failed to get product image: %w", err)
		}

		uploaded, err = s.files.Upload(ctx, userID, model.OwnerTypeProduct, product.ID, model.FileTypeProductImage, image.File, image.Header, true)
		if err != nil {
			return nil, fmt.Errorf("failed to upload product image: %w", err)
		}
	}

	err = s.products.Update(ctx, product)
	if err != nil {
		// The old image stays current when the update fails
		if uploaded != nil {
			delErr := s.files.Delete(ctx, uploaded.ID)
			if delErr != nil {
				slog.Error("failed to remove product image after update failure", "error", delErr, "file_id", uploaded.ID)
			}
		}
		if errors.Is(err, repository.ErrProductNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to update product: %w", err)
	}

	if previous != nil {
		delErr := s.files.Delete(ctx, previous.ID)
		if delErr != nil {
			slog.Warn("failed to delete replaced product image", "error", delErr, "file_id", previous.ID)
		}
	}

	s.decorate(ctx, product)
	return product, nil
}

// Delete removes a product and its images.
func (s *ProductService) Delete(ctx context.Context, id string) error {
	err := s.products.Delete(ctx, id)
	if errors.Is(err, repository.ErrProductNotFound) {
		return ErrProductNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to delete product: %w", err)
	}

	err = s.files.DeleteOwnerFiles(ctx, model.OwnerTypeProduct, id)
	if err != nil {
		slog.Warn("failed to delete product images", "error", err, "product_id", id)
	}

	slog.Info("product deleted", "product_id", id)
	return nil
}

func (s *ProductService) decorate(ctx context.Context, product *model.Product) {
	image, err := s.files.FileByType(ctx, model.OwnerTypeProduct, product.ID, model.FileTypeProductImage)
	if err == nil {
		product.ImageURL = s.files.URL(ctx, image)
	} else if !errors.Is(err, repository.ErrFileNotFound) {
		slog.Warn("failed to get product image", "error", err, "product_id", product.ID)
	}

	if product.Description != "" {
		html, err := s.parser.Parse([]byte(product.Description))
		if err != nil {
			slog.Warn("failed to render product description", "error", err, "product_id", product.ID)
			return
		}
		product.DescriptionHTML = template.HTML(html)
	}
}

func applyProductInput(product *model.Product, input ProductInput) error {
	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		err := validation.ValidateName(name)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrInvalidProduct, err)
		}
		product.Name = name
	}

	if input.Description != nil {
		product.Description = strings.TrimSpace(*input.Description)
	}

	if input.Price != nil {
		price := *input.Price
		if math.IsNaN(price) || math.IsInf(price, 0) || price < 0 {
			return fmt.Errorf("%w: price must be a non-negative number", ErrInvalidProduct)
		}
		product.Price = &price
	}

	return nil
}
