package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/spec-kit/commerce-service/internal/domain"
	"github.com/spec-kit/commerce-service/internal/repository"
	apperrors "github.com/spec-kit/commerce-service/pkg/util"
)

// ProductInput carries the fields of a catalog create request.
type ProductInput struct {
	Name        string
	Description string
	Price       *float64
	ImageURL    string
	Category    string
	Stock       *int
}

// ProductService owns catalog business logic. Authorization is decided by
// the gate before any method here runs.
type ProductService struct {
	products repository.ProductRepository
}

// NewProductService builds the service.
func NewProductService(products repository.ProductRepository) *ProductService {
	return &ProductService{products: products}
}

// Create validates and stores a new product.
func (s *ProductService) Create(ctx context.Context, input ProductInput) (*domain.Product, error) {
	if input.Name == "" || input.Description == "" || input.Price == nil || input.Stock == nil {
		return nil, apperrors.NewValidationError("Missing required product fields or invalid types", nil)
	}
	if *input.Price < 0 || *input.Stock < 0 {
		return nil, apperrors.NewValidationError("price and stock must not be negative", nil)
	}

	now := time.Now().UTC()
	product := &domain.Product{
		ID:          uuid.NewString(),
		Name:        input.Name,
		Description: input.Description,
		Price:       *input.Price,
		ImageURL:    input.ImageURL,
		Category:    input.Category,
		Stock:       *input.Stock,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.products.Create(ctx, product); err != nil {
		return nil, apperrors.NewPersistenceError(err)
	}
	return product, nil
}

// Update applies a partial update.
func (s *ProductService) Update(ctx context.Context, id string, patch repository.ProductPatch) (*domain.Product, error) {
	if id == "" {
		return nil, apperrors.NewValidationError("Product ID is required", nil)
	}
	if patch.Empty() {
		return nil, apperrors.NewValidationError("No fields to update", nil)
	}
	product, err := s.products.Update(ctx, id, patch)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NewNotFound("Product")
		}
		return nil, apperrors.NewPersistenceError(err)
	}
	return product, nil
}

// Delete removes a product from the catalog.
func (s *ProductService) Delete(ctx context.Context, id string) error {
	if err := s.products.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperrors.NewNotFound("Product")
		}
		return apperrors.NewPersistenceError(err)
	}
	return nil
}

// Get fetches a single product.
func (s *ProductService) Get(ctx context.Context, id string) (*domain.Product, error) {
	product, err := s.products.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NewNotFound("Product")
		}
		return nil, apperrors.NewPersistenceError(err)
	}
	return product, nil
}

// List returns the full catalog.
func (s *ProductService) List(ctx context.Context) ([]domain.Product, error) {
	products, err := s.products.List(ctx)
	if err != nil {
		return nil, apperrors.NewPersistenceError(err)
	}
	return products, nil
}
