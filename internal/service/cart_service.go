package service

import (
	"context"
	"errors"

	"github.com/spec-kit/commerce-service/internal/domain"
	"github.com/spec-kit/commerce-service/internal/repository"
	apperrors "github.com/spec-kit/commerce-service/pkg/util"
)

// CartService owns cart mutation logic for the authenticated caller.
type CartService struct {
	carts    repository.CartRepository
	products repository.ProductRepository
}

// NewCartService builds the service.
func NewCartService(carts repository.CartRepository, products repository.ProductRepository) *CartService {
	return &CartService{carts: carts, products: products}
}

// Get returns the caller's cart.
func (s *CartService) Get(ctx context.Context, userID string) ([]domain.CartItem, error) {
	items, err := s.carts.Get(ctx, userID)
	if err != nil {
		return nil, apperrors.NewPersistenceError(err)
	}
	return items, nil
}

// Add puts a product into the cart, caching name and price for display.
func (s *CartService) Add(ctx context.Context, userID, productID string, quantity int) (*domain.CartItem, error) {
	if quantity <= 0 {
		return nil, apperrors.NewValidationError("quantity must be positive", nil)
	}
	product, err := s.products.GetByID(ctx, productID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NewNotFound("Product")
		}
		return nil, apperrors.NewPersistenceError(err)
	}
	item := domain.CartItem{
		ProductID: product.ID,
		Name:      product.Name,
		UnitPrice: product.Price,
		Quantity:  quantity,
	}
	if err := s.carts.Put(ctx, userID, item); err != nil {
		return nil, apperrors.NewPersistenceError(err)
	}
	return &item, nil
}

// UpdateQuantity changes the quantity of an item already in the cart.
func (s *CartService) UpdateQuantity(ctx context.Context, userID, productID string, quantity int) (*domain.CartItem, error) {
	if quantity <= 0 {
		return nil, apperrors.NewValidationError("quantity must be positive", nil)
	}
	items, err := s.carts.Get(ctx, userID)
	if err != nil {
		return nil, apperrors.NewPersistenceError(err)
	}
	for _, item := range items {
		if item.ProductID == productID {
			item.Quantity = quantity
			if err := s.carts.Put(ctx, userID, item); err != nil {
				return nil, apperrors.NewPersistenceError(err)
			}
			return &item, nil
		}
	}
	return nil, apperrors.NewNotFound("Cart item")
}

// Remove deletes an item from the cart.
func (s *CartService) Remove(ctx context.Context, userID, productID string) error {
	if err := s.carts.Remove(ctx, userID, productID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperrors.NewNotFound("Cart item")
		}
		return apperrors.NewPersistenceError(err)
	}
	return nil
}
