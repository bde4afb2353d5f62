package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/spec-kit/commerce-service/internal/auth"
	"github.com/spec-kit/commerce-service/internal/domain"
	"github.com/spec-kit/commerce-service/internal/events"
	"github.com/spec-kit/commerce-service/internal/repository"
	apperrors "github.com/spec-kit/commerce-service/pkg/util"
)

// OrderService owns checkout and order lifecycle logic. The principal passed
// in is only used where identity is a business input (order ownership); role
// checks never happen here.
type OrderService struct {
	orders     repository.OrderRepository
	products   repository.ProductRepository
	carts      repository.CartRepository
	dispatcher events.Dispatcher
}

// NewOrderService builds the service.
func NewOrderService(orders repository.OrderRepository, products repository.ProductRepository,
	carts repository.CartRepository, dispatcher events.Dispatcher) *OrderService {
	return &OrderService{orders: orders, products: products, carts: carts, dispatcher: dispatcher}
}

// Place checks out the caller's cart: re-reads the catalog for current
// prices, snapshots line items, computes the total, stores the order and
// clears the cart.
func (s *OrderService) Place(ctx context.Context, principal *auth.Principal) (*domain.Order, error) {
	items, err := s.carts.Get(ctx, principal.SubjectID)
	if err != nil {
		return nil, apperrors.NewPersistenceError(err)
	}
	if len(items) == 0 {
		return nil, apperrors.NewValidationError("cart is empty", nil)
	}

	orderItems := make([]domain.OrderItem, 0, len(items))
	var total float64
	for _, item := range items {
		product, err := s.products.GetByID(ctx, item.ProductID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return nil, apperrors.NewValidationError("cart references a product that no longer exists",
					map[string]any{"product_id": item.ProductID})
			}
			return nil, apperrors.NewPersistenceError(err)
		}
		if product.Stock < item.Quantity {
			return nil, apperrors.NewValidationError("insufficient stock",
				map[string]any{"product_id": item.ProductID, "available": product.Stock})
		}
		orderItems = append(orderItems, domain.OrderItem{
			ProductID: product.ID,
			Name:      product.Name,
			UnitPrice: product.Price,
			Quantity:  item.Quantity,
		})
		total += product.Price * float64(item.Quantity)
	}

	now := time.Now().UTC()
	order := &domain.Order{
		ID:          uuid.NewString(),
		UserID:      principal.SubjectID,
		Items:       orderItems,
		TotalAmount: total,
		Status:      domain.OrderStatusPending,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.orders.Create(ctx, order); err != nil {
		return nil, apperrors.NewPersistenceError(err)
	}
	if err := s.carts.Clear(ctx, principal.SubjectID); err != nil {
		return nil, apperrors.NewPersistenceError(err)
	}

	_ = s.dispatcher.Publish(ctx, events.Event{
		ID:        uuid.NewString(),
		Type:      events.EventOrderPlaced,
		Actor:     events.Actor{SubjectID: principal.SubjectID, Roles: principal.Roles},
		Timestamp: now,
		Payload: events.OrderPlacedPayload{
			OrderID:     order.ID,
			UserID:      order.UserID,
			TotalAmount: order.TotalAmount,
			ItemCount:   len(order.Items),
		},
	})
	return order, nil
}

// List returns every order.
func (s *OrderService) List(ctx context.Context) ([]domain.Order, error) {
	orders, err := s.orders.List(ctx)
	if err != nil {
		return nil, apperrors.NewPersistenceError(err)
	}
	return orders, nil
}

// ListByUser returns the orders owned by the given subject.
func (s *OrderService) ListByUser(ctx context.Context, userID string) ([]domain.Order, error) {
	orders, err := s.orders.ListByUser(ctx, userID)
	if err != nil {
		return nil, apperrors.NewPersistenceError(err)
	}
	return orders, nil
}

// UpdateStatus moves an order to a new lifecycle state.
func (s *OrderService) UpdateStatus(ctx context.Context, principal *auth.Principal, id, rawStatus string) (*domain.Order, error) {
	status, ok := domain.ParseOrderStatus(rawStatus)
	if !ok {
		return nil, apperrors.NewValidationError("Bad Request: Status is required and must be a string.",
			map[string]any{"status": rawStatus})
	}

	previous, err := s.orders.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NewNotFound("Order")
		}
		return nil, apperrors.NewPersistenceError(err)
	}

	order, err := s.orders.UpdateStatus(ctx, id, status)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NewNotFound("Order")
		}
		return nil, apperrors.NewPersistenceError(err)
	}

	_ = s.dispatcher.Publish(ctx, events.Event{
		ID:        uuid.NewString(),
		Type:      events.EventOrderStatusChanged,
		Actor:     events.Actor{SubjectID: principal.SubjectID, Roles: principal.Roles},
		Timestamp: time.Now().UTC(),
		Payload: events.OrderStatusChangedPayload{
			OrderID:   order.ID,
			OldStatus: previous.Status,
			NewStatus: order.Status,
		},
	})
	return order, nil
}
