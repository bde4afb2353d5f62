package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/spec-kit/commerce-service/internal/domain"
)

// CartRepository stores per-user carts as Redis hashes keyed by product id.
type CartRepository interface {
	Get(ctx context.Context, userID string) ([]domain.CartItem, error)
	Put(ctx context.Context, userID string, item domain.CartItem) error
	Remove(ctx context.Context, userID, productID string) error
	Clear(ctx context.Context, userID string) error
}

type cartRepository struct {
	client *redis.Client
}

// NewCartRepository returns a Redis-backed implementation.
func NewCartRepository(client *redis.Client) CartRepository {
	return &cartRepository{client: client}
}

func cartKey(userID string) string {
	return fmt.Sprintf("cart:%s", userID)
}

func (r *cartRepository) Get(ctx context.Context, userID string) ([]domain.CartItem, error) {
	fields, err := r.client.HGetAll(ctx, cartKey(userID)).Result()
	if err != nil {
		return nil, err
	}
	items := make([]domain.CartItem, 0, len(fields))
	for _, raw := range fields {
		var item domain.CartItem
		if err := json.Unmarshal([]byte(raw), &item); err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, nil
}

func (r *cartRepository) Put(ctx context.Context, userID string, item domain.CartItem) error {
	raw, err := json.Marshal(item)
	if err != nil {
		return err
	}
	return r.client.HSet(ctx, cartKey(userID), item.ProductID, raw).Err()
}

func (r *cartRepository) Remove(ctx context.Context, userID, productID string) error {
	removed, err := r.client.HDel(ctx, cartKey(userID), productID).Result()
	if err != nil {
		return err
	}
	if removed == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *cartRepository) Clear(ctx context.Context, userID string) error {
	return r.client.Del(ctx, cartKey(userID)).Err()
}
