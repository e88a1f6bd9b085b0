package redisstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/yardsale/storefront/internal/cart/domain"
)

type document struct {
	Items []domain.LineItem `json:"items"`
}

// Store keeps the serialized cart under a single Redis key, the same
// one-slot layout the file store uses.
type Store struct {
	client *redis.Client
	key    string
}

func New(addr, key string) *Store {
	client := redis.NewClient(&redis.Options{
		Addr:         addr,
		MinIdleConns: 1,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 5 * time.Second,
	})
	return &Store{client: client, key: key}
}

func (s *Store) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

func (s *Store) Load(ctx context.Context) ([]domain.LineItem, error) {
	val, err := s.client.Get(ctx, s.key).Result()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("redis get %q: %w", s.key, err)
	}

	var doc document
	if err := json.Unmarshal([]byte(val), &doc); err != nil {
		// Unreadable payload reads as no prior cart.
		return nil, nil
	}
	return doc.Items, nil
}

func (s *Store) Save(ctx context.Context, items []domain.LineItem) error {
	if items == nil {
		items = []domain.LineItem{}
	}

	data, err := json.Marshal(document{Items: items})
	if err != nil {
		return fmt.Errorf("encode cart: %w", err)
	}
	if err := s.client.Set(ctx, s.key, data, 0).Err(); err != nil {
		return fmt.Errorf("redis set %q: %w", s.key, err)
	}
	return nil
}

func (s *Store) Close() error {
	return s.client.Close()
}
