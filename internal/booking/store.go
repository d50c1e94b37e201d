package booking

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/leolovestravel/vietnamtravel/internal/models"
)

var (
	ErrNotFound  = errors.New("booking not found")
	ErrDuplicate = errors.New("booking reference already taken")
)

// Save never replaces an existing booking; it returns ErrDuplicate instead.
type Store interface {
	Save(ctx context.Context, b models.Booking) error
	Get(ctx context.Context, reference string) (models.Booking, error)
}

type MemoryStore struct {
	mu       sync.RWMutex
	bookings map[string]models.Booking
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{bookings: make(map[string]models.Booking)}
}

func (s *MemoryStore) Save(ctx context.Context, b models.Booking) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.bookings[b.Reference]; exists {
		return ErrDuplicate
	}
	s.bookings[b.Reference] = b
	return nil
}

func (s *MemoryStore) Get(ctx context.Context, reference string) (models.Booking, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	b, ok := s.bookings[reference]
	if !ok {
		return models.Booking{}, ErrNotFound
	}
	return b, nil
}

type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisStore(client *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{client: client, ttl: ttl}
}

func (s *RedisStore) Save(ctx context.Context, b models.Booking) error {
	data, err := json.Marshal(b)
	if err != nil {
		return err
	}
	ok, err := s.client.SetNX(ctx, key(b.Reference), data, s.ttl).Result()
	if err != nil {
		return err
	}
	if !ok {
		return ErrDuplicate
	}
	return nil
}

func (s *RedisStore) Get(ctx context.Context, reference string) (models.Booking, error) {
	data, err := s.client.Get(ctx, key(reference)).Bytes()
	if errors.Is(err, redis.Nil) {
		return models.Booking{}, ErrNotFound
	}
	if err != nil {
		return models.Booking{}, err
	}

	var b models.Booking
	if err := json.Unmarshal(data, &b); err != nil {
		return models.Booking{}, err
	}
	return b, nil
}

func key(reference string) string {
	return "booking:" + reference
}
