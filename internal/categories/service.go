package categories

import (
	"context"
	"log"
	"net/http"
	"strings"

	"github.com/leolovestravel/vietnamtravel/internal/cache"
	"github.com/leolovestravel/vietnamtravel/internal/models"
)

type Remote interface {
	BaseURL() string
	GetCategories(ctx context.Context, headers http.Header) ([]models.Category, error)
	AddCategory(ctx context.Context, headers http.Header, name string) error
	UpdateCategory(ctx context.Context, headers http.Header, id int, name string) error
	DeleteCategory(ctx context.Context, headers http.Header, id int) error
}

// Service fronts the remote category endpoints with a read cache.
type Service struct {
	remote Remote
	cache  cache.Cache
}

func NewService(remote Remote, c cache.Cache) *Service {
	if c == nil {
		c = cache.NewNoOpCache()
	}
	return &Service{remote: remote, cache: c}
}

func (s *Service) Categories(ctx context.Context, headers http.Header) ([]models.Category, error) {
	if cached, ok := s.cache.GetCategories(ctx, s.remote.BaseURL()); ok {
		return cached, nil
	}

	list, err := s.remote.GetCategories(ctx, headers)
	if err != nil {
		return nil, err
	}
	if err := s.cache.SetCategories(ctx, s.remote.BaseURL(), list); err != nil {
		log.Printf("Cache categories: %v", err)
	}
	return list, nil
}

func (s *Service) Add(ctx context.Context, headers http.Header, name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return models.ErrMissingName
	}
	if err := s.remote.AddCategory(ctx, headers, name); err != nil {
		return err
	}
	s.invalidate(ctx)
	return nil
}

func (s *Service) Update(ctx context.Context, headers http.Header, id int, name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return models.ErrMissingName
	}
	if err := s.remote.UpdateCategory(ctx, headers, id, name); err != nil {
		return err
	}
	s.invalidate(ctx)
	return nil
}

func (s *Service) Delete(ctx context.Context, headers http.Header, id int) error {
	if err := s.remote.DeleteCategory(ctx, headers, id); err != nil {
		return err
	}
	s.invalidate(ctx)
	return nil
}

func (s *Service) invalidate(ctx context.Context) {
	if err := s.cache.Invalidate(ctx, s.remote.BaseURL()); err != nil {
		log.Printf("Invalidate category cache: %v", err)
	}
}
