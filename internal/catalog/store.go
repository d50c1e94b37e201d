package catalog

import (
	"encoding/json"
	"errors"
	"regexp"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/leolovestravel/vietnamtravel/internal/catalog/data"
	"github.com/leolovestravel/vietnamtravel/internal/filter"
	"github.com/leolovestravel/vietnamtravel/internal/models"
)

var (
	ErrNotFound    = errors.New("tour not found")
	ErrDuplicateID = errors.New("tour id already exists")
)

// Store holds the tour offerings shown on the public site. Reads hand out
// copies; only the admin screens call the mutating methods.
type Store struct {
	mu    sync.RWMutex
	tours []models.Tour
}

func NewStore() (*Store, error) {
	var tours []models.Tour
	if err := json.Unmarshal(data.Tours, &tours); err != nil {
		return nil, err
	}
	return NewStoreFromTours(tours), nil
}

func NewStoreFromTours(tours []models.Tour) *Store {
	s := &Store{tours: make([]models.Tour, len(tours))}
	copy(s.tours, tours)
	return s
}

func (s *Store) All() []models.Tour {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Tour, len(s.tours))
	copy(out, s.tours)
	return out
}

func (s *Store) ByID(id string) (models.Tour, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, t := range s.tours {
		if t.ID == id {
			return t, true
		}
	}
	return models.Tour{}, false
}

func (s *Store) ByCategory(category string) []models.Tour {
	return s.where(func(t models.Tour) bool {
		return strings.EqualFold(t.Category, category)
	})
}

func (s *Store) Featured() []models.Tour {
	return s.where(func(t models.Tour) bool { return t.Featured })
}

// Categories lists the distinct category tags in catalog order.
func (s *Store) Categories() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	seen := make(map[string]bool)
	result := make([]string, 0)
	for _, t := range s.tours {
		if !seen[t.Category] {
			seen[t.Category] = true
			result = append(result, t.Category)
		}
	}
	return result
}

func (s *Store) PriceBounds() (float64, float64) {
	return filter.Bounds(s.All())
}

func (s *Store) Create(t models.Tour) (models.Tour, error) {
	if err := t.Validate(); err != nil {
		return models.Tour{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if t.ID == "" {
		t.ID = slugify(t.Name) + "-" + uuid.NewString()[:8]
	}
	for _, existing := range s.tours {
		if existing.ID == t.ID {
			return models.Tour{}, ErrDuplicateID
		}
	}
	if t.Highlights == nil {
		t.Highlights = []string{}
	}

	s.tours = append(s.tours, t)
	return t, nil
}

func (s *Store) Update(id string, t models.Tour) (models.Tour, error) {
	if err := t.Validate(); err != nil {
		return models.Tour{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.tours {
		if s.tours[i].ID == id {
			t.ID = id
			s.tours[i] = t
			return t, nil
		}
	}
	return models.Tour{}, ErrNotFound
}

func (s *Store) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.tours {
		if s.tours[i].ID == id {
			s.tours = append(s.tours[:i], s.tours[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}

func (s *Store) where(keep func(models.Tour) bool) []models.Tour {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]models.Tour, 0)
	for _, t := range s.tours {
		if keep(t) {
			result = append(result, t)
		}
	}
	return result
}

var nonSlug = regexp.MustCompile(`[^a-z0-9]+`)

func slugify(name string) string {
	slug := strings.Trim(nonSlug.ReplaceAllString(strings.ToLower(name), "-"), "-")
	if slug == "" {
		return "tour"
	}
	return slug
}
