package dashboard

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/leolovestravel/vietnamtravel/internal/models"
)

type adminsFunc func(ctx context.Context, headers http.Header) ([]models.Admin, error)

func (f adminsFunc) ListAdmins(ctx context.Context, headers http.Header) ([]models.Admin, error) {
	return f(ctx, headers)
}

type categoriesFunc func(ctx context.Context, headers http.Header) ([]models.Category, error)

func (f categoriesFunc) Categories(ctx context.Context, headers http.Header) ([]models.Category, error) {
	return f(ctx, headers)
}

type staticTours []models.Tour

func (s staticTours) All() []models.Tour { return s }

var tours = staticTours{{ID: "a", Featured: true}, {ID: "b"}}

func TestLoadAllSources(t *testing.T) {
	agg := NewAggregator(
		adminsFunc(func(ctx context.Context, h http.Header) ([]models.Admin, error) {
			if h.Get("Authorization") != "Bearer t" {
				t.Errorf("headers not forwarded")
			}
			return []models.Admin{{ID: 1, Username: "leo"}}, nil
		}),
		categoriesFunc(func(ctx context.Context, h http.Header) ([]models.Category, error) {
			return []models.Category{{ID: 1, Name: "Luxury"}}, nil
		}),
		tours,
		Config{},
	)

	res := agg.Load(context.Background(), http.Header{"Authorization": {"Bearer t"}})
	if res.SourcesSucceeded != 2 || res.SourcesFailed != 0 {
		t.Fatalf("unexpected counts %+v", res)
	}
	if len(res.Admins) != 1 || len(res.Categories) != 1 || res.TourCount != 2 || res.FeaturedCount != 1 {
		t.Fatalf("unexpected result %+v", res)
	}
}

func TestLoadPartialFailure(t *testing.T) {
	agg := NewAggregator(
		adminsFunc(func(ctx context.Context, h http.Header) ([]models.Admin, error) {
			return nil, errors.New("forbidden")
		}),
		categoriesFunc(func(ctx context.Context, h http.Header) ([]models.Category, error) {
			return []models.Category{{ID: 1}}, nil
		}),
		tours,
		Config{},
	)

	res := agg.Load(context.Background(), nil)
	if res.SourcesFailed != 1 || res.FailedSources[0] != "admins" || res.Errors["admins"] == nil {
		t.Fatalf("expected admins failure, got %+v", res)
	}
	if len(res.Categories) != 1 {
		t.Fatalf("categories should still load")
	}
}

func TestLoadTimeout(t *testing.T) {
	slow := adminsFunc(func(ctx context.Context, h http.Header) ([]models.Admin, error) {
		<-ctx.Done()
		return nil, ctx.Err()
	})
	agg := NewAggregator(slow, categoriesFunc(func(ctx context.Context, h http.Header) ([]models.Category, error) {
		return nil, nil
	}), tours, Config{Timeout: 20 * time.Millisecond})

	start := time.Now()
	res := agg.Load(context.Background(), nil)
	if time.Since(start) > time.Second {
		t.Fatalf("timeout not applied")
	}
	if !errors.Is(res.Errors["admins"], context.DeadlineExceeded) {
		t.Fatalf("expected deadline exceeded, got %v", res.Errors["admins"])
	}
}
