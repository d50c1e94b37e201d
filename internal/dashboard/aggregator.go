package dashboard

import (
	"context"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/leolovestravel/vietnamtravel/internal/models"
)

type AdminSource interface {
	ListAdmins(ctx context.Context, headers http.Header) ([]models.Admin, error)
}

type CategorySource interface {
	Categories(ctx context.Context, headers http.Header) ([]models.Category, error)
}

type TourSource interface {
	All() []models.Tour
}

type Config struct {
	Timeout time.Duration
}

// Aggregator loads the admin dashboard panels concurrently. A failing panel
// is reported, never fatal.
type Aggregator struct {
	admins     AdminSource
	categories CategorySource
	tours      TourSource
	config     Config
}

type Result struct {
	Admins           []models.Admin
	Categories       []models.Category
	TourCount        int
	FeaturedCount    int
	SourcesQueried   int
	SourcesSucceeded int
	SourcesFailed    int
	FailedSources    []string
	Errors           map[string]error
}

func NewAggregator(admins AdminSource, categories CategorySource, tours TourSource, config Config) *Aggregator {
	if config.Timeout <= 0 {
		config.Timeout = 3 * time.Second
	}
	return &Aggregator{
		admins:     admins,
		categories: categories,
		tours:      tours,
		config:     config,
	}
}

func (a *Aggregator) Load(ctx context.Context, headers http.Header) *Result {
	loadCtx, cancel := context.WithTimeout(ctx, a.config.Timeout)
	defer cancel()

	result := &Result{
		SourcesQueried: 2,
		Errors:         make(map[string]error),
	}

	for _, t := range a.tours.All() {
		result.TourCount++
		if t.Featured {
			result.FeaturedCount++
		}
	}

	type sourceResult struct {
		source     string
		admins     []models.Admin
		categories []models.Category
		err        error
	}

	resultCh := make(chan sourceResult, 2)
	var wg sync.WaitGroup

	wg.Add(2)
	go func() {
		defer wg.Done()
		admins, err := a.admins.ListAdmins(loadCtx, headers)
		resultCh <- sourceResult{source: "admins", admins: admins, err: err}
	}()
	go func() {
		defer wg.Done()
		categories, err := a.categories.Categories(loadCtx, headers)
		resultCh <- sourceResult{source: "categories", categories: categories, err: err}
	}()

	go func() {
		wg.Wait()
		close(resultCh)
	}()

	for sr := range resultCh {
		if sr.err != nil {
			log.Printf("Dashboard source %s failed: %v", sr.source, sr.err)
			result.SourcesFailed++
			result.FailedSources = append(result.FailedSources, sr.source)
			result.Errors[sr.source] = sr.err
			continue
		}
		result.SourcesSucceeded++
		if sr.admins != nil {
			result.Admins = sr.admins
		}
		if sr.categories != nil {
			result.Categories = sr.categories
		}
	}

	return result
}
