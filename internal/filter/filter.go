package filter

import (
	"math"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/leolovestravel/vietnamtravel/internal/models"
)

// Apply derives the displayed tour list. Stages run in a fixed order, each
// narrowing or reordering the previous stage's output. The input slice is
// never modified.
func Apply(tours []models.Tour, state models.FilterState) []models.Tour {
	filtered := applyCategory(tours, state.ActiveFilter)
	filtered = applySearch(filtered, state.SearchQuery)
	filtered = applyPrice(filtered, state.PriceRange)

	return applySort(filtered, state.SortBy)
}

func applyCategory(tours []models.Tour, active string) []models.Tour {
	switch active {
	case "", models.FilterAll:
		return keep(tours, func(models.Tour) bool { return true })
	case models.FilterFeatured:
		return keep(tours, func(t models.Tour) bool { return t.Featured })
	default:
		return keep(tours, func(t models.Tour) bool { return t.Category == active })
	}
}

func applySearch(tours []models.Tour, query string) []models.Tour {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return tours
	}

	return keep(tours, func(t models.Tour) bool {
		return strings.Contains(strings.ToLower(t.Name), query) ||
			strings.Contains(strings.ToLower(t.Description), query) ||
			strings.Contains(strings.ToLower(t.Location), query) ||
			strings.Contains(strings.ToLower(t.Category), query)
	})
}

func applyPrice(tours []models.Tour, priceRange [2]float64) []models.Tour {
	return keep(tours, func(t models.Tour) bool {
		return t.Price >= priceRange[0] && t.Price <= priceRange[1]
	})
}

func applySort(tours []models.Tour, sortBy models.SortKey) []models.Tour {
	if len(tours) < 2 {
		return tours
	}

	switch sortBy {
	case models.SortPriceLow:
		sort.SliceStable(tours, func(i, j int) bool {
			return tours[i].Price < tours[j].Price
		})

	case models.SortPriceHigh:
		sort.SliceStable(tours, func(i, j int) bool {
			return tours[i].Price > tours[j].Price
		})

	case models.SortDuration:
		sort.SliceStable(tours, func(i, j int) bool {
			return ParseDays(tours[i].Duration) > ParseDays(tours[j].Duration)
		})

	case models.SortRating:
		sort.SliceStable(tours, func(i, j int) bool {
			return tours[i].RatingValue() > tours[j].RatingValue()
		})

	default:
		// Recommended: featured first, then best rated.
		sort.SliceStable(tours, func(i, j int) bool {
			if tours[i].Featured != tours[j].Featured {
				return tours[i].Featured
			}
			return tours[i].RatingValue() > tours[j].RatingValue()
		})
	}

	return tours
}

func keep(tours []models.Tour, match func(models.Tour) bool) []models.Tour {
	result := make([]models.Tour, 0, len(tours))
	for _, t := range tours {
		if match(t) {
			result = append(result, t)
		}
	}
	return result
}

var dayPattern = regexp.MustCompile(`(?i)(\d+)\s*days?`)

// ParseDays extracts N from strings like "5 days". Anything else is 0.
func ParseDays(duration string) int {
	m := dayPattern.FindStringSubmatch(duration)
	if m == nil {
		return 0
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return 0
	}
	return n
}

func Bounds(tours []models.Tour) (float64, float64) {
	if len(tours) == 0 {
		return 0, 0
	}

	lo, hi := tours[0].Price, tours[0].Price
	for _, t := range tours[1:] {
		if t.Price < lo {
			lo = t.Price
		}
		if t.Price > hi {
			hi = t.Price
		}
	}
	return lo, hi
}

// Reset returns the default state: every tour, recommended order.
func Reset(lo, hi float64) models.FilterState {
	return models.FilterState{
		ActiveFilter: models.FilterAll,
		PriceRange:   [2]float64{lo, hi},
		SortBy:       models.SortRecommended,
		ViewMode:     models.ViewGrid,
		Page:         1,
	}
}

// Normalize fills defaults and clamps the price range into [lo, hi] with
// PriceRange[0] <= PriceRange[1]. A zero range means "no price filter".
func Normalize(state models.FilterState, lo, hi float64) models.FilterState {
	if state.ActiveFilter == "" {
		state.ActiveFilter = models.FilterAll
	}
	if !state.SortBy.Valid() {
		state.SortBy = models.SortRecommended
	}
	if state.ViewMode != models.ViewList {
		state.ViewMode = models.ViewGrid
	}
	if state.Page < 1 {
		state.Page = 1
	}

	if state.PriceRange == [2]float64{} {
		state.PriceRange = [2]float64{lo, hi}
		return state
	}

	from, to := state.PriceRange[0], state.PriceRange[1]
	if math.IsNaN(from) {
		from = lo
	}
	if math.IsNaN(to) {
		to = hi
	}
	from, to = clamp(from, lo, hi), clamp(to, lo, hi)
	if from > to {
		from, to = to, from
	}
	state.PriceRange = [2]float64{from, to}
	return state
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
