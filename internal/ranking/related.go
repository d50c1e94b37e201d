package ranking

import (
	"math"
	"sort"

	"github.com/leolovestravel/vietnamtravel/internal/models"
)

const (
	CategoryWeight = 0.5
	PriceWeight    = 0.3
	RatingWeight   = 0.2
)

type Scored struct {
	Tour  models.Tour
	Score float64
}

// Related returns up to limit tours most similar to target, excluding target.
// Higher score = more similar.
func Related(target models.Tour, tours []models.Tour, limit int) []models.Tour {
	if limit <= 0 || len(tours) == 0 {
		return []models.Tour{}
	}

	maxPrice := findMaxPrice(tours)

	scored := make([]Scored, 0, len(tours))
	for _, t := range tours {
		if t.ID == target.ID {
			continue
		}
		scored = append(scored, Scored{Tour: t, Score: CalculateSimilarity(target, t, maxPrice)})
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})

	if len(scored) > limit {
		scored = scored[:limit]
	}

	result := make([]models.Tour, len(scored))
	for i, s := range scored {
		result[i] = s.Tour
	}
	return result
}

func CalculateSimilarity(target, candidate models.Tour, maxPrice float64) float64 {
	categoryScore := 0.0
	if target.Category == candidate.Category {
		categoryScore = 100
	}

	priceScore := 0.0
	if maxPrice > 0 {
		priceScore = (1 - math.Abs(target.Price-candidate.Price)/maxPrice) * 100
	}

	ratingScore := (candidate.RatingValue() / 5) * 100
	score := (categoryScore * CategoryWeight) + (priceScore * PriceWeight) + (ratingScore * RatingWeight)

	return math.Round(score*100) / 100
}

func findMaxPrice(tours []models.Tour) float64 {
	maxPrice := 0.0
	for _, t := range tours {
		if t.Price > maxPrice {
			maxPrice = t.Price
		}
	}
	return maxPrice
}
