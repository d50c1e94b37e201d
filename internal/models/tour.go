package models

type Tour struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Location    string   `json:"location"`
	Price       float64  `json:"price"`
	Duration    string   `json:"duration"`
	Category    string   `json:"category"`
	Featured    bool     `json:"featured"`
	Rating      *float64 `json:"rating,omitempty"`
	ReviewCount *int     `json:"reviewCount,omitempty"`
	Highlights  []string `json:"highlights"`
	Image       string   `json:"image"`
}

// RatingValue treats a missing rating as zero.
func (t Tour) RatingValue() float64 {
	if t.Rating == nil {
		return 0
	}
	return *t.Rating
}

func (t Tour) Reviews() int {
	if t.ReviewCount == nil {
		return 0
	}
	return *t.ReviewCount
}

func (t Tour) Validate() error {
	if t.Name == "" {
		return ErrMissingTourName
	}
	if t.Price < 0 {
		return ErrNegativePrice
	}
	if t.Category == "" {
		return ErrMissingCategory
	}
	if t.Rating != nil && (*t.Rating < 0 || *t.Rating > 5) {
		return ErrRatingOutOfRange
	}
	return nil
}
