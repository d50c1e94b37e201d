package web

import "github.com/leolovestravel/vietnamtravel/internal/models"

// Card is one tour tile; Index drives the staggered reveal delay.
type Card struct {
	Index int
	Tour  models.Tour
}

func Cards(tours []models.Tour) []Card {
	cards := make([]Card, len(tours))
	for i, t := range tours {
		cards[i] = Card{Index: i, Tour: t}
	}
	return cards
}
