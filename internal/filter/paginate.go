package filter

import "github.com/leolovestravel/vietnamtravel/internal/models"

const DefaultPageSize = 9

type Page struct {
	Tours      []models.Tour
	Number     int
	TotalPages int
	Total      int
}

// Paginate slices an already filtered list. Out-of-range page numbers are
// clamped to the nearest valid page.
func Paginate(tours []models.Tour, page, size int) Page {
	if size <= 0 {
		size = DefaultPageSize
	}

	total := len(tours)
	totalPages := (total + size - 1) / size
	if totalPages == 0 {
		totalPages = 1
	}
	if page < 1 {
		page = 1
	}
	if page > totalPages {
		page = totalPages
	}

	start := (page - 1) * size
	end := start + size
	if end > total {
		end = total
	}

	return Page{
		Tours:      tours[start:end],
		Number:     page,
		TotalPages: totalPages,
		Total:      total,
	}
}

// Pages lists 1..TotalPages for the pager control.
func (p Page) Pages() []int {
	pages := make([]int, p.TotalPages)
	for i := range pages {
		pages[i] = i + 1
	}
	return pages
}

func (p Page) HasPrev() bool { return p.Number > 1 }

func (p Page) HasNext() bool { return p.Number < p.TotalPages }
