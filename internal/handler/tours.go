package handler

import (
	"errors"
	"html/template"
	"math"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/leolovestravel/vietnamtravel/internal/catalog"
	"github.com/leolovestravel/vietnamtravel/internal/filter"
	"github.com/leolovestravel/vietnamtravel/internal/models"
	"github.com/leolovestravel/vietnamtravel/internal/web"
)

type sortOption struct {
	Value string
	Label string
}

var sortOptions = []sortOption{
	{string(models.SortRecommended), "Recommended"},
	{string(models.SortPriceLow), "Price: low to high"},
	{string(models.SortPriceHigh), "Price: high to low"},
	{string(models.SortDuration), "Longest first"},
	{string(models.SortRating), "Top rated"},
}

type ToursHandler struct {
	catalog  *catalog.Store
	pageSize int
}

func NewToursHandler(store *catalog.Store) *ToursHandler {
	return &ToursHandler{
		catalog:  store,
		pageSize: filter.DefaultPageSize,
	}
}

type toursPage struct {
	State       models.FilterState
	Categories  []string
	PriceMin    float64
	PriceMax    float64
	Page        filter.Page
	Cards       []web.Card
	Query       template.URL
	SortOptions []sortOption
}

var errNonFinitePrice = errors.New("price bounds must be finite numbers")

// parseFilterState reads the catalog query string. Unset min/max mean the
// full price range.
func parseFilterState(c echo.Context) (models.FilterState, error) {
	var (
		state          models.FilterState
		sortBy, view   string
		minP, maxP     float64
		hasMin, hasMax bool
	)

	err := echo.QueryParamsBinder(c).
		String("filter", &state.ActiveFilter).
		String("q", &state.SearchQuery).
		String("sort", &sortBy).
		String("view", &view).
		Int("page", &state.Page).
		Float64("min", &minP).
		Float64("max", &maxP).
		BindError()
	if err != nil {
		return state, err
	}

	for _, v := range []float64{minP, maxP} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return state, errNonFinitePrice
		}
	}

	state.SearchQuery = strings.TrimSpace(state.SearchQuery)
	state.SortBy = models.SortKey(sortBy)
	state.ViewMode = models.ViewMode(view)

	hasMin = c.QueryParam("min") != ""
	hasMax = c.QueryParam("max") != ""
	switch {
	case hasMin && hasMax:
		state.PriceRange = [2]float64{minP, maxP}
	case hasMin:
		state.PriceRange = [2]float64{minP, -1}
	case hasMax:
		state.PriceRange = [2]float64{-1, maxP}
	}
	return state, nil
}

func (h *ToursHandler) resolve(state models.FilterState) (models.FilterState, filter.Page, float64, float64) {
	tours := h.catalog.All()
	lo, hi := filter.Bounds(tours)

	if state.PriceRange[0] < 0 {
		state.PriceRange[0] = lo
	}
	if state.PriceRange[1] < 0 {
		state.PriceRange[1] = hi
	}
	state = filter.Normalize(state, lo, hi)

	page := filter.Paginate(filter.Apply(tours, state), state.Page, h.pageSize)
	state.Page = page.Number
	return state, page, lo, hi
}

func (h *ToursHandler) List(c echo.Context) error {
	state, err := parseFilterState(c)
	view := web.View{Title: "Package tours"}
	if err != nil {
		state = models.FilterState{}
		view.Error = "Some filter values were invalid and have been reset."
	}

	state, page, lo, hi := h.resolve(state)
	view.Data = toursPage{
		State:       state,
		Categories:  h.catalog.Categories(),
		PriceMin:    lo,
		PriceMax:    hi,
		Page:        page,
		Cards:       web.Cards(page.Tours),
		Query:       template.URL(encodeState(state)),
		SortOptions: sortOptions,
	}
	return render(c, http.StatusOK, "tours.html", view)
}

// encodeState is the query string shared by pager and view links; page and
// view are appended by the template.
func encodeState(state models.FilterState) string {
	q := url.Values{}
	q.Set("filter", state.ActiveFilter)
	if state.SearchQuery != "" {
		q.Set("q", state.SearchQuery)
	}
	q.Set("sort", string(state.SortBy))
	q.Set("min", strconv.FormatFloat(state.PriceRange[0], 'f', -1, 64))
	q.Set("max", strconv.FormatFloat(state.PriceRange[1], 'f', -1, 64))
	return q.Encode()
}

func (h *ToursHandler) APIList(c echo.Context) error {
	state, err := parseFilterState(c)
	if err != nil {
		return jsonError(c, http.StatusBadRequest, "invalid_request", "Failed to parse query: "+err.Error())
	}

	state, page, lo, hi := h.resolve(state)
	tours := page.Tours
	if tours == nil {
		tours = []models.Tour{}
	}

	return c.JSON(http.StatusOK, models.TourListResponse{
		Filters:    state,
		PriceMin:   lo,
		PriceMax:   hi,
		Total:      page.Total,
		Page:       page.Number,
		TotalPages: page.TotalPages,
		Tours:      tours,
	})
}

func (h *ToursHandler) APIGet(c echo.Context) error {
	tour, ok := h.catalog.ByID(c.Param("id"))
	if !ok {
		return jsonError(c, http.StatusNotFound, "not_found", "Tour not found")
	}
	return c.JSON(http.StatusOK, tour)
}
