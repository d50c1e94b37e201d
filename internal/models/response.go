package models

type TourListResponse struct {
	Filters    FilterState `json:"filters"`
	PriceMin   float64     `json:"priceMin"`
	PriceMax   float64     `json:"priceMax"`
	Total      int         `json:"total"`
	Page       int         `json:"page"`
	TotalPages int         `json:"totalPages"`
	Tours      []Tour      `json:"tours"`
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Code    int    `json:"code"`
}
