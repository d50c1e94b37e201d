package models

const (
	FilterAll      = "all"
	FilterFeatured = "featured"
)

type SortKey string

const (
	SortRecommended SortKey = "recommended"
	SortPriceLow    SortKey = "price-low"
	SortPriceHigh   SortKey = "price-high"
	SortDuration    SortKey = "duration"
	SortRating      SortKey = "rating"
)

func (s SortKey) Valid() bool {
	switch s {
	case SortRecommended, SortPriceLow, SortPriceHigh, SortDuration, SortRating:
		return true
	}
	return false
}

type ViewMode string

const (
	ViewGrid ViewMode = "grid"
	ViewList ViewMode = "list"
)

type FilterState struct {
	ActiveFilter string     `json:"activeFilter" query:"filter"`
	SearchQuery  string     `json:"searchQuery" query:"q"`
	PriceRange   [2]float64 `json:"priceRange"`
	SortBy       SortKey    `json:"sortBy" query:"sort"`
	ViewMode     ViewMode   `json:"viewMode" query:"view"`
	Page         int        `json:"page" query:"page"`
}

type BookingRequest struct {
	TourID     string `json:"tourId" form:"tourId" validate:"required"`
	FullName   string `json:"fullName" form:"fullName" validate:"required,min=2,max=100"`
	Email      string `json:"email" form:"email" validate:"required,email"`
	Phone      string `json:"phone" form:"phone" validate:"required,min=6,max=20"`
	TravelDate string `json:"travelDate" form:"travelDate" validate:"required,datetime=2006-01-02"`
	Travelers  int    `json:"travelers" form:"travelers" validate:"required,min=1,max=20"`
	Notes      string `json:"notes" form:"notes" validate:"max=1000"`
}

type ContactRequest struct {
	Name    string `json:"name" form:"name" validate:"required,min=2,max=100"`
	Email   string `json:"email" form:"email" validate:"required,email"`
	Subject string `json:"subject" form:"subject" validate:"max=200"`
	Message string `json:"message" form:"message" validate:"required,min=10,max=5000"`
}

type NewsletterRequest struct {
	Email string `json:"email" form:"email" validate:"required,email"`
}

type LoginRequest struct {
	Username string `json:"username" form:"username" validate:"required"`
	Password string `json:"password" form:"password" validate:"required"`
}

type ChangePasswordRequest struct {
	OldPassword     string `json:"old_password" form:"old_password" validate:"required"`
	NewPassword     string `json:"new_password" form:"new_password" validate:"required"`
	ConfirmPassword string `json:"-" form:"confirm_password"`
}

const MinPasswordLength = 6

func (r ChangePasswordRequest) Validate() error {
	if len(r.NewPassword) < MinPasswordLength {
		return ErrPasswordTooShort
	}
	if r.NewPassword != r.ConfirmPassword {
		return ErrPasswordMismatch
	}
	return nil
}

type CreateAdminRequest struct {
	Username string `json:"username" form:"username" validate:"required,min=3,max=50"`
	Email    string `json:"email" form:"email" validate:"required,email"`
	Password string `json:"password" form:"password" validate:"required,min=6"`
	Role     Role   `json:"role" form:"role" validate:"required,oneof=admin superadmin"`
}

type ValidationError string

func (e ValidationError) Error() string {
	return string(e)
}

const (
	ErrMissingTourName  ValidationError = "tour name is required"
	ErrNegativePrice    ValidationError = "price must not be negative"
	ErrMissingCategory  ValidationError = "category is required"
	ErrRatingOutOfRange ValidationError = "rating must be between 0 and 5"
	ErrPasswordTooShort ValidationError = "password must be at least 6 characters"
	ErrPasswordMismatch ValidationError = "passwords do not match"
	ErrTravelDatePast   ValidationError = "travel date must not be in the past"
	ErrUnknownTour      ValidationError = "selected tour does not exist"
	ErrPriceRange       ValidationError = "minimum price must not exceed maximum price"
	ErrMissingName      ValidationError = "name is required"
)
