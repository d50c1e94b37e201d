package models

import "time"

type BookingStatus string

const (
	BookingPending   BookingStatus = "pending"
	BookingConfirmed BookingStatus = "confirmed"
)

type Booking struct {
	Reference  string        `json:"reference"`
	TourID     string        `json:"tourId"`
	TourName   string        `json:"tourName"`
	FullName   string        `json:"fullName"`
	Email      string        `json:"email"`
	Phone      string        `json:"phone"`
	TravelDate string        `json:"travelDate"`
	Travelers  int           `json:"travelers"`
	Notes      string        `json:"notes,omitempty"`
	UnitPrice  float64       `json:"unitPrice"`
	Total      float64       `json:"total"`
	Status     BookingStatus `json:"status"`
	CreatedAt  time.Time     `json:"createdAt"`
}
