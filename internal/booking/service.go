package booking

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/leolovestravel/vietnamtravel/internal/models"
	"github.com/leolovestravel/vietnamtravel/internal/timezone"
)

type TourLookup interface {
	ByID(id string) (models.Tour, bool)
}

const referenceAttempts = 5

type Service struct {
	tours  TourLookup
	store  Store
	now    func() time.Time
	newRef func() string
}

func NewService(tours TourLookup, store Store, now func() time.Time) *Service {
	if now == nil {
		now = time.Now
	}
	return &Service{tours: tours, store: store, now: now, newRef: newReference}
}

// Create checks the request against the catalog and the calendar, prices it
// and stores it under a fresh reference. Field-level checks are the
// validator's job.
func (s *Service) Create(ctx context.Context, req models.BookingRequest) (models.Booking, error) {
	tour, ok := s.tours.ByID(req.TourID)
	if !ok {
		return models.Booking{}, models.ErrUnknownTour
	}

	date, err := timezone.ParseDate(req.TravelDate)
	if err != nil {
		return models.Booking{}, err
	}
	now := s.now()
	if date.Before(timezone.Today(now)) {
		return models.Booking{}, models.ErrTravelDatePast
	}

	b := models.Booking{
		TourID:     tour.ID,
		TourName:   tour.Name,
		FullName:   strings.TrimSpace(req.FullName),
		Email:      strings.TrimSpace(req.Email),
		Phone:      strings.TrimSpace(req.Phone),
		TravelDate: req.TravelDate,
		Travelers:  req.Travelers,
		Notes:      strings.TrimSpace(req.Notes),
		UnitPrice:  tour.Price,
		Total:      tour.Price * float64(req.Travelers),
		Status:     models.BookingPending,
		CreatedAt:  now,
	}

	for i := 0; i < referenceAttempts; i++ {
		b.Reference = s.newRef()
		err := s.store.Save(ctx, b)
		if err == nil {
			return b, nil
		}
		if !errors.Is(err, ErrDuplicate) {
			return models.Booking{}, err
		}
	}
	return models.Booking{}, fmt.Errorf("booking: no free reference after %d attempts", referenceAttempts)
}

// newReference is the short code customers quote back to the agency.
func newReference() string {
	return strings.ToUpper(uuid.NewString()[:8])
}

func (s *Service) Get(ctx context.Context, reference string) (models.Booking, error) {
	return s.store.Get(ctx, strings.ToUpper(strings.TrimSpace(reference)))
}
