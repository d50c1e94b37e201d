package handler

import (
	"bytes"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/leolovestravel/vietnamtravel/internal/booking"
	"github.com/leolovestravel/vietnamtravel/internal/catalog"
	"github.com/leolovestravel/vietnamtravel/internal/models"
	"github.com/leolovestravel/vietnamtravel/internal/timezone"
	"github.com/leolovestravel/vietnamtravel/internal/web"
)

type BookingHandler struct {
	bookings *booking.Service
	catalog  *catalog.Store
	siteURL  string
	now      func() time.Time
}

func NewBookingHandler(bookings *booking.Service, store *catalog.Store, siteURL string, now func() time.Time) *BookingHandler {
	if now == nil {
		now = time.Now
	}
	return &BookingHandler{
		bookings: bookings,
		catalog:  store,
		siteURL:  siteURL,
		now:      now,
	}
}

func (h *BookingHandler) formView(req models.BookingRequest, errMsg string) web.View {
	return web.View{
		Title: "Book a tour",
		Error: errMsg,
		Data: map[string]interface{}{
			"Tours":   h.catalog.All(),
			"Form":    req,
			"MinDate": timezone.Today(h.now()).Format("2006-01-02"),
		},
	}
}

func (h *BookingHandler) Form(c echo.Context) error {
	req := models.BookingRequest{
		TourID:    c.QueryParam("tour"),
		Travelers: 1,
	}
	return render(c, http.StatusOK, "booking.html", h.formView(req, ""))
}

func (h *BookingHandler) Submit(c echo.Context) error {
	var req models.BookingRequest
	if err := c.Bind(&req); err != nil {
		return render(c, http.StatusBadRequest, "booking.html", h.formView(req, "Could not read the booking form."))
	}
	if err := c.Validate(&req); err != nil {
		return render(c, http.StatusBadRequest, "booking.html", h.formView(req, validationMessage(err)))
	}

	b, err := h.bookings.Create(c.Request().Context(), req)
	if err != nil {
		var ve models.ValidationError
		if errors.As(err, &ve) {
			return render(c, http.StatusBadRequest, "booking.html", h.formView(req, validationMessage(err)))
		}
		log.Printf("Create booking: %v", err)
		return render(c, http.StatusInternalServerError, "booking.html", h.formView(req, "We could not save your booking. Please try again."))
	}

	log.Printf("Booking %s created for tour %s (%d travellers)", b.Reference, b.TourID, b.Travelers)
	return c.Redirect(http.StatusSeeOther, "/booking-confirmation?ref="+b.Reference)
}

func (h *BookingHandler) Confirmation(c echo.Context) error {
	b, err := h.bookings.Get(c.Request().Context(), c.QueryParam("ref"))
	if err != nil {
		if !errors.Is(err, booking.ErrNotFound) {
			log.Printf("Load booking: %v", err)
		}
		return notFound(c)
	}
	return render(c, http.StatusOK, "confirmation.html", web.View{Title: "Booking confirmed", Data: b})
}

func (h *BookingHandler) Ticket(c echo.Context) error {
	b, err := h.bookings.Get(c.Request().Context(), c.Param("ref"))
	if err != nil {
		return notFound(c)
	}

	var buf bytes.Buffer
	if err := booking.WriteTicket(&buf, b, h.siteURL); err != nil {
		return err
	}

	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="booking-`+b.Reference+`.pdf"`)
	return c.Blob(http.StatusOK, "application/pdf", buf.Bytes())
}
