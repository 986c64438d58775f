package controllers

import (
	"log/slog"
	"net/http"

	"devevent/internal/delivery/http/helpers"
	"devevent/internal/domain"
)

// CreateBookingRequest is the request body for POST /bookings.
type CreateBookingRequest struct {
	EventID string `json:"event_id"`
	Email   string `json:"email"`
}

// Validate implements Validator.
func (c CreateBookingRequest) Validate() []string {
	var errs []string
	if c.EventID == "" {
		errs = append(errs, "event_id is required")
	}
	if c.Email == "" {
		errs = append(errs, "email is required")
	}
	return errs
}

// CreateBookingSuccessResponse is the success response envelope for POST /bookings (201).
type CreateBookingSuccessResponse struct {
	Data  *domain.Booking   `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// BookingStatsResponse is the data payload for GET /bookings. Bookings is set
// only when an event_id filter was given.
type BookingStatsResponse struct {
	Count    int               `json:"count"`
	Bookings []*domain.Booking `json:"bookings,omitempty"`
}

// BookingStatsSuccessResponse is the success response envelope for GET /bookings (200).
type BookingStatsSuccessResponse struct {
	Data  BookingStatsResponse `json:"data"`
	Error *helpers.APIError    `json:"error"`
}

type BookingController struct {
	Logger  *slog.Logger
	Service domain.BookingService
}

func NewBookingController(logger *slog.Logger, svc domain.BookingService) *BookingController {
	return &BookingController{
		Logger:  logger,
		Service: svc,
	}
}

// Create godoc
// @Summary Book a spot for an event
// @Description Records a booking for (event, email). The email is lowercased and trimmed before storage; booking the same event twice with the same email yields 409. A confirmation email is sent best-effort and never blocks the booking.
// @Tags bookings
// @Accept json
// @Produce json
// @Param body body CreateBookingRequest true "Event ID and attendee email"
// @Success 201 {object} controllers.CreateBookingSuccessResponse "data contains the booking"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 404 {object} helpers.APIResponse "error.code: event_not_found"
// @Failure 409 {object} helpers.APIResponse "error.code: duplicate_booking"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /bookings [post]
func (c *BookingController) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateBookingRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	booking, err := c.Service.Book(r.Context(), req.EventID, req.Email)
	if err != nil {
		if _, ok := domain.AsValidation(err); !ok {
			c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		}
		helpers.WriteDomainError(w, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, booking)
}

// Stats godoc
// @Summary Booking counts and listings
// @Description Without a filter, returns the total booking count across all events. With event_id, returns the count and the bookings for that event, newest first. Admin only.
// @Tags bookings
// @Produce json
// @Security BearerAuth
// @Param event_id query string false "Restrict to one event"
// @Success 200 {object} controllers.BookingStatsSuccessResponse "data contains count and optionally bookings"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /bookings [get]
func (c *BookingController) Stats(w http.ResponseWriter, r *http.Request) {
	eventID := r.URL.Query().Get("event_id")
	if eventID == "" {
		count, err := c.Service.CountAll(r.Context())
		if err != nil {
			c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
			helpers.WriteDomainError(w, err)
			return
		}
		helpers.WriteJSONSuccess(w, http.StatusOK, BookingStatsResponse{Count: count})
		return
	}

	count, err := c.Service.CountByEvent(r.Context(), eventID)
	if err != nil {
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteDomainError(w, err)
		return
	}
	bookings, err := c.Service.ListByEvent(r.Context(), eventID)
	if err != nil {
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteDomainError(w, err)
		return
	}
	if bookings == nil {
		bookings = []*domain.Booking{}
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, BookingStatsResponse{Count: count, Bookings: bookings})
}
