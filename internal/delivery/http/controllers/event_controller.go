package controllers

import (
	"log/slog"
	"net/http"

	"devevent/internal/delivery/http/helpers"
	"devevent/internal/delivery/http/middleware"
	"devevent/internal/domain"
)

// CreateEventResponse is the data payload for POST /events. Exactly one of
// Event and Pending is set, depending on whether the caller was an admin.
type CreateEventResponse struct {
	Event   *domain.Event        `json:"event,omitempty"`
	Pending *domain.PendingEvent `json:"pending,omitempty"`
	Status  string               `json:"status"`
}

// CreateEventSuccessResponse is the success response envelope for POST /events (201).
type CreateEventSuccessResponse struct {
	Data  CreateEventResponse `json:"data"`
	Error *helpers.APIError   `json:"error"`
}

// ListEventsResponse is the data payload for GET /events (200).
type ListEventsResponse struct {
	Items      []*domain.Event        `json:"items"`
	Pagination helpers.PaginationMeta `json:"pagination"`
}

// ListEventsSuccessResponse is the success response envelope for GET /events (200).
type ListEventsSuccessResponse struct {
	Data  ListEventsResponse `json:"data"`
	Error *helpers.APIError  `json:"error"`
}

// GetEventSuccessResponse is the success response envelope for GET /events/{slug} (200).
type GetEventSuccessResponse struct {
	Data  *domain.SlugLookup `json:"data"`
	Error *helpers.APIError  `json:"error"`
}

// SimilarEventsSuccessResponse is the success response envelope for GET /events/{slug}/similar (200).
type SimilarEventsSuccessResponse struct {
	Data  []*domain.Event   `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// UpdateEventSuccessResponse is the success response envelope for PUT /events/{id} (200).
type UpdateEventSuccessResponse struct {
	Data  *domain.Event     `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// DeleteEventResponse is the data payload for DELETE /events/{id} (200).
type DeleteEventResponse struct {
	Status string `json:"status"`
}

// DeleteEventSuccessResponse is the success response envelope for DELETE /events/{id} (200).
type DeleteEventSuccessResponse struct {
	Data  DeleteEventResponse `json:"data"`
	Error *helpers.APIError   `json:"error"`
}

type EventController struct {
	Logger     *slog.Logger
	Events     domain.EventService
	Moderation domain.ModerationService
	Query      domain.QueryService
}

func NewEventController(logger *slog.Logger, events domain.EventService, moderation domain.ModerationService, query domain.QueryService) *EventController {
	return &EventController{
		Logger:     logger,
		Events:     events,
		Moderation: moderation,
		Query:      query,
	}
}

// Create godoc
// @Summary Create or submit an event
// @Description Accepts a multipart form with the event fields and an image file. Admin callers (valid admin Bearer token) create the event directly in the public listing. Anonymous callers submit it for review; it stays out of listings until approved. List fields (audience, agenda, tags) are JSON arrays of strings.
// @Tags events
// @Accept mpfd
// @Produce json
// @Security BearerAuth
// @Param title formData string true "Event title"
// @Param description formData string true "Short description"
// @Param overview formData string true "Long-form overview"
// @Param venue formData string true "Venue name"
// @Param location formData string true "City or address"
// @Param date formData string true "Event date (several formats accepted)"
// @Param time formData string true "Start time (12h or 24h)"
// @Param mode formData string true "online, offline, or hybrid"
// @Param organizer formData string true "Organizer name"
// @Param audience formData string true "JSON array of strings"
// @Param agenda formData string true "JSON array of strings"
// @Param tags formData string true "JSON array of strings"
// @Param image formData file true "Event image"
// @Success 201 {object} controllers.CreateEventSuccessResponse "data contains the created event or pending submission"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request (fields lists offending fields)"
// @Failure 409 {object} helpers.APIResponse "error.code: duplicate_title"
// @Failure 502 {object} helpers.APIResponse "error.code: upstream_error (image upload failed)"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events [post]
func (c *EventController) Create(w http.ResponseWriter, r *http.Request) {
	draft, err := helpers.ParseEventForm(r)
	if err != nil {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, err.Error())
		return
	}

	if middleware.IsAdmin(r.Context()) {
		event, err := c.Events.Create(r.Context(), draft)
		if err != nil {
			c.writeError(w, r, err)
			return
		}
		helpers.WriteJSONSuccess(w, http.StatusCreated, CreateEventResponse{Event: event, Status: "created"})
		return
	}

	pending, err := c.Moderation.Submit(r.Context(), draft, "")
	if err != nil {
		c.writeError(w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, CreateEventResponse{Pending: pending, Status: "submitted for review"})
}

// List godoc
// @Summary List approved events
// @Description Returns a paginated list of approved events, newest first. Pending submissions never appear here.
// @Tags events
// @Produce json
// @Param page query int false "Page number (default 1)"
// @Param page_size query int false "Page size (default 12, max 100)"
// @Success 200 {object} controllers.ListEventsSuccessResponse "data contains items and pagination"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events [get]
func (c *EventController) List(w http.ResponseWriter, r *http.Request) {
	params := helpers.ParsePagination(r)
	events, total, err := c.Events.List(r.Context(), params)
	if err != nil {
		c.writeError(w, r, err)
		return
	}
	if events == nil {
		events = []*domain.Event{}
	}
	meta := helpers.NewPaginationMeta(params.Page, params.PageSize, total)
	helpers.WriteJSONSuccess(w, http.StatusOK, ListEventsResponse{Items: events, Pagination: meta})
}

// GetBySlug godoc
// @Summary Get an event by slug
// @Description Resolves the slug against the approved store first, then the pending store. The response flags pending results with is_pending so detail pages can render a review banner.
// @Tags events
// @Produce json
// @Param slug path string true "Event slug"
// @Success 200 {object} controllers.GetEventSuccessResponse "data contains the event and is_pending"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{slug} [get]
func (c *EventController) GetBySlug(w http.ResponseWriter, r *http.Request) {
	slug := r.PathValue("slug")
	if slug == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing slug")
		return
	}
	lookup, err := c.Query.FindEventBySlug(r.Context(), slug)
	if err != nil {
		c.writeError(w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, lookup)
}

// Similar godoc
// @Summary List similar events
// @Description Returns approved events sharing at least one tag with the event identified by slug, ranked by shared-tag count then recency. The source event itself is excluded.
// @Tags events
// @Produce json
// @Param slug path string true "Event slug"
// @Success 200 {object} controllers.SimilarEventsSuccessResponse "data is an array of events"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{slug}/similar [get]
func (c *EventController) Similar(w http.ResponseWriter, r *http.Request) {
	slug := r.PathValue("slug")
	if slug == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing slug")
		return
	}
	events, err := c.Query.FindSimilarEvents(r.Context(), slug)
	if err != nil {
		c.writeError(w, r, err)
		return
	}
	if events == nil {
		events = []*domain.Event{}
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, events)
}

// Update godoc
// @Summary Update an event
// @Description Updates an approved event from a multipart form. Fields absent from the form are unchanged. Renaming regenerates the slug and is rejected with 409 if the new title collides with another event. Admin only.
// @Tags events
// @Accept mpfd
// @Produce json
// @Security BearerAuth
// @Param id path string true "Event ID (UUID)"
// @Success 200 {object} controllers.UpdateEventSuccessResponse "data contains the updated event"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 409 {object} helpers.APIResponse "error.code: duplicate_title"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{id} [put]
func (c *EventController) Update(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing id")
		return
	}
	upd, err := helpers.ParseEventUpdateForm(r)
	if err != nil {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, err.Error())
		return
	}
	event, err := c.Events.Update(r.Context(), id, upd)
	if err != nil {
		c.writeError(w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, event)
}

// Delete godoc
// @Summary Delete an event
// @Description Deletes an approved event and every booking referencing it. Admin only.
// @Tags events
// @Produce json
// @Security BearerAuth
// @Param id path string true "Event ID (UUID)"
// @Success 200 {object} controllers.DeleteEventSuccessResponse "data contains status"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{id} [delete]
func (c *EventController) Delete(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing id")
		return
	}
	if err := c.Events.Delete(r.Context(), id); err != nil {
		c.writeError(w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, DeleteEventResponse{Status: "deleted"})
}

func (c *EventController) writeError(w http.ResponseWriter, r *http.Request, err error) {
	if _, ok := domain.AsValidation(err); !ok {
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
	}
	helpers.WriteDomainError(w, err)
}
