package controllers

import (
	"log/slog"
	"net/http"

	"devevent/internal/delivery/http/helpers"
	"devevent/internal/domain"
)

// ListPendingSuccessResponse is the success response envelope for GET /pending-events (200).
type ListPendingSuccessResponse struct {
	Data  []*domain.PendingEvent `json:"data"`
	Error *helpers.APIError      `json:"error"`
}

// ApproveEventSuccessResponse is the success response envelope for POST /pending-events/{id}/approve (200).
type ApproveEventSuccessResponse struct {
	Data  *domain.Event     `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// RejectEventResponse is the data payload for DELETE /pending-events/{id} (200).
type RejectEventResponse struct {
	Status string `json:"status"`
}

// RejectEventSuccessResponse is the success response envelope for DELETE /pending-events/{id} (200).
type RejectEventSuccessResponse struct {
	Data  RejectEventResponse `json:"data"`
	Error *helpers.APIError   `json:"error"`
}

type ModerationController struct {
	Logger  *slog.Logger
	Service domain.ModerationService
}

func NewModerationController(logger *slog.Logger, svc domain.ModerationService) *ModerationController {
	return &ModerationController{
		Logger:  logger,
		Service: svc,
	}
}

// ListPending godoc
// @Summary List pending submissions
// @Description Returns all submitted events awaiting review, newest first. Admin only.
// @Tags moderation
// @Produce json
// @Security BearerAuth
// @Success 200 {object} controllers.ListPendingSuccessResponse "data is an array of pending events"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /pending-events [get]
func (c *ModerationController) ListPending(w http.ResponseWriter, r *http.Request) {
	pending, err := c.Service.ListPending(r.Context())
	if err != nil {
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteDomainError(w, err)
		return
	}
	if pending == nil {
		pending = []*domain.PendingEvent{}
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, pending)
}

// Approve godoc
// @Summary Approve a pending submission
// @Description Promotes a pending submission into the public listing. The promotion is atomic: on a title collision with an approved event the submission stays pending and 409 is returned. Admin only.
// @Tags moderation
// @Produce json
// @Security BearerAuth
// @Param id path string true "Pending event ID (UUID)"
// @Success 200 {object} controllers.ApproveEventSuccessResponse "data contains the approved event"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 409 {object} helpers.APIResponse "error.code: duplicate_title (submission left pending)"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /pending-events/{id}/approve [post]
func (c *ModerationController) Approve(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing id")
		return
	}
	event, err := c.Service.Approve(r.Context(), id)
	if err != nil {
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteDomainError(w, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, event)
}

// Reject godoc
// @Summary Reject a pending submission
// @Description Deletes a pending submission permanently. Nothing is kept for audit. Admin only.
// @Tags moderation
// @Produce json
// @Security BearerAuth
// @Param id path string true "Pending event ID (UUID)"
// @Success 200 {object} controllers.RejectEventSuccessResponse "data contains status"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /pending-events/{id} [delete]
func (c *ModerationController) Reject(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing id")
		return
	}
	if err := c.Service.Reject(r.Context(), id); err != nil {
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteDomainError(w, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, RejectEventResponse{Status: "rejected"})
}
