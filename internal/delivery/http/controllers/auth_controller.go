package controllers

import (
	"errors"
	"log/slog"
	"net/http"

	"devevent/internal/delivery/http/helpers"
	"devevent/internal/domain"
)

// VerifyCodeRequest is the request body for POST /auth/verify-code.
type VerifyCodeRequest struct {
	Code string `json:"code"`
}

// Validate implements Validator.
func (v VerifyCodeRequest) Validate() []string {
	var errs []string
	if v.Code == "" {
		errs = append(errs, "code is required")
	}
	return errs
}

// VerifyCodeResponse is the data payload for POST /auth/verify-code (200).
type VerifyCodeResponse struct {
	Token string `json:"token"`
	Role  string `json:"role"`
}

// VerifyCodeSuccessResponse is the success response envelope for POST /auth/verify-code (200).
type VerifyCodeSuccessResponse struct {
	Data  VerifyCodeResponse `json:"data"`
	Error *helpers.APIError  `json:"error"`
}

type AuthController struct {
	Logger  *slog.Logger
	Service domain.AuthService
}

func NewAuthController(logger *slog.Logger, svc domain.AuthService) *AuthController {
	return &AuthController{
		Logger:  logger,
		Service: svc,
	}
}

// VerifyCode godoc
// @Summary Verify the admin access code
// @Description Exchanges the shared admin access code for a short-lived admin Bearer token. The code is compared against a server-side hash; a wrong or missing code yields 401.
// @Tags auth
// @Accept json
// @Produce json
// @Param body body VerifyCodeRequest true "Admin access code"
// @Success 200 {object} controllers.VerifyCodeSuccessResponse "data contains the admin token"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /auth/verify-code [post]
func (c *AuthController) VerifyCode(w http.ResponseWriter, r *http.Request) {
	var req VerifyCodeRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	token, err := c.Service.VerifyAdminCode(r.Context(), req.Code)
	if err != nil {
		if errors.Is(err, domain.ErrUnauthorized) {
			helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "invalid access code")
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, VerifyCodeResponse{Token: token, Role: domain.AdminRole})
}
