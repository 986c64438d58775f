package http

import (
	"log/slog"
	"net/http"

	httpSwagger "github.com/swaggo/http-swagger"

	"devevent/internal/delivery/http/controllers"
	"devevent/internal/delivery/http/middleware"
	"devevent/internal/domain"
)

// NewRouter initializes the HTTP router with all application routes
func NewRouter(
	logger *slog.Logger,
	verifier domain.TokenVerifier,
	authController *controllers.AuthController,
	eventController *controllers.EventController,
	moderationController *controllers.ModerationController,
	bookingController *controllers.BookingController,
) *http.ServeMux {
	mux := http.NewServeMux()

	admin := middleware.RequireAdmin(verifier, logger)
	maybeAdmin := middleware.OptionalAdmin(verifier)

	// Auth
	mux.HandleFunc("POST /auth/verify-code", authController.VerifyCode)

	// Events
	mux.HandleFunc("GET /events", eventController.List)
	mux.HandleFunc("POST /events", maybeAdmin(eventController.Create))
	mux.HandleFunc("GET /events/{slug}", eventController.GetBySlug)
	mux.HandleFunc("GET /events/{slug}/similar", eventController.Similar)
	mux.HandleFunc("PUT /events/{id}", admin(eventController.Update))
	mux.HandleFunc("DELETE /events/{id}", admin(eventController.Delete))

	// Moderation
	mux.HandleFunc("GET /pending-events", admin(moderationController.ListPending))
	mux.HandleFunc("POST /pending-events/{id}/approve", admin(moderationController.Approve))
	mux.HandleFunc("DELETE /pending-events/{id}", admin(moderationController.Reject))

	// Bookings
	mux.HandleFunc("POST /bookings", bookingController.Create)
	mux.HandleFunc("GET /bookings", admin(bookingController.Stats))

	// Health
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	// Swagger
	mux.Handle("/swagger/", httpSwagger.WrapHandler)

	return mux
}
