package http

import (
	"log/slog"
	"net/http"

	"eventflow/internal/delivery/http/controllers"
	"eventflow/internal/delivery/http/middleware"
	"eventflow/internal/domain"

	httpSwagger "github.com/swaggo/http-swagger"
)

// NewRouter initializes the HTTP router with all application routes
func NewRouter(actionController *controllers.ActionController, calendarController *controllers.CalendarController) *http.ServeMux {
	mux := http.NewServeMux()

	// Action endpoint
	mux.HandleFunc("/exec", actionController.Exec)
	mux.HandleFunc("/{$}", actionController.Exec)

	// Calendar
	mux.HandleFunc("GET /events/{eventID}/calendar.ics", calendarController.GetEventCalendar)

	// Swagger
	mux.Handle("/swagger/", httpSwagger.WrapHandler)

	return mux
}

// NewHandler wraps the router with the middleware chain, outermost first:
// logging, panic recovery, CORS, optional token identification.
func NewHandler(logger *slog.Logger, verifier domain.TokenVerifier, mux *http.ServeMux) http.Handler {
	var h http.Handler = mux
	h = middleware.Identify(verifier, logger)(h)
	h = middleware.CORS(h)
	h = middleware.Recover(logger, h)
	return middleware.LoggingMiddleware(logger, h)
}
