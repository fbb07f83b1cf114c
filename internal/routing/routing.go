package routing

import (
	"net/http"

	"brewshare/internal/handlers"
	"brewshare/internal/middleware"

	"github.com/rs/zerolog"
)

// Config holds the configuration needed for setting up routes
type Config struct {
	Handlers *handlers.Handler
	Logger   zerolog.Logger
}

// SetupRouter creates and configures the HTTP router with all routes and middleware
func SetupRouter(cfg Config) http.Handler {
	h := cfg.Handlers
	mux := http.NewServeMux()

	// Paste-import endpoint: accepts shared text or a raw JSON document
	mux.HandleFunc("POST /api/import", h.HandleImport)

	// Coffee bean routes
	mux.HandleFunc("GET /api/beans", h.HandleBeanList)
	mux.HandleFunc("POST /api/beans", h.HandleBeanCreate)
	mux.HandleFunc("DELETE /api/beans/{id}", h.HandleBeanDelete)
	mux.HandleFunc("GET /api/beans/{id}/share", h.HandleBeanShare)

	// Brewing method routes
	mux.HandleFunc("GET /api/methods", h.HandleMethodList)
	mux.HandleFunc("POST /api/methods", h.HandleMethodCreate)
	mux.HandleFunc("DELETE /api/methods/{id}", h.HandleMethodDelete)
	mux.HandleFunc("GET /api/methods/{id}/share", h.HandleMethodShare)
	mux.HandleFunc("GET /api/methods/{id}/json", h.HandleMethodJSON)
	mux.HandleFunc("GET /api/methods/{id}/optimization", h.HandleMethodOptimization)

	// Brewing note routes
	mux.HandleFunc("GET /api/notes", h.HandleNoteList)
	mux.HandleFunc("POST /api/notes", h.HandleNoteCreate)
	mux.HandleFunc("DELETE /api/notes/{id}", h.HandleNoteDelete)
	mux.HandleFunc("GET /api/notes/{id}/share", h.HandleNoteShare)

	// Catch-all 404 handler - must be last, catches any unmatched routes
	mux.HandleFunc("/", h.HandleNotFound)

	// Apply middleware in order (outermost first, innermost last)
	var handler http.Handler = mux

	// 1. Limit request body size (innermost - runs first on request)
	handler = middleware.LimitBodyMiddleware(handler)

	// 2. Apply rate limiting
	rateLimitConfig := middleware.NewDefaultRateLimitConfig()
	handler = middleware.RateLimitMiddleware(rateLimitConfig)(handler)

	// 3. Apply security headers
	handler = middleware.SecurityHeadersMiddleware(handler)

	// 4. Apply logging middleware (outermost - wraps everything)
	handler = middleware.LoggingMiddleware(cfg.Logger)(handler)

	return handler
}
