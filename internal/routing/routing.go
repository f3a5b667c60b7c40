package routing

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"tangled.org/brewguide.app/brewguide/internal/handlers"
	"tangled.org/brewguide.app/brewguide/internal/middleware"
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

	// Create CrossOriginProtection for CSRF protection on mutating routes
	cop := http.NewCrossOriginProtection()
	protect := func(fn http.HandlerFunc) http.Handler {
		return cop.Handler(fn)
	}

	// Operational endpoints
	mux.HandleFunc("GET /healthz", h.HandleHealth)
	mux.Handle("GET /metrics", promhttp.Handler())

	// Bean inventory
	mux.HandleFunc("GET /api/beans", h.HandleBeanList)
	mux.Handle("POST /api/beans", protect(h.HandleBeanCreate))
	mux.HandleFunc("GET /api/beans/{id}", h.HandleBeanGet)
	mux.Handle("PUT /api/beans/{id}", protect(h.HandleBeanUpdate))
	mux.Handle("DELETE /api/beans/{id}", protect(h.HandleBeanDelete))
	mux.Handle("POST /api/beans/{id}/decrement", protect(h.HandleBeanDecrement))
	mux.Handle("POST /api/beans/{id}/capacity", protect(h.HandleBeanCapacity))

	// Brewing methods
	mux.HandleFunc("GET /api/methods", h.HandleMethodList)
	mux.Handle("POST /api/methods", protect(h.HandleMethodCreate))
	mux.Handle("POST /api/methods/calculate", protect(h.HandleMethodCalculate))
	mux.HandleFunc("GET /api/methods/{id}", h.HandleMethodGet)
	mux.Handle("PUT /api/methods/{id}", protect(h.HandleMethodUpdate))
	mux.Handle("DELETE /api/methods/{id}", protect(h.HandleMethodDelete))
	mux.Handle("POST /api/methods/{id}/rescale", protect(h.HandleMethodRescale))

	// Brewing journal
	mux.HandleFunc("GET /api/notes", h.HandleNoteList)
	mux.Handle("POST /api/notes", protect(h.HandleNoteCreate))
	mux.HandleFunc("GET /api/notes/export", h.HandleNoteExport)
	mux.HandleFunc("GET /api/notes/{id}", h.HandleNoteGet)
	mux.Handle("PATCH /api/notes/{id}", protect(h.HandleNoteUpdate))
	mux.Handle("DELETE /api/notes/{id}", protect(h.HandleNoteDelete))

	// Inventory reports
	mux.HandleFunc("GET /api/inventory/stats", h.HandleInventoryStats)
	mux.HandleFunc("GET /api/inventory/freshness", h.HandleFreshnessReport)

	// Settings blobs
	mux.HandleFunc("GET /api/settings", h.HandleSettingsKeys)
	mux.HandleFunc("GET /api/settings/{key}", h.HandleSettingsGet)
	mux.Handle("PUT /api/settings/{key}", protect(h.HandleSettingsPut))
	mux.Handle("DELETE /api/settings/{key}", protect(h.HandleSettingsDelete))

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
