package router

import (
	"net/http"
	"strings"

	"pos-sync/internal/handler"
	"pos-sync/internal/middleware"

	"github.com/rs/zerolog"
)

// New creates a new HTTP router with all routes and middleware configured.
func New(
	sessionHandler *handler.SessionHandler,
	productHandler *handler.ProductHandler,
	apiKey string,
	logger zerolog.Logger,
) http.Handler {
	mux := http.NewServeMux()

	// Health check endpoint (no authentication required)
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status": "healthy"}`))
	})

	// Product handler function
	productRouteHandler := func(w http.ResponseWriter, r *http.Request) {
		// Check if this is a request for a specific product ID
		if r.URL.Path != "/api/products" && r.URL.Path != "/api/products/" {
			productHandler.GetByID(w, r)
			return
		}
		productHandler.GetAll(w, r)
	}

	// Register product routes (both with and without trailing slash)
	mux.HandleFunc("/api/products", productRouteHandler)
	mux.HandleFunc("/api/products/", productRouteHandler)

	// Session handler function
	sessionRouteHandler := func(w http.ResponseWriter, r *http.Request) {
		// Route based on method and path
		if r.Method == http.MethodPost && (r.URL.Path == "/api/sessions" || r.URL.Path == "/api/sessions/") {
			sessionHandler.Create(w, r)
			return
		}

		// Cart submission on a specific session
		if strings.HasSuffix(r.URL.Path, "/cart") {
			sessionHandler.SyncCart(w, r)
			return
		}

		// Check if this is a request for a specific session ID
		if strings.HasPrefix(r.URL.Path, "/api/sessions/") && r.URL.Path != "/api/sessions/" {
			sessionHandler.GetByID(w, r)
			return
		}

		http.Error(w, "not found", http.StatusNotFound)
	}

	// Register session routes (both with and without trailing slash)
	mux.HandleFunc("/api/sessions", sessionRouteHandler)
	mux.HandleFunc("/api/sessions/", sessionRouteHandler)

	// Apply middleware in order: Recovery -> Logging -> CORS -> APIKeyAuth
	var handler http.Handler = mux
	handler = middleware.APIKeyAuth(apiKey, logger)(handler)
	handler = middleware.CORS(handler)
	handler = middleware.Logging(logger)(handler)
	handler = middleware.Recovery(logger)(handler)

	return handler
}
