package http

import (
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"market-stand-admin/internal/metrics"
)

// Routes holds the handlers mounted by NewRouter. StatusChecks is nil when
// no database is configured and the /api/status endpoints are then absent.
type Routes struct {
	Pages        *PageHandler
	StatusChecks *StatusCheckHandler
	Metrics      *metrics.Metrics
	CORSOrigins  []string
}

// NewRouter builds the service router: admin pages, the /api JSON surface,
// health and metrics.
func NewRouter(routes Routes) *mux.Router {
	router := mux.NewRouter().UseEncodedPath()
	router.Use(routes.Metrics.Middleware)

	router.HandleFunc("/healthz", healthz).Methods(http.MethodGet)
	if routes.Metrics != nil {
		router.Handle("/metrics", routes.Metrics.Handler()).Methods(http.MethodGet)
	}

	api := router.PathPrefix("/api").Subrouter()
	api.Use(CORSMiddleware(routes.CORSOrigins))
	api.PathPrefix("/").Methods(http.MethodOptions).HandlerFunc(preflight)
	if routes.StatusChecks != nil {
		RegisterStatusCheckRoutes(api, routes.StatusChecks)
	} else {
		api.HandleFunc("/", (&StatusCheckHandler{}).Root).Methods(http.MethodGet)
	}

	if routes.Pages != nil {
		RegisterPageRoutes(router, routes.Pages)
	}
	return router
}

func healthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func preflight(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusNoContent)
}

// CORSMiddleware adds CORS headers for the allowed origins. "*" allows any origin.
func CORSMiddleware(allowed []string) mux.MiddlewareFunc {
	allowAll := len(allowed) == 0
	set := make(map[string]bool, len(allowed))
	for _, o := range allowed {
		if o == "*" {
			allowAll = true
		}
		set[strings.TrimRight(o, "/")] = true
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin := r.Header.Get("Origin")
			switch {
			case allowAll:
				w.Header().Set("Access-Control-Allow-Origin", "*")
			case origin != "" && set[origin]:
				w.Header().Set("Access-Control-Allow-Origin", origin)
				w.Header().Set("Access-Control-Allow-Credentials", "true")
				w.Header().Add("Vary", "Origin")
			}
			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

			next.ServeHTTP(w, r)
		})
	}
}
