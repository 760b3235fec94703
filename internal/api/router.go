package api

import (
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"

	"github.com/rolodex-hq/rolodex/internal/server"
)

// Rate limit for /api/users/me: 10 requests per minute per client IP.
const (
	meRateLimit  = 10
	meRateWindow = time.Minute
)

// NewRouter mounts all API routes under /api and returns the router.
func NewRouter(srv server.Server) *chi.Mux {
	r := chi.NewRouter()

	if origins := allowedOrigins(srv); len(origins) > 0 {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins:   origins,
			AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
			AllowCredentials: true,
			MaxAge:           300,
		}))
	}

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", healthHandler(srv).ServeHTTP)

		r.Route("/auth", func(r chi.Router) {
			r.Method(http.MethodPost, "/register", RegisterHandler(srv))
			r.Method(http.MethodPost, "/login", LoginHandler(srv))
			r.Method(http.MethodGet, "/confirmed_email/{token}", ConfirmEmailHandler(srv))
			r.Method(http.MethodPost, "/request_email", RequestEmailHandler(srv))
			r.Method(http.MethodPost, "/forgot_password", ForgotPasswordHandler(srv))
			r.Method(http.MethodPost, "/reset_password", ResetPasswordHandler(srv))
		})

		r.Route("/users", func(r chi.Router) {
			r.Use(rateLimit(meRateLimit, meRateWindow))
			r.Method(http.MethodGet, "/me", RequireUser(srv, MeHandler(srv)))
		})

		r.Route("/contacts", func(r chi.Router) {
			r.Method(http.MethodGet, "/", RequireUser(srv, ListContactsHandler(srv)))
			r.Method(http.MethodGet, "/search", RequireUser(srv, SearchContactHandler(srv)))
			r.Method(http.MethodGet, "/upcoming", RequireUser(srv, UpcomingBirthdaysHandler(srv)))
			r.Method(http.MethodPost, "/", RequireUser(srv, CreateContactHandler(srv)))
			r.Method(http.MethodPut, "/{contactID}", RequireUser(srv, UpdateContactHandler(srv)))
			r.Method(http.MethodDelete, "/{contactID}", RequireUser(srv, DeleteContactHandler(srv)))
		})
	})

	return r
}

func allowedOrigins(srv server.Server) []string {
	if srv.Config == nil || srv.Config.Server == nil {
		return nil
	}
	return srv.Config.Server.AllowedOrigins
}

// rateLimit builds an IP-keyed sliding window limiter with a JSON 429
// response carrying a Retry-After header.
func rateLimit(limit int, window time.Duration) func(http.Handler) http.Handler {
	return httprate.Limit(
		limit,
		window,
		httprate.WithKeyFuncs(httprate.KeyByIP),
		httprate.WithLimitHandler(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.Header().Set("Retry-After", fmt.Sprintf("%d", int(window.Seconds())))
			w.WriteHeader(http.StatusTooManyRequests)
			_, _ = w.Write([]byte(
				`{"error":"rate_limit_exceeded","detail":"Too many requests. Please try again later."}`))
		}),
	)
}

// healthHandler reports liveness and database reachability.
func healthHandler(srv server.Server) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sqlDB, err := srv.DB.DB()
		if err == nil {
			err = sqlDB.PingContext(r.Context())
		}
		if err != nil {
			srv.Logger.Error("health check failed", "error", err)
			http.Error(w, "unhealthy", http.StatusServiceUnavailable)
			return
		}
		respondMessage(w, srv.Logger, http.StatusOK, "ok")
	})
}
