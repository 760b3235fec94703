package api

import (
	"net/http"

	"github.com/rolodex-hq/rolodex/internal/server"
)

// MeHandler returns the authenticated user's identity. The identity comes
// from the bearer middleware, which serves it from the Redis cache when
// possible. The route is rate limited in the router.
func MeHandler(srv server.Server) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, ok := UserFromContext(r.Context())
		if !ok {
			http.Error(w, "Could not validate credentials", http.StatusUnauthorized)
			return
		}

		respondJSON(w, srv.Logger, http.StatusOK, user)
	})
}
