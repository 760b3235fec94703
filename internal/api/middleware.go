package api

import (
	"context"
	"net/http"
	"strings"

	"github.com/rolodex-hq/rolodex/internal/cache"
	"github.com/rolodex-hq/rolodex/internal/server"
)

type contextKey string

const userContextKey contextKey = "rolodex.user"

// UserFromContext returns the authenticated user stored by RequireUser.
func UserFromContext(ctx context.Context) (*cache.CachedUser, bool) {
	user, ok := ctx.Value(userContextKey).(*cache.CachedUser)
	return user, ok
}

// RequireUser validates the bearer access token and loads the authenticated
// user into the request context.
//
// Lookup order:
//   - verify the JWT signature, expiry, and scope
//   - serve the identity from the Redis cache when present
//   - otherwise load from the database and repopulate the cache
//
// Any failure is a 401; the middleware never distinguishes a bad signature
// from an unknown user.
func RequireUser(srv server.Server, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			http.Error(w, "Missing authorization header", http.StatusUnauthorized)
			return
		}

		if !strings.HasPrefix(authHeader, "Bearer ") {
			http.Error(w, "Invalid authorization header format", http.StatusUnauthorized)
			return
		}

		token := strings.TrimPrefix(authHeader, "Bearer ")
		if token == "" {
			http.Error(w, "Empty bearer token", http.StatusUnauthorized)
			return
		}

		username, err := srv.Auth.VerifyAccessToken(token)
		if err != nil {
			srv.Logger.Warn("invalid access token",
				"path", r.URL.Path,
				"method", r.Method,
			)
			http.Error(w, "Could not validate credentials", http.StatusUnauthorized)
			return
		}

		var user *cache.CachedUser
		if srv.UserCache != nil {
			if cached, ok := srv.UserCache.Get(r.Context(), username); ok {
				user = cached
			}
		}

		if user == nil {
			dbUser, err := srv.Users.GetByUsername(r.Context(), username)
			if err != nil {
				srv.Logger.Warn("token subject not found",
					"username", username,
					"path", r.URL.Path,
				)
				http.Error(w, "Could not validate credentials", http.StatusUnauthorized)
				return
			}
			user = &cache.CachedUser{
				ID:        dbUser.ID,
				Username:  dbUser.Username,
				Email:     dbUser.Email,
				Avatar:    dbUser.Avatar,
				Confirmed: dbUser.Confirmed,
			}
			if srv.UserCache != nil {
				srv.UserCache.Set(r.Context(), dbUser)
			}
		}

		ctx := context.WithValue(r.Context(), userContextKey, user)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
