// Package cache holds the Redis-backed cache of authenticated user
// identities, keyed by username.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/hashicorp/go-hclog"
	"github.com/redis/go-redis/v9"

	"github.com/rolodex-hq/rolodex/pkg/models"
)

// UserTTL is how long a cached identity stays valid.
const UserTTL = time.Hour

// CachedUser is the subset of the user row stored in Redis. The bearer
// middleware serves it on cache hits instead of querying the database.
type CachedUser struct {
	ID        uint   `json:"id"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	Avatar    string `json:"avatar,omitempty"`
	Confirmed bool   `json:"confirmed"`
}

// Config holds Redis connection configuration.
type Config struct {
	Addr     string // Redis server address (host:port)
	Password string // Redis password (optional)
	DB       int    // Redis database number
}

// UserCache caches user identities in Redis. All operations are best-effort:
// a Redis outage degrades to database lookups, it never fails a request.
type UserCache struct {
	client *redis.Client
	ttl    time.Duration
	log    hclog.Logger
}

// NewUserCache connects to Redis and returns the cache.
func NewUserCache(cfg Config, log hclog.Logger) (*UserCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         cfg.Addr,
		Password:     cfg.Password,
		DB:           cfg.DB,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	return &UserCache{
		client: client,
		ttl:    UserTTL,
		log:    log,
	}, nil
}

// NewUserCacheWithClient wraps an existing Redis client. Used by tests with
// miniredis.
func NewUserCacheWithClient(client *redis.Client, log hclog.Logger) *UserCache {
	return &UserCache{
		client: client,
		ttl:    UserTTL,
		log:    log,
	}
}

func userKey(username string) string {
	return "user:" + username
}

// Get returns the cached identity for username, or (nil, false) on a miss.
func (c *UserCache) Get(ctx context.Context, username string) (*CachedUser, bool) {
	data, err := c.client.Get(ctx, userKey(username)).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.log.Warn("redis get failed", "key", userKey(username), "error", err)
		}
		return nil, false
	}

	var user CachedUser
	if err := json.Unmarshal(data, &user); err != nil {
		c.log.Warn("corrupt cache entry, dropping", "key", userKey(username), "error", err)
		c.Invalidate(ctx, username)
		return nil, false
	}
	return &user, true
}

// Set stores the user's identity for UserTTL.
func (c *UserCache) Set(ctx context.Context, user *models.User) {
	cached := CachedUser{
		ID:        user.ID,
		Username:  user.Username,
		Email:     user.Email,
		Avatar:    user.Avatar,
		Confirmed: user.Confirmed,
	}
	data, err := json.Marshal(cached)
	if err != nil {
		c.log.Warn("failed to marshal cache entry", "error", err)
		return
	}
	if err := c.client.Set(ctx, userKey(user.Username), data, c.ttl).Err(); err != nil {
		c.log.Warn("redis set failed", "key", userKey(user.Username), "error", err)
	}
}

// Invalidate drops the cached identity for username.
func (c *UserCache) Invalidate(ctx context.Context, username string) {
	if err := c.client.Del(ctx, userKey(username)).Err(); err != nil {
		c.log.Warn("redis del failed", "key", userKey(username), "error", err)
	}
}

// Close releases the Redis connection.
func (c *UserCache) Close() error {
	return c.client.Close()
}
