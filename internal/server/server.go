package server

import (
	"github.com/hashicorp/go-hclog"
	"gorm.io/gorm"

	"github.com/rolodex-hq/rolodex/internal/cache"
	"github.com/rolodex-hq/rolodex/internal/config"
	"github.com/rolodex-hq/rolodex/internal/services"
)

// Server contains the server configuration and the shared dependencies the
// API handlers close over.
type Server struct {
	// Config is the config for the server.
	Config *config.Config

	// DB is the database for the server.
	DB *gorm.DB

	// Logger is the logger for the server.
	Logger hclog.Logger

	// Auth issues and verifies tokens.
	Auth *services.AuthService

	// Users is the user business logic.
	Users *services.UserService

	// Contacts is the contact business logic.
	Contacts *services.ContactService

	// Email sends verification and password reset mail.
	Email *services.EmailService

	// UserCache is the Redis cache of authenticated user identities. May be
	// nil, in which case every request hits the database.
	UserCache *cache.UserCache
}
