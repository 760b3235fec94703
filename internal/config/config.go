// Package config loads and validates the rolodex HCL configuration.
package config

import (
	"fmt"
	"os"

	"github.com/hashicorp/go-multierror"
	"github.com/hashicorp/hcl/v2/hclsimple"
)

// Config is the top-level server configuration, loaded from an HCL file.
type Config struct {
	// Server configures the HTTP listener.
	Server *Server `hcl:"server,block"`

	// Postgres configures the database connection.
	Postgres *Postgres `hcl:"postgres,block"`

	// Redis configures the user identity cache.
	Redis *Redis `hcl:"redis,block"`

	// SMTP configures the outgoing mail connection.
	SMTP *SMTP `hcl:"smtp,block"`

	// Auth configures token signing and lifetimes.
	Auth *Auth `hcl:"auth,block"`

	// LogLevel is the minimum log level (trace, debug, info, warn, error).
	LogLevel string `hcl:"log_level,optional"`
}

// Server configures the HTTP listener.
type Server struct {
	// Addr is the listen address, e.g. "127.0.0.1:8000".
	Addr string `hcl:"addr,optional"`

	// BaseURL is the externally reachable URL used in email links.
	BaseURL string `hcl:"base_url,optional"`

	// AllowedOrigins lists the origins allowed to make credentialed
	// cross-origin requests. Empty disables CORS handling.
	AllowedOrigins []string `hcl:"allowed_origins,optional"`
}

// Postgres configures the database connection.
type Postgres struct {
	Host     string `hcl:"host,optional"`
	Port     int    `hcl:"port,optional"`
	User     string `hcl:"user,optional"`
	Password string `hcl:"password,optional"`
	DBName   string `hcl:"dbname,optional"`
	SSLMode  string `hcl:"sslmode,optional"`
}

// Redis configures the user identity cache.
type Redis struct {
	Addr     string `hcl:"addr,optional"`
	Password string `hcl:"password,optional"`
	DB       int    `hcl:"db,optional"`
}

// SMTP configures outgoing verification and password reset mail.
type SMTP struct {
	Host        string `hcl:"host,optional"`
	Port        string `hcl:"port,optional"`
	Username    string `hcl:"username,optional"`
	Password    string `hcl:"password,optional"`
	FromAddress string `hcl:"from_address,optional"`
	FromName    string `hcl:"from_name,optional"`
	UseTLS      bool   `hcl:"use_tls,optional"`
}

// Auth configures token signing and lifetimes.
type Auth struct {
	// JWTSecret signs all tokens. Prefer setting ROLODEX_JWT_SECRET over
	// storing the secret in the config file.
	JWTSecret string `hcl:"jwt_secret,optional"`

	// AccessTokenTTLSeconds is the access token lifetime. Default 3600.
	AccessTokenTTLSeconds int `hcl:"access_token_ttl_seconds,optional"`
}

// NewConfig parses the config file at path and applies defaults and
// environment overrides.
func NewConfig(path string) (*Config, error) {
	var cfg Config
	if err := hclsimple.DecodeFile(path, nil, &cfg); err != nil {
		return nil, fmt.Errorf("error decoding config file: %w", err)
	}

	cfg.applyDefaults()
	cfg.applyEnvOverrides()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Server == nil {
		c.Server = &Server{}
	}
	if c.Server.Addr == "" {
		c.Server.Addr = "127.0.0.1:8000"
	}
	if c.Server.BaseURL == "" {
		c.Server.BaseURL = "http://" + c.Server.Addr
	}

	if c.Postgres == nil {
		c.Postgres = &Postgres{}
	}
	if c.Postgres.Host == "" {
		c.Postgres.Host = "localhost"
	}
	if c.Postgres.Port == 0 {
		c.Postgres.Port = 5432
	}
	if c.Postgres.SSLMode == "" {
		c.Postgres.SSLMode = "disable"
	}

	if c.Redis == nil {
		c.Redis = &Redis{}
	}
	if c.Redis.Addr == "" {
		c.Redis.Addr = "localhost:6379"
	}

	if c.SMTP == nil {
		c.SMTP = &SMTP{}
	}
	if c.SMTP.Port == "" {
		c.SMTP.Port = "587"
	}

	if c.Auth == nil {
		c.Auth = &Auth{}
	}
	if c.Auth.AccessTokenTTLSeconds == 0 {
		c.Auth.AccessTokenTTLSeconds = 3600
	}

	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
}

// applyEnvOverrides lets secrets come from the environment instead of the
// config file.
func (c *Config) applyEnvOverrides() {
	if v := os.Getenv("ROLODEX_JWT_SECRET"); v != "" {
		c.Auth.JWTSecret = v
	}
	if v := os.Getenv("ROLODEX_POSTGRES_PASSWORD"); v != "" {
		c.Postgres.Password = v
	}
	if v := os.Getenv("ROLODEX_SMTP_PASSWORD"); v != "" {
		c.SMTP.Password = v
	}
	if v := os.Getenv("ROLODEX_REDIS_PASSWORD"); v != "" {
		c.Redis.Password = v
	}
}

// Validate accumulates every configuration problem instead of stopping at the
// first one.
func (c *Config) Validate() error {
	var result *multierror.Error

	if c.Auth.JWTSecret == "" {
		result = multierror.Append(result, fmt.Errorf(
			"auth.jwt_secret (or ROLODEX_JWT_SECRET) is required"))
	}
	if c.Postgres.User == "" {
		result = multierror.Append(result, fmt.Errorf("postgres.user is required"))
	}
	if c.Postgres.DBName == "" {
		result = multierror.Append(result, fmt.Errorf("postgres.dbname is required"))
	}
	if c.SMTP.Host == "" {
		result = multierror.Append(result, fmt.Errorf("smtp.host is required"))
	}
	if c.SMTP.FromAddress == "" {
		result = multierror.Append(result, fmt.Errorf("smtp.from_address is required"))
	}

	return result.ErrorOrNil()
}
