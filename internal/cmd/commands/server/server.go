// Package server implements the `rolodex server` command.
package server

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hashicorp/go-hclog"

	"github.com/rolodex-hq/rolodex/internal/api"
	"github.com/rolodex-hq/rolodex/internal/cache"
	"github.com/rolodex-hq/rolodex/internal/cmd/base"
	"github.com/rolodex-hq/rolodex/internal/config"
	"github.com/rolodex-hq/rolodex/internal/db"
	intsrv "github.com/rolodex-hq/rolodex/internal/server"
	"github.com/rolodex-hq/rolodex/internal/services"
	"github.com/rolodex-hq/rolodex/pkg/mail"
)

type Command struct {
	*base.Command

	flagConfig string
}

func (c *Command) Synopsis() string {
	return "Run the rolodex API server"
}

func (c *Command) Help() string {
	return `Usage: rolodex server -config=<path>

  Starts the contacts API server with the configuration in the given HCL
  file.` + c.Flags().Help()
}

func (c *Command) Flags() *base.FlagSet {
	f := base.NewFlagSet(flag.NewFlagSet("server", flag.ExitOnError))

	f.StringVar(
		&c.flagConfig, "config", "config.hcl",
		"Path to the HCL configuration file",
	)

	return f
}

func (c *Command) Run(args []string) int {
	f := c.Flags()
	if err := f.Parse(args); err != nil {
		c.UI.Error(fmt.Sprintf("error parsing flags: %v", err))
		return 1
	}

	cfg, err := config.NewConfig(c.flagConfig)
	if err != nil {
		c.UI.Error(fmt.Sprintf("error loading configuration: %v", err))
		return 1
	}

	log := c.Log
	if level := hclog.LevelFromString(cfg.LogLevel); level != hclog.NoLevel {
		log.SetLevel(level)
	}

	gormDB, err := db.NewDB(*cfg.Postgres, log.Named("db"))
	if err != nil {
		c.UI.Error(fmt.Sprintf("error initializing database: %v", err))
		return 1
	}

	// The user cache is optional: without Redis every request hits the
	// database, but the server still works.
	var userCache *cache.UserCache
	userCache, err = cache.NewUserCache(cache.Config{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	}, log.Named("cache"))
	if err != nil {
		log.Warn("redis unavailable, user identity caching disabled", "error", err)
		userCache = nil
	}

	auth := services.NewAuthService(
		cfg.Auth.JWTSecret,
		time.Duration(cfg.Auth.AccessTokenTTLSeconds)*time.Second,
	)

	sender := mail.NewSender(mail.SenderConfig{
		SMTPHost:     cfg.SMTP.Host,
		SMTPPort:     cfg.SMTP.Port,
		SMTPUsername: cfg.SMTP.Username,
		SMTPPassword: cfg.SMTP.Password,
		FromAddress:  cfg.SMTP.FromAddress,
		FromName:     cfg.SMTP.FromName,
		UseTLS:       cfg.SMTP.UseTLS,
	})

	email, err := services.NewEmailService(sender, auth, cfg.Server.BaseURL, log.Named("mail"))
	if err != nil {
		c.UI.Error(fmt.Sprintf("error initializing email service: %v", err))
		return 1
	}

	srv := intsrv.Server{
		Config:    cfg,
		DB:        gormDB,
		Logger:    log,
		Auth:      auth,
		Users:     services.NewUserService(gormDB),
		Contacts:  services.NewContactService(gormDB),
		Email:     email,
		UserCache: userCache,
	}

	httpServer := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           api.NewRouter(srv),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("starting server", "addr", cfg.Server.Addr, "base_url", cfg.Server.BaseURL)
		errCh <- httpServer.ListenAndServe()
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		c.UI.Error(fmt.Sprintf("server error: %v", err))
		return 1
	case sig := <-sigCh:
		log.Info("shutting down", "signal", sig.String())
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(ctx); err != nil {
			c.UI.Error(fmt.Sprintf("error during shutdown: %v", err))
			return 1
		}
		if userCache != nil {
			if err := userCache.Close(); err != nil {
				log.Warn("error closing redis client", "error", err)
			}
		}
	}

	return 0
}
