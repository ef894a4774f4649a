// Package config loads service settings from the environment.
package config

import (
	"errors"
	"os"
	"strconv"
	"time"

	"github.com/jacentio/lattice/mail"
	"github.com/jacentio/lattice/store"
)

// Config holds everything the API server needs at startup.
type Config struct {
	// Addr is the listen address. Default ":8080".
	Addr string

	// TokenSecret signs bearer tokens. Required.
	TokenSecret string

	// TokenTTL is the token lifetime. Default one hour.
	TokenTTL time.Duration

	// Store configures the DynamoDB-backed store.
	Store store.Config

	// SMTP configures the bug-report mail sender.
	SMTP mail.SMTPConfig
}

// Load reads the configuration from environment variables.
func Load() (Config, error) {
	cfg := Config{
		Addr:        envOr("LATTICE_ADDR", ":8080"),
		TokenSecret: os.Getenv("LATTICE_TOKEN_SECRET"),
		TokenTTL:    time.Hour,
		Store:       store.DefaultConfig(),
		SMTP: mail.SMTPConfig{
			Host:     os.Getenv("LATTICE_SMTP_HOST"),
			Port:     587,
			Username: os.Getenv("LATTICE_SMTP_USERNAME"),
			Password: os.Getenv("LATTICE_SMTP_PASSWORD"),
			From:     os.Getenv("LATTICE_SMTP_FROM"),
			Receiver: os.Getenv("LATTICE_SMTP_RECEIVER"),
		},
	}

	if v := os.Getenv("LATTICE_TOKEN_TTL"); v != "" {
		ttl, err := time.ParseDuration(v)
		if err != nil {
			return Config{}, errors.New("LATTICE_TOKEN_TTL must be a duration such as 1h")
		}
		cfg.TokenTTL = ttl
	}

	if v := os.Getenv("LATTICE_SMTP_PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return Config{}, errors.New("LATTICE_SMTP_PORT must be a number")
		}
		cfg.SMTP.Port = port
	}

	if v := os.Getenv("LATTICE_UNIQUE_TABLE"); v != "" {
		cfg.Store.UniqueTable = v
	}

	if cfg.TokenSecret == "" {
		return Config{}, errors.New("LATTICE_TOKEN_SECRET is required")
	}

	return cfg, nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
