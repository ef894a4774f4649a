package main

import (
	"context"
	"log/slog"
	"os"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"

	"github.com/jacentio/lattice/auth"
	"github.com/jacentio/lattice/config"
	"github.com/jacentio/lattice/dynamo"
	"github.com/jacentio/lattice/hierarchy"
	"github.com/jacentio/lattice/httpapi"
	"github.com/jacentio/lattice/mail"
	"github.com/jacentio/lattice/store"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.Load()
	if err != nil {
		logger.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(context.Background())
	if err != nil {
		logger.Error("failed to load AWS configuration", "error", err)
		os.Exit(1)
	}

	st := store.New(dynamodb.NewFromConfig(awsCfg), cfg.Store)
	engine := hierarchy.New(dynamo.NewAdapter(st), logger)
	tokens := auth.NewTokens([]byte(cfg.TokenSecret), cfg.TokenTTL)
	mailer := mail.NewSMTPSender(cfg.SMTP)

	server := httpapi.New(engine, tokens, mailer, logger)

	logger.Info("listening", "addr", cfg.Addr)
	if err := server.Router().Run(cfg.Addr); err != nil {
		logger.Error("server stopped", "error", err)
		os.Exit(1)
	}
}
