package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/aws/aws-lambda-go/lambda"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"

	"github.com/jacentio/lattice/store"
	"github.com/jacentio/lattice/stream"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	awsCfg, err := awsconfig.LoadDefaultConfig(context.Background())
	if err != nil {
		logger.Error("failed to load AWS configuration", "error", err)
		os.Exit(1)
	}

	cfg := store.DefaultConfig()
	if v := os.Getenv("LATTICE_UNIQUE_TABLE"); v != "" {
		cfg.UniqueTable = v
	}

	st := store.New(dynamodb.NewFromConfig(awsCfg), cfg)
	janitor := stream.NewJanitor(st, logger)

	lambda.Start(janitor.HandleSoftDelete)
}
