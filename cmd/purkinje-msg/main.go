// Package main contains the entrypoint for the purkinje-msg command-line tool.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"time"

	"go.uber.org/zap"

	"github.com/purkinje/go-messages/extension/zaplogger"
	"github.com/purkinje/go-messages/internal/cli"
)

func run() error {
	config, err := cli.ParseConfig()
	if err != nil {
		return fmt.Errorf("purkinje-msg.main: failed to parse config, %w", err)
	}

	logger, err := zaplogger.New(config.LogLevel)
	if err != nil {
		return fmt.Errorf("purkinje-msg.main: failed to initialize logger, %w", err)
	}

	//nolint:errcheck // No need for this error to come up if it happens.
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	root := cli.NewRootCommand(cli.App{
		Config: *config,
		Logger: logger,
		Clock:  time.Now,
	})

	if err := root.ExecuteContext(ctx); err != nil {
		logger.Error("purkinje-msg failed", zap.Error(err))
		return err
	}

	return nil
}

func main() {
	if err := run(); err != nil {
		os.Exit(1)
	}
}
