// Package cli implements the purkinje-msg command-line tool, used to
// build and inspect the messages exchanged with the test runner.
package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/purkinje/go-messages/extension/opentelemetry"
	"github.com/purkinje/go-messages/extension/zaplogger"
	"github.com/purkinje/go-messages/message"
	"github.com/purkinje/go-messages/serde"
)

// App contains the dependencies of the commands.
type App struct {
	Config Config
	Logger *zap.Logger
	Clock  message.Clock
}

// NewRootCommand returns the purkinje-msg root command.
func NewRootCommand(app App) *cobra.Command {
	if app.Logger == nil {
		app.Logger = zap.NewNop()
	}

	if app.Clock == nil {
		app.Clock = time.Now
	}

	root := &cobra.Command{
		Use:   "purkinje-msg",
		Short: "Encode and decode purkinje test runner messages",
		Long: `purkinje-msg builds and inspects the messages exchanged between
the purkinje test runner and its browser client.

Configuration is read from the environment:
  PURKINJE_LOG_LEVEL   debug, info or error (default "info")
  PURKINJE_FORMAT      json or protojson (default "json")`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		newEncodeCommand(app),
		newDecodeCommand(app),
	)

	return root
}

func (app App) eventSerde(ctx context.Context) (serde.Serde[message.Event, []byte], error) {
	registry := message.NewRegistry(message.WithLogger(zaplogger.Wrap(app.Logger)))

	eventSerde, err := app.Config.serde(registry)
	if err != nil {
		return nil, err
	}

	instrumented, err := opentelemetry.NewInstrumentedSerde(eventSerde)
	if err != nil {
		return nil, fmt.Errorf("cli: failed to instrument serde, %w", err)
	}

	return instrumented.Bind(ctx), nil
}
