package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/purkinje/go-messages/message"
)

type encodeFlags struct {
	kind    string
	text    string
	name    string
	verdict string
}

func (f encodeFlags) event(clock message.Clock) (message.Event, error) {
	opts := []message.Option{
		message.WithClock(clock),
		message.WithText(f.text),
	}

	switch message.Kind(f.kind) {
	case message.KindTerminateConnection:
		return message.NewTerminateConnection(opts...), nil
	case message.KindProjectInfo:
		return message.NewProjectInfo(opts...), nil
	case message.KindTestSuiteStarted:
		return message.NewTestSuiteStarted(opts...), nil
	case message.KindTestCaseStarted:
		return message.NewTestCaseStarted(opts...), nil
	case message.KindTestCaseFinished:
		return message.NewTestCaseFinished(f.name, message.Verdict(f.verdict), opts...), nil
	case message.KindAborted:
		return message.NewAborted(opts...), nil
	case message.KindError:
		return message.NewErrored(opts...), nil
	default:
		return nil, fmt.Errorf("encode: unknown event type '%s'", f.kind)
	}
}

func kindNames() string {
	kinds := message.Kinds()
	names := make([]string, 0, len(kinds))

	for _, kind := range kinds {
		names = append(names, kind.String())
	}

	return strings.Join(names, ", ")
}

func newEncodeCommand(app App) *cobra.Command {
	var flags encodeFlags

	cmd := &cobra.Command{
		Use:   "encode",
		Short: "Build an event stamped with the current time and print its encoded form",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			event, err := flags.event(app.Clock)
			if err != nil {
				return err
			}

			eventSerde, err := app.eventSerde(cmd.Context())
			if err != nil {
				return err
			}

			data, err := eventSerde.Serialize(event)
			if err != nil {
				return fmt.Errorf("encode: %w", err)
			}

			app.Logger.Debug("Encoded event",
				zap.String("type", event.Kind().String()),
				zap.Int("size", len(data)),
			)

			_, err = fmt.Fprintln(cmd.OutOrStdout(), string(data))

			return err
		},
	}

	cmd.Flags().StringVarP(&flags.kind, "kind", "k", "", "event type, one of: "+kindNames())
	cmd.Flags().StringVarP(&flags.text, "text", "t", "", "free-form event text")
	cmd.Flags().StringVar(&flags.name, "name", "", "test case name, for "+message.KindTestCaseFinished.String()+" events")
	cmd.Flags().StringVar(&flags.verdict, "verdict", "", "test case verdict, for "+message.KindTestCaseFinished.String()+" events")

	//nolint:errcheck // The flag is defined right above.
	cmd.MarkFlagRequired("kind")

	return cmd
}
