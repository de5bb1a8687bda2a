package cli

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/purkinje/go-messages/message"
	"github.com/purkinje/go-messages/serde"
)

func newDecodeCommand(app App) *cobra.Command {
	return &cobra.Command{
		Use:   "decode [file]",
		Short: "Decode newline-delimited messages and print them in human-readable form",
		Long: `Decode reads one encoded message per line, from the provided file
or standard input, and prints the human-readable form of each of them.

Messages that cannot be decoded are logged and skipped; the command
fails if any of them could not be decoded.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			input := cmd.InOrStdin()

			if len(args) == 1 {
				f, err := os.Open(args[0])
				if err != nil {
					return fmt.Errorf("decode: failed to open input, %w", err)
				}

				//nolint:errcheck // Read-only file.
				defer f.Close()

				input = f
			}

			eventSerde, err := app.eventSerde(cmd.Context())
			if err != nil {
				return err
			}

			return decodeAll(eventSerde, input, cmd.OutOrStdout(), app.Logger)
		},
	}
}

func decodeAll(
	eventSerde serde.Deserializer[message.Event, []byte],
	input io.Reader,
	output io.Writer,
	log *zap.Logger,
) error {
	var lines, failed int

	scanner := bufio.NewScanner(input)

	for scanner.Scan() {
		lines++

		data := bytes.TrimSpace(scanner.Bytes())
		if len(data) == 0 {
			continue
		}

		event, err := eventSerde.Deserialize(data)
		if err != nil {
			failed++

			log.Error("Failed to decode message", zap.Int("line", lines), zap.Error(err))

			continue
		}

		if _, err := fmt.Fprintln(output, event.String()); err != nil {
			return fmt.Errorf("decode: failed to write output, %w", err)
		}
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("decode: failed to read input, %w", err)
	}

	if failed > 0 {
		return fmt.Errorf("decode: %d of %d lines could not be decoded", failed, lines)
	}

	return nil
}
