package cli_test

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/purkinje/go-messages/internal/cli"
	"github.com/purkinje/go-messages/message"
)

func fixedClock() time.Time {
	return time.Date(2014, 2, 1, 8, 9, 10, 0, time.Local)
}

func execute(t *testing.T, app cli.App, input string, args ...string) (string, error) {
	t.Helper()

	var output bytes.Buffer

	root := cli.NewRootCommand(app)
	root.SetArgs(args)
	root.SetIn(strings.NewReader(input))
	root.SetOut(&output)
	root.SetErr(&output)

	err := root.Execute()

	return output.String(), err
}

func jsonApp() cli.App {
	return cli.App{
		Config: cli.Config{LogLevel: "debug", Format: cli.FormatJSON},
		Clock:  fixedClock,
	}
}

func TestEncode(t *testing.T) {
	t.Run("it prints the wire form of the event", func(t *testing.T) {
		output, err := execute(t, jsonApp(), "",
			"encode", "--kind", "tc_finished", "--name", "tc_1", "--verdict", "passed", "--text", "ok")
		require.NoError(t, err)

		assert.JSONEq(t,
			`{"type":"tc_finished","timestamp":"2014-02-01T08:09:10","text":"ok","name":"tc_1","verdict":"passed"}`,
			output,
		)
	})

	t.Run("terminate connection events have no text", func(t *testing.T) {
		output, err := execute(t, jsonApp(), "", "encode", "-k", "terminate_connection", "-t", "ignored")
		require.NoError(t, err)

		assert.JSONEq(t, `{"type":"terminate_connection","timestamp":"2014-02-01T08:09:10","text":""}`, output)
	})

	t.Run("it fails on invalid events", func(t *testing.T) {
		output, err := execute(t, jsonApp(), "", "encode", "--kind", "tc_finished", "--verdict", "passed")
		assert.ErrorIs(t, err, message.ErrValidation)
		assert.Empty(t, output)
	})

	t.Run("it fails on unknown event types", func(t *testing.T) {
		_, err := execute(t, jsonApp(), "", "encode", "--kind", "dummy_type")
		assert.Error(t, err)
	})

	t.Run("it fails on unsupported formats", func(t *testing.T) {
		app := jsonApp()
		app.Config.Format = "yaml"

		_, err := execute(t, app, "", "encode", "--kind", "aborted")
		assert.Error(t, err)
	})
}

func TestDecode(t *testing.T) {
	t.Run("it prints the human-readable form of each message", func(t *testing.T) {
		input := strings.Join([]string{
			`{"type":"tc_started","timestamp":"2014-02-01T08:09:10","text":"hi"}`,
			``,
			`{"type":"terminate_connection","timestamp":"2014-02-01T08:09:10","text":"bye"}`,
		}, "\n")

		output, err := execute(t, jsonApp(), input, "decode")
		require.NoError(t, err)

		assert.Equal(t,
			"tc_started: [2014-02-01T08:09:10] hi\nterminate_connection: [2014-02-01T08:09:10] \n",
			output,
		)
	})

	t.Run("it logs and skips messages that cannot be decoded", func(t *testing.T) {
		core, logs := observer.New(zapcore.DebugLevel)

		app := jsonApp()
		app.Logger = zap.New(core)

		input := strings.Join([]string{
			`{"timestamp":"2014-02-01T08:09:10"}`,
			`{"type":"aborted","timestamp":"2014-02-01T08:09:10","text":"stop"}`,
			`{"type":"dummy_type"}`,
		}, "\n")

		output, err := execute(t, app, input, "decode")
		assert.EqualError(t, err, "decode: 2 of 3 lines could not be decoded")
		assert.Equal(t, "aborted: [2014-02-01T08:09:10] stop\n", output)

		failures := logs.FilterMessage("Failed to decode message").AllUntimed()
		require.Len(t, failures, 2)
		assert.Equal(t, int64(1), failures[0].ContextMap()["line"])
		assert.Equal(t, int64(3), failures[1].ContextMap()["line"])
	})

	t.Run("it reads messages from a file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "messages.jsonl")
		require.NoError(t, os.WriteFile(path,
			[]byte(`{"type":"error","timestamp":"2014-02-01T08:09:10","text":"boom"}`+"\n"), 0o600))

		output, err := execute(t, jsonApp(), "", "decode", path)
		require.NoError(t, err)
		assert.Equal(t, "error: [2014-02-01T08:09:10] boom\n", output)
	})

	t.Run("it decodes what has been encoded as protojson", func(t *testing.T) {
		app := jsonApp()
		app.Config.Format = cli.FormatProtoJSON

		encoded, err := execute(t, app, "", "encode", "--kind", "proj_info", "--text", "purkinje")
		require.NoError(t, err)

		output, err := execute(t, app, encoded, "decode")
		require.NoError(t, err)
		assert.Equal(t, "proj_info: [2014-02-01T08:09:10] purkinje\n", output)
	})
}

func TestParseConfig(t *testing.T) {
	t.Run("it uses defaults", func(t *testing.T) {
		config, err := cli.ParseConfig()
		require.NoError(t, err)

		assert.Equal(t, "info", config.LogLevel)
		assert.Equal(t, cli.FormatJSON, config.Format)
	})

	t.Run("it reads the environment", func(t *testing.T) {
		t.Setenv("PURKINJE_LOG_LEVEL", "debug")
		t.Setenv("PURKINJE_FORMAT", cli.FormatProtoJSON)

		config, err := cli.ParseConfig()
		require.NoError(t, err)

		assert.Equal(t, "debug", config.LogLevel)
		assert.Equal(t, cli.FormatProtoJSON, config.Format)
	})
}
