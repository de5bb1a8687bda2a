package scenario_test

import (
	"testing"
	"time"

	"github.com/purkinje/go-messages/message"
	"github.com/purkinje/go-messages/scenario"
	"github.com/purkinje/go-messages/serde"
)

func fixedClock() time.Time {
	return time.Date(2014, 2, 1, 8, 9, 10, 0, time.UTC)
}

func eventJSON(parser serde.Parser) serde.Serde[message.Event, []byte] {
	return serde.NewEventJSON(parser)
}

func eventProtoJSON(parser serde.Parser) serde.Serde[message.Event, []byte] {
	return serde.NewEventProtoJSON(parser)
}

func TestDecoding(t *testing.T) {
	t.Run("built-in events are decoded by their type", func(t *testing.T) {
		scenario.Decoding().
			When([]byte(`{"type":"tc_finished","timestamp":"2014-02-01T08:09:10","text":"","name":"tc_1","verdict":"failed"}`)).
			Then(message.NewTestCaseFinished("tc_1", message.VerdictFail, message.WithClock(fixedClock))).
			Using(t, eventJSON)
	})

	t.Run("terminate connection events discard their text", func(t *testing.T) {
		scenario.Decoding().
			When([]byte(`{"type":"terminate_connection","timestamp":"2014-02-01T08:09:10","text":"bye"}`)).
			Then(message.NewTerminateConnection(message.WithClock(fixedClock))).
			Using(t, eventJSON)
	})

	t.Run("the last registration for a type is used", func(t *testing.T) {
		scenario.Decoding().
			Given(
				scenario.Register(message.KindTestCaseStarted, message.FactoryFor[message.ProjectInfo]()),
				scenario.Register(message.KindTestCaseStarted, message.FactoryFor[message.Aborted]()),
			).
			When([]byte(`{"type":"tc_started","timestamp":"2014-02-01T08:09:10","text":"stop"}`)).
			Then(message.NewAborted(message.WithClock(fixedClock), message.WithText("stop"))).
			Using(t, eventJSON)
	})

	t.Run("messages with no type are rejected", func(t *testing.T) {
		scenario.Decoding().
			When([]byte(`{"timestamp":"2014-02-01T08:09:10","text":""}`)).
			ThenError(message.ErrMissingType).
			Using(t, eventJSON)
	})

	t.Run("messages with unknown types are rejected", func(t *testing.T) {
		scenario.Decoding().
			When([]byte(`{"type":"dummy_type"}`)).
			ThenError(message.ErrUnknownType).
			Using(t, eventProtoJSON)
	})

	t.Run("malformed messages are rejected", func(t *testing.T) {
		scenario.Decoding().
			When([]byte(`{"type":`)).
			ThenFails().
			Using(t, eventJSON)
	})
}

func TestEncoding(t *testing.T) {
	t.Run("events are encoded as flat documents", func(t *testing.T) {
		scenario.Encoding().
			When(message.NewTestCaseStarted(message.WithClock(fixedClock), message.WithText("started"))).
			Then(`{"type":"tc_started","timestamp":"2014-02-01T08:09:10","text":"started"}`).
			Using(t, eventJSON)
	})

	t.Run("sub-second timestamps are encoded with microseconds", func(t *testing.T) {
		clock := func() time.Time { return fixedClock().Add(250 * time.Millisecond) }

		scenario.Encoding().
			When(message.NewProjectInfo(message.WithClock(clock), message.WithText("purkinje"))).
			Then(`{"type":"proj_info","timestamp":"2014-02-01T08:09:10.250000","text":"purkinje"}`).
			Using(t, eventProtoJSON)
	})

	t.Run("invalid events are not encoded", func(t *testing.T) {
		scenario.Encoding().
			When(message.NewTestCaseFinished("tc_1", "flaky", message.WithClock(fixedClock))).
			ThenError(message.ErrValidation).
			Using(t, eventJSON)
	})
}
