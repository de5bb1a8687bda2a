package serde

import (
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/purkinje/go-messages/message"
)

const dummyKind message.Kind = "dummy_type"

// EventSuite is a full-fledged testing suite for Event serde implementations.
//
// Use NewEventSuite to run it against a serde, using suite.Run.
type EventSuite struct {
	suite.Suite

	factory func(parser Parser) Serde[message.Event, []byte]
}

// NewEventSuite returns a new EventSuite, building the serde under test
// with the provided factory.
func NewEventSuite(factory func(parser Parser) Serde[message.Event, []byte]) *EventSuite {
	return &EventSuite{factory: factory}
}

func (s *EventSuite) sampleEvents() []message.Event {
	clock := message.WithClock(func() time.Time {
		return time.Date(2014, 2, 1, 8, 9, 10, 500000000, time.Local)
	})

	return []message.Event{
		message.NewTerminateConnection(clock),
		message.NewProjectInfo(clock, message.WithText(`{"name": "purkinje"}`)),
		message.NewTestSuiteStarted(clock),
		message.NewTestCaseStarted(clock, message.WithText("tc_1")),
		message.NewTestCaseFinished("tc_1", message.VerdictPass, clock),
		message.NewTestCaseFinished("tc_2", message.VerdictFail, clock, message.WithText("assert 1 == 2")),
		message.NewAborted(clock),
		message.NewErrored(clock, message.WithText("collection failed")),
	}
}

// TestRoundTrip checks that deserializing a serialized Event returns
// an Event of the same variant, with the same wire fields.
func (s *EventSuite) TestRoundTrip() {
	eventSerde := s.factory(nil)

	for _, event := range s.sampleEvents() {
		data, err := eventSerde.Serialize(event)
		s.Require().NoError(err)

		deserialized, err := eventSerde.Deserialize(data)
		s.Require().NoError(err)

		s.IsType(event, deserialized)
		s.Equal(event.String(), deserialized.String())

		expected, err := message.Fields(event)
		s.Require().NoError(err)

		actual, err := message.Fields(deserialized)
		s.Require().NoError(err)

		s.Equal(expected, actual)
	}
}

// TestInvalidEvent checks that invalid Events are not serialized.
func (s *EventSuite) TestInvalidEvent() {
	eventSerde := s.factory(nil)

	data, err := eventSerde.Serialize(message.NewTestCaseFinished("", message.VerdictPass))
	s.ErrorIs(err, message.ErrValidation)
	s.Empty(data)

	data, err = eventSerde.Serialize(message.TestCaseStarted{})
	s.ErrorIs(err, message.ErrValidation)
	s.Empty(data)
}

// TestUnknownEventType checks that Events serialized without a registered
// variant cannot be deserialized.
func (s *EventSuite) TestUnknownEventType() {
	eventSerde := s.factory(nil)

	data, err := eventSerde.Serialize(message.NewEnvelope(dummyKind))
	s.Require().NoError(err)

	event, err := eventSerde.Deserialize(data)
	s.ErrorIs(err, message.ErrUnknownType)
	s.Nil(event)
}

// TestRegistry checks that deserialization goes through the provided Parser.
func (s *EventSuite) TestRegistry() {
	registry := message.NewRegistry()
	s.Require().NoError(registry.Register(dummyKind, message.FactoryFor[message.Envelope]()))

	eventSerde := s.factory(registry)
	envelope := message.NewEnvelope(dummyKind, message.WithText("dummy"))

	data, err := eventSerde.Serialize(envelope)
	s.Require().NoError(err)

	event, err := eventSerde.Deserialize(data)
	s.Require().NoError(err)

	s.Equal(dummyKind, event.Kind())
	s.Equal(envelope.String(), event.String())
}
