package serde

import (
	"fmt"

	"github.com/purkinje/go-messages/message"
)

// Parser reconstructs an Event from its wire form, e.g. message.Parse
// or a message.Registry.
type Parser interface {
	Parse(data []byte) (message.Event, error)
}

// ParserFunc is a functional implementation of the Parser interface.
type ParserFunc func(data []byte) (message.Event, error)

// Parse implements the serde.Parser interface.
func (fn ParserFunc) Parse(data []byte) (message.Event, error) { return fn(data) }

func parserOrDefault(parser Parser) Parser {
	if parser == nil {
		return ParserFunc(message.Parse)
	}

	return parser
}

// NewEventJSONSerializer returns a serializer function producing the flat
// JSON wire form of an Event. Events are validated first.
func NewEventJSONSerializer() SerializerFunc[message.Event, []byte] {
	return func(event message.Event) ([]byte, error) {
		data, err := message.Serialize(event)
		if err != nil {
			return nil, fmt.Errorf("serde.EventJSON: failed to serialize event, %w", err)
		}

		return data, nil
	}
}

// NewEventJSONDeserializer returns a deserializer function reconstructing
// Events from their JSON wire form through the provided Parser.
//
// If parser is nil, message.Parse is used.
func NewEventJSONDeserializer(parser Parser) DeserializerFunc[message.Event, []byte] {
	parser = parserOrDefault(parser)

	return func(data []byte) (message.Event, error) {
		event, err := parser.Parse(data)
		if err != nil {
			return nil, fmt.Errorf("serde.EventJSON: failed to deserialize event, %w", err)
		}

		return event, nil
	}
}

// NewEventJSON returns a new serde instance where Events get serialized to
// and deserialized from their flat JSON wire form.
func NewEventJSON(parser Parser) Fused[message.Event, []byte] {
	return Fuse[message.Event, []byte](
		NewEventJSONSerializer(),
		NewEventJSONDeserializer(parser),
	)
}
