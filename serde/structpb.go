package serde

import (
	"encoding/json"
	"fmt"

	"google.golang.org/protobuf/types/known/structpb"

	"github.com/purkinje/go-messages/message"
)

// NewEventStructSerializer returns a serializer function mapping an Event
// into a google.protobuf.Struct holding its wire fields.
// Events are validated first.
func NewEventStructSerializer() SerializerFunc[message.Event, *structpb.Struct] {
	return func(event message.Event) (*structpb.Struct, error) {
		data, err := message.Serialize(event)
		if err != nil {
			return nil, fmt.Errorf("serde.EventStruct: failed to serialize event, %w", err)
		}

		var fields map[string]interface{}
		if err := json.Unmarshal(data, &fields); err != nil {
			return nil, fmt.Errorf("serde.EventStruct: failed to decode event fields, %w", err)
		}

		s, err := structpb.NewStruct(fields)
		if err != nil {
			return nil, fmt.Errorf("serde.EventStruct: failed to build struct, %w", err)
		}

		return s, nil
	}
}

// NewEventStructDeserializer returns a deserializer function reconstructing
// Events from a google.protobuf.Struct through the provided Parser.
//
// If parser is nil, message.Parse is used.
func NewEventStructDeserializer(parser Parser) DeserializerFunc[message.Event, *structpb.Struct] {
	parser = parserOrDefault(parser)

	return func(s *structpb.Struct) (message.Event, error) {
		data, err := json.Marshal(s.AsMap())
		if err != nil {
			return nil, fmt.Errorf("serde.EventStruct: failed to encode struct fields, %w", err)
		}

		event, err := parser.Parse(data)
		if err != nil {
			return nil, fmt.Errorf("serde.EventStruct: failed to deserialize event, %w", err)
		}

		return event, nil
	}
}

// NewEventStruct returns a new serde instance where Events get serialized to
// and deserialized from a google.protobuf.Struct.
func NewEventStruct(parser Parser) Fused[message.Event, *structpb.Struct] {
	return Fuse[message.Event, *structpb.Struct](
		NewEventStructSerializer(),
		NewEventStructDeserializer(parser),
	)
}
