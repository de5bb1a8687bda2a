package serde

import (
	"fmt"

	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/purkinje/go-messages/message"
)

// NewStructProto returns a new serde instance where a google.protobuf.Struct
// gets serialized to and deserialized from a Protobuf byte-array.
func NewStructProto() Fused[*structpb.Struct, []byte] {
	return Fuse[*structpb.Struct, []byte](
		AsSerializerFunc(func(s *structpb.Struct) ([]byte, error) {
			data, err := proto.Marshal(s)
			if err != nil {
				return nil, fmt.Errorf("serde.Proto: failed to serialize data, %w", err)
			}

			return data, nil
		}),
		AsDeserializerFunc(func(data []byte) (*structpb.Struct, error) {
			s := new(structpb.Struct)
			if err := proto.Unmarshal(data, s); err != nil {
				return nil, fmt.Errorf("serde.Proto: failed to deserialize data, %w", err)
			}

			return s, nil
		}),
	)
}

// NewStructProtoJSON returns a new serde instance where a google.protobuf.Struct
// gets serialized to and deserialized from Protobuf JSON.
func NewStructProtoJSON() Fused[*structpb.Struct, []byte] {
	return Fuse[*structpb.Struct, []byte](
		AsSerializerFunc(func(s *structpb.Struct) ([]byte, error) {
			data, err := protojson.Marshal(s)
			if err != nil {
				return nil, fmt.Errorf("serde.ProtoJSON: failed to serialize data, %w", err)
			}

			return data, nil
		}),
		AsDeserializerFunc(func(data []byte) (*structpb.Struct, error) {
			s := new(structpb.Struct)
			if err := protojson.Unmarshal(data, s); err != nil {
				return nil, fmt.Errorf("serde.ProtoJSON: failed to deserialize data, %w", err)
			}

			return s, nil
		}),
	)
}

// NewEventProto returns a new serde instance where Events get serialized to
// and deserialized from the Protobuf binary encoding of a google.protobuf.Struct.
func NewEventProto(parser Parser) Chained[message.Event, *structpb.Struct, []byte] {
	return Chain[message.Event, *structpb.Struct, []byte](NewEventStruct(parser), NewStructProto())
}

// NewEventProtoJSON returns a new serde instance where Events get serialized to
// and deserialized from the Protobuf JSON encoding of a google.protobuf.Struct.
func NewEventProtoJSON(parser Parser) Chained[message.Event, *structpb.Struct, []byte] {
	return Chain[message.Event, *structpb.Struct, []byte](NewEventStruct(parser), NewStructProtoJSON())
}
