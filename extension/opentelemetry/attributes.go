package opentelemetry

import "go.opentelemetry.io/otel/attribute"

// Names of the OpenTelemetry spans created by the package.
const (
	SerializeSpanName   = "message.Serialize"
	DeserializeSpanName = "message.Deserialize"
)

// Metrics exported by this package.
const (
	SerializeDurationMetric   = "purkinje.message.serialize.duration.milliseconds"
	DeserializeDurationMetric = "purkinje.message.deserialize.duration.milliseconds"
	ErrorsMetric              = "purkinje.message.errors"
)

var (
	// EventTypeAttribute is the attribute identifier that contains the type of an Event.
	EventTypeAttribute = attribute.Key("event.type")

	// MessageSizeAttribute is the attribute identifier that contains
	// the size in bytes of an encoded Event.
	MessageSizeAttribute = attribute.Key("message.size")

	// OperationAttribute is the attribute identifier that contains
	// the serde operation that failed, either "serialize" or "deserialize".
	OperationAttribute = attribute.Key("operation")

	// ErrorAttribute is the attribute identifier that reports whether
	// the operation failed.
	ErrorAttribute = attribute.Key("error")
)
