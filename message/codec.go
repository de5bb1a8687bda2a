package message

import (
	"encoding/json"
	"fmt"
)

// Serialize validates the Event and returns its wire form: a flat JSON
// object holding both the Envelope and the payload fields.
//
// No data is returned if the validation fails.
func Serialize(event Event) ([]byte, error) {
	if event == nil {
		return nil, fmt.Errorf("message.Serialize: %w", errNilEvent())
	}

	if err := event.Validate(); err != nil {
		return nil, fmt.Errorf("message.Serialize: %w", err)
	}

	data, err := json.Marshal(event)
	if err != nil {
		return nil, fmt.Errorf("message.Serialize: failed to encode '%s' event, %w", event.Kind(), err)
	}

	return data, nil
}

// Parse reconstructs a built-in Event variant from its wire form,
// using the "type" field to select the variant.
//
// A *MessageError is returned if the type is missing or unknown, or if
// the data does not fit the selected variant. Parsed Events are not
// validated.
func Parse(data []byte) (Event, error) {
	kind, err := peekKind(data)
	if err != nil {
		return nil, err
	}

	factory, ok := BuiltinFactory(kind)
	if !ok {
		return nil, &MessageError{Type: string(kind), Err: ErrUnknownType}
	}

	return decode(factory, kind, data)
}

// Fields returns the wire fields of the Event as a flat mapping,
// without validating it first.
func Fields(event Event) (map[string]interface{}, error) {
	if event == nil {
		return nil, fmt.Errorf("message.Fields: %w", errNilEvent())
	}

	data, err := json.Marshal(event)
	if err != nil {
		return nil, fmt.Errorf("message.Fields: failed to encode event, %w", err)
	}

	var fields map[string]interface{}
	if err := json.Unmarshal(data, &fields); err != nil {
		return nil, fmt.Errorf("message.Fields: failed to decode event fields, %w", err)
	}

	return fields, nil
}

// Field returns the value of the named wire field of the Event,
// e.g. "timestamp" or "verdict".
//
// ErrUnknownField is returned if the Event has no such field,
// and a *ValidationError if the Event is nil.
func Field(event Event, name string) (interface{}, error) {
	fields, err := Fields(event)
	if err != nil {
		return nil, err
	}

	value, ok := fields[name]
	if !ok {
		return nil, fmt.Errorf("message.Field: '%s' on '%s' event, %w", name, event.Kind(), ErrUnknownField)
	}

	return value, nil
}

func errNilEvent() *ValidationError {
	return &ValidationError{Field: "type", Reason: "is required, nil event provided"}
}

// peekKind extracts the "type" discriminator. Empty values of any JSON type
// (null, "", false, 0, [], {}) count as a missing type; other values that
// are not strings can never match a registered Kind.
func peekKind(data []byte) (Kind, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return "", &MessageError{Err: ErrMalformed, Cause: err}
	}

	raw, ok := fields["type"]
	if !ok {
		return "", &MessageError{Err: ErrMissingType}
	}

	var value interface{}
	if err := json.Unmarshal(raw, &value); err != nil {
		return "", &MessageError{Err: ErrMalformed, Cause: err}
	}

	var empty bool

	switch v := value.(type) {
	case string:
		if v != "" {
			return Kind(v), nil
		}

		empty = true
	case nil:
		empty = true
	case bool:
		empty = !v
	case float64:
		empty = v == 0
	case []interface{}:
		empty = len(v) == 0
	case map[string]interface{}:
		empty = len(v) == 0
	}

	if empty {
		return "", &MessageError{Err: ErrMissingType}
	}

	return "", &MessageError{Type: string(raw), Err: ErrUnknownType}
}

func decode(factory Factory, kind Kind, data []byte) (Event, error) {
	event, err := factory(data)
	if err != nil {
		return nil, &MessageError{Type: string(kind), Err: ErrMalformed, Cause: err}
	}

	return event, nil
}
