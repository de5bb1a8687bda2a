package message

import (
	"fmt"
	"time"
)

// Clock returns the current time, used to stamp new Events.
type Clock func() time.Time

// Option customizes the Envelope of a new Event.
type Option func(*options)

type options struct {
	text  string
	clock Clock
}

// WithText sets the free-form text of the Event.
func WithText(text string) Option {
	return func(o *options) { o.text = text }
}

// WithClock sets the Clock used to stamp the Event, time.Now by default.
func WithClock(clock Clock) Option {
	return func(o *options) {
		if clock != nil {
			o.clock = clock
		}
	}
}

// Envelope contains the fields shared by all Events.
//
// Envelope can be embedded in a struct to define a new Event variant:
// its fields are flattened in the wire form, together with the ones
// of the embedding struct.
type Envelope struct {
	Type      Kind      `json:"type"`
	Timestamp Timestamp `json:"timestamp"`
	Text      string    `json:"text"`
}

// NewEnvelope returns a new Envelope for the specified Kind,
// stamped with the current time.
func NewEnvelope(kind Kind, opts ...Option) Envelope {
	o := options{clock: time.Now}
	for _, opt := range opts {
		opt(&o)
	}

	return Envelope{
		Type:      kind,
		Timestamp: NewTimestamp(o.clock()),
		Text:      o.text,
	}
}

// Kind returns the Envelope type.
func (e Envelope) Kind() Kind { return e.Type }

// Header returns the Envelope itself.
func (e Envelope) Header() Envelope { return e }

// Validate checks that all the required Envelope fields have been set.
func (e Envelope) Validate() error {
	return e.validateAs(e.Type)
}

// String returns the human-readable form of the Envelope,
// "<kind>: [<timestamp>] <text>".
func (e Envelope) String() string {
	return fmt.Sprintf("%s: [%s] %s", e.Type, e.Timestamp, e.Text)
}

func (Envelope) isEvent() {}

func (e *Envelope) envelope() *Envelope { return e }

func (e Envelope) validateAs(kind Kind) error {
	switch {
	case e.Type == "":
		return &ValidationError{Kind: kind, Field: "type", Reason: "is required"}
	case e.Type != kind:
		return &ValidationError{
			Kind:   kind,
			Field:  "type",
			Reason: fmt.Sprintf("must be '%s', got '%s'", kind, e.Type),
		}
	case e.Timestamp.IsZero():
		return &ValidationError{Kind: kind, Field: "timestamp", Reason: "is required"}
	}

	return nil
}
