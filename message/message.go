// Package message contains the events exchanged between a test runner
// and its browser-based client, e.g. test lifecycle notifications or
// connection control signals.
//
// Every Event shares a common Envelope (type, timestamp, text) and might
// carry additional, variant-specific payload fields. Events are exchanged
// as flat JSON objects: use Serialize to produce the wire form of an Event,
// and Parse (or Registry.Parse) to reconstruct the typed Event from it.
package message

// Event is a message exchanged between the test runner and its clients.
//
// The set of Event implementations is closed to the types that embed
// an Envelope: the built-in variants exposed by this package, or custom
// ones that can be decoded through a Registry.
type Event interface {
	// Kind returns the discriminator identifying the Event variant.
	Kind() Kind

	// Header returns the Envelope fields of the Event.
	Header() Envelope

	// Validate checks the Event fields before it gets serialized.
	Validate() error

	// String returns the human-readable form of the Event.
	String() string

	isEvent()
}
