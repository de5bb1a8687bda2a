// Package scenario contains Given/When/Then test helpers to describe
// how Events are exchanged over the wire.
package scenario

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/purkinje/go-messages/message"
	"github.com/purkinje/go-messages/serde"
)

// SerdeFactory builds the Event serde under test, using the provided
// Parser to map discriminators to Event types.
type SerdeFactory func(serde.Parser) serde.Serde[message.Event, []byte]

// Registration is an additional Event factory made available to the
// Registry used in a Decoding scenario.
type Registration struct {
	Kind    message.Kind
	Factory message.Factory
}

// Register returns a Registration for the provided Event type.
func Register(kind message.Kind, factory message.Factory) Registration {
	return Registration{Kind: kind, Factory: factory}
}

// DecodingInit is the entrypoint of the Decoding scenario API.
//
// A Decoding scenario can either extend the set of known Event types
// by using Given(), or decode with the built-in ones by using When() directly.
type DecodingInit struct{}

// Decoding is a scenario type to test the Events produced when
// decoding raw messages.
func Decoding() DecodingInit { return DecodingInit{} }

// Given sets the Event factories to register before decoding.
//
// Registrations are applied in order, so a later one for the same
// Event type replaces an earlier one.
func (sc DecodingInit) Given(registrations ...Registration) DecodingGiven {
	return DecodingGiven{given: registrations}
}

// When provides the raw message to decode.
func (sc DecodingInit) When(data []byte) DecodingWhen {
	return DecodingWhen{when: data}
}

// DecodingGiven is the state of the scenario once the Event factories
// have been provided using Given().
type DecodingGiven struct {
	given []Registration
}

// When provides the raw message to decode.
func (sc DecodingGiven) When(data []byte) DecodingWhen {
	return DecodingWhen{
		DecodingGiven: sc,
		when:          data,
	}
}

// DecodingWhen is the state of the scenario once the raw message
// to decode has been provided.
type DecodingWhen struct {
	DecodingGiven

	when []byte
}

// Then sets a positive expectation on the scenario outcome,
// to decode the raw message into the provided Event.
func (sc DecodingWhen) Then(event message.Event) DecodingThen {
	return DecodingThen{
		DecodingWhen: sc,
		then:         event,
	}
}

// ThenError sets a negative expectation on the scenario outcome,
// to fail with an error matching the provided one through errors.Is().
func (sc DecodingWhen) ThenError(err error) DecodingThen {
	return DecodingThen{
		DecodingWhen: sc,
		wantError:    true,
		thenError:    err,
	}
}

// ThenFails sets a negative expectation on the scenario outcome,
// with no particular assertion on the error returned.
func (sc DecodingWhen) ThenFails() DecodingThen {
	return DecodingThen{
		DecodingWhen: sc,
		wantError:    true,
	}
}

// DecodingThen is the state of the scenario once the preconditions
// and expectations have been fully specified.
type DecodingThen struct {
	DecodingWhen

	then      message.Event
	thenError error
	wantError bool
}

// Using performs the specified expectations of the scenario, decoding
// through the serde instance produced by the provided factory function.
func (sc DecodingThen) Using(t *testing.T, serdeFactory SerdeFactory) { //nolint:gocritic
	t.Helper()

	registry := message.NewRegistry()

	for _, registration := range sc.given {
		if err := registry.Register(registration.Kind, registration.Factory); !assert.NoError(t, err) {
			return
		}
	}

	event, err := serdeFactory(registry).Deserialize(sc.when)

	if !sc.wantError {
		assert.NoError(t, err)
		assert.Equal(t, sc.then, event)

		return
	}

	if !assert.Error(t, err) {
		return
	}

	if sc.thenError != nil && !assert.ErrorIs(t, err, sc.thenError) {
		t.Log("Unexpected error received:", err)
	}
}
