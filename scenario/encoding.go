package scenario

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/purkinje/go-messages/message"
)

// EncodingInit is the entrypoint of the Encoding scenario API.
type EncodingInit struct{}

// Encoding is a scenario type to test the raw messages produced
// when encoding Events.
func Encoding() EncodingInit { return EncodingInit{} }

// When provides the Event to encode.
func (sc EncodingInit) When(event message.Event) EncodingWhen {
	return EncodingWhen{when: event}
}

// EncodingWhen is the state of the scenario once the Event
// to encode has been provided.
type EncodingWhen struct {
	when message.Event
}

// Then sets a positive expectation on the scenario outcome, to produce
// a JSON document equivalent to the provided one.
//
// The serde under test must produce JSON documents for the comparison to work.
func (sc EncodingWhen) Then(document string) EncodingThen {
	return EncodingThen{
		EncodingWhen: sc,
		then:         document,
	}
}

// ThenError sets a negative expectation on the scenario outcome,
// to fail with an error matching the provided one through errors.Is().
func (sc EncodingWhen) ThenError(err error) EncodingThen {
	return EncodingThen{
		EncodingWhen: sc,
		wantError:    true,
		thenError:    err,
	}
}

// EncodingThen is the state of the scenario once the Event
// and the expectations have been fully specified.
type EncodingThen struct {
	EncodingWhen

	then      string
	thenError error
	wantError bool
}

// Using performs the specified expectations of the scenario, encoding
// through the serde instance produced by the provided factory function.
func (sc EncodingThen) Using(t *testing.T, serdeFactory SerdeFactory) { //nolint:gocritic
	t.Helper()

	data, err := serdeFactory(message.NewRegistry()).Serialize(sc.when)

	if !sc.wantError {
		if assert.NoError(t, err) {
			assert.JSONEq(t, sc.then, string(data))
		}

		return
	}

	assert.Nil(t, data)

	if !assert.Error(t, err) {
		return
	}

	if sc.thenError != nil {
		assert.ErrorIs(t, err, sc.thenError)
	}
}
