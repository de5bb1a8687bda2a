package message

import (
	"encoding/json"
	"fmt"
	"reflect"
	"sort"
	"sync"

	"github.com/purkinje/go-messages/logger"
)

// Factory reconstructs an Event from its wire form.
type Factory func(data []byte) (Event, error)

// FactoryFor returns a Factory decoding the wire form into the Event type T.
//
// The decoded Envelope type is set to the Kind reported by T, so that
// Event variants with a fixed Kind always report it.
//
// Wire keys are matched exactly: keys differing from a field key only
// by case, e.g. "TEXT", are ignored.
func FactoryFor[T Event]() Factory {
	keys := wireKeys(reflect.TypeOf((*T)(nil)).Elem())

	return func(data []byte) (Event, error) {
		var event T

		data, err := canonicalize(data, keys)
		if err != nil {
			return nil, fmt.Errorf("message.Factory: failed to decode %T, %w", event, err)
		}

		if err := json.Unmarshal(data, &event); err != nil {
			return nil, fmt.Errorf("message.Factory: failed to decode %T, %w", event, err)
		}

		if v, ok := interface{}(&event).(interface{ envelope() *Envelope }); ok {
			if kind := event.Kind(); kind != "" {
				v.envelope().Type = kind
			}
		}

		if v, ok := interface{}(&event).(interface{ normalize() }); ok {
			v.normalize()
		}

		return event, nil
	}
}

// BuiltinFactory returns the Factory of the built-in variant for the Kind,
// or false if the Kind is not a built-in one.
func BuiltinFactory(kind Kind) (Factory, bool) {
	switch kind {
	case KindTerminateConnection:
		return FactoryFor[TerminateConnection](), true
	case KindProjectInfo:
		return FactoryFor[ProjectInfo](), true
	case KindTestSuiteStarted:
		return FactoryFor[TestSuiteStarted](), true
	case KindTestCaseStarted:
		return FactoryFor[TestCaseStarted](), true
	case KindTestCaseFinished:
		return FactoryFor[TestCaseFinished](), true
	case KindAborted:
		return FactoryFor[Aborted](), true
	case KindError:
		return FactoryFor[Errored](), true
	default:
		return nil, false
	}
}

// RegistryOption customizes a Registry.
type RegistryOption func(*Registry)

// WithLogger sets the Logger used by the Registry to report
// registrations and decoding failures.
func WithLogger(l logger.Logger) RegistryOption {
	return func(r *Registry) { r.logger = l }
}

// Registry maps Event kinds to the Factory able to decode them.
//
// A new Registry knows all the built-in variants; custom variants
// can be added using Register. Registry is safe for concurrent use.
type Registry struct {
	mx        sync.RWMutex
	factories map[Kind]Factory
	logger    logger.Logger
}

// NewRegistry returns a Registry holding all the built-in Event variants.
func NewRegistry(opts ...RegistryOption) *Registry {
	r := &Registry{
		factories: make(map[Kind]Factory, len(knownKinds)),
	}

	for _, opt := range opts {
		opt(r)
	}

	for _, kind := range knownKinds {
		factory, _ := BuiltinFactory(kind)
		r.factories[kind] = factory
	}

	return r
}

// Register associates the Kind with the provided Factory.
// Any Factory previously registered for the same Kind is replaced.
//
// Replacements are logged at info level, rejected registrations
// at error level.
func (r *Registry) Register(kind Kind, factory Factory) error {
	var err error

	switch {
	case kind == "":
		err = fmt.Errorf("message.Registry: %w", &ValidationError{Field: "type", Reason: "is required"})
	case factory == nil:
		err = fmt.Errorf("message.Registry: nil factory provided for '%s' event", kind)
	}

	if err != nil {
		logger.Error(r.logger, "Failed to register event factory",
			logger.With("type", kind.String()),
			logger.Err(err),
		)

		return err
	}

	r.mx.Lock()
	_, replaced := r.factories[kind]
	r.factories[kind] = factory
	r.mx.Unlock()

	log := logger.Debug
	if replaced {
		log = logger.Info
	}

	log(r.logger, "Registered event factory",
		logger.With("type", kind.String()),
		logger.With("replaced", replaced),
	)

	return nil
}

// Lookup returns the Factory registered for the Kind, if any.
func (r *Registry) Lookup(kind Kind) (Factory, bool) {
	r.mx.RLock()
	defer r.mx.RUnlock()

	factory, ok := r.factories[kind]

	return factory, ok
}

// Kinds returns the registered Event kinds, sorted.
func (r *Registry) Kinds() []Kind {
	r.mx.RLock()
	kinds := make([]Kind, 0, len(r.factories))

	for kind := range r.factories {
		kinds = append(kinds, kind)
	}
	r.mx.RUnlock()

	sort.Slice(kinds, func(i, j int) bool { return kinds[i] < kinds[j] })

	return kinds
}

// Parse reconstructs an Event from its wire form, using the Factory
// registered for its "type" field.
//
// See message.Parse for the error semantics.
func (r *Registry) Parse(data []byte) (Event, error) {
	event, err := r.parse(data)
	if err != nil {
		logger.Debug(r.logger, "Failed to parse message", logger.Err(err))
		return nil, err
	}

	return event, nil
}

func (r *Registry) parse(data []byte) (Event, error) {
	kind, err := peekKind(data)
	if err != nil {
		return nil, err
	}

	factory, ok := r.Lookup(kind)
	if !ok {
		return nil, &MessageError{Type: string(kind), Err: ErrUnknownType}
	}

	return decode(factory, kind, data)
}
