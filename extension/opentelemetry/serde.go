package opentelemetry

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"github.com/purkinje/go-messages/message"
	"github.com/purkinje/go-messages/serde"
)

// InstrumentedSerde is a wrapper type over an Event serde instance
// to provide instrumentation, in the form of metrics and traces
// using OpenTelemetry.
//
// Use NewInstrumentedSerde for constructing a new instance of this type.
type InstrumentedSerde struct {
	serde      serde.Serde[message.Event, []byte]
	tracer     trace.Tracer
	attributes []attribute.KeyValue

	serializeDuration   metric.Int64Histogram
	deserializeDuration metric.Int64Histogram
	errors              metric.Int64Counter
}

func (is *InstrumentedSerde) registerMetrics(meter metric.Meter) error {
	var err error

	if is.serializeDuration, err = meter.Int64Histogram(
		SerializeDurationMetric,
		metric.WithUnit("ms"),
		metric.WithDescription("Duration in milliseconds of Event serializations performed."),
	); err != nil {
		return fmt.Errorf("opentelemetry.InstrumentedSerde: failed to register metric: %w", err)
	}

	if is.deserializeDuration, err = meter.Int64Histogram(
		DeserializeDurationMetric,
		metric.WithUnit("ms"),
		metric.WithDescription("Duration in milliseconds of Event deserializations performed."),
	); err != nil {
		return fmt.Errorf("opentelemetry.InstrumentedSerde: failed to register metric: %w", err)
	}

	if is.errors, err = meter.Int64Counter(
		ErrorsMetric,
		metric.WithDescription("Count of failed Event serializations and deserializations."),
	); err != nil {
		return fmt.Errorf("opentelemetry.InstrumentedSerde: failed to register metric: %w", err)
	}

	return nil
}

// NewInstrumentedSerde returns a wrapper type to provide OpenTelemetry
// instrumentation (metrics and traces) around an Event serde.
//
// An error is returned if metrics could not be registered.
func NewInstrumentedSerde(eventSerde serde.Serde[message.Event, []byte], opts ...Option) (*InstrumentedSerde, error) {
	cfg := newConfig(opts...)

	is := &InstrumentedSerde{
		serde:      eventSerde,
		tracer:     cfg.tracer(),
		attributes: cfg.Attributes,
	}

	if err := is.registerMetrics(cfg.meter()); err != nil {
		return nil, err
	}

	return is, nil
}

// Serialize calls the wrapped serde Serialize method and records metrics and traces around it.
func (is *InstrumentedSerde) Serialize(ctx context.Context, event message.Event) (data []byte, err error) {
	attributes := is.baseAttributes(event)

	ctx, span := is.tracer.Start(ctx, SerializeSpanName, trace.WithAttributes(attributes...))
	start := time.Now()

	defer func() {
		if err == nil {
			span.SetAttributes(MessageSizeAttribute.Int(len(data)))
		}

		is.record(ctx, span, is.serializeDuration, "serialize", start, err, attributes)
	}()

	data, err = is.serde.Serialize(event)

	return
}

// Deserialize calls the wrapped serde Deserialize method and records metrics and traces around it.
func (is *InstrumentedSerde) Deserialize(ctx context.Context, data []byte) (event message.Event, err error) {
	ctx, span := is.tracer.Start(ctx, DeserializeSpanName, trace.WithAttributes(
		append(is.baseAttributes(nil), MessageSizeAttribute.Int(len(data)))...,
	))
	start := time.Now()

	defer func() {
		attributes := is.baseAttributes(event)
		if event != nil {
			span.SetAttributes(EventTypeAttribute.String(event.Kind().String()))
		}

		is.record(ctx, span, is.deserializeDuration, "deserialize", start, err, attributes)
	}()

	event, err = is.serde.Deserialize(data)

	return
}

// Bind returns a serde.Serde using the InstrumentedSerde with the provided context,
// for components that expect a context-less serde.
func (is *InstrumentedSerde) Bind(ctx context.Context) serde.Fused[message.Event, []byte] {
	return serde.Fuse[message.Event, []byte](
		serde.AsSerializerFunc(func(event message.Event) ([]byte, error) {
			return is.Serialize(ctx, event)
		}),
		serde.AsDeserializerFunc(func(data []byte) (message.Event, error) {
			return is.Deserialize(ctx, data)
		}),
	)
}

func (is *InstrumentedSerde) baseAttributes(event message.Event) []attribute.KeyValue {
	attributes := make([]attribute.KeyValue, 0, len(is.attributes)+1)
	attributes = append(attributes, is.attributes...)

	if event != nil {
		attributes = append(attributes, EventTypeAttribute.String(event.Kind().String()))
	}

	return attributes
}

func (is *InstrumentedSerde) record(
	ctx context.Context,
	span trace.Span,
	histogram metric.Int64Histogram,
	operation string,
	start time.Time,
	err error,
	attributes []attribute.KeyValue,
) {
	defer span.End()

	durationAttributes := make([]attribute.KeyValue, 0, len(attributes)+1)
	durationAttributes = append(durationAttributes, attributes...)
	durationAttributes = append(durationAttributes, ErrorAttribute.Bool(err != nil))

	histogram.Record(ctx, time.Since(start).Milliseconds(), metric.WithAttributes(durationAttributes...))

	if err == nil {
		return
	}

	errorAttributes := make([]attribute.KeyValue, 0, len(attributes)+1)
	errorAttributes = append(errorAttributes, attributes...)
	errorAttributes = append(errorAttributes, OperationAttribute.String(operation))

	is.errors.Add(ctx, 1, metric.WithAttributes(errorAttributes...))
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
}
