package opentelemetry_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"github.com/purkinje/go-messages/extension/opentelemetry"
	"github.com/purkinje/go-messages/message"
	"github.com/purkinje/go-messages/serde"
)

var peerAttribute = attribute.String("peer", "browser")

func newInstrumentedSerde(t *testing.T) (*opentelemetry.InstrumentedSerde, *tracetest.SpanRecorder, *sdkmetric.ManualReader) {
	t.Helper()

	spanRecorder := tracetest.NewSpanRecorder()
	metricReader := sdkmetric.NewManualReader()

	instrumented, err := opentelemetry.NewInstrumentedSerde(
		serde.NewEventJSON(nil),
		opentelemetry.WithTracerProvider(sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(spanRecorder))),
		opentelemetry.WithMeterProvider(sdkmetric.NewMeterProvider(sdkmetric.WithReader(metricReader))),
		opentelemetry.WithAttributes(peerAttribute),
	)
	require.NoError(t, err)

	return instrumented, spanRecorder, metricReader
}

func collectMetrics(t *testing.T, reader *sdkmetric.ManualReader) map[string]metricdata.Metrics {
	t.Helper()

	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(context.Background(), &rm))

	metrics := make(map[string]metricdata.Metrics)

	for _, scopeMetrics := range rm.ScopeMetrics {
		for _, m := range scopeMetrics.Metrics {
			metrics[m.Name] = m
		}
	}

	return metrics
}

func TestInstrumentedSerde(t *testing.T) {
	ctx := context.Background()
	clock := func() time.Time { return time.Date(2014, 2, 1, 8, 9, 10, 0, time.Local) }

	t.Run("it records spans and metrics of successful operations", func(t *testing.T) {
		instrumented, spanRecorder, metricReader := newInstrumentedSerde(t)

		data, err := instrumented.Serialize(ctx, message.NewTestCaseStarted(message.WithClock(clock)))
		require.NoError(t, err)

		event, err := instrumented.Deserialize(ctx, data)
		require.NoError(t, err)
		assert.Equal(t, message.KindTestCaseStarted, event.Kind())

		spans := spanRecorder.Ended()
		require.Len(t, spans, 2)

		assert.Equal(t, opentelemetry.SerializeSpanName, spans[0].Name())
		assert.Contains(t, spans[0].Attributes(), peerAttribute)
		assert.Contains(t, spans[0].Attributes(), opentelemetry.EventTypeAttribute.String("tc_started"))
		assert.Contains(t, spans[0].Attributes(), opentelemetry.MessageSizeAttribute.Int(len(data)))

		assert.Equal(t, opentelemetry.DeserializeSpanName, spans[1].Name())
		assert.Contains(t, spans[1].Attributes(), opentelemetry.EventTypeAttribute.String("tc_started"))
		assert.NotEqual(t, codes.Error, spans[1].Status().Code)

		metrics := collectMetrics(t, metricReader)
		assert.Contains(t, metrics, opentelemetry.SerializeDurationMetric)
		assert.Contains(t, metrics, opentelemetry.DeserializeDurationMetric)
	})

	t.Run("it records failed operations", func(t *testing.T) {
		instrumented, spanRecorder, metricReader := newInstrumentedSerde(t)

		_, err := instrumented.Serialize(ctx, message.NewTestCaseFinished("", message.VerdictPass))
		assert.ErrorIs(t, err, message.ErrValidation)

		_, err = instrumented.Deserialize(ctx, []byte(`{"timestamp":"2014-02-01T08:09:10"}`))
		assert.ErrorIs(t, err, message.ErrMissingType)

		spans := spanRecorder.Ended()
		require.Len(t, spans, 2)

		for _, span := range spans {
			assert.Equal(t, codes.Error, span.Status().Code)
			assert.Len(t, span.Events(), 1)
		}

		metrics := collectMetrics(t, metricReader)
		require.Contains(t, metrics, opentelemetry.ErrorsMetric)

		sum, ok := metrics[opentelemetry.ErrorsMetric].Data.(metricdata.Sum[int64])
		require.True(t, ok)

		var total int64
		for _, dataPoint := range sum.DataPoints {
			total += dataPoint.Value
		}

		assert.Equal(t, int64(2), total)
	})

	t.Run("it can be bound to a context", func(t *testing.T) {
		instrumented, spanRecorder, _ := newInstrumentedSerde(t)

		var eventSerde serde.Serde[message.Event, []byte] = instrumented.Bind(ctx)

		data, err := eventSerde.Serialize(message.NewAborted(message.WithClock(clock)))
		require.NoError(t, err)
		assert.JSONEq(t, `{"type":"aborted","timestamp":"2014-02-01T08:09:10","text":""}`, string(data))

		assert.Len(t, spanRecorder.Ended(), 1)
	})
}
