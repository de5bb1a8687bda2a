// Package opentelemetry provides OpenTelemetry instrumentation for
// Event serdes, in the form of traces and metrics.
package opentelemetry

const instrumentationName = "github.com/purkinje/go-messages/extension/opentelemetry"
