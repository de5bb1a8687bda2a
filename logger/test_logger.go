package logger

import (
	"fmt"
	"strings"
	"sync"
	"testing"
)

var _ Logger = &Test{}

// Entry is a log entry recorded by the Test logger.
type Entry struct {
	Level   string
	Message string
	Fields  []Field
}

// Field returns the value of the named field, if present.
func (e Entry) Field(key string) (interface{}, bool) {
	for _, f := range e.Fields {
		if f.Key == key {
			return f.Value, true
		}
	}

	return nil, false
}

// Test is a Logger implementation using a testing.T instance,
// which also records the entries for later inspection.
type Test struct {
	t *testing.T

	mx      sync.Mutex
	entries []Entry
}

// NewTest returns a new logger using the provided testing.T instance.
func NewTest(t *testing.T) *Test {
	return &Test{t: t}
}

// Entries returns the entries logged so far.
func (t *Test) Entries() []Entry {
	t.mx.Lock()
	defer t.mx.Unlock()

	entries := make([]Entry, len(t.entries))
	copy(entries, t.entries)

	return entries
}

// Debug uses t.Logf to print a debug message.
func (t *Test) Debug(msg string, fields ...Field) { t.log("debug", msg, fields) }

// Info uses t.Logf to print an info message.
func (t *Test) Info(msg string, fields ...Field) { t.log("info", msg, fields) }

// Error uses t.Logf to print an error message.
func (t *Test) Error(msg string, fields ...Field) { t.log("error", msg, fields) }

func (t *Test) log(level, msg string, fields []Field) {
	t.mx.Lock()
	t.entries = append(t.entries, Entry{Level: level, Message: msg, Fields: fields})
	t.mx.Unlock()

	args := make([]string, 0, len(fields))
	for _, f := range fields {
		args = append(args, fmt.Sprintf("%s=%v", f.Key, f.Value))
	}

	t.t.Logf("[%s] %s {%s}", level, msg, strings.Join(args, ", "))
}
