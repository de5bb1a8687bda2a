package message

// Kind is the discriminator of an Event, sent on the wire as the "type" field.
type Kind string

// Known Event kinds.
const (
	KindTerminateConnection Kind = "terminate_connection"

	// Meta information about the project under test.
	KindProjectInfo Kind = "proj_info"

	KindTestSuiteStarted Kind = "testsuite_started"
	KindTestCaseStarted  Kind = "tc_started"
	KindTestCaseFinished Kind = "tc_finished"

	// Premature abort of the test run.
	KindAborted Kind = "aborted"

	// Test run aborted due to an error.
	KindError Kind = "error"
)

var knownKinds = []Kind{
	KindTerminateConnection,
	KindProjectInfo,
	KindTestSuiteStarted,
	KindTestCaseStarted,
	KindTestCaseFinished,
	KindAborted,
	KindError,
}

// Kinds returns all the Event kinds known to this package.
func Kinds() []Kind {
	kinds := make([]Kind, len(knownKinds))
	copy(kinds, knownKinds)

	return kinds
}

// IsKnown reports whether the Kind is one of the built-in kinds.
func (k Kind) IsKnown() bool {
	_, ok := BuiltinFactory(k)
	return ok
}

func (k Kind) String() string { return string(k) }
