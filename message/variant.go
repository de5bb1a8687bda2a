package message

import "fmt"

// Verdict is the outcome of a finished test case.
type Verdict string

// Known test case verdicts.
const (
	VerdictPass    Verdict = "passed"
	VerdictFail    Verdict = "failed"
	VerdictError   Verdict = "error"
	VerdictSkipped Verdict = "skipped"
)

// IsValid reports whether the Verdict is one of the known verdicts.
func (v Verdict) IsValid() bool {
	switch v {
	case VerdictPass, VerdictFail, VerdictError, VerdictSkipped:
		return true
	default:
		return false
	}
}

var (
	_ Event = TestCaseStarted{}
	_ Event = TestCaseFinished{}
	_ Event = TestSuiteStarted{}
	_ Event = TerminateConnection{}
	_ Event = ProjectInfo{}
	_ Event = Aborted{}
	_ Event = Errored{}
)

// TestCaseStarted is sent when the test runner starts executing a test case.
type TestCaseStarted struct {
	Envelope
}

// NewTestCaseStarted returns a new TestCaseStarted event.
func NewTestCaseStarted(opts ...Option) TestCaseStarted {
	return TestCaseStarted{Envelope: NewEnvelope(KindTestCaseStarted, opts...)}
}

// Kind returns KindTestCaseStarted.
func (TestCaseStarted) Kind() Kind { return KindTestCaseStarted }

// Validate implements the message.Event interface.
func (e TestCaseStarted) Validate() error { return e.validateAs(KindTestCaseStarted) }

// TestCaseFinished is sent when a test case has been executed,
// carrying its name and outcome.
type TestCaseFinished struct {
	Envelope

	Name    string  `json:"name"`
	Verdict Verdict `json:"verdict"`
}

// NewTestCaseFinished returns a new TestCaseFinished event.
func NewTestCaseFinished(name string, verdict Verdict, opts ...Option) TestCaseFinished {
	return TestCaseFinished{
		Envelope: NewEnvelope(KindTestCaseFinished, opts...),
		Name:     name,
		Verdict:  verdict,
	}
}

// Kind returns KindTestCaseFinished.
func (TestCaseFinished) Kind() Kind { return KindTestCaseFinished }

// Validate implements the message.Event interface.
func (e TestCaseFinished) Validate() error {
	if err := e.validateAs(KindTestCaseFinished); err != nil {
		return err
	}

	if e.Name == "" {
		return &ValidationError{Kind: KindTestCaseFinished, Field: "name", Reason: "is required"}
	}

	if e.Verdict == "" {
		return &ValidationError{Kind: KindTestCaseFinished, Field: "verdict", Reason: "is required"}
	}

	if !e.Verdict.IsValid() {
		return &ValidationError{
			Kind:   KindTestCaseFinished,
			Field:  "verdict",
			Reason: fmt.Sprintf("has unexpected value '%s'", e.Verdict),
		}
	}

	return nil
}

// String returns the human-readable form of the event, with the payload
// following the timestamp: "<kind>: [<timestamp>] {name: <name>, verdict: <verdict>}".
// Non-empty text is appended after the payload.
func (e TestCaseFinished) String() string {
	s := fmt.Sprintf("%s: [%s] {name: %s, verdict: %s}", e.Type, e.Timestamp, e.Name, e.Verdict)
	if e.Text != "" {
		s += " " + e.Text
	}

	return s
}

// TestSuiteStarted is sent when the test runner starts a new test session.
type TestSuiteStarted struct {
	Envelope
}

// NewTestSuiteStarted returns a new TestSuiteStarted event.
func NewTestSuiteStarted(opts ...Option) TestSuiteStarted {
	return TestSuiteStarted{Envelope: NewEnvelope(KindTestSuiteStarted, opts...)}
}

// Kind returns KindTestSuiteStarted.
func (TestSuiteStarted) Kind() Kind { return KindTestSuiteStarted }

// Validate implements the message.Event interface.
func (e TestSuiteStarted) Validate() error { return e.validateAs(KindTestSuiteStarted) }

// TerminateConnection asks the peer to close the connection.
//
// The text of a TerminateConnection event is always empty: any text
// supplied on construction or found on the wire is discarded.
type TerminateConnection struct {
	Envelope
}

// NewTerminateConnection returns a new TerminateConnection event.
func NewTerminateConnection(opts ...Option) TerminateConnection {
	opts = append(opts, WithText(""))

	return TerminateConnection{Envelope: NewEnvelope(KindTerminateConnection, opts...)}
}

// Kind returns KindTerminateConnection.
func (TerminateConnection) Kind() Kind { return KindTerminateConnection }

// Validate implements the message.Event interface.
func (e TerminateConnection) Validate() error { return e.validateAs(KindTerminateConnection) }

func (e *TerminateConnection) normalize() { e.Text = "" }

// ProjectInfo carries meta information about the project under test
// in its text.
type ProjectInfo struct {
	Envelope
}

// NewProjectInfo returns a new ProjectInfo event.
func NewProjectInfo(opts ...Option) ProjectInfo {
	return ProjectInfo{Envelope: NewEnvelope(KindProjectInfo, opts...)}
}

// Kind returns KindProjectInfo.
func (ProjectInfo) Kind() Kind { return KindProjectInfo }

// Validate implements the message.Event interface.
func (e ProjectInfo) Validate() error { return e.validateAs(KindProjectInfo) }

// Aborted is sent when the test run has been stopped prematurely.
type Aborted struct {
	Envelope
}

// NewAborted returns a new Aborted event.
func NewAborted(opts ...Option) Aborted {
	return Aborted{Envelope: NewEnvelope(KindAborted, opts...)}
}

// Kind returns KindAborted.
func (Aborted) Kind() Kind { return KindAborted }

// Validate implements the message.Event interface.
func (e Aborted) Validate() error { return e.validateAs(KindAborted) }

// Errored is sent when the test run has been aborted because of an error,
// described by the event text.
type Errored struct {
	Envelope
}

// NewErrored returns a new Errored event.
func NewErrored(opts ...Option) Errored {
	return Errored{Envelope: NewEnvelope(KindError, opts...)}
}

// Kind returns KindError.
func (Errored) Kind() Kind { return KindError }

// Validate implements the message.Event interface.
func (e Errored) Validate() error { return e.validateAs(KindError) }
