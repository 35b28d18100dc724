package doctor

import (
	"context"
	"fmt"
	"strings"
)

// Diagnostic is a single check. Diagnose returns once all reporting is done;
// a non-nil error is a structural failure that aborts the whole run.
// Risky probes belong inside Reporter.Test, where failures are contained.
type Diagnostic interface {
	Diagnose(ctx context.Context, r Reporter) error
}

// DiagnosticFunc adapts a function to the Diagnostic interface.
type DiagnosticFunc func(ctx context.Context, r Reporter) error

// Diagnose calls f(ctx, r).
func (f DiagnosticFunc) Diagnose(ctx context.Context, r Reporter) error {
	return f(ctx, r)
}

// TestFunc is a deferred probe evaluated by the engine. A returned error or
// a panic is printed as a warn line instead of the result.
type TestFunc func(ctx context.Context) (Result, error)

// Reporter receives the outcomes of one diagnostic. Both methods block until
// the line is printed. Calls are serialised, so a diagnostic may report from
// goroutines it waits for; calls made after Diagnose returned are dropped.
type Reporter interface {
	// Report prints r.
	Report(r Result)
	// Test evaluates fn and prints its result, or a warn if it fails.
	Test(fn TestFunc)
}

// ErrorText is the text of a contained probe failure.
// A nil error yields "unknown error"; an error with a blank message
// falls back to its type name.
func ErrorText(err error) string {
	if err == nil {
		return "unknown error"
	}
	if msg := oneLine(err.Error()); msg != "" {
		return msg
	}
	return fmt.Sprintf("%T", err)
}

// panicError wraps a value recovered from a panicking TestFunc.
type panicError struct {
	value any
}

func (e *panicError) Error() string {
	return "panic: " + strings.TrimSpace(fmt.Sprint(e.value))
}

func (e *panicError) Unwrap() error {
	if err, ok := e.value.(error); ok {
		return err
	}
	return nil
}

// evaluate runs fn, containing errors and panics as warn results.
func evaluate(ctx context.Context, fn TestFunc) (res Result) {
	if fn == nil {
		return Warn("diagnostic reported a nil test")
	}
	defer func() {
		if v := recover(); v != nil {
			res = Warn(ErrorText(&panicError{value: v}))
		}
	}()

	r, err := fn(ctx)
	if err != nil {
		return Warn(ErrorText(err))
	}
	return r
}
