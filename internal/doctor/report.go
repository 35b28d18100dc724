package doctor

import (
	"fmt"
	"strings"
)

// Kind tags a Result. The zero value is not a valid kind.
type Kind int

const (
	// KindOK means the checked condition is satisfied.
	KindOK Kind = iota + 1
	// KindWarn means the condition failed and should be corrected.
	KindWarn
	// KindSuggest is an optional improvement, not a failure.
	KindSuggest
)

func (k Kind) String() string {
	switch k {
	case KindOK:
		return "ok"
	case KindWarn:
		return "warn"
	case KindSuggest:
		return "suggest"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Result is one outcome of a diagnostic. Build it with OK, Warn or Suggest.
type Result struct {
	kind    Kind
	message string
}

// OK reports a satisfied condition.
func OK(msg string) Result { return Result{kind: KindOK, message: msg} }

// Warn reports a problem the user should correct.
func Warn(msg string) Result { return Result{kind: KindWarn, message: msg} }

// Suggest reports an optional improvement.
func Suggest(msg string) Result { return Result{kind: KindSuggest, message: msg} }

// Kind returns the result's tag.
func (r Result) Kind() Kind { return r.kind }

// Message returns the human-readable message.
func (r Result) Message() string { return r.message }

// Valid reports whether r has a known kind and a non-blank message.
func (r Result) Valid() bool {
	switch r.kind {
	case KindOK, KindWarn, KindSuggest:
		return strings.TrimSpace(r.message) != ""
	default:
		return false
	}
}

func (r Result) String() string {
	return r.kind.String() + ": " + r.message
}

// emptyResult replaces results that carry no message.
var emptyResult = Warn("diagnostic reported an empty result")

// sanitize turns an invalid result into a warn and folds the message onto one line.
func sanitize(r Result) Result {
	if !r.Valid() {
		return emptyResult
	}
	r.message = oneLine(r.message)
	return r
}

// oneLine joins the non-blank lines of s with "; ".
func oneLine(s string) string {
	if !strings.ContainsAny(s, "\r\n") {
		return strings.TrimSpace(s)
	}
	var parts []string
	for line := range strings.Lines(s) {
		if line = strings.TrimSpace(line); line != "" {
			parts = append(parts, line)
		}
	}
	return strings.Join(parts, "; ")
}
