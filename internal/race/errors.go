package race

import (
	"errors"
	"fmt"
)

var (
	// ErrMissingContext means the schedule year could not be determined.
	ErrMissingContext = errors.New("missing year context")

	// ErrUnknownGrade means a race's class token is not in the grade table.
	ErrUnknownGrade = errors.New("unknown grade")

	// ErrMalformedDate means a race's date text has an unexpected shape or names
	// a day that does not exist.
	ErrMalformedDate = errors.New("malformed date")

	// ErrStructural means a race node is missing an expected element.
	ErrStructural = errors.New("missing race element")
)

// ParseError records which race node failed and why. Err wraps one of the
// sentinels above.
type ParseError struct {
	Index int    // position of the race node in the document, 0-based
	Field string // "grade", "date", "name" or "course"
	Value string // offending text, empty when the element is missing
	Err   error
}

func (e *ParseError) Error() string {
	if e.Value == "" {
		return fmt.Sprintf("race %d: %s: %v", e.Index, e.Field, e.Err)
	}
	return fmt.Sprintf("race %d: %s %q: %v", e.Index, e.Field, e.Value, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
