// Package parsererror defines the typed errors shared across the pipeline.
package parsererror

import "fmt"

// ParseError reports a value that could not be interpreted.
type ParseError struct {
	Parser string
	Field  string
	Value  string
	Err    error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s: failed to parse %s='%s': %v",
		e.Parser, e.Field, e.Value, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// ValidationError reports an input or setting that failed validation.
type ValidationError struct {
	Subject string
	Reason  string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed for %s: %s", e.Subject, e.Reason)
}

// CategorizationError reports that the remote classifier gave up on a
// description. The categorizer logs it and falls back to keyword rules; it
// never reaches the caller of Categorize.
type CategorizationError struct {
	Description string
	Attempts    int
	Err         error
}

func (e *CategorizationError) Error() string {
	return fmt.Sprintf("categorization failed for %q after %d attempt(s): %v",
		e.Description, e.Attempts, e.Err)
}

func (e *CategorizationError) Unwrap() error {
	return e.Err
}
