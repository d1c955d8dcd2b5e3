// Package validation checks command inputs before any work starts.
package validation

import (
	"fmt"
	"os"
	"strings"

	"fjacquet/expense-categorizer/internal/parsererror"
)

// ValidateInputFile checks that path exists and is not a directory. Pipes and
// devices are accepted, so process substitution works.
// Stat failures are wrapped so callers can test them with errors.Is.
func ValidateInputFile(path string) error {
	if strings.TrimSpace(path) == "" {
		return &parsererror.ValidationError{Subject: "input file", Reason: "path is empty"}
	}

	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("error checking input file %s: %w", path, err)
	}

	if info.IsDir() {
		return &parsererror.ValidationError{Subject: path, Reason: "is a directory, expected a CSV file"}
	}
	return nil
}
