package logging

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFieldNamesAreUnique(t *testing.T) {
	names := []string{
		FieldRunID, FieldInputFile, FieldOutputFile, FieldRow, FieldFieldCount,
		FieldDescription, FieldCategory, FieldSource, FieldAttempt, FieldMaxAttempts,
		FieldDelay, FieldModel, FieldCount, FieldDuration,
	}

	seen := make(map[string]bool, len(names))
	for _, n := range names {
		assert.NotEmpty(t, n)
		assert.False(t, seen[n], "duplicate field name %q", n)
		seen[n] = true
	}
}
