package logging

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMockLogger_ChildrenShareEntries(t *testing.T) {
	mock := NewMockLogger()
	child := mock.WithField(FieldRunID, "abc")
	child.WithError(errors.New("boom")).Warn("retrying", Field{Key: FieldAttempt, Value: 1})
	mock.Info("done")

	entries := mock.GetEntries()
	require.Len(t, entries, 2)

	assert.Equal(t, "WARN", entries[0].Level)
	assert.EqualError(t, entries[0].Error, "boom")
	assert.Equal(t, []Field{{Key: FieldRunID, Value: "abc"}, {Key: FieldAttempt, Value: 1}}, entries[0].Fields)

	assert.True(t, mock.HasEntry("INFO", "done"))
	assert.Len(t, mock.GetEntriesByLevel("WARN"), 1)
	assert.Empty(t, mock.GetEntriesByLevel("ERROR"))
}

func TestMockLogger_ZeroValueUsable(t *testing.T) {
	var mock MockLogger
	mock.Debug("zero value")
	assert.True(t, mock.HasEntry("DEBUG", "zero value"))
}

func TestLogEntry_FieldValue(t *testing.T) {
	logger := NewMockLogger()
	logger.WithField(FieldRunID, "abc").Info("hello", Field{Key: FieldCount, Value: 3})

	entry := logger.GetEntries()[0]
	value, ok := entry.FieldValue(FieldCount)
	assert.True(t, ok)
	assert.Equal(t, 3, value)

	_, ok = entry.FieldValue(FieldModel)
	assert.False(t, ok)
}
