package container

import (
	"context"
	"testing"
	"time"

	"fjacquet/expense-categorizer/internal/categorizer"
	"fjacquet/expense-categorizer/internal/config"
	"fjacquet/expense-categorizer/internal/logging"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.Log.Level = "info"
	cfg.Log.Format = "text"
	cfg.AI.Model = "gemini-2.0-flash"
	cfg.AI.MaxRetries = 2
	cfg.AI.BaseDelay = 0
	cfg.AI.TimeoutSeconds = 30
	return cfg
}

func TestNewContainer_NilConfig(t *testing.T) {
	_, err := NewContainer(context.Background(), nil)
	assert.EqualError(t, err, "configuration cannot be nil")
}

func TestNewContainer_WithoutAPIKeyUsesFallback(t *testing.T) {
	logger := logging.NewMockLogger()
	c, err := NewContainer(context.Background(), testConfig(), WithLogger(logger))
	require.NoError(t, err)
	defer func() { require.NoError(t, c.Close()) }()

	assert.Nil(t, c.GetClassifier())
	assert.True(t, logger.HasEntry("WARN", "GEMINI_API_KEY is not set, categorizing with keyword rules only"))
	assert.Equal(t, "Transportation", c.GetCategorizer().Categorize(context.Background(), "UBER TRIP"))

	assert.NotNil(t, c.GetParser())
	assert.NotNil(t, c.GetReportGenerator())
	assert.Same(t, c.config, c.GetConfig())
}

func TestNewContainer_WithClassifier(t *testing.T) {
	cfg := testConfig()
	var calls int
	stub := categorizer.TextClassifierFunc(func(context.Context, string, string) (string, error) {
		calls++
		return "groceries", nil
	})

	c, err := NewContainer(context.Background(), cfg, WithLogger(logging.NewMockLogger()), WithClassifier(stub))
	require.NoError(t, err)
	defer func() { require.NoError(t, c.Close()) }()

	assert.NotNil(t, c.GetClassifier())
	assert.Equal(t, "Groceries", c.GetCategorizer().Categorize(context.Background(), "WHOLE FOODS"))
	assert.Equal(t, 1, calls)
}

func TestNewContainer_RunIDOnEveryEntry(t *testing.T) {
	logger := logging.NewMockLogger()
	c, err := NewContainer(context.Background(), testConfig(), WithLogger(logger))
	require.NoError(t, err)

	_, err = uuid.Parse(c.RunID())
	require.NoError(t, err)

	c.GetLogger().Info("hello")
	entries := logger.GetEntries()
	require.NotEmpty(t, entries)
	for _, e := range entries {
		value, ok := e.FieldValue(logging.FieldRunID)
		require.True(t, ok, e.Message)
		assert.Equal(t, c.RunID(), value)
	}
}

func TestNewContainer_InstallsFallbackLogger(t *testing.T) {
	previous := logging.GetLogger()
	t.Cleanup(func() { logging.SetLogger(previous) })

	mock := logging.NewMockLogger()
	c, err := NewContainer(context.Background(), testConfig(), WithLogger(mock))
	require.NoError(t, err)

	logging.GetLogger().Info("from default")
	require.True(t, mock.HasEntry("INFO", "from default"))
	for _, e := range mock.GetEntriesByLevel("INFO") {
		value, _ := e.FieldValue(logging.FieldRunID)
		assert.Equal(t, c.RunID(), value)
	}
}

func TestNewContainer_DistinctRunIDs(t *testing.T) {
	a, err := NewContainer(context.Background(), testConfig(), WithLogger(logging.NewMockLogger()))
	require.NoError(t, err)
	b, err := NewContainer(context.Background(), testConfig(), WithLogger(logging.NewMockLogger()))
	require.NoError(t, err)
	assert.NotEqual(t, a.RunID(), b.RunID())
}

func TestNewContainer_RetryOptionsFromConfig(t *testing.T) {
	cfg := testConfig()
	cfg.AI.MaxRetries = 3
	cfg.AI.BaseDelay = time.Millisecond

	var calls int
	stub := categorizer.TextClassifierFunc(func(context.Context, string, string) (string, error) {
		calls++
		return "", assert.AnError
	})

	c, err := NewContainer(context.Background(), cfg, WithLogger(logging.NewMockLogger()), WithClassifier(stub))
	require.NoError(t, err)

	assert.Equal(t, "Entertainment", c.GetCategorizer().Categorize(context.Background(), "NETFLIX.COM"))
	assert.Equal(t, 3, calls)
}
