package root

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"fjacquet/expense-categorizer/internal/categorizer"
	"fjacquet/expense-categorizer/internal/container"
	"fjacquet/expense-categorizer/internal/logging"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolate runs the test in an empty working directory and home so no config
// file or environment override leaks in.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	chdir(t, dir)
	t.Setenv("HOME", t.TempDir())
	for _, env := range []string{"GEMINI_API_KEY", "EXPCAT_LOG_LEVEL", "EXPCAT_LOG_FORMAT", "EXPCAT_AI_MODEL", "EXPCAT_AI_MAX_RETRIES", "EXPCAT_AI_BASE_DELAY"} {
		t.Setenv(env, "")
	}
	return dir
}

func execute(t *testing.T, args []string, opts ...container.Option) (string, string, error) {
	t.Helper()
	cmd := NewCommand(opts...)
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return stdout.String(), stderr.String(), err
}

func TestRootCommand_Metadata(t *testing.T) {
	cmd := NewCommand()
	assert.Equal(t, "expense-categorizer <input_csv_file>", cmd.Use)
	assert.Contains(t, cmd.Long, "categorized_<input file name>")
	assert.NotNil(t, cmd.RunE)

	for name := range flagKeys {
		assert.NotNil(t, cmd.Flags().Lookup(name), name)
	}
}

func TestRootCommand_WrongArity(t *testing.T) {
	tests := map[string][]string{
		"no arguments":  {},
		"two arguments": {"a.csv", "b.csv"},
	}
	for name, args := range tests {
		t.Run(name, func(t *testing.T) {
			isolate(t)
			called := false
			stub := categorizer.TextClassifierFunc(func(context.Context, string, string) (string, error) {
				called = true
				return "", nil
			})

			stdout, stderr, err := execute(t, args, container.WithLogger(logging.NewMockLogger()), container.WithClassifier(stub))
			require.Error(t, err)
			assert.Contains(t, err.Error(), "accepts 1 arg(s)")
			assert.Contains(t, stdout+stderr, "Usage:")
			assert.False(t, called)
		})
	}
}

func TestRootCommand_EndToEndWithFailingRemote(t *testing.T) {
	dir := isolate(t)
	input := filepath.Join(t.TempDir(), "bank.csv")
	require.NoError(t, os.WriteFile(input, []byte(
		"status,date,description,debit,credit\n"+
			"posted,2024-01-01,UBER TRIP,12.50,\n"), 0o600))

	calls := 0
	stub := categorizer.TextClassifierFunc(func(context.Context, string, string) (string, error) {
		calls++
		return "", errors.New("503 Service Unavailable")
	})
	logger := logging.NewMockLogger()

	stdout, _, err := execute(t,
		[]string{input, "--max-retries", "2", "--base-delay", "0s"},
		container.WithLogger(logger), container.WithClassifier(stub))
	require.NoError(t, err)

	assert.Equal(t, 2, calls)
	assert.Contains(t, stdout, "Expense Summary:\nTransportation: $12.50\n")
	assert.Contains(t, stdout, "Detailed transactions have been written to categorized_bank.csv")
	assert.True(t, logger.HasEntry("WARN", "Remote classification exhausted, using fallback categorization"))

	data, err := os.ReadFile(filepath.Join(dir, "categorized_bank.csv"))
	require.NoError(t, err)
	assert.Equal(t, "Date,Description,Amount,Category,Type\n2024-01-01,UBER TRIP,12.50,Transportation,Debit\n", string(data))
}

func TestRootCommand_InvalidFlagValue(t *testing.T) {
	isolate(t)
	input := filepath.Join(t.TempDir(), "bank.csv")
	require.NoError(t, os.WriteFile(input, []byte("h\n"), 0o600))

	stdout, stderr, err := execute(t, []string{input, "--log-format", "xml"}, container.WithLogger(logging.NewMockLogger()))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "log.format")
	assert.NotContains(t, stdout+stderr, "Usage:")
}

func TestRootCommand_MissingInputFile(t *testing.T) {
	isolate(t)

	_, _, err := execute(t, []string{filepath.Join(t.TempDir(), "nope.csv")}, container.WithLogger(logging.NewMockLogger()))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

// chdir changes the working directory for the duration of the test
// (equivalent of testing.T.Chdir, which needs Go 1.24).
func chdir(t *testing.T, dir string) {
	t.Helper()
	original, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() {
		require.NoError(t, os.Chdir(original))
	})
}
