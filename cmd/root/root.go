// Package root contains the root command for the application
package root

import (
	"context"

	"fjacquet/expense-categorizer/cmd/common"
	"fjacquet/expense-categorizer/internal/categorizer"
	"fjacquet/expense-categorizer/internal/config"
	"fjacquet/expense-categorizer/internal/container"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// flagKeys maps command-line flags to configuration keys.
var flagKeys = map[string]string{
	"max-retries": "ai.max_retries",
	"base-delay":  "ai.base_delay",
	"model":       "ai.model",
	"log-level":   "log.level",
	"log-format":  "log.format",
}

// NewCommand builds the root command. The options are handed to the
// container, which lets tests swap the logger and the remote classifier.
func NewCommand(opts ...container.Option) *cobra.Command {
	v := config.NewViper()

	cmd := &cobra.Command{
		Use:   "expense-categorizer <input_csv_file>",
		Short: "Categorize bank statement transactions and summarize spending.",
		Long: `expense-categorizer reads a bank statement CSV export
(status,date,description,debit,credit), asks Gemini for the spending category
of each transaction and falls back to keyword rules when the API is unavailable.

It prints the net total per category and writes the annotated transactions to
categorized_<input file name> in the current directory.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			// Usage is only useful for argument errors.
			cmd.SilenceUsage = true
			return run(cmd, v, args[0], opts)
		},
	}

	flags := cmd.Flags()
	flags.Int("max-retries", categorizer.DefaultMaxRetries, "Remote classification attempts per transaction")
	flags.Duration("base-delay", categorizer.DefaultBaseDelay, "Delay before the first retry; doubles on every retry")
	flags.String("model", "gemini-2.0-flash", "Gemini model name")
	flags.String("log-level", "info", "Log level (trace, debug, info, warn, error)")
	flags.String("log-format", "text", "Log format (text or json)")
	bindFlags(v, flags)

	return cmd
}

func bindFlags(v *viper.Viper, flags *pflag.FlagSet) {
	for name, key := range flagKeys {
		_ = v.BindPFlag(key, flags.Lookup(name))
	}
}

func run(cmd *cobra.Command, v *viper.Viper, inputFile string, opts []container.Option) error {
	cfg, err := config.FromViper(v)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	c, err := container.NewContainer(ctx, cfg, opts...)
	if err != nil {
		return err
	}
	defer func() {
		if err := c.Close(); err != nil {
			c.GetLogger().WithError(err).Warn("Failed to close container")
		}
	}()

	_, err = common.ProcessFile(ctx, c, inputFile, cmd.OutOrStdout())
	return err
}

// Execute runs the root command until it finishes or ctx is cancelled.
func Execute(ctx context.Context) error {
	return NewCommand().ExecuteContext(ctx)
}
