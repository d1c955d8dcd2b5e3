// Package common contains the processing shared by command handlers.
package common

import (
	"context"
	"fmt"
	"io"
	"time"

	"fjacquet/expense-categorizer/internal/container"
	"fjacquet/expense-categorizer/internal/logging"
	"fjacquet/expense-categorizer/internal/report"
	"fjacquet/expense-categorizer/internal/summary"
	"fjacquet/expense-categorizer/internal/validation"
)

// ProcessFile runs the whole pipeline for one statement: extract, categorize,
// summarize, print the summary to out and write the categorized CSV into the
// working directory. It returns the path of the written file.
func ProcessFile(ctx context.Context, c *container.Container, inputFile string, out io.Writer) (string, error) {
	log := c.GetLogger().WithField(logging.FieldInputFile, inputFile)
	start := time.Now()

	cfg := c.GetConfig()
	log.Info("Processing statement",
		logging.Field{Key: logging.FieldModel, Value: cfg.AI.Model},
		logging.Field{Key: logging.FieldMaxAttempts, Value: cfg.AI.MaxRetries},
		logging.Field{Key: "remote_enabled", Value: c.GetClassifier() != nil})

	if err := validation.ValidateInputFile(inputFile); err != nil {
		return "", err
	}

	transactions, err := c.GetParser().ParseFile(inputFile)
	if err != nil {
		return "", err
	}

	categorized := c.GetCategorizer().CategorizeAll(ctx, transactions)

	totals, err := summary.Summarize(categorized)
	if err != nil {
		return "", fmt.Errorf("error summarizing transactions: %w", err)
	}

	gen := c.GetReportGenerator()
	if err := gen.PrintSummary(out, totals); err != nil {
		return "", err
	}

	outputFile := report.OutputFileName(inputFile)
	if err := gen.WriteCSV(outputFile, categorized); err != nil {
		return "", err
	}
	if err := gen.PrintOutputLocation(out, outputFile); err != nil {
		return "", err
	}

	log.Info("Processing completed",
		logging.Field{Key: logging.FieldOutputFile, Value: outputFile},
		logging.Field{Key: logging.FieldCount, Value: len(categorized)},
		logging.Field{Key: logging.FieldDuration, Value: time.Since(start).Milliseconds()})
	return outputFile, nil
}
