// Package report renders the expense summary and writes the categorized CSV.
package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"fjacquet/expense-categorizer/internal/logging"
	"fjacquet/expense-categorizer/internal/models"

	"github.com/gocarina/gocsv"
)

// OutputPrefix is prepended to the input file name to name the output file.
const OutputPrefix = "categorized_"

// Row is one line of the categorized CSV.
type Row struct {
	Date        string `csv:"Date"`
	Description string `csv:"Description"`
	Amount      string `csv:"Amount"`
	Category    string `csv:"Category"`
	Type        string `csv:"Type"`
}

// Generator prints summaries and writes categorized transactions.
type Generator struct {
	logger logging.Logger
}

// NewGenerator creates a new instance of Generator.
func NewGenerator(logger logging.Logger) *Generator {
	if logger == nil {
		logger = logging.GetLogger()
	}
	return &Generator{logger: logger}
}

// OutputFileName returns the name of the output file for input. Only the base
// name is kept, so the file lands in the working directory.
func OutputFileName(input string) string {
	return OutputPrefix + filepath.Base(input)
}

// FormatAmount renders a total with two decimals. Ties round to even on the
// exact binary value, so 2.675 prints as 2.67.
func FormatAmount(total float64) string {
	return strconv.FormatFloat(total, 'f', 2, 64)
}

// PrintSummary writes the header line followed by one "<category>: $X.XX"
// line per category, in summary order.
func (g *Generator) PrintSummary(w io.Writer, s *models.Summary) error {
	if _, err := fmt.Fprintln(w, "Expense Summary:"); err != nil {
		return fmt.Errorf("failed to write summary: %w", err)
	}
	if s == nil {
		return nil
	}
	for _, entry := range s.Entries() {
		if _, err := fmt.Fprintf(w, "%s: $%s\n", entry.Category, FormatAmount(entry.Total)); err != nil {
			return fmt.Errorf("failed to write summary: %w", err)
		}
	}
	return nil
}

// PrintOutputLocation tells the user where the categorized CSV went.
func (g *Generator) PrintOutputLocation(w io.Writer, path string) error {
	if _, err := fmt.Fprintf(w, "\nDetailed transactions have been written to %s\n", path); err != nil {
		return fmt.Errorf("failed to write output location: %w", err)
	}
	return nil
}

// Rows converts transactions to output rows, preserving order.
func Rows(transactions []models.CategorizedTransaction) []Row {
	rows := make([]Row, 0, len(transactions))
	for _, tx := range transactions {
		rows = append(rows, Row{
			Date:        tx.Date,
			Description: tx.Description,
			Amount:      tx.Amount,
			Category:    tx.Category,
			Type:        string(tx.Type),
		})
	}
	return rows
}

// Write encodes transactions as CSV with a header row.
func (g *Generator) Write(w io.Writer, transactions []models.CategorizedTransaction) error {
	rows := Rows(transactions)
	if err := gocsv.MarshalCSV(&rows, gocsv.NewSafeCSVWriter(csv.NewWriter(w))); err != nil {
		return fmt.Errorf("error marshalling categorized transactions: %w", err)
	}
	return nil
}

// WriteCSV creates (or truncates) path and writes transactions to it.
func (g *Generator) WriteCSV(path string, transactions []models.CategorizedTransaction) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("error creating output file: %w", err)
	}

	if err := g.Write(file, transactions); err != nil {
		_ = file.Close()
		return err
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("error closing output file: %w", err)
	}

	g.logger.Info("Wrote categorized transactions",
		logging.Field{Key: logging.FieldOutputFile, Value: path},
		logging.Field{Key: logging.FieldCount, Value: len(transactions)})
	return nil
}
