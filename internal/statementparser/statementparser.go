// Package statementparser turns a bank statement CSV export into transactions.
//
// The export has a header line followed by lines of exactly five fields:
// status, date, description, debit, credit. Lines with any other field count
// are skipped.
package statementparser

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"fjacquet/expense-categorizer/internal/logging"
	"fjacquet/expense-categorizer/internal/models"
)

const (
	numFields = 5
	colStatus = 0
	colDate   = 1
	colDesc   = 2
	colDebit  = 3
	colCredit = 4
)

// Parser reads statement exports.
type Parser struct {
	logger logging.Logger
}

// New returns a Parser logging through logger, or the package default when nil.
func New(logger logging.Logger) *Parser {
	if logger == nil {
		logger = logging.GetLogger()
	}
	return &Parser{logger: logger}
}

// ParseFile opens path and extracts its transactions.
func (p *Parser) ParseFile(path string) ([]models.Transaction, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("error opening statement file: %w", err)
	}
	defer func() {
		if err := file.Close(); err != nil {
			p.logger.WithError(err).Warn("Failed to close statement file")
		}
	}()

	p.logger.Info("Reading statement file", logging.Field{Key: logging.FieldInputFile, Value: path})

	transactions, err := p.Parse(file)
	if err != nil {
		return nil, fmt.Errorf("error parsing statement file %s: %w", path, err)
	}
	return transactions, nil
}

// Parse reads rows from r and extracts transactions.
func (p *Parser) Parse(r io.Reader) ([]models.Transaction, error) {
	rows, err := ReadRows(r)
	if err != nil {
		return nil, err
	}
	return p.ExtractTransactions(rows), nil
}

// ReadRows reads comma-separated, double-quoted rows. Rows may have differing
// field counts; filtering happens in ExtractTransactions.
func ReadRows(r io.Reader) ([][]string, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	var rows [][]string
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading statement CSV: %w", err)
		}
		rows = append(rows, rec)
	}
	return rows, nil
}

// ExtractTransactions converts rows into transactions. The first row is the
// header and is always dropped, as is every row without exactly five fields.
// Input order is preserved.
func (p *Parser) ExtractTransactions(rows [][]string) []models.Transaction {
	if len(rows) == 0 {
		return nil
	}

	transactions := make([]models.Transaction, 0, len(rows)-1)
	skipped := 0
	for i, row := range rows[1:] {
		if len(row) != numFields {
			skipped++
			p.logger.Debug("Skipping row with unexpected field count",
				logging.Field{Key: logging.FieldRow, Value: i + 2},
				logging.Field{Key: logging.FieldFieldCount, Value: len(row)})
			continue
		}
		transactions = append(transactions, extractRow(row))
	}

	p.logger.Info("Extracted transactions from statement",
		logging.Field{Key: logging.FieldCount, Value: len(transactions)},
		logging.Field{Key: "skipped", Value: skipped})

	return transactions
}

func extractRow(row []string) models.Transaction {
	debit := row[colDebit]
	credit := row[colCredit]

	amount := credit
	txType := models.TypeCredit
	if debit != "" {
		amount = debit
		txType = models.TypeDebit
	}
	if strings.TrimSpace(amount) == "" {
		amount = models.DefaultAmount
	}

	return models.Transaction{
		Status:      row[colStatus],
		Date:        row[colDate],
		Description: row[colDesc],
		Amount:      amount,
		Type:        txType,
	}
}
