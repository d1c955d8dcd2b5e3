// Package models provides the data structures shared by the categorization pipeline.
package models

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// TransactionType tells whether a statement line took money out (Debit) or
// brought money in (Credit).
type TransactionType string

const (
	TypeDebit  TransactionType = "Debit"
	TypeCredit TransactionType = "Credit"
)

// DefaultAmount is used when both amount columns of a statement line are blank.
const DefaultAmount = "0"

// Transaction is one line of a bank statement export. Amount keeps the text of
// the statement so it is written back unchanged.
type Transaction struct {
	Status      string          `json:"status"`
	Date        string          `json:"date"`
	Description string          `json:"description"`
	Amount      string          `json:"amount"`
	Type        TransactionType `json:"type"`
}

// IsCredit reports whether the transaction reduces its category total.
func (t Transaction) IsCredit() bool {
	return t.Type == TypeCredit
}

// SignedAmount parses Amount and negates it for credits.
func (t Transaction) SignedAmount() (decimal.Decimal, error) {
	amount, err := decimal.NewFromString(strings.TrimSpace(t.Amount))
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid amount %q: %w", t.Amount, err)
	}
	if t.IsCredit() {
		amount = amount.Neg()
	}
	return amount, nil
}

// CategorizedTransaction is a Transaction with the category assigned to it.
type CategorizedTransaction struct {
	Transaction
	Category string `json:"category"`
}

// WithCategory returns a CategorizedTransaction for t.
func (t Transaction) WithCategory(category string) CategorizedTransaction {
	return CategorizedTransaction{
		Transaction: t,
		Category:    category,
	}
}
