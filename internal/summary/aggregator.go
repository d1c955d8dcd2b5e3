// Package summary totals categorized transactions per category.
package summary

import (
	"fjacquet/expense-categorizer/internal/models"
	"fjacquet/expense-categorizer/internal/parsererror"
)

// Summarize adds up the signed amount of every transaction by category.
// Debits count positive and credits negative, so a category total is the
// money spent in it net of refunds. Categories keep first-seen order.
//
// An amount that is not a decimal number aborts the run with a
// *parsererror.ParseError.
func Summarize(transactions []models.CategorizedTransaction) (*models.Summary, error) {
	s := models.NewSummary()
	for _, tx := range transactions {
		amount, err := tx.SignedAmount()
		if err != nil {
			return nil, &parsererror.ParseError{
				Parser: "summary",
				Field:  "amount",
				Value:  tx.Amount,
				Err:    err,
			}
		}
		s.Add(tx.Category, amount.InexactFloat64())
	}
	return s, nil
}
