// Package categorizer assigns spending categories to transaction descriptions.
//
// A remote TextClassifier (Gemini in production) is asked first. Failed calls
// are retried with exponential backoff; once the attempts are used up the
// description is matched against a fixed keyword table instead. Categorize
// therefore always yields a category.
package categorizer

import (
	"context"
	"time"

	"fjacquet/expense-categorizer/internal/logging"
	"fjacquet/expense-categorizer/internal/models"
	"fjacquet/expense-categorizer/internal/parsererror"
)

// Sources reported in logs.
const (
	SourceRemote   = "remote"
	SourceFallback = "fallback"
)

// Options tunes the retry policy.
type Options struct {
	MaxRetries int
	BaseDelay  time.Duration
}

// DefaultOptions returns the standard retry policy: five attempts, one second base delay.
func DefaultOptions() Options {
	return Options{MaxRetries: DefaultMaxRetries, BaseDelay: DefaultBaseDelay}
}

// Categorizer labels descriptions.
type Categorizer struct {
	client     TextClassifier
	maxRetries int
	backoff    Backoff
	logger     logging.Logger
	sleep      func(ctx context.Context, d time.Duration) error
}

// NewCategorizer returns a Categorizer. A nil client makes every description
// go straight to the keyword fallback.
func NewCategorizer(client TextClassifier, opts Options, logger logging.Logger) *Categorizer {
	if logger == nil {
		logger = logging.GetLogger()
	}
	if opts.MaxRetries < 1 {
		opts.MaxRetries = DefaultMaxRetries
	}
	if opts.BaseDelay < 0 {
		opts.BaseDelay = 0
	}
	return &Categorizer{
		client:     client,
		maxRetries: opts.MaxRetries,
		backoff:    NewBackoff(opts.BaseDelay),
		logger:     logger,
		sleep:      sleepContext,
	}
}

// Categorize returns the category for description. It never fails.
func (c *Categorizer) Categorize(ctx context.Context, description string) string {
	category, source := c.categorize(ctx, description)
	c.logger.Debug("Transaction categorized",
		logging.Field{Key: logging.FieldDescription, Value: description},
		logging.Field{Key: logging.FieldCategory, Value: category},
		logging.Field{Key: logging.FieldSource, Value: source})
	return category
}

func (c *Categorizer) categorize(ctx context.Context, description string) (string, string) {
	if c.client == nil {
		return FallbackCategory(description), SourceFallback
	}

	prompt := BuildPrompt(description)
	for attempt := 0; attempt < c.maxRetries; attempt++ {
		raw, err := c.client.Classify(ctx, SystemInstruction, prompt)
		if err == nil {
			return NormalizeLabel(raw), SourceRemote
		}

		if attempt == c.maxRetries-1 {
			c.logger.WithError(&parsererror.CategorizationError{
				Description: description,
				Attempts:    c.maxRetries,
				Err:         err,
			}).Warn("Remote classification exhausted, using fallback categorization")
			return FallbackCategory(description), SourceFallback
		}

		delay := c.backoff.Delay(attempt)
		c.logger.WithError(err).Warn("Remote classification failed, retrying",
			logging.Field{Key: logging.FieldAttempt, Value: attempt + 1},
			logging.Field{Key: logging.FieldMaxAttempts, Value: c.maxRetries},
			logging.Field{Key: logging.FieldDelay, Value: delay.String()})

		if err := c.sleep(ctx, delay); err != nil {
			c.logger.WithError(err).Warn("Retry wait interrupted, using fallback categorization",
				logging.Field{Key: logging.FieldDescription, Value: description})
			return FallbackCategory(description), SourceFallback
		}
	}

	// Unreachable while maxRetries >= 1.
	return FallbackCategory(description), SourceFallback
}

// CategorizeAll labels each transaction in order, one at a time.
func (c *Categorizer) CategorizeAll(ctx context.Context, transactions []models.Transaction) []models.CategorizedTransaction {
	categorized := make([]models.CategorizedTransaction, 0, len(transactions))
	for _, tx := range transactions {
		categorized = append(categorized, tx.WithCategory(c.Categorize(ctx, tx.Description)))
	}

	c.logger.Info("Categorized transactions", logging.Field{Key: logging.FieldCount, Value: len(categorized)})
	return categorized
}
