// Package container wires the dependencies of the expense-categorizer
// pipeline in one place so commands and tests build them the same way.
package container

import (
	"context"
	"fmt"

	"fjacquet/expense-categorizer/internal/categorizer"
	"fjacquet/expense-categorizer/internal/config"
	"fjacquet/expense-categorizer/internal/logging"
	"fjacquet/expense-categorizer/internal/report"
	"fjacquet/expense-categorizer/internal/statementparser"

	"github.com/google/uuid"
)

// Option customizes NewContainer.
type Option func(*options)

type options struct {
	logger     logging.Logger
	classifier categorizer.TextClassifier
}

// WithLogger replaces the logrus logger built from the configuration.
func WithLogger(logger logging.Logger) Option {
	return func(o *options) { o.logger = logger }
}

// WithClassifier replaces the Gemini client. The API key is not required
// when a classifier is supplied.
func WithClassifier(classifier categorizer.TextClassifier) Option {
	return func(o *options) { o.classifier = classifier }
}

// Container holds the dependencies of one run. Fields are private; use the
// getters.
type Container struct {
	runID       string
	logger      logging.Logger
	config      *config.Config
	gemini      *categorizer.GeminiClient
	classifier  categorizer.TextClassifier
	categorizer *categorizer.Categorizer
	parser      *statementparser.Parser
	report      *report.Generator
}

// NewContainer creates and wires all dependencies for cfg.
//
// Without a Gemini API key (and without WithClassifier) the categorizer runs
// on the keyword fallback only and a warning is logged.
func NewContainer(ctx context.Context, cfg *config.Config, opts ...Option) (*Container, error) {
	if cfg == nil {
		return nil, fmt.Errorf("configuration cannot be nil")
	}

	var o options
	for _, opt := range opts {
		opt(&o)
	}

	runID := uuid.NewString()
	logger := o.logger
	if logger == nil {
		logger = logging.NewLogrusAdapter(cfg.Log.Level, cfg.Log.Format)
	}
	logger = logger.WithField(logging.FieldRunID, runID)
	// Components built without an explicit logger fall back to this one.
	logging.SetLogger(logger)

	c := &Container{
		runID:  runID,
		logger: logger,
		config: cfg,
	}

	switch {
	case o.classifier != nil:
		c.classifier = o.classifier
	case cfg.HasAPIKey():
		gemini, err := categorizer.NewGeminiClient(ctx, categorizer.GeminiOptions{
			APIKey:            cfg.AI.APIKey,
			Model:             cfg.AI.Model,
			Timeout:           cfg.Timeout(),
			RequestsPerMinute: cfg.AI.RequestsPerMinute,
		}, logger)
		if err != nil {
			return nil, fmt.Errorf("failed to create remote classifier: %w", err)
		}
		c.gemini = gemini
		c.classifier = gemini
	default:
		logger.Warn(config.APIKeyEnv + " is not set, categorizing with keyword rules only")
	}

	c.categorizer = categorizer.NewCategorizer(c.classifier, categorizer.Options{
		MaxRetries: cfg.AI.MaxRetries,
		BaseDelay:  cfg.AI.BaseDelay,
	}, logger)
	c.parser = statementparser.New(logger)
	c.report = report.NewGenerator(logger)

	logger.Debug("Container initialized",
		logging.Field{Key: logging.FieldModel, Value: cfg.AI.Model},
		logging.Field{Key: "remote_enabled", Value: c.classifier != nil},
		logging.Field{Key: logging.FieldMaxAttempts, Value: cfg.AI.MaxRetries})

	return c, nil
}

// RunID identifies this run in the logs.
func (c *Container) RunID() string {
	return c.runID
}

// GetLogger returns the run-scoped logger.
func (c *Container) GetLogger() logging.Logger {
	return c.logger
}

// GetConfig returns the configuration the container was built from.
func (c *Container) GetConfig() *config.Config {
	return c.config
}

// GetClassifier returns the remote classifier, or nil when only the keyword
// fallback is available.
func (c *Container) GetClassifier() categorizer.TextClassifier {
	return c.classifier
}

// GetCategorizer returns the categorizer.
func (c *Container) GetCategorizer() *categorizer.Categorizer {
	return c.categorizer
}

// GetParser returns the statement parser.
func (c *Container) GetParser() *statementparser.Parser {
	return c.parser
}

// GetReportGenerator returns the summary and CSV writer.
func (c *Container) GetReportGenerator() *report.Generator {
	return c.report
}

// Close releases the Gemini connection, if one was opened.
func (c *Container) Close() error {
	if c.gemini != nil {
		if err := c.gemini.Close(); err != nil {
			return fmt.Errorf("failed to close remote classifier: %w", err)
		}
	}
	c.logger.Debug("Container closed")
	return nil
}
