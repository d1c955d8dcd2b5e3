package categorizer

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"fjacquet/expense-categorizer/internal/logging"

	"github.com/google/generative-ai-go/genai"
	"golang.org/x/time/rate"
	"google.golang.org/api/option"
)

// GeminiOptions configures a GeminiClient.
type GeminiOptions struct {
	APIKey            string
	Model             string
	Timeout           time.Duration // per request; 0 disables
	RequestsPerMinute int           // 0 disables client-side rate limiting
}

// GeminiClient implements TextClassifier with the Google Gemini API.
type GeminiClient struct {
	client  *genai.Client
	model   string
	timeout time.Duration
	limiter *rate.Limiter
	logger  logging.Logger
}

// NewGeminiClient creates a Gemini client authenticated with opts.APIKey.
func NewGeminiClient(ctx context.Context, opts GeminiOptions, logger logging.Logger) (*GeminiClient, error) {
	if strings.TrimSpace(opts.APIKey) == "" {
		return nil, errors.New("gemini API key is empty")
	}
	if strings.TrimSpace(opts.Model) == "" {
		return nil, errors.New("gemini model is empty")
	}
	if logger == nil {
		logger = logging.GetLogger()
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(opts.APIKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &GeminiClient{
		client:  client,
		model:   opts.Model,
		timeout: opts.Timeout,
		limiter: newLimiter(opts.RequestsPerMinute),
		logger:  logger.WithField(logging.FieldModel, opts.Model),
	}, nil
}

func newLimiter(requestsPerMinute int) *rate.Limiter {
	if requestsPerMinute <= 0 {
		return nil
	}
	return rate.NewLimiter(rate.Every(time.Minute/time.Duration(requestsPerMinute)), 1)
}

// Classify sends one completion request and returns the trimmed response text.
func (c *GeminiClient) Classify(ctx context.Context, systemInstruction, prompt string) (string, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return "", fmt.Errorf("rate limiter: %w", err)
		}
	}

	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	model := c.client.GenerativeModel(c.model)
	model.SystemInstruction = genai.NewUserContent(genai.Text(systemInstruction))
	model.SetMaxOutputTokens(MaxOutputTokens)

	start := time.Now()
	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("gemini API error: %w", err)
	}

	// An empty reply counts as a failed attempt, so the caller retries it.
	text, err := responseText(resp)
	if err != nil {
		return "", err
	}

	c.logger.Debug("Gemini responded",
		logging.Field{Key: logging.FieldDuration, Value: time.Since(start).Milliseconds()},
		logging.Field{Key: "response", Value: text})
	return text, nil
}

// Close releases the underlying connection.
func (c *GeminiClient) Close() error {
	return c.client.Close()
}

// responseText concatenates the text parts of the first candidate.
func responseText(resp *genai.GenerateContentResponse) (string, error) {
	if resp == nil || len(resp.Candidates) == 0 {
		if resp != nil && resp.PromptFeedback != nil && resp.PromptFeedback.BlockReason != genai.BlockReasonUnspecified {
			return "", fmt.Errorf("gemini blocked the prompt: %s", resp.PromptFeedback.BlockReason)
		}
		return "", errors.New("no response from Gemini API")
	}

	candidate := resp.Candidates[0]
	if candidate.Content == nil {
		return "", errors.New("gemini candidate has no content")
	}

	var sb strings.Builder
	for _, part := range candidate.Content.Parts {
		if t, ok := part.(genai.Text); ok {
			sb.WriteString(string(t))
		}
	}

	text := strings.TrimSpace(sb.String())
	if text == "" {
		return "", errors.New("gemini returned an empty completion")
	}
	return text, nil
}
