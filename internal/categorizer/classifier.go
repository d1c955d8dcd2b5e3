package categorizer

import (
	"context"
	"fmt"
)

// SystemInstruction is sent with every remote classification request.
const SystemInstruction = "You are a helpful assistant that categorizes expenses. Respond with only the category name."

// MaxOutputTokens caps the length of a remote completion.
const MaxOutputTokens = 10

// TextClassifier is the remote text-completion service used to label
// descriptions. Any error it returns is treated as transient and retried.
type TextClassifier interface {
	Classify(ctx context.Context, systemInstruction, prompt string) (string, error)
}

// TextClassifierFunc adapts a function to TextClassifier.
type TextClassifierFunc func(ctx context.Context, systemInstruction, prompt string) (string, error)

func (f TextClassifierFunc) Classify(ctx context.Context, systemInstruction, prompt string) (string, error) {
	return f(ctx, systemInstruction, prompt)
}

// BuildPrompt returns the user prompt for a transaction description.
func BuildPrompt(description string) string {
	return fmt.Sprintf("Categorize this expense into a broad category "+
		"(e.g., Groceries, Dining, Transportation, Entertainment, Utilities, etc.):\nDescription: %s", description)
}
