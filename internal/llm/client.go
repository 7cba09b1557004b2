package llm

import (
	"context"
)

// Client defines the interface for LLM providers.
type Client interface {
	Classify(ctx context.Context, prompt string) (ClassificationResponse, error)
}

// systemPrompt pins both providers to bare-JSON replies; the parser still
// tolerates fenced and bare-word answers for the models that wander anyway.
const systemPrompt = "You are a merchant spending classifier. Respond with ONLY a valid JSON object, no explanatory text and no markdown formatting. Start your response with { and end with }."

// ClassificationResponse contains the raw category text returned by a provider.
type ClassificationResponse struct {
	Category string
}
