package llm

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/zhenghao/billsnap/internal/common"
	"github.com/zhenghao/billsnap/internal/model"
	"github.com/zhenghao/billsnap/internal/service"
)

// Classifier implements service.MerchantClassifier on top of a provider
// Client, adding rate limiting, retries, and a short-lived result cache.
type Classifier struct {
	client      Client
	cache       *categoryCache
	logger      *slog.Logger
	rateLimiter *rateLimiter
	retryOpts   service.RetryOptions
}

// Config holds configuration for the LLM classifier.
type Config struct {
	Provider    string
	APIKey      string
	Model       string
	MaxRetries  int
	RetryDelay  time.Duration
	CacheTTL    time.Duration
	RateLimit   int
	Temperature float64
	MaxTokens   int
}

// NewClassifier creates a new LLM-based merchant classifier.
func NewClassifier(cfg Config, logger *slog.Logger) (*Classifier, error) {
	client, err := NewClient(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create LLM client: %w", err)
	}

	retryOpts := service.RetryOptions{
		MaxAttempts:  cfg.MaxRetries,
		InitialDelay: cfg.RetryDelay,
		MaxDelay:     30 * time.Second,
		Multiplier:   2.0,
	}
	if retryOpts.MaxAttempts == 0 {
		retryOpts.MaxAttempts = 3
	}
	if retryOpts.InitialDelay == 0 {
		retryOpts.InitialDelay = time.Second
	}

	return &Classifier{
		client:      client,
		cache:       newCategoryCache(cfg.CacheTTL),
		logger:      logger,
		retryOpts:   retryOpts,
		rateLimiter: newRateLimiter(cfg.RateLimit),
	}, nil
}

// ClassifyMerchant asks the provider to place a merchant into one of the
// nine categories. A response outside the fixed set is an error, not a
// guess; the caller decides what a failure degrades to.
func (c *Classifier) ClassifyMerchant(ctx context.Context, merchant string) (model.Category, error) {
	merchant = strings.TrimSpace(merchant)
	if merchant == "" {
		return "", fmt.Errorf("merchant is required")
	}

	if category, found := c.cache.get(merchant); found {
		c.logger.Debug("cache hit for merchant", "merchant", merchant, "category", category)
		return category, nil
	}

	prompt := buildPrompt(merchant)

	var response ClassificationResponse
	retryErr := common.WithRetry(ctx, func() error {
		if err := c.rateLimiter.wait(ctx); err != nil {
			return &common.RetryableError{Err: err, Retryable: false}
		}
		var classifyErr error
		response, classifyErr = c.client.Classify(ctx, prompt)
		if classifyErr != nil {
			return &common.RetryableError{Err: classifyErr, Retryable: true}
		}
		return nil
	}, c.retryOpts)
	if retryErr != nil {
		return "", fmt.Errorf("%w: %v", common.ErrClassificationFailed, retryErr)
	}

	category, err := model.ParseCategory(response.Category)
	if err != nil {
		return "", fmt.Errorf("%w: %v", common.ErrInvalidCategory, err)
	}

	c.cache.set(merchant, category)
	return category, nil
}

// Close releases background resources (rate limiter, cache janitor).
func (c *Classifier) Close() {
	c.rateLimiter.Close()
	c.cache.Close()
}

// buildPrompt lists the fixed category set and asks for exactly one of them.
func buildPrompt(merchant string) string {
	var b strings.Builder
	b.WriteString("Classify this merchant into exactly one spending category.\n\n")
	b.WriteString("Merchant: ")
	b.WriteString(merchant)
	b.WriteString("\n\nCategories:\n")
	for _, cat := range model.Categories() {
		b.WriteString("- ")
		b.WriteString(string(cat))
		b.WriteString("\n")
	}
	b.WriteString("\nRespond with JSON: {\"category\": \"<one of the categories above>\"}")
	return b.String()
}
