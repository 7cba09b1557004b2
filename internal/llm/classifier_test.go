package llm

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zhenghao/billsnap/internal/common"
	"github.com/zhenghao/billsnap/internal/model"
	"github.com/zhenghao/billsnap/internal/service"
)

// stubClient returns canned provider responses in order.
type stubClient struct {
	responses []ClassificationResponse
	errs      []error
	calls     int
}

func (s *stubClient) Classify(_ context.Context, _ string) (ClassificationResponse, error) {
	i := s.calls
	s.calls++
	if i < len(s.errs) && s.errs[i] != nil {
		return ClassificationResponse{}, s.errs[i]
	}
	if i < len(s.responses) {
		return s.responses[i], nil
	}
	return ClassificationResponse{}, errors.New("no more responses")
}

func newTestClassifier(client Client) *Classifier {
	c := &Classifier{
		client:      client,
		cache:       newCategoryCache(time.Minute),
		logger:      slog.New(slog.NewTextHandler(io.Discard, nil)),
		rateLimiter: newRateLimiter(600),
		retryOpts: service.RetryOptions{
			MaxAttempts:  3,
			InitialDelay: time.Millisecond,
			MaxDelay:     10 * time.Millisecond,
			Multiplier:   2.0,
		},
	}
	return c
}

func TestClassifyMerchant_Success(t *testing.T) {
	stub := &stubClient{responses: []ClassificationResponse{{Category: "food"}}}
	c := newTestClassifier(stub)
	defer c.Close()

	category, err := c.ClassifyMerchant(context.Background(), "海底捞火锅")
	require.NoError(t, err)
	assert.Equal(t, model.CategoryFood, category)
	assert.Equal(t, 1, stub.calls)
}

func TestClassifyMerchant_CachesRepeatCalls(t *testing.T) {
	stub := &stubClient{responses: []ClassificationResponse{{Category: "food"}}}
	c := newTestClassifier(stub)
	defer c.Close()
	ctx := context.Background()

	_, err := c.ClassifyMerchant(ctx, "海底捞火锅")
	require.NoError(t, err)

	category, err := c.ClassifyMerchant(ctx, "海底捞火锅")
	require.NoError(t, err)
	assert.Equal(t, model.CategoryFood, category)
	assert.Equal(t, 1, stub.calls)
}

func TestClassifyMerchant_NormalizesProviderCasing(t *testing.T) {
	stub := &stubClient{responses: []ClassificationResponse{{Category: " Transport "}}}
	c := newTestClassifier(stub)
	defer c.Close()

	category, err := c.ClassifyMerchant(context.Background(), "高德打车")
	require.NoError(t, err)
	assert.Equal(t, model.CategoryTransport, category)
}

func TestClassifyMerchant_RejectsUnknownCategory(t *testing.T) {
	stub := &stubClient{responses: []ClassificationResponse{{Category: "snacks"}}}
	c := newTestClassifier(stub)
	defer c.Close()

	_, err := c.ClassifyMerchant(context.Background(), "某商户")
	require.Error(t, err)
	assert.ErrorIs(t, err, common.ErrInvalidCategory)
}

func TestClassifyMerchant_RetriesTransientFailures(t *testing.T) {
	stub := &stubClient{
		errs:      []error{errors.New("timeout"), nil},
		responses: []ClassificationResponse{{}, {Category: "shopping"}},
	}
	c := newTestClassifier(stub)
	defer c.Close()

	category, err := c.ClassifyMerchant(context.Background(), "某商户")
	require.NoError(t, err)
	assert.Equal(t, model.CategoryShopping, category)
	assert.Equal(t, 2, stub.calls)
}

func TestClassifyMerchant_ExhaustsRetries(t *testing.T) {
	boom := errors.New("service unavailable")
	stub := &stubClient{errs: []error{boom, boom, boom}}
	c := newTestClassifier(stub)
	defer c.Close()

	_, err := c.ClassifyMerchant(context.Background(), "某商户")
	require.Error(t, err)
	assert.ErrorIs(t, err, common.ErrClassificationFailed)
	assert.Equal(t, 3, stub.calls)
}

func TestClassifyMerchant_EmptyMerchant(t *testing.T) {
	c := newTestClassifier(&stubClient{})
	defer c.Close()

	_, err := c.ClassifyMerchant(context.Background(), "   ")
	assert.Error(t, err)
}

func TestBuildPrompt_ListsAllCategories(t *testing.T) {
	prompt := buildPrompt("星巴克")
	assert.Contains(t, prompt, "星巴克")
	for _, cat := range model.Categories() {
		assert.Contains(t, prompt, string(cat))
	}
}
