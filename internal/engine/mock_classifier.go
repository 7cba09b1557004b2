package engine

import (
	"context"
	"sync"

	"github.com/zhenghao/billsnap/internal/model"
)

// MockClassifier is a test implementation of the Classifier interface.
// It returns a fixed category or error and records every call.
type MockClassifier struct {
	Category model.Category
	Err      error
	calls    []string
	mu       sync.Mutex
}

// NewMockClassifier creates a mock that always returns the given category.
func NewMockClassifier(category model.Category) *MockClassifier {
	return &MockClassifier{Category: category}
}

// ClassifyMerchant records the call and returns the configured result.
func (m *MockClassifier) ClassifyMerchant(_ context.Context, merchant string) (model.Category, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, merchant)
	if m.Err != nil {
		return "", m.Err
	}
	return m.Category, nil
}

// Calls returns the merchants this mock was asked to classify.
func (m *MockClassifier) Calls() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, len(m.calls))
	copy(out, m.calls)
	return out
}
