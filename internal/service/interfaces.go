// Package service defines the interfaces for all application services.
package service

import (
	"context"
	"time"

	"github.com/zhenghao/billsnap/internal/model"
)

// CorrectionStore is the durable merchant→category mapping backing the
// classification engine's correction cache. Implementations must serialize
// concurrent access; entries are whole-value overwrites, never partial.
type CorrectionStore interface {
	GetCorrection(ctx context.Context, merchant string) (*model.Correction, error)
	SaveCorrection(ctx context.Context, correction *model.Correction) error
	DeleteCorrection(ctx context.Context, merchant string) error
	GetAllCorrections(ctx context.Context) ([]model.Correction, error)
	ClearCorrections(ctx context.Context) error

	Migrate(ctx context.Context) error
	Close() error
}

// MerchantClassifier is the external classification collaborator. Given a
// merchant name it returns exactly one of the nine categories, or fails.
// Timeout and retry policy live behind this interface, not in the engine.
type MerchantClassifier interface {
	ClassifyMerchant(ctx context.Context, merchant string) (model.Category, error)
}

// RetryOptions configures retry behavior for collaborator calls.
type RetryOptions struct {
	MaxAttempts  int
	InitialDelay time.Duration
	MaxDelay     time.Duration
	Multiplier   float64
}
