package engine

import (
	"context"

	"github.com/zhenghao/billsnap/internal/model"
)

// Classifier defines the contract for the external classification
// collaborator. May suspend (network call) and may fail; the engine treats
// any failure as a silent fallthrough, never a user-visible error.
type Classifier interface {
	ClassifyMerchant(ctx context.Context, merchant string) (model.Category, error)
}
