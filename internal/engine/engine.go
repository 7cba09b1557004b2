// Package engine implements the layered merchant classification engine:
// correction cache, then keyword rules, then the external classifier, then
// the default category. First hit wins.
package engine

import (
	"context"
	"strings"
	"time"

	"github.com/zhenghao/billsnap/internal/common"
	"github.com/zhenghao/billsnap/internal/model"
	"github.com/zhenghao/billsnap/internal/rules"
	"github.com/zhenghao/billsnap/internal/service"
)

// Confidence constants per classification source. Heuristic ordinals, not
// calibrated probabilities.
const (
	cachedConfidence   = 1.0
	externalConfidence = 0.8
)

// Engine orchestrates classification. It is the sole owner of the correction
// store; no other component reads or writes corrections directly.
type Engine struct {
	store      service.CorrectionStore
	classifier Classifier
}

// New creates a classification engine. The classifier may be nil, in which
// case Classify behaves exactly like ClassifyLocal.
func New(store service.CorrectionStore, classifier Classifier) *Engine {
	return &Engine{
		store:      store,
		classifier: classifier,
	}
}

// ClassifyLocal classifies a merchant using only local tiers: correction
// cache, keyword rules, default. It never invokes the external collaborator
// and never writes to the cache. Failures degrade to the next tier; this
// method cannot fail.
func (e *Engine) ClassifyLocal(ctx context.Context, merchant string) model.ClassificationResult {
	merchant = strings.TrimSpace(merchant)
	if merchant == "" {
		return defaultResult()
	}

	if result, ok := e.lookupCorrection(ctx, merchant); ok {
		return result
	}

	if result, ok := rules.Classify(merchant); ok {
		return result
	}

	return defaultResult()
}

// Classify runs the full precedence chain. The external tier runs only when
// useExternal is set and a collaborator is configured; its successes are
// written back to the correction cache so the next lookup short-circuits at
// the cache tier, and its failures are swallowed.
func (e *Engine) Classify(ctx context.Context, merchant string, useExternal bool) model.ClassificationResult {
	merchant = strings.TrimSpace(merchant)
	if merchant == "" {
		return defaultResult()
	}

	if result, ok := e.lookupCorrection(ctx, merchant); ok {
		return result
	}

	if result, ok := rules.Classify(merchant); ok {
		return result
	}

	if useExternal && e.classifier != nil {
		category, err := e.classifier.ClassifyMerchant(ctx, merchant)
		if err == nil {
			e.rememberExternal(ctx, merchant, category)
			return model.ClassificationResult{
				Category:   category,
				Source:     model.SourceExternal,
				Confidence: externalConfidence,
			}
		}
		// The collaborator's failure reason is not part of this engine's
		// contract; log it and fall through.
		common.LogError(err, "External classification failed, falling back to default",
			common.Fields{"merchant": merchant})
	}

	return defaultResult()
}

// CacheCorrection records a user-confirmed category for a merchant,
// unconditionally overwriting any existing entry.
func (e *Engine) CacheCorrection(ctx context.Context, merchant string, category model.Category) error {
	return e.store.SaveCorrection(ctx, &model.Correction{
		Merchant:    strings.TrimSpace(merchant),
		Category:    category,
		Source:      model.CorrectionManual,
		LastUpdated: time.Now(),
	})
}

// DeleteCorrection forgets the remembered category for one merchant.
// Returns common.ErrNotFound when nothing was remembered for it.
func (e *Engine) DeleteCorrection(ctx context.Context, merchant string) error {
	return e.store.DeleteCorrection(ctx, strings.TrimSpace(merchant))
}

// ClearCache removes every correction. Subsequent classifications fall
// through to keyword or default tiers until the cache is repopulated.
func (e *Engine) ClearCache(ctx context.Context) error {
	return e.store.ClearCorrections(ctx)
}

// Corrections lists all remembered corrections.
func (e *Engine) Corrections(ctx context.Context) ([]model.Correction, error) {
	return e.store.GetAllCorrections(ctx)
}

// lookupCorrection consults the correction cache. An unreadable store is
// treated as an empty cache, never as a fatal condition.
func (e *Engine) lookupCorrection(ctx context.Context, merchant string) (model.ClassificationResult, bool) {
	correction, err := e.store.GetCorrection(ctx, merchant)
	if err != nil {
		common.LogError(err, "Correction lookup failed, treating as empty cache",
			common.Fields{"merchant": merchant})
		return model.ClassificationResult{}, false
	}
	if correction == nil {
		return model.ClassificationResult{}, false
	}
	return model.ClassificationResult{
		Category:   correction.Category,
		Source:     model.SourceCached,
		Confidence: cachedConfidence,
	}, true
}

// rememberExternal writes a successful external classification back to the
// correction cache. A failed write costs a repeat API call later, nothing
// more, so it is logged and swallowed.
func (e *Engine) rememberExternal(ctx context.Context, merchant string, category model.Category) {
	err := e.store.SaveCorrection(ctx, &model.Correction{
		Merchant:    merchant,
		Category:    category,
		Source:      model.CorrectionExternal,
		LastUpdated: time.Now(),
	})
	if err != nil {
		common.LogError(err, "Failed to cache external classification",
			common.Fields{"merchant": merchant, "category": category})
	}
}

func defaultResult() model.ClassificationResult {
	return model.ClassificationResult{
		Category:   model.CategoryOther,
		Source:     model.SourceDefault,
		Confidence: 0.0,
	}
}
