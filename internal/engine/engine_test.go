package engine

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zhenghao/billsnap/internal/common"
	"github.com/zhenghao/billsnap/internal/model"
	"github.com/zhenghao/billsnap/internal/storage"
)

func setupTestStore(t *testing.T) *storage.SQLiteStorage {
	t.Helper()

	store, err := storage.NewSQLiteStorage(":memory:")
	require.NoError(t, err)
	require.NoError(t, store.Migrate(context.Background()))

	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestClassifyLocal_Precedence(t *testing.T) {
	store := setupTestStore(t)
	e := New(store, nil)
	ctx := context.Background()

	// Empty cache, keyword match.
	result := e.ClassifyLocal(ctx, "星巴克咖啡")
	assert.Equal(t, model.CategoryFood, result.Category)
	assert.Equal(t, model.SourceKeyword, result.Source)

	// A cached correction overrides the keyword tier.
	require.NoError(t, e.CacheCorrection(ctx, "星巴克咖啡", model.CategoryShopping))
	result = e.ClassifyLocal(ctx, "星巴克咖啡")
	assert.Equal(t, model.CategoryShopping, result.Category)
	assert.Equal(t, model.SourceCached, result.Source)
	assert.InDelta(t, 1.0, result.Confidence, 1e-9)
}

func TestClassifyLocal_Default(t *testing.T) {
	e := New(setupTestStore(t), nil)

	for _, merchant := range []string{"", "   ", "XYZ贸易有限公司"} {
		result := e.ClassifyLocal(context.Background(), merchant)
		assert.Equal(t, model.CategoryOther, result.Category, "merchant %q", merchant)
		assert.Equal(t, model.SourceDefault, result.Source)
		assert.Zero(t, result.Confidence)
	}
}

func TestClassifyLocal_Idempotent(t *testing.T) {
	e := New(setupTestStore(t), nil)
	ctx := context.Background()

	first := e.ClassifyLocal(ctx, "滴滴出行")
	second := e.ClassifyLocal(ctx, "滴滴出行")
	assert.Equal(t, first, second)
}

func TestCacheCorrection_SurvivesEngineRestart(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	e1 := New(store, nil)
	require.NoError(t, e1.CacheCorrection(ctx, "某某工作室", model.CategoryEducation))

	// A fresh engine over the same store sees the correction.
	e2 := New(store, nil)
	result := e2.ClassifyLocal(ctx, "某某工作室")
	assert.Equal(t, model.CategoryEducation, result.Category)
	assert.Equal(t, model.SourceCached, result.Source)
}

func TestClearCache_RevertsToLowerTiers(t *testing.T) {
	e := New(setupTestStore(t), nil)
	ctx := context.Background()

	require.NoError(t, e.CacheCorrection(ctx, "星巴克", model.CategoryShopping))
	require.NoError(t, e.CacheCorrection(ctx, "某某工作室", model.CategoryEducation))
	require.NoError(t, e.ClearCache(ctx))

	// Keyword-covered merchant drops to the keyword tier.
	result := e.ClassifyLocal(ctx, "星巴克")
	assert.Equal(t, model.CategoryFood, result.Category)
	assert.Equal(t, model.SourceKeyword, result.Source)

	// Uncovered merchant drops to the default.
	result = e.ClassifyLocal(ctx, "某某工作室")
	assert.Equal(t, model.CategoryOther, result.Category)
	assert.Equal(t, model.SourceDefault, result.Source)
}

func TestClassify_ExternalDisabledNeverCalls(t *testing.T) {
	mock := NewMockClassifier(model.CategoryMedical)
	e := New(setupTestStore(t), mock)

	result := e.Classify(context.Background(), "某某工作室", false)
	assert.Equal(t, model.CategoryOther, result.Category)
	assert.Equal(t, model.SourceDefault, result.Source)
	assert.Empty(t, mock.Calls())
}

func TestClassify_ExternalSuccessIsCached(t *testing.T) {
	mock := NewMockClassifier(model.CategoryMedical)
	e := New(setupTestStore(t), mock)
	ctx := context.Background()

	result := e.Classify(ctx, "某某工作室", true)
	assert.Equal(t, model.CategoryMedical, result.Category)
	assert.Equal(t, model.SourceExternal, result.Source)
	assert.InDelta(t, 0.8, result.Confidence, 1e-9)
	assert.Equal(t, []string{"某某工作室"}, mock.Calls())

	// The write-back makes the second call a cache hit; the collaborator
	// is not consulted again.
	result = e.Classify(ctx, "某某工作室", true)
	assert.Equal(t, model.CategoryMedical, result.Category)
	assert.Equal(t, model.SourceCached, result.Source)
	assert.Len(t, mock.Calls(), 1)
}

func TestClassify_ExternalFailureFallsBackToDefault(t *testing.T) {
	mock := NewMockClassifier(model.CategoryMedical)
	mock.Err = errors.New("service unavailable")
	e := New(setupTestStore(t), mock)
	ctx := context.Background()

	result := e.Classify(ctx, "某某工作室", true)
	assert.Equal(t, model.CategoryOther, result.Category)
	assert.Equal(t, model.SourceDefault, result.Source)

	// Failures are not cached; the next attempt tries the collaborator
	// again.
	_ = e.Classify(ctx, "某某工作室", true)
	assert.Len(t, mock.Calls(), 2)
}

func TestClassify_KeywordTierShortCircuitsExternal(t *testing.T) {
	mock := NewMockClassifier(model.CategoryOther)
	e := New(setupTestStore(t), mock)

	result := e.Classify(context.Background(), "星巴克咖啡", true)
	assert.Equal(t, model.CategoryFood, result.Category)
	assert.Equal(t, model.SourceKeyword, result.Source)
	assert.Empty(t, mock.Calls())
}

func TestClassify_NilClassifierBehavesLikeLocal(t *testing.T) {
	e := New(setupTestStore(t), nil)

	result := e.Classify(context.Background(), "某某工作室", true)
	assert.Equal(t, model.CategoryOther, result.Category)
	assert.Equal(t, model.SourceDefault, result.Source)
}

func TestDeleteCorrection(t *testing.T) {
	e := New(setupTestStore(t), nil)
	ctx := context.Background()

	require.NoError(t, e.CacheCorrection(ctx, "星巴克", model.CategoryShopping))
	require.NoError(t, e.DeleteCorrection(ctx, "星巴克"))

	// With the correction gone, classification drops to the keyword tier.
	result := e.ClassifyLocal(ctx, "星巴克")
	assert.Equal(t, model.CategoryFood, result.Category)
	assert.Equal(t, model.SourceKeyword, result.Source)

	err := e.DeleteCorrection(ctx, "星巴克")
	assert.ErrorIs(t, err, common.ErrNotFound)
}

// brokenStore fails every read; writes and the rest of the store contract
// are not reachable through the paths under test.
type brokenStore struct{}

func (brokenStore) GetCorrection(context.Context, string) (*model.Correction, error) {
	return nil, errors.New("disk error")
}
func (brokenStore) SaveCorrection(context.Context, *model.Correction) error {
	return errors.New("disk error")
}
func (brokenStore) DeleteCorrection(context.Context, string) error { return errors.New("disk error") }
func (brokenStore) GetAllCorrections(context.Context) ([]model.Correction, error) {
	return nil, errors.New("disk error")
}
func (brokenStore) ClearCorrections(context.Context) error { return errors.New("disk error") }
func (brokenStore) Migrate(context.Context) error          { return nil }
func (brokenStore) Close() error                           { return nil }

func TestClassifyLocal_UnreadableStoreDegrades(t *testing.T) {
	e := New(brokenStore{}, nil)
	ctx := context.Background()

	// A failing store behaves like an empty cache: lower tiers still run.
	result := e.ClassifyLocal(ctx, "星巴克咖啡")
	assert.Equal(t, model.CategoryFood, result.Category)
	assert.Equal(t, model.SourceKeyword, result.Source)

	result = e.ClassifyLocal(ctx, "某某工作室")
	assert.Equal(t, model.CategoryOther, result.Category)
	assert.Equal(t, model.SourceDefault, result.Source)
}

func TestCorrections_Listing(t *testing.T) {
	e := New(setupTestStore(t), nil)
	ctx := context.Background()

	require.NoError(t, e.CacheCorrection(ctx, "bb", model.CategoryFood))
	require.NoError(t, e.CacheCorrection(ctx, "aa", model.CategoryTransport))

	corrections, err := e.Corrections(ctx)
	require.NoError(t, err)
	require.Len(t, corrections, 2)
	assert.Equal(t, "aa", corrections[0].Merchant)
	assert.Equal(t, "bb", corrections[1].Merchant)
}
