package rules

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zhenghao/billsnap/internal/model"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name       string
		merchant   string
		category   model.Category
		confidence float64
	}{
		{"long keyword", "星巴克咖啡(国贸店)", model.CategoryFood, 0.9},
		{"short keyword discounted", "漫游网吧", model.CategoryEntertainment, 0.7},
		{"latin keyword case-insensitive", "银乐迪KTV", model.CategoryEntertainment, 0.9},
		{"transport", "滴滴出行", model.CategoryTransport, 0.7},
		{"shopping", "京东自营旗舰店", model.CategoryShopping, 0.7},
		{"housing", "链家房租代扣", model.CategoryHousing, 0.7},
		{"medical", "同仁堂药店", model.CategoryMedical, 0.7},
		{"education", "新华书店", model.CategoryEducation, 0.7},
		{"income keyword", "10月工资", model.CategoryIncome, 0.7},
		{"digit keyword", "铁路12306", model.CategoryTransport, 0.9},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, ok := Classify(tt.merchant)
			require.True(t, ok)
			assert.Equal(t, tt.category, result.Category)
			assert.Equal(t, model.SourceKeyword, result.Source)
			assert.InDelta(t, tt.confidence, result.Confidence, 1e-9)
		})
	}
}

func TestClassify_LongerKeywordWinsWithinCategory(t *testing.T) {
	// 星巴克咖啡 contains both 星巴克 (3 runes) and 咖啡 (2 runes); the
	// rule order puts the specific name first so the match gets the full
	// confidence, not the short-keyword discount.
	result, ok := Classify("星巴克咖啡")
	require.True(t, ok)
	assert.Equal(t, model.CategoryFood, result.Category)
	assert.InDelta(t, 0.9, result.Confidence, 1e-9)
}

func TestClassify_NoMatch(t *testing.T) {
	for _, merchant := range []string{"", "XYZ贸易有限公司", "unknown merchant"} {
		result, ok := Classify(merchant)
		assert.False(t, ok, "merchant %q should not match", merchant)
		assert.Empty(t, result.Category)
	}
}
