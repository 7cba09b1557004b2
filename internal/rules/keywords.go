// Package rules implements keyword-based merchant categorization.
package rules

import (
	"strings"
	"unicode/utf8"

	"github.com/zhenghao/billsnap/internal/model"
)

// keywordRules is an explicitly ordered list rather than a map, so a merchant
// matching keywords in two categories resolves the same way every run.
// Keywords are stored lowercase; matching is case-insensitive substring.
var keywordRules = []struct {
	category model.Category
	keywords []string
}{
	{model.CategoryFood, []string{
		"星巴克", "麦当劳", "肯德基", "饿了么", "餐厅", "饭店", "美食", "外卖",
		"咖啡", "奶茶", "火锅", "食堂", "面馆", "烧烤", "美团",
	}},
	{model.CategoryTransport, []string{
		"滴滴", "出租", "地铁", "公交", "高铁", "火车票", "加油", "停车", "航空", "12306",
	}},
	{model.CategoryShopping, []string{
		"淘宝", "天猫", "京东", "拼多多", "超市", "商场", "便利店", "旗舰店",
	}},
	{model.CategoryEntertainment, []string{
		"电影", "影院", "ktv", "游戏", "网吧", "酒吧", "演出",
	}},
	{model.CategoryHousing, []string{
		"房租", "物业", "水费", "电费", "燃气", "宽带", "酒店", "公寓",
	}},
	{model.CategoryMedical, []string{
		"医院", "药店", "药房", "诊所", "体检", "口腔",
	}},
	{model.CategoryEducation, []string{
		"学费", "书店", "培训", "教育", "课程", "文具",
	}},
	{model.CategoryIncome, []string{
		"工资", "薪资", "奖金", "报销", "退款", "利息",
	}},
}

// shortKeywordRunes is the keyword length below which a match gets the
// discounted confidence, penalizing over-eager hits on short substrings.
const shortKeywordRunes = 3

// Classify matches a merchant string against the keyword rules. The first
// matching keyword in rule order wins: confidence 0.9 for keywords of three
// or more runes, 0.7 for shorter ones. Returns false when nothing matches.
func Classify(merchant string) (model.ClassificationResult, bool) {
	lower := strings.ToLower(merchant)
	for _, rule := range keywordRules {
		for _, keyword := range rule.keywords {
			if !strings.Contains(lower, keyword) {
				continue
			}
			confidence := 0.9
			if utf8.RuneCountInString(keyword) < shortKeywordRunes {
				confidence = 0.7
			}
			return model.ClassificationResult{
				Category:   rule.category,
				Source:     model.SourceKeyword,
				Confidence: confidence,
			}, true
		}
	}
	return model.ClassificationResult{}, false
}
