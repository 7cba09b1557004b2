// Package receipt parses payment-screenshot OCR text into a best-effort
// transaction record. OCR input is noisy, so unlike the bank message parser
// this one never fails: every call returns a record, and the confidence
// score tells the caller how much of it was actually extracted.
package receipt

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/width"

	"github.com/zhenghao/billsnap/internal/model"
)

// amountPatterns run in order from most to least trustworthy; the first match
// anywhere in the text wins. Labeled paid-amount forms rank above the bare
// currency-symbol forms so that a receipt showing an original price, a
// discount, and a final paid amount yields the paid amount, not whichever
// number appears first.
var amountPatterns = []*regexp.Regexp{
	regexp.MustCompile(`实付款?[:：]?\s*[¥￥]?\s*([0-9,]+(?:\.[0-9]{1,2})?)`),
	regexp.MustCompile(`(?:实际支付|已支付)[:：]?\s*[¥￥]?\s*([0-9,]+(?:\.[0-9]{1,2})?)`),
	regexp.MustCompile(`支付金额[:：]?\s*[¥￥]?\s*([0-9,]+(?:\.[0-9]{1,2})?)`),
	regexp.MustCompile(`付款金额[:：]?\s*[¥￥]?\s*([0-9,]+(?:\.[0-9]{1,2})?)`),
	regexp.MustCompile(`¥\s*([0-9,]+\.[0-9]{1,2})`),
	regexp.MustCompile(`￥\s*([0-9,]+\.[0-9]{1,2})`),
	regexp.MustCompile(`([0-9,]+\.[0-9]{1,2})\s*元`),
	regexp.MustCompile(`([0-9,]+)\s*元`),
}

// merchantPatterns are labeled payee forms, each accepting half- and
// full-width punctuation. First non-empty capture wins.
var merchantPatterns = []*regexp.Regexp{
	regexp.MustCompile(`付款给[:：]?\s*(.+)`),
	regexp.MustCompile(`收款方[:：]\s*(.+)`),
	regexp.MustCompile(`商户名称[:：]\s*(.+)`),
	regexp.MustCompile(`商家[:：]\s*(.+)`),
	regexp.MustCompile(`向(.{1,32}?)付款`),
	regexp.MustCompile(`支付给\s*(.+)`),
}

// trailingAmount strips an amount that shares the payee's line, e.g.
// "付款给:星巴克 ¥32.00" captures "星巴克 ¥32.00" before cleanup.
var trailingAmount = regexp.MustCompile(`(?:[¥￥]\s*[0-9,]+(?:\.[0-9]{1,2})?|[0-9,]+(?:\.[0-9]{1,2})?\s*元)\s*$`)

// incomeKeywords mark a receipt as money arriving. Deliberately narrow:
// the 收款方 payee label on ordinary expense receipts must not trip it.
var incomeKeywords = []string{"收到转账", "已收款", "转入", "入账", "红包", "收钱"}

// Parse extracts payment facts from OCR text. Full-width digits and
// punctuation are folded to their narrow forms before matching, so ：and :
// behave identically. Always returns a record; empty or unreadable input
// yields all defaults with confidence 0.
func Parse(rawText string) model.Receipt {
	text := width.Fold.String(rawText)

	r := model.Receipt{
		Direction: model.DirectionExpense,
		Platform:  detectPlatform(text),
	}

	for _, re := range amountPatterns {
		m := re.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		raw := strings.ReplaceAll(m[1], ",", "")
		if d, err := decimal.NewFromString(raw); err == nil {
			r.Amount = d
			r.HasAmount = true
			break
		}
	}

	for _, re := range merchantPatterns {
		m := re.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		merchant := strings.TrimSpace(m[1])
		merchant = strings.TrimSpace(trailingAmount.ReplaceAllString(merchant, ""))
		if merchant != "" {
			r.Merchant = merchant
			break
		}
	}

	for _, kw := range incomeKeywords {
		if strings.Contains(text, kw) {
			r.Direction = model.DirectionIncome
			break
		}
	}

	r.Confidence = confidence(r)
	return r
}

func detectPlatform(text string) model.Platform {
	lower := strings.ToLower(text)
	switch {
	case strings.Contains(lower, "微信") || strings.Contains(lower, "wechat"):
		return model.PlatformWeChat
	case strings.Contains(lower, "支付宝") || strings.Contains(lower, "alipay"):
		return model.PlatformAlipay
	case strings.Contains(lower, "银行") || strings.Contains(lower, "bank"):
		return model.PlatformBank
	}
	return model.PlatformUnknown
}

// confidence is a weighted extraction score: amount 0.5, merchant 0.3,
// recognized platform 0.2. Informational only; it carries no classification
// meaning.
func confidence(r model.Receipt) float64 {
	var score float64
	if r.HasAmount {
		score += 0.5
	}
	if r.Merchant != "" {
		score += 0.3
	}
	if r.Platform != model.PlatformUnknown {
		score += 0.2
	}
	return score
}
