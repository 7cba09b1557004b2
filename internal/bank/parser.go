package bank

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/zhenghao/billsnap/internal/model"
)

// incomeKeywords mark a message as money arriving. Direction is decided from
// these alone, after amount extraction: an expense-style amount pattern can
// still match inside an income message, so the matched alternative carries no
// direction signal.
var incomeKeywords = []string{"收入", "存入", "转入", "入账", "到账", "汇入"}

type compiledTemplate struct {
	amount   *regexp.Regexp
	merchant *regexp.Regexp
	card     *regexp.Regexp
}

var (
	compiledByBank  = make(map[model.BankID]compiledTemplate, len(templates))
	compiledGeneric compiledTemplate
)

func init() {
	for id, t := range templates {
		compiledByBank[id] = compileTemplate(t)
	}
	compiledGeneric = compileTemplate(generic)
}

func compileTemplate(t model.Template) compiledTemplate {
	var ct compiledTemplate
	ct.amount = regexp.MustCompile(t.Amount)
	if t.Merchant != "" {
		ct.merchant = regexp.MustCompile(t.Merchant)
	}
	if t.Card != "" {
		ct.card = regexp.MustCompile(t.Card)
	}
	return ct
}

// Parse extracts a structured transaction record from a bank notification
// message. It fails closed: a message without an extractable amount (balance
// updates, verification codes, payment acknowledgements) produces no record.
func Parse(text string) (*model.BankMessage, bool) {
	return ParseFrom("", text)
}

// ParseFrom is Parse with the SMS sender short-code, when the caller has it.
// The sender takes precedence over keyword detection; an unknown sender falls
// back to scanning the message body for issuer keywords.
func ParseFrom(sender, text string) (*model.BankMessage, bool) {
	if strings.TrimSpace(text) == "" {
		return nil, false
	}

	id, known := BySender(sender)
	if !known {
		id, known = Detect(text)
	}

	ct := compiledGeneric
	if known {
		if c, ok := compiledByBank[id]; ok {
			ct = c
		}
	}

	amount, ok := extractAmount(ct.amount, text)
	if !ok {
		return nil, false
	}

	msg := &model.BankMessage{
		Amount:    amount,
		IsExpense: !containsAny(text, incomeKeywords),
		RawText:   text,
	}

	if known {
		if b, ok := Lookup(id); ok {
			msg.BankName = b.Name
		}
	}

	if ct.merchant != nil {
		if m := ct.merchant.FindStringSubmatch(text); len(m) > 1 {
			msg.Merchant = m[1]
		}
	}
	if ct.card != nil {
		if m := ct.card.FindStringSubmatch(text); len(m) > 1 {
			msg.CardSuffix = m[1]
		}
	}

	return msg, true
}

// extractAmount applies an amount pattern and converts the first populated
// capture group. Thousands separators are stripped before conversion; the
// value stays an exact decimal throughout.
func extractAmount(re *regexp.Regexp, text string) (decimal.Decimal, bool) {
	m := re.FindStringSubmatch(text)
	if m == nil {
		return decimal.Zero, false
	}
	for _, group := range m[1:] {
		if group == "" {
			continue
		}
		raw := strings.ReplaceAll(group, ",", "")
		d, err := decimal.NewFromString(raw)
		if err != nil {
			return decimal.Zero, false
		}
		return d.Abs(), true
	}
	return decimal.Zero, false
}

func containsAny(text string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(text, kw) {
			return true
		}
	}
	return false
}
