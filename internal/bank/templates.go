package bank

import "github.com/zhenghao/billsnap/internal/model"

// templates binds each issuer to its SMS extraction patterns. Amount patterns
// cover both the expense and income wording of the issuer; direction is
// decided separately from keyword evidence, never from which alternative
// matched. An empty Merchant or Card pattern means the issuer's messages
// don't carry that field.
var templates = map[model.BankID]model.Template{
	model.BankICBC: {
		Amount:   `(?:支出|收入)\(人民币\)([0-9,]+\.?[0-9]*)元`,
		Merchant: `于(.{2,24}?)(?:支出|收入|完成)`,
		Card:     `尾号(\d{4})`,
	},
	model.BankCCB: {
		Amount: `(?:消费|支取|存入|转入)人民币([0-9,]+\.?[0-9]*)元`,
		Card:   `尾号(\d{4})`,
	},
	model.BankABC: {
		Amount: `(?:支出|收入)\([^)]+\)([0-9,]+\.?[0-9]*)元`,
		Card:   `尾号(\d{4})`,
	},
	model.BankBOC: {
		Amount: `(?:支出|存入|取款)人民币([0-9,]+\.?[0-9]*)元`,
		Card:   `尾号(\d{4})`,
	},
	model.BankBOCOM: {
		Amount: `(?:消费|支取|转入)([0-9,]+\.?[0-9]*)元`,
		Card:   `尾号(\d{4})`,
	},
	model.BankCMB: {
		Amount:   `(?:消费|支出|入账)人民币([0-9,]+\.?[0-9]*)元?`,
		Merchant: `在(.{2,24}?)(?:消费|完成)`,
		Card:     `账户(\d{4})`,
	},
	model.BankCMBC: {
		Amount: `(?:支出|存入)([0-9,]+\.?[0-9]*)元`,
		Card:   `尾号(\d{4})`,
	},
	model.BankSPDB: {
		Amount: `(?:消费|转入)([0-9,]+\.?[0-9]*)元`,
		Card:   `尾号(\d{4})`,
	},
	model.BankCITIC: {
		Amount: `金额(?:人民币)?([0-9,]+\.?[0-9]*)元`,
		Card:   `尾号(\d{4})`,
	},
	model.BankCEB: {
		Amount: `(?:支出|存入)([0-9,]+\.?[0-9]*)元`,
		Card:   `尾号(\d{4})`,
	},
}

// generic covers issuers without a bespoke template. The amount pattern is a
// two-alternative form: a transaction keyword followed (within a short span)
// by an amount ending in 元, or a bare 人民币 followed by a signed number.
// Looser than the per-issuer patterns, which is the accepted trade-off for
// covering unrecognized senders.
var generic = model.Template{
	Amount: `(?:消费|支出|支付|扣款|交易)[^0-9]{0,16}([0-9,]+\.?[0-9]*)元|人民币\s*(-?[0-9,]+\.?[0-9]*)`,
	Card:   `尾号(\d{4})`,
}

// TemplateFor returns the extraction template for an issuer. Unknown or
// unregistered issuers get the generic template.
func TemplateFor(id model.BankID) model.Template {
	if t, ok := templates[id]; ok {
		return t
	}
	return generic
}
