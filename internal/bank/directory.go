// Package bank parses issuer transaction-notification messages using
// per-issuer extraction templates with a generic fallback.
package bank

import (
	"strings"

	"github.com/zhenghao/billsnap/internal/model"
)

// banks lists every known issuer in detection-precedence order. Keywords run
// from full legal name to latin acronym; detection tries entries in slice
// order so a message mentioning two issuers resolves deterministically.
var banks = []struct {
	bank     model.Bank
	keywords []string
}{
	{model.Bank{ID: model.BankICBC, SenderCode: "95588", Name: "工商银行"},
		[]string{"中国工商银行", "工商银行", "工行", "ICBC"}},
	{model.Bank{ID: model.BankCCB, SenderCode: "95533", Name: "建设银行"},
		[]string{"中国建设银行", "建设银行", "建行", "CCB"}},
	{model.Bank{ID: model.BankABC, SenderCode: "95599", Name: "农业银行"},
		[]string{"中国农业银行", "农业银行", "农行", "ABC"}},
	{model.Bank{ID: model.BankBOC, SenderCode: "95566", Name: "中国银行"},
		[]string{"中国银行", "中行", "BOC"}},
	{model.Bank{ID: model.BankBOCOM, SenderCode: "95559", Name: "交通银行"},
		[]string{"交通银行", "交行", "BOCOM"}},
	// CMBC before CMB: the 招商 acronym is a substring of the 民生 one.
	{model.Bank{ID: model.BankCMBC, SenderCode: "95568", Name: "民生银行"},
		[]string{"中国民生银行", "民生银行", "CMBC"}},
	{model.Bank{ID: model.BankCMB, SenderCode: "95555", Name: "招商银行"},
		[]string{"招商银行", "招行", "CMB"}},
	{model.Bank{ID: model.BankSPDB, SenderCode: "95528", Name: "浦发银行"},
		[]string{"上海浦东发展银行", "浦发银行", "浦发", "SPDB"}},
	{model.Bank{ID: model.BankCITIC, SenderCode: "95558", Name: "中信银行"},
		[]string{"中信银行", "中信", "CITIC"}},
	{model.Bank{ID: model.BankCEB, SenderCode: "95595", Name: "光大银行"},
		[]string{"中国光大银行", "光大银行", "CEB"}},
}

// Detect identifies the issuer mentioned in a message. Latin acronyms match
// case-insensitively; failure to match is not an error, just an unrecognized
// sender the caller handles with the generic template.
func Detect(text string) (model.BankID, bool) {
	upper := strings.ToUpper(text)
	for _, entry := range banks {
		for _, keyword := range entry.keywords {
			if strings.Contains(upper, keyword) {
				return entry.bank.ID, true
			}
		}
	}
	return "", false
}

// BySender looks up an issuer by its SMS sender short-code.
func BySender(code string) (model.BankID, bool) {
	for _, entry := range banks {
		if entry.bank.SenderCode == code {
			return entry.bank.ID, true
		}
	}
	return "", false
}

// Lookup returns the issuer record for a known bank ID.
func Lookup(id model.BankID) (model.Bank, bool) {
	for _, entry := range banks {
		if entry.bank.ID == id {
			return entry.bank, true
		}
	}
	return model.Bank{}, false
}

// All returns every known issuer in detection-precedence order.
func All() []model.Bank {
	out := make([]model.Bank, len(banks))
	for i, entry := range banks {
		out[i] = entry.bank
	}
	return out
}
