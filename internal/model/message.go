package model

import "github.com/shopspring/decimal"

// BankMessage is the structured result of parsing a bank notification SMS.
// It is only ever constructed with a valid amount; a message the parser
// cannot extract an amount from produces no record at all.
type BankMessage struct {
	Amount     decimal.Decimal
	Merchant   string
	BankName   string
	CardSuffix string
	IsExpense  bool
	RawText    string
}
