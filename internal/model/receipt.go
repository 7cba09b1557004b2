package model

import "github.com/shopspring/decimal"

// Platform is the payment channel a receipt was captured from.
type Platform string

// Recognized payment platforms.
const (
	PlatformWeChat  Platform = "wechat"
	PlatformAlipay  Platform = "alipay"
	PlatformBank    Platform = "bank"
	PlatformCash    Platform = "cash"
	PlatformUnknown Platform = "unknown"
)

// Direction distinguishes money leaving from money arriving.
type Direction string

// Transaction directions.
const (
	DirectionExpense Direction = "expense"
	DirectionIncome  Direction = "income"
)

// Receipt is the best-effort result of parsing payment-screenshot OCR text.
// Unlike BankMessage it is always produced, however little was extracted;
// Confidence tells the caller how much to trust it.
type Receipt struct {
	Amount     decimal.Decimal
	HasAmount  bool
	Merchant   string
	Direction  Direction
	Platform   Platform
	Confidence float64
}
