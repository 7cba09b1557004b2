package model

// BankID identifies one of the known card issuers.
type BankID string

// Known issuers. The set is fixed at build time.
const (
	BankICBC  BankID = "icbc"
	BankCCB   BankID = "ccb"
	BankABC   BankID = "abc"
	BankBOC   BankID = "boc"
	BankBOCOM BankID = "bocom"
	BankCMB   BankID = "cmb"
	BankCMBC  BankID = "cmbc"
	BankSPDB  BankID = "spdb"
	BankCITIC BankID = "citic"
	BankCEB   BankID = "ceb"
)

// Bank describes a known issuer: its SMS sender short-code and display name.
type Bank struct {
	ID         BankID
	SenderCode string
	Name       string
}

// Template holds the extraction patterns bound to one issuer's SMS format.
// Merchant and Card are optional; an empty pattern means the issuer's
// messages don't carry that field.
type Template struct {
	Amount   string
	Merchant string
	Card     string
}
