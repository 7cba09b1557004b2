package model

import "time"

// CorrectionSource indicates how a correction entry was created.
type CorrectionSource string

const (
	// CorrectionManual indicates the user confirmed or overrode a category.
	CorrectionManual CorrectionSource = "MANUAL"
	// CorrectionExternal indicates the entry was written back from a
	// successful external classification.
	CorrectionExternal CorrectionSource = "EXTERNAL"
)

// Correction is a remembered merchant→category assignment. Entries are
// idempotent key→value overwrites; the newest write always wins.
type Correction struct {
	LastUpdated time.Time
	Merchant    string
	Category    Category
	Source      CorrectionSource
	UseCount    int
}
