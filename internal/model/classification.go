package model

// Source indicates which tier of the precedence chain produced a classification.
type Source string

// Classification sources, from most to least authoritative.
const (
	SourceCached   Source = "cached"
	SourceKeyword  Source = "keyword"
	SourceExternal Source = "external"
	SourceDefault  Source = "default"
)

// ClassificationResult is the outcome of classifying a merchant string.
// Confidence values are heuristic ordinals, not calibrated probabilities.
type ClassificationResult struct {
	Category   Category
	Source     Source
	Confidence float64
}
