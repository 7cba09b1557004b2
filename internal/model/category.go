// Package model defines the core domain models used throughout the application.
package model

import (
	"fmt"
	"strings"
)

// Category is one of the nine fixed spending categories.
type Category string

// The fixed category set. Every classification resolves to exactly one of these.
const (
	CategoryFood          Category = "food"
	CategoryTransport     Category = "transport"
	CategoryShopping      Category = "shopping"
	CategoryEntertainment Category = "entertainment"
	CategoryHousing       Category = "housing"
	CategoryMedical       Category = "medical"
	CategoryEducation     Category = "education"
	CategoryIncome        Category = "income"
	CategoryOther         Category = "other"
)

// Categories returns all categories in their canonical order.
func Categories() []Category {
	return []Category{
		CategoryFood,
		CategoryTransport,
		CategoryShopping,
		CategoryEntertainment,
		CategoryHousing,
		CategoryMedical,
		CategoryEducation,
		CategoryIncome,
		CategoryOther,
	}
}

// Valid reports whether c is one of the nine known categories.
func (c Category) Valid() bool {
	switch c {
	case CategoryFood, CategoryTransport, CategoryShopping, CategoryEntertainment,
		CategoryHousing, CategoryMedical, CategoryEducation, CategoryIncome, CategoryOther:
		return true
	}
	return false
}

// ParseCategory converts free-form input (e.g. an external classifier response)
// into a Category. Matching is case-insensitive and tolerant of surrounding
// whitespace; anything unrecognized is an error, never a silent default.
func ParseCategory(s string) (Category, error) {
	c := Category(strings.ToLower(strings.TrimSpace(s)))
	if !c.Valid() {
		return "", fmt.Errorf("unknown category %q", s)
	}
	return c, nil
}
