package models

import "fmt"

// Category is the purchase category. Closed set; unknown wire values are
// rejected at the edge rather than silently mapped to CategoryOther.
type Category string

const (
	CategoryElectronics Category = "electronics"
	CategoryClothing    Category = "clothing"
	CategoryFurniture   Category = "furniture"
	CategoryTravel      Category = "travel"
	CategoryEducation   Category = "education"
	CategoryHealth      Category = "health"
	CategoryGroceries   Category = "groceries"
	CategoryUtilities   Category = "utilities"
	CategoryOther       Category = "other"
)

// ParseCategory validates a wire value.
func ParseCategory(s string) (Category, error) {
	switch Category(s) {
	case CategoryElectronics, CategoryClothing, CategoryFurniture, CategoryTravel,
		CategoryEducation, CategoryHealth, CategoryGroceries, CategoryUtilities, CategoryOther:
		return Category(s), nil
	}
	return "", fmt.Errorf("unknown category: %q", s)
}

// Discretionary reports whether the category is a non-essential purchase for
// the tight-budget rule.
func (c Category) Discretionary() bool {
	return c == CategoryTravel || c == CategoryClothing
}

// PurchaseRequest describes the purchase being evaluated.
type PurchaseRequest struct {
	Amount       float64  `json:"purchase_amount"`
	Category     Category `json:"category"`
	NumPayments  int      `json:"num_payments"`
	InterestRate float64  `json:"interest_rate"`
}
