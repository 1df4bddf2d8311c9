package types

import "fmt"

// RiskCategory identifies one of the fixed financial risk categories.
// The enumeration order is significant: synthesis table rows and numbered
// list items are resolved to categories by position, not by label text.
type RiskCategory string

const (
	CategoryMarket      RiskCategory = "MARKET"
	CategoryCredit      RiskCategory = "CREDIT"
	CategoryLiquidity   RiskCategory = "LIQUIDITY"
	CategoryOperational RiskCategory = "OPERATIONAL"
	CategoryRegulatory  RiskCategory = "REGULATORY"
)

// Categories returns all risk categories in their canonical order.
func Categories() []RiskCategory {
	return []RiskCategory{
		CategoryMarket,
		CategoryCredit,
		CategoryLiquidity,
		CategoryOperational,
		CategoryRegulatory,
	}
}

var categoryLabels = map[RiskCategory]string{
	CategoryMarket:      "Market Risk",
	CategoryCredit:      "Credit Risk",
	CategoryLiquidity:   "Liquidity Risk",
	CategoryOperational: "Operational Risk",
	CategoryRegulatory:  "Regulatory/Compliance Risk",
}

// Label returns the human-readable display name of the category.
func (c RiskCategory) Label() string {
	if label, ok := categoryLabels[c]; ok {
		return label
	}
	return string(c)
}

// IsValid checks if the risk category is one of the enumerated values
func (c RiskCategory) IsValid() bool {
	switch c {
	case CategoryMarket,
		CategoryCredit,
		CategoryLiquidity,
		CategoryOperational,
		CategoryRegulatory:
		return true
	default:
		return false
	}
}

// String returns the string representation of the risk category
func (c RiskCategory) String() string {
	return string(c)
}

// ParseRiskCategory parses a string into a RiskCategory
func ParseRiskCategory(s string) (RiskCategory, error) {
	category := RiskCategory(s)
	if !category.IsValid() {
		return "", fmt.Errorf("invalid risk category: %s", s)
	}
	return category, nil
}
