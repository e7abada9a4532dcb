package models

import "strings"

// DefaultCurrency is used when a group is created without one.
const DefaultCurrency = "IDR"

// supportedCurrencies is the fixed set of ISO 4217 codes a ledger accepts.
var supportedCurrencies = map[string]bool{
	"IDR": true, "USD": true, "EUR": true, "GBP": true, "JPY": true,
	"SGD": true, "MYR": true, "AUD": true, "CAD": true, "CNY": true,
	"INR": true, "KRW": true, "THB": true, "PHP": true, "VND": true,
	"CHF": true, "HKD": true,
}

// NormalizeCurrency upper-cases and trims a currency code.
func NormalizeCurrency(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// IsSupportedCurrency reports whether code (already normalized) is accepted.
func IsSupportedCurrency(code string) bool {
	return supportedCurrencies[code]
}

// Category labels an expense.
type Category string

const (
	CategoryFood          Category = "food"
	CategoryTransport     Category = "transport"
	CategoryAccommodation Category = "accommodation"
	CategoryEntertainment Category = "entertainment"
	CategoryShopping      Category = "shopping"
	CategoryUtilities     Category = "utilities"
	CategoryHealth        Category = "health"
	CategoryOther         Category = "other"
)

// ParseCategory maps free text onto a known category. Empty input is
// CategoryOther; unknown input reports false.
func ParseCategory(s string) (Category, bool) {
	c := Category(strings.ToLower(strings.TrimSpace(s)))
	switch c {
	case "":
		return CategoryOther, true
	case CategoryFood, CategoryTransport, CategoryAccommodation, CategoryEntertainment,
		CategoryShopping, CategoryUtilities, CategoryHealth, CategoryOther:
		return c, true
	}
	return "", false
}
