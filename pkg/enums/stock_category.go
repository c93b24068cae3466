package enums

import "fmt"

// StockCategory namespaces the orderable catalog items.
type StockCategory string

const (
	StockCategoryMeat      StockCategory = "meat"
	StockCategorySauce     StockCategory = "sauce"
	StockCategoryGarniture StockCategory = "garniture"
	StockCategoryExtra     StockCategory = "extra"
	StockCategoryDrink     StockCategory = "drink"
	StockCategoryDessert   StockCategory = "dessert"
)

var validStockCategories = []StockCategory{
	StockCategoryMeat,
	StockCategorySauce,
	StockCategoryGarniture,
	StockCategoryExtra,
	StockCategoryDrink,
	StockCategoryDessert,
}

// StockCategories returns every known category in catalog order.
func StockCategories() []StockCategory {
	out := make([]StockCategory, len(validStockCategories))
	copy(out, validStockCategories)
	return out
}

// String implements fmt.Stringer.
func (s StockCategory) String() string {
	return string(s)
}

// IsValid reports whether the value is a known StockCategory.
func (s StockCategory) IsValid() bool {
	for _, candidate := range validStockCategories {
		if candidate == s {
			return true
		}
	}
	return false
}

// ParseStockCategory converts raw input into a StockCategory.
func ParseStockCategory(value string) (StockCategory, error) {
	for _, candidate := range validStockCategories {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid stock category %q", value)
}
