package stock

import (
	"github.com/tacocrew/tacocrew-backend/pkg/db/models"
	"github.com/tacocrew/tacocrew-backend/pkg/enums"
)

// CatalogEntry describes one seedable stock item.
type CatalogEntry struct {
	Code       string
	Name       string
	Category   enums.StockCategory
	PriceCents int
	Available  bool
}

// defaultCatalog is the built-in menu. Seeding happens from Go rather than a
// migration because item IDs are derived with uuid.NewSHA1 and SQL cannot
// reproduce that derivation.
var defaultCatalog = []CatalogEntry{
	// Meats.
	{Code: "viande_hachee", Name: "Viande hachée", Category: enums.StockCategoryMeat, PriceCents: 150, Available: true},
	{Code: "poulet_marine", Name: "Poulet mariné", Category: enums.StockCategoryMeat, PriceCents: 150, Available: true},
	{Code: "cordon_bleu", Name: "Cordon bleu", Category: enums.StockCategoryMeat, PriceCents: 180, Available: true},
	{Code: "merguez", Name: "Merguez", Category: enums.StockCategoryMeat, PriceCents: 150, Available: true},
	{Code: "kebab", Name: "Kebab", Category: enums.StockCategoryMeat, PriceCents: 160, Available: true},
	{Code: "nuggets", Name: "Nuggets", Category: enums.StockCategoryMeat, PriceCents: 140, Available: true},
	{Code: "steak_hache", Name: "Steak haché", Category: enums.StockCategoryMeat, PriceCents: 160, Available: true},
	{Code: "tenders", Name: "Tenders", Category: enums.StockCategoryMeat, PriceCents: 170, Available: true},

	// Sauces.
	{Code: "algerienne", Name: "Algérienne", Category: enums.StockCategorySauce, PriceCents: 0, Available: true},
	{Code: "andalouse", Name: "Andalouse", Category: enums.StockCategorySauce, PriceCents: 0, Available: true},
	{Code: "biggy", Name: "Biggy burger", Category: enums.StockCategorySauce, PriceCents: 0, Available: true},
	{Code: "blanche", Name: "Sauce blanche", Category: enums.StockCategorySauce, PriceCents: 0, Available: true},
	{Code: "harissa", Name: "Harissa", Category: enums.StockCategorySauce, PriceCents: 0, Available: true},
	{Code: "ketchup", Name: "Ketchup", Category: enums.StockCategorySauce, PriceCents: 0, Available: true},
	{Code: "mayonnaise", Name: "Mayonnaise", Category: enums.StockCategorySauce, PriceCents: 0, Available: true},
	{Code: "samourai", Name: "Samouraï", Category: enums.StockCategorySauce, PriceCents: 0, Available: true},
	{Code: "bbq", Name: "Barbecue", Category: enums.StockCategorySauce, PriceCents: 0, Available: true},

	// Garnitures.
	{Code: "salade", Name: "Salade", Category: enums.StockCategoryGarniture, PriceCents: 0, Available: true},
	{Code: "tomates", Name: "Tomates", Category: enums.StockCategoryGarniture, PriceCents: 0, Available: true},
	{Code: "oignons", Name: "Oignons", Category: enums.StockCategoryGarniture, PriceCents: 0, Available: true},
	{Code: "oignons_frits", Name: "Oignons frits", Category: enums.StockCategoryGarniture, PriceCents: 0, Available: true},

	// Extras.
	{Code: "frites", Name: "Frites", Category: enums.StockCategoryExtra, PriceCents: 250, Available: true},
	{Code: "frites_cheddar", Name: "Frites cheddar", Category: enums.StockCategoryExtra, PriceCents: 350, Available: true},
	{Code: "tenders_x4", Name: "Tenders x4", Category: enums.StockCategoryExtra, PriceCents: 450, Available: true},
	{Code: "mozza_sticks", Name: "Mozzarella sticks", Category: enums.StockCategoryExtra, PriceCents: 400, Available: true},

	// Drinks.
	{Code: "coca", Name: "Coca-Cola 33cl", Category: enums.StockCategoryDrink, PriceCents: 150, Available: true},
	{Code: "coca_zero", Name: "Coca-Cola Zéro 33cl", Category: enums.StockCategoryDrink, PriceCents: 150, Available: true},
	{Code: "orangina", Name: "Orangina 33cl", Category: enums.StockCategoryDrink, PriceCents: 150, Available: true},
	{Code: "oasis", Name: "Oasis Tropical 33cl", Category: enums.StockCategoryDrink, PriceCents: 150, Available: true},
	{Code: "eau", Name: "Eau 50cl", Category: enums.StockCategoryDrink, PriceCents: 100, Available: true},

	// Desserts.
	{Code: "tiramisu", Name: "Tiramisu", Category: enums.StockCategoryDessert, PriceCents: 300, Available: true},
	{Code: "tarte_daim", Name: "Tarte au Daim", Category: enums.StockCategoryDessert, PriceCents: 350, Available: true},
	{Code: "cookie", Name: "Cookie", Category: enums.StockCategoryDessert, PriceCents: 200, Available: true},
}

// DefaultCatalog returns a copy of the built-in menu.
func DefaultCatalog() []CatalogEntry {
	out := make([]CatalogEntry, len(defaultCatalog))
	copy(out, defaultCatalog)
	return out
}

// Model converts the entry into its persistence row, deriving the stable ID.
func (e CatalogEntry) Model() models.StockItem {
	return models.StockItem{
		ID:         ItemID(e.Category, e.Code),
		Code:       e.Code,
		Name:       e.Name,
		Category:   e.Category,
		PriceCents: e.PriceCents,
		Available:  e.Available,
	}
}
