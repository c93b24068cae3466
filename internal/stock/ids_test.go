package stock

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tacocrew/tacocrew-backend/pkg/enums"
)

func TestItemIDDeterminism(t *testing.T) {
	first := ItemID(enums.StockCategoryMeat, "poulet_marine")
	second := ItemID(enums.StockCategoryMeat, "poulet_marine")
	assert.Equal(t, first, second)
}

func TestItemIDDistinguishesCategoryAndCode(t *testing.T) {
	meat := ItemID(enums.StockCategoryMeat, "tenders")
	extra := ItemID(enums.StockCategoryExtra, "tenders")
	assert.NotEqual(t, meat, extra, "same code in another category must get another id")

	kebab := ItemID(enums.StockCategoryMeat, "kebab")
	assert.NotEqual(t, meat, kebab)
}

func TestCategoryNamespacesAreDistinct(t *testing.T) {
	seen := map[string]bool{}
	for _, category := range enums.StockCategories() {
		ns := CategoryNamespace(category).String()
		assert.False(t, seen[ns], "namespace collision for %s", category)
		seen[ns] = true
	}
}

func TestCatalogEntryModelUsesDerivedID(t *testing.T) {
	entry := CatalogEntry{
		Code:       "tiramisu",
		Name:       "Tiramisu",
		Category:   enums.StockCategoryDessert,
		PriceCents: 300,
		Available:  true,
	}
	row := entry.Model()
	assert.Equal(t, ItemID(enums.StockCategoryDessert, "tiramisu"), row.ID)
	assert.Equal(t, "Tiramisu", row.Name)
	assert.Equal(t, 300, row.PriceCents)
	assert.True(t, row.Available)
}

func TestDefaultCatalogHasUniqueIDs(t *testing.T) {
	seen := map[string]bool{}
	for _, entry := range DefaultCatalog() {
		id := entry.Model().ID.String()
		assert.False(t, seen[id], "duplicate catalog id for %s/%s", entry.Category, entry.Code)
		seen[id] = true
	}
}
