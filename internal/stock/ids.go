package stock

import (
	"github.com/google/uuid"
	"github.com/tacocrew/tacocrew-backend/pkg/enums"
)

// projectNamespace is the fixed root namespace for all catalog IDs. It must
// never change: every stock item ID is derived from it, and persisted rows
// reference those IDs.
var projectNamespace = uuid.MustParse("b3c1f4d2-8e5a-4f7b-9c2d-1a6e0f3b7d94")

// CategoryNamespace derives the per-category namespace from the project root.
func CategoryNamespace(category enums.StockCategory) uuid.UUID {
	return uuid.NewSHA1(projectNamespace, []byte(category.String()))
}

// ItemID derives the stable ID for a stock item. The same (category, code)
// pair always yields the same UUID, so catalog reseeds and references from
// stored orders stay consistent across environments.
func ItemID(category enums.StockCategory, code string) uuid.UUID {
	return uuid.NewSHA1(CategoryNamespace(category), []byte(code))
}
