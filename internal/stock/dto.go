package stock

import (
	"github.com/google/uuid"

	"github.com/tacocrew/tacocrew-backend/pkg/db/models"
	"github.com/tacocrew/tacocrew-backend/pkg/enums"
)

// StockItemDTO is one catalog entry as returned to clients.
type StockItemDTO struct {
	ID         uuid.UUID `json:"id"`
	Code       string    `json:"code"`
	Name       string    `json:"name"`
	PriceCents int       `json:"price_cents"`
	Available  bool      `json:"available"`
}

// TacoSizeDTO exposes one taco size with its price and ingredient limits.
type TacoSizeDTO struct {
	Size           string `json:"size"`
	BasePriceCents int    `json:"base_price_cents"`
	MaxMeats       int    `json:"max_meats"`
	MaxSauces      int    `json:"max_sauces"`
}

// StockDTO is the full availability snapshot grouped by category.
type StockDTO struct {
	Meats      []StockItemDTO `json:"meats"`
	Sauces     []StockItemDTO `json:"sauces"`
	Garnitures []StockItemDTO `json:"garnitures"`
	Extras     []StockItemDTO `json:"extras"`
	Drinks     []StockItemDTO `json:"drinks"`
	Desserts   []StockItemDTO `json:"desserts"`
	TacoSizes  []TacoSizeDTO  `json:"taco_sizes"`
}

func toItemDTO(item models.StockItem) StockItemDTO {
	return StockItemDTO{
		ID:         item.ID,
		Code:       item.Code,
		Name:       item.Name,
		PriceCents: item.PriceCents,
		Available:  item.Available,
	}
}

func tacoSizeDTOs() []TacoSizeDTO {
	sizes := enums.TacoSizes()
	out := make([]TacoSizeDTO, 0, len(sizes))
	for _, size := range sizes {
		out = append(out, TacoSizeDTO{
			Size:           size.String(),
			BasePriceCents: size.BasePriceCents(),
			MaxMeats:       size.MaxMeats(),
			MaxSauces:      size.MaxSauces(),
		})
	}
	return out
}
