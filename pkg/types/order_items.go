package types

import (
	"github.com/google/uuid"

	"github.com/tacocrew/tacocrew-backend/pkg/enums"
)

// LineItem is one priced catalog entry (extra, drink or dessert) inside a
// user order. Price and quantity stay optional on the wire; pricing
// substitutes 0 and 1 respectively.
type LineItem struct {
	ID         *uuid.UUID `json:"id,omitempty"`
	Name       string     `json:"name,omitempty"`
	PriceCents *int       `json:"price_cents,omitempty"`
	Qty        *int       `json:"qty,omitempty"`
}

// IngredientSelection references a stock item together with a quantity.
type IngredientSelection struct {
	ID  uuid.UUID `json:"id"`
	Qty int       `json:"qty"`
}

// Taco is a composed taco line item. Mystery tacos carry no ingredients
// until the reveal swaps them for concrete ones.
type Taco struct {
	ID         uuid.UUID             `json:"id"`
	Kind       enums.TacoKind        `json:"kind"`
	Size       enums.TacoSize        `json:"size"`
	Meats      []IngredientSelection `json:"meats,omitempty"`
	Sauces     []uuid.UUID           `json:"sauces,omitempty"`
	Garnitures []uuid.UUID           `json:"garnitures,omitempty"`
	Note       *string               `json:"note,omitempty"`
	Qty        *int                  `json:"qty,omitempty"`
	PriceCents *int                  `json:"price_cents,omitempty"`
}

// OrderItems groups the four line item collections of a user order. It is
// stored as a jsonb column on the user_orders table.
type OrderItems struct {
	Tacos    []Taco     `json:"tacos,omitempty"`
	Extras   []LineItem `json:"extras,omitempty"`
	Drinks   []LineItem `json:"drinks,omitempty"`
	Desserts []LineItem `json:"desserts,omitempty"`
}
