package userorders

import (
	"github.com/tacocrew/tacocrew-backend/internal/stock"
	"github.com/tacocrew/tacocrew-backend/pkg/db/models"
	"github.com/tacocrew/tacocrew-backend/pkg/types"
)

// ItemTotalCents prices one line item. Quantity defaults to 1 and price to
// 0 when absent, so incomplete items never fail pricing.
func ItemTotalCents(item types.LineItem) int {
	price := 0
	if item.PriceCents != nil {
		price = *item.PriceCents
	}
	qty := 1
	if item.Qty != nil {
		qty = *item.Qty
	}
	return price * qty
}

// TacoTotalCents prices one taco entry using the same defaulting rules.
func TacoTotalCents(taco types.Taco) int {
	price := 0
	if taco.PriceCents != nil {
		price = *taco.PriceCents
	}
	qty := 1
	if taco.Qty != nil {
		qty = *taco.Qty
	}
	return price * qty
}

// ComputeTacoPriceCents derives the unit price of a composed taco: the size
// base price plus every meat at its catalog price times its quantity.
// Sauces and garnitures are free.
func ComputeTacoPriceCents(taco types.Taco, snapshot *stock.Snapshot) int {
	total := taco.Size.BasePriceCents()
	for _, meat := range taco.Meats {
		qty := meat.Qty
		if qty <= 0 {
			qty = 1
		}
		total += snapshot.PriceCents(meat.ID) * qty
	}
	return total
}

// OrderItemsTotalCents sums all four line item collections of one order.
func OrderItemsTotalCents(items types.OrderItems) int {
	total := 0
	for _, taco := range items.Tacos {
		total += TacoTotalCents(taco)
	}
	for _, item := range items.Extras {
		total += ItemTotalCents(item)
	}
	for _, item := range items.Drinks {
		total += ItemTotalCents(item)
	}
	for _, item := range items.Desserts {
		total += ItemTotalCents(item)
	}
	return total
}

// TotalFromUserOrders aggregates order totals across many user orders.
func TotalFromUserOrders(orders []models.UserOrder) int {
	total := 0
	for _, order := range orders {
		total += OrderItemsTotalCents(order.Items)
	}
	return total
}
