package userorders

import (
	"hash/fnv"
	"math/rand"
	"sort"

	"github.com/google/uuid"

	"github.com/tacocrew/tacocrew-backend/internal/stock"
	"github.com/tacocrew/tacocrew-backend/pkg/db/models"
	"github.com/tacocrew/tacocrew-backend/pkg/enums"
	"github.com/tacocrew/tacocrew-backend/pkg/types"
)

const maxMysteryGarnitures = 2

// RevealTaco converts a mystery taco into a regular one with concrete
// ingredients. The selection is seeded from the taco ID, so revealing the
// same taco against the same stock always yields the same result. Non
// mystery tacos pass through unchanged.
func RevealTaco(taco types.Taco, snapshot *stock.Snapshot) types.Taco {
	if taco.Kind != enums.TacoKindMystery {
		return taco
	}

	rng := rand.New(rand.NewSource(mysterySeed(taco.ID)))

	meats := sortedByCode(snapshot.Available(enums.StockCategoryMeat))
	sauces := sortedByCode(snapshot.Available(enums.StockCategorySauce))
	garnitures := sortedByCode(snapshot.Available(enums.StockCategoryGarniture))

	revealed := taco
	revealed.Kind = enums.TacoKindRegular

	meatCount := boundedCount(rng, 1, taco.Size.MaxMeats(), len(meats))
	revealed.Meats = nil
	for _, item := range pick(rng, meats, meatCount) {
		revealed.Meats = append(revealed.Meats, types.IngredientSelection{ID: item.ID, Qty: 1})
	}

	sauceCount := boundedCount(rng, 1, taco.Size.MaxSauces(), len(sauces))
	revealed.Sauces = nil
	for _, item := range pick(rng, sauces, sauceCount) {
		revealed.Sauces = append(revealed.Sauces, item.ID)
	}

	garnitureCount := boundedCount(rng, 0, maxMysteryGarnitures, len(garnitures))
	revealed.Garnitures = nil
	for _, item := range pick(rng, garnitures, garnitureCount) {
		revealed.Garnitures = append(revealed.Garnitures, item.ID)
	}

	price := ComputeTacoPriceCents(revealed, snapshot)
	revealed.PriceCents = &price
	return revealed
}

// RevealOrderItems reveals every mystery taco in the order.
func RevealOrderItems(items types.OrderItems, snapshot *stock.Snapshot) types.OrderItems {
	if len(items.Tacos) == 0 {
		return items
	}
	revealed := make([]types.Taco, len(items.Tacos))
	for i, taco := range items.Tacos {
		revealed[i] = RevealTaco(taco, snapshot)
	}
	items.Tacos = revealed
	return items
}

// mysterySeed hashes the taco ID into the RNG seed. FNV-64a over the
// canonical UUID string keeps the value stable across processes.
func mysterySeed(id uuid.UUID) int64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte(id.String()))
	return int64(h.Sum64())
}

// boundedCount draws a count from [min, max], clamped to the pool size.
func boundedCount(rng *rand.Rand, min, max, pool int) int {
	if max > pool {
		max = pool
	}
	if min > max {
		min = max
	}
	if max <= 0 {
		return 0
	}
	if min == max {
		return min
	}
	return min + rng.Intn(max-min+1)
}

// pick selects n distinct items via a seeded permutation.
func pick(rng *rand.Rand, pool []models.StockItem, n int) []models.StockItem {
	if n <= 0 || len(pool) == 0 {
		return nil
	}
	if n > len(pool) {
		n = len(pool)
	}
	out := make([]models.StockItem, 0, n)
	for _, idx := range rng.Perm(len(pool))[:n] {
		out = append(out, pool[idx])
	}
	return out
}

// sortedByCode orders the pool by code so the permutation indexes a stable
// sequence regardless of how the snapshot was built.
func sortedByCode(pool []models.StockItem) []models.StockItem {
	out := make([]models.StockItem, len(pool))
	copy(out, pool)
	sort.Slice(out, func(i, j int) bool { return out[i].Code < out[j].Code })
	return out
}
