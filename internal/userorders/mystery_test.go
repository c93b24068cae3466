package userorders

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tacocrew/tacocrew-backend/internal/stock"
	"github.com/tacocrew/tacocrew-backend/pkg/db/models"
	"github.com/tacocrew/tacocrew-backend/pkg/enums"
	"github.com/tacocrew/tacocrew-backend/pkg/types"
)

func testSnapshot() *stock.Snapshot {
	snapshot := &stock.Snapshot{
		ByCategory: map[enums.StockCategory][]models.StockItem{},
		ByID:       map[uuid.UUID]models.StockItem{},
	}
	for _, entry := range stock.DefaultCatalog() {
		item := entry.Model()
		snapshot.ByCategory[item.Category] = append(snapshot.ByCategory[item.Category], item)
		snapshot.ByID[item.ID] = item
	}
	return snapshot
}

func TestRevealTacoIsDeterministic(t *testing.T) {
	snapshot := testSnapshot()
	taco := types.Taco{
		ID:   uuid.MustParse("6f1c24a9-5d1b-4f0e-9a3c-2b8d7e4f1a05"),
		Kind: enums.TacoKindMystery,
		Size: enums.TacoSizeXL,
	}

	first := RevealTaco(taco, snapshot)
	second := RevealTaco(taco, snapshot)
	assert.Equal(t, first, second)

	// Different taco identities spread across different selections.
	selections := map[string]bool{}
	for i := 0; i < 50; i++ {
		other := taco
		other.ID = uuid.New()
		revealed := RevealTaco(other, snapshot)
		key := ""
		for _, meat := range revealed.Meats {
			key += meat.ID.String()
		}
		selections[key] = true
	}
	assert.Greater(t, len(selections), 1, "every identity picked the same meats")
}

func TestRevealTacoRespectsSizeLimits(t *testing.T) {
	snapshot := testSnapshot()
	for _, size := range enums.TacoSizes() {
		for i := 0; i < 20; i++ {
			taco := types.Taco{ID: uuid.New(), Kind: enums.TacoKindMystery, Size: size}
			revealed := RevealTaco(taco, snapshot)

			assert.Equal(t, enums.TacoKindRegular, revealed.Kind)
			assert.GreaterOrEqual(t, len(revealed.Meats), 1)
			assert.LessOrEqual(t, len(revealed.Meats), size.MaxMeats())
			assert.GreaterOrEqual(t, len(revealed.Sauces), 1)
			assert.LessOrEqual(t, len(revealed.Sauces), size.MaxSauces())
			assert.LessOrEqual(t, len(revealed.Garnitures), maxMysteryGarnitures)

			require.NotNil(t, revealed.PriceCents)
			assert.Equal(t, ComputeTacoPriceCents(revealed, snapshot), *revealed.PriceCents)
			assert.GreaterOrEqual(t, *revealed.PriceCents, size.BasePriceCents())
		}
	}
}

func TestRevealTacoSelectsDistinctIngredients(t *testing.T) {
	snapshot := testSnapshot()
	taco := types.Taco{ID: uuid.New(), Kind: enums.TacoKindMystery, Size: enums.TacoSizeXXL}
	revealed := RevealTaco(taco, snapshot)

	seen := map[uuid.UUID]bool{}
	for _, meat := range revealed.Meats {
		assert.False(t, seen[meat.ID], "duplicate meat")
		seen[meat.ID] = true
	}
}

func TestRevealRegularTacoIsNoOp(t *testing.T) {
	snapshot := testSnapshot()
	price := 1300
	taco := types.Taco{
		ID:         uuid.New(),
		Kind:       enums.TacoKindRegular,
		Size:       enums.TacoSizeM,
		PriceCents: &price,
	}
	assert.Equal(t, taco, RevealTaco(taco, snapshot))
}

func TestRevealOrderItemsOnlyTouchesMysteries(t *testing.T) {
	snapshot := testSnapshot()
	regularPrice := 850
	items := types.OrderItems{
		Tacos: []types.Taco{
			{ID: uuid.New(), Kind: enums.TacoKindRegular, Size: enums.TacoSizeM, PriceCents: &regularPrice},
			{ID: uuid.New(), Kind: enums.TacoKindMystery, Size: enums.TacoSizeL},
		},
		Drinks: []types.LineItem{{Name: "Eau 50cl", PriceCents: intPtr(100)}},
	}

	revealed := RevealOrderItems(items, snapshot)
	assert.Equal(t, items.Tacos[0], revealed.Tacos[0])
	assert.Equal(t, enums.TacoKindRegular, revealed.Tacos[1].Kind)
	assert.NotEmpty(t, revealed.Tacos[1].Meats)
	assert.Equal(t, items.Drinks, revealed.Drinks)
}
