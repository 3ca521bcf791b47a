package inventory

import (
	"context"
	"fmt"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	inventoryRepo "reifenmarkt/database/repository/inventory"
	"reifenmarkt/models"
)

// fakeInventoryRepo applies the same filter semantics as the Mongo repo,
// in memory.
type fakeInventoryRepo struct {
	items []models.InventoryItem
	rules []models.PricingRule
}

func (f *fakeInventoryRepo) Search(_ context.Context, q inventoryRepo.InventoryQuery) ([]models.InventoryItem, error) {
	var out []models.InventoryItem
	for _, item := range f.items {
		if !f.matches(item, q) {
			continue
		}
		out = append(out, item)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].PurchasePrice < out[j].PurchasePrice })
	return out, nil
}

func (f *fakeInventoryRepo) matches(item models.InventoryItem, q inventoryRepo.InventoryQuery) bool {
	if item.WorkshopID != q.WorkshopID {
		return false
	}
	if item.Width != q.Width || item.Height != q.Height || item.Diameter != q.Diameter {
		return false
	}
	if q.Season != models.SeasonAny && item.Season != q.Season {
		return false
	}
	if item.Stock < q.MinStock {
		return false
	}
	if len(q.ExcludeBrands) > 0 {
		for _, b := range q.ExcludeBrands {
			if item.Brand == b {
				return false
			}
		}
	} else if len(q.Brands) > 0 {
		found := false
		for _, b := range q.Brands {
			if item.Brand == b {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	if q.RunFlat != nil && item.RunFlat != *q.RunFlat {
		return false
	}
	if q.ThreePMSF != nil && item.ThreePMSF != *q.ThreePMSF {
		return false
	}
	return true
}

func (f *fakeInventoryRepo) DistinctBrands(ctx context.Context, q inventoryRepo.InventoryQuery) ([]string, error) {
	items, _ := f.Search(ctx, q)
	seen := map[string]bool{}
	var brands []string
	for _, item := range items {
		if !seen[item.Brand] {
			seen[item.Brand] = true
			brands = append(brands, item.Brand)
		}
	}
	sort.Strings(brands)
	return brands, nil
}

func (f *fakeInventoryRepo) GetPricingRule(_ context.Context, workshopID string, rimSize int, vehicleClass string) (*models.PricingRule, error) {
	for i, r := range f.rules {
		if r.WorkshopID == workshopID && r.RimSize == rimSize && r.VehicleClass == vehicleClass {
			return &f.rules[i], nil
		}
	}
	return nil, nil
}

// fakeWorkshopRepo only serves markup defaults in these tests.
type fakeWorkshopRepo struct {
	defaults map[string]*models.MarkupDefaults
}

func (f *fakeWorkshopRepo) GetByID(context.Context, string) (*models.Workshop, error) {
	return nil, fmt.Errorf("not implemented")
}

func (f *fakeWorkshopRepo) GetByServiceType(context.Context, string) ([]models.Workshop, error) {
	return nil, fmt.Errorf("not implemented")
}

func (f *fakeWorkshopRepo) GetAllIDs(context.Context) ([]string, error) {
	return nil, fmt.Errorf("not implemented")
}

func (f *fakeWorkshopRepo) GetMarkupDefaults(_ context.Context, workshopID string) (*models.MarkupDefaults, error) {
	return f.defaults[workshopID], nil
}

func tireItem(workshopID, brand, model string, price float64, stock int) models.InventoryItem {
	return models.InventoryItem{
		WorkshopID:    workshopID,
		ArticleNumber: brand + "-" + model,
		Brand:         brand,
		Model:         model,
		Width:         "205",
		Height:        "55",
		Diameter:      "16",
		Season:        models.SeasonSummer,
		LoadIndex:     "91",
		SpeedIndex:    "V",
		PurchasePrice: price,
		Stock:         stock,
		VehicleClass:  models.VehicleCar,
	}
}

func dim205(t *testing.T) models.TireDimension {
	t.Helper()
	return models.TireDimension{Width: "205", Height: "55", Diameter: "16"}
}

func summerFilters() *models.TireFilters {
	return &models.TireFilters{Seasons: []string{models.SeasonSummer}}
}

func TestMatchAppliesRuleMarkup(t *testing.T) {
	inv := &fakeInventoryRepo{
		items: []models.InventoryItem{tireItem("w1", "NoName", "Eco", 50, 8)},
		rules: []models.PricingRule{{
			WorkshopID: "w1", RimSize: 16, VehicleClass: models.VehicleCar,
			FixedMarkup: 10, PercentMarkup: 20, IncludeVat: true,
		}},
	}
	m := NewMatcher(inv, &fakeWorkshopRepo{})

	set, err := m.Match(context.Background(), MatchParams{
		WorkshopID: "w1", Dimension: dim205(t), Filters: summerFilters(), Quantity: 4,
	})
	require.NoError(t, err)
	require.True(t, set.Available)
	require.Len(t, set.Recommendations, 1)

	// (50 + 10) * 1.20 * 1.19 = 85.68 per tire
	offer := set.Recommendations[0].Offer
	assert.Equal(t, models.LabelCheapest, set.Recommendations[0].Label)
	assert.InDelta(t, 85.68, offer.PricePerTire, 0.001)
	assert.InDelta(t, 342.72, offer.TotalPrice, 0.001)
	assert.Equal(t, 4, offer.Quantity)
	assert.Equal(t, "205/55 R16", offer.Dimensions)
}

func TestMatchFallsBackToDefaultMarkup(t *testing.T) {
	inv := &fakeInventoryRepo{items: []models.InventoryItem{tireItem("w1", "NoName", "Eco", 100, 4)}}
	ws := &fakeWorkshopRepo{defaults: map[string]*models.MarkupDefaults{
		"w1": {WorkshopID: "w1", AutoFixedMarkup: 5, AutoPercentMarkup: 10, AutoIncludeVat: false},
	}}
	m := NewMatcher(inv, ws)

	offer, err := m.CheapestOffer(context.Background(), MatchParams{
		WorkshopID: "w1", Dimension: dim205(t), Filters: summerFilters(), Quantity: 2,
	})
	require.NoError(t, err)
	require.NotNil(t, offer)
	// (100 + 5) * 1.10 = 115.50
	assert.InDelta(t, 115.50, offer.PricePerTire, 0.001)
	assert.InDelta(t, 231.00, offer.TotalPrice, 0.001)
}

func TestMatchWithoutAnyMarkupSellsAtPurchasePrice(t *testing.T) {
	inv := &fakeInventoryRepo{items: []models.InventoryItem{tireItem("w1", "NoName", "Eco", 80, 4)}}
	m := NewMatcher(inv, &fakeWorkshopRepo{})

	offer, err := m.CheapestOffer(context.Background(), MatchParams{
		WorkshopID: "w1", Dimension: dim205(t), Filters: summerFilters(), Quantity: 1,
	})
	require.NoError(t, err)
	require.NotNil(t, offer)
	assert.InDelta(t, 80.0, offer.PricePerTire, 0.001)
}

func TestMatchAddsRunFlatSurchargeOnlyToRunFlatArticles(t *testing.T) {
	plain := tireItem("w1", "NoName", "Eco", 50, 4)
	rft := tireItem("w1", "NoName", "EcoRFT", 50, 4)
	rft.RunFlat = true
	inv := &fakeInventoryRepo{items: []models.InventoryItem{plain, rft}}
	m := NewMatcher(inv, &fakeWorkshopRepo{})

	set, err := m.Match(context.Background(), MatchParams{
		WorkshopID: "w1", Dimension: dim205(t), Filters: summerFilters(),
		Quantity: 4, RunFlatSurcharge: 8,
	})
	require.NoError(t, err)
	require.True(t, set.Available)

	selected := set.Selected()
	require.NotNil(t, selected)
	assert.Equal(t, "NoName-Eco", selected.Offer.ArticleNumber)
	assert.InDelta(t, 50.0, selected.Offer.PricePerTire, 0.001)
}

func TestMatchFiltersByLoadAndSpeedIndex(t *testing.T) {
	weak := tireItem("w1", "NoName", "Weak", 40, 4)
	weak.LoadIndex = "88"
	slow := tireItem("w1", "NoName", "Slow", 45, 4)
	slow.SpeedIndex = "T"
	ok := tireItem("w1", "NoName", "Ok", 60, 4)
	inv := &fakeInventoryRepo{items: []models.InventoryItem{weak, slow, ok}}
	m := NewMatcher(inv, &fakeWorkshopRepo{})

	dim := dim205(t)
	dim.LoadIndex = "91"
	dim.SpeedIndex = "V"
	set, err := m.Match(context.Background(), MatchParams{
		WorkshopID: "w1", Dimension: dim, Filters: summerFilters(), Quantity: 4,
	})
	require.NoError(t, err)
	require.True(t, set.Available)
	require.Len(t, set.Recommendations, 1)
	assert.Equal(t, "NoName-Ok", set.Recommendations[0].Offer.ArticleNumber)
}

func TestMatchPriceBoundsApplyToRetailPrice(t *testing.T) {
	cheap := tireItem("w1", "NoName", "Cheap", 30, 4)
	mid := tireItem("w1", "NoName", "Mid", 60, 4)
	dear := tireItem("w1", "NoName", "Dear", 200, 4)
	inv := &fakeInventoryRepo{items: []models.InventoryItem{cheap, mid, dear}}
	m := NewMatcher(inv, &fakeWorkshopRepo{})

	filters := summerFilters()
	filters.MinPrice = 50
	filters.MaxPrice = 100
	set, err := m.Match(context.Background(), MatchParams{
		WorkshopID: "w1", Dimension: dim205(t), Filters: filters, Quantity: 4,
	})
	require.NoError(t, err)
	require.Len(t, set.Recommendations, 1)
	assert.Equal(t, "NoName-Mid", set.Recommendations[0].Offer.ArticleNumber)
}

func TestMatchQualityTierFilters(t *testing.T) {
	items := []models.InventoryItem{
		tireItem("w1", "Michelin", "Primacy", 90, 4),
		tireItem("w1", "Hankook", "Ventus", 60, 4),
		tireItem("w1", "NoName", "Eco", 35, 4),
	}
	m := NewMatcher(&fakeInventoryRepo{items: items}, &fakeWorkshopRepo{})
	ctx := context.Background()

	premium := summerFilters()
	premium.Quality = QualityPremium
	set, err := m.Match(ctx, MatchParams{WorkshopID: "w1", Dimension: dim205(t), Filters: premium, Quantity: 4})
	require.NoError(t, err)
	require.Len(t, set.Recommendations, 1)
	assert.Equal(t, "Michelin", set.Recommendations[0].Offer.Brand)

	budget := summerFilters()
	budget.Quality = QualityBudget
	set, err = m.Match(ctx, MatchParams{WorkshopID: "w1", Dimension: dim205(t), Filters: budget, Quantity: 4})
	require.NoError(t, err)
	require.Len(t, set.Recommendations, 1)
	assert.Equal(t, "NoName", set.Recommendations[0].Offer.Brand)
}

func TestMatchLabelsCheapestTestWinnerAndPopular(t *testing.T) {
	items := []models.InventoryItem{
		tireItem("w1", "NoName", "Eco", 35, 4),
		tireItem("w1", "Hankook", "Ventus", 60, 4),
		tireItem("w1", "Michelin", "Primacy", 90, 4),
	}
	m := NewMatcher(&fakeInventoryRepo{items: items}, &fakeWorkshopRepo{})

	set, err := m.Match(context.Background(), MatchParams{
		WorkshopID: "w1", Dimension: dim205(t), Filters: summerFilters(), Quantity: 4,
	})
	require.NoError(t, err)
	require.Len(t, set.Recommendations, 3)

	assert.Equal(t, models.LabelCheapest, set.Recommendations[0].Label)
	assert.Equal(t, "NoName", set.Recommendations[0].Offer.Brand)
	assert.Equal(t, models.LabelTestWinner, set.Recommendations[1].Label)
	assert.Equal(t, "Michelin", set.Recommendations[1].Offer.Brand)
	assert.Equal(t, models.LabelPopular, set.Recommendations[2].Label)
	assert.Equal(t, "Hankook", set.Recommendations[2].Offer.Brand)
}

func TestMatchCheapestPremiumGetsRunnerUpAsAlternative(t *testing.T) {
	items := []models.InventoryItem{
		tireItem("w1", "Michelin", "Primacy", 50, 4),
		tireItem("w1", "Pirelli", "P7", 70, 4),
	}
	m := NewMatcher(&fakeInventoryRepo{items: items}, &fakeWorkshopRepo{})

	set, err := m.Match(context.Background(), MatchParams{
		WorkshopID: "w1", Dimension: dim205(t), Filters: summerFilters(), Quantity: 4,
	})
	require.NoError(t, err)
	// Michelin is both cheapest and the first premium hit, so no Testsieger;
	// the runner-up fills in as the alternative.
	require.Len(t, set.Recommendations, 2)
	assert.Equal(t, models.LabelCheapest, set.Recommendations[0].Label)
	assert.Equal(t, models.LabelAlternative, set.Recommendations[1].Label)
	assert.Equal(t, "Pirelli", set.Recommendations[1].Offer.Brand)
}

func TestMatchEmptyStockIsUnavailableNotError(t *testing.T) {
	m := NewMatcher(&fakeInventoryRepo{}, &fakeWorkshopRepo{})

	set, err := m.Match(context.Background(), MatchParams{
		WorkshopID: "w1", Dimension: dim205(t), Filters: summerFilters(), Quantity: 4,
	})
	require.NoError(t, err)
	assert.False(t, set.Available)
	assert.Nil(t, set.Selected())
}

func TestMatchRespectsStockQuantity(t *testing.T) {
	low := tireItem("w1", "NoName", "Low", 30, 2)
	m := NewMatcher(&fakeInventoryRepo{items: []models.InventoryItem{low}}, &fakeWorkshopRepo{})
	ctx := context.Background()

	set, err := m.Match(ctx, MatchParams{WorkshopID: "w1", Dimension: dim205(t), Filters: summerFilters(), Quantity: 4})
	require.NoError(t, err)
	assert.False(t, set.Available)

	set, err = m.Match(ctx, MatchParams{WorkshopID: "w1", Dimension: dim205(t), Filters: summerFilters(), Quantity: 2})
	require.NoError(t, err)
	assert.True(t, set.Available)
}

func TestCheapestOfferRestrictedToBrand(t *testing.T) {
	items := []models.InventoryItem{
		tireItem("w1", "NoName", "Eco", 35, 4),
		tireItem("w1", "Michelin", "Primacy", 90, 4),
		tireItem("w1", "Michelin", "Pilot", 110, 4),
	}
	m := NewMatcher(&fakeInventoryRepo{items: items}, &fakeWorkshopRepo{})

	offer, err := m.CheapestOffer(context.Background(), MatchParams{
		WorkshopID: "w1", Dimension: dim205(t), Filters: summerFilters(), Quantity: 2, Brand: "Michelin",
	})
	require.NoError(t, err)
	require.NotNil(t, offer)
	assert.Equal(t, "Michelin", offer.Brand)
	assert.Equal(t, "Primacy", offer.Model)
}

func TestAvailableBrandsSortedLexically(t *testing.T) {
	items := []models.InventoryItem{
		tireItem("w1", "Pirelli", "P7", 70, 4),
		tireItem("w1", "Continental", "Eco6", 65, 4),
		tireItem("w1", "Continental", "Premium", 85, 4),
	}
	m := NewMatcher(&fakeInventoryRepo{items: items}, &fakeWorkshopRepo{})

	brands, err := m.AvailableBrands(context.Background(), MatchParams{
		WorkshopID: "w1", Dimension: dim205(t), Filters: summerFilters(), Quantity: 2,
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"Continental", "Pirelli"}, brands)
}
