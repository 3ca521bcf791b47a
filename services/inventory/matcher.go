package inventory

import (
	"context"
	"fmt"
	"math"
	"strconv"

	inventoryRepo "reifenmarkt/database/repository/inventory"
	workshopRepo "reifenmarkt/database/repository/workshop"
	"reifenmarkt/models"
	"reifenmarkt/utils"

	"go.uber.org/zap"
)

// MatchParams describes one (workshop, dimension) inventory lookup.
type MatchParams struct {
	WorkshopID   string
	Dimension    models.TireDimension
	Filters      *models.TireFilters
	Quantity     int
	VehicleClass string

	// RunFlatSurcharge is the workshop's per-tire mounting surcharge for
	// run-flat articles; it is folded into the tire price here so the price
	// composer never touches it again.
	RunFlatSurcharge float64

	// Brand restricts the lookup to a single brand (same-brand axle searches).
	Brand string
}

// TireMatcher answers availability and pricing questions against a
// workshop's own stock.
type TireMatcher interface {
	// Match returns up to three labeled recommendations sorted ascending by
	// total price. Empty stock yields Available=false, never an error.
	Match(ctx context.Context, p MatchParams) (*models.RecommendationSet, error)
	// AvailableBrands lists the distinct brands stocked at the dimension in
	// sufficient quantity, sorted lexically.
	AvailableBrands(ctx context.Context, p MatchParams) ([]string, error)
	// CheapestOffer returns the cheapest single offer matching the params,
	// nil when nothing is in stock.
	CheapestOffer(ctx context.Context, p MatchParams) (*models.TireOffer, error)
}

// Matcher is the Mongo-backed TireMatcher.
type Matcher struct {
	inventory inventoryRepo.InventoryRepository
	workshops workshopRepo.WorkshopRepository
}

func NewMatcher(inv inventoryRepo.InventoryRepository, ws workshopRepo.WorkshopRepository) *Matcher {
	return &Matcher{inventory: inv, workshops: ws}
}

func (m *Matcher) Match(ctx context.Context, p MatchParams) (*models.RecommendationSet, error) {
	offers, err := m.offers(ctx, p)
	if err != nil {
		return nil, err
	}
	if len(offers) == 0 {
		return &models.RecommendationSet{Available: false}, nil
	}

	set := &models.RecommendationSet{
		Available:       true,
		Quantity:        p.Quantity,
		Recommendations: labelOffers(offers),
	}
	return set, nil
}

func (m *Matcher) AvailableBrands(ctx context.Context, p MatchParams) ([]string, error) {
	q := m.query(p)
	brands, err := m.inventory.DistinctBrands(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("distinct brands for workshop %s: %w", p.WorkshopID, err)
	}
	return brands, nil
}

func (m *Matcher) CheapestOffer(ctx context.Context, p MatchParams) (*models.TireOffer, error) {
	offers, err := m.offers(ctx, p)
	if err != nil {
		return nil, err
	}
	if len(offers) == 0 {
		return nil, nil
	}
	offer := offers[0]
	return &offer, nil
}

// offers runs the stock query, applies the index and price filters, and
// returns priced offers sorted ascending by total price.
func (m *Matcher) offers(ctx context.Context, p MatchParams) ([]models.TireOffer, error) {
	items, err := m.inventory.Search(ctx, m.query(p))
	if err != nil {
		return nil, fmt.Errorf("inventory search for workshop %s: %w", p.WorkshopID, err)
	}
	if len(items) == 0 {
		return nil, nil
	}

	markup, err := m.markupFor(ctx, p)
	if err != nil {
		return nil, err
	}

	var offers []models.TireOffer
	for _, item := range items {
		if !MeetsLoadIndex(item.LoadIndex, p.Dimension.LoadIndex) {
			continue
		}
		if !MeetsSpeedIndex(item.SpeedIndex, p.Dimension.SpeedIndex) {
			continue
		}

		perTire := retailPrice(item.PurchasePrice, markup)
		if item.RunFlat {
			perTire = round2(perTire + p.RunFlatSurcharge)
		}
		if p.Filters != nil {
			if p.Filters.MinPrice > 0 && perTire < p.Filters.MinPrice {
				continue
			}
			if p.Filters.MaxPrice > 0 && perTire > p.Filters.MaxPrice {
				continue
			}
		}

		offers = append(offers, models.TireOffer{
			Brand:               item.Brand,
			Model:               item.Model,
			ArticleNumber:       item.ArticleNumber,
			EAN:                 item.EAN,
			PricePerTire:        perTire,
			TotalPrice:          round2(perTire * float64(p.Quantity)),
			Quantity:            p.Quantity,
			Dimensions:          p.Dimension.String(),
			LoadIndex:           item.LoadIndex,
			SpeedIndex:          item.SpeedIndex,
			RunFlat:             item.RunFlat,
			ThreePMSF:           item.ThreePMSF,
			LabelFuelEfficiency: item.LabelFuelEfficiency,
			LabelWetGrip:        item.LabelWetGrip,
			LabelNoise:          item.LabelNoise,
		})
	}

	// Items arrive sorted by purchase price, but the run-flat surcharge and
	// percent markup can reorder final prices.
	sortOffers(offers)
	return offers, nil
}

// query translates MatchParams into the repository filter.
func (m *Matcher) query(p MatchParams) inventoryRepo.InventoryQuery {
	q := inventoryRepo.InventoryQuery{
		WorkshopID: p.WorkshopID,
		Width:      p.Dimension.Width,
		Height:     p.Dimension.Height,
		Diameter:   p.Dimension.Diameter,
		Season:     p.Filters.Season(),
		MinStock:   p.Quantity,
	}

	if p.Brand != "" {
		q.Brands = []string{p.Brand}
	} else if p.Filters != nil {
		switch {
		case len(p.Filters.Brands) > 0:
			q.Brands = p.Filters.Brands
		case p.Filters.Quality == QualityPremium:
			q.Brands = PremiumBrands
		case p.Filters.Quality == QualityQuality:
			q.Brands = QualityBrands
		case p.Filters.Quality == QualityBudget:
			q.ExcludeBrands = append(append([]string{}, PremiumBrands...), QualityBrands...)
		}
	}

	if p.Filters != nil {
		q.RunFlat = p.Filters.RunFlat
		q.ThreePMSF = p.Filters.ThreePMSF
	}
	return q
}

// markup carries the resolved markup terms for one lookup.
type markup struct {
	fixed      float64
	percent    float64
	includeVat bool
}

const vatRate = 0.19

// markupFor resolves the workshop's markup: a rim-size rule when one exists,
// otherwise the workshop's per-vehicle-class defaults.
func (m *Matcher) markupFor(ctx context.Context, p MatchParams) (markup, error) {
	rimSize, _ := strconv.Atoi(p.Dimension.Diameter)
	vehicleClass := p.VehicleClass
	if vehicleClass == "" {
		vehicleClass = models.VehicleCar
	}

	rule, err := m.inventory.GetPricingRule(ctx, p.WorkshopID, rimSize, vehicleClass)
	if err != nil {
		return markup{}, fmt.Errorf("pricing rule for workshop %s: %w", p.WorkshopID, err)
	}
	if rule != nil {
		return markup{fixed: rule.FixedMarkup, percent: rule.PercentMarkup, includeVat: rule.IncludeVat}, nil
	}

	defaults, err := m.workshops.GetMarkupDefaults(ctx, p.WorkshopID)
	if err != nil {
		return markup{}, fmt.Errorf("markup defaults for workshop %s: %w", p.WorkshopID, err)
	}
	if defaults == nil {
		utils.GetLogger().Warn("workshop has no markup configuration, selling at purchase price",
			zap.String("workshopId", p.WorkshopID))
		return markup{}, nil
	}
	if vehicleClass == models.VehicleMotorcycle {
		return markup{fixed: defaults.MotoFixedMarkup, percent: defaults.MotoPercentMarkup, includeVat: defaults.MotoIncludeVat}, nil
	}
	return markup{fixed: defaults.AutoFixedMarkup, percent: defaults.AutoPercentMarkup, includeVat: defaults.AutoIncludeVat}, nil
}

// retailPrice applies fixed markup, then percent markup, then VAT.
func retailPrice(purchase float64, m markup) float64 {
	price := (purchase + m.fixed) * (1 + m.percent/100)
	if m.includeVat {
		price *= 1 + vatRate
	}
	return round2(price)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// sortOffers sorts ascending by total price, insertion sort since lists are
// small after filtering.
func sortOffers(offers []models.TireOffer) {
	for i := 1; i < len(offers); i++ {
		for j := i; j > 0 && offers[j].TotalPrice < offers[j-1].TotalPrice; j-- {
			offers[j], offers[j-1] = offers[j-1], offers[j]
		}
	}
}

// labelOffers picks at most three recommendations: the cheapest offer always,
// the cheapest premium-brand offer as Testsieger when distinct, and the
// cheapest quality-brand offer as Beliebt when distinct from both.
func labelOffers(offers []models.TireOffer) []models.TireRecommendation {
	recs := []models.TireRecommendation{{Label: models.LabelCheapest, Offer: offers[0]}}

	var premium, quality *models.TireOffer
	for i := range offers {
		if premium == nil && IsPremiumBrand(offers[i].Brand) {
			premium = &offers[i]
		}
		if quality == nil && IsQualityBrand(offers[i].Brand) {
			quality = &offers[i]
		}
	}

	if premium != nil && premium.ArticleNumber != offers[0].ArticleNumber {
		recs = append(recs, models.TireRecommendation{Label: models.LabelTestWinner, Offer: *premium})
	}
	if quality != nil && quality.ArticleNumber != offers[0].ArticleNumber &&
		(premium == nil || quality.ArticleNumber != premium.ArticleNumber) {
		recs = append(recs, models.TireRecommendation{Label: models.LabelPopular, Offer: *quality})
	}

	// No tier produced a second option: surface the runner-up as alternative.
	if len(recs) == 1 && len(offers) > 1 {
		recs = append(recs, models.TireRecommendation{Label: models.LabelAlternative, Offer: offers[1]})
	}
	return recs
}
