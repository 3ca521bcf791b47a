package search

import (
	"context"
	"sort"
	"sync"

	"reifenmarkt/models"
	"reifenmarkt/services/inventory"
	"reifenmarkt/utils"

	"go.uber.org/zap"
)

// axleQuantity is the tire count per axle: one for motorcycles, two for cars.
func axleQuantity(req *models.SearchRequest) int {
	if req.VehicleClass == models.VehicleMotorcycle || req.ServiceType == models.ServiceMotorcycleTire {
		return 1
	}
	return 2
}

// tireResolver attaches tire offers to a workshop candidate. It owns the
// three lookup shapes: single dimension, mixed axles searched independently,
// and mixed axles constrained to one brand across both axles.
type tireResolver struct {
	matcher inventory.TireMatcher
}

// resolve returns the tire attachment for one workshop, or a non-empty
// exclusion reason when the workshop cannot supply the requested tires.
func (r *tireResolver) resolve(ctx context.Context, req *models.SearchRequest, workshopID string, offering *models.ServiceOffering, tireCount int) (*models.TireAttachment, string, error) {
	if req.MixedAxle() {
		if req.SameBrand {
			return r.sameBrand(ctx, req, workshopID, offering)
		}
		return r.independentAxles(ctx, req, workshopID, offering)
	}
	return r.single(ctx, req, workshopID, offering, tireCount)
}

func (r *tireResolver) params(req *models.SearchRequest, workshopID string, offering *models.ServiceOffering, dim models.TireDimension, quantity int) inventory.MatchParams {
	return inventory.MatchParams{
		WorkshopID:       workshopID,
		Dimension:        dim,
		Filters:          req.TireFilters,
		Quantity:         quantity,
		VehicleClass:     req.VehicleClass,
		RunFlatSurcharge: offering.RunFlatSurchargePerTire,
	}
}

func (r *tireResolver) single(ctx context.Context, req *models.SearchRequest, workshopID string, offering *models.ServiceOffering, tireCount int) (*models.TireAttachment, string, error) {
	if req.TireDimensions == nil {
		return nil, "", nil
	}
	if tireCount <= 0 {
		tireCount = 4
	}

	set, err := r.matcher.Match(ctx, r.params(req, workshopID, offering, *req.TireDimensions, tireCount))
	if err != nil {
		// An errored lookup means partial data for this workshop, not a
		// reason to drop it. Treat it like an empty result.
		utils.GetLogger().Warn("tire lookup failed",
			zap.String("workshopId", workshopID), zap.Error(err))
		return &models.TireAttachment{Available: false}, "", nil
	}
	selected := set.Selected()
	if selected == nil {
		// Service-only price stays valid; only the tire attachment degrades.
		// Mixed-axle searches are stricter, see below.
		return &models.TireAttachment{Available: false, Single: set}, "", nil
	}
	return &models.TireAttachment{
		Available: true,
		Single:    set,
		TireCost:  selected.Offer.TotalPrice,
	}, "", nil
}

// independentAxles searches each provided axle on its own. Every provided
// axle must be in stock, otherwise the workshop drops out.
func (r *tireResolver) independentAxles(ctx context.Context, req *models.SearchRequest, workshopID string, offering *models.ServiceOffering) (*models.TireAttachment, string, error) {
	attachment := &models.TireAttachment{Available: true}

	if req.TireDimensionsFront != nil {
		set, err := r.matcher.Match(ctx, r.params(req, workshopID, offering, *req.TireDimensionsFront, axleQuantity(req)))
		if err != nil {
			return nil, "", err
		}
		sel := set.Selected()
		if sel == nil {
			return nil, ExcludedTireUnavailable, nil
		}
		attachment.Front = set
		attachment.TireCost += sel.Offer.TotalPrice
	}

	if req.TireDimensionsRear != nil {
		set, err := r.matcher.Match(ctx, r.params(req, workshopID, offering, *req.TireDimensionsRear, axleQuantity(req)))
		if err != nil {
			return nil, "", err
		}
		sel := set.Selected()
		if sel == nil {
			return nil, ExcludedTireUnavailable, nil
		}
		attachment.Rear = set
		attachment.TireCost += sel.Offer.TotalPrice
	}

	return attachment, "", nil
}

// sameBrand builds front/rear combinations that share a brand: intersect the
// brands stocked at both dimensions, price every shared brand's cheapest pair
// concurrently, then label the best combinations.
func (r *tireResolver) sameBrand(ctx context.Context, req *models.SearchRequest, workshopID string, offering *models.ServiceOffering) (*models.TireAttachment, string, error) {
	if req.TireDimensionsFront == nil || req.TireDimensionsRear == nil {
		return nil, ExcludedTireUnavailable, nil
	}

	frontBrands, err := r.matcher.AvailableBrands(ctx, r.params(req, workshopID, offering, *req.TireDimensionsFront, axleQuantity(req)))
	if err != nil {
		return nil, "", err
	}
	rearBrands, err := r.matcher.AvailableBrands(ctx, r.params(req, workshopID, offering, *req.TireDimensionsRear, axleQuantity(req)))
	if err != nil {
		return nil, "", err
	}

	shared := intersectBrands(frontBrands, rearBrands)
	if len(shared) == 0 {
		return nil, ExcludedNoSharedBrand, nil
	}

	type pairResult struct {
		brand string
		front *models.TireOffer
		rear  *models.TireOffer
	}

	results := make(chan pairResult, len(shared))
	var wg sync.WaitGroup
	for _, brand := range shared {
		wg.Add(1)
		go func(brand string) {
			defer wg.Done()
			fp := r.params(req, workshopID, offering, *req.TireDimensionsFront, axleQuantity(req))
			fp.Brand = brand
			front, ferr := r.matcher.CheapestOffer(ctx, fp)
			if ferr != nil {
				utils.GetLogger().Warn("same-brand front lookup failed",
					zap.String("workshopId", workshopID), zap.String("brand", brand), zap.Error(ferr))
				return
			}
			rp := r.params(req, workshopID, offering, *req.TireDimensionsRear, axleQuantity(req))
			rp.Brand = brand
			rear, rerr := r.matcher.CheapestOffer(ctx, rp)
			if rerr != nil {
				utils.GetLogger().Warn("same-brand rear lookup failed",
					zap.String("workshopId", workshopID), zap.String("brand", brand), zap.Error(rerr))
				return
			}
			if front == nil || rear == nil {
				return
			}
			results <- pairResult{brand: brand, front: front, rear: rear}
		}(brand)
	}
	wg.Wait()
	close(results)

	var options []models.MixedBrandOption
	for res := range results {
		options = append(options, models.MixedBrandOption{
			Brand:         res.brand,
			Front:         *res.front,
			Rear:          *res.rear,
			CombinedPrice: round2(res.front.TotalPrice + res.rear.TotalPrice),
		})
	}
	if len(options) == 0 {
		return nil, ExcludedNoSharedBrand, nil
	}

	sort.Slice(options, func(i, j int) bool {
		if options[i].CombinedPrice != options[j].CombinedPrice {
			return options[i].CombinedPrice < options[j].CombinedPrice
		}
		return options[i].Brand < options[j].Brand
	})

	labeled := labelCombinations(options)
	return &models.TireAttachment{
		Available:    true,
		Combinations: labeled,
		TireCost:     labeled[0].CombinedPrice,
	}, "", nil
}

// labelCombinations keeps at most three options: the cheapest, the cheapest
// premium-brand pair when it is a different brand, and the cheapest
// quality-brand pair distinct from both.
func labelCombinations(options []models.MixedBrandOption) []models.MixedBrandOption {
	cheapest := options[0]
	cheapest.Label = models.LabelCheapest
	out := []models.MixedBrandOption{cheapest}

	var premium, quality *models.MixedBrandOption
	for i := range options {
		if premium == nil && inventory.IsPremiumBrand(options[i].Brand) {
			premium = &options[i]
		}
		if quality == nil && inventory.IsQualityBrand(options[i].Brand) {
			quality = &options[i]
		}
	}

	if premium != nil && premium.Brand != cheapest.Brand {
		p := *premium
		p.Label = models.LabelTestWinner
		out = append(out, p)
	}
	if quality != nil && quality.Brand != cheapest.Brand && (premium == nil || quality.Brand != premium.Brand) {
		q := *quality
		q.Label = models.LabelPopular
		out = append(out, q)
	}

	// No tier produced a second option: surface the runner-up as alternative.
	if len(out) == 1 && len(options) > 1 {
		alt := options[1]
		alt.Label = models.LabelAlternative
		out = append(out, alt)
	}
	return out
}

func intersectBrands(a, b []string) []string {
	inB := make(map[string]bool, len(b))
	for _, brand := range b {
		inB[brand] = true
	}
	var shared []string
	for _, brand := range a {
		if inB[brand] {
			shared = append(shared, brand)
		}
	}
	return shared
}
