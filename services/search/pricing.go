package search

import (
	"reifenmarkt/models"
)

// ResolvedPrice is the outcome of package resolution for one workshop.
// TireCount is inferred from the resolved package and feeds the disposal fee
// multiplication downstream.
type ResolvedPrice struct {
	BasePrice       float64
	DurationMinutes int
	TireCount       int
}

// packagePricing resolves a workshop's base price for one request. A
// non-empty reason means the workshop cannot serve this exact selection and
// must be excluded; exclusion is the expected signal, never an error.
type packagePricing interface {
	Resolve(offering *models.ServiceOffering, tokens []string) (ResolvedPrice, string)
}

// pricingFor picks the pricing policy for a service type. Wheel change
// composes additively on top of a mandatory basic package; every other
// service selects one package variant.
func pricingFor(serviceType string) packagePricing {
	if serviceType == models.ServiceWheelChange {
		return additivePricing{}
	}
	return selectionPricing{serviceType: serviceType}
}

// surchargeToken reports whether a token only toggles fees and never selects
// a package.
func surchargeToken(t string) bool {
	return t == models.TokenWithDisposal || t == models.TokenRunFlat
}

// mainTokens strips the surcharge tokens from a selection.
func mainTokens(tokens []string) []string {
	var out []string
	for _, t := range tokens {
		if !surchargeToken(t) {
			out = append(out, t)
		}
	}
	return out
}

// additivePricing implements the wheel-change policy: the basic package is
// mandatory; balancing and storage are add-ons priced as the difference to
// the basic package, never standalone.
type additivePricing struct{}

func (additivePricing) Resolve(offering *models.ServiceOffering, tokens []string) (ResolvedPrice, string) {
	basic := offering.ActivePackage(models.PackageBasic)
	if basic == nil {
		return ResolvedPrice{}, ExcludedNoBasicPackage
	}

	resolved := ResolvedPrice{
		BasePrice:       basic.Price,
		DurationMinutes: basic.DurationMinutes,
		TireCount:       4,
	}

	main := mainTokens(tokens)
	if len(main) == 0 {
		return resolved, ""
	}

	for _, token := range main {
		switch token {
		case models.PackageBasic:
			// Already priced in.
		case models.PackageWithBalancing:
			bal := offering.ActivePackage(models.PackageWithBalancing)
			if bal == nil {
				return ResolvedPrice{}, ExcludedMissingAddOn
			}
			resolved.BasePrice += bal.Price - basic.Price
			resolved.DurationMinutes = bal.DurationMinutes
		case models.PackageWithStorage:
			st := offering.ActivePackage(models.PackageWithStorage)
			if st == nil {
				return ResolvedPrice{}, ExcludedMissingAddOn
			}
			resolved.BasePrice += st.Price - basic.Price
		default:
			// Unknown add-on token for this service: the workshop cannot
			// fulfill the exact selection.
			return ResolvedPrice{}, ExcludedMissingAddOn
		}
	}
	return resolved, ""
}

// selectionPricing implements every other service type: the customer's main
// tokens filter the workshop's active packages; without tokens the cheapest
// active package is the default.
type selectionPricing struct {
	serviceType string
}

// mapMainToken folds the axle-specific mixed variants onto the two physical
// package types workshops actually stock. The mixed tokens exist purely to
// drive the tire-search path.
func mapMainToken(token string) string {
	switch token {
	case models.PackageFrontTwoTires, models.PackageRearTwoTires:
		return models.PackageTwoTires
	case models.PackageMixedFour:
		return models.PackageFourTires
	default:
		return token
	}
}

func (p selectionPricing) Resolve(offering *models.ServiceOffering, tokens []string) (ResolvedPrice, string) {
	active := offering.ActivePackages()
	main := mainTokens(tokens)

	if len(main) > 0 {
		wanted := make(map[string]bool, len(main))
		for _, t := range main {
			wanted[mapMainToken(t)] = true
		}
		var match *models.ServicePackage
		for i := range active {
			if !wanted[active[i].PackageType] {
				continue
			}
			if match == nil || active[i].Price < match.Price {
				match = &active[i]
			}
		}
		if match == nil {
			return ResolvedPrice{}, ExcludedNoPackage
		}
		return ResolvedPrice{
			BasePrice:       match.Price,
			DurationMinutes: match.DurationMinutes,
			TireCount:       tireCountForPackage(match.PackageType),
		}, ""
	}

	if len(active) > 0 {
		// No tokens: default to the cheapest active package; ties resolve to
		// the earlier package in list order.
		cheapest := &active[0]
		for i := 1; i < len(active); i++ {
			if active[i].Price < cheapest.Price {
				cheapest = &active[i]
			}
		}
		return ResolvedPrice{
			BasePrice:       cheapest.Price,
			DurationMinutes: cheapest.DurationMinutes,
			TireCount:       tireCountForPackage(cheapest.PackageType),
		}, ""
	}

	// Neither packages nor tokens: fall back to the offering's flat base price.
	return ResolvedPrice{
		BasePrice:       offering.BasePrice,
		DurationMinutes: offering.DurationMinutes,
		TireCount:       defaultTireCount(p.serviceType),
	}, ""
}

// tireCountForPackage infers how many tires a package addresses.
func tireCountForPackage(packageType string) int {
	switch packageType {
	case models.PackageOneTire:
		return 1
	case models.PackageTwoTires:
		return 2
	case models.PackageFourTires:
		return 4
	default:
		return 0
	}
}

// defaultTireCount is used when no package constrains the count: a full car
// set or both motorcycle wheels.
func defaultTireCount(serviceType string) int {
	if serviceType == models.ServiceMotorcycleTire {
		return 2
	}
	return 4
}
