package search

import (
	"math"

	"reifenmarkt/models"
)

// composedPrice is the final price breakdown of one candidate.
type composedPrice struct {
	BasePrice        float64
	DisposalFeeTotal float64
	TotalPrice       float64
}

// composePrice adds the disposal fee and the tire cost on top of the resolved
// service price. The run-flat surcharge is already inside the tire prices and
// must not be added again here.
func composePrice(req *models.SearchRequest, offering *models.ServiceOffering, resolved ResolvedPrice, tires *models.TireAttachment) composedPrice {
	out := composedPrice{
		BasePrice:  round2(resolved.BasePrice),
		TotalPrice: resolved.BasePrice,
	}

	if req.HasToken(models.TokenWithDisposal) && resolved.TireCount > 0 {
		out.DisposalFeeTotal = round2(offering.DisposalFeePerTire * float64(resolved.TireCount))
		out.TotalPrice += out.DisposalFeeTotal
	}

	if tires != nil && tires.Available {
		out.TotalPrice += tires.TireCost
	}

	out.TotalPrice = round2(out.TotalPrice)
	return out
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
