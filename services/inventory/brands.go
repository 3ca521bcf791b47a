package inventory

import (
	"strconv"
	"strings"
)

// Brand tiers used for quality filters and recommendation labels.
var (
	PremiumBrands = []string{"Michelin", "Continental", "Pirelli", "Bridgestone", "Goodyear", "Dunlop"}
	QualityBrands = []string{"Hankook", "Kumho", "Yokohama", "Toyo", "Falken", "BFGoodrich", "Cooper", "Nokian"}
)

// Quality filter values accepted in requests.
const (
	QualityPremium = "premium"
	QualityQuality = "quality"
	QualityBudget  = "budget"
)

// speedIndexOrder ranks the common speed symbols ascending.
var speedIndexOrder = []string{"L", "M", "N", "P", "Q", "R", "S", "T", "U", "H", "V", "W", "Y", "ZR"}

func speedRank(symbol string) int {
	for i, s := range speedIndexOrder {
		if s == symbol {
			return i
		}
	}
	return -1
}

// MeetsSpeedIndex reports whether a tire's speed symbol is rated at or above
// the required one. A tire without a symbol never satisfies a requirement.
func MeetsSpeedIndex(have, required string) bool {
	if required == "" {
		return true
	}
	h, r := speedRank(have), speedRank(required)
	if h < 0 || r < 0 {
		return false
	}
	return h >= r
}

// MeetsLoadIndex compares the numeric load indices the same way.
func MeetsLoadIndex(have, required string) bool {
	if required == "" {
		return true
	}
	h, errH := strconv.Atoi(have)
	r, errR := strconv.Atoi(required)
	if errH != nil || errR != nil {
		return false
	}
	return h >= r
}

// IsPremiumBrand reports membership in the premium tier.
func IsPremiumBrand(brand string) bool {
	return containsBrand(PremiumBrands, brand)
}

// IsQualityBrand reports membership in the quality tier.
func IsQualityBrand(brand string) bool {
	return containsBrand(QualityBrands, brand)
}

// Inventory feeds spell brands inconsistently ("MICHELIN", "Michelin
// Motorsport"), so membership is a case-insensitive substring match.
func containsBrand(tier []string, brand string) bool {
	normalized := strings.ToLower(brand)
	for _, b := range tier {
		if strings.Contains(normalized, strings.ToLower(b)) {
			return true
		}
	}
	return false
}
