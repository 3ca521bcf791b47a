package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTireDimensionString(t *testing.T) {
	d := TireDimension{Width: "205", Height: "55", Diameter: "16"}
	assert.Equal(t, "205/55 R16", d.String())
}

func TestSearchRequestHasToken(t *testing.T) {
	r := SearchRequest{PackageSelections: []string{PackageFourTires, TokenWithDisposal}}
	assert.True(t, r.HasToken(TokenWithDisposal))
	assert.False(t, r.HasToken(TokenRunFlat))
}

func TestMixedAxleGatedByDimensionsNotTokens(t *testing.T) {
	withToken := SearchRequest{PackageSelections: []string{PackageMixedFour}}
	assert.False(t, withToken.MixedAxle())

	front := TireDimension{Width: "225", Height: "45", Diameter: "18"}
	withDim := SearchRequest{TireDimensionsFront: &front}
	assert.True(t, withDim.MixedAxle())
}

func TestTireFiltersSeasonDefaultsToAny(t *testing.T) {
	var nilFilters *TireFilters
	assert.Equal(t, SeasonAny, nilFilters.Season())
	assert.Equal(t, SeasonAny, (&TireFilters{}).Season())
	assert.Equal(t, SeasonWinter, (&TireFilters{Seasons: []string{SeasonWinter}}).Season())
}

func TestRecommendationSetSelected(t *testing.T) {
	var nilSet *RecommendationSet
	assert.Nil(t, nilSet.Selected())
	assert.Nil(t, (&RecommendationSet{Available: false}).Selected())

	set := RecommendationSet{
		Available: true,
		Recommendations: []TireRecommendation{
			{Label: LabelCheapest, Offer: TireOffer{Brand: "Barum"}},
			{Label: LabelTestWinner, Offer: TireOffer{Brand: "Michelin"}},
		},
	}
	sel := set.Selected()
	assert.NotNil(t, sel)
	assert.Equal(t, "Barum", sel.Offer.Brand)
}

func TestOfferingForSkipsInactive(t *testing.T) {
	w := Workshop{Services: []ServiceOffering{
		{ServiceType: ServiceTireChange, IsActive: false},
		{ServiceType: ServiceWheelChange, IsActive: true},
	}}
	assert.Nil(t, w.OfferingFor(ServiceTireChange))
	assert.NotNil(t, w.OfferingFor(ServiceWheelChange))
}

func TestActivePackageLookup(t *testing.T) {
	o := ServiceOffering{Packages: []ServicePackage{
		{PackageType: PackageBasic, IsActive: false},
		{PackageType: PackageWithBalancing, IsActive: true},
	}}
	assert.Nil(t, o.ActivePackage(PackageBasic))
	assert.NotNil(t, o.ActivePackage(PackageWithBalancing))
	assert.Len(t, o.ActivePackages(), 1)
}
