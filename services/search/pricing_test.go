package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"reifenmarkt/models"
)

func pkg(packageType string, price float64, duration int, active bool) models.ServicePackage {
	return models.ServicePackage{
		PackageType:     packageType,
		Price:           price,
		DurationMinutes: duration,
		IsActive:        active,
	}
}

func wheelChangeOffering() *models.ServiceOffering {
	return &models.ServiceOffering{
		ServiceType: models.ServiceWheelChange,
		IsActive:    true,
		Packages: []models.ServicePackage{
			pkg(models.PackageBasic, 30, 30, true),
			pkg(models.PackageWithBalancing, 50, 45, true),
			pkg(models.PackageWithStorage, 80, 30, true),
		},
	}
}

func TestAdditivePricingBasicOnly(t *testing.T) {
	resolved, reason := pricingFor(models.ServiceWheelChange).Resolve(wheelChangeOffering(), nil)
	require.Empty(t, reason)
	assert.Equal(t, 30.0, resolved.BasePrice)
	assert.Equal(t, 30, resolved.DurationMinutes)
	assert.Equal(t, 4, resolved.TireCount)
}

func TestAdditivePricingBalancingAddsDifference(t *testing.T) {
	resolved, reason := pricingFor(models.ServiceWheelChange).Resolve(
		wheelChangeOffering(), []string{models.PackageWithBalancing})
	require.Empty(t, reason)
	// 30 + (50 - 30) = 50, balancing duration replaces the basic one.
	assert.Equal(t, 50.0, resolved.BasePrice)
	assert.Equal(t, 45, resolved.DurationMinutes)
}

func TestAdditivePricingBalancingAndStorageStack(t *testing.T) {
	resolved, reason := pricingFor(models.ServiceWheelChange).Resolve(
		wheelChangeOffering(), []string{models.PackageWithBalancing, models.PackageWithStorage})
	require.Empty(t, reason)
	// 30 + (50-30) + (80-30) = 100; storage never changes the duration.
	assert.Equal(t, 100.0, resolved.BasePrice)
	assert.Equal(t, 45, resolved.DurationMinutes)
}

func TestAdditivePricingRequiresActiveBasic(t *testing.T) {
	offering := wheelChangeOffering()
	offering.Packages[0].IsActive = false

	_, reason := pricingFor(models.ServiceWheelChange).Resolve(offering, nil)
	assert.Equal(t, ExcludedNoBasicPackage, reason)
}

func TestAdditivePricingMissingAddOnExcludes(t *testing.T) {
	offering := &models.ServiceOffering{
		ServiceType: models.ServiceWheelChange,
		IsActive:    true,
		Packages:    []models.ServicePackage{pkg(models.PackageBasic, 30, 30, true)},
	}

	_, reason := pricingFor(models.ServiceWheelChange).Resolve(
		offering, []string{models.PackageWithBalancing})
	assert.Equal(t, ExcludedMissingAddOn, reason)
}

func TestAdditivePricingExplicitBasicToken(t *testing.T) {
	resolved, reason := pricingFor(models.ServiceWheelChange).Resolve(
		wheelChangeOffering(), []string{models.PackageBasic})
	require.Empty(t, reason)
	assert.Equal(t, 30.0, resolved.BasePrice)
	assert.Equal(t, 30, resolved.DurationMinutes)
}

func TestAdditivePricingUnknownTokenExcludes(t *testing.T) {
	_, reason := pricingFor(models.ServiceWheelChange).Resolve(
		wheelChangeOffering(), []string{models.PackageFourTires})
	assert.Equal(t, ExcludedMissingAddOn, reason)
}

func TestAdditivePricingIgnoresSurchargeTokens(t *testing.T) {
	resolved, reason := pricingFor(models.ServiceWheelChange).Resolve(
		wheelChangeOffering(), []string{models.TokenWithDisposal})
	require.Empty(t, reason)
	assert.Equal(t, 30.0, resolved.BasePrice)
}

func tireChangeOffering() *models.ServiceOffering {
	return &models.ServiceOffering{
		ServiceType: models.ServiceTireChange,
		IsActive:    true,
		BasePrice:   25,
		Packages: []models.ServicePackage{
			pkg(models.PackageTwoTires, 40, 30, true),
			pkg(models.PackageFourTires, 70, 60, true),
		},
	}
}

func TestSelectionPricingPicksRequestedPackage(t *testing.T) {
	resolved, reason := pricingFor(models.ServiceTireChange).Resolve(
		tireChangeOffering(), []string{models.PackageFourTires})
	require.Empty(t, reason)
	assert.Equal(t, 70.0, resolved.BasePrice)
	assert.Equal(t, 60, resolved.DurationMinutes)
	assert.Equal(t, 4, resolved.TireCount)
}

func TestSelectionPricingMapsMixedTokens(t *testing.T) {
	tests := []struct {
		token     string
		wantPrice float64
		wantCount int
	}{
		{models.PackageFrontTwoTires, 40, 2},
		{models.PackageRearTwoTires, 40, 2},
		{models.PackageMixedFour, 70, 4},
	}
	for _, tt := range tests {
		t.Run(tt.token, func(t *testing.T) {
			resolved, reason := pricingFor(models.ServiceTireChange).Resolve(
				tireChangeOffering(), []string{tt.token})
			require.Empty(t, reason)
			assert.Equal(t, tt.wantPrice, resolved.BasePrice)
			assert.Equal(t, tt.wantCount, resolved.TireCount)
		})
	}
}

func TestSelectionPricingNoMatchingPackageExcludes(t *testing.T) {
	offering := &models.ServiceOffering{
		ServiceType: models.ServiceTireChange,
		IsActive:    true,
		Packages:    []models.ServicePackage{pkg(models.PackageTwoTires, 40, 30, true)},
	}

	_, reason := pricingFor(models.ServiceTireChange).Resolve(
		offering, []string{models.PackageFourTires})
	assert.Equal(t, ExcludedNoPackage, reason)
}

func TestSelectionPricingInactivePackageDoesNotMatch(t *testing.T) {
	offering := tireChangeOffering()
	offering.Packages[1].IsActive = false

	_, reason := pricingFor(models.ServiceTireChange).Resolve(
		offering, []string{models.PackageFourTires})
	assert.Equal(t, ExcludedNoPackage, reason)
}

func TestSelectionPricingDefaultsToCheapestActive(t *testing.T) {
	resolved, reason := pricingFor(models.ServiceTireChange).Resolve(tireChangeOffering(), nil)
	require.Empty(t, reason)
	assert.Equal(t, 40.0, resolved.BasePrice)
	assert.Equal(t, 2, resolved.TireCount)
}

func TestSelectionPricingCheapestTieKeepsListOrder(t *testing.T) {
	offering := &models.ServiceOffering{
		ServiceType: models.ServiceTireChange,
		IsActive:    true,
		Packages: []models.ServicePackage{
			pkg(models.PackageFourTires, 40, 60, true),
			pkg(models.PackageTwoTires, 40, 30, true),
		},
	}

	resolved, reason := pricingFor(models.ServiceTireChange).Resolve(offering, nil)
	require.Empty(t, reason)
	assert.Equal(t, 60, resolved.DurationMinutes)
	assert.Equal(t, 4, resolved.TireCount)
}

func TestSelectionPricingFallsBackToOfferingBasePrice(t *testing.T) {
	offering := &models.ServiceOffering{
		ServiceType:     models.ServiceAlignment,
		IsActive:        true,
		BasePrice:       89,
		DurationMinutes: 45,
	}

	resolved, reason := pricingFor(models.ServiceAlignment).Resolve(offering, nil)
	require.Empty(t, reason)
	assert.Equal(t, 89.0, resolved.BasePrice)
	assert.Equal(t, 45, resolved.DurationMinutes)
}

func TestSelectionPricingOneTireCount(t *testing.T) {
	offering := &models.ServiceOffering{
		ServiceType: models.ServiceTireRepair,
		IsActive:    true,
		Packages:    []models.ServicePackage{pkg(models.PackageOneTire, 20, 20, true)},
	}

	resolved, reason := pricingFor(models.ServiceTireRepair).Resolve(
		offering, []string{models.PackageOneTire})
	require.Empty(t, reason)
	assert.Equal(t, 1, resolved.TireCount)
}
