package inventoryRepo

import (
	"context"

	"reifenmarkt/models"
)

// InventoryQuery narrows a stock lookup to one workshop and dimension; the
// remaining fields are optional filters applied in the database.
type InventoryQuery struct {
	WorkshopID string
	Width      string
	Height     string
	Diameter   string

	Season   string // s | w | g | all ("all" means no season filter)
	MinStock int
	Brands   []string
	// ExcludeBrands wins over Brands when both are set (budget-tier queries).
	ExcludeBrands []string
	RunFlat       *bool
	ThreePMSF     *bool
}

// InventoryRepository defines methods for tire stock data access.
type InventoryRepository interface {
	// Search returns matching stock rows sorted ascending by purchase price.
	Search(ctx context.Context, q InventoryQuery) ([]models.InventoryItem, error)
	// DistinctBrands returns the distinct brands with at least MinStock units
	// at the queried dimension, sorted lexically.
	DistinctBrands(ctx context.Context, q InventoryQuery) ([]string, error)
	// GetPricingRule returns the markup rule for a rim size and vehicle
	// class, or nil when the workshop has no size-specific rule.
	GetPricingRule(ctx context.Context, workshopID string, rimSize int, vehicleClass string) (*models.PricingRule, error)
}
