package workshopRepo

import (
	"context"

	"reifenmarkt/models"
)

// WorkshopRepository defines methods for workshop data access.
type WorkshopRepository interface {
	// GetByID retrieves a workshop by its unique ID.
	GetByID(ctx context.Context, id string) (*models.Workshop, error)
	// GetByServiceType returns workshops with an active offering of the given
	// service type, including their packages and review records.
	GetByServiceType(ctx context.Context, serviceType string) ([]models.Workshop, error)
	// GetAllIDs returns the IDs of all workshops (used by the rating refresher).
	GetAllIDs(ctx context.Context) ([]string, error)
	// GetMarkupDefaults returns the workshop's fallback tire markup settings.
	GetMarkupDefaults(ctx context.Context, workshopID string) (*models.MarkupDefaults, error)
}
