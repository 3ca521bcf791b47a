package search

import (
	"context"
	"errors"

	"reifenmarkt/models"
)

// ErrMissingLocation is returned when a request carries neither coordinates
// nor a postal code. It is the only validation failure surfaced as an error;
// everything else shows up as an exclusion or an empty result list.
var ErrMissingLocation = errors.New("request needs customer coordinates or a postal code")

// SearchService finds, prices and ranks workshops for a customer request.
type SearchService interface {
	Search(ctx context.Context, req *models.SearchRequest) (*models.SearchResponse, error)
	GetWorkshop(ctx context.Context, id string) (*models.Workshop, error)
}
