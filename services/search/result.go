package search

import "reifenmarkt/models"

// Exclusion reasons recorded while evaluating a workshop. They never surface
// to the customer; absence from the result list is the only signal. The
// reasons exist for logging and tests.
const (
	ExcludedNoOffering      = "no_active_offering"
	ExcludedNoCoordinates   = "missing_coordinates"
	ExcludedOutsideRadius   = "outside_radius"
	ExcludedNoPackage       = "no_matching_package"
	ExcludedNoBasicPackage  = "no_basic_package"
	ExcludedMissingAddOn    = "requested_addon_missing"
	ExcludedTireUnavailable = "required_tires_unavailable"
	ExcludedNoSharedBrand   = "no_shared_brand"
	ExcludedLookupFailed    = "inventory_lookup_failed"
)

// evaluation is the tagged per-workshop outcome of one search pass. A nil
// Candidate with a Reason means the workshop cannot fulfill this exact
// request; that is an expected outcome of filtering, not an error.
type evaluation struct {
	WorkshopID string
	Candidate  *models.WorkshopCandidate
	Reason     string
}

func included(id string, c *models.WorkshopCandidate) evaluation {
	return evaluation{WorkshopID: id, Candidate: c}
}

func excluded(id, reason string) evaluation {
	return evaluation{WorkshopID: id, Reason: reason}
}
