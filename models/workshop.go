package models

import (
	"time"
)

// Service types offered on the marketplace.
const (
	ServiceTireChange     = "TIRE_CHANGE"
	ServiceWheelChange    = "WHEEL_CHANGE" // additive pricing: basic package + add-ons
	ServiceAlignment      = "ALIGNMENT"
	ServiceTireRepair     = "TIRE_REPAIR"
	ServiceMotorcycleTire = "MOTORCYCLE_TIRE"
	ServiceClimate        = "CLIMATE_SERVICE"
)

// Package tokens a customer can select. Main tokens pick a package variant;
// surcharge tokens (with_disposal, runflat) only toggle fees.
const (
	PackageTwoTires      = "two_tires"
	PackageFourTires     = "four_tires"
	PackageFrontTwoTires = "front_two_tires"
	PackageRearTwoTires  = "rear_two_tires"
	PackageMixedFour     = "mixed_four_tires"
	PackageOneTire       = "one_tire"
	PackageBasic         = "basic"
	PackageWithBalancing = "with_balancing"
	PackageWithStorage   = "with_storage"

	TokenWithDisposal = "with_disposal"
	TokenRunFlat      = "runflat"
)

// ServicePackage is a workshop-defined priced variant of a service.
type ServicePackage struct {
	PackageType     string  `bson:"packageType" json:"packageType"`
	Price           float64 `bson:"price" json:"price"`
	DurationMinutes int     `bson:"durationMinutes" json:"durationMinutes"`
	IsActive        bool    `bson:"isActive" json:"isActive"`
}

// ServiceOffering is one service a workshop provides, with its packages and
// per-service surcharge fields. Which scalar fields are populated depends on
// the service type (disposal/runflat for tire services, balancing/storage for
// wheel change, refrigerant for climate service).
type ServiceOffering struct {
	ServiceType     string           `bson:"serviceType" json:"serviceType"`
	IsActive        bool             `bson:"isActive" json:"isActive"`
	BasePrice       float64          `bson:"basePrice" json:"basePrice"`
	DurationMinutes int              `bson:"durationMinutes" json:"durationMinutes"`
	Packages        []ServicePackage `bson:"packages" json:"packages"`

	DisposalFeePerTire      float64 `bson:"disposalFee,omitempty" json:"disposalFee,omitempty"`
	RunFlatSurchargePerTire float64 `bson:"runFlatSurcharge,omitempty" json:"runFlatSurcharge,omitempty"`
	RefrigerantPricePer100  float64 `bson:"refrigerantPricePer100ml,omitempty" json:"refrigerantPricePer100ml,omitempty"`
	StorageAvailable        bool    `bson:"storageAvailable,omitempty" json:"storageAvailable,omitempty"`
}

// ActivePackage returns the active package of the given type, if present.
func (o *ServiceOffering) ActivePackage(packageType string) *ServicePackage {
	for i := range o.Packages {
		if o.Packages[i].PackageType == packageType && o.Packages[i].IsActive {
			return &o.Packages[i]
		}
	}
	return nil
}

// ActivePackages returns all active packages in list order.
func (o *ServiceOffering) ActivePackages() []ServicePackage {
	var out []ServicePackage
	for _, p := range o.Packages {
		if p.IsActive {
			out = append(out, p)
		}
	}
	return out
}

// BookingRecord is the review-bearing slice of a booking as stored on the
// workshop document. Review.Rating is preferred; TireRating is the legacy
// per-booking field kept for older records.
type BookingRecord struct {
	Review     *Review `bson:"review,omitempty" json:"review,omitempty"`
	TireRating float64 `bson:"tireRating,omitempty" json:"tireRating,omitempty"`
}

// Workshop is a registered workshop with its offerings and review history.
type Workshop struct {
	ID           string            `bson:"id" json:"id"`
	CompanyName  string            `bson:"companyName" json:"companyName"`
	Street       string            `bson:"street" json:"street,omitempty"`
	City         string            `bson:"city" json:"city,omitempty"`
	PostalCode   string            `bson:"postalCode" json:"postalCode,omitempty"`
	Phone        string            `bson:"phone" json:"phone,omitempty"`
	Email        string            `bson:"email" json:"email,omitempty"`
	OpeningHours string            `bson:"openingHours" json:"openingHours,omitempty"`
	LocationGeo  *GeoPoint         `bson:"locationGeo,omitempty" json:"locationGeo,omitempty"`
	Services     []ServiceOffering `bson:"services" json:"services"`
	Bookings     []BookingRecord   `bson:"bookings,omitempty" json:"-"`
	CreatedAt    time.Time         `bson:"createdAt" json:"createdAt,omitzero"`
	UpdatedAt    time.Time         `bson:"updatedAt" json:"updatedAt,omitzero"`
}

// OfferingFor returns the workshop's active offering for a service type.
func (w *Workshop) OfferingFor(serviceType string) *ServiceOffering {
	for i := range w.Services {
		if w.Services[i].ServiceType == serviceType && w.Services[i].IsActive {
			return &w.Services[i]
		}
	}
	return nil
}

// RatingAggregate is the precomputed review summary the ranker prefers when
// available (refreshed by the background worker).
type RatingAggregate struct {
	WorkshopID  string    `json:"workshopId"`
	Rating      float64   `json:"rating"`
	ReviewCount int       `json:"reviewCount"`
	ComputedAt  time.Time `json:"computedAt"`
}
