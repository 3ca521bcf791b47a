package models

// Recommendation labels shown to customers.
const (
	LabelCheapest    = "Günstigster"
	LabelTestWinner  = "Testsieger"
	LabelPopular     = "Beliebt"
	LabelAlternative = "Alternative"
)

// TireDimension identifies a tire size plus the minimum safety indices the
// vehicle requires.
type TireDimension struct {
	Width      string `json:"width"`
	Height     string `json:"height"`
	Diameter   string `json:"diameter"`
	LoadIndex  string `json:"loadIndex,omitempty"`
	SpeedIndex string `json:"speedIndex,omitempty"`
}

// String renders the dimension in the customary 205/55 R16 form.
func (d TireDimension) String() string {
	return d.Width + "/" + d.Height + " R" + d.Diameter
}

// TireFilters narrows an inventory search.
type TireFilters struct {
	MinPrice  float64  `json:"minPrice,omitempty"`
	MaxPrice  float64  `json:"maxPrice,omitempty"`
	Quality   string   `json:"quality,omitempty"` // premium | quality | budget
	Seasons   []string `json:"seasons,omitempty"`
	Brands    []string `json:"brands,omitempty"`
	RunFlat   *bool    `json:"runFlat,omitempty"`
	ThreePMSF *bool    `json:"threePMSF,omitempty"`
}

// Season returns the single season filter the engine applies, "all" when the
// request does not constrain the season.
func (f *TireFilters) Season() string {
	if f == nil || len(f.Seasons) == 0 {
		return SeasonAny
	}
	return f.Seasons[0]
}

// SearchRequest is the input of the public and direct-booking search.
type SearchRequest struct {
	ServiceType       string   `json:"serviceType" binding:"required"`
	PackageSelections []string `json:"packageTypes"`
	RadiusKm          float64  `json:"radiusKm"`

	CustomerLat *float64 `json:"customerLat,omitempty"`
	CustomerLon *float64 `json:"customerLon,omitempty"`
	PostalCode  string   `json:"postalCode,omitempty"`

	IncludeTires        bool           `json:"includeTires"`
	TireDimensions      *TireDimension `json:"tireDimensions,omitempty"`
	TireDimensionsFront *TireDimension `json:"tireDimensionsFront,omitempty"`
	TireDimensionsRear  *TireDimension `json:"tireDimensionsRear,omitempty"`
	TireFilters         *TireFilters   `json:"tireFilters,omitempty"`
	SameBrand           bool           `json:"sameBrand"`
	VehicleClass        string         `json:"vehicleClass,omitempty"`
}

// HasToken reports whether the request selected the given package token.
func (r *SearchRequest) HasToken(token string) bool {
	for _, t := range r.PackageSelections {
		if t == token {
			return true
		}
	}
	return false
}

// MixedAxle reports whether the request activates the mixed front/rear path.
// Dimension presence gates the path; mixed tokens alone do not.
func (r *SearchRequest) MixedAxle() bool {
	return r.TireDimensionsFront != nil || r.TireDimensionsRear != nil
}

// TireOffer is one concrete tire proposal produced by the inventory matcher.
type TireOffer struct {
	Brand         string  `json:"brand"`
	Model         string  `json:"model"`
	ArticleNumber string  `json:"articleNumber"`
	EAN           string  `json:"ean,omitempty"`
	PricePerTire  float64 `json:"pricePerTire"`
	TotalPrice    float64 `json:"totalPrice"`
	Quantity      int     `json:"quantity"`
	Dimensions    string  `json:"dimensions,omitempty"`

	LoadIndex           string `json:"loadIndex,omitempty"`
	SpeedIndex          string `json:"speedIndex,omitempty"`
	RunFlat             bool   `json:"runFlat"`
	ThreePMSF           bool   `json:"threePMSF"`
	LabelFuelEfficiency string `json:"labelFuelEfficiency,omitempty"`
	LabelWetGrip        string `json:"labelWetGrip,omitempty"`
	LabelNoise          int    `json:"labelNoise,omitempty"`
}

// TireRecommendation is a labeled offer (Günstigster, Testsieger, Beliebt).
type TireRecommendation struct {
	Label string    `json:"label"`
	Offer TireOffer `json:"tire"`
}

// RecommendationSet is the inventory matcher's answer for one
// (workshop, dimension) pair. Recommendations are sorted ascending by total
// price; index 0 is the default selection.
type RecommendationSet struct {
	Available       bool                 `json:"available"`
	Quantity        int                  `json:"quantity"`
	Recommendations []TireRecommendation `json:"recommendations"`
}

// Selected returns the default recommendation, nil when unavailable.
func (s *RecommendationSet) Selected() *TireRecommendation {
	if s == nil || !s.Available || len(s.Recommendations) == 0 {
		return nil
	}
	return &s.Recommendations[0]
}

// MixedBrandOption is one same-brand front/rear combination.
type MixedBrandOption struct {
	Label         string    `json:"label"`
	Brand         string    `json:"brand"`
	Front         TireOffer `json:"front"`
	Rear          TireOffer `json:"rear"`
	CombinedPrice float64   `json:"combinedPrice"`
}

// TireAttachment is the tire part of a workshop candidate. For single
// dimension searches Single is set; for mixed-axle searches Front/Rear (or
// Combinations in same-brand mode) are set.
type TireAttachment struct {
	Available    bool               `json:"available"`
	Single       *RecommendationSet `json:"single,omitempty"`
	Front        *RecommendationSet `json:"front,omitempty"`
	Rear         *RecommendationSet `json:"rear,omitempty"`
	Combinations []MixedBrandOption `json:"combinations,omitempty"`
	TireCost     float64            `json:"tireCost"`
}

// WorkshopCandidate is one row of the search response. Built fresh per
// request and never persisted.
type WorkshopCandidate struct {
	ID           string  `json:"id"`
	CompanyName  string  `json:"name"`
	Street       string  `json:"street,omitempty"`
	City         string  `json:"city,omitempty"`
	PostalCode   string  `json:"postalCode,omitempty"`
	Phone        string  `json:"phone,omitempty"`
	Email        string  `json:"email,omitempty"`
	OpeningHours string  `json:"openingHours,omitempty"`
	DistanceKm   float64 `json:"distance"`

	BasePrice                float64 `json:"basePrice"`
	DisposalFeeTotal         float64 `json:"disposalFeeTotal,omitempty"`
	TotalPrice               float64 `json:"totalPrice"`
	EstimatedDurationMinutes int     `json:"estimatedDuration"`
	TireCount                int     `json:"tireCount,omitempty"`

	Rating      float64 `json:"rating"`
	ReviewCount int     `json:"reviewCount"`

	Tires *TireAttachment `json:"tires,omitempty"`
}

// SearchResponse is returned by the search endpoints.
type SearchResponse struct {
	Success   bool                `json:"success"`
	Workshops []WorkshopCandidate `json:"workshops"`
}
