package models

// Vehicle classes used by the inventory.
const (
	VehicleCar        = "AUTO"
	VehicleMotorcycle = "MOTO"
)

// Tire seasons as stored in inventory rows: s=summer, w=winter, g=all-season.
const (
	SeasonSummer    = "s"
	SeasonWinter    = "w"
	SeasonAllSeason = "g"
	SeasonAny       = "all"
)

// InventoryItem is one tire article in a workshop's stock.
type InventoryItem struct {
	ID            string `bson:"id" json:"id"`
	WorkshopID    string `bson:"workshopId" json:"workshopId"`
	ArticleNumber string `bson:"articleNumber" json:"articleNumber"`
	EAN           string `bson:"ean,omitempty" json:"ean,omitempty"`
	Brand         string `bson:"brand" json:"brand"`
	Model         string `bson:"model" json:"model"`

	Width    string `bson:"width" json:"width"`
	Height   string `bson:"height" json:"height"`
	Diameter string `bson:"diameter" json:"diameter"`

	Season     string `bson:"season" json:"season"`
	LoadIndex  string `bson:"loadIndex,omitempty" json:"loadIndex,omitempty"`
	SpeedIndex string `bson:"speedIndex,omitempty" json:"speedIndex,omitempty"`
	RunFlat    bool   `bson:"runFlat" json:"runFlat"`
	ThreePMSF  bool   `bson:"threePMSF" json:"threePMSF"`

	// EU tire label values.
	LabelFuelEfficiency string `bson:"labelFuelEfficiency,omitempty" json:"labelFuelEfficiency,omitempty"`
	LabelWetGrip        string `bson:"labelWetGrip,omitempty" json:"labelWetGrip,omitempty"`
	LabelNoise          int    `bson:"labelNoise,omitempty" json:"labelNoise,omitempty"`

	PurchasePrice float64 `bson:"price" json:"purchasePrice"` // EK, before workshop markup
	Stock         int     `bson:"stock" json:"stock"`
	Supplier      string  `bson:"supplier" json:"supplier"`
	VehicleClass  string  `bson:"vehicleClass" json:"vehicleClass"`
}

// PricingRule is a workshop's markup rule for one rim size and vehicle class.
// When no rule matches, the workshop-level default markup applies.
type PricingRule struct {
	WorkshopID    string  `bson:"workshopId" json:"workshopId"`
	RimSize       int     `bson:"rimSize" json:"rimSize"`
	VehicleClass  string  `bson:"vehicleClass" json:"vehicleClass"`
	FixedMarkup   float64 `bson:"fixedMarkup" json:"fixedMarkup"`
	PercentMarkup float64 `bson:"percentMarkup" json:"percentMarkup"`
	IncludeVat    bool    `bson:"includeVat" json:"includeVat"`
}

// MarkupDefaults carries a workshop's fallback markup configuration per
// vehicle class, stored alongside the workshop document.
type MarkupDefaults struct {
	WorkshopID string `bson:"workshopId" json:"workshopId"`

	AutoFixedMarkup   float64 `bson:"autoFixedMarkup" json:"autoFixedMarkup"`
	AutoPercentMarkup float64 `bson:"autoPercentMarkup" json:"autoPercentMarkup"`
	AutoIncludeVat    bool    `bson:"autoIncludeVat" json:"autoIncludeVat"`

	MotoFixedMarkup   float64 `bson:"motoFixedMarkup" json:"motoFixedMarkup"`
	MotoPercentMarkup float64 `bson:"motoPercentMarkup" json:"motoPercentMarkup"`
	MotoIncludeVat    bool    `bson:"motoIncludeVat" json:"motoIncludeVat"`
}
