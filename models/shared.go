package models

// GeoPoint represents a GeoJSON Point.
type GeoPoint struct {
	Type        string    `bson:"type" json:"type"`               // Always "Point"
	Coordinates []float64 `bson:"coordinates" json:"coordinates"` // [longitude, latitude]
}

// NewGeoPoint builds a GeoJSON point from latitude/longitude in degrees.
func NewGeoPoint(lat, lon float64) GeoPoint {
	return GeoPoint{Type: "Point", Coordinates: []float64{lon, lat}}
}

// Latitude returns the latitude component, or false when the point is malformed.
func (p GeoPoint) Latitude() (float64, bool) {
	if len(p.Coordinates) < 2 {
		return 0, false
	}
	return p.Coordinates[1], true
}

// Longitude returns the longitude component, or false when the point is malformed.
func (p GeoPoint) Longitude() (float64, bool) {
	if len(p.Coordinates) < 2 {
		return 0, false
	}
	return p.Coordinates[0], true
}

// Review is a customer review attached to a completed booking.
type Review struct {
	Rating  float64 `bson:"rating" json:"rating"`   // Expected value between 1 and 5.
	Comment string  `bson:"comment" json:"comment"` // Customer's feedback.
}
