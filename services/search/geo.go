package search

import (
	"math"

	"reifenmarkt/models"
)

// haversine calculates the great-circle distance (in km) between two lat/lon points.
func haversine(lat1, lon1, lat2, lon2 float64) float64 {
	const R = 6371
	dLat := (lat2 - lat1) * (math.Pi / 180)
	dLon := (lon2 - lon1) * (math.Pi / 180)
	lat1Rad := lat1 * (math.Pi / 180)
	lat2Rad := lat2 * (math.Pi / 180)
	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1Rad)*math.Cos(lat2Rad)*math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
	return R * c
}

// DistanceKm computes the great-circle distance between two GeoJSON points.
// NaN coordinates propagate NaN; callers filter workshops without a valid
// location before computing distances.
func DistanceKm(a, b models.GeoPoint) float64 {
	latA, _ := a.Latitude()
	lonA, _ := a.Longitude()
	latB, _ := b.Latitude()
	lonB, _ := b.Longitude()
	return haversine(latA, lonA, latB, lonB)
}
