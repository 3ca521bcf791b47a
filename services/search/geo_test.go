package search

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"reifenmarkt/models"
)

// Berlin and Hamburg city centers.
const (
	berlinLat  = 52.5200
	berlinLon  = 13.4050
	hamburgLat = 53.5511
	hamburgLon = 9.9937
)

func TestHaversineKnownDistance(t *testing.T) {
	d := haversine(berlinLat, berlinLon, hamburgLat, hamburgLon)
	// Roughly 255 km as the crow flies.
	assert.InDelta(t, 255, d, 5)
}

func TestHaversineSymmetry(t *testing.T) {
	there := haversine(berlinLat, berlinLon, hamburgLat, hamburgLon)
	back := haversine(hamburgLat, hamburgLon, berlinLat, berlinLon)
	assert.InDelta(t, there, back, 1e-9)
}

func TestHaversineZeroForSamePoint(t *testing.T) {
	assert.InDelta(t, 0, haversine(berlinLat, berlinLon, berlinLat, berlinLon), 1e-9)
}

func TestDistanceKmUsesGeoJSONOrder(t *testing.T) {
	berlin := models.NewGeoPoint(berlinLat, berlinLon)
	hamburg := models.NewGeoPoint(hamburgLat, hamburgLon)
	assert.InDelta(t, 255, DistanceKm(berlin, hamburg), 5)
}
