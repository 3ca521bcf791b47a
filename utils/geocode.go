// File: utils/geocode.go
package utils

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"reifenmarkt/config"

	"go.uber.org/zap"
)

// GeocodeResult holds the resolved coordinates for a postal code.
type GeocodeResult struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// nominatimEntry mirrors the relevant fields of a Nominatim search response item.
type nominatimEntry struct {
	Lat        string  `json:"lat"`
	Lon        string  `json:"lon"`
	Importance float64 `json:"importance"`
}

// GeocodePostalCode resolves a German postal code (or town name) to coordinates.
// Results are cached in Redis for 30 days; postal codes do not move.
func GeocodePostalCode(ctx context.Context, postalCode string) (*GeocodeResult, error) {
	logger := GetLogger()
	cache := GetGeoCacheClient()
	cacheKey := fmt.Sprintf("geocode:de:%s", postalCode)

	if cached, err := cache.Get(ctx, cacheKey).Result(); err == nil && cached != "" {
		var res GeocodeResult
		if err := json.Unmarshal([]byte(cached), &res); err == nil {
			return &res, nil
		}
	}

	endpoint := fmt.Sprintf("%s/search?postalcode=%s&country=Germany&format=json&limit=5",
		config.AppConfig.GeocodeBaseURL, url.QueryEscape(postalCode))

	client := http.Client{Timeout: 5 * time.Second}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build geocode request: %w", err)
	}
	req.Header.Set("User-Agent", "reifenmarkt/1.0")

	resp, err := client.Do(req)
	if err != nil {
		logger.Error("Geocoding request failed", zap.String("postalCode", postalCode), zap.Error(err))
		return nil, fmt.Errorf("geocoding request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("geocoding API returned status %d", resp.StatusCode)
	}

	var entries []nominatimEntry
	if err := json.NewDecoder(resp.Body).Decode(&entries); err != nil {
		return nil, fmt.Errorf("failed to decode geocoding response: %w", err)
	}
	if len(entries) == 0 {
		return nil, fmt.Errorf("postal code %q could not be resolved", postalCode)
	}

	// Prefer the most important match; Nominatim orders loosely.
	best := entries[0]
	for _, e := range entries[1:] {
		if e.Importance > best.Importance {
			best = e
		}
	}

	lat, err := strconv.ParseFloat(best.Lat, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid latitude in geocoding response: %w", err)
	}
	lon, err := strconv.ParseFloat(best.Lon, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid longitude in geocoding response: %w", err)
	}

	res := &GeocodeResult{Latitude: lat, Longitude: lon}
	if data, err := json.Marshal(res); err == nil {
		cache.Set(ctx, cacheKey, data, 30*24*time.Hour)
	}

	return res, nil
}
