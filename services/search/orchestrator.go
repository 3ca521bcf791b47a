package search

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"

	"reifenmarkt/config"
	workshopRepo "reifenmarkt/database/repository/workshop"
	"reifenmarkt/models"
	"reifenmarkt/services/inventory"
	"reifenmarkt/utils"
)

// searchCacheTTL is how long a computed search response stays valid. Prices
// and stock change rarely enough that five minutes is safe.
const searchCacheTTL = 5 * time.Minute

// DefaultSearchService is the production SearchService: it fans out over all
// workshops offering the requested service and evaluates each concurrently.
type DefaultSearchService struct {
	workshops workshopRepo.WorkshopRepository
	tires     *tireResolver
	ratings   *RatingStore
	cache     *redis.Client
}

func NewSearchService(ws workshopRepo.WorkshopRepository, matcher inventory.TireMatcher, ratings *RatingStore, cache *redis.Client) *DefaultSearchService {
	return &DefaultSearchService{
		workshops: ws,
		tires:     &tireResolver{matcher: matcher},
		ratings:   ratings,
		cache:     cache,
	}
}

func (s *DefaultSearchService) GetWorkshop(ctx context.Context, id string) (*models.Workshop, error) {
	return s.workshops.GetByID(ctx, id)
}

func (s *DefaultSearchService) Search(ctx context.Context, req *models.SearchRequest) (*models.SearchResponse, error) {
	logger := utils.GetLogger()

	lat, lon, err := s.resolveLocation(ctx, req)
	if err != nil {
		return nil, err
	}
	radius := req.RadiusKm
	if radius <= 0 {
		radius = config.AppConfig.DefaultRadiusKm
	}

	cacheKey := searchCacheKey(req, lat, lon, radius)
	if cached := s.cachedResponse(ctx, cacheKey); cached != nil {
		logger.Debug("serving cached search response", zap.String("serviceType", req.ServiceType))
		return cached, nil
	}

	workshops, err := s.workshops.GetByServiceType(ctx, req.ServiceType)
	if err != nil {
		return nil, fmt.Errorf("failed to load workshops for %s: %w", req.ServiceType, err)
	}

	results := make(chan evaluation, len(workshops))
	for i := range workshops {
		go func(w *models.Workshop) {
			results <- s.evaluate(ctx, req, w, lat, lon, radius)
		}(&workshops[i])
	}

	candidates := make([]models.WorkshopCandidate, 0, len(workshops))
	for range workshops {
		ev := <-results
		if ev.Candidate != nil {
			candidates = append(candidates, *ev.Candidate)
			continue
		}
		logger.Debug("workshop excluded",
			zap.String("workshopId", ev.WorkshopID),
			zap.String("reason", ev.Reason))
	}

	rankCandidates(candidates)

	resp := &models.SearchResponse{Success: true, Workshops: candidates}
	s.storeResponse(ctx, cacheKey, resp)

	logger.Info("search completed",
		zap.String("serviceType", req.ServiceType),
		zap.Int("evaluated", len(workshops)),
		zap.Int("matched", len(candidates)))
	return resp, nil
}

// resolveLocation returns the customer coordinates, geocoding the postal code
// when no explicit coordinates were sent.
func (s *DefaultSearchService) resolveLocation(ctx context.Context, req *models.SearchRequest) (float64, float64, error) {
	if req.CustomerLat != nil && req.CustomerLon != nil {
		return *req.CustomerLat, *req.CustomerLon, nil
	}
	if req.PostalCode != "" {
		res, err := utils.GeocodePostalCode(ctx, req.PostalCode)
		if err != nil {
			return 0, 0, fmt.Errorf("failed to resolve postal code %s: %w", req.PostalCode, err)
		}
		return res.Latitude, res.Longitude, nil
	}
	return 0, 0, ErrMissingLocation
}

// evaluate runs the whole per-workshop pipeline: offering lookup, geo filter,
// package pricing, tire matching, rating, price composition.
func (s *DefaultSearchService) evaluate(ctx context.Context, req *models.SearchRequest, w *models.Workshop, lat, lon, radius float64) evaluation {
	offering := w.OfferingFor(req.ServiceType)
	if offering == nil {
		return excluded(w.ID, ExcludedNoOffering)
	}

	if w.LocationGeo == nil {
		return excluded(w.ID, ExcludedNoCoordinates)
	}
	wLat, okLat := w.LocationGeo.Latitude()
	wLon, okLon := w.LocationGeo.Longitude()
	if !okLat || !okLon {
		return excluded(w.ID, ExcludedNoCoordinates)
	}
	distance := haversine(lat, lon, wLat, wLon)
	if distance > radius {
		return excluded(w.ID, ExcludedOutsideRadius)
	}

	resolved, reason := pricingFor(req.ServiceType).Resolve(offering, req.PackageSelections)
	if reason != "" {
		return excluded(w.ID, reason)
	}

	var tires *models.TireAttachment
	if req.IncludeTires || req.MixedAxle() {
		var err error
		tires, reason, err = s.tires.resolve(ctx, req, w.ID, offering, resolved.TireCount)
		if err != nil {
			utils.GetLogger().Warn("tire lookup failed",
				zap.String("workshopId", w.ID), zap.Error(err))
			return excluded(w.ID, ExcludedLookupFailed)
		}
		if reason != "" {
			return excluded(w.ID, reason)
		}
	}

	rating, reviewCount := s.ratingFor(ctx, w)
	price := composePrice(req, offering, resolved, tires)

	return included(w.ID, &models.WorkshopCandidate{
		ID:           w.ID,
		CompanyName:  w.CompanyName,
		Street:       w.Street,
		City:         w.City,
		PostalCode:   w.PostalCode,
		Phone:        w.Phone,
		Email:        w.Email,
		OpeningHours: w.OpeningHours,
		DistanceKm:   round1(distance),

		BasePrice:                price.BasePrice,
		DisposalFeeTotal:         price.DisposalFeeTotal,
		TotalPrice:               price.TotalPrice,
		EstimatedDurationMinutes: resolved.DurationMinutes,
		TireCount:                resolved.TireCount,

		Rating:      rating,
		ReviewCount: reviewCount,

		Tires: tires,
	})
}

// ratingFor prefers the precomputed aggregate and falls back to computing
// from the workshop document.
func (s *DefaultSearchService) ratingFor(ctx context.Context, w *models.Workshop) (float64, int) {
	agg, err := s.ratings.Get(ctx, w.ID)
	if err != nil {
		utils.GetLogger().Debug("rating aggregate unavailable",
			zap.String("workshopId", w.ID), zap.Error(err))
	}
	if agg != nil {
		return agg.Rating, agg.ReviewCount
	}
	return ComputeRating(w)
}

// searchCacheKey derives the cache key from the normalized request. The
// resolved coordinates and radius are part of the key so postal-code and
// coordinate requests for the same spot share an entry.
func searchCacheKey(req *models.SearchRequest, lat, lon, radius float64) string {
	keyed := struct {
		*models.SearchRequest
		Lat    float64 `json:"lat"`
		Lon    float64 `json:"lon"`
		Radius float64 `json:"radius"`
	}{req, math.Round(lat*1000) / 1000, math.Round(lon*1000) / 1000, radius}

	raw, err := json.Marshal(keyed)
	if err != nil {
		return fmt.Sprintf("searchResult:%s:%f:%f", req.ServiceType, lat, lon)
	}
	return "searchResult:" + string(raw)
}

func (s *DefaultSearchService) cachedResponse(ctx context.Context, key string) *models.SearchResponse {
	if s.cache == nil {
		return nil
	}
	raw, err := s.cache.Get(ctx, key).Result()
	if err != nil {
		return nil
	}
	var resp models.SearchResponse
	if err := json.Unmarshal([]byte(raw), &resp); err != nil {
		return nil
	}
	return &resp
}

func (s *DefaultSearchService) storeResponse(ctx context.Context, key string, resp *models.SearchResponse) {
	if s.cache == nil {
		return
	}
	raw, err := json.Marshal(resp)
	if err != nil {
		return
	}
	if err := s.cache.Set(ctx, key, raw, searchCacheTTL).Err(); err != nil {
		utils.GetLogger().Debug("failed to cache search response", zap.Error(err))
	}
}
