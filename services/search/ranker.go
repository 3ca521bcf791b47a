package search

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/go-redis/redis/v8"

	"reifenmarkt/models"
)

// ratingTieBand is the rating difference below which two workshops count as
// equally rated and distance decides the order.
const ratingTieBand = 0.5

const ratingKeyPrefix = "rating:"

// ratingAggregateTTL keeps stale aggregates from outliving the refresher for
// long; the refresher rewrites them well before expiry.
const ratingAggregateTTL = 48 * time.Hour

// ComputeRating derives a workshop's rating from its booking reviews: the
// mean over all rated bookings, rounded to one decimal. A booking's Review
// rating wins over the legacy per-booking tire rating. No reviews means 0/0,
// not an exclusion.
func ComputeRating(w *models.Workshop) (float64, int) {
	var sum float64
	var count int
	for _, b := range w.Bookings {
		switch {
		case b.Review != nil && b.Review.Rating > 0:
			sum += b.Review.Rating
			count++
		case b.TireRating > 0:
			sum += b.TireRating
			count++
		}
	}
	if count == 0 {
		return 0, 0
	}
	return round1(sum / float64(count)), count
}

// rankCandidates orders candidates by rating descending, treating ratings
// within the tie band as equal and breaking those ties by distance. The
// comparator is intentionally non-transitive across band boundaries; the
// stable sort keeps the result deterministic.
func rankCandidates(candidates []models.WorkshopCandidate) {
	sort.SliceStable(candidates, func(i, j int) bool {
		if math.Abs(candidates[i].Rating-candidates[j].Rating) <= ratingTieBand {
			return candidates[i].DistanceKm < candidates[j].DistanceKm
		}
		return candidates[i].Rating > candidates[j].Rating
	})
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

// RatingStore caches precomputed rating aggregates in redis. The background
// refresher writes them; the search path reads them and falls back to
// computing from the workshop document on a miss.
type RatingStore struct {
	rdb *redis.Client
}

func NewRatingStore(rdb *redis.Client) *RatingStore {
	return &RatingStore{rdb: rdb}
}

func (s *RatingStore) Get(ctx context.Context, workshopID string) (*models.RatingAggregate, error) {
	if s == nil || s.rdb == nil {
		return nil, nil
	}
	raw, err := s.rdb.Get(ctx, ratingKeyPrefix+workshopID).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("rating aggregate lookup: %w", err)
	}
	var agg models.RatingAggregate
	if err := json.Unmarshal([]byte(raw), &agg); err != nil {
		return nil, fmt.Errorf("rating aggregate decode: %w", err)
	}
	return &agg, nil
}

func (s *RatingStore) Set(ctx context.Context, agg models.RatingAggregate) error {
	raw, err := json.Marshal(agg)
	if err != nil {
		return fmt.Errorf("rating aggregate encode: %w", err)
	}
	if err := s.rdb.Set(ctx, ratingKeyPrefix+agg.WorkshopID, raw, ratingAggregateTTL).Err(); err != nil {
		return fmt.Errorf("rating aggregate store: %w", err)
	}
	return nil
}
