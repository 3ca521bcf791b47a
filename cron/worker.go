package cron

import (
	"context"
	"log"
	"time"

	"reifenmarkt/config"
	"reifenmarkt/models"

	workshopRepo "reifenmarkt/database/repository/workshop"
	"reifenmarkt/services/search"

	"github.com/hibiken/asynq"
)

const TypeRatingRefresh = "rating:refresh"

// ratingRefreshInterval controls how often the aggregates are recomputed.
// Reviews arrive slowly; hourly keeps the search path fresh enough.
const ratingRefreshInterval = "@every 1h"

// InitRatingWorker runs the async worker and its scheduler in background.
// The worker sweeps all workshops, recomputes their rating aggregates and
// writes them to the rating store the search path reads from.
func InitRatingWorker(repo workshopRepo.WorkshopRepository, store *search.RatingStore) {
	redisOpts := asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
	}

	srv := asynq.NewServer(
		redisOpts,
		asynq.Config{
			Concurrency: 4,
			Queues: map[string]int{
				"default": 1,
			},
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(TypeRatingRefresh, handleRatingRefresh(repo, store))

	go func() {
		log.Println("[RatingWorker] starting async worker...")
		const maxAttempts = 5

		for attempts := 1; attempts <= maxAttempts; attempts++ {
			if err := srv.Run(mux); err != nil {
				log.Printf("[RatingWorker] attempt %d/%d failed to start worker: %v", attempts, maxAttempts, err)

				if attempts == maxAttempts {
					log.Fatal("[RatingWorker] max retry attempts reached, exiting")
				}
				time.Sleep(time.Duration(attempts*2) * time.Second) // Exponential backoff
			} else {
				break
			}
		}
	}()

	go runScheduler(redisOpts)
}

// runScheduler enqueues the sweep task on a fixed interval.
func runScheduler(redisOpts asynq.RedisClientOpt) {
	scheduler := asynq.NewScheduler(redisOpts, nil)
	if _, err := scheduler.Register(ratingRefreshInterval, asynq.NewTask(TypeRatingRefresh, nil)); err != nil {
		log.Printf("[RatingWorker] failed to register schedule: %v", err)
		return
	}
	if err := scheduler.Run(); err != nil {
		log.Printf("[RatingWorker] scheduler stopped: %v", err)
	}
}

// EnqueueInitialRefresh kicks off one sweep right after startup so a fresh
// deployment does not serve zero ratings for up to an hour.
func EnqueueInitialRefresh() {
	client := asynq.NewClient(asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
	})
	defer client.Close()

	if _, err := client.Enqueue(asynq.NewTask(TypeRatingRefresh, nil)); err != nil {
		log.Printf("[RatingWorker] failed to enqueue initial refresh: %v", err)
	}
}

func handleRatingRefresh(repo workshopRepo.WorkshopRepository, store *search.RatingStore) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		ids, err := repo.GetAllIDs(ctx)
		if err != nil {
			log.Printf("[RatingRefresh] failed to list workshops: %v", err)
			return err
		}

		var refreshed int
		for _, id := range ids {
			workshop, err := repo.GetByID(ctx, id)
			if err != nil {
				log.Printf("[RatingRefresh] failed to load workshop %s: %v", id, err)
				continue
			}
			if workshop == nil {
				continue
			}

			rating, count := search.ComputeRating(workshop)
			agg := models.RatingAggregate{
				WorkshopID:  id,
				Rating:      rating,
				ReviewCount: count,
				ComputedAt:  time.Now().UTC(),
			}
			if err := store.Set(ctx, agg); err != nil {
				log.Printf("[RatingRefresh] failed to store aggregate for %s: %v", id, err)
				continue
			}
			refreshed++
		}

		log.Printf("[RatingRefresh] refreshed %d/%d workshop aggregates", refreshed, len(ids))
		return nil
	}
}
