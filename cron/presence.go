package cron

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/hibiken/asynq"

	"fieldly/config"
	availabilityRepo "fieldly/database/repository/availability"
	"fieldly/services/availability"
)

const TypePresenceSweep = "presence:sweep"

// InitPresenceSweeper starts the async worker and scheduler that flip stale
// workers offline. A worker whose lastActiveAt is older than
// PRESENCE_STALE_AFTER_MIN is marked offline, which also clears the
// quick-booking flag.
func InitPresenceSweeper(availSvc availability.AvailabilityService, repo availabilityRepo.AvailabilityRepository) {
	redisOpts := asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
	}

	srv := asynq.NewServer(
		redisOpts,
		asynq.Config{
			Concurrency: 5,
			Queues: map[string]int{
				"default": 1,
			},
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(TypePresenceSweep, handlePresenceSweep(availSvc, repo))

	scheduler := asynq.NewScheduler(redisOpts, nil)
	every := config.AppConfig.PresenceSweepEveryMin
	if every <= 0 {
		every = 5
	}
	if _, err := scheduler.Register(fmt.Sprintf("@every %dm", every), asynq.NewTask(TypePresenceSweep, nil)); err != nil {
		log.Fatalf("[PresenceSweeper] failed to register sweep schedule: %v", err)
	}

	// Start async worker with retry logic
	go func() {
		log.Println("[PresenceSweeper] starting async worker...")
		const maxAttempts = 5

		for attempts := 1; attempts <= maxAttempts; attempts++ {
			if err := srv.Run(mux); err != nil {
				log.Printf("[PresenceSweeper] attempt %d/%d failed to start worker: %v", attempts, maxAttempts, err)

				if attempts == maxAttempts {
					log.Fatal("[PresenceSweeper] max retry attempts reached. Exiting.")
				}
				time.Sleep(time.Duration(attempts*2) * time.Second) // Exponential backoff
			} else {
				break
			}
		}
	}()

	go func() {
		if err := scheduler.Run(); err != nil {
			log.Printf("[PresenceSweeper] scheduler stopped: %v", err)
		}
	}()
}

func handlePresenceSweep(availSvc availability.AvailabilityService, repo availabilityRepo.AvailabilityRepository) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		staleAfter := time.Duration(config.AppConfig.PresenceStaleAfterMin) * time.Minute
		if staleAfter <= 0 {
			staleAfter = 30 * time.Minute
		}
		now := time.Now()
		cutoff := now.Add(-staleAfter)

		stale, err := repo.ListStaleStatuses(ctx, cutoff)
		if err != nil {
			log.Printf("[PresenceSweeper] failed to list stale statuses: %v", err)
			return err
		}
		if len(stale) == 0 {
			return nil
		}

		workerIDs := make([]string, len(stale))
		for i, status := range stale {
			workerIDs[i] = status.WorkerID
		}
		if err := repo.MarkOffline(ctx, workerIDs, now); err != nil {
			log.Printf("[PresenceSweeper] failed to mark workers offline: %v", err)
			return err
		}
		availSvc.DropStatusCache(ctx, workerIDs...)

		log.Printf("[PresenceSweeper] marked %d stale workers offline", len(workerIDs))
		return nil
	}
}
