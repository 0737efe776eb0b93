package cron

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"turnia/config"
	"turnia/services/tasks"

	"github.com/go-redis/redis/v8"
	"github.com/hibiken/asynq"
)

// MeetingLifecycle is the slice of the booking service the worker drives.
type MeetingLifecycle interface {
	ExpireMeeting(bookingID string) error
	SendBookingReminder(bookingID string) error
}

// InitWorker runs the async worker in background.
func InitWorker(lifecycle MeetingLifecycle) {
	redisOpts := asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisJobQueueDB,
	}

	srv := asynq.NewServer(
		redisOpts,
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				"default": 1,
			},
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(tasks.TypeMeetingExpire, handleBookingTask("expiry", lifecycle.ExpireMeeting))
	mux.HandleFunc(tasks.TypeBookingReminder, handleBookingTask("reminder", lifecycle.SendBookingReminder))

	// Start Redis health monitor
	go monitorRedisConnection()

	// Start async worker with retry logic
	go func() {
		log.Println("[BookingWorker] 🚀 Starting async worker...")
		const maxAttempts = 5

		for attempts := 1; attempts <= maxAttempts; attempts++ {
			if err := srv.Run(mux); err != nil {
				log.Printf("[BookingWorker] ❌ Attempt %d/%d failed to start worker: %v", attempts, maxAttempts, err)

				if attempts == maxAttempts {
					log.Fatal("[BookingWorker] ❗ Max retry attempts reached. Exiting.")
				}
				time.Sleep(time.Duration(attempts*2) * time.Second) // Exponential backoff
			} else {
				break
			}
		}
	}()
}

func handleBookingTask(kind string, fn func(bookingID string) error) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		var p tasks.BookingTaskPayload
		if err := json.Unmarshal(task.Payload(), &p); err != nil {
			log.Printf("[BookingWorker] 🔴 Invalid %s payload: %v", kind, err)
			return err
		}

		log.Printf("[BookingWorker] ⏰ Running %s task for booking %s", kind, p.BookingID)

		if err := fn(p.BookingID); err != nil {
			log.Printf("[BookingWorker] ❌ %s task for booking %s failed: %v", kind, p.BookingID, err)
			return err
		}
		return nil
	}
}

// monitorRedisConnection pings Redis periodically to detect failures at runtime.
func monitorRedisConnection() {
	client := redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisJobQueueDB,
	})

	ctx := context.Background()

	for {
		if err := client.Ping(ctx).Err(); err != nil {
			log.Printf("[BookingWorker] ⚠️ Redis connection lost: %v", err)
		}
		time.Sleep(10 * time.Second)
	}
}
