package worker

import (
	"context"
	"encoding/json"
	"time"

	"github.com/Aniket-89/recrm/internal/service"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// Job is the generic envelope for all async tasks.
type Job struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// Handler processes one dequeued job payload.
type Handler func(ctx context.Context, raw json.RawMessage)

// Dispatcher enqueues async jobs into Redis lists; the worker pool dequeues
// them via BRPOP. Satisfies service.JobQueue.
type Dispatcher struct {
	rdb *redis.Client
}

func NewDispatcher(rdb *redis.Client) *Dispatcher {
	return &Dispatcher{rdb: rdb}
}

var _ service.JobQueue = (*Dispatcher)(nil)

// Enqueue pushes a job onto the named queue.
func (d *Dispatcher) Enqueue(ctx context.Context, queue string, payload any) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	job := Job{Type: queue, Payload: data}
	encoded, err := json.Marshal(job)
	if err != nil {
		return err
	}
	return d.rdb.LPush(ctx, queue, encoded).Err()
}

// StartWorkerPool launches numWorkers goroutines consuming the registered
// queues. Each goroutine blocks on BRPOP — zero CPU when idle.
func StartWorkerPool(ctx context.Context, rdb *redis.Client, numWorkers int, handlers map[string]Handler) {
	queues := make([]string, 0, len(handlers))
	for q := range handlers {
		queues = append(queues, q)
	}
	for i := 0; i < numWorkers; i++ {
		go runWorker(ctx, rdb, i, queues, handlers)
	}
	log.Info().Msgf("worker pool started with %d workers", numWorkers)
}

func runWorker(ctx context.Context, rdb *redis.Client, id int, queues []string, handlers map[string]Handler) {
	for {
		select {
		case <-ctx.Done():
			log.Info().Msgf("worker %d shutting down", id)
			return
		default:
			// Blocking pop — waits up to 5s then loops to check ctx
			result, err := rdb.BRPop(ctx, 5*time.Second, queues...).Result()
			if err != nil {
				continue // timeout or context cancelled
			}
			if len(result) < 2 {
				continue
			}
			processJob(ctx, rdb, handlers, result[0], result[1])
		}
	}
}

func processJob(ctx context.Context, rdb *redis.Client, handlers map[string]Handler, queue, raw string) {
	var job Job
	if err := json.Unmarshal([]byte(raw), &job); err != nil {
		log.Error().Str("queue", queue).Err(err).Msg("failed to unmarshal job")
		SendToDLQ(ctx, rdb, queue, "unknown", json.RawMessage(raw), "unmarshal failed", 1)
		return
	}
	handler, ok := handlers[queue]
	if !ok {
		log.Error().Str("queue", queue).Msg("no handler registered for queue")
		SendToDLQ(ctx, rdb, queue, job.Type, job.Payload, "no handler", 1)
		return
	}
	handler(ctx, job.Payload)
}

// withRetry runs fn up to maxAttempts times with exponential backoff
// (1s, 2s, 4s …), giving up early when the context is cancelled.
func withRetry(ctx context.Context, maxAttempts int, fn func(attempt int) error) error {
	var err error
	for attempt := 0; attempt < maxAttempts; attempt++ {
		if err = fn(attempt); err == nil {
			return nil
		}
		if attempt < maxAttempts-1 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(time.Duration(1<<attempt) * time.Second):
			}
		}
	}
	return err
}
