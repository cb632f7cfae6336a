package worker

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const (
	QueueAlerts = "jobs:alerts"
	QueueEmail  = "jobs:email"
)

// Job is the generic envelope for all async tasks.
type Job struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// AlertJobPayload carries one low-stock alert.
type AlertJobPayload struct {
	Material string `json:"material"`
	Quantity int    `json:"quantity"`
}

// OrderMailJobPayload carries one supplier-notification request.
type OrderMailJobPayload struct {
	OrderID string `json:"order_id"`
}

// Dispatcher enqueues async jobs into Redis lists.
// The worker pool dequeues them via BRPOP. It is the concrete
// implementation of the service layer's notifier/enqueuer ports.
type Dispatcher struct {
	rdb *redis.Client
}

func NewDispatcher(rdb *redis.Client) *Dispatcher {
	return &Dispatcher{rdb: rdb}
}

// NotifyLowStock queues a low-stock alert. Enqueue failures are logged and
// swallowed — an alert must never fail the ledger write that triggered it.
func (d *Dispatcher) NotifyLowStock(ctx context.Context, materialName string, quantity int) {
	payload := AlertJobPayload{Material: materialName, Quantity: quantity}
	if err := d.enqueue(ctx, QueueAlerts, "low_stock_alert", payload); err != nil {
		log.Error().Err(err).Str("material", materialName).Msg("failed to enqueue low-stock alert")
		return
	}
	log.Info().Str("material", materialName).Int("quantity", quantity).Msg("low-stock alert queued")
}

// EnqueueOrderMail queues the supplier notification for a purchase order.
func (d *Dispatcher) EnqueueOrderMail(ctx context.Context, orderID uuid.UUID) error {
	return d.enqueue(ctx, QueueEmail, "order_mail", OrderMailJobPayload{OrderID: orderID.String()})
}

func (d *Dispatcher) enqueue(ctx context.Context, queue, jobType string, payload interface{}) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	job := Job{Type: jobType, Payload: data}
	encoded, err := json.Marshal(job)
	if err != nil {
		return err
	}
	return d.rdb.LPush(ctx, queue, encoded).Err()
}

// WorkerHandlers maps each queue to its processor. Wired at the
// composition root so workers get full access to infrastructure deps.
type WorkerHandlers struct {
	Alert *AlertWorker
	Email *EmailWorker
}

// StartWorkerPool launches numWorkers goroutines consuming both queues.
// Each goroutine blocks on BRPOP — zero CPU when idle.
func StartWorkerPool(ctx context.Context, rdb *redis.Client, handlers *WorkerHandlers, numWorkers int) {
	for i := 0; i < numWorkers; i++ {
		go runWorker(ctx, rdb, handlers, i)
	}
	log.Info().Msgf("worker pool started with %d workers", numWorkers)
}

func runWorker(ctx context.Context, rdb *redis.Client, handlers *WorkerHandlers, id int) {
	queues := []string{QueueAlerts, QueueEmail}
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
			if err := processJob(ctx, handlers, result[0], result[1]); err != nil {
				log.Error().Err(err).Str("queue", result[0]).Msg("job processing failed")
			}
		}
	}
}

func processJob(ctx context.Context, handlers *WorkerHandlers, queue, raw string) error {
	var job Job
	if err := json.Unmarshal([]byte(raw), &job); err != nil {
		return fmt.Errorf("unmarshal job from %s: %w", queue, err)
	}

	switch queue {
	case QueueAlerts:
		handlers.Alert.Process(ctx, job.Payload)
	case QueueEmail:
		handlers.Email.Process(ctx, job.Payload)
	default:
		return fmt.Errorf("no handler for queue %s", queue)
	}
	return nil
}
