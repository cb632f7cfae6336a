package worker

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	"briqtrack/internal/infra"
)

// AlertWorker delivers low-stock alerts to the owner's WhatsApp.
// Twilio calls go through a circuit breaker; exhausted jobs land in the DLQ.
type AlertWorker struct {
	rdb     *redis.Client
	wa      *infra.WhatsAppClient
	breaker *infra.CircuitBreaker
}

func NewAlertWorker(rdb *redis.Client, wa *infra.WhatsAppClient, breaker *infra.CircuitBreaker) *AlertWorker {
	return &AlertWorker{rdb: rdb, wa: wa, breaker: breaker}
}

func (w *AlertWorker) Process(ctx context.Context, payload json.RawMessage) {
	var p AlertJobPayload
	if err := json.Unmarshal(payload, &p); err != nil {
		log.Error().Err(err).Msg("invalid alert payload")
		SendToDLQ(ctx, w.rdb, QueueAlerts, "low_stock_alert", payload, err)
		return
	}

	message := fmt.Sprintf("Low Stock Alert!\nMaterial: %s\nRemaining Quantity: %d", p.Material, p.Quantity)

	err := withRetry(ctx, 3, func(attempt int) error {
		if attempt > 0 {
			log.Warn().Int("attempt", attempt+1).Str("material", p.Material).Msg("retrying WhatsApp alert")
		}
		return w.breaker.Execute(func() error {
			return w.wa.Send(ctx, message)
		})
	})
	if err != nil {
		log.Error().Err(err).Str("material", p.Material).Msg("WhatsApp alert failed after retries")
		SendToDLQ(ctx, w.rdb, QueueAlerts, "low_stock_alert", payload, err)
		return
	}

	log.Info().Str("material", p.Material).Int("quantity", p.Quantity).Msg("low-stock alert delivered")
}
