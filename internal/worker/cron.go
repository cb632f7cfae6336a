package worker

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"

	"briqtrack/internal/repository"
)

// StartCron schedules the two background sweeps:
//   - every 10 minutes, re-enqueue pending purchase orders whose
//     notification never went out (crash between create and mail);
//   - every hour, re-check the ledger for materials under the threshold
//     so a lost alert does not stay lost.
func StartCron(ctx context.Context, dispatcher *Dispatcher, orders repository.OrderRepository, materials repository.MaterialRepository, lowStockThreshold int) *cron.Cron {
	c := cron.New()

	c.AddFunc("*/10 * * * *", func() {
		sweepPendingOrders(ctx, dispatcher, orders)
	})
	c.AddFunc("0 * * * *", func() {
		sweepLowStock(ctx, dispatcher, materials, lowStockThreshold)
	})

	c.Start()
	log.Info().Msg("cron sweeps scheduled")

	go func() {
		<-ctx.Done()
		c.Stop()
	}()
	return c
}

func sweepPendingOrders(ctx context.Context, dispatcher *Dispatcher, orders repository.OrderRepository) {
	cutoff := time.Now().Add(-10 * time.Minute)
	pending, err := orders.ListPendingOlderThan(ctx, cutoff, 50)
	if err != nil {
		log.Error().Err(err).Msg("pending order sweep failed")
		return
	}
	for _, o := range pending {
		if err := dispatcher.EnqueueOrderMail(ctx, o.ID); err != nil {
			log.Error().Err(err).Str("order_id", o.ID.String()).Msg("failed to re-enqueue order mail")
		}
	}
	if len(pending) > 0 {
		log.Info().Int("count", len(pending)).Msg("re-enqueued stuck pending orders")
	}
}

func sweepLowStock(ctx context.Context, dispatcher *Dispatcher, materials repository.MaterialRepository, threshold int) {
	low, err := materials.ListBelow(ctx, threshold)
	if err != nil {
		log.Error().Err(err).Msg("low-stock sweep failed")
		return
	}
	for _, m := range low {
		dispatcher.NotifyLowStock(ctx, m.Name, m.Quantity)
	}
}
