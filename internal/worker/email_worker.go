package worker

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	"briqtrack/internal/infra"
	"briqtrack/internal/model"
	"briqtrack/internal/repository"
)

// EmailWorker mails purchase orders to suppliers. The order stays
// "pending" until the mail has actually left the building: only after a
// successful send does the worker flip it to "sent", so a crashed SMTP
// round leaves the order eligible for the retry sweep.
type EmailWorker struct {
	rdb        *redis.Client
	orders     repository.OrderRepository
	mailer     *infra.Mailer
	pdfStorage string
}

func NewEmailWorker(rdb *redis.Client, orders repository.OrderRepository, mailer *infra.Mailer, pdfStorage string) *EmailWorker {
	return &EmailWorker{rdb: rdb, orders: orders, mailer: mailer, pdfStorage: pdfStorage}
}

func (w *EmailWorker) Process(ctx context.Context, payload json.RawMessage) {
	var p OrderMailJobPayload
	if err := json.Unmarshal(payload, &p); err != nil {
		log.Error().Err(err).Msg("invalid order mail payload")
		SendToDLQ(ctx, w.rdb, QueueEmail, "order_mail", payload, err)
		return
	}
	orderID, err := uuid.Parse(p.OrderID)
	if err != nil {
		log.Error().Err(err).Str("order_id", p.OrderID).Msg("malformed order id in mail job")
		SendToDLQ(ctx, w.rdb, QueueEmail, "order_mail", payload, err)
		return
	}

	order, err := w.orders.FindByID(ctx, orderID)
	if err != nil {
		log.Error().Err(err).Str("order_id", p.OrderID).Msg("order not found for mail job")
		SendToDLQ(ctx, w.rdb, QueueEmail, "order_mail", payload, err)
		return
	}
	if order.Status == model.OrderSent {
		log.Info().Str("order_id", p.OrderID).Msg("order already sent, skipping")
		return
	}
	if order.Supplier == nil || order.RawMaterial == nil {
		err := fmt.Errorf("order %s missing supplier or material reference", p.OrderID)
		log.Error().Err(err).Msg("cannot build order mail")
		SendToDLQ(ctx, w.rdb, QueueEmail, "order_mail", payload, err)
		return
	}

	// PDF attachment is best-effort: a generation failure downgrades the
	// mail to plain text rather than blocking the notification.
	pdfPath, err := infra.GenerateOrderPDF(order, w.pdfStorage)
	if err != nil {
		log.Warn().Err(err).Str("order_id", p.OrderID).Msg("PDF generation failed, sending mail without attachment")
		pdfPath = ""
	}

	subject := fmt.Sprintf("Purchase Order - %s", order.RawMaterial.Name)
	body := fmt.Sprintf(
		"Dear %s,\n\nWe would like to order the following:\n\nMaterial: %s\nQuantity: %d\nOrder date: %s\n\nPlease confirm availability and delivery timeline.\n\nRegards,\nBriqTrack",
		order.Supplier.Name,
		order.RawMaterial.Name,
		order.Quantity,
		order.OrderDate.Format("2006-01-02"),
	)

	err = withRetry(ctx, 3, func(attempt int) error {
		if attempt > 0 {
			log.Warn().Int("attempt", attempt+1).Str("order_id", p.OrderID).Msg("retrying order mail")
		}
		return w.mailer.SendOrderNotice(order.Supplier.Email, subject, body, pdfPath)
	})
	if err != nil {
		log.Error().Err(err).Str("order_id", p.OrderID).Msg("order mail failed after retries")
		SendToDLQ(ctx, w.rdb, QueueEmail, "order_mail", payload, err)
		return
	}

	if err := w.orders.MarkSent(ctx, orderID); err != nil {
		log.Error().Err(err).Str("order_id", p.OrderID).Msg("mail delivered but status update failed")
		return
	}
	log.Info().Str("order_id", p.OrderID).Str("supplier", order.Supplier.Name).Msg("purchase order mailed to supplier")
}
