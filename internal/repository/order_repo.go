package repository

import (
	"context"
	"time"

	"briqtrack/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type OrderRepository interface {
	Create(ctx context.Context, o *model.PurchaseOrder) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.PurchaseOrder, error)
	List(ctx context.Context) ([]model.PurchaseOrder, error)
	Update(ctx context.Context, o *model.PurchaseOrder) error
	Delete(ctx context.Context, id uuid.UUID) error

	// MarkSent flips a pending order to "sent". Called by the email worker
	// after the supplier mail is actually delivered.
	MarkSent(ctx context.Context, id uuid.UUID) error

	// ListPendingOlderThan returns pending orders created before the cutoff,
	// for the retry sweep.
	ListPendingOlderThan(ctx context.Context, cutoff time.Time, limit int) ([]model.PurchaseOrder, error)
}

type orderRepo struct{ db *gorm.DB }

func NewOrderRepository(db *gorm.DB) OrderRepository { return &orderRepo{db: db} }

func (r *orderRepo) Create(ctx context.Context, o *model.PurchaseOrder) error {
	return r.db.WithContext(ctx).Create(o).Error
}

func (r *orderRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.PurchaseOrder, error) {
	var o model.PurchaseOrder
	err := r.db.WithContext(ctx).
		Preload("Supplier").Preload("RawMaterial").
		First(&o, "id = ?", id).Error
	return &o, err
}

func (r *orderRepo) List(ctx context.Context) ([]model.PurchaseOrder, error) {
	var orders []model.PurchaseOrder
	err := r.db.WithContext(ctx).
		Preload("Supplier").Preload("RawMaterial").
		Order("order_date DESC").Find(&orders).Error
	return orders, err
}

func (r *orderRepo) Update(ctx context.Context, o *model.PurchaseOrder) error {
	return r.db.WithContext(ctx).Save(o).Error
}

func (r *orderRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.PurchaseOrder{}, "id = ?", id).Error
}

func (r *orderRepo) MarkSent(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&model.PurchaseOrder{}).
		Where("id = ? AND status = ?", id, model.OrderPending).
		Update("status", model.OrderSent).Error
}

func (r *orderRepo) ListPendingOlderThan(ctx context.Context, cutoff time.Time, limit int) ([]model.PurchaseOrder, error) {
	var orders []model.PurchaseOrder
	err := r.db.WithContext(ctx).
		Preload("Supplier").Preload("RawMaterial").
		Where("status = ? AND created_at < ?", model.OrderPending, cutoff).
		Order("created_at ASC").Limit(limit).Find(&orders).Error
	return orders, err
}
