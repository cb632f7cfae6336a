package repository

import (
	"context"

	"briqtrack/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ActionRepository interface {
	Create(ctx context.Context, a *model.Action) error
	ListByCustomer(ctx context.Context, customerID uuid.UUID) ([]model.Action, error)
}

type actionRepo struct{ db *gorm.DB }

func NewActionRepository(db *gorm.DB) ActionRepository { return &actionRepo{db: db} }

func (r *actionRepo) Create(ctx context.Context, a *model.Action) error {
	return r.db.WithContext(ctx).Create(a).Error
}

func (r *actionRepo) ListByCustomer(ctx context.Context, customerID uuid.UUID) ([]model.Action, error) {
	var actions []model.Action
	err := r.db.WithContext(ctx).
		Preload("Customer").Preload("Product").
		Where("customer_id = ?", customerID).
		Order("created_at DESC").Find(&actions).Error
	return actions, err
}
