package repository

import (
	"context"

	"briqtrack/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type SupplyLogRepository interface {
	Create(ctx context.Context, s *model.SupplyLog) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.SupplyLog, error)
	List(ctx context.Context) ([]model.SupplyLog, error)
}

type supplyLogRepo struct{ db *gorm.DB }

func NewSupplyLogRepository(db *gorm.DB) SupplyLogRepository { return &supplyLogRepo{db: db} }

func (r *supplyLogRepo) Create(ctx context.Context, s *model.SupplyLog) error {
	return r.db.WithContext(ctx).Create(s).Error
}

func (r *supplyLogRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.SupplyLog, error) {
	var s model.SupplyLog
	err := r.db.WithContext(ctx).
		Preload("Supplier").Preload("RawMaterial").
		First(&s, "id = ?", id).Error
	return &s, err
}

func (r *supplyLogRepo) List(ctx context.Context) ([]model.SupplyLog, error) {
	var logs []model.SupplyLog
	err := r.db.WithContext(ctx).
		Preload("Supplier").Preload("RawMaterial").
		Order("date_supplied DESC").Find(&logs).Error
	return logs, err
}
