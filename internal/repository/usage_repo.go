package repository

import (
	"context"

	"briqtrack/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// MachineEfficiencyRow is the raw aggregate row for the analytics endpoint.
type MachineEfficiencyRow struct {
	MachineID    uuid.UUID
	MachineName  string
	Batches      int64
	TotalInput   int64
	TotalOutput  int64
	TotalWastage int64
}

type UsageRepository interface {
	Create(ctx context.Context, u *model.MachineUsage) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.MachineUsage, error)
	FindByUsageID(ctx context.Context, usageID string) (*model.MachineUsage, error)
	List(ctx context.Context) ([]model.MachineUsage, error)
	Update(ctx context.Context, u *model.MachineUsage) error
	Delete(ctx context.Context, id uuid.UUID) error
	EfficiencyByMachine(ctx context.Context) ([]MachineEfficiencyRow, error)
}

type usageRepo struct{ db *gorm.DB }

func NewUsageRepository(db *gorm.DB) UsageRepository { return &usageRepo{db: db} }

func (r *usageRepo) Create(ctx context.Context, u *model.MachineUsage) error {
	return r.db.WithContext(ctx).Create(u).Error
}

func (r *usageRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.MachineUsage, error) {
	var u model.MachineUsage
	err := r.db.WithContext(ctx).Preload("Machine").First(&u, "id = ?", id).Error
	return &u, err
}

func (r *usageRepo) FindByUsageID(ctx context.Context, usageID string) (*model.MachineUsage, error) {
	var u model.MachineUsage
	err := r.db.WithContext(ctx).Where("usage_id = ?", usageID).First(&u).Error
	return &u, err
}

func (r *usageRepo) List(ctx context.Context) ([]model.MachineUsage, error) {
	var usages []model.MachineUsage
	err := r.db.WithContext(ctx).Preload("Machine").Order("created_at DESC").Find(&usages).Error
	return usages, err
}

func (r *usageRepo) Update(ctx context.Context, u *model.MachineUsage) error {
	return r.db.WithContext(ctx).Save(u).Error
}

func (r *usageRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.MachineUsage{}, "id = ?", id).Error
}

func (r *usageRepo) EfficiencyByMachine(ctx context.Context) ([]MachineEfficiencyRow, error) {
	var rows []MachineEfficiencyRow
	err := r.db.WithContext(ctx).Model(&model.MachineUsage{}).
		Select(`machine_usages.machine_id AS machine_id,
			machines.name AS machine_name,
			COUNT(*) AS batches,
			COALESCE(SUM(machine_usages.input), 0) AS total_input,
			COALESCE(SUM(machine_usages.output), 0) AS total_output,
			COALESCE(SUM(machine_usages.wastage), 0) AS total_wastage`).
		Joins("JOIN machines ON machines.id = machine_usages.machine_id").
		Group("machine_usages.machine_id, machines.name").
		Order("machines.name ASC").
		Scan(&rows).Error
	return rows, err
}
