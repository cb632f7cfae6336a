package repository

import (
	"context"

	"briqtrack/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// MaterialRepository defines the data access contract for the raw-material
// ledger. Services depend on this interface, not on the concrete GORM
// implementation, enabling clean unit testing via stubs.
type MaterialRepository interface {
	Create(ctx context.Context, m *model.RawMaterial) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.RawMaterial, error)
	FindByName(ctx context.Context, name string) (*model.RawMaterial, error)
	List(ctx context.Context) ([]model.RawMaterial, error)
	ListBelow(ctx context.Context, threshold int) ([]model.RawMaterial, error)
	Update(ctx context.Context, m *model.RawMaterial) error
	Delete(ctx context.Context, id uuid.UUID) error

	// AdjustQuantity applies a signed delta as a single guarded UPDATE:
	// quantity = quantity + delta, only when the result stays >= 0.
	// Returns gorm.ErrRecordNotFound when no row qualified — either the id
	// is unknown or the delta would drive the quantity negative.
	AdjustQuantity(ctx context.Context, id uuid.UUID, delta int) error
}

type materialRepo struct{ db *gorm.DB }

func NewMaterialRepository(db *gorm.DB) MaterialRepository { return &materialRepo{db: db} }

func (r *materialRepo) Create(ctx context.Context, m *model.RawMaterial) error {
	return r.db.WithContext(ctx).Create(m).Error
}

func (r *materialRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.RawMaterial, error) {
	var m model.RawMaterial
	err := r.db.WithContext(ctx).First(&m, "id = ?", id).Error
	return &m, err
}

func (r *materialRepo) FindByName(ctx context.Context, name string) (*model.RawMaterial, error) {
	var m model.RawMaterial
	err := r.db.WithContext(ctx).Where("name = ?", name).First(&m).Error
	return &m, err
}

func (r *materialRepo) List(ctx context.Context) ([]model.RawMaterial, error) {
	var materials []model.RawMaterial
	err := r.db.WithContext(ctx).Order("name ASC").Find(&materials).Error
	return materials, err
}

func (r *materialRepo) ListBelow(ctx context.Context, threshold int) ([]model.RawMaterial, error) {
	var materials []model.RawMaterial
	err := r.db.WithContext(ctx).Where("quantity < ?", threshold).Order("quantity ASC").Find(&materials).Error
	return materials, err
}

func (r *materialRepo) Update(ctx context.Context, m *model.RawMaterial) error {
	return r.db.WithContext(ctx).Save(m).Error
}

func (r *materialRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.RawMaterial{}, "id = ?", id).Error
}

func (r *materialRepo) AdjustQuantity(ctx context.Context, id uuid.UUID, delta int) error {
	res := r.db.WithContext(ctx).Model(&model.RawMaterial{}).
		Where("id = ? AND quantity + ? >= 0", id, delta).
		Update("quantity", gorm.Expr("quantity + ?", delta))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
