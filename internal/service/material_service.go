package service

import (
	"context"
	"errors"
	"fmt"

	"briqtrack/internal/dto"
	"briqtrack/internal/model"
	"briqtrack/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// LowStockNotifier is how the ledger hands a qualifying write to the alert
// pipeline. The production implementation enqueues a Redis job; failure to
// enqueue is the notifier's problem, never the caller's.
type LowStockNotifier interface {
	NotifyLowStock(ctx context.Context, materialName string, quantity int)
}

// MaterialService owns the raw-material ledger.
type MaterialService interface {
	Create(ctx context.Context, req dto.CreateMaterialRequest) (*dto.MaterialResponse, error)
	List(ctx context.Context) ([]dto.MaterialResponse, error)
	Get(ctx context.Context, id uuid.UUID) (*dto.MaterialResponse, error)
	Update(ctx context.Context, id uuid.UUID, req dto.UpdateMaterialRequest) (*dto.MaterialResponse, error)
	Delete(ctx context.Context, id uuid.UUID) error

	// Reduce is the consumption path: a decoded scan payload naming the
	// material and the quantity taken. Replaying the same payload reduces
	// again — there is no dedup key in the payload to act on.
	Reduce(ctx context.Context, req dto.ReduceStockRequest) (*dto.MaterialResponse, error)

	// Receive is the supply-receipt path: increments the ledger and records
	// the movement against the given supply log.
	Receive(ctx context.Context, materialID uuid.UUID, quantity int, supplyLogID uuid.UUID) error

	LowStock(ctx context.Context) ([]dto.MaterialResponse, error)
}

type materialService struct {
	repo      repository.MaterialRepository
	movements repository.StockMovementRepository
	notifier  LowStockNotifier
	threshold int
}

func NewMaterialService(
	repo repository.MaterialRepository,
	movements repository.StockMovementRepository,
	notifier LowStockNotifier,
	threshold int,
) MaterialService {
	return &materialService{repo: repo, movements: movements, notifier: notifier, threshold: threshold}
}

func mapMaterial(m *model.RawMaterial) *dto.MaterialResponse {
	return &dto.MaterialResponse{
		ID:        m.ID.String(),
		Name:      m.Name,
		Quantity:  m.Quantity,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

// checkLowStock fires the notifier iff the post-write quantity is below the
// threshold. Fired on every qualifying write — no suppression or debounce.
func (s *materialService) checkLowStock(ctx context.Context, m *model.RawMaterial) {
	if m.Quantity < s.threshold {
		s.notifier.NotifyLowStock(ctx, m.Name, m.Quantity)
	}
}

func (s *materialService) Create(ctx context.Context, req dto.CreateMaterialRequest) (*dto.MaterialResponse, error) {
	_, err := s.repo.FindByName(ctx, req.Name)
	if err == nil {
		return nil, fmt.Errorf("material %w", ErrDuplicate)
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	m := &model.RawMaterial{Name: req.Name}
	if req.Quantity != nil {
		m.Quantity = *req.Quantity
	}
	if err := s.repo.Create(ctx, m); err != nil {
		return nil, err
	}

	s.checkLowStock(ctx, m)
	return mapMaterial(m), nil
}

func (s *materialService) List(ctx context.Context) ([]dto.MaterialResponse, error) {
	materials, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.MaterialResponse, 0, len(materials))
	for i := range materials {
		out = append(out, *mapMaterial(&materials[i]))
	}
	return out, nil
}

func (s *materialService) Get(ctx context.Context, id uuid.UUID) (*dto.MaterialResponse, error) {
	m, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("raw material %w", ErrNotFound)
		}
		return nil, err
	}
	return mapMaterial(m), nil
}

func (s *materialService) Update(ctx context.Context, id uuid.UUID, req dto.UpdateMaterialRequest) (*dto.MaterialResponse, error) {
	m, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("raw material %w", ErrNotFound)
		}
		return nil, err
	}

	if req.Name != nil && *req.Name != m.Name {
		if _, err := s.repo.FindByName(ctx, *req.Name); err == nil {
			return nil, fmt.Errorf("material %w", ErrDuplicate)
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		m.Name = *req.Name
	}

	quantityChanged := false
	before := m.Quantity
	if req.Quantity != nil && *req.Quantity != m.Quantity {
		m.Quantity = *req.Quantity
		quantityChanged = true
	}

	if err := s.repo.Update(ctx, m); err != nil {
		return nil, err
	}

	if quantityChanged {
		if err := s.movements.Create(ctx, &model.StockMovement{
			RawMaterialID: m.ID,
			Type:          model.MovementManualEdit,
			Quantity:      m.Quantity - before,
			StockBefore:   before,
			StockAfter:    m.Quantity,
			Reason:        "direct edit",
		}); err != nil {
			log.Error().Err(err).Str("material", m.Name).Msg("failed to record stock movement")
		}
		s.checkLowStock(ctx, m)
	}
	return mapMaterial(m), nil
}

func (s *materialService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("raw material %w", ErrNotFound)
		}
		return err
	}
	return s.repo.Delete(ctx, id)
}

func (s *materialService) Reduce(ctx context.Context, req dto.ReduceStockRequest) (*dto.MaterialResponse, error) {
	m, err := s.repo.FindByName(ctx, req.Material)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("raw material %w", ErrNotFound)
		}
		return nil, err
	}

	before := m.Quantity

	// Single guarded UPDATE — quantity can never go negative, and two
	// concurrent consumers cannot both spend the same units.
	if err := s.repo.AdjustQuantity(ctx, m.ID, -req.Quantity); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInsufficientStock
		}
		return nil, err
	}

	updated, err := s.repo.FindByID(ctx, m.ID)
	if err != nil {
		return nil, err
	}

	if err := s.movements.Create(ctx, &model.StockMovement{
		RawMaterialID: m.ID,
		Type:          model.MovementConsumption,
		Quantity:      -req.Quantity,
		StockBefore:   before,
		StockAfter:    updated.Quantity,
		Reason:        "consumption scan",
	}); err != nil {
		log.Error().Err(err).Str("material", m.Name).Msg("failed to record stock movement")
	}

	s.checkLowStock(ctx, updated)
	return mapMaterial(updated), nil
}

func (s *materialService) Receive(ctx context.Context, materialID uuid.UUID, quantity int, supplyLogID uuid.UUID) error {
	m, err := s.repo.FindByID(ctx, materialID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("raw material %w", ErrNotFound)
		}
		return err
	}

	before := m.Quantity
	if err := s.repo.AdjustQuantity(ctx, materialID, quantity); err != nil {
		return err
	}

	ref := supplyLogID
	if err := s.movements.Create(ctx, &model.StockMovement{
		RawMaterialID: materialID,
		Type:          model.MovementSupplyReceipt,
		Quantity:      quantity,
		StockBefore:   before,
		StockAfter:    before + quantity,
		Reason:        "supply receipt",
		ReferenceID:   &ref,
	}); err != nil {
		log.Error().Err(err).Str("material", m.Name).Msg("failed to record stock movement")
	}

	updated, err := s.repo.FindByID(ctx, materialID)
	if err == nil {
		s.checkLowStock(ctx, updated)
	}
	return nil
}

func (s *materialService) LowStock(ctx context.Context) ([]dto.MaterialResponse, error) {
	materials, err := s.repo.ListBelow(ctx, s.threshold)
	if err != nil {
		return nil, err
	}
	out := make([]dto.MaterialResponse, 0, len(materials))
	for i := range materials {
		out = append(out, *mapMaterial(&materials[i]))
	}
	return out, nil
}
