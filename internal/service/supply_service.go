package service

import (
	"context"
	"errors"
	"fmt"

	"briqtrack/internal/dto"
	"briqtrack/internal/model"
	"briqtrack/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// SupplyService records deliveries. A supply log is immutable once written;
// creating one increments the referenced material's ledger quantity.
type SupplyService interface {
	Create(ctx context.Context, req dto.CreateSupplyLogRequest) (*dto.SupplyLogResponse, error)
	Get(ctx context.Context, id uuid.UUID) (*dto.SupplyLogResponse, error)
	List(ctx context.Context) ([]dto.SupplyLogResponse, error)
}

type supplyService struct {
	repo         repository.SupplyLogRepository
	suppliers    repository.SupplierRepository
	materialRepo repository.MaterialRepository
	materials    MaterialService
}

func NewSupplyService(
	repo repository.SupplyLogRepository,
	suppliers repository.SupplierRepository,
	materialRepo repository.MaterialRepository,
	materials MaterialService,
) SupplyService {
	return &supplyService{repo: repo, suppliers: suppliers, materialRepo: materialRepo, materials: materials}
}

func mapSupplyLog(s *model.SupplyLog) *dto.SupplyLogResponse {
	resp := &dto.SupplyLogResponse{
		ID:               s.ID.String(),
		QuantitySupplied: s.QuantitySupplied,
		Price:            s.Price,
		DateSupplied:     s.DateSupplied,
	}
	if s.Supplier != nil {
		resp.Supplier = &dto.SupplyLogSupplierRef{
			ID:      s.Supplier.ID.String(),
			Name:    s.Supplier.Name,
			Contact: s.Supplier.Contact,
		}
	}
	if s.RawMaterial != nil {
		resp.RawMaterial = &dto.SupplyLogMaterialRef{
			ID:       s.RawMaterial.ID.String(),
			Name:     s.RawMaterial.Name,
			Quantity: s.RawMaterial.Quantity,
		}
	}
	return resp
}

func (s *supplyService) Create(ctx context.Context, req dto.CreateSupplyLogRequest) (*dto.SupplyLogResponse, error) {
	supplierID, err := uuid.Parse(req.SupplierID)
	if err != nil {
		return nil, fmt.Errorf("invalid supplierId: %w", err)
	}
	materialID, err := uuid.Parse(req.RawMaterialID)
	if err != nil {
		return nil, fmt.Errorf("invalid rawMaterialId: %w", err)
	}

	// Both refs must resolve before anything is written.
	if _, err := s.suppliers.FindByID(ctx, supplierID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("supplier %w", ErrNotFound)
		}
		return nil, err
	}
	if _, err := s.materialRepo.FindByID(ctx, materialID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("raw material %w", ErrNotFound)
		}
		return nil, err
	}

	entry := &model.SupplyLog{
		SupplierID:       supplierID,
		RawMaterialID:    materialID,
		QuantitySupplied: req.QuantitySupplied,
		Price:            req.Price,
	}
	if req.DateSupplied != nil {
		entry.DateSupplied = *req.DateSupplied
	}

	if err := s.repo.Create(ctx, entry); err != nil {
		return nil, err
	}

	if err := s.materials.Receive(ctx, materialID, req.QuantitySupplied, entry.ID); err != nil {
		return nil, err
	}

	created, err := s.repo.FindByID(ctx, entry.ID)
	if err != nil {
		return nil, err
	}
	return mapSupplyLog(created), nil
}

func (s *supplyService) Get(ctx context.Context, id uuid.UUID) (*dto.SupplyLogResponse, error) {
	entry, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("supply log %w", ErrNotFound)
		}
		return nil, err
	}
	return mapSupplyLog(entry), nil
}

func (s *supplyService) List(ctx context.Context) ([]dto.SupplyLogResponse, error) {
	logs, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.SupplyLogResponse, 0, len(logs))
	for i := range logs {
		out = append(out, *mapSupplyLog(&logs[i]))
	}
	return out, nil
}
