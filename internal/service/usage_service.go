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

// UsageService owns the production usage log: one record per machine batch,
// with wastage derived from input and output.
type UsageService interface {
	Create(ctx context.Context, req dto.CreateUsageRequest) (*dto.UsageResponse, error)
	List(ctx context.Context) ([]dto.UsageResponse, error)
	Update(ctx context.Context, id uuid.UUID, req dto.UpdateUsageRequest) (*dto.UsageResponse, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Efficiency(ctx context.Context) ([]dto.MachineEfficiency, error)
}

type usageService struct {
	repo     repository.UsageRepository
	machines repository.MachineRepository
}

func NewUsageService(repo repository.UsageRepository, machines repository.MachineRepository) UsageService {
	return &usageService{repo: repo, machines: machines}
}

func mapUsage(u *model.MachineUsage) *dto.UsageResponse {
	resp := &dto.UsageResponse{
		ID:             u.ID.String(),
		UsageID:        u.UsageID,
		Input:          u.Input,
		Output:         u.Output,
		Wastage:        u.Wastage,
		Operator:       u.Operator,
		ProductionDate: u.ProductionDate,
	}
	if u.Machine != nil {
		resp.Machine = &dto.UsageMachineRef{
			ID:          u.Machine.ID.String(),
			MachineName: u.Machine.Name,
			MachineType: u.Machine.Type,
		}
	}
	return resp
}

func (s *usageService) Create(ctx context.Context, req dto.CreateUsageRequest) (*dto.UsageResponse, error) {
	if _, err := s.repo.FindByUsageID(ctx, req.UsageID); err == nil {
		return nil, fmt.Errorf("usage %w", ErrDuplicate)
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	machineID, err := uuid.Parse(req.Machine)
	if err != nil {
		return nil, fmt.Errorf("invalid machine id: %w", err)
	}
	if _, err := s.machines.FindByID(ctx, machineID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("machine %w", ErrNotFound)
		}
		return nil, err
	}

	usage := &model.MachineUsage{
		UsageID:   req.UsageID,
		MachineID: machineID,
		Input:     req.Input,
		Output:    req.Output,
		Wastage:   model.ComputeWastage(req.Input, req.Output),
		Operator:  req.Operator,
	}
	if req.ProductionDate != nil {
		usage.ProductionDate = *req.ProductionDate
	}
	if err := s.repo.Create(ctx, usage); err != nil {
		return nil, err
	}

	created, err := s.repo.FindByID(ctx, usage.ID)
	if err != nil {
		return nil, err
	}
	return mapUsage(created), nil
}

func (s *usageService) List(ctx context.Context) ([]dto.UsageResponse, error) {
	usages, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.UsageResponse, 0, len(usages))
	for i := range usages {
		out = append(out, *mapUsage(&usages[i]))
	}
	return out, nil
}

func (s *usageService) Update(ctx context.Context, id uuid.UUID, req dto.UpdateUsageRequest) (*dto.UsageResponse, error) {
	usage, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("usage %w", ErrNotFound)
		}
		return nil, err
	}

	if req.Machine != nil {
		machineID, err := uuid.Parse(*req.Machine)
		if err != nil {
			return nil, fmt.Errorf("invalid machine id: %w", err)
		}
		if _, err := s.machines.FindByID(ctx, machineID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, fmt.Errorf("machine %w", ErrNotFound)
			}
			return nil, err
		}
		usage.MachineID = machineID
	}
	if req.Operator != nil {
		usage.Operator = *req.Operator
	}
	if req.ProductionDate != nil {
		usage.ProductionDate = *req.ProductionDate
	}

	// Wastage is recomputed whenever input or output appears in the patch,
	// the missing side falling back to the stored value.
	if req.Input != nil || req.Output != nil {
		input := usage.Input
		output := usage.Output
		if req.Input != nil {
			input = *req.Input
		}
		if req.Output != nil {
			output = *req.Output
		}
		usage.Input = input
		usage.Output = output
		usage.Wastage = model.ComputeWastage(input, output)
	}

	if err := s.repo.Update(ctx, usage); err != nil {
		return nil, err
	}

	updated, err := s.repo.FindByID(ctx, usage.ID)
	if err != nil {
		return nil, err
	}
	return mapUsage(updated), nil
}

func (s *usageService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("usage %w", ErrNotFound)
		}
		return err
	}
	return s.repo.Delete(ctx, id)
}

func (s *usageService) Efficiency(ctx context.Context) ([]dto.MachineEfficiency, error) {
	rows, err := s.repo.EfficiencyByMachine(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.MachineEfficiency, 0, len(rows))
	for _, row := range rows {
		eff := 0.0
		if row.TotalInput > 0 {
			eff = float64(row.TotalOutput) / float64(row.TotalInput)
		}
		out = append(out, dto.MachineEfficiency{
			MachineID:    row.MachineID.String(),
			MachineName:  row.MachineName,
			Batches:      row.Batches,
			TotalInput:   row.TotalInput,
			TotalOutput:  row.TotalOutput,
			TotalWastage: row.TotalWastage,
			Efficiency:   eff,
		})
	}
	return out, nil
}
