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

type MachineService interface {
	Add(ctx context.Context, req dto.AddMachineRequest) (*dto.MachineResponse, error)
	List(ctx context.Context) ([]dto.MachineResponse, error)
	Update(ctx context.Context, id uuid.UUID, req dto.UpdateMachineRequest) (*dto.MachineResponse, error)
}

type machineService struct {
	repo repository.MachineRepository
}

func NewMachineService(repo repository.MachineRepository) MachineService {
	return &machineService{repo: repo}
}

func mapMachine(m *model.Machine) *dto.MachineResponse {
	return &dto.MachineResponse{
		ID:          m.ID.String(),
		MachineName: m.Name,
		MachineType: m.Type,
		Capacity:    m.Capacity,
		Location:    m.Location,
		Status:      m.Status,
		CreatedAt:   m.CreatedAt,
	}
}

func (s *machineService) Add(ctx context.Context, req dto.AddMachineRequest) (*dto.MachineResponse, error) {
	machine := &model.Machine{
		Name:     req.MachineName,
		Type:     req.MachineType,
		Capacity: req.Capacity,
		Location: req.Location,
		Status:   req.Status,
	}
	if err := s.repo.Create(ctx, machine); err != nil {
		return nil, err
	}
	return mapMachine(machine), nil
}

func (s *machineService) List(ctx context.Context) ([]dto.MachineResponse, error) {
	machines, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.MachineResponse, 0, len(machines))
	for i := range machines {
		out = append(out, *mapMachine(&machines[i]))
	}
	return out, nil
}

func (s *machineService) Update(ctx context.Context, id uuid.UUID, req dto.UpdateMachineRequest) (*dto.MachineResponse, error) {
	machine, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("machine %w", ErrNotFound)
		}
		return nil, err
	}

	if req.MachineName != nil {
		machine.Name = *req.MachineName
	}
	if req.MachineType != nil {
		machine.Type = *req.MachineType
	}
	if req.Capacity != nil {
		machine.Capacity = *req.Capacity
	}
	if req.Location != nil {
		machine.Location = *req.Location
	}
	if req.Status != nil {
		machine.Status = *req.Status
	}

	if err := s.repo.Update(ctx, machine); err != nil {
		return nil, err
	}
	return mapMachine(machine), nil
}
