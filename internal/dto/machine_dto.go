package dto

import "time"

type AddMachineRequest struct {
	MachineName string `json:"machineName" validate:"required,min=1"`
	MachineType string `json:"machineType" validate:"required,min=1"`
	Capacity    string `json:"capacity"`
	Location    string `json:"location"`
	Status      string `json:"status" validate:"omitempty,oneof=Active Inactive Maintenance"`
}

type UpdateMachineRequest struct {
	MachineName *string `json:"machineName" validate:"omitempty,min=1"`
	MachineType *string `json:"machineType" validate:"omitempty,min=1"`
	Capacity    *string `json:"capacity"`
	Location    *string `json:"location"`
	Status      *string `json:"status" validate:"omitempty,oneof=Active Inactive Maintenance"`
}

type MachineResponse struct {
	ID          string    `json:"id"`
	MachineName string    `json:"machineName"`
	MachineType string    `json:"machineType"`
	Capacity    string    `json:"capacity"`
	Location    string    `json:"location"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"createdAt"`
}

type AddMachineResponse struct {
	Message string          `json:"message"`
	Data    MachineResponse `json:"data"`
}
