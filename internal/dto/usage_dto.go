package dto

import "time"

type CreateUsageRequest struct {
	UsageID        string     `json:"usageId" validate:"required,min=1"`
	Machine        string     `json:"machine" validate:"required,uuid"`
	Input          int        `json:"input" validate:"min=0"`
	Output         int        `json:"output" validate:"min=0"`
	Operator       string     `json:"operator" validate:"required,min=1"`
	ProductionDate *time.Time `json:"productionDate"`
}

// UpdateUsageRequest is a partial patch: wastage is recomputed when input
// or output is present, missing side falling back to the stored value.
type UpdateUsageRequest struct {
	Machine        *string    `json:"machine" validate:"omitempty,uuid"`
	Input          *int       `json:"input" validate:"omitempty,min=0"`
	Output         *int       `json:"output" validate:"omitempty,min=0"`
	Operator       *string    `json:"operator" validate:"omitempty,min=1"`
	ProductionDate *time.Time `json:"productionDate"`
}

type UsageMachineRef struct {
	ID          string `json:"id"`
	MachineName string `json:"machineName"`
	MachineType string `json:"machineType"`
}

type UsageResponse struct {
	ID             string           `json:"id"`
	UsageID        string           `json:"usageId"`
	Machine        *UsageMachineRef `json:"machine,omitempty"`
	Input          int              `json:"input"`
	Output         int              `json:"output"`
	Wastage        int              `json:"wastage"`
	Operator       string           `json:"operator"`
	ProductionDate time.Time        `json:"productionDate"`
}

// MachineEfficiency aggregates batch totals per machine for the
// dashboard analytics view.
type MachineEfficiency struct {
	MachineID    string  `json:"machineId"`
	MachineName  string  `json:"machineName"`
	Batches      int64   `json:"batches"`
	TotalInput   int64   `json:"totalInput"`
	TotalOutput  int64   `json:"totalOutput"`
	TotalWastage int64   `json:"totalWastage"`
	Efficiency   float64 `json:"efficiency"` // output/input, 0 when no input
}
