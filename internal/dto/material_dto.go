package dto

import "time"

// ─── Request DTOs ────────────────────────────────────────────────────────────

type CreateMaterialRequest struct {
	Name string `json:"name" validate:"required,min=1,max=120"`
	// Quantity is optional — a material registered before its first
	// delivery starts at zero.
	Quantity *int `json:"quantity" validate:"omitempty,min=0"`
}

type UpdateMaterialRequest struct {
	Name     *string `json:"name" validate:"omitempty,min=1,max=120"`
	Quantity *int    `json:"quantity" validate:"omitempty,min=0"`
}

// ReduceStockRequest is the decoded scan payload consumed by POST /materials/reduce.
type ReduceStockRequest struct {
	Material string `json:"material" validate:"required"`
	Quantity int    `json:"quantity" validate:"required,gt=0"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type MaterialResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Quantity  int       `json:"quantity"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type ReduceStockResponse struct {
	Message         string           `json:"message"`
	UpdatedMaterial MaterialResponse `json:"updatedMaterial"`
}

type DeleteResponse struct {
	Message string `json:"message"`
}
