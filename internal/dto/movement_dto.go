package dto

import "time"

// StockMovementFilter narrows the audit trail listing.
type StockMovementFilter struct {
	MaterialID string `form:"materialId" validate:"omitempty,uuid"`
	Type       string `form:"type" validate:"omitempty,oneof=supply_receipt consumption manual_edit"`
	Page       int    `form:"page,default=1" validate:"min=1"`
	Limit      int    `form:"limit,default=50" validate:"min=1,max=500"`
}

type StockMovementResponse struct {
	ID           string    `json:"id"`
	MaterialID   string    `json:"materialId"`
	MaterialName string    `json:"materialName,omitempty"`
	Type         string    `json:"type"`
	Quantity     int       `json:"quantity"`
	StockBefore  int       `json:"stockBefore"`
	StockAfter   int       `json:"stockAfter"`
	Reason       string    `json:"reason,omitempty"`
	ReferenceID  *string   `json:"referenceId,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
}

type StockMovementListResponse struct {
	Data  []StockMovementResponse `json:"data"`
	Total int64                   `json:"total"`
	Page  int                     `json:"page"`
	Limit int                     `json:"limit"`
}
