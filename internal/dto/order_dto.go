package dto

import "time"

type CreateOrderRequest struct {
	SupplierID    string     `json:"supplierId" validate:"required,uuid"`
	RawMaterialID string     `json:"rawMaterialId" validate:"required,uuid"`
	Quantity      int        `json:"quantity" validate:"required,gt=0"`
	OrderDate     *time.Time `json:"orderDate"`
	Notes         string     `json:"notes"`
}

type UpdateOrderRequest struct {
	Quantity *int    `json:"quantity" validate:"omitempty,gt=0"`
	Status   *string `json:"status" validate:"omitempty,oneof=pending sent"`
	Notes    *string `json:"notes"`
}

type OrderResponse struct {
	ID            string    `json:"id"`
	SupplierID    string    `json:"supplierId"`
	SupplierName  string    `json:"supplierName,omitempty"`
	RawMaterialID string    `json:"rawMaterialId"`
	MaterialName  string    `json:"materialName,omitempty"`
	Quantity      int       `json:"quantity"`
	OrderDate     time.Time `json:"orderDate"`
	Status        string    `json:"status"`
	Notes         string    `json:"notes"`
}

type CreateOrderResponse struct {
	Message string        `json:"message"`
	Order   OrderResponse `json:"order"`
}
