package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

type CreateSupplyLogRequest struct {
	SupplierID       string          `json:"supplierId" validate:"required,uuid"`
	RawMaterialID    string          `json:"rawMaterialId" validate:"required,uuid"`
	QuantitySupplied int             `json:"quantitySupplied" validate:"required,gt=0"`
	Price            decimal.Decimal `json:"price" validate:"required"`
	DateSupplied     *time.Time      `json:"dateSupplied"`
}

// SupplyLogRef is the read-time resolution of a foreign key: just enough
// of the referenced entity for the dashboard table.
type SupplyLogSupplierRef struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Contact string `json:"contact"`
}

type SupplyLogMaterialRef struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
}

type SupplyLogResponse struct {
	ID               string                `json:"id"`
	Supplier         *SupplyLogSupplierRef `json:"supplier,omitempty"`
	RawMaterial      *SupplyLogMaterialRef `json:"rawMaterial,omitempty"`
	QuantitySupplied int                   `json:"quantitySupplied"`
	Price            decimal.Decimal       `json:"price"`
	DateSupplied     time.Time             `json:"dateSupplied"`
}
