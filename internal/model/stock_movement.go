package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Movement types recorded against the ledger.
const (
	MovementSupplyReceipt = "supply_receipt"
	MovementConsumption   = "consumption"
	MovementManualEdit    = "manual_edit"
)

// StockMovement records every quantity change on a raw material.
// It is append-only: rows are written alongside the ledger update and
// never edited afterwards.
type StockMovement struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey"`
	RawMaterialID uuid.UUID `gorm:"type:uuid;not null;index"`
	Type          string    `gorm:"not null"` // supply_receipt | consumption | manual_edit
	Quantity      int       `gorm:"not null"` // positive = receipt, negative = consumption
	StockBefore   int       `gorm:"not null"`
	StockAfter    int       `gorm:"not null"`
	Reason        string
	ReferenceID   *uuid.UUID `gorm:"type:uuid"` // supply log or nothing
	CreatedAt     time.Time

	RawMaterial *RawMaterial `gorm:"foreignKey:RawMaterialID"`
}

func (m *StockMovement) BeforeCreate(_ *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}
