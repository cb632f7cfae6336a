package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// SupplyLog is an immutable delivery receipt. Creating one also
// increments the referenced material's ledger quantity.
type SupplyLog struct {
	ID               uuid.UUID       `gorm:"type:uuid;primaryKey"`
	SupplierID       uuid.UUID       `gorm:"type:uuid;not null;index"`
	RawMaterialID    uuid.UUID       `gorm:"type:uuid;not null;index"`
	QuantitySupplied int             `gorm:"not null"`
	Price            decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	DateSupplied     time.Time       `gorm:"not null"`
	CreatedAt        time.Time

	Supplier    *Supplier    `gorm:"foreignKey:SupplierID"`
	RawMaterial *RawMaterial `gorm:"foreignKey:RawMaterialID"`
}

func (s *SupplyLog) BeforeCreate(_ *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	if s.DateSupplied.IsZero() {
		s.DateSupplied = time.Now()
	}
	return nil
}
