package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Supplier represents a raw-material vendor with contact data.
type Supplier struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name      string    `gorm:"uniqueIndex;not null"`
	Contact   string    `gorm:"not null"`
	Email     string    `gorm:"not null"`
	Address   string    `gorm:"not null"`
	CreatedAt time.Time
	UpdatedAt time.Time

	SupplyLogs []SupplyLog `gorm:"foreignKey:SupplierID"`
}

func (s *Supplier) BeforeCreate(_ *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}
