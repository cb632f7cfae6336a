package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// RawMaterial is the ledger entry for a single raw material.
// Quantity never goes negative: every mutation runs through a guarded
// atomic update in the repository.
type RawMaterial struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name      string    `gorm:"uniqueIndex;not null"`
	Quantity  int       `gorm:"not null;default:0;check:quantity >= 0"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (m *RawMaterial) BeforeCreate(_ *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}
