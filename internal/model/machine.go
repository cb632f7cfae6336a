package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Machine is a production machine on the floor.
type Machine struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name      string    `gorm:"not null"`
	Type      string    `gorm:"not null"`
	Capacity  string
	Location  string
	Status    string `gorm:"not null;default:'Active'"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (m *Machine) BeforeCreate(_ *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	if m.Status == "" {
		m.Status = "Active"
	}
	return nil
}
