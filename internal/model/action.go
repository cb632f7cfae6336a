package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Action links a customer to a product they interacted with
// (an order placed through the dashboard's QR flow).
type Action struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	CustomerID uuid.UUID `gorm:"type:uuid;not null;index"`
	ProductID  uuid.UUID `gorm:"type:uuid;not null;index"`
	ActionUUID string    `gorm:"not null"`
	CreatedAt  time.Time

	Customer *Customer `gorm:"foreignKey:CustomerID"`
	Product  *Product  `gorm:"foreignKey:ProductID"`
}

func (a *Action) BeforeCreate(_ *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}
