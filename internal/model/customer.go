package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Customer of the finished product.
type Customer struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name            string
	Phone           string
	BillingAddress  string
	DeliveryAddress string
	GST             string `gorm:"column:gst"`
	Email           string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

func (c *Customer) BeforeCreate(_ *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}
