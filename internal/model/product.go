package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Product is a finished briquette specification sold to customers.
type Product struct {
	ID                         uuid.UUID `gorm:"type:uuid;primaryKey"`
	SizeMM                     int       `gorm:"column:size_mm"`
	Ash                        string
	BurnTime                   string
	CustomSpecificationEnabled bool
	CustomSpecification        string
	Quantity                   int
	Cost                       decimal.Decimal `gorm:"type:decimal(12,2)"`
	ExpectedDeliveryDate       *time.Time
	CreatedAt                  time.Time
	UpdatedAt                  time.Time
}

func (p *Product) BeforeCreate(_ *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}
