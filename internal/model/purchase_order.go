package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Purchase order status values.
const (
	OrderPending = "pending"
	OrderSent    = "sent"
)

// PurchaseOrder asks a supplier for a quantity of raw material.
// Status moves pending → sent once the notification mail has actually
// been delivered to the supplier (done by the email worker, not by the
// create handler).
type PurchaseOrder struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey"`
	SupplierID    uuid.UUID `gorm:"type:uuid;not null;index"`
	RawMaterialID uuid.UUID `gorm:"type:uuid;not null;index"`
	Quantity      int       `gorm:"not null"`
	OrderDate     time.Time `gorm:"not null"`
	Status        string    `gorm:"not null;default:'pending';index"`
	Notes         string
	CreatedAt     time.Time
	UpdatedAt     time.Time

	Supplier    *Supplier    `gorm:"foreignKey:SupplierID"`
	RawMaterial *RawMaterial `gorm:"foreignKey:RawMaterialID"`
}

func (PurchaseOrder) TableName() string { return "purchase_orders" }

func (o *PurchaseOrder) BeforeCreate(_ *gorm.DB) error {
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	if o.OrderDate.IsZero() {
		o.OrderDate = time.Now()
	}
	if o.Status == "" {
		o.Status = OrderPending
	}
	return nil
}
