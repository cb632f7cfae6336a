package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// MachineUsage records one production batch on a machine.
// Wastage is derived — max(0, input-output) — and recomputed whenever
// input or output changes.
type MachineUsage struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey"`
	UsageID        string    `gorm:"uniqueIndex;not null"`
	MachineID      uuid.UUID `gorm:"type:uuid;not null;index"`
	Input          int       `gorm:"not null"`
	Output         int       `gorm:"not null"`
	Wastage        int       `gorm:"not null"`
	Operator       string    `gorm:"not null"`
	ProductionDate time.Time `gorm:"not null"`
	CreatedAt      time.Time
	UpdatedAt      time.Time

	Machine *Machine `gorm:"foreignKey:MachineID"`
}

func (MachineUsage) TableName() string { return "machine_usages" }

func (u *MachineUsage) BeforeCreate(_ *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	if u.ProductionDate.IsZero() {
		u.ProductionDate = time.Now()
	}
	return nil
}

// ComputeWastage floors input minus output at zero.
func ComputeWastage(input, output int) int {
	if w := input - output; w > 0 {
		return w
	}
	return 0
}
