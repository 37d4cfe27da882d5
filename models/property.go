package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Property struct {
	ID         uuid.UUID `gorm:"type:uuid;primary_key"`
	CompanyID  uuid.UUID `gorm:"type:uuid;index;not null"`
	CustomerID uuid.UUID `gorm:"type:uuid;index;not null"`

	Street string `gorm:"not null"`
	City   string `gorm:"not null"`
	State  string
	Zip    string

	LotSizeSqFt *int // optional, used for quoting
	Notes       string
	IsActive    bool `gorm:"default:true"`

	Customer  Customer          `gorm:"foreignKey:CustomerID"`
	Schedules []ServiceSchedule `gorm:"foreignKey:PropertyID"`

	gorm.Model
}

func (p *Property) BeforeCreate(tx *gorm.DB) (err error) {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return
}
