package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type TaxConfiguration struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key"`
	CompanyID uuid.UUID `gorm:"type:uuid;index;not null"`

	Name      string  `gorm:"not null"`
	Rate      float64 `gorm:"type:decimal(6,4);not null"` // e.g. 0.0800
	IsDefault bool    `gorm:"default:false"`

	gorm.Model
}

func (t *TaxConfiguration) BeforeCreate(tx *gorm.DB) (err error) {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return
}
