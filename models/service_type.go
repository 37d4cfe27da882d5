package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ServiceType struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key"`
	CompanyID uuid.UUID `gorm:"type:uuid;index;not null"`

	Label       string `gorm:"not null"`
	Description string
	Category    string  `gorm:"default:'General'"` // mowing, fertilization, cleanup, ...
	BasePrice   float64 `gorm:"type:decimal(10,2);not null"`
	Duration    int     // estimated minutes per visit
	IsActive    bool    `gorm:"default:true"`

	gorm.Model
}

func (s *ServiceType) BeforeCreate(tx *gorm.DB) (err error) {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return
}
