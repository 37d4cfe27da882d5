package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Crew struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key"`
	CompanyID uuid.UUID `gorm:"type:uuid;index;not null"`

	Name     string `gorm:"not null"`
	Color    string `gorm:"default:'#16a34a'"` // calendar tag
	IsActive bool   `gorm:"default:true"`

	Technicians []Technician `gorm:"foreignKey:CrewID"`

	gorm.Model
}

func (c *Crew) BeforeCreate(tx *gorm.DB) (err error) {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return
}

type Technician struct {
	ID        uuid.UUID  `gorm:"type:uuid;primary_key"`
	CompanyID uuid.UUID  `gorm:"type:uuid;index;not null"`
	CrewID    *uuid.UUID `gorm:"type:uuid;index"` // unassigned technicians allowed

	Name     string `gorm:"not null"`
	Phone    string
	Email    string
	IsActive bool `gorm:"default:true"`

	gorm.Model
}

func (t *Technician) BeforeCreate(tx *gorm.DB) (err error) {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return
}
