package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	EstimateStatusDraft    = "draft"
	EstimateStatusSent     = "sent"
	EstimateStatusApproved = "approved"
	EstimateStatusDeclined = "declined"
)

type Estimate struct {
	ID         uuid.UUID  `gorm:"type:uuid;primary_key"`
	CompanyID  uuid.UUID  `gorm:"type:uuid;index;not null"`
	CustomerID uuid.UUID  `gorm:"type:uuid;index;not null"`
	PropertyID *uuid.UUID `gorm:"type:uuid;index"`

	EstimateNumber string    `gorm:"uniqueIndex;not null"`
	EstimateDate   time.Time `gorm:"not null"`
	ExpiryDate     *time.Time

	Subtotal  float64 `gorm:"type:decimal(10,2);not null"`
	TaxAmount float64 `gorm:"type:decimal(10,2);default:0.0"`
	Total     float64 `gorm:"type:decimal(10,2);not null"`

	Status string `gorm:"type:varchar(20);default:'draft'"`
	Notes  string

	Customer Customer       `gorm:"foreignKey:CustomerID"`
	Items    []EstimateItem `gorm:"foreignKey:EstimateID"`

	gorm.Model
}

func (e *Estimate) BeforeCreate(tx *gorm.DB) (err error) {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	return
}

type EstimateItem struct {
	ID            uuid.UUID  `gorm:"type:uuid;primary_key"`
	EstimateID    uuid.UUID  `gorm:"type:uuid;index;not null"`
	ServiceTypeID *uuid.UUID `gorm:"type:uuid;index"`

	Description string  `gorm:"not null"`
	Quantity    int     `gorm:"default:1"`
	UnitPrice   float64 `gorm:"type:decimal(10,2);not null"`
	Amount      float64 `gorm:"type:decimal(10,2);not null"`
	TaxAmount   float64 `gorm:"type:decimal(10,2);default:0.0"`
	Total       float64 `gorm:"type:decimal(10,2);not null"`
}

func (e *EstimateItem) BeforeCreate(tx *gorm.DB) (err error) {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	return
}
