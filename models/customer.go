package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Customer struct {
	ID              uuid.UUID `gorm:"type:uuid;primary_key"`
	CompanyID       uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_company_phone,priority:1"`
	CreatedByUserID uuid.UUID `gorm:"type:uuid;index;not null"`

	Name  string `gorm:"not null"`
	Phone string `gorm:"not null;uniqueIndex:idx_company_phone,priority:2"`
	Email string

	// Billing address, used on invoices and rendered documents
	BillingStreet string
	BillingCity   string
	BillingState  string
	BillingZip    string

	Notes    string
	IsActive bool `gorm:"default:true"`

	Properties []Property `gorm:"foreignKey:CustomerID"`
	Invoices   []Invoice  `gorm:"foreignKey:CustomerID"`

	gorm.Model
}

func (c *Customer) BeforeCreate(tx *gorm.DB) (err error) {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return
}
