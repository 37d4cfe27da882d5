package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Invoice statuses. Draft invoices are advanced to sent only by the
// send-invoice-email endpoint.
const (
	InvoiceStatusDraft = "draft"
	InvoiceStatusSent  = "sent"
)

type Invoice struct {
	ID                uuid.UUID  `gorm:"type:uuid;primary_key"`
	CompanyID         uuid.UUID  `gorm:"type:uuid;index;not null"`
	CustomerID        uuid.UUID  `gorm:"type:uuid;index;not null"`
	PropertyID        *uuid.UUID `gorm:"type:uuid;index"`
	ServiceScheduleID *uuid.UUID `gorm:"type:uuid;index"`

	InvoiceNumber string    `gorm:"uniqueIndex;not null"`
	InvoiceDate   time.Time `gorm:"not null"`
	DueDate       time.Time `gorm:"not null"`

	Subtotal  float64 `gorm:"type:decimal(10,2);not null"`
	TaxAmount float64 `gorm:"type:decimal(10,2);default:0.0"`
	Total     float64 `gorm:"type:decimal(10,2);not null"`

	Status string `gorm:"type:varchar(20);default:'draft'"`
	Notes  string

	Customer Customer      `gorm:"foreignKey:CustomerID"`
	Items    []InvoiceItem `gorm:"foreignKey:InvoiceID"`

	gorm.Model
}

func (i *Invoice) BeforeCreate(tx *gorm.DB) (err error) {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return
}

type InvoiceItem struct {
	ID                uuid.UUID  `gorm:"type:uuid;primary_key"`
	InvoiceID         uuid.UUID  `gorm:"type:uuid;index;not null"`
	ServiceScheduleID *uuid.UUID `gorm:"type:uuid;index"`

	Description string  `gorm:"not null"`
	Quantity    int     `gorm:"default:1"`
	UnitPrice   float64 `gorm:"type:decimal(10,2);not null"`
	Amount      float64 `gorm:"type:decimal(10,2);not null"`
	TaxAmount   float64 `gorm:"type:decimal(10,2);default:0.0"`
	Total       float64 `gorm:"type:decimal(10,2);not null"`
}

func (i *InvoiceItem) BeforeCreate(tx *gorm.DB) (err error) {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return
}
