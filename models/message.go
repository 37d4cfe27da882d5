// models/message.go
package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	MessageTypeInvoice  = "invoice"
	MessageTypeReminder = "reminder"
)

// Message is the audit record for an outbound email or SMS. Rows are written
// only after the provider accepted the send.
type Message struct {
	ID        uuid.UUID  `gorm:"type:uuid;primary_key"`
	CompanyID uuid.UUID  `gorm:"type:uuid;index;not null"`
	InvoiceID *uuid.UUID `gorm:"type:uuid;index"`

	Type    string `gorm:"type:varchar(20);not null"` // invoice, reminder
	Channel string `gorm:"type:varchar(20);not null"` // email, sms
	Subject string
	Body    string `gorm:"type:text"`
	SentAt  time.Time

	Recipients []MessageRecipient `gorm:"foreignKey:MessageID"`

	gorm.Model
}

func (m *Message) BeforeCreate(tx *gorm.DB) (err error) {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return
}

type MessageRecipient struct {
	ID         uuid.UUID  `gorm:"type:uuid;primary_key"`
	MessageID  uuid.UUID  `gorm:"type:uuid;index;not null"`
	CustomerID *uuid.UUID `gorm:"type:uuid;index"`

	Address      string `gorm:"not null"` // email address or phone number
	Status       string `gorm:"type:varchar(20)"` // sent, failed
	ErrorMessage string `gorm:"type:text"`

	gorm.Model
}

func (m *MessageRecipient) BeforeCreate(tx *gorm.DB) (err error) {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return
}
