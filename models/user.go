package models

import (
	"time"

	"lawnops-backend/utils"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type User struct {
	ID       uuid.UUID `gorm:"type:uuid;primary_key"`
	Email    string    `gorm:"uniqueIndex;not null"`
	Password string    `gorm:"not null"`
	Name     string    `gorm:"not null"`
	Phone    string

	Role      string    `gorm:"type:varchar(20);not null"` // 'owner' or 'staff'
	CompanyID uuid.UUID `gorm:"type:uuid;index;not null"`

	CompanyName    string `gorm:"not null"`
	CompanyAddress string
	CompanyPhone   string
	CompanyEmail   string

	VisitReminders   bool `gorm:"default:true"`
	InvoiceEmails    bool `gorm:"default:true"`
	SMSNotifications bool `gorm:"default:false"`

	LastLogin *time.Time
	IsActive  bool `gorm:"default:true"`

	gorm.Model
}

// Initialize UUID and hash the password before creating
func (u *User) BeforeCreate(tx *gorm.DB) (err error) {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	hashed, err := utils.HashPassword(u.Password)
	if err != nil {
		return err
	}
	u.Password = hashed
	return
}
