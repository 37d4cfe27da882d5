package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Schedule statuses. Pending and in-progress can flip back and forth;
// completed and cancelled are terminal.
const (
	ScheduleStatusPending    = "pending"
	ScheduleStatusInProgress = "in_progress"
	ScheduleStatusCompleted  = "completed"
	ScheduleStatusCancelled  = "cancelled"
)

// Time windows for a visit
const (
	TimeWindowMorning   = "morning"
	TimeWindowAfternoon = "afternoon"
	TimeWindowEvening   = "evening"
)

type ServiceSchedule struct {
	ID            uuid.UUID  `gorm:"type:uuid;primary_key"`
	CompanyID     uuid.UUID  `gorm:"type:uuid;index;not null"`
	PropertyID    uuid.UUID  `gorm:"type:uuid;index;not null"`
	ServiceTypeID uuid.UUID  `gorm:"type:uuid;index;not null"`
	TechnicianID  *uuid.UUID `gorm:"type:uuid;index"`
	CrewID        *uuid.UUID `gorm:"type:uuid;index"`

	ScheduledDate time.Time `gorm:"not null"`
	TimeWindow    string    `gorm:"type:varchar(20);default:'morning'"`
	Status        string    `gorm:"type:varchar(20);default:'pending'"`

	BasePrice   *float64 `gorm:"type:decimal(10,2)"` // nullable, falls back to 0 when invoicing
	Description string

	IsRecurring     bool       `gorm:"default:false"`
	Frequency       string     `gorm:"type:varchar(20)"` // weekly, biweekly, monthly
	NextServiceDate *time.Time

	CompletedAt *time.Time

	Property    Property    `gorm:"foreignKey:PropertyID"`
	ServiceType ServiceType `gorm:"foreignKey:ServiceTypeID"`

	gorm.Model
}

func (s *ServiceSchedule) BeforeCreate(tx *gorm.DB) (err error) {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return
}

var scheduleTransitions = map[string][]string{
	ScheduleStatusPending:    {ScheduleStatusInProgress, ScheduleStatusCompleted, ScheduleStatusCancelled},
	ScheduleStatusInProgress: {ScheduleStatusPending, ScheduleStatusCompleted, ScheduleStatusCancelled},
	ScheduleStatusCompleted:  {},
	ScheduleStatusCancelled:  {},
}

// ValidScheduleTransition reports whether a status change is allowed.
func ValidScheduleTransition(from, to string) bool {
	for _, next := range scheduleTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}
