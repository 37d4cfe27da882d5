package controllers

import (
	"errors"
	"net/http"
	"time"

	"lawnops-backend/config"
	"lawnops-backend/models"
	"lawnops-backend/services"
	"lawnops-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CreateScheduleInput struct {
	PropertyID    uuid.UUID  `json:"propertyId" binding:"required"`
	ServiceTypeID uuid.UUID  `json:"serviceTypeId" binding:"required"`
	TechnicianID  *uuid.UUID `json:"technicianId"`
	CrewID        *uuid.UUID `json:"crewId"`
	ScheduledDate time.Time  `json:"scheduledDate" binding:"required"`
	TimeWindow    string     `json:"timeWindow" binding:"omitempty,oneof=morning afternoon evening"`
	BasePrice     *float64   `json:"basePrice" binding:"omitempty,min=0"`
	Description   string     `json:"description"`
	IsRecurring   bool       `json:"isRecurring"`
	Frequency     string     `json:"frequency" binding:"omitempty,oneof=weekly biweekly monthly"`
}

type UpdateScheduleInput struct {
	TechnicianID  *uuid.UUID `json:"technicianId"`
	CrewID        *uuid.UUID `json:"crewId"`
	ScheduledDate *time.Time `json:"scheduledDate"`
	TimeWindow    *string    `json:"timeWindow" binding:"omitempty,oneof=morning afternoon evening"`
	BasePrice     *float64   `json:"basePrice" binding:"omitempty,min=0"`
	Description   *string    `json:"description"`
	IsRecurring   *bool      `json:"isRecurring"`
	Frequency     *string    `json:"frequency" binding:"omitempty,oneof=weekly biweekly monthly"`
}

type UpdateScheduleStatusInput struct {
	Status string `json:"status" binding:"required,oneof=pending in_progress completed cancelled"`
}

// CreateSchedule books a service visit for a property
func CreateSchedule(c *gin.Context) {
	companyID, ok := companyIDFromContext(c)
	if !ok {
		return
	}

	var input CreateScheduleInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	var property models.Property
	if err := config.DB.Where("company_id = ? AND id = ?", companyID, input.PropertyID).
		First(&property).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusBadRequest, "Property not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	var serviceType models.ServiceType
	if err := config.DB.Where("company_id = ? AND id = ?", companyID, input.ServiceTypeID).
		First(&serviceType).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusBadRequest, "Service type not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	schedule := models.ServiceSchedule{
		ID:            uuid.New(),
		CompanyID:     companyID,
		PropertyID:    input.PropertyID,
		ServiceTypeID: input.ServiceTypeID,
		TechnicianID:  input.TechnicianID,
		CrewID:        input.CrewID,
		ScheduledDate: input.ScheduledDate,
		Status:        models.ScheduleStatusPending,
		BasePrice:     input.BasePrice,
		Description:   input.Description,
		IsRecurring:   input.IsRecurring,
		Frequency:     input.Frequency,
	}
	if input.TimeWindow != "" {
		schedule.TimeWindow = input.TimeWindow
	} else {
		schedule.TimeWindow = models.TimeWindowMorning
	}

	// Visits without their own price inherit the catalog base price
	if schedule.BasePrice == nil {
		price := serviceType.BasePrice
		schedule.BasePrice = &price
	}

	if err := config.DB.Create(&schedule).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create schedule")
		return
	}

	c.JSON(http.StatusCreated, schedule)
}

// GetSchedules lists visits, filterable by status and date range
func GetSchedules(c *gin.Context) {
	companyID, ok := companyIDFromContext(c)
	if !ok {
		return
	}

	query := config.DB.Preload("Property").Preload("Property.Customer").Preload("ServiceType").
		Where("company_id = ?", companyID)

	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}
	if from := c.Query("from"); from != "" {
		t, err := time.Parse("2006-01-02", from)
		if err != nil {
			utils.RespondWithError(c, http.StatusBadRequest, "Invalid 'from' date, expected YYYY-MM-DD")
			return
		}
		query = query.Where("scheduled_date >= ?", t)
	}
	if to := c.Query("to"); to != "" {
		t, err := time.Parse("2006-01-02", to)
		if err != nil {
			utils.RespondWithError(c, http.StatusBadRequest, "Invalid 'to' date, expected YYYY-MM-DD")
			return
		}
		query = query.Where("scheduled_date < ?", t.AddDate(0, 0, 1))
	}

	var schedules []models.ServiceSchedule
	if err := query.Order("scheduled_date").Find(&schedules).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve schedules")
		return
	}

	c.JSON(http.StatusOK, schedules)
}

// GetSchedule retrieves a specific visit by ID
func GetSchedule(c *gin.Context) {
	companyID, ok := companyIDFromContext(c)
	if !ok {
		return
	}
	scheduleID, ok := idParam(c, "schedule")
	if !ok {
		return
	}

	var schedule models.ServiceSchedule
	if err := config.DB.Preload("Property").Preload("Property.Customer").Preload("ServiceType").
		Where("company_id = ? AND id = ?", companyID, scheduleID).
		First(&schedule).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Schedule not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	c.JSON(http.StatusOK, schedule)
}

// UpdateSchedule edits visit details. Status changes go through
// UpdateScheduleStatus so completion always runs the invoice workflow.
func UpdateSchedule(c *gin.Context) {
	companyID, ok := companyIDFromContext(c)
	if !ok {
		return
	}
	scheduleID, ok := idParam(c, "schedule")
	if !ok {
		return
	}

	var input UpdateScheduleInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	var schedule models.ServiceSchedule
	if err := config.DB.Where("company_id = ? AND id = ?", companyID, scheduleID).
		First(&schedule).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Schedule not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	if input.TechnicianID != nil {
		schedule.TechnicianID = input.TechnicianID
	}
	if input.CrewID != nil {
		schedule.CrewID = input.CrewID
	}
	if input.ScheduledDate != nil {
		schedule.ScheduledDate = *input.ScheduledDate
	}
	if input.TimeWindow != nil {
		schedule.TimeWindow = *input.TimeWindow
	}
	if input.BasePrice != nil {
		schedule.BasePrice = input.BasePrice
	}
	if input.Description != nil {
		schedule.Description = *input.Description
	}
	if input.IsRecurring != nil {
		schedule.IsRecurring = *input.IsRecurring
	}
	if input.Frequency != nil {
		schedule.Frequency = *input.Frequency
	}

	if err := config.DB.Save(&schedule).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update schedule")
		return
	}

	c.JSON(http.StatusOK, schedule)
}

// UpdateScheduleStatus transitions a visit's status. Completing a visit
// generates the invoice and returns it alongside the schedule.
func UpdateScheduleStatus(c *gin.Context) {
	companyID, ok := companyIDFromContext(c)
	if !ok {
		return
	}
	scheduleID, ok := idParam(c, "schedule")
	if !ok {
		return
	}

	var input UpdateScheduleStatusInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	invoiceService := services.NewInvoiceService(config.DB)
	invoice, err := invoiceService.ChangeScheduleStatus(companyID, scheduleID, input.Status)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrScheduleNotFound):
			utils.RespondWithError(c, http.StatusNotFound, "Schedule not found")
		case errors.Is(err, services.ErrInvalidTransition):
			utils.RespondWithError(c, http.StatusConflict, err.Error())
		default:
			utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update schedule status")
		}
		return
	}

	response := gin.H{"message": "Schedule status updated", "status": input.Status}
	if invoice != nil {
		response["invoice"] = invoice
	}
	c.JSON(http.StatusOK, response)
}

// DeleteSchedule soft deletes a visit
func DeleteSchedule(c *gin.Context) {
	companyID, ok := companyIDFromContext(c)
	if !ok {
		return
	}
	scheduleID, ok := idParam(c, "schedule")
	if !ok {
		return
	}

	result := config.DB.Where("company_id = ? AND id = ?", companyID, scheduleID).
		Delete(&models.ServiceSchedule{})

	if result.Error != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to delete schedule")
		return
	}
	if result.RowsAffected == 0 {
		utils.RespondWithError(c, http.StatusNotFound, "Schedule not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Schedule deleted successfully"})
}
