package controllers

import (
	"errors"
	"net/http"

	"lawnops-backend/config"
	"lawnops-backend/models"
	"lawnops-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CreateServiceTypeInput struct {
	Label       string  `json:"label" binding:"required"`
	Description string  `json:"description"`
	Category    string  `json:"category"`
	BasePrice   float64 `json:"basePrice" binding:"min=0"`
	Duration    int     `json:"duration" binding:"min=0"`
}

type UpdateServiceTypeInput struct {
	Label       *string  `json:"label"`
	Description *string  `json:"description"`
	Category    *string  `json:"category"`
	BasePrice   *float64 `json:"basePrice" binding:"omitempty,min=0"`
	Duration    *int     `json:"duration" binding:"omitempty,min=0"`
	IsActive    *bool    `json:"isActive"`
}

func CreateServiceType(c *gin.Context) {
	companyID, ok := companyIDFromContext(c)
	if !ok {
		return
	}

	var input CreateServiceTypeInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	serviceType := models.ServiceType{
		ID:          uuid.New(),
		CompanyID:   companyID,
		Label:       input.Label,
		Description: input.Description,
		BasePrice:   input.BasePrice,
		Duration:    input.Duration,
		IsActive:    true,
	}
	if input.Category != "" {
		serviceType.Category = input.Category
	}

	if err := config.DB.Create(&serviceType).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create service type")
		return
	}

	c.JSON(http.StatusCreated, serviceType)
}

func GetServiceTypes(c *gin.Context) {
	companyID, ok := companyIDFromContext(c)
	if !ok {
		return
	}

	var serviceTypes []models.ServiceType
	if err := config.DB.Where("company_id = ?", companyID).
		Order("label").Find(&serviceTypes).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve service types")
		return
	}

	c.JSON(http.StatusOK, serviceTypes)
}

func GetServiceType(c *gin.Context) {
	companyID, ok := companyIDFromContext(c)
	if !ok {
		return
	}
	serviceTypeID, ok := idParam(c, "service type")
	if !ok {
		return
	}

	var serviceType models.ServiceType
	if err := config.DB.Where("company_id = ? AND id = ?", companyID, serviceTypeID).
		First(&serviceType).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Service type not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	c.JSON(http.StatusOK, serviceType)
}

func UpdateServiceType(c *gin.Context) {
	companyID, ok := companyIDFromContext(c)
	if !ok {
		return
	}
	serviceTypeID, ok := idParam(c, "service type")
	if !ok {
		return
	}

	var input UpdateServiceTypeInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	var serviceType models.ServiceType
	if err := config.DB.Where("company_id = ? AND id = ?", companyID, serviceTypeID).
		First(&serviceType).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Service type not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	if input.Label != nil {
		serviceType.Label = *input.Label
	}
	if input.Description != nil {
		serviceType.Description = *input.Description
	}
	if input.Category != nil {
		serviceType.Category = *input.Category
	}
	if input.BasePrice != nil {
		serviceType.BasePrice = *input.BasePrice
	}
	if input.Duration != nil {
		serviceType.Duration = *input.Duration
	}
	if input.IsActive != nil {
		serviceType.IsActive = *input.IsActive
	}

	if err := config.DB.Save(&serviceType).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update service type")
		return
	}

	c.JSON(http.StatusOK, serviceType)
}

func DeleteServiceType(c *gin.Context) {
	companyID, ok := companyIDFromContext(c)
	if !ok {
		return
	}
	serviceTypeID, ok := idParam(c, "service type")
	if !ok {
		return
	}

	result := config.DB.Where("company_id = ? AND id = ?", companyID, serviceTypeID).
		Delete(&models.ServiceType{})

	if result.Error != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to delete service type")
		return
	}
	if result.RowsAffected == 0 {
		utils.RespondWithError(c, http.StatusNotFound, "Service type not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Service type deleted successfully"})
}
