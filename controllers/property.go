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

type CreatePropertyInput struct {
	CustomerID  uuid.UUID `json:"customerId" binding:"required"`
	Street      string    `json:"street" binding:"required"`
	City        string    `json:"city" binding:"required"`
	State       string    `json:"state"`
	Zip         string    `json:"zip"`
	LotSizeSqFt *int      `json:"lotSizeSqFt"`
	Notes       string    `json:"notes"`
}

type UpdatePropertyInput struct {
	Street      *string `json:"street"`
	City        *string `json:"city"`
	State       *string `json:"state"`
	Zip         *string `json:"zip"`
	LotSizeSqFt *int    `json:"lotSizeSqFt"`
	Notes       *string `json:"notes"`
	IsActive    *bool   `json:"isActive"`
}

// CreateProperty creates a new property under an existing customer
func CreateProperty(c *gin.Context) {
	companyID, ok := companyIDFromContext(c)
	if !ok {
		return
	}

	var input CreatePropertyInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	// Customer must belong to the same company
	var customer models.Customer
	if err := config.DB.Where("company_id = ? AND id = ?", companyID, input.CustomerID).
		First(&customer).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusBadRequest, "Customer not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	property := models.Property{
		ID:          uuid.New(),
		CompanyID:   companyID,
		CustomerID:  input.CustomerID,
		Street:      input.Street,
		City:        input.City,
		State:       input.State,
		Zip:         input.Zip,
		LotSizeSqFt: input.LotSizeSqFt,
		Notes:       input.Notes,
		IsActive:    true,
	}

	if err := config.DB.Create(&property).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create property")
		return
	}

	c.JSON(http.StatusCreated, property)
}

// GetProperties retrieves all properties, optionally filtered by customer
func GetProperties(c *gin.Context) {
	companyID, ok := companyIDFromContext(c)
	if !ok {
		return
	}

	query := config.DB.Preload("Customer").Where("company_id = ?", companyID)
	if customerID := c.Query("customerId"); customerID != "" {
		id, err := uuid.Parse(customerID)
		if err != nil {
			utils.RespondWithError(c, http.StatusBadRequest, "Invalid customer ID format")
			return
		}
		query = query.Where("customer_id = ?", id)
	}

	var properties []models.Property
	if err := query.Order("street").Find(&properties).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve properties")
		return
	}

	c.JSON(http.StatusOK, properties)
}

// GetProperty retrieves a specific property by ID
func GetProperty(c *gin.Context) {
	companyID, ok := companyIDFromContext(c)
	if !ok {
		return
	}
	propertyID, ok := idParam(c, "property")
	if !ok {
		return
	}

	var property models.Property
	if err := config.DB.Preload("Customer").
		Where("company_id = ? AND id = ?", companyID, propertyID).
		First(&property).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Property not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	c.JSON(http.StatusOK, property)
}

// UpdateProperty updates an existing property
func UpdateProperty(c *gin.Context) {
	companyID, ok := companyIDFromContext(c)
	if !ok {
		return
	}
	propertyID, ok := idParam(c, "property")
	if !ok {
		return
	}

	var input UpdatePropertyInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	var property models.Property
	if err := config.DB.Where("company_id = ? AND id = ?", companyID, propertyID).
		First(&property).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Property not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	if input.Street != nil {
		property.Street = *input.Street
	}
	if input.City != nil {
		property.City = *input.City
	}
	if input.State != nil {
		property.State = *input.State
	}
	if input.Zip != nil {
		property.Zip = *input.Zip
	}
	if input.LotSizeSqFt != nil {
		property.LotSizeSqFt = input.LotSizeSqFt
	}
	if input.Notes != nil {
		property.Notes = *input.Notes
	}
	if input.IsActive != nil {
		property.IsActive = *input.IsActive
	}

	if err := config.DB.Save(&property).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update property")
		return
	}

	c.JSON(http.StatusOK, property)
}

// DeleteProperty soft deletes a property
func DeleteProperty(c *gin.Context) {
	companyID, ok := companyIDFromContext(c)
	if !ok {
		return
	}
	propertyID, ok := idParam(c, "property")
	if !ok {
		return
	}

	result := config.DB.Where("company_id = ? AND id = ?", companyID, propertyID).
		Delete(&models.Property{})

	if result.Error != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to delete property")
		return
	}
	if result.RowsAffected == 0 {
		utils.RespondWithError(c, http.StatusNotFound, "Property not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Property deleted successfully"})
}
