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

// CreateCustomerInput defines the expected JSON structure for creating a customer
type CreateCustomerInput struct {
	Name          string  `json:"name" binding:"required"`
	Phone         string  `json:"phone" binding:"required"`
	Email         *string `json:"email"`
	BillingStreet string  `json:"billingStreet"`
	BillingCity   string  `json:"billingCity"`
	BillingState  string  `json:"billingState"`
	BillingZip    string  `json:"billingZip"`
	Notes         string  `json:"notes"`
}

// UpdateCustomerInput defines the expected JSON structure for updating a customer
type UpdateCustomerInput struct {
	Name          *string `json:"name"`
	Phone         *string `json:"phone"`
	Email         *string `json:"email"`
	BillingStreet *string `json:"billingStreet"`
	BillingCity   *string `json:"billingCity"`
	BillingState  *string `json:"billingState"`
	BillingZip    *string `json:"billingZip"`
	Notes         *string `json:"notes"`
	IsActive      *bool   `json:"isActive"`
}

// CreateCustomer creates a new customer for the company
func CreateCustomer(c *gin.Context) {
	companyID, ok := companyIDFromContext(c)
	if !ok {
		return
	}
	userID, ok := userIDFromContext(c)
	if !ok {
		return
	}

	var input CreateCustomerInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	if !utils.ValidatePhone(input.Phone) {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid phone number format")
		return
	}

	// Check if phone already exists for this company
	var existingCustomer models.Customer
	if err := config.DB.Where("company_id = ? AND phone = ?", companyID, input.Phone).
		First(&existingCustomer).Error; err == nil {
		utils.RespondWithError(c, http.StatusConflict, "Customer with this phone number already exists")
		return
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		return
	}

	customer := models.Customer{
		ID:              uuid.New(),
		CompanyID:       companyID,
		CreatedByUserID: userID,
		Name:            input.Name,
		Phone:           input.Phone,
		BillingStreet:   input.BillingStreet,
		BillingCity:     input.BillingCity,
		BillingState:    input.BillingState,
		BillingZip:      input.BillingZip,
		Notes:           input.Notes,
		IsActive:        true,
	}

	if input.Email != nil {
		customer.Email = *input.Email
	}

	if err := config.DB.Create(&customer).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create customer")
		return
	}

	c.JSON(http.StatusCreated, customer)
}

// GetCustomers retrieves all customers for the company
func GetCustomers(c *gin.Context) {
	companyID, ok := companyIDFromContext(c)
	if !ok {
		return
	}

	var customers []models.Customer
	if err := config.DB.Where("company_id = ?", companyID).
		Order("name").Find(&customers).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve customers")
		return
	}

	c.JSON(http.StatusOK, customers)
}

// GetCustomer retrieves a specific customer by ID with their properties
func GetCustomer(c *gin.Context) {
	companyID, ok := companyIDFromContext(c)
	if !ok {
		return
	}
	customerID, ok := idParam(c, "customer")
	if !ok {
		return
	}

	var customer models.Customer
	if err := config.DB.Preload("Properties").
		Where("company_id = ? AND id = ?", companyID, customerID).
		First(&customer).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Customer not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	c.JSON(http.StatusOK, customer)
}

// UpdateCustomer updates an existing customer
func UpdateCustomer(c *gin.Context) {
	companyID, ok := companyIDFromContext(c)
	if !ok {
		return
	}
	customerID, ok := idParam(c, "customer")
	if !ok {
		return
	}

	var input UpdateCustomerInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	var customer models.Customer
	if err := config.DB.Where("company_id = ? AND id = ?", companyID, customerID).
		First(&customer).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Customer not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	if input.Phone != nil && *input.Phone != customer.Phone {
		if !utils.ValidatePhone(*input.Phone) {
			utils.RespondWithError(c, http.StatusBadRequest, "Invalid phone number format")
			return
		}
		var existingCustomer models.Customer
		if err := config.DB.Where("company_id = ? AND phone = ?", companyID, *input.Phone).
			First(&existingCustomer).Error; err == nil {
			utils.RespondWithError(c, http.StatusConflict, "Customer with this phone number already exists")
			return
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
			return
		}
		customer.Phone = *input.Phone
	}

	if input.Name != nil {
		customer.Name = *input.Name
	}
	if input.Email != nil {
		customer.Email = *input.Email
	}
	if input.BillingStreet != nil {
		customer.BillingStreet = *input.BillingStreet
	}
	if input.BillingCity != nil {
		customer.BillingCity = *input.BillingCity
	}
	if input.BillingState != nil {
		customer.BillingState = *input.BillingState
	}
	if input.BillingZip != nil {
		customer.BillingZip = *input.BillingZip
	}
	if input.Notes != nil {
		customer.Notes = *input.Notes
	}
	if input.IsActive != nil {
		customer.IsActive = *input.IsActive
	}

	if err := config.DB.Save(&customer).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update customer")
		return
	}

	c.JSON(http.StatusOK, customer)
}

// DeleteCustomer soft deletes a customer
func DeleteCustomer(c *gin.Context) {
	companyID, ok := companyIDFromContext(c)
	if !ok {
		return
	}
	customerID, ok := idParam(c, "customer")
	if !ok {
		return
	}

	result := config.DB.Where("company_id = ? AND id = ?", companyID, customerID).
		Delete(&models.Customer{})

	if result.Error != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to delete customer")
		return
	}
	if result.RowsAffected == 0 {
		utils.RespondWithError(c, http.StatusNotFound, "Customer not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Customer deleted successfully"})
}
