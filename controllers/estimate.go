package controllers

import (
	"errors"
	"net/http"
	"time"

	"lawnops-backend/config"
	"lawnops-backend/models"
	"lawnops-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type EstimateItemInput struct {
	ServiceTypeID *uuid.UUID `json:"serviceTypeId"`
	Description   string     `json:"description" binding:"required"`
	Quantity      int        `json:"quantity" binding:"min=1"`
	UnitPrice     float64    `json:"unitPrice" binding:"min=0"`
}

type CreateEstimateInput struct {
	CustomerID uuid.UUID           `json:"customerId" binding:"required"`
	PropertyID *uuid.UUID          `json:"propertyId"`
	ExpiryDate *time.Time          `json:"expiryDate"`
	Items      []EstimateItemInput `json:"items" binding:"required,min=1"`
	Notes      string              `json:"notes"`
}

type UpdateEstimateStatusInput struct {
	Status string `json:"status" binding:"required,oneof=draft sent approved declined"`
}

// CreateEstimate quotes work for a customer
func CreateEstimate(c *gin.Context) {
	companyID, ok := companyIDFromContext(c)
	if !ok {
		return
	}

	var input CreateEstimateInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

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

	var rate float64
	var tax models.TaxConfiguration
	if err := config.DB.Where("company_id = ? AND is_default = ?", companyID, true).
		First(&tax).Error; err == nil {
		rate = tax.Rate
	}

	var subtotal float64
	var items []models.EstimateItem
	for _, item := range input.Items {
		amount := item.UnitPrice * float64(item.Quantity)
		subtotal += amount
		items = append(items, models.EstimateItem{
			ID:            uuid.New(),
			ServiceTypeID: item.ServiceTypeID,
			Description:   item.Description,
			Quantity:      item.Quantity,
			UnitPrice:     item.UnitPrice,
			Amount:        amount,
			TaxAmount:     amount * rate,
			Total:         amount * (1 + rate),
		})
	}

	estimate := models.Estimate{
		ID:             uuid.New(),
		CompanyID:      companyID,
		CustomerID:     input.CustomerID,
		PropertyID:     input.PropertyID,
		EstimateNumber: "EST-" + time.Now().Format("20060102") + "-" + utils.GenerateRandomString(6),
		EstimateDate:   time.Now(),
		ExpiryDate:     input.ExpiryDate,
		Subtotal:       subtotal,
		TaxAmount:      subtotal * rate,
		Total:          subtotal * (1 + rate),
		Status:         models.EstimateStatusDraft,
		Notes:          input.Notes,
		Items:          items,
	}

	if err := config.DB.Create(&estimate).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create estimate")
		return
	}

	c.JSON(http.StatusCreated, estimate)
}

func GetEstimates(c *gin.Context) {
	companyID, ok := companyIDFromContext(c)
	if !ok {
		return
	}

	query := config.DB.Preload("Items").Preload("Customer").
		Where("company_id = ?", companyID)
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	var estimates []models.Estimate
	if err := query.Order("estimate_date DESC").Find(&estimates).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve estimates")
		return
	}

	c.JSON(http.StatusOK, estimates)
}

func GetEstimate(c *gin.Context) {
	companyID, ok := companyIDFromContext(c)
	if !ok {
		return
	}
	estimateID, ok := idParam(c, "estimate")
	if !ok {
		return
	}

	var estimate models.Estimate
	if err := config.DB.Preload("Items").Preload("Customer").
		Where("company_id = ? AND id = ?", companyID, estimateID).
		First(&estimate).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Estimate not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	c.JSON(http.StatusOK, estimate)
}

// UpdateEstimateStatus moves an estimate through draft/sent/approved/declined
func UpdateEstimateStatus(c *gin.Context) {
	companyID, ok := companyIDFromContext(c)
	if !ok {
		return
	}
	estimateID, ok := idParam(c, "estimate")
	if !ok {
		return
	}

	var input UpdateEstimateStatusInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	result := config.DB.Model(&models.Estimate{}).
		Where("company_id = ? AND id = ?", companyID, estimateID).
		Update("status", input.Status)

	if result.Error != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update estimate")
		return
	}
	if result.RowsAffected == 0 {
		utils.RespondWithError(c, http.StatusNotFound, "Estimate not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Estimate status updated", "status": input.Status})
}

func DeleteEstimate(c *gin.Context) {
	companyID, ok := companyIDFromContext(c)
	if !ok {
		return
	}
	estimateID, ok := idParam(c, "estimate")
	if !ok {
		return
	}

	err := config.DB.Transaction(func(tx *gorm.DB) error {
		var estimate models.Estimate
		if err := tx.Where("company_id = ? AND id = ?", companyID, estimateID).
			First(&estimate).Error; err != nil {
			return err
		}

		if err := tx.Where("estimate_id = ?", estimate.ID).
			Delete(&models.EstimateItem{}).Error; err != nil {
			return err
		}
		return tx.Delete(&estimate).Error
	})

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Estimate not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Failed to delete estimate")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Estimate deleted successfully"})
}
