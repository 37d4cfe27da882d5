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

type CreateTaxConfigurationInput struct {
	Name      string  `json:"name" binding:"required"`
	Rate      float64 `json:"rate" binding:"min=0,max=1"`
	IsDefault bool    `json:"isDefault"`
}

type UpdateTaxConfigurationInput struct {
	Name      *string  `json:"name"`
	Rate      *float64 `json:"rate" binding:"omitempty,min=0,max=1"`
	IsDefault *bool    `json:"isDefault"`
}

// CreateTaxConfiguration adds a tax rate. Marking it default clears the flag
// on every other rate in the same transaction, keeping at most one default.
func CreateTaxConfiguration(c *gin.Context) {
	companyID, ok := companyIDFromContext(c)
	if !ok {
		return
	}

	var input CreateTaxConfigurationInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	tax := models.TaxConfiguration{
		ID:        uuid.New(),
		CompanyID: companyID,
		Name:      input.Name,
		Rate:      input.Rate,
		IsDefault: input.IsDefault,
	}

	err := config.DB.Transaction(func(tx *gorm.DB) error {
		if input.IsDefault {
			if err := tx.Model(&models.TaxConfiguration{}).
				Where("company_id = ?", companyID).
				Update("is_default", false).Error; err != nil {
				return err
			}
		}
		return tx.Create(&tax).Error
	})

	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create tax configuration")
		return
	}

	c.JSON(http.StatusCreated, tax)
}

func GetTaxConfigurations(c *gin.Context) {
	companyID, ok := companyIDFromContext(c)
	if !ok {
		return
	}

	var taxes []models.TaxConfiguration
	if err := config.DB.Where("company_id = ?", companyID).
		Order("name").Find(&taxes).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve tax configurations")
		return
	}

	c.JSON(http.StatusOK, taxes)
}

func UpdateTaxConfiguration(c *gin.Context) {
	companyID, ok := companyIDFromContext(c)
	if !ok {
		return
	}
	taxID, ok := idParam(c, "tax configuration")
	if !ok {
		return
	}

	var input UpdateTaxConfigurationInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	var tax models.TaxConfiguration
	if err := config.DB.Where("company_id = ? AND id = ?", companyID, taxID).
		First(&tax).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Tax configuration not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	if input.Name != nil {
		tax.Name = *input.Name
	}
	if input.Rate != nil {
		tax.Rate = *input.Rate
	}

	err := config.DB.Transaction(func(tx *gorm.DB) error {
		if input.IsDefault != nil && *input.IsDefault && !tax.IsDefault {
			if err := tx.Model(&models.TaxConfiguration{}).
				Where("company_id = ?", companyID).
				Update("is_default", false).Error; err != nil {
				return err
			}
			tax.IsDefault = true
		} else if input.IsDefault != nil {
			tax.IsDefault = *input.IsDefault
		}
		return tx.Save(&tax).Error
	})

	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update tax configuration")
		return
	}

	c.JSON(http.StatusOK, tax)
}

func DeleteTaxConfiguration(c *gin.Context) {
	companyID, ok := companyIDFromContext(c)
	if !ok {
		return
	}
	taxID, ok := idParam(c, "tax configuration")
	if !ok {
		return
	}

	result := config.DB.Where("company_id = ? AND id = ?", companyID, taxID).
		Delete(&models.TaxConfiguration{})

	if result.Error != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to delete tax configuration")
		return
	}
	if result.RowsAffected == 0 {
		utils.RespondWithError(c, http.StatusNotFound, "Tax configuration not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Tax configuration deleted successfully"})
}
