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

type CreateCrewInput struct {
	Name  string `json:"name" binding:"required"`
	Color string `json:"color"`
}

type UpdateCrewInput struct {
	Name     *string `json:"name"`
	Color    *string `json:"color"`
	IsActive *bool   `json:"isActive"`
}

func CreateCrew(c *gin.Context) {
	companyID, ok := companyIDFromContext(c)
	if !ok {
		return
	}

	var input CreateCrewInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	crew := models.Crew{
		ID:        uuid.New(),
		CompanyID: companyID,
		Name:      input.Name,
		IsActive:  true,
	}
	if input.Color != "" {
		crew.Color = input.Color
	}

	if err := config.DB.Create(&crew).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create crew")
		return
	}

	c.JSON(http.StatusCreated, crew)
}

func GetCrews(c *gin.Context) {
	companyID, ok := companyIDFromContext(c)
	if !ok {
		return
	}

	var crews []models.Crew
	if err := config.DB.Preload("Technicians").
		Where("company_id = ?", companyID).
		Order("name").Find(&crews).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve crews")
		return
	}

	c.JSON(http.StatusOK, crews)
}

func GetCrew(c *gin.Context) {
	companyID, ok := companyIDFromContext(c)
	if !ok {
		return
	}
	crewID, ok := idParam(c, "crew")
	if !ok {
		return
	}

	var crew models.Crew
	if err := config.DB.Preload("Technicians").
		Where("company_id = ? AND id = ?", companyID, crewID).
		First(&crew).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Crew not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	c.JSON(http.StatusOK, crew)
}

func UpdateCrew(c *gin.Context) {
	companyID, ok := companyIDFromContext(c)
	if !ok {
		return
	}
	crewID, ok := idParam(c, "crew")
	if !ok {
		return
	}

	var input UpdateCrewInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	var crew models.Crew
	if err := config.DB.Where("company_id = ? AND id = ?", companyID, crewID).
		First(&crew).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Crew not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	if input.Name != nil {
		crew.Name = *input.Name
	}
	if input.Color != nil {
		crew.Color = *input.Color
	}
	if input.IsActive != nil {
		crew.IsActive = *input.IsActive
	}

	if err := config.DB.Save(&crew).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update crew")
		return
	}

	c.JSON(http.StatusOK, crew)
}

func DeleteCrew(c *gin.Context) {
	companyID, ok := companyIDFromContext(c)
	if !ok {
		return
	}
	crewID, ok := idParam(c, "crew")
	if !ok {
		return
	}

	// Unassign technicians before removing the crew
	err := config.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Technician{}).
			Where("company_id = ? AND crew_id = ?", companyID, crewID).
			Update("crew_id", nil).Error; err != nil {
			return err
		}

		result := tx.Where("company_id = ? AND id = ?", companyID, crewID).
			Delete(&models.Crew{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Crew not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Failed to delete crew")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Crew deleted successfully"})
}
