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

type CreateTechnicianInput struct {
	Name   string     `json:"name" binding:"required"`
	Phone  string     `json:"phone"`
	Email  string     `json:"email"`
	CrewID *uuid.UUID `json:"crewId"`
}

type UpdateTechnicianInput struct {
	Name     *string    `json:"name"`
	Phone    *string    `json:"phone"`
	Email    *string    `json:"email"`
	CrewID   *uuid.UUID `json:"crewId"`
	IsActive *bool      `json:"isActive"`
}

func CreateTechnician(c *gin.Context) {
	companyID, ok := companyIDFromContext(c)
	if !ok {
		return
	}

	var input CreateTechnicianInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	if input.CrewID != nil {
		var crew models.Crew
		if err := config.DB.Where("company_id = ? AND id = ?", companyID, *input.CrewID).
			First(&crew).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				utils.RespondWithError(c, http.StatusBadRequest, "Crew not found")
			} else {
				utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
			}
			return
		}
	}

	technician := models.Technician{
		ID:        uuid.New(),
		CompanyID: companyID,
		CrewID:    input.CrewID,
		Name:      input.Name,
		Phone:     input.Phone,
		Email:     input.Email,
		IsActive:  true,
	}

	if err := config.DB.Create(&technician).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create technician")
		return
	}

	c.JSON(http.StatusCreated, technician)
}

func GetTechnicians(c *gin.Context) {
	companyID, ok := companyIDFromContext(c)
	if !ok {
		return
	}

	query := config.DB.Where("company_id = ?", companyID)
	if crewID := c.Query("crewId"); crewID != "" {
		id, err := uuid.Parse(crewID)
		if err != nil {
			utils.RespondWithError(c, http.StatusBadRequest, "Invalid crew ID format")
			return
		}
		query = query.Where("crew_id = ?", id)
	}

	var technicians []models.Technician
	if err := query.Order("name").Find(&technicians).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve technicians")
		return
	}

	c.JSON(http.StatusOK, technicians)
}

func UpdateTechnician(c *gin.Context) {
	companyID, ok := companyIDFromContext(c)
	if !ok {
		return
	}
	technicianID, ok := idParam(c, "technician")
	if !ok {
		return
	}

	var input UpdateTechnicianInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	var technician models.Technician
	if err := config.DB.Where("company_id = ? AND id = ?", companyID, technicianID).
		First(&technician).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Technician not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	if input.CrewID != nil {
		var crew models.Crew
		if err := config.DB.Where("company_id = ? AND id = ?", companyID, *input.CrewID).
			First(&crew).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				utils.RespondWithError(c, http.StatusBadRequest, "Crew not found")
			} else {
				utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
			}
			return
		}
		technician.CrewID = input.CrewID
	}

	if input.Name != nil {
		technician.Name = *input.Name
	}
	if input.Phone != nil {
		technician.Phone = *input.Phone
	}
	if input.Email != nil {
		technician.Email = *input.Email
	}
	if input.IsActive != nil {
		technician.IsActive = *input.IsActive
	}

	if err := config.DB.Save(&technician).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update technician")
		return
	}

	c.JSON(http.StatusOK, technician)
}

func DeleteTechnician(c *gin.Context) {
	companyID, ok := companyIDFromContext(c)
	if !ok {
		return
	}
	technicianID, ok := idParam(c, "technician")
	if !ok {
		return
	}

	result := config.DB.Where("company_id = ? AND id = ?", companyID, technicianID).
		Delete(&models.Technician{})

	if result.Error != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to delete technician")
		return
	}
	if result.RowsAffected == 0 {
		utils.RespondWithError(c, http.StatusNotFound, "Technician not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Technician deleted successfully"})
}
