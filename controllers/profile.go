package controllers

import (
	"net/http"

	"lawnops-backend/config"
	"lawnops-backend/models"
	"lawnops-backend/utils"

	"github.com/gin-gonic/gin"
)

type UpdateProfileInput struct {
	CompanyName    string `json:"companyName"`
	CompanyAddress string `json:"companyAddress"`
	CompanyPhone   string `json:"companyPhone"`
	CompanyEmail   string `json:"companyEmail"`
}

func GetProfile(c *gin.Context) {
	userID, ok := userIDFromContext(c)
	if !ok {
		return
	}

	var user models.User
	if err := config.DB.First(&user, "id = ?", userID).Error; err != nil {
		utils.RespondWithError(c, http.StatusNotFound, "User not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"companyName":      user.CompanyName,
		"companyAddress":   user.CompanyAddress,
		"companyPhone":     user.CompanyPhone,
		"companyEmail":     user.CompanyEmail,
		"visitReminders":   user.VisitReminders,
		"invoiceEmails":    user.InvoiceEmails,
		"smsNotifications": user.SMSNotifications,
	})
}

func UpdateProfile(c *gin.Context) {
	userID, ok := userIDFromContext(c)
	if !ok {
		return
	}

	var input UpdateProfileInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input")
		return
	}

	var user models.User
	if err := config.DB.First(&user, "id = ?", userID).Error; err != nil {
		utils.RespondWithError(c, http.StatusNotFound, "User not found")
		return
	}

	user.CompanyName = input.CompanyName
	user.CompanyAddress = input.CompanyAddress
	user.CompanyPhone = input.CompanyPhone
	user.CompanyEmail = input.CompanyEmail

	if err := config.DB.Save(&user).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update profile")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Profile updated"})
}

func UpdateNotificationSettings(c *gin.Context) {
	userID, ok := userIDFromContext(c)
	if !ok {
		return
	}

	var input struct {
		VisitReminders   bool `json:"visitReminders"`
		InvoiceEmails    bool `json:"invoiceEmails"`
		SMSNotifications bool `json:"smsNotifications"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input")
		return
	}

	if err := config.DB.Model(&models.User{}).Where("id = ?", userID).
		Updates(map[string]interface{}{
			"visit_reminders":   input.VisitReminders,
			"invoice_emails":    input.InvoiceEmails,
			"sms_notifications": input.SMSNotifications,
		}).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update notification settings")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Notification settings updated"})
}
