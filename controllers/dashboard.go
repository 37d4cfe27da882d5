package controllers

import (
	"net/http"
	"time"

	"lawnops-backend/config"
	"lawnops-backend/models"
	"lawnops-backend/utils"

	"github.com/gin-gonic/gin"
)

type TodayVisit struct {
	ScheduleID  string `json:"scheduleId"`
	Customer    string `json:"customer"`
	Property    string `json:"property"`
	ServiceType string `json:"serviceType"`
	TimeWindow  string `json:"timeWindow"`
	Status      string `json:"status"`
}

type UpcomingVisit struct {
	Customer    string `json:"customer"`
	Property    string `json:"property"`
	ServiceType string `json:"serviceType"`
	Date        string `json:"date"` // "Today", "Tomorrow", "3 days"
}

func GetDashboardOverview(c *gin.Context) {
	companyID, ok := companyIDFromContext(c)
	if !ok {
		return
	}

	now := time.Now()
	todayStart := utils.BeginningOfDay(now)
	todayEnd := todayStart.AddDate(0, 0, 1)
	firstOfMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())

	// Total customers
	var totalCustomers int64
	config.DB.Model(&models.Customer{}).
		Where("company_id = ? AND is_active = ?", companyID, true).
		Count(&totalCustomers)

	// Month-to-date revenue
	var monthlyRevenue float64
	config.DB.Model(&models.Invoice{}).
		Where("company_id = ? AND invoice_date >= ?", companyID, firstOfMonth).
		Select("COALESCE(SUM(total), 0)").Scan(&monthlyRevenue)

	// Draft invoices waiting to be sent
	var pendingInvoices int64
	config.DB.Model(&models.Invoice{}).
		Where("company_id = ? AND status = ?", companyID, models.InvoiceStatusDraft).
		Count(&pendingInvoices)

	// Today's visits
	var todaySchedules []models.ServiceSchedule
	config.DB.Preload("Property").Preload("Property.Customer").Preload("ServiceType").
		Where("company_id = ? AND scheduled_date >= ? AND scheduled_date < ?",
			companyID, todayStart, todayEnd).
		Order("time_window").
		Find(&todaySchedules)

	todayVisits := make([]TodayVisit, 0, len(todaySchedules))
	for _, s := range todaySchedules {
		todayVisits = append(todayVisits, TodayVisit{
			ScheduleID:  s.ID.String(),
			Customer:    s.Property.Customer.Name,
			Property:    s.Property.Street,
			ServiceType: s.ServiceType.Label,
			TimeWindow:  s.TimeWindow,
			Status:      s.Status,
		})
	}

	// Visits over the next 7 days
	var upcomingSchedules []models.ServiceSchedule
	config.DB.Preload("Property").Preload("Property.Customer").Preload("ServiceType").
		Where("company_id = ? AND scheduled_date >= ? AND scheduled_date < ? AND status IN ?",
			companyID, todayEnd, todayEnd.AddDate(0, 0, 7),
			[]string{models.ScheduleStatusPending, models.ScheduleStatusInProgress}).
		Order("scheduled_date").
		Limit(10).
		Find(&upcomingSchedules)

	upcomingVisits := make([]UpcomingVisit, 0, len(upcomingSchedules))
	for _, s := range upcomingSchedules {
		daysUntil := utils.DaysBetween(todayStart, s.ScheduledDate)
		var label string
		switch daysUntil {
		case 0:
			label = "Today"
		case 1:
			label = "Tomorrow"
		default:
			label = s.ScheduledDate.Format("Mon, Jan 2")
		}
		upcomingVisits = append(upcomingVisits, UpcomingVisit{
			Customer:    s.Property.Customer.Name,
			Property:    s.Property.Street,
			ServiceType: s.ServiceType.Label,
			Date:        label,
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"totalCustomers":  totalCustomers,
		"monthlyRevenue":  monthlyRevenue,
		"pendingInvoices": pendingInvoices,
		"todayVisits":     todayVisits,
		"upcomingVisits":  upcomingVisits,
	})
}
