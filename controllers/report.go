// controllers/report.go
package controllers

import (
	"net/http"
	"time"

	"lawnops-backend/config"
	"lawnops-backend/models"
	"lawnops-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// ReportController handles all reporting functions
type ReportController struct{}

// AnalyticsSummary represents the analytics data
type AnalyticsSummary struct {
	CurrentMonthRevenue   float64              `json:"currentMonthRevenue"`
	MonthGrowth           float64              `json:"monthGrowth"`
	CurrentQuarterRevenue float64              `json:"currentQuarterRevenue"`
	QuarterGrowth         float64              `json:"quarterGrowth"`
	CurrentYearRevenue    float64              `json:"currentYearRevenue"`
	YearGrowth            float64              `json:"yearGrowth"`
	TopServiceTypes       []ServiceTypeSummary `json:"topServiceTypes"`
	TopCustomers          []CustomerSummary    `json:"topCustomers"`
	QuickStats            QuickStatistics      `json:"quickStats"`
}

type ServiceTypeSummary struct {
	Label   string  `json:"label"`
	Count   int     `json:"count"`
	Revenue float64 `json:"revenue"`
}

type CustomerSummary struct {
	Name   string  `json:"name"`
	Visits int     `json:"visits"`
	Spent  float64 `json:"spent"`
}

type QuickStatistics struct {
	TotalCustomers  int     `json:"totalCustomers"`
	TotalInvoices   int     `json:"totalInvoices"`
	CompletedVisits int     `json:"completedVisits"`
	AvgInvoiceValue float64 `json:"avgInvoiceValue"`
}

// GetReportAnalytics returns the revenue and activity summary
func (rc *ReportController) GetReportAnalytics(c *gin.Context) {
	companyID, ok := companyIDFromContext(c)
	if !ok {
		return
	}

	now := time.Now()
	currentYear, currentMonth, _ := now.Date()
	currentLocation := now.Location()

	// All ranges are half-open [start, end) so invoices stamped late on the
	// final day still count, same as the dashboard and schedule windows.
	monthStart := time.Date(currentYear, currentMonth, 1, 0, 0, 0, 0, currentLocation)
	monthEnd := monthStart.AddDate(0, 1, 0)

	currentMonthRevenue, err := rc.getRevenue(companyID, monthStart, monthEnd)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to get monthly revenue")
		return
	}

	lastMonthRevenue, err := rc.getRevenue(companyID,
		monthStart.AddDate(0, -1, 0),
		monthStart)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to get last month revenue")
		return
	}

	quarterStart := rc.getQuarterStart(now)
	currentQuarterRevenue, err := rc.getRevenue(companyID,
		quarterStart,
		quarterStart.AddDate(0, 3, 0))
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to get quarterly revenue")
		return
	}

	lastQuarterRevenue, err := rc.getRevenue(companyID,
		quarterStart.AddDate(0, -3, 0),
		quarterStart)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to get last quarter revenue")
		return
	}

	yearStart := time.Date(currentYear, 1, 1, 0, 0, 0, 0, currentLocation)
	currentYearRevenue, err := rc.getRevenue(companyID, yearStart, yearStart.AddDate(1, 0, 0))
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to get yearly revenue")
		return
	}

	lastYearRevenue, err := rc.getRevenue(companyID,
		yearStart.AddDate(-1, 0, 0),
		yearStart)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to get last year revenue")
		return
	}

	topServiceTypes, err := rc.getTopServiceTypes(companyID, monthStart, monthEnd, 4)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to get top service types")
		return
	}

	topCustomers, err := rc.getTopCustomers(companyID, monthStart, monthEnd, 4)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to get top customers")
		return
	}

	quickStats, err := rc.getQuickStatistics(companyID)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to get quick statistics")
		return
	}

	summary := AnalyticsSummary{
		CurrentMonthRevenue:   currentMonthRevenue,
		MonthGrowth:           rc.calculateGrowthPercentage(currentMonthRevenue, lastMonthRevenue),
		CurrentQuarterRevenue: currentQuarterRevenue,
		QuarterGrowth:         rc.calculateGrowthPercentage(currentQuarterRevenue, lastQuarterRevenue),
		CurrentYearRevenue:    currentYearRevenue,
		YearGrowth:            rc.calculateGrowthPercentage(currentYearRevenue, lastYearRevenue),
		TopServiceTypes:       topServiceTypes,
		TopCustomers:          topCustomers,
		QuickStats:            quickStats,
	}

	c.JSON(http.StatusOK, summary)
}

// Helper functions for reports

func (rc *ReportController) getRevenue(companyID uuid.UUID, start, end time.Time) (float64, error) {
	var total float64
	err := config.DB.Model(&models.Invoice{}).
		Where("company_id = ? AND invoice_date >= ? AND invoice_date < ?", companyID, start, end).
		Select("COALESCE(SUM(total), 0)").
		Scan(&total).Error
	return total, err
}

func (rc *ReportController) getQuarterStart(date time.Time) time.Time {
	quarter := (int(date.Month())-1)/3 + 1
	startMonth := time.Month((quarter-1)*3 + 1)
	return time.Date(date.Year(), startMonth, 1, 0, 0, 0, 0, date.Location())
}

func (rc *ReportController) calculateGrowthPercentage(current, previous float64) float64 {
	if previous == 0 {
		if current == 0 {
			return 0
		}
		return 100
	}
	return ((current - previous) / previous) * 100
}

func (rc *ReportController) getTopServiceTypes(companyID uuid.UUID, start, end time.Time, limit int) ([]ServiceTypeSummary, error) {
	var serviceTypes []ServiceTypeSummary

	err := config.DB.Table("invoice_items").
		Select("service_types.label, SUM(invoice_items.quantity) as count, SUM(invoice_items.total) as revenue").
		Joins("JOIN invoices ON invoices.id = invoice_items.invoice_id").
		Joins("JOIN service_schedules ON service_schedules.id = invoice_items.service_schedule_id").
		Joins("JOIN service_types ON service_types.id = service_schedules.service_type_id").
		Where("invoices.company_id = ? AND invoices.invoice_date >= ? AND invoices.invoice_date < ? AND invoices.deleted_at IS NULL", companyID, start, end).
		Group("service_types.label").
		Order("revenue DESC").
		Limit(limit).
		Scan(&serviceTypes).Error

	return serviceTypes, err
}

func (rc *ReportController) getTopCustomers(companyID uuid.UUID, start, end time.Time, limit int) ([]CustomerSummary, error) {
	var customers []CustomerSummary

	err := config.DB.Table("invoices").
		Select("customers.name, COUNT(invoices.id) as visits, SUM(invoices.total) as spent").
		Joins("JOIN customers ON customers.id = invoices.customer_id").
		Where("invoices.company_id = ? AND invoices.invoice_date >= ? AND invoices.invoice_date < ? AND invoices.deleted_at IS NULL AND customers.deleted_at IS NULL", companyID, start, end).
		Group("customers.name").
		Order("spent DESC").
		Limit(limit).
		Scan(&customers).Error

	return customers, err
}

func (rc *ReportController) getQuickStatistics(companyID uuid.UUID) (QuickStatistics, error) {
	var stats QuickStatistics

	var totalCustomers int64
	if err := config.DB.Model(&models.Customer{}).
		Where("company_id = ?", companyID).
		Count(&totalCustomers).Error; err != nil {
		return stats, err
	}
	stats.TotalCustomers = int(totalCustomers)

	var totalInvoices int64
	if err := config.DB.Model(&models.Invoice{}).
		Where("company_id = ?", companyID).
		Count(&totalInvoices).Error; err != nil {
		return stats, err
	}
	stats.TotalInvoices = int(totalInvoices)

	var completedVisits int64
	if err := config.DB.Model(&models.ServiceSchedule{}).
		Where("company_id = ? AND status = ?", companyID, models.ScheduleStatusCompleted).
		Count(&completedVisits).Error; err != nil {
		return stats, err
	}
	stats.CompletedVisits = int(completedVisits)

	var totalRevenue float64
	if err := config.DB.Model(&models.Invoice{}).
		Where("company_id = ?", companyID).
		Select("COALESCE(SUM(total), 0)").
		Scan(&totalRevenue).Error; err != nil {
		return stats, err
	}

	if stats.TotalInvoices > 0 {
		stats.AvgInvoiceValue = totalRevenue / float64(stats.TotalInvoices)
	}

	return stats, nil
}
