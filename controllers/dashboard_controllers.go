package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/hotel-reservation/models"
	"github.com/yeremiapane/hotel-reservation/utils"
	"gorm.io/gorm"
)

type DashboardController struct {
	DB *gorm.DB
}

func NewDashboardController(db *gorm.DB) *DashboardController {
	return &DashboardController{DB: db}
}

type DashboardStats struct {
	TotalRooms           int64                              `json:"total_rooms"`
	AvailableRooms       int64                              `json:"available_rooms"`
	OccupiedRooms        int64                              `json:"occupied_rooms"`
	TotalCustomers       int64                              `json:"total_customers"`
	TotalReservations    int64                              `json:"total_reservations"`
	ReservationsByStatus map[models.ReservationStatus]int64 `json:"reservations_by_status"`
	ConfirmedRevenue     float64                            `json:"confirmed_revenue"`
}

// GetStats -> counters for the front desk dashboard
func (dc *DashboardController) GetStats(c *gin.Context) {
	stats, err := dc.collect(c)
	if err != nil {
		utils.ErrorLogger.Printf("Failed to collect dashboard stats: %v", err)
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Dashboard stats", stats)
}

func (dc *DashboardController) collect(c *gin.Context) (*DashboardStats, error) {
	db := dc.DB.WithContext(c.Request.Context())
	stats := &DashboardStats{
		ReservationsByStatus: map[models.ReservationStatus]int64{
			models.StatusConfirmed: 0,
			models.StatusCancelled: 0,
			models.StatusCompleted: 0,
		},
	}

	if err := db.Model(&models.Room{}).Count(&stats.TotalRooms).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&models.Room{}).Where("available = ?", true).Count(&stats.AvailableRooms).Error; err != nil {
		return nil, err
	}
	stats.OccupiedRooms = stats.TotalRooms - stats.AvailableRooms

	if err := db.Model(&models.Customer{}).Count(&stats.TotalCustomers).Error; err != nil {
		return nil, err
	}

	var rows []struct {
		Status models.ReservationStatus
		Total  int64
	}
	if err := db.Model(&models.Reservation{}).
		Select("status, COUNT(*) AS total").
		Group("status").
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	for _, row := range rows {
		stats.ReservationsByStatus[row.Status] = row.Total
		stats.TotalReservations += row.Total
	}

	if err := db.Model(&models.Reservation{}).
		Where("status = ?", models.StatusConfirmed).
		Select("COALESCE(SUM(total_price), 0)").
		Scan(&stats.ConfirmedRevenue).Error; err != nil {
		return nil, err
	}

	return stats, nil
}
