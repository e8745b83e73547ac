package controllers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/restaurant-reservation/floor"
	"github.com/yeremiapane/restaurant-reservation/lifecycle"
	"github.com/yeremiapane/restaurant-reservation/models"
	"github.com/yeremiapane/restaurant-reservation/utils"
	"gorm.io/gorm"
)

type AdminController struct {
	DB *gorm.DB
}

func NewAdminController(db *gorm.DB) *AdminController {
	return &AdminController{DB: db}
}

// GetDashboardStats mengambil statistik lantai dan reservasi untuk dashboard
func (ac *AdminController) GetDashboardStats(c *gin.Context) {
	roleInterface, exists := c.Get("role")
	if !exists {
		utils.RespondError(c, http.StatusUnauthorized, errors.New("no role found"))
		return
	}

	role, ok := roleInterface.(string)
	if !ok || role != "admin" {
		utils.RespondError(c, http.StatusUnauthorized, errors.New("unauthorized access"))
		return
	}

	restaurantID := c.GetUint("restaurant_id")
	today := time.Now().Format("2006-01-02")

	var stats struct {
		TotalBookings int64 `json:"total_bookings"`
		TodayBookings int64 `json:"today_bookings"`
		TodayCovers   int64 `json:"today_covers"`
		BookingStats  struct {
			Pending   int64 `json:"pending"`
			Confirmed int64 `json:"confirmed"`
			Arriving  int64 `json:"arriving"`
			Seated    int64 `json:"seated"`
			Completed int64 `json:"completed"`
			Cancelled int64 `json:"cancelled"`
			NoShow    int64 `json:"no_show"`
		} `json:"booking_stats"`
		TableStats struct {
			Available   int64 `json:"available"`
			Reserved    int64 `json:"reserved"`
			Occupied    int64 `json:"occupied"`
			Cleaning    int64 `json:"cleaning"`
			Maintenance int64 `json:"maintenance"`
		} `json:"table_stats"`
		UrgencyStats struct {
			Urgent int64 `json:"urgent"`
			Soon   int64 `json:"soon"`
			Later  int64 `json:"later"`
		} `json:"urgency_stats"`
	}

	bookings := func() *gorm.DB {
		return ac.DB.Model(&models.Booking{}).Where("restaurant_id = ?", restaurantID)
	}
	tables := func() *gorm.DB {
		return ac.DB.Model(&models.Table{}).Where("restaurant_id = ?", restaurantID)
	}

	bookings().Count(&stats.TotalBookings)
	bookings().Where("booking_date = ?", today).Count(&stats.TodayBookings)
	bookings().Where("booking_date = ? AND status NOT IN ?", today,
		[]models.BookingStatus{models.BookingCancelled, models.BookingNoShow}).
		Select("COALESCE(SUM(guest_count), 0)").Row().Scan(&stats.TodayCovers)

	bookings().Where("status = ?", models.BookingPending).Count(&stats.BookingStats.Pending)
	bookings().Where("status = ?", models.BookingConfirmed).Count(&stats.BookingStats.Confirmed)
	bookings().Where("status = ?", models.BookingArriving).Count(&stats.BookingStats.Arriving)
	bookings().Where("status = ?", models.BookingSeated).Count(&stats.BookingStats.Seated)
	bookings().Where("status = ?", models.BookingCompleted).Count(&stats.BookingStats.Completed)
	bookings().Where("status = ?", models.BookingCancelled).Count(&stats.BookingStats.Cancelled)
	bookings().Where("status = ?", models.BookingNoShow).Count(&stats.BookingStats.NoShow)

	tables().Where("status = ?", models.TableAvailable).Count(&stats.TableStats.Available)
	tables().Where("status = ?", models.TableReserved).Count(&stats.TableStats.Reserved)
	tables().Where("status = ?", models.TableOccupied).Count(&stats.TableStats.Occupied)
	tables().Where("status = ?", models.TableCleaning).Count(&stats.TableStats.Cleaning)
	tables().Where("status = ?", models.TableMaintenance).Count(&stats.TableStats.Maintenance)

	// Breakdown urgency dihitung dari ETA booking yang sedang inbound
	var inbound []models.Booking
	ac.DB.Where("restaurant_id = ? AND status IN ? AND eta_minutes IS NOT NULL",
		restaurantID,
		[]models.BookingStatus{models.BookingConfirmed, models.BookingArriving}).
		Find(&inbound)
	for _, b := range inbound {
		switch lifecycle.ClassifyUrgency(*b.ETAMinutes) {
		case lifecycle.UrgencyUrgent:
			stats.UrgencyStats.Urgent++
		case lifecycle.UrgencySoon:
			stats.UrgencyStats.Soon++
		default:
			stats.UrgencyStats.Later++
		}
	}

	floor.BroadcastFloorUpdate(stats)

	utils.RespondJSON(c, http.StatusOK, "Dashboard stats retrieved successfully", gin.H{
		"data": stats,
	})
}

// GetBookingFlow -> distribusi booking per jam untuk hari ini (monitor lantai)
func (ac *AdminController) GetBookingFlow(c *gin.Context) {
	roleInterface, _ := c.Get("role")
	if roleInterface != "admin" {
		utils.RespondError(c, http.StatusForbidden, ErrNoPermission)
		return
	}

	restaurantID := c.GetUint("restaurant_id")
	today := time.Now().Format("2006-01-02")

	var flow []struct {
		TimeSlot string `json:"time_slot"`
		Count    int64  `json:"count"`
		Covers   int64  `json:"covers"`
	}

	ac.DB.Model(&models.Booking{}).
		Where("restaurant_id = ? AND booking_date = ? AND status NOT IN ?",
			restaurantID, today,
			[]models.BookingStatus{models.BookingCancelled, models.BookingNoShow}).
		Select("time_slot, COUNT(*) as count, COALESCE(SUM(guest_count), 0) as covers").
		Group("time_slot").
		Order("time_slot asc").
		Scan(&flow)

	utils.RespondJSON(c, http.StatusOK, "Booking flow", flow)
}
