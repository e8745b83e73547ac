package controllers

import (
	"fmt"
	"net/http"
	"sort"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/yeremiapane/restaurant-reservation/floor"
	"github.com/yeremiapane/restaurant-reservation/lifecycle"
	"github.com/yeremiapane/restaurant-reservation/models"
	"github.com/yeremiapane/restaurant-reservation/services"
	"github.com/yeremiapane/restaurant-reservation/utils"
)

type BookingController struct {
	DB          *gorm.DB
	Coordinator *lifecycle.Coordinator
}

func NewBookingController(db *gorm.DB) *BookingController {
	return &BookingController{
		DB:          db,
		Coordinator: lifecycle.NewCoordinator(db),
	}
}

// BookingView menempelkan tier urgency ke booking untuk tampilan restoran.
// Tier dihitung saat dibaca dari ETA, tidak pernah dipersist.
type BookingView struct {
	models.Booking
	Urgency *lifecycle.UrgencyTier `json:"urgency,omitempty"`
}

// CreateBooking -> customer membuat reservasi baru (status='pending')
func (bc *BookingController) CreateBooking(c *gin.Context) {
	type ItemReq struct {
		ItemName  string  `json:"item_name" binding:"required"`
		Quantity  int     `json:"quantity" binding:"required"`
		UnitPrice float64 `json:"unit_price" binding:"required"`
		Notes     string  `json:"notes"`
	}

	var req struct {
		RestaurantID   uint      `json:"restaurant_id" binding:"required"`
		CustomerID     uint      `json:"customer_id" binding:"required"`
		BookingDate    string    `json:"booking_date" binding:"required"` // YYYY-MM-DD
		TimeSlot       string    `json:"time_slot" binding:"required"`
		GuestCount     int       `json:"guest_count" binding:"required"`
		SpecialRequest string    `json:"special_request"`
		PreOrderItems  []ItemReq `json:"pre_order_items"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var customer models.Customer
	if err := bc.DB.First(&customer, req.CustomerID).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, fmt.Errorf("customer not found"))
		return
	}

	booking := models.Booking{
		RestaurantID:   req.RestaurantID,
		CustomerID:     req.CustomerID,
		BookingDate:    req.BookingDate,
		TimeSlot:       req.TimeSlot,
		GuestCount:     req.GuestCount,
		SpecialRequest: req.SpecialRequest,
		Status:         models.BookingPending,
		CreatedAt:      time.Now(),
		UpdatedAt:      time.Now(),
	}

	if err := bc.DB.Create(&booking).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	// Pre-order opsional: item + quantity + harga satuan, total disimpan di booking
	var total float64
	for _, item := range req.PreOrderItems {
		subTotal := float64(item.Quantity) * item.UnitPrice
		total += subTotal

		preOrder := models.PreOrderItem{
			BookingID: booking.ID,
			ItemName:  item.ItemName,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
			Notes:     item.Notes,
			CreatedAt: time.Now(),
			UpdatedAt: time.Now(),
		}
		bc.DB.Create(&preOrder)
	}

	if total > 0 {
		booking.PreOrderTotal = total
		bc.DB.Save(&booking)
	}

	floor.BroadcastBookingCreate(booking)

	utils.InfoLogger.Printf("New booking created (ID=%d) for customer %d, pre-order %s",
		booking.ID, booking.CustomerID, utils.FormatCurrencyIDR(booking.PreOrderTotal))
	utils.RespondJSON(c, http.StatusCreated, "Booking created", booking)
}

// GetAllBookings -> list booking milik restoran, filter opsional
// ?status= dan ?date=, dianotasi tier urgency untuk prioritas dapur
func (bc *BookingController) GetAllBookings(c *gin.Context) {
	restaurantID := c.GetUint("restaurant_id")

	query := bc.DB.Preload("PreOrderItems").Preload("Customer").
		Where("restaurant_id = ?", restaurantID)

	if status := c.Query("status"); status != "" {
		if !models.BookingStatus(status).Valid() {
			utils.RespondError(c, http.StatusBadRequest, fmt.Errorf("unknown status: %s", status))
			return
		}
		query = query.Where("status = ?", status)
	}
	if date := c.Query("date"); date != "" {
		query = query.Where("booking_date = ?", date)
	}

	var bookings []models.Booking
	if err := query.Order("booking_date asc, time_slot asc").Find(&bookings).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	views := annotateUrgency(bookings)

	utils.RespondJSON(c, http.StatusOK, "List of bookings", views)
}

// GetBookingByID -> detail 1 booking
func (bc *BookingController) GetBookingByID(c *gin.Context) {
	restaurantID := c.GetUint("restaurant_id")
	idStr := c.Param("booking_id")
	id, _ := strconv.Atoi(idStr)

	var booking models.Booking
	if err := bc.DB.Preload("PreOrderItems").Preload("Customer").Preload("Table").
		Where("restaurant_id = ?", restaurantID).
		First(&booking, id).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Booking detail", booking)
}

// GetCustomerBookingHistory -> riwayat reservasi satu customer di restoran ini,
// termasuk status terminal (tidak pernah dihapus)
func (bc *BookingController) GetCustomerBookingHistory(c *gin.Context) {
	restaurantID := c.GetUint("restaurant_id")
	customerID, _ := strconv.Atoi(c.Param("customer_id"))

	var bookings []models.Booking
	if err := bc.DB.Preload("PreOrderItems").
		Where("restaurant_id = ? AND customer_id = ?", restaurantID, customerID).
		Order("created_at desc").
		Find(&bookings).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Customer booking history", bookings)
}

// ConfirmBooking -> pending => confirmed, opsional sekaligus memegang meja
func (bc *BookingController) ConfirmBooking(c *gin.Context) {
	restaurantID := c.GetUint("restaurant_id")
	bookingID, _ := strconv.Atoi(c.Param("booking_id"))

	var req struct {
		TableID *uint `json:"table_id"`
	}
	// Body boleh kosong: confirm tanpa meja itu sah
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			utils.RespondError(c, http.StatusBadRequest, err)
			return
		}
	}

	booking, err := bc.Coordinator.Confirm(c.Request.Context(), restaurantID, uint(bookingID), req.TableID)
	if err != nil {
		respondLifecycleError(c, err)
		return
	}

	bc.afterTransition(booking, "booking.confirmed")

	utils.InfoLogger.Printf("Booking %d confirmed (table=%v)", booking.ID, req.TableID)
	utils.RespondJSON(c, http.StatusOK, "Booking confirmed", booking)
}

// CancelBooking -> cancelled dari status non-terminal mana pun; melepas meja jika dipegang
func (bc *BookingController) CancelBooking(c *gin.Context) {
	restaurantID := c.GetUint("restaurant_id")
	bookingID, _ := strconv.Atoi(c.Param("booking_id"))

	var req struct {
		Reason string `json:"reason"`
	}
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			utils.RespondError(c, http.StatusBadRequest, err)
			return
		}
	}

	booking, err := bc.Coordinator.Cancel(c.Request.Context(), restaurantID, uint(bookingID), req.Reason)
	if err != nil {
		respondLifecycleError(c, err)
		return
	}

	bc.afterTransition(booking, "booking.cancelled")

	utils.InfoLogger.Printf("Booking %d cancelled (reason=%q)", booking.ID, req.Reason)
	utils.RespondJSON(c, http.StatusOK, "Booking cancelled", booking)
}

// UpdateBookingStatus -> arriving / seated / completed / no_show
func (bc *BookingController) UpdateBookingStatus(c *gin.Context) {
	restaurantID := c.GetUint("restaurant_id")
	bookingID, _ := strconv.Atoi(c.Param("booking_id"))

	var req struct {
		Status     string `json:"status" binding:"required"`
		ETAMinutes *int   `json:"eta_minutes"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	next := models.BookingStatus(req.Status)
	switch next {
	case models.BookingArriving, models.BookingSeated, models.BookingCompleted, models.BookingNoShow:
	default:
		utils.RespondError(c, http.StatusBadRequest, fmt.Errorf("status %q cannot be set through this endpoint", req.Status))
		return
	}

	booking, err := bc.Coordinator.UpdateStatus(c.Request.Context(), restaurantID, uint(bookingID), next, req.ETAMinutes)
	if err != nil {
		respondLifecycleError(c, err)
		return
	}

	bc.afterTransition(booking, "booking.status")

	utils.InfoLogger.Printf("Booking %d status changed to %s", booking.ID, booking.Status)
	utils.RespondJSON(c, http.StatusOK, "Booking status updated", booking)
}

// afterTransition menyiarkan hasil transisi yang sudah commit. Broadcast dan
// notifikasi keluar bersifat fire-and-forget: kegagalannya tidak pernah
// membatalkan transisi.
func (bc *BookingController) afterTransition(booking *models.Booking, routingKey string) {
	floor.BroadcastBookingUpdate(*booking)

	if booking.TableID != nil {
		var table models.Table
		if err := bc.DB.First(&table, *booking.TableID).Error; err == nil {
			floor.BroadcastTableUpdate(table)
		}
	}

	services.NotifyBookingEvent(routingKey, booking)
}

// annotateUrgency menghitung tier urgency untuk booking confirmed/arriving
// yang punya ETA, lalu mengurutkan yang paling mendesak ke atas
func annotateUrgency(bookings []models.Booking) []BookingView {
	views := make([]BookingView, 0, len(bookings))
	for _, b := range bookings {
		view := BookingView{Booking: b}
		if b.ETAMinutes != nil &&
			(b.Status == models.BookingConfirmed || b.Status == models.BookingArriving) {
			tier := lifecycle.ClassifyUrgency(*b.ETAMinutes)
			view.Urgency = &tier
		}
		views = append(views, view)
	}

	sort.SliceStable(views, func(i, j int) bool {
		ri, rj := 3, 3
		if views[i].Urgency != nil {
			ri = lifecycle.TierRank(*views[i].Urgency)
		}
		if views[j].Urgency != nil {
			rj = lifecycle.TierRank(*views[j].Urgency)
		}
		return ri < rj
	})

	return views
}

// respondLifecycleError memetakan error coordinator ke HTTP status
func respondLifecycleError(c *gin.Context, err error) {
	switch {
	case err == lifecycle.ErrBookingNotFound, err == lifecycle.ErrTableNotFound:
		utils.RespondError(c, http.StatusNotFound, err)
	case lifecycle.IsInvalidTransition(err):
		utils.RespondError(c, http.StatusConflict, err)
	case err == lifecycle.ErrTableUnavailable,
		err == lifecycle.ErrDuplicateTableNumber,
		err == lifecycle.ErrTableHasActiveBookings:
		utils.RespondError(c, http.StatusConflict, err)
	case err == lifecycle.ErrInvalidTableStatus:
		utils.RespondError(c, http.StatusBadRequest, err)
	case err == lifecycle.ErrUnavailable:
		utils.RespondError(c, http.StatusServiceUnavailable, err)
	default:
		utils.RespondError(c, http.StatusInternalServerError, err)
	}
}
