package controllers

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/restaurant-reservation/floor"
	"github.com/yeremiapane/restaurant-reservation/lifecycle"
	"github.com/yeremiapane/restaurant-reservation/models"
	"github.com/yeremiapane/restaurant-reservation/utils"
	"gorm.io/gorm"
)

type TableController struct {
	DB          *gorm.DB
	Coordinator *lifecycle.Coordinator
}

func NewTableController(db *gorm.DB) *TableController {
	return &TableController{
		DB:          db,
		Coordinator: lifecycle.NewCoordinator(db),
	}
}

// CreateTable -> menambahkan meja baru, nomor harus unik per restoran
func (tc *TableController) CreateTable(c *gin.Context) {
	restaurantID := c.GetUint("restaurant_id")

	var req struct {
		TableNumber string `json:"table_number" binding:"required"`
		Name        string `json:"name"`
		TableType   string `json:"table_type"`
		Capacity    int    `json:"capacity" binding:"required"`
		Floor       string `json:"floor"`
		PosX        *int   `json:"pos_x"`
		PosY        *int   `json:"pos_y"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	if err := lifecycle.CheckDuplicateNumber(tc.DB, restaurantID, req.TableNumber, 0); err != nil {
		respondLifecycleError(c, err)
		return
	}

	table := models.Table{
		RestaurantID: restaurantID,
		TableNumber:  req.TableNumber,
		Name:         req.Name,
		TableType:    req.TableType,
		Capacity:     req.Capacity,
		Status:       models.TableAvailable,
		Floor:        req.Floor,
		PosX:         req.PosX,
		PosY:         req.PosY,
	}

	if err := tc.DB.Create(&table).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	// Broadcast dengan statistik lantai terbaru
	stats := tc.getFloorStats(restaurantID)
	floor.BroadcastMessage(floor.Message{
		Event: floor.EventTableCreate,
		Data: map[string]interface{}{
			"table": table,
			"stats": stats,
		},
	})

	utils.InfoLogger.Printf("New table created: %s (status=%s)", table.TableNumber, table.Status)
	utils.RespondJSON(c, http.StatusCreated, "Table created successfully", table)
}

// GetAllTables -> menampilkan seluruh meja milik restoran
func (tc *TableController) GetAllTables(c *gin.Context) {
	restaurantID := c.GetUint("restaurant_id")

	var tables []models.Table
	if err := tc.DB.Where("restaurant_id = ?", restaurantID).Find(&tables).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of tables", tables)
}

// GetTableByID -> detail satu meja
func (tc *TableController) GetTableByID(c *gin.Context) {
	restaurantID := c.GetUint("restaurant_id")
	tableID := c.Param("table_id")

	var table models.Table
	if err := tc.DB.Where("restaurant_id = ?", restaurantID).First(&table, tableID).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Table detail", table)
}

// UpdateTable -> patch atribut meja (bukan status - itu lewat lifecycle
// atau override manual)
func (tc *TableController) UpdateTable(c *gin.Context) {
	restaurantID := c.GetUint("restaurant_id")
	tableID, _ := strconv.Atoi(c.Param("table_id"))

	var req struct {
		TableNumber *string `json:"table_number"`
		Name        *string `json:"name"`
		TableType   *string `json:"table_type"`
		Capacity    *int    `json:"capacity"`
		Floor       *string `json:"floor"`
		PosX        *int    `json:"pos_x"`
		PosY        *int    `json:"pos_y"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var table models.Table
	if err := tc.DB.Where("restaurant_id = ?", restaurantID).First(&table, tableID).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	if req.TableNumber != nil && *req.TableNumber != table.TableNumber {
		if err := lifecycle.CheckDuplicateNumber(tc.DB, restaurantID, *req.TableNumber, table.ID); err != nil {
			respondLifecycleError(c, err)
			return
		}
		table.TableNumber = *req.TableNumber
	}
	if req.Name != nil {
		table.Name = *req.Name
	}
	if req.TableType != nil {
		table.TableType = *req.TableType
	}
	if req.Capacity != nil {
		table.Capacity = *req.Capacity
	}
	if req.Floor != nil {
		table.Floor = *req.Floor
	}
	if req.PosX != nil {
		table.PosX = req.PosX
	}
	if req.PosY != nil {
		table.PosY = req.PosY
	}

	if err := tc.DB.Save(&table).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	floor.BroadcastTableUpdate(table)

	utils.InfoLogger.Printf("Table %d updated", table.ID)
	utils.RespondJSON(c, http.StatusOK, "Table updated", table)
}

// UpdateTableStatus -> jalur override manual operator. Hanya available,
// cleaning dan maintenance; reserved/occupied hanya bisa lewat lifecycle booking.
func (tc *TableController) UpdateTableStatus(c *gin.Context) {
	restaurantID := c.GetUint("restaurant_id")
	tableID, _ := strconv.Atoi(c.Param("table_id"))

	var body struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	table, err := tc.Coordinator.OverrideTableStatus(c.Request.Context(),
		restaurantID, uint(tableID), models.TableStatus(body.Status))
	if err != nil {
		respondLifecycleError(c, err)
		return
	}

	stats := tc.getFloorStats(restaurantID)
	floor.BroadcastMessage(floor.Message{
		Event: floor.EventTableUpdate,
		Data: map[string]interface{}{
			"table": table,
			"stats": stats,
		},
	})

	utils.InfoLogger.Printf("Table %d status changed to %s", table.ID, table.Status)
	utils.RespondJSON(c, http.StatusOK, "Table status updated", table)
}

// DeleteTable -> menghapus meja; ditolak selama masih ada booking aktif
// yang mereferensikannya
func (tc *TableController) DeleteTable(c *gin.Context) {
	restaurantID := c.GetUint("restaurant_id")
	tableID, _ := strconv.Atoi(c.Param("table_id"))

	if err := tc.Coordinator.DeleteTable(c.Request.Context(), restaurantID, uint(tableID)); err != nil {
		respondLifecycleError(c, err)
		return
	}

	stats := tc.getFloorStats(restaurantID)
	floor.BroadcastMessage(floor.Message{
		Event: floor.EventTableDelete,
		Data: map[string]interface{}{
			"table_id": tableID,
			"stats":    stats,
		},
	})

	utils.InfoLogger.Printf("Table %d deleted", tableID)
	utils.RespondJSON(c, http.StatusOK, "Table deleted", gin.H{
		"id": tableID,
	})
}

// FindTablesByStatus -> mis. list meja available untuk dipilih saat confirm
func (tc *TableController) FindTablesByStatus(c *gin.Context) {
	restaurantID := c.GetUint("restaurant_id")
	status := c.Query("status")
	if status == "" {
		status = string(models.TableAvailable)
	}
	if !models.TableStatus(status).Valid() {
		utils.RespondError(c, http.StatusBadRequest, fmt.Errorf("unknown status: %s", status))
		return
	}

	var tables []models.Table
	if err := tc.DB.Where("restaurant_id = ? AND status = ?", restaurantID, status).
		Find(&tables).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Tables with status: "+status, tables)
}

// MarkTableClean untuk Cleaner menandai meja siap digunakan
func (tc *TableController) MarkTableClean(c *gin.Context) {
	roleInterface, _ := c.Get("role")
	if roleInterface != "cleaner" && roleInterface != "staff" && roleInterface != "admin" {
		utils.RespondError(c, http.StatusForbidden, ErrNoPermission)
		return
	}

	restaurantID := c.GetUint("restaurant_id")
	tableID, _ := strconv.Atoi(c.Param("table_id"))

	var table models.Table
	if err := tc.DB.Where("restaurant_id = ?", restaurantID).First(&table, tableID).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	if table.Status != models.TableCleaning {
		utils.RespondError(c, http.StatusBadRequest, fmt.Errorf("table is not in cleaning status"))
		return
	}

	updated, err := tc.Coordinator.OverrideTableStatus(c.Request.Context(),
		restaurantID, table.ID, models.TableAvailable)
	if err != nil {
		respondLifecycleError(c, err)
		return
	}

	floor.BroadcastTableUpdate(*updated)

	utils.RespondJSON(c, http.StatusOK, "Table marked as clean", updated)
}

// getFloorStats menghitung statistik lantai untuk broadcast dashboard
func (tc *TableController) getFloorStats(restaurantID uint) map[string]interface{} {
	var availableCount, reservedCount, occupiedCount, cleaningCount, maintenanceCount int64

	tc.DB.Model(&models.Table{}).Where("restaurant_id = ? AND status = ?", restaurantID, models.TableAvailable).Count(&availableCount)
	tc.DB.Model(&models.Table{}).Where("restaurant_id = ? AND status = ?", restaurantID, models.TableReserved).Count(&reservedCount)
	tc.DB.Model(&models.Table{}).Where("restaurant_id = ? AND status = ?", restaurantID, models.TableOccupied).Count(&occupiedCount)
	tc.DB.Model(&models.Table{}).Where("restaurant_id = ? AND status = ?", restaurantID, models.TableCleaning).Count(&cleaningCount)
	tc.DB.Model(&models.Table{}).Where("restaurant_id = ? AND status = ?", restaurantID, models.TableMaintenance).Count(&maintenanceCount)

	return map[string]interface{}{
		"available":   availableCount,
		"reserved":    reservedCount,
		"occupied":    occupiedCount,
		"cleaning":    cleaningCount,
		"maintenance": maintenanceCount,
		"total":       availableCount + reservedCount + occupiedCount + cleaningCount + maintenanceCount,
	}
}
