package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/restaurant-reservation/floor"
	"github.com/yeremiapane/restaurant-reservation/lifecycle"
	"github.com/yeremiapane/restaurant-reservation/models"
	"github.com/yeremiapane/restaurant-reservation/utils"
	"gorm.io/gorm"
)

type CleaningLogController struct {
	DB          *gorm.DB
	Coordinator *lifecycle.Coordinator
}

func NewCleaningLogController(db *gorm.DB) *CleaningLogController {
	return &CleaningLogController{
		DB:          db,
		Coordinator: lifecycle.NewCoordinator(db),
	}
}

// GetAllCleaningLogs
func (clc *CleaningLogController) GetAllCleaningLogs(c *gin.Context) {
	var logs []models.CleaningLog
	if err := clc.DB.Preload("Cleaner").Preload("Table").Find(&logs).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "All cleaning logs", logs)
}

// CreateCleaningLog
func (clc *CleaningLogController) CreateCleaningLog(c *gin.Context) {
	type reqBody struct {
		CleanerID uint   `json:"cleaner_id" binding:"required"`
		TableID   uint   `json:"table_id" binding:"required"`
		Status    string `json:"status"` // pending, in_progress, done
	}
	var body reqBody
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	logEntry := models.CleaningLog{
		CleanerID: body.CleanerID,
		TableID:   body.TableID,
		Status:    "pending",
	}
	if body.Status != "" {
		logEntry.Status = body.Status
	}

	if err := clc.DB.Create(&logEntry).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusCreated, "Cleaning log created", logEntry)
}

// GetCleaningLogByID
func (clc *CleaningLogController) GetCleaningLogByID(c *gin.Context) {
	idStr := c.Param("clean_id")
	id, _ := strconv.Atoi(idStr)

	var logEntry models.CleaningLog
	if err := clc.DB.Preload("Cleaner").Preload("Table").First(&logEntry, id).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Cleaning log detail", logEntry)
}

// UpdateCleaningLog
func (clc *CleaningLogController) UpdateCleaningLog(c *gin.Context) {
	restaurantID := c.GetUint("restaurant_id")
	idStr := c.Param("clean_id")
	id, _ := strconv.Atoi(idStr)

	type reqBody struct {
		CleanerID *uint  `json:"cleaner_id"`
		Status    string `json:"status"`
	}
	var body reqBody
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var logEntry models.CleaningLog
	if err := clc.DB.First(&logEntry, id).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	if body.CleanerID != nil {
		logEntry.CleanerID = *body.CleanerID
	}
	if body.Status != "" {
		logEntry.Status = body.Status
	}

	if err := clc.DB.Save(&logEntry).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	// Jika status = "done", kembalikan meja cleaning => available lewat
	// jalur override manual
	if body.Status == "done" {
		var table models.Table
		if err := clc.DB.First(&table, logEntry.TableID).Error; err == nil &&
			table.Status == models.TableCleaning {
			if updated, err := clc.Coordinator.OverrideTableStatus(c.Request.Context(),
				restaurantID, table.ID, models.TableAvailable); err == nil {
				floor.BroadcastTableUpdate(*updated)
			}
		}
	}

	utils.RespondJSON(c, http.StatusOK, "Cleaning log updated", logEntry)
}

// DeleteCleaningLog
func (clc *CleaningLogController) DeleteCleaningLog(c *gin.Context) {
	idStr := c.Param("clean_id")
	id, _ := strconv.Atoi(idStr)

	if err := clc.DB.Delete(&models.CleaningLog{}, id).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Cleaning log deleted", gin.H{"clean_id": id})
}
