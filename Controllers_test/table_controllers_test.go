package Controllers_test

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/yeremiapane/restaurant-reservation/controllers"
	"github.com/yeremiapane/restaurant-reservation/models"
	"github.com/yeremiapane/restaurant-reservation/utils"
)

// setupTestDBForTables menggunakan SQLite in-memory khusus untuk TableController
func setupTestDBForTables() *gorm.DB {
	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{})
	if err != nil {
		panic("failed to connect database")
	}
	err = db.AutoMigrate(&models.Restaurant{}, &models.Table{}, &models.Booking{})
	if err != nil {
		panic(err)
	}
	db.FirstOrCreate(&models.Restaurant{}, models.Restaurant{ID: 1, Name: "Test Resto"})
	return db
}

func setupTableRouter(db *gorm.DB, role string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.Default()
	tableCtrl := controllers.NewTableController(db)

	authed := router.Group("/", withAuthContext(role))
	authed.GET("/tables", tableCtrl.GetAllTables)
	authed.GET("/tables/by-status", tableCtrl.FindTablesByStatus)
	authed.GET("/tables/:table_id", tableCtrl.GetTableByID)
	authed.POST("/tables", tableCtrl.CreateTable)
	authed.PATCH("/tables/:table_id", tableCtrl.UpdateTable)
	authed.PATCH("/tables/:table_id/status", tableCtrl.UpdateTableStatus)
	authed.PATCH("/tables/:table_id/clean", tableCtrl.MarkTableClean)
	authed.DELETE("/tables/:table_id", tableCtrl.DeleteTable)
	return router
}

func TestCreateTableAndDuplicateNumber(t *testing.T) {
	utils.InitLogger()
	db := setupTestDBForTables()
	router := setupTableRouter(db, "admin")

	payload := map[string]interface{}{
		"table_number": "TB1",
		"capacity":     4,
		"table_type":   "square",
		"floor":        "1",
	}

	w := doJSON(router, "POST", "/tables", payload)
	assert.Equal(t, http.StatusCreated, w.Code)

	var response map[string]interface{}
	err := json.Unmarshal(w.Body.Bytes(), &response)
	assert.NoError(t, err)
	assert.Equal(t, "Table created successfully", response["message"])
	data := response["data"].(map[string]interface{})
	assert.Equal(t, "available", data["status"])

	// Nomor meja unik per restoran
	w = doJSON(router, "POST", "/tables", payload)
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestGetAllTables(t *testing.T) {
	utils.InitLogger()
	db := setupTestDBForTables()

	db.Create(&models.Table{RestaurantID: 1, TableNumber: "TB2", Capacity: 2, Status: models.TableAvailable})
	db.Create(&models.Table{RestaurantID: 1, TableNumber: "TB3", Capacity: 6, Status: models.TableOccupied})

	router := setupTableRouter(db, "staff")
	w := doJSON(router, "GET", "/tables", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	var response map[string]interface{}
	err := json.Unmarshal(w.Body.Bytes(), &response)
	assert.NoError(t, err)
	assert.Equal(t, "List of tables", response["message"])
	data := response["data"].([]interface{})
	assert.GreaterOrEqual(t, len(data), 2)
}

func TestFindTablesByStatus(t *testing.T) {
	utils.InitLogger()
	db := setupTestDBForTables()

	db.Create(&models.Table{RestaurantID: 1, TableNumber: "TB4", Capacity: 2, Status: models.TableMaintenance})

	router := setupTableRouter(db, "staff")
	w := doJSON(router, "GET", "/tables/by-status?status=maintenance", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	var response map[string]interface{}
	err := json.Unmarshal(w.Body.Bytes(), &response)
	assert.NoError(t, err)
	data := response["data"].([]interface{})
	assert.GreaterOrEqual(t, len(data), 1)
	for _, row := range data {
		assert.Equal(t, "maintenance", row.(map[string]interface{})["status"])
	}

	// Status di luar enum ditolak
	w = doJSON(router, "GET", "/tables/by-status?status=bogus", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUpdateTableAttributes(t *testing.T) {
	utils.InitLogger()
	db := setupTestDBForTables()

	table := models.Table{RestaurantID: 1, TableNumber: "TB5", Capacity: 2, Status: models.TableAvailable}
	db.Create(&table)
	db.Create(&models.Table{RestaurantID: 1, TableNumber: "TB6", Capacity: 2, Status: models.TableAvailable})

	router := setupTableRouter(db, "admin")

	// Patch kapasitas dan nama
	w := doJSON(router, "PATCH", fmt.Sprintf("/tables/%d", table.ID), map[string]interface{}{
		"capacity": 8,
		"name":     "Meja Keluarga",
	})
	assert.Equal(t, http.StatusOK, w.Code)

	var fresh models.Table
	db.First(&fresh, table.ID)
	assert.Equal(t, 8, fresh.Capacity)
	assert.Equal(t, "Meja Keluarga", fresh.Name)
	assert.Equal(t, "TB5", fresh.TableNumber)

	// Ganti nomor ke nomor meja lain => konflik
	w = doJSON(router, "PATCH", fmt.Sprintf("/tables/%d", table.ID), map[string]interface{}{
		"table_number": "TB6",
	})
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestUpdateTableStatusManualPath(t *testing.T) {
	utils.InitLogger()
	db := setupTestDBForTables()

	table := models.Table{RestaurantID: 1, TableNumber: "TB7", Capacity: 4, Status: models.TableAvailable}
	db.Create(&table)

	router := setupTableRouter(db, "staff")
	url := fmt.Sprintf("/tables/%d/status", table.ID)

	w := doJSON(router, "PATCH", url, map[string]string{"status": "maintenance"})
	assert.Equal(t, http.StatusOK, w.Code)

	var response map[string]interface{}
	err := json.Unmarshal(w.Body.Bytes(), &response)
	assert.NoError(t, err)
	assert.Equal(t, "Table status updated", response["message"])
	data := response["data"].(map[string]interface{})
	assert.Equal(t, "maintenance", data["status"])

	// reserved dan occupied hanya bisa dicapai lewat lifecycle booking
	w = doJSON(router, "PATCH", url, map[string]string{"status": "occupied"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	w = doJSON(router, "PATCH", url, map[string]string{"status": "reserved"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestDeleteTableGuardedByActiveBookings(t *testing.T) {
	utils.InitLogger()
	db := setupTestDBForTables()

	table := models.Table{RestaurantID: 1, TableNumber: "TB8", Capacity: 4, Status: models.TableReserved}
	db.Create(&table)
	booking := models.Booking{
		RestaurantID: 1, CustomerID: 1,
		BookingDate: "2026-09-10", TimeSlot: "19:00", GuestCount: 2,
		Status: models.BookingConfirmed, TableID: &table.ID,
	}
	db.Create(&booking)

	router := setupTableRouter(db, "admin")
	url := fmt.Sprintf("/tables/%d", table.ID)

	w := doJSON(router, "DELETE", url, nil)
	assert.Equal(t, http.StatusConflict, w.Code)

	// Setelah booking dibatalkan, penghapusan jalan
	db.Model(&models.Booking{}).Where("id = ?", booking.ID).
		Update("status", models.BookingCancelled)

	w = doJSON(router, "DELETE", url, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = doJSON(router, "DELETE", url, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestMarkTableClean(t *testing.T) {
	utils.InitLogger()
	db := setupTestDBForTables()

	table := models.Table{RestaurantID: 1, TableNumber: "TB9", Capacity: 4, Status: models.TableCleaning}
	db.Create(&table)

	router := setupTableRouter(db, "cleaner")
	url := fmt.Sprintf("/tables/%d/clean", table.ID)

	w := doJSON(router, "PATCH", url, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	var fresh models.Table
	db.First(&fresh, table.ID)
	assert.Equal(t, models.TableAvailable, fresh.Status)

	// Meja yang tidak sedang cleaning tidak bisa ditandai bersih
	w = doJSON(router, "PATCH", url, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
