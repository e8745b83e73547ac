package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/yeremiapane/restaurant-reservation/models"
	"github.com/yeremiapane/restaurant-reservation/router"
	"github.com/yeremiapane/restaurant-reservation/utils"
)

func TestMain(m *testing.M) {
	utils.InitLogger()
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

// TestEndToEndReservationFlow menguji flow utama:
// 0. Seed restoran, admin, customer, meja, lalu login -> token
// 1. Customer membuat booking (pending)
// 2. Staff confirm + assign meja => confirmed, meja reserved
// 3. Tamu arriving (ETA) => muncul di list dengan tier urgency
// 4. Seated => meja occupied
// 5. Completed => meja cleaning
// 6. Cleaner menandai bersih => meja available lagi
func TestEndToEndReservationFlow(t *testing.T) {
	db := setupTestDB()
	r := router.SetupRouter(db)

	token := loginTest(t, r)

	bookingID := createBookingTest(t, r)

	confirmBookingTest(t, r, bookingID, token)
	assertTableStatus(t, r, token, 1, "reserved")

	updateStatusTest(t, r, bookingID, token, map[string]interface{}{
		"status": "arriving", "eta_minutes": 10,
	})
	assertUrgencyInList(t, r, token, bookingID, "soon")

	updateStatusTest(t, r, bookingID, token, map[string]interface{}{"status": "seated"})
	assertTableStatus(t, r, token, 1, "occupied")

	updateStatusTest(t, r, bookingID, token, map[string]interface{}{"status": "completed"})
	assertTableStatus(t, r, token, 1, "cleaning")

	markCleanTest(t, r, token, 1)
	assertTableStatus(t, r, token, 1, "available")

	// Riwayat customer menyimpan booking terminal
	historyTest(t, r, token, 1, bookingID)
}

// setupTestDB -> migrasi model di SQLite in-memory + seed data
func setupTestDB() *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		log.Fatalf("failed to open in-memory sqlite: %v", err)
	}

	// Satu koneksi: pool kedua akan melihat memory DB kosong yang berbeda
	sqlDB, err := db.DB()
	if err != nil {
		log.Fatalf("failed to get sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	err = db.AutoMigrate(
		&models.Restaurant{},
		&models.User{},
		&models.Customer{},
		&models.Table{},
		&models.Booking{},
		&models.PreOrderItem{},
		&models.CleaningLog{},
		&models.Notification{},
	)
	if err != nil {
		log.Fatalf("failed to migrate: %v", err)
	}

	db.Create(&models.Restaurant{Name: "Warung Tetangga"})

	hashedPassword, _ := bcrypt.GenerateFromPassword([]byte("secret123"), bcrypt.DefaultCost)
	db.Create(&models.User{
		RestaurantID: 1,
		Name:         "Test Admin",
		Email:        "admin@example.com",
		Password:     string(hashedPassword),
		Role:         "admin",
	})

	db.Create(&models.Customer{Name: "Budi", Phone: "0811111111"})
	db.Create(&models.Table{
		RestaurantID: 1,
		TableNumber:  "A1",
		Capacity:     4,
		Status:       models.TableAvailable,
	})

	return db
}

func doRequest(r *gin.Engine, method, url, token string, payload interface{}) *httptest.ResponseRecorder {
	var body *bytes.Buffer
	if payload != nil {
		raw, _ := json.Marshal(payload)
		body = bytes.NewBuffer(raw)
	} else {
		body = bytes.NewBuffer(nil)
	}

	req := httptest.NewRequest(method, url, body)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func parseBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	return response
}

func loginTest(t *testing.T, r *gin.Engine) string {
	w := doRequest(r, http.MethodPost, "/login", "", map[string]string{
		"email":    "admin@example.com",
		"password": "secret123",
	})
	require.Equal(t, http.StatusOK, w.Code)

	response := parseBody(t, w)
	data := response["data"].(map[string]interface{})
	token, ok := data["token"].(string)
	require.True(t, ok)
	require.NotEmpty(t, token)
	return token
}

func createBookingTest(t *testing.T, r *gin.Engine) uint {
	w := doRequest(r, http.MethodPost, "/bookings", "", map[string]interface{}{
		"restaurant_id": 1,
		"customer_id":   1,
		"booking_date":  "2026-09-05",
		"time_slot":     "19:00",
		"guest_count":   4,
		"pre_order_items": []map[string]interface{}{
			{"item_name": "Nasi Goreng Spesial", "quantity": 2, "unit_price": 45000},
		},
	})
	require.Equal(t, http.StatusCreated, w.Code)

	response := parseBody(t, w)
	data := response["data"].(map[string]interface{})
	assert.Equal(t, "pending", data["status"])
	assert.Equal(t, float64(90000), data["pre_order_total"])
	return uint(data["id"].(float64))
}

func confirmBookingTest(t *testing.T, r *gin.Engine, bookingID uint, token string) {
	// Tanpa token ditolak
	w := doRequest(r, http.MethodPost, fmt.Sprintf("/admin/bookings/%d/confirm", bookingID), "", nil)
	require.Equal(t, http.StatusUnauthorized, w.Code)

	w = doRequest(r, http.MethodPost, fmt.Sprintf("/admin/bookings/%d/confirm", bookingID), token,
		map[string]interface{}{"table_id": 1})
	require.Equal(t, http.StatusOK, w.Code)

	response := parseBody(t, w)
	data := response["data"].(map[string]interface{})
	assert.Equal(t, "confirmed", data["status"])
	assert.NotNil(t, data["confirmed_at"])
}

func updateStatusTest(t *testing.T, r *gin.Engine, bookingID uint, token string, payload map[string]interface{}) {
	w := doRequest(r, http.MethodPatch, fmt.Sprintf("/admin/bookings/%d/status", bookingID), token, payload)
	require.Equal(t, http.StatusOK, w.Code, "payload %v: %s", payload, w.Body.String())

	response := parseBody(t, w)
	data := response["data"].(map[string]interface{})
	assert.Equal(t, payload["status"], data["status"])
}

func assertTableStatus(t *testing.T, r *gin.Engine, token string, tableID uint, want string) {
	w := doRequest(r, http.MethodGet, fmt.Sprintf("/admin/tables/%d", tableID), token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	response := parseBody(t, w)
	data := response["data"].(map[string]interface{})
	assert.Equal(t, want, data["status"], "table %d", tableID)
}

func assertUrgencyInList(t *testing.T, r *gin.Engine, token string, bookingID uint, wantTier string) {
	w := doRequest(r, http.MethodGet, "/admin/bookings?status=arriving", token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	response := parseBody(t, w)
	data := response["data"].([]interface{})
	require.NotEmpty(t, data)

	for _, row := range data {
		entry := row.(map[string]interface{})
		if uint(entry["id"].(float64)) == bookingID {
			assert.Equal(t, wantTier, entry["urgency"])
			return
		}
	}
	t.Fatalf("booking %d not found in arriving list", bookingID)
}

func markCleanTest(t *testing.T, r *gin.Engine, token string, tableID uint) {
	w := doRequest(r, http.MethodPatch, fmt.Sprintf("/admin/tables/%d/clean", tableID), token, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
}

func historyTest(t *testing.T, r *gin.Engine, token string, customerID, bookingID uint) {
	w := doRequest(r, http.MethodGet, fmt.Sprintf("/admin/customers/%d/bookings", customerID), token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	response := parseBody(t, w)
	data := response["data"].([]interface{})
	require.NotEmpty(t, data)

	found := false
	for _, row := range data {
		entry := row.(map[string]interface{})
		if uint(entry["id"].(float64)) == bookingID {
			assert.Equal(t, "completed", entry["status"])
			found = true
		}
	}
	assert.True(t, found, "completed booking must stay in customer history")
}
