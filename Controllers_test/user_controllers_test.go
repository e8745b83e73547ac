package Controllers_test

import (
	"encoding/json"
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

func setupTestDBForUsers() *gorm.DB {
	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{})
	if err != nil {
		panic("failed to connect database")
	}
	err = db.AutoMigrate(&models.Restaurant{}, &models.User{})
	if err != nil {
		panic(err)
	}
	db.FirstOrCreate(&models.Restaurant{}, models.Restaurant{ID: 1, Name: "Test Resto"})
	return db
}

func setupUserRouter(db *gorm.DB, role string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.Default()
	userCtrl := controllers.NewUserController(db)

	router.POST("/register", userCtrl.Register)
	router.POST("/login", userCtrl.Login)

	authed := router.Group("/", withAuthContext(role))
	authed.GET("/users", userCtrl.GetAllUsers)
	authed.GET("/profile", userCtrl.GetProfile)
	return router
}

func TestRegisterAndLogin(t *testing.T) {
	utils.InitLogger()
	db := setupTestDBForUsers()
	router := setupUserRouter(db, "admin")

	w := doJSON(router, "POST", "/register", map[string]interface{}{
		"restaurant_id": 1,
		"name":          "Andi Staff",
		"email":         "andi@example.com",
		"password":      "rahasia123",
		"role":          "staff",
	})
	assert.Equal(t, http.StatusCreated, w.Code)

	var response map[string]interface{}
	err := json.Unmarshal(w.Body.Bytes(), &response)
	assert.NoError(t, err)
	assert.Equal(t, "User registered", response["message"])

	// Password tersimpan sebagai hash, bukan plaintext
	var user models.User
	db.Where("email = ?", "andi@example.com").First(&user)
	assert.NotEqual(t, "rahasia123", user.Password)

	w = doJSON(router, "POST", "/login", map[string]interface{}{
		"email":    "andi@example.com",
		"password": "rahasia123",
	})
	assert.Equal(t, http.StatusOK, w.Code)

	err = json.Unmarshal(w.Body.Bytes(), &response)
	assert.NoError(t, err)
	data := response["data"].(map[string]interface{})
	assert.NotEmpty(t, data["token"])
	assert.Equal(t, "staff", data["user_role"])
}

func TestLoginWrongPassword(t *testing.T) {
	utils.InitLogger()
	db := setupTestDBForUsers()
	router := setupUserRouter(db, "admin")

	doJSON(router, "POST", "/register", map[string]interface{}{
		"restaurant_id": 1,
		"name":          "Rina",
		"email":         "rina@example.com",
		"password":      "benarbanget",
		"role":          "staff",
	})

	w := doJSON(router, "POST", "/login", map[string]interface{}{
		"email":    "rina@example.com",
		"password": "salahtotal",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = doJSON(router, "POST", "/login", map[string]interface{}{
		"email":    "tidakada@example.com",
		"password": "apapun",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestGetAllUsersRequiresAdmin(t *testing.T) {
	utils.InitLogger()
	db := setupTestDBForUsers()

	staffRouter := setupUserRouter(db, "staff")
	w := doJSON(staffRouter, "GET", "/users", nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	adminRouter := setupUserRouter(db, "admin")
	w = doJSON(adminRouter, "GET", "/users", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}
