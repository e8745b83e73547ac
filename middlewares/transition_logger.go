package middlewares

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/restaurant-reservation/utils"
)

// TransitionLoggerMiddleware mencatat hasil setiap request transisi
// lifecycle booking (confirm/cancel/status) untuk jejak audit operator
func TransitionLoggerMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		// Sebelum request
		utils.InfoLogger.Printf("Lifecycle transition requested for booking ID: %s", c.Param("booking_id"))

		c.Next()

		// Setelah request
		if c.Writer.Status() == http.StatusOK {
			utils.InfoLogger.Printf("Lifecycle transition applied for booking ID: %s", c.Param("booking_id"))
		} else {
			utils.ErrorLogger.Printf("Lifecycle transition rejected (status=%d) for booking ID: %s",
				c.Writer.Status(), c.Param("booking_id"))
		}
	}
}
