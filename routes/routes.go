package routes

import (
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"rental-backend/controllers"
	"rental-backend/metrics"
	"rental-backend/middleware"
)

func parseCorsOrigins() []string {
	raw := strings.TrimSpace(os.Getenv("CORS_ORIGINS"))
	if raw == "" {
		return []string{"*"}
	}

	parts := strings.Split(raw, ",")
	origins := make([]string, 0, len(parts))
	for _, part := range parts {
		origin := strings.TrimSpace(part)
		if origin != "" {
			origins = append(origins, origin)
		}
	}
	if len(origins) == 0 {
		return []string{"*"}
	}
	return origins
}

func SetupRouter(
	ic *controllers.ItemController,
	bc *controllers.BookingController,
	ac *controllers.AuthController,
	jwtSecret string,
) *gin.Engine {
	r := gin.Default()
	r.Use(metrics.Middleware)

	origins := parseCorsOrigins()
	allowCredentials := true
	for _, origin := range origins {
		if origin == "*" {
			allowCredentials = false
			break
		}
	}

	r.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: allowCredentials,
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := r.Group("/api")
	{
		// Public storefront
		api.GET("/items", ic.GetItems)
		api.POST("/availability", bc.CheckAvailability)
		api.POST("/bookings", bc.CreateBooking)
		api.GET("/payment-details", bc.GetPaymentDetails)

		auth := api.Group("/auth")
		{
			auth.POST("/login", ac.Login)
		}

		// Admin dashboard
		admin := api.Group("/admin")
		admin.Use(middleware.RequireAdmin(jwtSecret))
		{
			admin.GET("/items", ic.GetAllItems)
			admin.POST("/items", ic.CreateItem)
			admin.PUT("/items/:id", ic.UpdateItem)
			admin.DELETE("/items/:id", ic.DeleteItem)

			admin.GET("/bookings", bc.GetBookings)
			admin.PUT("/bookings/:id/mark-paid", bc.MarkPaid)
			admin.PUT("/bookings/:id/complete", bc.Complete)
			admin.PUT("/bookings/:id/cancel", bc.Cancel)
		}
	}

	return r
}
