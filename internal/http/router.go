package api

import (
	"log"
	stdhttp "net/http"

	"transportease/internal/config"
	h "transportease/internal/http/handlers"
	"transportease/internal/http/middleware"

	"github.com/gin-gonic/gin"
)

func NewRouter(env config.Env, a h.API) *gin.Engine {
	r := gin.New()
	r.Use(middleware.RequestID(), middleware.Logger(), gin.Recovery(), middleware.CORS(env.CORSOrigins))

	if err := r.SetTrustedProxies(nil); err != nil {
		log.Printf("warning: failed to set trusted proxies: %v", err)
	}

	r.NoRoute(func(c *gin.Context) {
		c.JSON(stdhttp.StatusNotFound, gin.H{
			"error":  "route not found",
			"path":   c.Request.URL.Path,
			"method": c.Request.Method,
		})
	})

	api := r.Group("/api")
	{
		api.GET("/health", a.Health)
		api.GET("/db-check", a.DBCheck)

		// Auth
		auth := api.Group("/auth")
		auth.POST("/login", a.Login)
		auth.POST("/register", a.Register)

		// Trip search & seat layouts (public)
		trips := api.Group("/trips")
		trips.GET("/search", a.SearchTrips)
		trips.GET("/:id/seatmap", a.GetSeatMap)

		// Trip catalogue management (admin)
		admin := trips.Group("")
		admin.Use(middleware.AuthRequired(env.JWTSecret), middleware.RequireRoles("admin"))
		admin.POST("", a.CreateTrip)
		admin.PUT("/:id", a.UpdateTrip)
		admin.DELETE("/:id", a.DeleteTrip)

		// Booking flow (authenticated)
		authed := api.Group("")
		authed.Use(middleware.AuthRequired(env.JWTSecret))
		authed.POST("/quote", a.Quote)
		authed.POST("/bookings", a.CreateBooking)
		authed.GET("/bookings/:id", a.GetBooking)
		authed.POST("/bookings/:id/pay", a.PayBooking)
		authed.POST("/bookings/:id/cancel", a.CancelBooking)
		authed.GET("/bookings/:id/ticket", a.GetTicketPDF)
		authed.GET("/me/bookings", a.ListMyBookings)
	}

	return r
}
