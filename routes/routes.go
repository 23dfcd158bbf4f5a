package routes

import (
	"net/http"
	"time"

	"flexspace/handlers"
	"flexspace/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterUserRoutes registers account and profile endpoints.
func RegisterUserRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/users")
	{
		api.POST("/register", hb.Users.Register)
		api.POST("/login", hb.Users.Login)

		// Protected routes (Require Authentication)
		api.Use(middleware.JWTAuthMiddleware(hb.UserRepo))
		api.GET("/me", hb.Users.Me)
		api.PUT("/me", hb.Users.UpdateMe)
		api.PUT("/me/fcm-token", hb.Users.UpdateFCMToken)
	}
}

// RegisterFacilityRoutes registers facility catalog endpoints. Reads are
// public; writes are admin-only.
func RegisterFacilityRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/facilities")
	{
		api.GET("", hb.Facilities.ListFacilities)
		api.GET("/:id", hb.Facilities.GetFacility)

		admin := api.Group("")
		admin.Use(middleware.JWTAuthMiddleware(hb.UserRepo), middleware.AdminOnly())
		admin.POST("", hb.Facilities.CreateFacility)
		admin.PUT("/:id", hb.Facilities.UpdateFacility)
		admin.DELETE("/:id", hb.Facilities.DeleteFacility)
	}
}

// RegisterBookingRoutes sets up the endpoints for the admission engine.
func RegisterBookingRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/bookings")
	{
		api.Use(middleware.JWTAuthMiddleware(hb.UserRepo))
		api.POST("", hb.Bookings.CreateBooking)
		api.POST("/availability", hb.Bookings.CheckAvailability)
		api.GET("", hb.Bookings.ListBookings)
		api.GET("/id/:id", hb.Bookings.GetBooking)
		api.DELETE("/id/:id", hb.Bookings.CancelBooking)

		admin := api.Group("")
		admin.Use(middleware.AdminOnly())
		admin.POST("/id/:id/approve", hb.Bookings.ApproveBooking)
		admin.POST("/id/:id/reject", hb.Bookings.RejectBooking)
	}
}

// RegisterProgramRoutes registers program and enrollment endpoints.
func RegisterProgramRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/programs")
	{
		api.GET("", hb.Programs.ListPrograms)
		api.GET("/:id", hb.Programs.GetProgram)

		authed := api.Group("")
		authed.Use(middleware.JWTAuthMiddleware(hb.UserRepo))
		authed.POST("/:id/apply", hb.Programs.Apply)

		admin := api.Group("")
		admin.Use(middleware.JWTAuthMiddleware(hb.UserRepo), middleware.AdminOnly())
		admin.POST("", hb.Programs.CreateProgram)
		admin.PUT("/:id", hb.Programs.UpdateProgram)
		admin.DELETE("/:id", hb.Programs.DeleteProgram)
		admin.GET("/:id/applications", hb.Programs.ListApplications)
	}
}

// RegisterAdminRoutes sets up endpoints for admin operations.
func RegisterAdminRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/admin")
	{
		api.Use(middleware.JWTAuthMiddleware(hb.UserRepo), middleware.AdminOnly())
		api.GET("/users", hb.Admin.GetAllUsers)
		api.POST("/applications/:id/decide", hb.Programs.DecideApplication)
	}
}

// RegisterStorageRoutes registers image upload endpoints (admin-only).
func RegisterStorageRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/storage")
	{
		api.Use(middleware.JWTAuthMiddleware(hb.UserRepo), middleware.AdminOnly())
		api.POST("/upload/:bucket", hb.Storage.UploadImageHandler)
		api.DELETE("/delete", hb.Storage.DeleteImageHandler)
	}
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "message": "Hi, I'm FlexSpace"})
	})
	r.GET("/health/deep", handlers.HealthCheck)
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	// Setup global middleware (e.g., CORS) here.
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	RegisterUserRoutes(r, hb)
	RegisterFacilityRoutes(r, hb)
	RegisterBookingRoutes(r, hb)
	RegisterProgramRoutes(r, hb)
	RegisterAdminRoutes(r, hb)
	RegisterStorageRoutes(r, hb)
	RegisterHealthRoute(r)
}
