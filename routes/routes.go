package routes

import (
	"net/http"
	"time"

	"turnia/handlers"
	"turnia/middleware"
	"turnia/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterUserRoutes registers client account endpoints.
func RegisterUserRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/users")
	{
		api.POST("/register", hb.Users.RegisterUserHandler)
		api.POST("/login", hb.Users.AuthenticateUserHandler)

		// Protected routes (Require Authentication)
		api.Use(middleware.JWTAuthClientMiddleware(hb.UserRepo))
		api.GET("/me", hb.Users.GetUserHandler)
		api.PUT("/me", hb.Users.UpdateUserHandler)
		api.DELETE("/me", hb.Users.DeleteUserHandler)
		api.POST("/logout", hb.Users.RevokeUserAuthTokenHandler)
		api.PUT("/me/fcm-token", hb.Users.UpdateUserFCMTokenHandler)
	}
}

// RegisterProfessionalRoutes registers professional account endpoints.
func RegisterProfessionalRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/professionals")
	{
		api.POST("/register", hb.Professionals.RegisterProfessionalHandler)
		api.POST("/login", hb.Professionals.AuthenticateProfessionalHandler)

		// Public catalog browsing for clients picking a professional.
		api.GET("", hb.Professionals.ListProfessionalsHandler)
		api.GET("/:id", hb.Professionals.GetProfessionalByIDHandler)

		protected := api.Group("")
		protected.Use(middleware.JWTAuthProfessionalMiddleware(hb.ProfessionalRepo))
		protected.PUT("/me", hb.Professionals.UpdateProfessionalHandler)
		protected.DELETE("/me", hb.Professionals.DeleteProfessionalHandler)
		protected.POST("/logout", hb.Professionals.RevokeProfessionalAuthTokenHandler)
		protected.PUT("/me/fcm-token", hb.Professionals.UpdateProfessionalFCMTokenHandler)
		protected.POST("/me/services", hb.Professionals.AddServiceHandler)
		protected.DELETE("/me/services/:serviceID", hb.Professionals.RemoveServiceHandler)
		protected.POST("/me/avatar", hb.Professionals.UploadAvatarHandler)
	}
}

// RegisterBookingRoutes sets up booking and meeting lifecycle endpoints.
func RegisterBookingRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/bookings")
	{
		api.Use(middleware.JWTAuthAnyMiddleware(hb.UserRepo, hb.ProfessionalRepo))
		api.GET("", hb.Bookings.ListBookingsHandler)
		api.GET("/:id", hb.Bookings.GetBookingHandler)
		api.DELETE("/:id", hb.Bookings.CancelBookingHandler)

		// Polled by the waiting room.
		api.GET("/:id/meeting-status", hb.Bookings.MeetingStatusHandler)

		api.POST("/:id/start", hb.Bookings.StartMeetingHandler)
		api.POST("/:id/complete", hb.Bookings.CompleteMeetingHandler)
	}

	clientOnly := r.Group("/api/bookings")
	{
		clientOnly.Use(middleware.JWTAuthClientMiddleware(hb.UserRepo))
		clientOnly.POST("", hb.Bookings.CreateBookingHandler)
	}

	professionalOnly := r.Group("/api/bookings")
	{
		professionalOnly.Use(middleware.JWTAuthProfessionalMiddleware(hb.ProfessionalRepo))
		professionalOnly.PATCH("/:id/accept-meeting", hb.Bookings.AcceptMeetingHandler)
		professionalOnly.PATCH("/:id/reject-meeting", hb.Bookings.RejectMeetingHandler)
	}
}

// RegisterPaymentRoutes registers the payment provider callback. No auth:
// the webhook is authenticated by its signature header.
func RegisterPaymentRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.POST("/api/payments/webhook", hb.Payments.StripeWebhookHandler)
}

// RegisterAlertRoutes registers the realtime feed and its REST fallbacks.
func RegisterAlertRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/alerts")
	{
		api.Use(middleware.JWTAuthAnyMiddleware(hb.UserRepo, hb.ProfessionalRepo))
		api.GET("/ws", hb.Alerts.EventsHandler)
	}

	professionalOnly := r.Group("/api/alerts")
	{
		professionalOnly.Use(middleware.JWTAuthProfessionalMiddleware(hb.ProfessionalRepo))
		professionalOnly.GET("/pending", hb.Alerts.PendingAlertsHandler)
		professionalOnly.DELETE("/:bookingID", hb.Alerts.DismissAlertHandler)
	}
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"message": "Hi, I'm Turnia",
			"checks":  utils.GetHealthStatus(),
		})
	})
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type", "Stripe-Signature"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	RegisterUserRoutes(r, hb)
	RegisterProfessionalRoutes(r, hb)
	RegisterBookingRoutes(r, hb)
	RegisterPaymentRoutes(r, hb)
	RegisterAlertRoutes(r, hb)
	RegisterHealthRoute(r)
}
