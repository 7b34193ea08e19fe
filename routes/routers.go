package routes

import (
	"net/http"

	"hotelbooking/controllers"
	_ "hotelbooking/docs"
	"hotelbooking/middleware"
	"hotelbooking/services"
	"hotelbooking/services/logger"

	"github.com/gin-gonic/gin"
	"github.com/olahol/melody"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// Deps là các collaborator đã được khởi tạo trong main
type Deps struct {
	Auth         *services.AuthService
	Bookings     *services.BookingService
	Hotels       *services.HotelService
	Ratings      *services.RatingService
	Melody       *melody.Melody
	Logger       logger.Logger
	SecureCookie bool
}

func SetupRoutes(router *gin.Engine, deps Deps) {
	authController := controllers.NewAuthController(deps.Auth, deps.SecureCookie)
	bookingController := controllers.NewBookingController(deps.Bookings)
	paymentController := controllers.NewPaymentController(deps.Bookings)
	hotelController := controllers.NewHotelController(deps.Hotels)
	ratingController := controllers.NewRatingController(deps.Ratings)
	userController := controllers.NewUserController(deps.Auth)

	requireUser := middleware.AuthMiddleware(deps.Auth)
	requireAdmin := middleware.AdminOnly()

	api := router.Group("/api")

	auth := api.Group("/auth")
	auth.POST("/signup", authController.Signup)
	auth.POST("/login", authController.Login)
	auth.POST("/logout", authController.Logout)
	auth.GET("/me", requireUser, authController.Me)

	hotels := api.Group("/hotels")
	hotels.GET("", hotelController.GetHotels)
	hotels.GET("/user-places", requireUser, hotelController.GetUserPlaces)
	hotels.GET("/:id", hotelController.GetHotel)
	hotels.POST("", requireUser, requireAdmin, hotelController.CreateHotel)
	hotels.PUT("/:id", requireUser, hotelController.UpdateHotel)
	hotels.POST("/:id/photos", requireUser, hotelController.UploadPhotos)

	bookings := api.Group("/bookings", requireUser)
	bookings.POST("", bookingController.CreateBooking)
	bookings.GET("", requireAdmin, bookingController.GetAllBookings)
	bookings.GET("/user-bookings", bookingController.GetUserBookings)
	bookings.POST("/update-payment-status", bookingController.UpdatePaymentStatus)
	bookings.GET("/:id", bookingController.GetBooking)

	payment := api.Group("/payment", requireUser)
	payment.POST("/order", paymentController.CreateOrder)
	payment.POST("/verify", paymentController.VerifyPayment)

	admin := api.Group("/admin", requireUser, requireAdmin)
	admin.GET("/bookings/:id", bookingController.AdminGetBooking)
	admin.DELETE("/bookings/:id", bookingController.DeleteBooking)
	admin.DELETE("/users/:id", userController.DeleteUser)

	ratings := api.Group("/ratings")
	ratings.POST("/:id/rate", requireUser, ratingController.RateHotel)
	ratings.GET("/:id/average-rating", ratingController.AverageRating)

	if deps.Melody != nil {
		notificationController := controllers.NewNotificationController(deps.Melody, deps.Logger)
		router.GET("/ws", notificationController.HandleWS)
		admin.POST("/notify", notificationController.NotifyAll)
	}

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	router.GET("/ping", func(c *gin.Context) {
		c.String(http.StatusOK, "pong")
	})
}
