package main

import (
	"log"
	"os"
	"time"

	"github.com/drivehive/drivehive-backend/internal/database"
	"github.com/drivehive/drivehive-backend/internal/handlers"
	"github.com/drivehive/drivehive-backend/internal/middleware"
	"github.com/drivehive/drivehive-backend/internal/services"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	db, err := database.InitDB()
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		log.Fatalf("Failed to get database instance: %v", err)
	}

	// Configure connection pool
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)
	sqlDB.SetConnMaxLifetime(time.Hour)

	if err := database.RunMigrations(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	if err := services.InitRedis(); err != nil {
		log.Fatalf("Failed to initialize Redis: %v", err)
	}

	// Firebase is optional - push notifications are disabled if unset
	if err := services.InitFirebase(); err != nil {
		log.Printf("Firebase initialization warning: %v", err)
	}

	if err := services.InitStorage(); err != nil {
		log.Fatalf("Failed to initialize storage: %v", err)
	}

	hub := services.NewHub()
	go hub.Run()

	notifier := services.NewNotifier(db)
	go notifier.Run()

	r := gin.Default()

	config := cors.DefaultConfig()
	config.AllowOrigins = []string{"*"}
	config.AllowHeaders = []string{"Origin", "Content-Type", "Accept", "Authorization", "X-VERIFY"}
	r.Use(cors.New(config))

	r.Static("/uploads", "./uploads")

	// Payment gateway callback, signed with X-VERIFY rather than a JWT
	r.POST("/phonepe-webhook", handlers.PhonePeWebhook(db, hub))

	api := r.Group("/api/v1")
	{
		users := api.Group("/users")
		{
			users.POST("/register", handlers.Register(db))
			users.POST("/login", handlers.Login(db))
			users.POST("/refresh-token", handlers.RefreshAccessToken(db))

			usersAuth := users.Group("/", middleware.AuthMiddleware())
			{
				usersAuth.GET("/profile", handlers.GetProfile(db))
				usersAuth.POST("/updateProfile", handlers.UpdateProfile(db))
				usersAuth.PUT("/update_password", handlers.UpdatePassword(db))
				usersAuth.POST("/uploadImage", handlers.UploadProfileImage(db))
				usersAuth.POST("/logout", handlers.Logout(db))
			}
		}

		api.GET("/ws", middleware.AuthMiddleware(), handlers.WebSocketHandler(hub))

		cars := api.Group("/cars")
		{
			cars.GET("", handlers.GetCars(db))
			cars.GET("/:carId", handlers.GetCarByID(db))

			carsAuth := cars.Group("/", middleware.AuthMiddleware(), middleware.RequireRole("partner"))
			{
				carsAuth.POST("", handlers.CreateCar(db))
				carsAuth.GET("/fleet", handlers.GetCarsByPartner(db))
				carsAuth.PUT("/:carId", handlers.UpdateCar(db))
				carsAuth.DELETE("/:carId", handlers.DeleteCar(db))
			}
		}

		booking := api.Group("/booking")
		{
			booking.GET("/getAllBooking", handlers.GetAllBookings(db))
			booking.PUT("/paymentstatus", handlers.UpdateBookingPaymentStatus(db, hub))
			booking.DELETE("/delete/:driverId", handlers.DeleteBookingsByDriver(db))

			bookingAuth := booking.Group("/", middleware.AuthMiddleware())
			{
				bookingAuth.POST("/createBooking", handlers.CreateBooking(db, notifier, hub))
				bookingAuth.GET("/getBookingByCarId/:carId", handlers.GetBookingsByCar(db))
				bookingAuth.GET("/getBookingByuserId", handlers.GetBookingsByCustomer(db))
				bookingAuth.GET("/getBookingBydriverId", handlers.GetBookingsByDriver(db))
				bookingAuth.GET("/getBookingBypartner", handlers.GetBookingsByPartner(db))
				bookingAuth.GET("/byId/:bookingId", handlers.GetBookingByID(db))
				bookingAuth.POST("/updatePartnerStatus", handlers.UpdatePartnerStatus(db, hub))
				bookingAuth.POST("/assignDriver", handlers.AssignDriver(db, notifier, hub))
				bookingAuth.POST("/updateDriverStatus", handlers.UpdateDriverStatus(db, notifier, hub))
			}
		}

		customers := api.Group("/customers", middleware.AuthMiddleware(), middleware.RequireRole("customer"))
		{
			customers.POST("/identification", handlers.UploadIdentification(db))
			customers.DELETE("/remove", handlers.RemoveCustomer(db))
		}

		drivers := api.Group("/drivers", middleware.AuthMiddleware())
		{
			drivers.GET("/byPartner", middleware.RequireRole("partner"), handlers.GetDriversByPartner(db))
			drivers.POST("/attach", middleware.RequireRole("partner"), handlers.AttachDriverToPartner(db))
			drivers.POST("/availability", middleware.RequireRole("driver"), handlers.UpdateDriverAvailability(db))
			drivers.DELETE("/remove", middleware.RequireRole("driver"), handlers.RemoveDriver(db))
		}

		partners := api.Group("/partners")
		{
			partners.GET("/:partnerId", handlers.GetPartnerByID(db))

			partnersAuth := partners.Group("/", middleware.AuthMiddleware(), middleware.RequireRole("partner"))
			{
				partnersAuth.POST("/acceptTerms", handlers.AcceptTerms(db))
				partnersAuth.POST("/paymentDetails", handlers.UpdatePaymentDetails(db))
				partnersAuth.DELETE("/remove", handlers.RemovePartner(db))
			}
		}

		notifications := api.Group("/notifications", middleware.AuthMiddleware())
		{
			notifications.POST("/register-token", handlers.RegisterDeviceToken(db))
			notifications.DELETE("/remove-token", handlers.RemoveDeviceToken(db))
			notifications.GET("", handlers.GetNotifications(db))
			notifications.PATCH("/:notificationId/read", handlers.MarkNotificationRead(db))
			notifications.DELETE("/:notificationId", handlers.DeleteNotification(db))
			notifications.DELETE("", handlers.DeleteAllNotifications(db))
		}
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	if err := r.Run(":" + port); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
