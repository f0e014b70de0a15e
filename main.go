package main

import (
	"log"
	"os"

	"github.com/gin-gonic/gin"

	"backend/internal/config"
	"backend/internal/database"
	"backend/internal/handlers"
	"backend/internal/middleware"
	"backend/internal/notify"
)

func main() {
	config.Load()

	client, err := database.Connect(config.AppEnv.MongoURI)
	if err != nil {
		log.Fatal(err)
	}

	db := client.Database(config.AppEnv.DBName)

	log.Println("MongoDB connected to:", db.Name())

	if err := database.EnsureUserIndexes(db); err != nil {
		log.Printf("user index warning: %v", err)
	}
	if err := database.EnsureAdminIndexes(db); err != nil {
		log.Printf("admin index warning: %v", err)
	}

	email := notify.NewSMTPSender(
		config.AppEnv.SMTPHost,
		config.AppEnv.SMTPPort,
		config.AppEnv.SMTPUser,
		config.AppEnv.SMTPPass,
	)
	sms := notify.NewTwilioSender(
		config.AppEnv.TwilioAccountSID,
		config.AppEnv.TwilioAuthToken,
		config.AppEnv.TwilioFromNumber,
	)

	r := gin.Default()
	r.Static("/uploads", config.AppEnv.UploadDir)

	r.POST("/auth/login", handlers.AdminLogin(db, config.AppEnv.JWTSecret, config.AppEnv.TokenTTL))
	r.POST("/auth/otp", handlers.RequestOTP(db, email, sms))
	r.POST("/auth/verify", handlers.VerifyOTP(db, config.AppEnv.JWTSecret, config.AppEnv.TokenTTL))

	r.GET("/products", handlers.GetProducts(db))
	r.GET("/products/:id", handlers.GetProduct(db))
	r.GET("/settings", handlers.GetSettings(db))

	r.POST("/upload", handlers.UploadMedia(config.AppEnv.UploadDir))

	r.POST("/payment/initiate", handlers.InitiatePayment())
	r.POST("/payment/success", handlers.ConfirmPayment(email, config.AppEnv.OrderNotifyEmail))

	admin := r.Group("/")
	admin.Use(middleware.AdminAuth(config.AppEnv.JWTSecret))
	{
		admin.POST("/products", handlers.CreateProduct(db))
		admin.PUT("/products/:id", handlers.UpdateProduct(db))
		admin.DELETE("/products/:id", handlers.DeleteProduct(db))

		admin.PUT("/settings", handlers.UpdateSettings(db))
	}

	user := r.Group("/user")
	user.Use(middleware.CustomerAuth(config.AppEnv.JWTSecret))
	{
		user.GET("/profile", handlers.GetProfile(db))
		user.PUT("/profile", handlers.UpdateProfile(db))
		user.POST("/address", handlers.CreateAddress(db))
		user.DELETE("/address/:id", handlers.DeleteAddress(db))
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	r.Run(":" + port)
}
