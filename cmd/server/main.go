package main

import (
	"log"
	"time"

	"go-cookie-shop/internal/auth"
	"go-cookie-shop/internal/config"
	"go-cookie-shop/internal/handlers"
	"go-cookie-shop/internal/middleware"
	"go-cookie-shop/internal/notify"
	"go-cookie-shop/internal/store"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func buildStore(cfg config.StoreConfig) (store.Store, error) {
	if cfg.Backend == "mysql" {
		db, err := store.ConnectMySQL(cfg.MySQLDSN)
		if err != nil {
			return nil, err
		}
		return store.NewGormStore(db)
	}
	return store.NewSheetsStore(cfg.SheetID, cfg.CredentialsFile)
}

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: No .env file found")
	}

	cfg := config.Load()
	auth.SetSecret(cfg.Auth.JWTSecret)

	orderStore, err := buildStore(cfg.Store)
	if err != nil {
		log.Fatal("Store setup failed:", err)
	}
	notifier := notify.NewTelegramNotifier(cfg.Telegram.BotToken, cfg.Telegram.ChatIDs)

	orderHandler := &handlers.OrderHandler{Store: orderStore, Notifier: notifier, Threshold: cfg.SpinThreshold}
	spinHandler := handlers.NewSpinHandler(orderStore, notifier, cfg.SpinThreshold)
	invoiceHandler := &handlers.InvoiceHandler{Store: orderStore}
	notifyHandler := &handlers.NotifyHandler{Notifier: notifier}
	todoHandler := &handlers.TodoHandler{Store: orderStore}
	authHandler := &handlers.AuthHandler{Cfg: cfg.Auth}

	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000", cfg.BaseURL},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "X-Sales-Name"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/health", func(c *gin.Context) { c.JSON(200, gin.H{"status": "online"}) })
	r.POST("/login", authHandler.Login)

	// --- CUSTOMER ROUTES ---
	// Order submission and the prize wheel are open: customers reach
	// them from the storefront without logging in.
	r.POST("/api/orders", orderHandler.Submit)
	r.GET("/api/orders/:orderId/spin", spinHandler.Open)
	r.POST("/api/orders/:orderId/spin", spinHandler.Spin)
	r.POST("/api/orders/:orderId/spin/close", spinHandler.Close)

	// --- PROTECTED ROUTES ---
	api := r.Group("/api")
	api.Use(middleware.AuthMiddleware())
	{
		api.GET("/orders", orderHandler.List)
		api.GET("/orders/:orderId", orderHandler.Get)
		api.PUT("/orders/:orderId", orderHandler.Update)

		api.GET("/todo", todoHandler.List)
		api.POST("/todo/status", todoHandler.SetStatus)

		// ADMIN ONLY
		admin := api.Group("/")
		admin.Use(middleware.RequireRole("admin"))
		{
			admin.PATCH("/orders/:orderId/spin-status", spinHandler.PatchStatus)
			admin.POST("/orders/:orderId/invoice", invoiceHandler.Create)
			admin.POST("/notify", notifyHandler.Send)
		}
	}

	log.Println("Server starting on " + cfg.BaseURL)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatal("Server failed to start:", err)
	}
}
