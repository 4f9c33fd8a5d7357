package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
	"travel-agency-api/auth"
	"travel-agency-api/internal/booking"
	"travel-agency-api/internal/client"
	"travel-agency-api/internal/commission"
	"travel-agency-api/internal/config"
	"travel-agency-api/internal/db"
	"travel-agency-api/internal/email"
	"travel-agency-api/internal/middleware"
	"travel-agency-api/internal/queue"
	"travel-agency-api/internal/scheduler"
	"travel-agency-api/internal/user"
	"travel-agency-api/internal/worker"
	"travel-agency-api/redis"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func main() {
	// Load configuration
	config.LoadConfig()

	// Connect to database
	if err := db.ConnectDb(); err != nil {
		log.Fatalf("Database connection failed: %v", err)
	}
	defer db.CloseDb()

	// Migrate database schema
	if err := db.RunMigrations(); err != nil {
		log.Fatalf("Migration failed: %v", err)
	}

	// Seed database with initial data (for development)
	if config.AppConfig.Environment == "development" {
		db.SeedData()
	}

	// Initialize Redis. Production needs it for session revocation.
	if err := redis.InitRedis(); err != nil {
		if config.AppConfig.Environment != "development" {
			log.Fatalf("Redis connection failed: %v", err)
		}
		log.Println("[WARN] Redis not available. Running with JWT-only auth.")
	}

	// Worker pool for background side effects
	pool := worker.NewWorkerPool(4)
	defer pool.Shutdown()

	// Booking event queue. The API runs without it if RabbitMQ is down.
	var publisher *queue.Publisher
	var consumer *queue.Consumer
	if p, err := queue.NewPublisher(config.AppConfig.AMQPAddress); err != nil {
		log.Printf("[WARN] booking events disabled: %v", err)
	} else {
		publisher = p
		defer publisher.Close()
	}
	if publisher != nil {
		if c, err := queue.NewConsumer(config.AppConfig.AMQPAddress); err != nil {
			log.Printf("[WARN] booking audit consumer disabled: %v", err)
		} else {
			consumer = c
			defer consumer.Close()
		}
	}

	consumerCtx, cancelConsumer := context.WithCancel(context.Background())
	defer cancelConsumer()
	if consumer != nil {
		go func() {
			if err := consumer.Start(consumerCtx); err != nil && err != context.Canceled {
				log.Printf("[ERROR] booking audit consumer stopped: %v", err)
			}
		}()
	}

	// Initialize repositories
	userRepo := user.NewRepository(db.AppDb)
	clientRepo := client.NewRepository(db.AppDb)
	bookingRepo := booking.NewRepository(db.AppDb)
	commissionRepo := commission.NewRepository(db.AppDb)

	// Initialize services
	userService := user.NewService(userRepo)
	clientService := client.NewService(clientRepo)
	var eventPublisher booking.EventPublisher
	if publisher != nil {
		eventPublisher = publisher
	}
	bookingService := booking.NewService(bookingRepo, clientRepo, eventPublisher, pool)
	commissionService := commission.NewService(commissionRepo, bookingRepo, clientRepo)

	// Initialize handlers
	userHandler := user.NewHandler(userService)
	clientHandler := client.NewHandler(clientService)
	bookingHandler := booking.NewHandler(bookingService)
	commissionHandler := commission.NewHandler(commissionService)

	// Final payment reminders
	if config.AppConfig.SMTPHost != "" {
		mailClient, err := email.NewClient(
			config.AppConfig.SMTPHost,
			config.AppConfig.SMTPPort,
			config.AppConfig.SMTPUser,
			config.AppConfig.SMTPPassword,
			config.AppConfig.SMTPFromName,
			config.AppConfig.SMTPFromEmail,
		)
		if err != nil {
			log.Printf("[WARN] payment reminders disabled: %v", err)
		} else {
			paymentScheduler := scheduler.NewPaymentScheduler(bookingRepo, mailClient, pool)
			paymentScheduler.Start()
			defer paymentScheduler.Stop()
		}
	} else {
		log.Println("SMTP not configured, payment reminders disabled")
	}

	// Initialize Gin router
	router := gin.Default()
	router.Use(middleware.ErrorHandler())

	// cors setting
	corsConfig := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: false,
	}
	if config.AppConfig.Environment == "development" {
		corsConfig.AllowAllOrigins = true
	} else {
		corsConfig.AllowOrigins = []string{config.AppConfig.FrontendAddress}
	}
	router.Use(cors.New(corsConfig))

	// Public routes
	router.POST("/register", userHandler.Register)
	router.POST("/login", userHandler.Login)

	// Authenticated routes
	authed := router.Group("/", auth.AuthMiddleWare())
	authed.DELETE("/logout", userHandler.Logout)
	authed.GET("/profile", userHandler.GetProfile)

	authed.GET("/clients", clientHandler.ListClients)
	authed.POST("/clients", clientHandler.CreateClient)
	authed.GET("/clients/:id", clientHandler.GetClient)
	authed.PATCH("/clients/:id", clientHandler.UpdateClient)
	authed.DELETE("/clients/:id", clientHandler.DeleteClient)
	authed.GET("/clients/:id/bookings", bookingHandler.ListByClient)

	authed.GET("/bookings", bookingHandler.ListBookings)
	authed.POST("/bookings", bookingHandler.CreateBooking)
	authed.GET("/bookings/:id", bookingHandler.GetBooking)
	authed.PATCH("/bookings/:id", bookingHandler.UpdateBooking)
	authed.DELETE("/bookings/:id", bookingHandler.DeleteBooking)

	authed.GET("/commissions", commissionHandler.ListCommissions)
	authed.POST("/commissions", commissionHandler.CreateCommission)
	authed.GET("/commissions/report", commissionHandler.ExportReport)
	authed.GET("/commissions/:id", commissionHandler.GetCommission)
	authed.PATCH("/commissions/:id", commissionHandler.UpdateCommission)
	authed.DELETE("/commissions/:id", commissionHandler.DeleteCommission)

	// Server configuration
	serverPort := config.AppConfig.ServerPort
	server := &http.Server{
		Addr:    fmt.Sprintf(":%s", serverPort),
		Handler: router.Handler(),
	}

	// Start server
	go func() {
		log.Printf("Server listening on port %s", serverPort)
		err := server.ListenAndServe()
		if err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Println("Server shutdown error:", err)
	}

	<-ctx.Done()
	log.Println("Server shutdown complete")
}
