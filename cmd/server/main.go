package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"macrobox/internal/config"
	"macrobox/internal/delivery"
	"macrobox/internal/handlers"
	"macrobox/internal/middleware"
	"macrobox/internal/repositories/mongodb"
	"macrobox/internal/services"
	"macrobox/internal/utils"
	"macrobox/pkg/cache"
	"macrobox/pkg/database"
	"macrobox/pkg/email"
	"macrobox/pkg/logger"
	"macrobox/pkg/payment"
	"macrobox/routes"

	"github.com/gin-gonic/gin"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.NewLogger(&logger.Config{
		Level:  logger.LogLevel(cfg.App.LogLevel),
		Format: "json",
		Output: "stdout",
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to init logger: %v\n", err)
		os.Exit(1)
	}

	db, err := database.NewMongoDB(&database.DatabaseConfig{
		URI:            cfg.Database.URI,
		Database:       cfg.Database.Database,
		MaxPoolSize:    cfg.Database.MaxPoolSize,
		MinPoolSize:    cfg.Database.MinPoolSize,
		ConnectTimeout: cfg.Database.ConnectTimeout,
		SocketTimeout:  cfg.Database.SocketTimeout,
	})
	if err != nil {
		log.WithError(err).Fatal("failed to connect to MongoDB")
	}
	defer db.Close()

	if err := database.NewMigrator(db.Database).Up(); err != nil {
		log.WithError(err).Fatal("failed to run migrations")
	}

	redisCache, err := cache.NewRedisCache(&cache.RedisConfig{
		Host:         cfg.Redis.Host,
		Port:         cfg.Redis.Port,
		Password:     cfg.Redis.Password,
		DB:           cfg.Redis.DB,
		PoolSize:     cfg.Redis.PoolSize,
		MinIdleConns: cfg.Redis.MinIdleConns,
		DialTimeout:  cfg.Redis.DialTimeout,
		ReadTimeout:  cfg.Redis.ReadTimeout,
		WriteTimeout: cfg.Redis.WriteTimeout,
	})
	if err != nil {
		log.WithError(err).Fatal("failed to connect to Redis")
	}
	defer redisCache.Close()

	mailer := email.NewMailer(&email.Config{
		Host:      cfg.SMTP.Host,
		Port:      cfg.SMTP.Port,
		Username:  cfg.SMTP.Username,
		Password:  cfg.SMTP.Password,
		FromEmail: cfg.SMTP.FromEmail,
		FromName:  cfg.SMTP.FromName,
	})

	gateway := selectGateway(cfg.Payment)
	log.WithField("provider", gateway.Provider()).Info("payment gateway configured")

	// Repositories
	userRepo := mongodb.NewUserRepository(db.Database)
	mealRepo := mongodb.NewMealRepository(db.Database)
	couponRepo := mongodb.NewCouponRepository(db.Database, redisCache)
	orderRepo := mongodb.NewOrderRepository(db.Database)

	// Services
	slotValidator := delivery.NewSlotValidator(delivery.SlotConfig{
		StartHour:    cfg.Delivery.SlotStartHour,
		EndHour:      cfg.Delivery.SlotEndHour,
		MinLeadHours: cfg.Delivery.MinLeadHours,
	})
	couponService := services.NewCouponService(couponRepo, log)
	checkoutService := services.NewCheckoutService(orderRepo, mealRepo, couponService, slotValidator, gateway, cfg.Payment.Currency, log)
	authService := services.NewAuthService(userRepo, mailer, services.AuthConfig{
		JWTSecret:     cfg.Security.JWTSecret,
		RefreshSecret: cfg.Security.JWTRefreshSecret,
		AccessTTL:     cfg.Security.JWTAccessTokenTTL,
		RefreshTTL:    cfg.Security.JWTRefreshTokenTTL,
		ResetTokenTTL: cfg.Security.ResetTokenTTL,
		FrontendURL:   cfg.App.FrontendURL,
	}, log)
	mealService := services.NewMealService(mealRepo)
	orderService := services.NewOrderService(orderRepo)
	userService := services.NewUserService(userRepo, mealRepo)

	// Handlers
	checkoutHandler := handlers.NewCheckoutHandler(checkoutService, log)
	couponHandler := handlers.NewCouponHandler(couponService, log)
	mealHandler := handlers.NewMealHandler(mealService, log)
	orderHandler := handlers.NewOrderHandler(orderService, log)
	authHandler := handlers.NewAuthHandler(authService, log)
	userHandler := handlers.NewUserHandler(userService, log)

	if cfg.App.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()
	engine.Use(
		middleware.Recovery(log),
		middleware.RequestID(),
		middleware.RequestLogger(log),
		middleware.CORS(cfg.Security.CORSAllowedOrigins),
	)

	engine.GET("/health", func(c *gin.Context) {
		if err := db.Ping(); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unhealthy"})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"name":    utils.AppName,
			"version": utils.AppVersion,
		})
	})

	api := engine.Group("/api")
	jwtSecret := cfg.Security.JWTSecret
	routes.SetupAuthRoutes(api, authHandler)
	routes.SetupMealRoutes(api, mealHandler, jwtSecret)
	routes.SetupCheckoutRoutes(api, checkoutHandler, jwtSecret)
	routes.SetupCouponRoutes(api, couponHandler, jwtSecret)
	routes.SetupOrderRoutes(api, orderHandler, jwtSecret)
	routes.SetupUserRoutes(api, userHandler, jwtSecret)

	server := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.App.Host, cfg.App.Port),
		Handler:      engine,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Infof("server listening on %s", server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.WithError(err).Fatal("server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.WithError(err).Error("forced shutdown")
	}
}

func selectGateway(cfg *config.PaymentConfig) payment.Gateway {
	if cfg.DefaultProvider == "stripe" {
		return payment.NewStripeGateway(cfg.Stripe.SecretKey, cfg.Stripe.PublishableKey, cfg.Stripe.SigningSecret)
	}
	return payment.NewRazorpayGateway(cfg.Razorpay.KeyID, cfg.Razorpay.KeySecret)
}
