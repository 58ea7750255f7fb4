// File: rentwheels/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"rentwheels/config"
	"rentwheels/cron"
	"rentwheels/database"
	pricingRepo "rentwheels/database/repository/pricing"
	reservationRepo "rentwheels/database/repository/reservation"
	vehicleRepo "rentwheels/database/repository/vehicle"
	"rentwheels/handlers"
	"rentwheels/middleware"
	"rentwheels/routes"
	"rentwheels/services/booking"
	"rentwheels/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitRedis()

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())

	// repositories.
	vehRepo := vehicleRepo.NewMongoVehicleRepo()
	priceRepo := pricingRepo.NewMongoPricingRepo()
	resRepo := reservationRepo.NewMongoReservationRepo()

	// The interval store is authoritative for overlap checks; warm it from
	// the persisted reservations so restarts do not forget bookings.
	intervals := booking.NewIntervalStore(config.BufferWindow(), resRepo)
	warmCtx, warmCancel := context.WithTimeout(context.Background(), 30*time.Second)
	if err := intervals.WarmUp(warmCtx); err != nil {
		logger.Sugar().Fatalf("main: failed to warm interval store: %v", err)
	}
	warmCancel()

	// booking engine.
	engine := &booking.DefaultEngine{
		Vehicles:  vehRepo,
		Rules:     priceRepo,
		Intervals: intervals,
		Resolver:  booking.NewRateResolver(config.AppConfig.MaxAggregateDiscount),
		Quotes:    &booking.RedisQuoteStore{Client: utils.GetQuoteCacheClient()},
		Idem:      &booking.RedisIdempotencyStore{Client: utils.GetIdemCacheClient()},
		QuoteTTL:  config.QuoteTTL(),
		Reminders: cron.NewReminderScheduler(time.Duration(config.AppConfig.ReminderLeadHours) * time.Hour),
	}

	cron.InitReminderWorker(cron.LogNotifier{})

	bookingHandler := handlers.NewBookingHandler(engine, logger)
	pricingHandler := handlers.NewPricingHandler(priceRepo)
	vehicleHandler := handlers.NewVehicleHandler(vehRepo, resRepo)

	routes.SetupRoutes(router, bookingHandler, pricingHandler, vehicleHandler)

	utils.StartHealthMonitor(
		[]*redis.Client{utils.GetQuoteCacheClient(), utils.GetIdemCacheClient()},
		database.MongoClient,
	)

	// Start the HTTP server.
	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
