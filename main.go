package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"flexspace/config"
	"flexspace/cron"
	"flexspace/database"
	bookingRepoPkg "flexspace/database/repository/booking"
	facilityRepoPkg "flexspace/database/repository/facility"
	programRepoPkg "flexspace/database/repository/program"
	userRepoPkg "flexspace/database/repository/user"
	"flexspace/handlers"
	"flexspace/middleware"
	"flexspace/routes"
	"flexspace/services/booking"
	"flexspace/services/facility"
	"flexspace/services/notification"
	"flexspace/services/program"
	"flexspace/services/user"
	"flexspace/utils"

	"github.com/gin-gonic/gin"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitAuthCache()
	utils.FirebaseInit()

	cloudinaryStorageService, err := utils.Cloudinary()
	if err != nil {
		logger.Sugar().Fatalf("main: failed to initialize cloudinary storage service: %v", err)
	}

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())

	// repositories.
	bookingRepo := bookingRepoPkg.NewMongoBookingRepo()
	facilityRepo := facilityRepoPkg.NewMongoFacilityRepo()
	programRepo := programRepoPkg.NewMongoProgramRepo()
	userRepo := userRepoPkg.NewMongoUserRepo()

	// services.
	userService := &user.DefaultUserService{
		Repo: userRepo,
	}

	facilityService := &facility.DefaultFacilityService{
		Repo: facilityRepo,
	}

	enqueuer := notification.NewAsynqEnqueuer()
	notificationService := &notification.DefaultNotificationService{
		UserRepo: userRepo,
	}

	bookingService := &booking.DefaultBookingService{
		Repo:         bookingRepo,
		FacilityRepo: facilityRepo,
		UserRepo:     userRepo,
		Notify:       enqueuer,
		Config: booking.AdmissionConfig{
			PurposeMinLen:      config.AppConfig.PurposeMinLen,
			PurposeMaxLen:      config.AppConfig.PurposeMaxLen,
			OrganizationMaxLen: config.AppConfig.OrganizationMaxLen,
			DuplicateWindow:    time.Duration(config.AppConfig.DuplicateWindowSecs) * time.Second,
		},
	}

	programService := &program.DefaultProgramService{
		Repo:     programRepo,
		UserRepo: userRepo,
		Notify:   enqueuer,
	}

	// Assemble the handler bundle.
	handlerBundle := &handlers.HandlerBundle{
		UserRepo:   userRepo,
		Users:      handlers.NewUserHandler(userService),
		Facilities: handlers.NewFacilityHandler(facilityService),
		Bookings:   handlers.NewBookingHandler(bookingService, logger),
		Programs:   handlers.NewProgramHandler(programService),
		Admin:      handlers.NewAdminHandler(userService),
		Storage:    handlers.NewStorageHandler(cloudinaryStorageService),
	}

	// Register routes with the assembled handler bundle.
	routes.RegisterRoutes(router, handlerBundle)

	// Background worker: notification fan-out and the hourly completion sweep.
	cron.InitWorker(notificationService, bookingService)

	utils.StartHealthMonitor(utils.GetAuthCacheClient(), database.MongoClient)

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
