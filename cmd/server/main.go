package main

import (
	"log"
	"os"
	"strings"
	"time"

	"vinfreak-api/config"
	"vinfreak-api/internal/audit"
	"vinfreak-api/internal/auth"
	"vinfreak-api/internal/car"
	"vinfreak-api/internal/dealership"
	"vinfreak-api/internal/importer"
	"vinfreak-api/internal/importjob"
	"vinfreak-api/internal/lookup"
	"vinfreak-api/internal/middlewares"
	"vinfreak-api/internal/ratelimit"
	"vinfreak-api/internal/settings"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	cfg := config.LoadConfig()

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatal("Failed to build logger:", err)
	}
	defer logger.Sync()

	dsn := "host=" + cfg.DBHost +
		" user=" + cfg.DBUser +
		" password=" + cfg.DBPassword +
		" dbname=" + cfg.DBName +
		" port=" + cfg.DBPort +
		" sslmode=disable"

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}

	if err := db.AutoMigrate(
		&car.Car{},
		&car.Make{},
		&car.CarModel{},
		&car.Category{},
		&dealership.Dealership{},
		&audit.AdminAudit{},
		&settings.Setting{},
		&importjob.ImportJob{},
	); err != nil {
		logger.Fatal("Failed to migrate schema", zap.Error(err))
	}

	r := gin.Default()
	r.Use(middlewares.RequestLogger(logger))

	origins := []string{"http://localhost:3000"}
	if cfg.AllowedOrigins != "" {
		origins = strings.Split(cfg.AllowedOrigins, ",")
	}
	r.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "X-CSRF-Token"},
		AllowCredentials: true,
	}))

	auditService := &audit.AuditService{DB: db}
	audit.RegisterRoutes(r, auditService)

	settingsService := &settings.SettingsService{DB: db, Audit: auditService}
	if err := settingsService.Seed(); err != nil {
		logger.Fatal("Failed to seed settings", zap.Error(err))
	}
	settings.RegisterRoutes(r, settingsService)

	authService := &auth.AuthService{
		CFG:     &cfg,
		Limiter: ratelimit.NewSlidingWindow(time.Minute, 10),
	}
	auth.RegisterRoutes(r, authService)

	carService := &car.CarService{DB: db, Audit: auditService}
	car.RegisterRoutes(r, carService)

	dealershipService := &dealership.DealershipService{DB: db, Audit: auditService}
	dealership.RegisterRoutes(r, dealershipService)

	jobService := &importjob.JobService{DB: db, Audit: auditService}
	importjob.RegisterRoutes(r, jobService)

	importService := &importer.ImportService{DB: db, Audit: auditService, Jobs: jobService}
	importer.RegisterRoutes(r, importService)

	lookup.RegisterRoutes(r, lookup.NewLookupService(db))

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	logger.Info("Starting server", zap.String("addr", "0.0.0.0:"+port))
	log.Fatal(r.Run("0.0.0.0:" + port))
}
