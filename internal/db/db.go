package db

import (
	"fmt"
	"log"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"travel-agency-api/internal/config"
)

var AppDb *gorm.DB

func ConnectDb() error {
	cfg := config.AppConfig
	dsn := fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=disable TimeZone=UTC",
		cfg.DBHost, cfg.DBUser, cfg.DBPassword, cfg.DBName, cfg.DBPort,
	)

	logLevel := logger.Warn
	if cfg.Environment == "development" {
		logLevel = logger.Info
	}

	database, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logLevel),
	})
	if err != nil {
		return fmt.Errorf("connecting to database: %w", err)
	}

	sqlDb, err := database.DB()
	if err != nil {
		return err
	}
	sqlDb.SetMaxOpenConns(25)
	sqlDb.SetMaxIdleConns(5)
	sqlDb.SetConnMaxLifetime(30 * time.Minute)

	AppDb = database
	log.Println("Connected to database")
	return nil
}

func CloseDb() {
	if AppDb == nil {
		return
	}
	sqlDb, err := AppDb.DB()
	if err != nil {
		log.Printf("[ERROR] getting database handle: %v", err)
		return
	}
	if err := sqlDb.Close(); err != nil {
		log.Printf("[ERROR] closing database: %v", err)
	}
}
