package database

import (
	"rentbot-backend/config"
	"rentbot-backend/models"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

var DB *gorm.DB

// ConnectDatabase opens the sqlite store and migrates the schema.
func ConnectDatabase(cfg *config.Config) error {
	logLevel := gormlogger.Error
	if cfg.Server.Env == "development" {
		logLevel = gormlogger.Info
	}

	db, err := gorm.Open(sqlite.Open(cfg.Database.Path), &gorm.Config{
		Logger: gormlogger.Default.LogMode(logLevel),
	})
	if err != nil {
		return err
	}

	if err := Migrate(db); err != nil {
		return err
	}

	DB = db
	return nil
}

// Migrate runs automigration for every model. Exposed so tests can build
// an in-memory store with the same schema.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Property{},
		&models.Tenant{},
		&models.Subscription{},
		&models.PremiumRequest{},
		&models.AdminConfig{},
	)
}
