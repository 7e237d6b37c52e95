package migration

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/freshvale-inc/freshvale/internal/infrastructure/persistence/models"
	"github.com/freshvale-inc/freshvale/internal/shared/logger"
)

// AutoMigrateModels lists every persistence model in dependency order.
func AutoMigrateModels() []interface{} {
	return []interface{}{
		&models.AddressModel{},
		&models.ZoneModel{},
		&models.ZoneOverrideModel{},
		&models.SubscriptionModel{},
		&models.RouteModel{},
		&models.RouteStopModel{},
		&models.BottleModel{},
		&models.BottleLogModel{},
	}
}

// Run applies the schema migration.
func Run(db *gorm.DB) error {
	logger.Info("running database migration")

	if err := db.AutoMigrate(AutoMigrateModels()...); err != nil {
		return fmt.Errorf("failed to migrate database schema: %w", err)
	}

	logger.Info("database migration completed")
	return nil
}
