package db

import "btrscout/internal/models"

// AutoMigrate keeps the schema in step with the model structs. The
// dataset tables are replace-only, so additive migration is enough.
func (d *DB) AutoMigrate() error {
	if d == nil || d.Gorm == nil {
		return nil
	}
	return d.Gorm.AutoMigrate(
		&models.PropertyRecord{},
		&models.RentalObservation{},
		&models.AmenityRecord{},
		&models.EnergyRecord{},
		&models.PlanningApplication{},
		&models.DatasetState{},
		&models.AnalysisReport{},
	)
}
