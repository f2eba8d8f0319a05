package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"btrscout/internal/models"
)

// ListReportsParams filters persisted analysis reports.
type ListReportsParams struct {
	Postcode *string
	MinScore *int
	Since    *time.Time
	Limit    int
	Offset   int
}

// Repository is the persistence contract for the dataset snapshots and the
// analysis reports. Dataset rows are written only by bulk replacement (each
// collector push swaps a whole table inside one transaction) and read only
// by full listing (the snapshot store loads entire tables into memory).
type Repository interface {
	InTx(ctx context.Context, fn func(tx *gorm.DB) error) error

	// Dataset snapshots.
	ListTransactions(ctx context.Context) ([]models.PropertyRecord, error)
	ListRentals(ctx context.Context) ([]models.RentalObservation, error)
	ListAmenities(ctx context.Context) ([]models.AmenityRecord, error)
	ListEnergyRecords(ctx context.Context) ([]models.EnergyRecord, error)
	ListPlanningApplications(ctx context.Context) ([]models.PlanningApplication, error)

	ReplaceTransactionsTx(ctx context.Context, tx *gorm.DB, items []models.PropertyRecord) error
	ReplaceRentalsTx(ctx context.Context, tx *gorm.DB, items []models.RentalObservation) error
	ReplaceAmenitiesTx(ctx context.Context, tx *gorm.DB, items []models.AmenityRecord) error
	ReplaceEnergyRecordsTx(ctx context.Context, tx *gorm.DB, items []models.EnergyRecord) error
	ReplacePlanningApplicationsTx(ctx context.Context, tx *gorm.DB, items []models.PlanningApplication) error

	// Dataset freshness.
	UpsertDatasetState(ctx context.Context, item *models.DatasetState) error
	ListDatasetStates(ctx context.Context) ([]models.DatasetState, error)

	// Analysis reports.
	InsertAnalysisReport(ctx context.Context, item *models.AnalysisReport) error
	GetAnalysisReportByID(ctx context.Context, id uint64) (*models.AnalysisReport, error)
	ListAnalysisReports(ctx context.Context, params ListReportsParams) ([]models.AnalysisReport, error)
	CountAnalysisReports(ctx context.Context, params ListReportsParams) (int64, error)
	DeleteAnalysisReportsBefore(ctx context.Context, before time.Time) (int64, error)
}
