package gormrepository

import (
	"context"
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"btrscout/internal/models"
	"btrscout/internal/repository"
)

type Store struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Store {
	return &Store{db: db}
}

func (s *Store) InTx(ctx context.Context, fn func(tx *gorm.DB) error) error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.WithContext(ctx).Transaction(fn)
}

// --- dataset snapshots ------------------------------------------------------

func (s *Store) ListTransactions(ctx context.Context) ([]models.PropertyRecord, error) {
	if s == nil || s.db == nil {
		return nil, nil
	}
	var items []models.PropertyRecord
	if err := s.db.WithContext(ctx).Order("id").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (s *Store) ListRentals(ctx context.Context) ([]models.RentalObservation, error) {
	if s == nil || s.db == nil {
		return nil, nil
	}
	var items []models.RentalObservation
	if err := s.db.WithContext(ctx).Order("id").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (s *Store) ListAmenities(ctx context.Context) ([]models.AmenityRecord, error) {
	if s == nil || s.db == nil {
		return nil, nil
	}
	var items []models.AmenityRecord
	if err := s.db.WithContext(ctx).Order("id").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (s *Store) ListEnergyRecords(ctx context.Context) ([]models.EnergyRecord, error) {
	if s == nil || s.db == nil {
		return nil, nil
	}
	var items []models.EnergyRecord
	if err := s.db.WithContext(ctx).Order("id").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (s *Store) ListPlanningApplications(ctx context.Context) ([]models.PlanningApplication, error) {
	if s == nil || s.db == nil {
		return nil, nil
	}
	var items []models.PlanningApplication
	if err := s.db.WithContext(ctx).Order("id").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// replaceAll swaps the full contents of one dataset table. Collectors push
// complete snapshots, so partial merges are never needed.
func replaceAll[T any](ctx context.Context, tx *gorm.DB, model any, items []T) error {
	if tx == nil {
		return errors.New("replace requires a transaction")
	}
	if err := tx.WithContext(ctx).Where("1 = 1").Delete(model).Error; err != nil {
		return err
	}
	if len(items) == 0 {
		return nil
	}
	return tx.WithContext(ctx).CreateInBatches(items, 500).Error
}

func (s *Store) ReplaceTransactionsTx(ctx context.Context, tx *gorm.DB, items []models.PropertyRecord) error {
	return replaceAll(ctx, tx, &models.PropertyRecord{}, items)
}

func (s *Store) ReplaceRentalsTx(ctx context.Context, tx *gorm.DB, items []models.RentalObservation) error {
	return replaceAll(ctx, tx, &models.RentalObservation{}, items)
}

func (s *Store) ReplaceAmenitiesTx(ctx context.Context, tx *gorm.DB, items []models.AmenityRecord) error {
	return replaceAll(ctx, tx, &models.AmenityRecord{}, items)
}

func (s *Store) ReplaceEnergyRecordsTx(ctx context.Context, tx *gorm.DB, items []models.EnergyRecord) error {
	return replaceAll(ctx, tx, &models.EnergyRecord{}, items)
}

func (s *Store) ReplacePlanningApplicationsTx(ctx context.Context, tx *gorm.DB, items []models.PlanningApplication) error {
	return replaceAll(ctx, tx, &models.PlanningApplication{}, items)
}

// --- dataset freshness ------------------------------------------------------

func (s *Store) UpsertDatasetState(ctx context.Context, item *models.DatasetState) error {
	if s == nil || s.db == nil || item == nil {
		return nil
	}
	return s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "name"}},
		DoUpdates: clause.AssignmentColumns([]string{"row_count", "refreshed_at", "updated_at"}),
	}).Create(item).Error
}

func (s *Store) ListDatasetStates(ctx context.Context) ([]models.DatasetState, error) {
	if s == nil || s.db == nil {
		return nil, nil
	}
	var items []models.DatasetState
	if err := s.db.WithContext(ctx).Order("name").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// --- analysis reports -------------------------------------------------------

func (s *Store) InsertAnalysisReport(ctx context.Context, item *models.AnalysisReport) error {
	if s == nil || s.db == nil || item == nil {
		return nil
	}
	return s.db.WithContext(ctx).Create(item).Error
}

func (s *Store) GetAnalysisReportByID(ctx context.Context, id uint64) (*models.AnalysisReport, error) {
	if s == nil || s.db == nil {
		return nil, nil
	}
	var item models.AnalysisReport
	err := s.db.WithContext(ctx).First(&item, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (s *Store) reportQuery(ctx context.Context, params repository.ListReportsParams) *gorm.DB {
	query := s.db.WithContext(ctx).Model(&models.AnalysisReport{})
	if params.Postcode != nil && strings.TrimSpace(*params.Postcode) != "" {
		query = query.Where("postcode = ?", strings.ToUpper(strings.TrimSpace(*params.Postcode)))
	}
	if params.MinScore != nil {
		query = query.Where("overall_score >= ?", *params.MinScore)
	}
	if params.Since != nil && !params.Since.IsZero() {
		query = query.Where("created_at >= ?", *params.Since)
	}
	return query
}

func (s *Store) ListAnalysisReports(ctx context.Context, params repository.ListReportsParams) ([]models.AnalysisReport, error) {
	if s == nil || s.db == nil {
		return nil, nil
	}
	limit := params.Limit
	if limit <= 0 || limit > 500 {
		limit = 50
	}
	offset := params.Offset
	if offset < 0 {
		offset = 0
	}
	var items []models.AnalysisReport
	err := s.reportQuery(ctx, params).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (s *Store) CountAnalysisReports(ctx context.Context, params repository.ListReportsParams) (int64, error) {
	if s == nil || s.db == nil {
		return 0, nil
	}
	var total int64
	if err := s.reportQuery(ctx, params).Count(&total).Error; err != nil {
		return 0, err
	}
	return total, nil
}

func (s *Store) DeleteAnalysisReportsBefore(ctx context.Context, before time.Time) (int64, error) {
	if s == nil || s.db == nil {
		return 0, nil
	}
	res := s.db.WithContext(ctx).Where("created_at < ?", before).Delete(&models.AnalysisReport{})
	return res.RowsAffected, res.Error
}
