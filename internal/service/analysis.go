// Package service composes the dataset snapshot, the estimators and the
// scorer into full single-address analyses and manages their persistence.
package service

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"btrscout/internal/dataset"
	"btrscout/internal/estimate"
	"btrscout/internal/models"
	"btrscout/internal/repository"
	"btrscout/internal/scoring"
)

// AnalysisRequest identifies the property to analyze. Address is required;
// everything else sharpens the estimate when present.
type AnalysisRequest struct {
	Address      string `json:"address" binding:"required"`
	Postcode     string `json:"postcode"`
	PropertyType string `json:"property_type"`
	Bedrooms     int    `json:"bedrooms"`
}

// AnalysisReport is the full single-address report returned to callers and
// persisted as the jsonb payload of models.AnalysisReport.
type AnalysisReport struct {
	ID       uint64 `json:"id,omitempty"`
	Address  string `json:"address"`
	Postcode string `json:"postcode,omitempty"`

	Property PropertySection `json:"property"`
	Rental   RentalSection   `json:"rental"`
	Area     AreaSection     `json:"area"`
	Energy   EnergySection   `json:"energy"`

	Score       scoring.Result                `json:"score"`
	Renovations []estimate.RenovationScenario `json:"renovation_scenarios"`
	Forecast    []estimate.ForecastYear       `json:"rental_forecast"`

	DataQuality string    `json:"data_quality"`
	GeneratedAt time.Time `json:"generated_at"`
}

type PropertySection struct {
	EstimatedValue decimal.Decimal `json:"estimated_value"`
	PropertyType   string          `json:"property_type"`
	Bedrooms       int             `json:"bedrooms,omitempty"`
	FloorAreaSqFt  float64         `json:"floor_area_sqft"`
	Features       []string        `json:"features,omitempty"`
	DataQuality    string          `json:"data_quality"`
}

type RentalSection struct {
	MonthlyRent  decimal.Decimal `json:"monthly_rent"`
	AnnualRent   decimal.Decimal `json:"annual_rent"`
	GrossYield   float64         `json:"gross_yield"`
	GrowthRate   float64         `json:"growth_rate"`
	RentalDemand string          `json:"rental_demand"`
	VoidPeriods  string          `json:"void_periods"`
	DataQuality  string          `json:"data_quality"`
}

type AreaSection struct {
	Amenities      map[string][]string `json:"amenities"`
	AmenityCount   int                 `json:"amenity_count"`
	CrimeRate      string              `json:"crime_rate"`
	SchoolRating   string              `json:"school_rating"`
	TransportLinks string              `json:"transport_links"`
	DataQuality    string              `json:"data_quality"`
}

type EnergySection struct {
	CurrentRating         string `json:"current_energy_rating"`
	PotentialRating       string `json:"potential_energy_rating"`
	CurrentEfficiency     int    `json:"current_energy_efficiency"`
	PotentialEfficiency   int    `json:"potential_energy_efficiency"`
	EfficiencyImprovement int    `json:"efficiency_improvement"`
	DataQuality           string `json:"data_quality"`
}

// AnalysisService builds and stores property analyses. Dataset rows are
// preferred wherever they cover the address; each section falls back to the
// estimators independently, so one sparse dataset never degrades the rest.
type AnalysisService struct {
	repo      repository.Repository
	snapshots *dataset.Store
	logger    *zap.Logger
}

func NewAnalysisService(repo repository.Repository, snapshots *dataset.Store, logger *zap.Logger) *AnalysisService {
	return &AnalysisService{repo: repo, snapshots: snapshots, logger: logger}
}

// Analyze produces a full report for one address and persists it.
func (s *AnalysisService) Analyze(ctx context.Context, req AnalysisRequest) (*AnalysisReport, error) {
	if strings.TrimSpace(req.Address) == "" {
		return nil, fmt.Errorf("analysis: address is required")
	}
	snap := s.snapshot()

	property := s.propertySection(snap, req)
	rental := s.rentalSection(snap, req, property)
	area := s.areaSection(snap, req)
	energy := energySection(snap, req)

	growthRate := rental.GrowthRate
	score := scoring.ScoreProperty(
		scoring.PropertyFacts{
			EstimatedValue: property.EstimatedValue,
			PropertyType:   property.PropertyType,
		},
		scoring.RentalFacts{
			AnnualRent: rental.AnnualRent,
			GrowthRate: &growthRate,
		},
		scoring.AreaFacts{
			AmenityCount:   area.AmenityCount,
			SchoolRating:   area.SchoolRating,
			TransportLinks: area.TransportLinks,
		},
	)

	report := &AnalysisReport{
		Address:  req.Address,
		Postcode: strings.ToUpper(strings.TrimSpace(req.Postcode)),
		Property: property,
		Rental:   rental,
		Area:     area,
		Energy:   energy,
		Score:    score,
		Renovations: estimate.RenovationScenarios(
			property.PropertyType,
			property.EstimatedValue.InexactFloat64(),
			property.FloorAreaSqFt,
		),
		Forecast:    estimate.RentalForecast(rental.MonthlyRent.InexactFloat64(), rental.GrowthRate),
		DataQuality: overallQuality(property, rental, area, energy),
		GeneratedAt: time.Now().UTC(),
	}

	if err := s.persist(ctx, report); err != nil {
		return nil, err
	}
	return report, nil
}

// GetReport loads one persisted report by id.
func (s *AnalysisService) GetReport(ctx context.Context, id uint64) (*AnalysisReport, error) {
	row, err := s.repo.GetAnalysisReportByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("analysis: load report %d: %w", id, err)
	}
	if row == nil {
		return nil, nil
	}
	var report AnalysisReport
	if err := json.Unmarshal(row.Report, &report); err != nil {
		return nil, fmt.Errorf("analysis: decode report %d: %w", id, err)
	}
	report.ID = row.ID
	return &report, nil
}

// ListReports pages over persisted reports, newest first, with the row
// total for pagination.
func (s *AnalysisService) ListReports(ctx context.Context, params repository.ListReportsParams) ([]models.AnalysisReport, int64, error) {
	rows, err := s.repo.ListAnalysisReports(ctx, params)
	if err != nil {
		return nil, 0, fmt.Errorf("analysis: list reports: %w", err)
	}
	total, err := s.repo.CountAnalysisReports(ctx, params)
	if err != nil {
		return nil, 0, fmt.Errorf("analysis: count reports: %w", err)
	}
	return rows, total, nil
}

// PruneReports deletes reports older than the retention window.
func (s *AnalysisService) PruneReports(ctx context.Context, retentionDays int) (int64, error) {
	if retentionDays <= 0 {
		return 0, nil
	}
	cutoff := time.Now().UTC().AddDate(0, 0, -retentionDays)
	deleted, err := s.repo.DeleteAnalysisReportsBefore(ctx, cutoff)
	if err != nil {
		return 0, fmt.Errorf("analysis: prune reports: %w", err)
	}
	if deleted > 0 && s.logger != nil {
		s.logger.Info("pruned analysis reports",
			zap.Int64("deleted", deleted),
			zap.Time("cutoff", cutoff))
	}
	return deleted, nil
}

func (s *AnalysisService) persist(ctx context.Context, report *AnalysisReport) error {
	payload, err := json.Marshal(report)
	if err != nil {
		return fmt.Errorf("analysis: encode report: %w", err)
	}
	row := &models.AnalysisReport{
		Address:      report.Address,
		Postcode:     report.Postcode,
		OverallScore: report.Score.OverallScore,
		Category:     report.Score.Category,
		DataQuality:  report.DataQuality,
		Report:       payload,
	}
	if err := s.repo.InsertAnalysisReport(ctx, row); err != nil {
		return fmt.Errorf("analysis: store report: %w", err)
	}
	report.ID = row.ID
	return nil
}

// propertySection resolves the purchase price from Land Registry rows for
// the exact postcode when any exist, otherwise from the value estimator.
func (s *AnalysisService) propertySection(snap *dataset.Snapshot, req AnalysisRequest) PropertySection {
	propertyType := req.PropertyType
	postcode := strings.ToUpper(strings.TrimSpace(req.Postcode))

	matches := transactionsForPostcode(snap.Transactions, postcode)
	if len(matches) > 0 {
		latest := latestTransaction(matches)
		if propertyType == "" {
			propertyType = latest.PropertyType
		}
		return PropertySection{
			EstimatedValue: latest.Price,
			PropertyType:   propertyType,
			Bedrooms:       req.Bedrooms,
			FloorAreaSqFt:  estimate.FloorArea(propertyType),
			Features:       estimate.Features(propertyType),
			DataQuality:    estimate.QualityVerified,
		}
	}

	if propertyType == "" {
		propertyType = models.PropertyTypeTerraced
	}
	estimated := estimate.PropertyValue(estimate.Input{
		Location:     req.Address,
		Postcode:     postcode,
		PropertyType: propertyType,
		Bedrooms:     req.Bedrooms,
	})
	return PropertySection{
		EstimatedValue: estimated.Value,
		PropertyType:   propertyType,
		Bedrooms:       req.Bedrooms,
		FloorAreaSqFt:  estimate.FloorArea(propertyType),
		Features:       estimate.Features(propertyType),
		DataQuality:    estimated.DataQuality,
	}
}

// rentalSection resolves the rent from ONS observations covering the
// address when any exist, with the estimator filling every remaining gap.
// Only a section whose rent came from real observations is verified.
func (s *AnalysisService) rentalSection(snap *dataset.Snapshot, req AnalysisRequest, property PropertySection) RentalSection {
	estimated := estimate.RentalIncome(estimate.Input{
		Location:     req.Address,
		Postcode:     req.Postcode,
		PropertyType: property.PropertyType,
	}, property.EstimatedValue)

	section := RentalSection{
		MonthlyRent:  estimated.MonthlyRent,
		AnnualRent:   estimated.AnnualRent,
		GrossYield:   estimated.GrossYield,
		GrowthRate:   estimated.GrowthRate,
		RentalDemand: estimated.RentalDemand,
		VoidPeriods:  estimated.VoidPeriods,
		DataQuality:  estimated.DataQuality,
	}

	matches := rentalsForAddress(snap.Rentals, req.Address)
	if len(matches) == 0 {
		return section
	}

	section.MonthlyRent = observedMonthlyRent(matches)
	section.AnnualRent = section.MonthlyRent.Mul(decimal.NewFromInt(12))
	if property.EstimatedValue.IsPositive() {
		section.GrossYield, _ = section.AnnualRent.Div(property.EstimatedValue).Float64()
	}
	if rate, ok := meanGrowthRate(matches); ok {
		section.GrowthRate = rate
	}
	section.DataQuality = estimate.QualityVerified
	return section
}

func (s *AnalysisService) areaSection(snap *dataset.Snapshot, req AnalysisRequest) AreaSection {
	estimated := estimate.AreaData(req.Address)
	section := AreaSection{
		Amenities:      estimated.Amenities,
		CrimeRate:      estimated.CrimeRate,
		SchoolRating:   estimated.SchoolRating,
		TransportLinks: estimated.TransportLinks,
		DataQuality:    estimated.DataQuality,
	}

	if amenities, count, ok := observedAmenities(snap.Amenities, req.Address); ok {
		section.Amenities = amenities
		section.AmenityCount = count
		section.DataQuality = estimate.QualityVerified
		return section
	}
	section.AmenityCount = countAmenities(section.Amenities)
	return section
}

func energySection(snap *dataset.Snapshot, req AnalysisRequest) EnergySection {
	postcode := strings.ToUpper(strings.TrimSpace(req.Postcode))
	if postcode != "" {
		for _, it := range snap.Energy {
			if !strings.EqualFold(it.Postcode, postcode) {
				continue
			}
			section := EnergySection{DataQuality: estimate.QualityVerified}
			if it.CurrentRating != nil {
				section.CurrentRating = *it.CurrentRating
			}
			if it.PotentialRating != nil {
				section.PotentialRating = *it.PotentialRating
			}
			if it.CurrentEfficiency != nil {
				section.CurrentEfficiency = *it.CurrentEfficiency
			}
			if it.PotentialEfficiency != nil {
				section.PotentialEfficiency = *it.PotentialEfficiency
			}
			section.EfficiencyImprovement = section.PotentialEfficiency - section.CurrentEfficiency
			if section.EfficiencyImprovement < 0 {
				section.EfficiencyImprovement = 0
			}
			return section
		}
	}

	estimated := estimate.EPCRating(req.PropertyType)
	return EnergySection{
		CurrentRating:         estimated.CurrentRating,
		PotentialRating:       estimated.PotentialRating,
		CurrentEfficiency:     estimated.CurrentEfficiency,
		PotentialEfficiency:   estimated.PotentialEfficiency,
		EfficiencyImprovement: estimated.EfficiencyImprovement,
		DataQuality:           estimated.DataQuality,
	}
}

func (s *AnalysisService) snapshot() *dataset.Snapshot {
	if s == nil || s.snapshots == nil {
		return &dataset.Snapshot{}
	}
	return s.snapshots.Current()
}

func transactionsForPostcode(items []models.PropertyRecord, postcode string) []models.PropertyRecord {
	if postcode == "" {
		return nil
	}
	var out []models.PropertyRecord
	for _, it := range items {
		if strings.EqualFold(it.Postcode, postcode) {
			out = append(out, it)
		}
	}
	return out
}

func latestTransaction(items []models.PropertyRecord) models.PropertyRecord {
	sort.SliceStable(items, func(i, j int) bool {
		ti, tj := items[i].TransactionDate, items[j].TransactionDate
		if ti == nil || tj == nil {
			return tj == nil && ti != nil
		}
		return ti.After(*tj)
	})
	return items[0]
}

func rentalsForAddress(items []models.RentalObservation, address string) []models.RentalObservation {
	needle := strings.ToLower(address)
	var out []models.RentalObservation
	for _, it := range items {
		region := strings.ToLower(it.Region)
		if strings.Contains(needle, region) || strings.Contains(region, needle) {
			out = append(out, it)
		}
	}
	return out
}

// observedMonthlyRent takes the most recent dated observation, falling
// back to the mean when none carry a date.
func observedMonthlyRent(items []models.RentalObservation) decimal.Decimal {
	var latest *models.RentalObservation
	for i := range items {
		it := &items[i]
		if it.Date == nil {
			continue
		}
		if latest == nil || it.Date.After(*latest.Date) {
			latest = it
		}
	}
	if latest != nil {
		return latest.Value
	}
	sum := decimal.Zero
	for _, it := range items {
		sum = sum.Add(it.Value)
	}
	return sum.Div(decimal.NewFromInt(int64(len(items))))
}

func meanGrowthRate(items []models.RentalObservation) (float64, bool) {
	sum := 0.0
	n := 0
	for _, it := range items {
		if it.YoYGrowth == nil {
			continue
		}
		sum += *it.YoYGrowth
		n++
	}
	if n == 0 {
		return 0, false
	}
	return sum / float64(n), true
}

func observedAmenities(items []models.AmenityRecord, address string) (map[string][]string, int, bool) {
	needle := strings.ToLower(address)
	merged := map[string][]string{}
	found := false
	for _, it := range items {
		if !strings.Contains(needle, strings.ToLower(it.Location)) &&
			!strings.Contains(strings.ToLower(it.Location), needle) {
			continue
		}
		var byCategory map[string][]string
		if err := json.Unmarshal(it.Amenities, &byCategory); err != nil {
			continue
		}
		found = true
		for category, list := range byCategory {
			merged[category] = append(merged[category], list...)
		}
	}
	if !found {
		return nil, 0, false
	}
	return merged, countAmenities(merged), true
}

func countAmenities(byCategory map[string][]string) int {
	total := 0
	for _, list := range byCategory {
		total += len(list)
	}
	return total
}

// overallQuality is verified only when every section came from real data.
func overallQuality(property PropertySection, rental RentalSection, area AreaSection, energy EnergySection) string {
	for _, q := range []string{property.DataQuality, rental.DataQuality, area.DataQuality, energy.DataQuality} {
		if q != estimate.QualityVerified {
			return estimate.QualityEstimated
		}
	}
	return estimate.QualityVerified
}
