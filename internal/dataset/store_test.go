package dataset

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"btrscout/internal/models"
	"btrscout/internal/repository"
)

// stubRepo satisfies repository.Repository with canned dataset rows and
// records the dataset states it is asked to upsert.
type stubRepo struct {
	transactions []models.PropertyRecord
	rentals      []models.RentalObservation
	amenities    []models.AmenityRecord
	energy       []models.EnergyRecord
	planning     []models.PlanningApplication

	rentalsErr error

	states []models.DatasetState
}

func (r *stubRepo) InTx(ctx context.Context, fn func(tx *gorm.DB) error) error { return fn(nil) }

func (r *stubRepo) ListTransactions(ctx context.Context) ([]models.PropertyRecord, error) {
	return r.transactions, nil
}

func (r *stubRepo) ListRentals(ctx context.Context) ([]models.RentalObservation, error) {
	if r.rentalsErr != nil {
		return nil, r.rentalsErr
	}
	return r.rentals, nil
}

func (r *stubRepo) ListAmenities(ctx context.Context) ([]models.AmenityRecord, error) {
	return r.amenities, nil
}

func (r *stubRepo) ListEnergyRecords(ctx context.Context) ([]models.EnergyRecord, error) {
	return r.energy, nil
}

func (r *stubRepo) ListPlanningApplications(ctx context.Context) ([]models.PlanningApplication, error) {
	return r.planning, nil
}

func (r *stubRepo) ReplaceTransactionsTx(ctx context.Context, tx *gorm.DB, items []models.PropertyRecord) error {
	r.transactions = items
	return nil
}

func (r *stubRepo) ReplaceRentalsTx(ctx context.Context, tx *gorm.DB, items []models.RentalObservation) error {
	r.rentals = items
	return nil
}

func (r *stubRepo) ReplaceAmenitiesTx(ctx context.Context, tx *gorm.DB, items []models.AmenityRecord) error {
	r.amenities = items
	return nil
}

func (r *stubRepo) ReplaceEnergyRecordsTx(ctx context.Context, tx *gorm.DB, items []models.EnergyRecord) error {
	r.energy = items
	return nil
}

func (r *stubRepo) ReplacePlanningApplicationsTx(ctx context.Context, tx *gorm.DB, items []models.PlanningApplication) error {
	r.planning = items
	return nil
}

func (r *stubRepo) UpsertDatasetState(ctx context.Context, item *models.DatasetState) error {
	r.states = append(r.states, *item)
	return nil
}

func (r *stubRepo) ListDatasetStates(ctx context.Context) ([]models.DatasetState, error) {
	return r.states, nil
}

func (r *stubRepo) InsertAnalysisReport(ctx context.Context, item *models.AnalysisReport) error {
	return nil
}

func (r *stubRepo) GetAnalysisReportByID(ctx context.Context, id uint64) (*models.AnalysisReport, error) {
	return nil, nil
}

func (r *stubRepo) ListAnalysisReports(ctx context.Context, params repository.ListReportsParams) ([]models.AnalysisReport, error) {
	return nil, nil
}

func (r *stubRepo) CountAnalysisReports(ctx context.Context, params repository.ListReportsParams) (int64, error) {
	return 0, nil
}

func (r *stubRepo) DeleteAnalysisReportsBefore(ctx context.Context, before time.Time) (int64, error) {
	return 0, nil
}

func TestCurrentBeforeFirstRefresh(t *testing.T) {
	store := NewStore(&stubRepo{}, nil)
	snap := store.Current()
	if snap == nil {
		t.Fatalf("Current returned nil")
	}
	if snap.HasTransactions() || snap.HasRentals() {
		t.Fatalf("datasets should be unavailable before first refresh")
	}
}

func TestRefreshSwapsSnapshot(t *testing.T) {
	repo := &stubRepo{
		transactions: []models.PropertyRecord{
			{Postcode: "LS1 4AB", PropertyType: "T", Price: decimal.NewFromInt(180000)},
		},
		rentals: []models.RentalObservation{},
	}
	store := NewStore(repo, nil)
	if err := store.Refresh(context.Background()); err != nil {
		t.Fatalf("refresh failed: %v", err)
	}

	snap := store.Current()
	if !snap.HasTransactions() {
		t.Fatalf("transactions should be available")
	}
	if len(snap.Transactions) != 1 {
		t.Fatalf("expected 1 transaction, got %d", len(snap.Transactions))
	}
	// Loaded-but-empty datasets are available, unlike failed loads.
	if !snap.HasRentals() || len(snap.Rentals) != 0 {
		t.Fatalf("rentals should be available and empty")
	}
	if snap.LoadedAt.IsZero() {
		t.Fatalf("LoadedAt not set")
	}

	if len(repo.states) != len(models.DatasetNames()) {
		t.Fatalf("expected %d dataset states, got %d", len(models.DatasetNames()), len(repo.states))
	}
}

func TestRefreshMarksFailedDatasetUnavailable(t *testing.T) {
	repo := &stubRepo{
		transactions: []models.PropertyRecord{
			{Postcode: "LS1 4AB", PropertyType: "T", Price: decimal.NewFromInt(180000)},
		},
		rentalsErr: errors.New("feed down"),
	}
	store := NewStore(repo, nil)
	if err := store.Refresh(context.Background()); err != nil {
		t.Fatalf("refresh failed: %v", err)
	}

	snap := store.Current()
	if snap.HasRentals() {
		t.Fatalf("failed rentals load should leave the dataset unavailable")
	}
	if !snap.HasTransactions() {
		t.Fatalf("other datasets should still load")
	}
}

func TestSubscribeReceivesNewSnapshot(t *testing.T) {
	repo := &stubRepo{}
	store := NewStore(repo, nil)
	updates := store.Subscribe(1)

	if err := store.Refresh(context.Background()); err != nil {
		t.Fatalf("refresh failed: %v", err)
	}

	select {
	case snap := <-updates:
		if snap == nil || snap.LoadedAt.IsZero() {
			t.Fatalf("received bad snapshot: %+v", snap)
		}
	case <-time.After(time.Second):
		t.Fatalf("no snapshot notification received")
	}
}

func TestSlowSubscriberDoesNotBlockRefresh(t *testing.T) {
	repo := &stubRepo{}
	store := NewStore(repo, nil)
	// Never drained; the second refresh must drop rather than block.
	store.Subscribe(1)

	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = store.Refresh(context.Background())
		_ = store.Refresh(context.Background())
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatalf("refresh blocked on a slow subscriber")
	}
}

func TestUnsubscribeClosesChannel(t *testing.T) {
	store := NewStore(&stubRepo{}, nil)
	updates := store.Subscribe(1)
	store.Unsubscribe(updates)

	if _, ok := <-updates; ok {
		t.Fatalf("expected closed channel after unsubscribe")
	}
	// Refresh after unsubscribe must not panic on the removed channel.
	if err := store.Refresh(context.Background()); err != nil {
		t.Fatalf("refresh failed: %v", err)
	}
}
