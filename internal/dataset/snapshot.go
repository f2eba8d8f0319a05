package dataset

import (
	"time"

	"btrscout/internal/models"
)

// Snapshot is one immutable in-memory view of the five government datasets.
// A nil slice means the dataset was unavailable at load time; a non-nil empty
// slice means it loaded but held no rows. Scoring code relies on that
// distinction and must never mutate a snapshot.
type Snapshot struct {
	Transactions []models.PropertyRecord
	Rentals      []models.RentalObservation
	Amenities    []models.AmenityRecord
	Energy       []models.EnergyRecord
	Planning     []models.PlanningApplication

	LoadedAt time.Time
}

// HasTransactions reports whether the transactions dataset was available,
// regardless of row count.
func (s *Snapshot) HasTransactions() bool { return s != nil && s.Transactions != nil }

func (s *Snapshot) HasRentals() bool { return s != nil && s.Rentals != nil }

func (s *Snapshot) HasAmenities() bool { return s != nil && s.Amenities != nil }

func (s *Snapshot) HasEnergy() bool { return s != nil && s.Energy != nil }

func (s *Snapshot) HasPlanning() bool { return s != nil && s.Planning != nil }

// RowCount returns the number of rows for a canonical dataset name.
func (s *Snapshot) RowCount(name string) int {
	if s == nil {
		return 0
	}
	switch name {
	case models.DatasetTransactions:
		return len(s.Transactions)
	case models.DatasetRentals:
		return len(s.Rentals)
	case models.DatasetAmenities:
		return len(s.Amenities)
	case models.DatasetEnergy:
		return len(s.Energy)
	case models.DatasetPlanning:
		return len(s.Planning)
	}
	return 0
}
