package models

import "time"

// Canonical dataset names used by the snapshot store and the ingest API.
const (
	DatasetTransactions = "transactions"
	DatasetRentals      = "rentals"
	DatasetAmenities    = "amenities"
	DatasetEnergy       = "energy"
	DatasetPlanning     = "planning"
)

// DatasetState tracks per-dataset freshness: how many rows the last snapshot
// load saw and when. One row per dataset name.
type DatasetState struct {
	ID          uint64    `gorm:"primaryKey;autoIncrement" json:"-"`
	Name        string    `gorm:"type:varchar(30);uniqueIndex;not null" json:"name"`
	RowCount    int64     `gorm:"not null" json:"row_count"`
	RefreshedAt time.Time `gorm:"type:timestamptz" json:"refreshed_at"`

	CreatedAt time.Time `gorm:"type:timestamptz;autoCreateTime" json:"-"`
	UpdatedAt time.Time `gorm:"type:timestamptz;autoUpdateTime" json:"-"`
}

func (DatasetState) TableName() string {
	return "dataset_states"
}

// DatasetNames lists the canonical names in a fixed order.
func DatasetNames() []string {
	return []string{
		DatasetTransactions,
		DatasetRentals,
		DatasetAmenities,
		DatasetEnergy,
		DatasetPlanning,
	}
}
