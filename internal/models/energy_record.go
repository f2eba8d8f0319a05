package models

import "time"

// EnergyRecord is one EPC certificate row. Feeds carry either the numeric
// 0-100 efficiency pair or the ordinal A-G rating pair (sometimes both);
// absent columns are nil rather than zero.
type EnergyRecord struct {
	ID       uint64 `gorm:"primaryKey;autoIncrement" json:"id"`
	Postcode string `gorm:"type:varchar(10);not null;index" json:"postcode"`

	CurrentEfficiency   *int `gorm:"column:current_energy_efficiency" json:"current_energy_efficiency,omitempty"`
	PotentialEfficiency *int `gorm:"column:potential_energy_efficiency" json:"potential_energy_efficiency,omitempty"`

	CurrentRating   *string `gorm:"column:current_energy_rating;type:varchar(1)" json:"current_energy_rating,omitempty"`
	PotentialRating *string `gorm:"column:potential_energy_rating;type:varchar(1)" json:"potential_energy_rating,omitempty"`

	PropertyType *string `gorm:"type:varchar(30)" json:"property_type,omitempty"`

	CreatedAt time.Time `gorm:"type:timestamptz;autoCreateTime" json:"-"`
}

func (EnergyRecord) TableName() string {
	return "energy_records"
}
