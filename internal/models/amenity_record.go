package models

import (
	"time"

	"gorm.io/datatypes"
)

// AmenityRecord is the OSM amenity summary for one location: category-keyed
// lists of nearby amenities ({"schools": [...], "transport": [...], ...}).
type AmenityRecord struct {
	ID       uint64   `gorm:"primaryKey;autoIncrement" json:"id"`
	Location string   `gorm:"type:varchar(120);not null;index" json:"location"`
	Lat      *float64 `json:"lat,omitempty"`
	Lon      *float64 `json:"lon,omitempty"`

	Amenities datatypes.JSON `gorm:"type:jsonb" json:"amenities"`

	CreatedAt time.Time `gorm:"type:timestamptz;autoCreateTime" json:"-"`
}

func (AmenityRecord) TableName() string {
	return "amenity_records"
}
