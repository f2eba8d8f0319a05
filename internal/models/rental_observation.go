package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// RentalObservation is one ONS private rental statistic: the average monthly
// rent observed for a region, with an optional year-on-year growth figure.
type RentalObservation struct {
	ID     uint64 `gorm:"primaryKey;autoIncrement" json:"id"`
	Region string `gorm:"type:varchar(120);not null;index" json:"region"`
	// Value is the average monthly rent in GBP.
	Value decimal.Decimal `gorm:"type:numeric(10,2);not null" json:"value"`
	Date  *time.Time      `gorm:"type:date" json:"date,omitempty"`
	// YoYGrowth is the year-on-year rent growth in percent (3.0 = 3%).
	YoYGrowth *float64 `gorm:"column:yoy_growth" json:"yoy_growth,omitempty"`

	CreatedAt time.Time `gorm:"type:timestamptz;autoCreateTime" json:"-"`
}

func (RentalObservation) TableName() string {
	return "rental_observations"
}
