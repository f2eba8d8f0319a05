package models

import (
	"time"

	"gorm.io/datatypes"
)

// AnalysisReport is a persisted single-address investment analysis: the
// estimated (or verified) property facts, the BTR score breakdown, renovation
// scenarios and the rental forecast, stored as one jsonb payload alongside
// the headline score for cheap listing.
type AnalysisReport struct {
	ID       uint64 `gorm:"primaryKey;autoIncrement" json:"id"`
	Address  string `gorm:"type:varchar(200);not null" json:"address"`
	Postcode string `gorm:"type:varchar(10);index" json:"postcode"`

	OverallScore int    `gorm:"not null;index" json:"overall_score"`
	Category     string `gorm:"type:varchar(20);not null" json:"category"`
	// DataQuality is "verified" when authoritative records backed the
	// analysis, "estimated" when the fallback estimators supplied it.
	DataQuality string `gorm:"type:varchar(10);not null" json:"data_quality"`

	Report datatypes.JSON `gorm:"type:jsonb;not null" json:"report"`

	CreatedAt time.Time `gorm:"type:timestamptz;autoCreateTime;index" json:"created_at"`
	UpdatedAt time.Time `gorm:"type:timestamptz;autoUpdateTime" json:"-"`
}

func (AnalysisReport) TableName() string {
	return "analysis_reports"
}
