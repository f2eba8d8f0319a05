package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Land Registry property type codes as published in the price paid dataset.
const (
	PropertyTypeDetached     = "D"
	PropertyTypeSemiDetached = "S"
	PropertyTypeTerraced     = "T"
	PropertyTypeFlat         = "F"
	PropertyTypeOther        = "O"
)

// PropertyRecord is one Land Registry price paid transaction. Rows are a
// read-only snapshot maintained by the data collectors; the service never
// mutates them.
type PropertyRecord struct {
	ID       uint64          `gorm:"primaryKey;autoIncrement" json:"id"`
	Price    decimal.Decimal `gorm:"type:numeric(14,2);not null" json:"price"`
	Postcode string          `gorm:"type:varchar(10);not null;index" json:"postcode"`
	// PropertyType is the single-letter Land Registry code (D/S/T/F/O).
	PropertyType    string     `gorm:"type:varchar(1);not null" json:"property_type"`
	TenureType      *string    `gorm:"type:varchar(1)" json:"tenure_type,omitempty"`
	District        *string    `gorm:"type:varchar(60);index" json:"district,omitempty"`
	TransactionDate *time.Time `gorm:"type:date;index" json:"transaction_date,omitempty"`

	CreatedAt time.Time `gorm:"type:timestamptz;autoCreateTime" json:"-"`
}

func (PropertyRecord) TableName() string {
	return "land_registry_transactions"
}

// IsHouse reports whether the type code is a single-family house type
// (detached, semi-detached or terraced) as opposed to a flat or other.
func IsHouse(propertyType string) bool {
	switch propertyType {
	case PropertyTypeDetached, PropertyTypeSemiDetached, PropertyTypeTerraced:
		return true
	}
	return false
}

// PropertyTypeName maps a Land Registry code to a display name.
func PropertyTypeName(code string) string {
	switch code {
	case PropertyTypeDetached:
		return "Detached"
	case PropertyTypeSemiDetached:
		return "Semi-detached"
	case PropertyTypeTerraced:
		return "Terraced"
	case PropertyTypeFlat:
		return "Flat"
	case PropertyTypeOther:
		return "Other"
	}
	return "Unknown"
}

// PostcodeDistrict returns the part of a UK postcode before the space
// ("SW1 1AA" -> "SW1"). Postcodes without a space are returned whole.
func PostcodeDistrict(postcode string) string {
	for i := 0; i < len(postcode); i++ {
		if postcode[i] == ' ' {
			return postcode[:i]
		}
	}
	return postcode
}
