package scoring

import (
	"github.com/shopspring/decimal"

	"btrscout/internal/models"
)

// Defaults substituted when a fact is missing from a property analysis.
var (
	defaultPropertyValue = decimal.NewFromInt(250000)
	defaultAnnualRent    = decimal.NewFromInt(12000)
)

const (
	defaultPropertyType = models.PropertyTypeTerraced
	defaultGrowthRate   = 3.0
)

// PropertyFacts is what is known (or estimated) about a single property.
type PropertyFacts struct {
	EstimatedValue decimal.Decimal
	PropertyType   string
}

// RentalFacts is the rental side of a property analysis.
type RentalFacts struct {
	AnnualRent decimal.Decimal
	// GrowthRate is the expected annual rent growth in percent.
	GrowthRate *float64
}

// AreaFacts summarizes the surrounding area for the area-quality component.
type AreaFacts struct {
	AmenityCount   int
	SchoolRating   string
	TransportLinks string
}

// ScoreProperty computes the per-property BTR investment score. Every
// missing fact falls back to a fixed default so a populated Result always
// comes back.
func ScoreProperty(property PropertyFacts, rental RentalFacts, area AreaFacts) Result {
	if property.EstimatedValue.LessThanOrEqual(decimal.Zero) {
		property.EstimatedValue = defaultPropertyValue
	}
	if property.PropertyType == "" {
		property.PropertyType = defaultPropertyType
	}
	if rental.AnnualRent.LessThanOrEqual(decimal.Zero) {
		rental.AnnualRent = defaultAnnualRent
	}
	growthRate := defaultGrowthRate
	if rental.GrowthRate != nil {
		growthRate = *rental.GrowthRate
	}

	scores := map[string]float64{}

	grossYield := rental.AnnualRent.InexactFloat64() / property.EstimatedValue.InexactFloat64()
	scores[ComponentYield] = yieldPoints(grossYield)

	scores[ComponentPropertyType] = propertyTypePoints(property.PropertyType)
	scores[ComponentArea] = areaPoints(area.AmenityCount, area.SchoolRating, area.TransportLinks)
	scores[ComponentGrowth] = growthPoints(growthRate)
	scores[ComponentRenovation] = renovationPoints(models.IsHouse(property.PropertyType))

	return compose(scores)
}
