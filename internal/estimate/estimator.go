package estimate

import (
	"math"
	"strings"

	"github.com/shopspring/decimal"
)

// QualityEstimated marks values produced by this package; QualityVerified
// marks values read from the open datasets.
const (
	QualityEstimated = "estimated"
	QualityVerified  = "verified"
)

// baseValue is the UK mid-range property value the location multipliers
// scale from.
const baseValue = 285000.0

// baseGrowthPct is the UK average annual rental growth in percent.
const baseGrowthPct = 3.0

// Input identifies a property to estimate for. Location is a free-text
// address or settlement name; empty fields fall back to national defaults.
type Input struct {
	Location     string
	Postcode     string
	PropertyType string
	Bedrooms     int
}

// ValueEstimate is an estimated purchase price.
type ValueEstimate struct {
	Value       decimal.Decimal `json:"value"`
	DataQuality string          `json:"data_quality"`
}

// RentalEstimate is an estimated rental profile for a property.
type RentalEstimate struct {
	MonthlyRent  decimal.Decimal `json:"monthly_rent"`
	AnnualRent   decimal.Decimal `json:"annual_rent"`
	GrossYield   float64         `json:"gross_yield"`
	GrowthRate   float64         `json:"growth_rate"`
	RentalDemand string          `json:"rental_demand"`
	VoidPeriods  string          `json:"void_periods"`
	DataQuality  string          `json:"data_quality"`
}

// AreaEstimate is an estimated area profile.
type AreaEstimate struct {
	Amenities      map[string][]string `json:"amenities"`
	CrimeRate      string              `json:"crime_rate"`
	SchoolRating   string              `json:"school_rating"`
	TransportLinks string              `json:"transport_links"`
	DataQuality    string              `json:"data_quality"`
}

// EPCEstimate is an estimated energy performance profile.
type EPCEstimate struct {
	CurrentRating         string `json:"current_energy_rating"`
	PotentialRating       string `json:"potential_energy_rating"`
	CurrentEfficiency     int    `json:"current_energy_efficiency"`
	PotentialEfficiency   int    `json:"potential_energy_efficiency"`
	EfficiencyImprovement int    `json:"efficiency_improvement"`
	DataQuality           string `json:"data_quality"`
}

// PropertyValue estimates a purchase price from location, postcode band,
// property type and bedroom count, rounded to the nearest thousand pounds.
func PropertyValue(in Input) ValueEstimate {
	location := strings.ToUpper(in.Location)

	multiplier := matchArea(valueMultipliers, location, 1.0)
	postcode := strings.ToUpper(strings.TrimSpace(in.Postcode))
	if postcode != "" {
		if londonPremiumPostcodes.MatchString(postcode) {
			multiplier = math.Max(multiplier, 3.0)
		} else if otherPremiumPostcodes.MatchString(postcode) {
			multiplier = math.Max(multiplier, 1.5)
		}
	}

	value := baseValue * multiplier
	if m, ok := typeValueMultipliers[in.PropertyType]; ok {
		value *= m
	}
	if in.Bedrooms > 0 {
		value *= math.Max(0.75, 1.0+float64(in.Bedrooms-3)*0.15)
	}

	return ValueEstimate{
		Value:       decimal.NewFromFloat(roundTo(value, 1000)),
		DataQuality: QualityEstimated,
	}
}

// RentalIncome estimates rent from a property value via type-specific base
// yields with a city adjustment. Monthly rent is rounded to the nearest
// ten pounds and the annual figure derives from the rounded monthly one.
func RentalIncome(in Input, value decimal.Decimal) RentalEstimate {
	propertyType := in.PropertyType
	grossYield, ok := baseYields[propertyType]
	if !ok {
		grossYield = 0.05
	}
	location := strings.ToUpper(in.Location)
	grossYield += matchArea(yieldAdjustments, location, 0)

	annual := value.InexactFloat64() * grossYield
	monthly := roundTo(annual/12, 10)

	return RentalEstimate{
		MonthlyRent:  decimal.NewFromFloat(monthly),
		AnnualRent:   decimal.NewFromFloat(monthly * 12),
		GrossYield:   grossYield,
		GrowthRate:   RentalGrowthRate(in.Location),
		RentalDemand: RentalDemand(in.Location),
		VoidPeriods:  "2-3 weeks per year",
		DataQuality:  QualityEstimated,
	}
}

// RentalGrowthRate estimates the annual rental growth percentage for a
// location.
func RentalGrowthRate(location string) float64 {
	upper := strings.ToUpper(location)
	return baseGrowthPct + matchArea(growthAdjustments, upper, 0)
}

// RentalDemand classifies a location as High, Medium or Low rental demand.
func RentalDemand(location string) string {
	upper := strings.ToUpper(location)
	for _, area := range highDemandAreas {
		if containsArea(upper, area) {
			return "High"
		}
	}
	for _, area := range lowDemandAreas {
		if containsArea(upper, area) {
			return "Low"
		}
	}
	return "Medium"
}

// AreaData estimates crime, schooling, transport and a typical amenity
// profile for a location.
func AreaData(location string) AreaEstimate {
	upper := strings.ToUpper(location)
	return AreaEstimate{
		Amenities:      amenityProfile(upper),
		CrimeRate:      matchText(crimeRates, upper, "Medium"),
		SchoolRating:   matchText(schoolRatings, upper, "Good"),
		TransportLinks: matchText(transportLinks, upper, "Average"),
		DataQuality:    QualityEstimated,
	}
}

// EPCRating estimates energy performance from the property type alone.
func EPCRating(propertyType string) EPCEstimate {
	current, ok := defaultEPCRatings[propertyType]
	if !ok {
		current = "D"
	}
	return EPCEstimate{
		CurrentRating:         current,
		PotentialRating:       "B",
		CurrentEfficiency:     60,
		PotentialEfficiency:   85,
		EfficiencyImprovement: 25,
		DataQuality:           QualityEstimated,
	}
}

// FloorArea returns the assumed internal area in square feet for a type.
func FloorArea(propertyType string) float64 {
	if sqft, ok := defaultFloorArea[propertyType]; ok {
		return sqft
	}
	return 1000
}

// Features returns the typical feature list for a property type.
func Features(propertyType string) []string {
	return defaultFeatures[propertyType]
}

func amenityProfile(upperLocation string) map[string][]string {
	for _, city := range urbanProfileCities {
		if containsArea(upperLocation, city) {
			return map[string][]string{
				"schools":    {"Primary School (0.3 miles)", "Secondary School (0.8 miles)"},
				"transport":  {"Bus Stop (0.1 miles)", "Train Station (0.5 miles)", "Underground Station (0.7 miles)"},
				"healthcare": {"GP Surgery (0.4 miles)", "Pharmacy (0.3 miles)", "Hospital (1.8 miles)"},
				"shops":      {"Supermarket (0.2 miles)", "Shopping Center (1.0 miles)", "Convenience Store (0.1 miles)"},
				"leisure":    {"Park (0.4 miles)", "Gym (0.5 miles)", "Restaurant (0.2 miles)", "Cafe (0.1 miles)"},
			}
		}
	}
	return map[string][]string{
		"schools":    {"Primary School (0.6 miles)", "Secondary School (1.5 miles)"},
		"transport":  {"Bus Stop (0.3 miles)", "Train Station (2.1 miles)"},
		"healthcare": {"GP Surgery (0.8 miles)", "Pharmacy (0.7 miles)", "Hospital (4.2 miles)"},
		"shops":      {"Supermarket (0.7 miles)", "Convenience Store (0.4 miles)"},
		"leisure":    {"Park (0.7 miles)", "Gym (1.2 miles)", "Restaurant (0.8 miles)"},
	}
}

func containsArea(upperLocation, area string) bool {
	return strings.Contains(upperLocation, area)
}

// roundTo rounds v to the nearest multiple of unit.
func roundTo(v, unit float64) float64 {
	return math.Round(v/unit) * unit
}
