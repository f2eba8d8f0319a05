package estimate

import (
	"fmt"

	"btrscout/internal/models"
)

// Refurbishment cost benchmarks in pounds per square foot.
const (
	lightRefurbPSF   = 75.0
	loftExtensionPSF = 200.0
)

// Scenario value assumptions.
const (
	cosmeticUpliftPct  = 0.10
	lightUpliftPct     = 0.15
	extensionValuePSF  = 550.0
	extensionShareSqFt = 0.20
)

// RenovationScenario is one costed improvement option with its projected
// effect on the property value.
type RenovationScenario struct {
	Name          string  `json:"name"`
	Description   string  `json:"description"`
	Cost          float64 `json:"cost"`
	ValueUplift   float64 `json:"value_uplift"`
	ValueUpliftPc float64 `json:"value_uplift_pct"`
	NewValue      float64 `json:"new_value"`
	ROI           float64 `json:"roi"`
}

// RenovationScenarios costs out the improvement options applicable to a
// property. Houses additionally get an extension scenario; zero or missing
// inputs fall back to a 1000 sq ft terraced house at 250,000.
func RenovationScenarios(propertyType string, value, floorAreaSqFt float64) []RenovationScenario {
	if floorAreaSqFt <= 0 {
		floorAreaSqFt = 1000
	}
	if value <= 0 {
		value = 250000
	}
	if propertyType == "" {
		propertyType = models.PropertyTypeTerraced
	}

	scenarios := make([]RenovationScenario, 0, 3)

	cosmeticCost := floorAreaSqFt * lightRefurbPSF * 0.4
	cosmeticUplift := value * cosmeticUpliftPct
	scenarios = append(scenarios, RenovationScenario{
		Name:          "Cosmetic Refurbishment",
		Description:   "Painting, decorating, minor works",
		Cost:          cosmeticCost,
		ValueUplift:   cosmeticUplift,
		ValueUpliftPc: cosmeticUpliftPct * 100,
		NewValue:      value + cosmeticUplift,
		ROI:           roi(cosmeticUplift, cosmeticCost),
	})

	lightCost := floorAreaSqFt * lightRefurbPSF
	lightUplift := value * lightUpliftPct
	scenarios = append(scenarios, RenovationScenario{
		Name:          "Light Refurbishment",
		Description:   "New kitchen, bathroom, and cosmetic work",
		Cost:          lightCost,
		ValueUplift:   lightUplift,
		ValueUpliftPc: lightUpliftPct * 100,
		NewValue:      value + lightUplift,
		ROI:           roi(lightUplift, lightCost),
	})

	if models.IsHouse(propertyType) {
		extensionSqFt := floorAreaSqFt * extensionShareSqFt
		extensionCost := extensionSqFt * loftExtensionPSF
		extensionValue := extensionSqFt * extensionValuePSF
		scenarios = append(scenarios, RenovationScenario{
			Name:          "Extension",
			Description:   fmt.Sprintf("Add %d sq ft extension", int(extensionSqFt)),
			Cost:          extensionCost,
			ValueUplift:   extensionValue,
			ValueUpliftPc: extensionValue / value * 100,
			NewValue:      value + extensionValue,
			ROI:           roi(extensionValue, extensionCost),
		})
	}

	return scenarios
}

// roi expresses the net return on a renovation spend as a percentage. A
// result of 0 means the uplift only covers the cost.
func roi(uplift, cost float64) float64 {
	if cost <= 0 {
		return 0
	}
	return (uplift/cost - 1) * 100
}
