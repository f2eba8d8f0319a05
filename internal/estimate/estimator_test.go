package estimate

import (
	"math"
	"testing"

	"github.com/shopspring/decimal"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestPropertyValueBaseline(t *testing.T) {
	got := PropertyValue(Input{Location: "Somewhere Lane, Smalltown"})
	if !got.Value.Equal(decimal.NewFromInt(285000)) {
		t.Fatalf("baseline value = %s, want 285000", got.Value)
	}
	if got.DataQuality != QualityEstimated {
		t.Fatalf("quality = %q, want estimated", got.DataQuality)
	}
}

func TestPropertyValueCityMultiplier(t *testing.T) {
	got := PropertyValue(Input{Location: "12 High St, Manchester"})
	// 285000 * 1.2 = 342000.
	if !got.Value.Equal(decimal.NewFromInt(342000)) {
		t.Fatalf("Manchester value = %s, want 342000", got.Value)
	}
}

func TestPropertyValuePremiumPostcodeOverridesCity(t *testing.T) {
	// SW1 floors the multiplier at 3.0 even when no city matched.
	got := PropertyValue(Input{Location: "Flat 2, Westminster", Postcode: "SW1A 1AA"})
	if !got.Value.Equal(decimal.NewFromInt(855000)) {
		t.Fatalf("SW1 value = %s, want 855000", got.Value)
	}

	// London already at 2.5 still gets lifted to 3.0 by the premium band.
	inLondon := PropertyValue(Input{Location: "Flat 2, London", Postcode: "EC2A 1AA"})
	if !inLondon.Value.Equal(decimal.NewFromInt(855000)) {
		t.Fatalf("EC2 London value = %s, want 855000", inLondon.Value)
	}
}

func TestPropertyValueTypeAndBedrooms(t *testing.T) {
	detached := PropertyValue(Input{Location: "Leeds", PropertyType: "D"})
	// 285000 * 1.0 * 1.3 = 370500 -> 371000 after rounding.
	if !detached.Value.Equal(decimal.NewFromInt(371000)) {
		t.Fatalf("Leeds detached = %s, want 371000", detached.Value)
	}

	oneBed := PropertyValue(Input{Location: "Leeds", PropertyType: "F", Bedrooms: 1})
	// 285000 * 0.7 * max(0.75, 1-0.3) = 285000*0.7*0.75 = 149625 -> 150000.
	if !oneBed.Value.Equal(decimal.NewFromInt(150000)) {
		t.Fatalf("Leeds one-bed flat = %s, want 150000", oneBed.Value)
	}

	fiveBed := PropertyValue(Input{Location: "Leeds", PropertyType: "S", Bedrooms: 5})
	// 285000 * 1.0 * 1.3 = 370500 -> 371000 after rounding.
	if !fiveBed.Value.Equal(decimal.NewFromInt(371000)) {
		t.Fatalf("Leeds five-bed semi = %s, want 371000", fiveBed.Value)
	}
}

func TestRentalIncomeRounding(t *testing.T) {
	got := RentalIncome(Input{Location: "Smalltown", PropertyType: "T"}, decimal.NewFromInt(240000))
	// 240000 * 5% / 12 = 1000 monthly.
	if !got.MonthlyRent.Equal(decimal.NewFromInt(1000)) {
		t.Fatalf("monthly rent = %s, want 1000", got.MonthlyRent)
	}
	if !got.AnnualRent.Equal(decimal.NewFromInt(12000)) {
		t.Fatalf("annual rent = %s, want 12000", got.AnnualRent)
	}
	if !almostEqual(got.GrossYield, 0.05) {
		t.Fatalf("gross yield = %v, want 0.05", got.GrossYield)
	}
	if got.DataQuality != QualityEstimated {
		t.Fatalf("quality = %q, want estimated", got.DataQuality)
	}

	// Monthly rent rounds to the nearest ten and the annual figure derives
	// from the rounded monthly one.
	odd := RentalIncome(Input{Location: "Smalltown", PropertyType: "T"}, decimal.NewFromInt(241000))
	monthly := odd.MonthlyRent.InexactFloat64()
	if math.Mod(monthly, 10) != 0 {
		t.Fatalf("monthly rent %v not rounded to 10", monthly)
	}
	if !odd.AnnualRent.Equal(odd.MonthlyRent.Mul(decimal.NewFromInt(12))) {
		t.Fatalf("annual %s is not 12x monthly %s", odd.AnnualRent, odd.MonthlyRent)
	}
}

func TestRentalIncomeCityAdjustment(t *testing.T) {
	london := RentalIncome(Input{Location: "London", PropertyType: "T"}, decimal.NewFromInt(240000))
	if !almostEqual(london.GrossYield, 0.04) {
		t.Fatalf("London terraced yield = %v, want 0.04", london.GrossYield)
	}
	liverpool := RentalIncome(Input{Location: "Liverpool", PropertyType: "T"}, decimal.NewFromInt(240000))
	if !almostEqual(liverpool.GrossYield, 0.062) {
		t.Fatalf("Liverpool terraced yield = %v, want 0.062", liverpool.GrossYield)
	}
}

func TestRentalGrowthRate(t *testing.T) {
	cases := []struct {
		location string
		want     float64
	}{
		{"Manchester city centre", 4.5},
		{"London", 4.0},
		{"Newcastle upon Tyne", 2.5},
		{"Smalltown", 3.0},
	}
	for _, tc := range cases {
		if got := RentalGrowthRate(tc.location); !almostEqual(got, tc.want) {
			t.Fatalf("RentalGrowthRate(%q) = %v, want %v", tc.location, got, tc.want)
		}
	}
}

func TestRentalDemand(t *testing.T) {
	cases := []struct {
		location string
		want     string
	}{
		{"Bristol", "High"},
		{"Blackpool seafront", "Low"},
		{"Shrewsbury", "Medium"},
	}
	for _, tc := range cases {
		if got := RentalDemand(tc.location); got != tc.want {
			t.Fatalf("RentalDemand(%q) = %q, want %q", tc.location, got, tc.want)
		}
	}
}

func TestAreaData(t *testing.T) {
	edinburgh := AreaData("Edinburgh")
	if edinburgh.CrimeRate != "Low" {
		t.Fatalf("Edinburgh crime = %q, want Low", edinburgh.CrimeRate)
	}
	if edinburgh.SchoolRating != "Very Good" {
		t.Fatalf("Edinburgh schools = %q, want Very Good", edinburgh.SchoolRating)
	}
	if len(edinburgh.Amenities["transport"]) != 3 {
		t.Fatalf("Edinburgh should use the urban amenity profile")
	}

	rural := AreaData("Lower Slaughter")
	if rural.CrimeRate != "Medium" || rural.SchoolRating != "Good" || rural.TransportLinks != "Average" {
		t.Fatalf("rural defaults wrong: %+v", rural)
	}
	if len(rural.Amenities["transport"]) != 2 {
		t.Fatalf("rural location should use the suburban amenity profile")
	}
}

func TestEPCRatingDefaults(t *testing.T) {
	cases := map[string]string{"D": "D", "S": "D", "T": "E", "F": "C", "X": "D"}
	for propertyType, want := range cases {
		got := EPCRating(propertyType)
		if got.CurrentRating != want {
			t.Fatalf("EPC for %q = %q, want %q", propertyType, got.CurrentRating, want)
		}
		if got.PotentialRating != "B" || got.PotentialEfficiency != 85 || got.EfficiencyImprovement != 25 {
			t.Fatalf("EPC potential defaults wrong for %q: %+v", propertyType, got)
		}
	}
}

func TestRenovationScenarios(t *testing.T) {
	scenarios := RenovationScenarios("T", 250000, 1000)
	if len(scenarios) != 3 {
		t.Fatalf("terraced house should get 3 scenarios, got %d", len(scenarios))
	}

	cosmetic := scenarios[0]
	// 1000 * 75 * 0.4 = 30000 cost, 25000 uplift, ROI (25000/30000-1)*100.
	if !almostEqual(cosmetic.Cost, 30000) || !almostEqual(cosmetic.ValueUplift, 25000) {
		t.Fatalf("cosmetic: cost=%v uplift=%v", cosmetic.Cost, cosmetic.ValueUplift)
	}
	if !almostEqual(cosmetic.ROI, (25000.0/30000.0-1)*100) {
		t.Fatalf("cosmetic ROI = %v", cosmetic.ROI)
	}

	light := scenarios[1]
	if !almostEqual(light.Cost, 75000) || !almostEqual(light.ValueUplift, 37500) {
		t.Fatalf("light: cost=%v uplift=%v", light.Cost, light.ValueUplift)
	}
	if !almostEqual(light.ROI, -50) {
		t.Fatalf("light ROI = %v, want -50", light.ROI)
	}

	extension := scenarios[2]
	// 200 sq ft at 200/sqft cost and 550/sqft value.
	if !almostEqual(extension.Cost, 40000) || !almostEqual(extension.ValueUplift, 110000) {
		t.Fatalf("extension: cost=%v uplift=%v", extension.Cost, extension.ValueUplift)
	}
	if !almostEqual(extension.ROI, 175) {
		t.Fatalf("extension ROI = %v, want 175", extension.ROI)
	}

	flat := RenovationScenarios("F", 250000, 750)
	if len(flat) != 2 {
		t.Fatalf("flat should not get the extension scenario, got %d", len(flat))
	}
}

func TestRenovationScenarioDefaults(t *testing.T) {
	scenarios := RenovationScenarios("", 0, 0)
	if len(scenarios) != 3 {
		t.Fatalf("defaults should behave as a terraced house, got %d scenarios", len(scenarios))
	}
	if !almostEqual(scenarios[0].ValueUplift, 25000) {
		t.Fatalf("default cosmetic uplift = %v, want 25000", scenarios[0].ValueUplift)
	}
}

func TestRentalForecastCompounds(t *testing.T) {
	forecast := RentalForecast(1000, 3.0)
	if len(forecast) != 5 {
		t.Fatalf("expected 5 forecast years, got %d", len(forecast))
	}
	for i, year := range forecast {
		want := 1000 * math.Pow(1.03, float64(i+1))
		if !almostEqual(year.MonthlyRent, want) {
			t.Fatalf("year %d monthly = %v, want %v", year.Year, year.MonthlyRent, want)
		}
		if !almostEqual(year.AnnualRent, want*12) {
			t.Fatalf("year %d annual = %v, want %v", year.Year, year.AnnualRent, want*12)
		}
		if year.Year != i+1 {
			t.Fatalf("year label %d at index %d", year.Year, i)
		}
	}
}

func TestRentalForecastZeroRateUsesUKAverage(t *testing.T) {
	forecast := RentalForecast(1000, 0)
	want := 1000 * 1.03
	if !almostEqual(forecast[0].MonthlyRent, want) {
		t.Fatalf("zero-rate year 1 = %v, want %v", forecast[0].MonthlyRent, want)
	}
}
