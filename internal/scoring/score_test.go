package scoring

import (
	"math"
	"testing"

	"github.com/shopspring/decimal"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestYieldPoints(t *testing.T) {
	cases := []struct {
		grossYield float64
		want       float64
	}{
		{0.03, 0},
		{0.05, 25},
		{0.04, 12.5},
		{0.07, 25},
		{0.10, 25},
		{0.01, 0},
	}
	for _, tc := range cases {
		got := yieldPoints(tc.grossYield)
		if !almostEqual(got, tc.want) {
			t.Fatalf("yieldPoints(%v) = %v, want %v", tc.grossYield, got, tc.want)
		}
	}
}

func TestGrowthPoints(t *testing.T) {
	cases := []struct {
		pct  float64
		want float64
	}{
		{0, 5},
		{0.05, 10},
		{0.10, 15},
		{0.20, 15},
		{-0.10, 5},
	}
	for _, tc := range cases {
		got := growthPoints(tc.pct)
		if !almostEqual(got, tc.want) {
			t.Fatalf("growthPoints(%v) = %v, want %v", tc.pct, got, tc.want)
		}
	}
}

func TestPropertyTypePoints(t *testing.T) {
	cases := map[string]float64{
		"D": 20, "S": 18, "T": 15, "F": 10, "O": 5, "X": 10, "": 10,
	}
	for code, want := range cases {
		if got := propertyTypePoints(code); !almostEqual(got, want) {
			t.Fatalf("propertyTypePoints(%q) = %v, want %v", code, got, want)
		}
	}
}

func TestAreaPoints(t *testing.T) {
	if got := areaPoints(0, "", ""); !almostEqual(got, 10) {
		t.Fatalf("no inputs: got %v, want 10", got)
	}
	if got := areaPoints(4, "", ""); !almostEqual(got, 12) {
		t.Fatalf("4 amenities: got %v, want 12", got)
	}
	if got := areaPoints(100, "Outstanding", "Excellent"); !almostEqual(got, 20) {
		t.Fatalf("saturated: got %v, want 20", got)
	}
	if got := areaPoints(2, "Good", "Good"); !almostEqual(got, 17) {
		t.Fatalf("good school and transport: got %v, want 17", got)
	}
}

func TestRenovationPoints(t *testing.T) {
	if got := renovationPoints(true); !almostEqual(got, 10) {
		t.Fatalf("house: got %v, want 10", got)
	}
	if got := renovationPoints(false); !almostEqual(got, 7.5) {
		t.Fatalf("flat: got %v, want 7.5", got)
	}
}

func TestCategoryThresholds(t *testing.T) {
	cases := []struct {
		score int
		want  string
	}{
		{100, CategoryExcellent},
		{80, CategoryExcellent},
		{79, CategoryGood},
		{70, CategoryGood},
		{69, CategoryAboveAverage},
		{60, CategoryAboveAverage},
		{59, CategoryAverage},
		{50, CategoryAverage},
		{49, CategoryBelowAverage},
		{40, CategoryBelowAverage},
		{39, CategoryPoor},
		{30, CategoryPoor},
		{29, CategoryVeryPoor},
		{0, CategoryVeryPoor},
	}
	for _, tc := range cases {
		if got := Category(tc.score); got != tc.want {
			t.Fatalf("Category(%d) = %q, want %q", tc.score, got, tc.want)
		}
	}
}

func TestScorePropertyDefaults(t *testing.T) {
	// All-zero facts fall back to a terraced house at 250k with 12k rent
	// and 3% growth.
	got := ScoreProperty(PropertyFacts{}, RentalFacts{}, AreaFacts{})

	// yield: 12000/250000 = 4.8% -> 22.5; type T -> 15; area -> 10;
	// growth 3% -> (10+min(20,600))/2 capped by formula at 15; renovation
	// house -> 10. Growth uses percent units: 3.0*200 clamps to 20 -> 15.
	if got.OverallScore < 0 || got.OverallScore > 100 {
		t.Fatalf("score out of range: %d", got.OverallScore)
	}
	if !almostEqual(got.ComponentScores[ComponentYield], 22.5) {
		t.Fatalf("yield component = %v, want 22.5", got.ComponentScores[ComponentYield])
	}
	if !almostEqual(got.ComponentScores[ComponentPropertyType], 15) {
		t.Fatalf("type component = %v, want 15", got.ComponentScores[ComponentPropertyType])
	}
	if !almostEqual(got.ComponentScores[ComponentRenovation], 10) {
		t.Fatalf("renovation component = %v, want 10", got.ComponentScores[ComponentRenovation])
	}
	if got.Category != Category(got.OverallScore) {
		t.Fatalf("category %q does not match score %d", got.Category, got.OverallScore)
	}
}

func TestScorePropertyDeterministic(t *testing.T) {
	facts := PropertyFacts{
		EstimatedValue: decimal.NewFromInt(320000),
		PropertyType:   "S",
	}
	rental := RentalFacts{AnnualRent: decimal.NewFromInt(15000)}
	area := AreaFacts{AmenityCount: 6, SchoolRating: "Good", TransportLinks: "Good"}

	first := ScoreProperty(facts, rental, area)
	second := ScoreProperty(facts, rental, area)
	if first.OverallScore != second.OverallScore {
		t.Fatalf("score not deterministic: %d vs %d", first.OverallScore, second.OverallScore)
	}
	for k, v := range first.ComponentScores {
		if !almostEqual(second.ComponentScores[k], v) {
			t.Fatalf("component %s differs between runs", k)
		}
	}
}

func TestScoreLocationNoData(t *testing.T) {
	got := ScoreLocation("Nowhere", LocationInputs{})
	if got.OverallScore < 0 || got.OverallScore > 100 {
		t.Fatalf("score out of range: %d", got.OverallScore)
	}
	if got.HasData {
		t.Fatalf("expected HasData=false for empty inputs")
	}
	// All components at their defaults: 10+10+10+10+7.5 = 47.5 -> 48.
	if got.OverallScore != 48 {
		t.Fatalf("all-defaults score = %d, want 48", got.OverallScore)
	}
	if len(got.ComponentScores) != 5 {
		t.Fatalf("expected 5 components, got %d", len(got.ComponentScores))
	}
}
