package recommend

import (
	"errors"
	"math"
	"testing"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"

	"btrscout/internal/dataset"
	"btrscout/internal/models"
	"btrscout/internal/strategy"
)

type stubSnapshots struct {
	snap *dataset.Snapshot
}

func (s *stubSnapshots) Current() *dataset.Snapshot {
	if s.snap == nil {
		return &dataset.Snapshot{}
	}
	return s.snap
}

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestWeightedScoreBalanced(t *testing.T) {
	profile, err := strategy.Get(strategy.Balanced)
	if err != nil {
		t.Fatalf("get balanced: %v", err)
	}
	vals := map[string]float64{
		strategy.MetricLocationScore: 0.2,
		strategy.MetricRentalYield:   0.4,
		strategy.MetricAffordability: 0.6,
		strategy.MetricGrowth:        0.8,
	}
	// 0.2*0.3 + 0.4*0.25 + 0.6*0.2 + 0.8*0.25 = 0.48 -> 48.0.
	if got := weightedScore(profile.Weights, vals); !almostEqual(got, 48.0) {
		t.Fatalf("weightedScore = %v, want 48.0", got)
	}
}

func TestWeightedScoreSkipsMissingMetrics(t *testing.T) {
	profile, err := strategy.Get(strategy.ValueAdd)
	if err != nil {
		t.Fatalf("get value_add: %v", err)
	}
	vals := map[string]float64{
		strategy.MetricLocationScore: 1.0,
	}
	if got := weightedScore(profile.Weights, vals); !almostEqual(got, 30.0) {
		t.Fatalf("weightedScore with one metric = %v, want 30.0", got)
	}
}

func TestRecommendLocationsUnknownStrategy(t *testing.T) {
	engine := &Engine{Snapshots: &stubSnapshots{}}
	if _, err := engine.RecommendLocations("moonshot", 5); !errors.Is(err, strategy.ErrUnknownStrategy) {
		t.Fatalf("expected ErrUnknownStrategy, got %v", err)
	}
	if _, err := engine.RecommendProperties(decimal.NewFromInt(100000), "moonshot", 5); !errors.Is(err, strategy.ErrUnknownStrategy) {
		t.Fatalf("expected ErrUnknownStrategy, got %v", err)
	}
}

func TestRecommendLocationsSeedCitiesWithoutData(t *testing.T) {
	engine := &Engine{Snapshots: &stubSnapshots{}}
	items, err := engine.RecommendLocations(strategy.Balanced, 0)
	if err != nil {
		t.Fatalf("recommend failed: %v", err)
	}
	if len(items) != len(seedCities) {
		t.Fatalf("expected %d seed candidates, got %d", len(seedCities), len(items))
	}
	for _, it := range items {
		if it.OverallScore < 0 || it.OverallScore > 100 {
			t.Fatalf("%s: score out of range: %v", it.Location, it.OverallScore)
		}
		if len(it.Metrics) == 0 {
			t.Fatalf("%s: missing metrics", it.Location)
		}
	}
	// Without data every candidate scores identically, so the stable sort
	// must preserve alphabetical candidate order.
	for i := 1; i < len(items); i++ {
		if items[i-1].OverallScore == items[i].OverallScore &&
			items[i-1].Location > items[i].Location {
			t.Fatalf("tie order broken: %q before %q", items[i-1].Location, items[i].Location)
		}
	}
}

func TestRecommendLocationsTopN(t *testing.T) {
	engine := &Engine{Snapshots: &stubSnapshots{}}
	items, err := engine.RecommendLocations(strategy.Balanced, 3)
	if err != nil {
		t.Fatalf("recommend failed: %v", err)
	}
	if len(items) != 3 {
		t.Fatalf("expected 3 results, got %d", len(items))
	}
}

func TestRecommendPropertiesEmptyDataset(t *testing.T) {
	engine := &Engine{Snapshots: &stubSnapshots{}}
	items, err := engine.RecommendProperties(decimal.NewFromInt(500000), strategy.Balanced, 10)
	if err != nil {
		t.Fatalf("recommend failed: %v", err)
	}
	if items == nil || len(items) != 0 {
		t.Fatalf("expected empty non-nil slice, got %#v", items)
	}
}

func TestRecommendPropertiesBudgetFilter(t *testing.T) {
	snap := &dataset.Snapshot{
		Transactions: []models.PropertyRecord{
			{Postcode: "LS1 4AB", PropertyType: "T", Price: decimal.NewFromInt(180000)},
			{Postcode: "LS2 5CD", PropertyType: "S", Price: decimal.NewFromInt(240000)},
			{Postcode: "M21 8GH", PropertyType: "D", Price: decimal.NewFromInt(900000)},
		},
		Rentals: []models.RentalObservation{},
	}
	engine := &Engine{Snapshots: &stubSnapshots{snap: snap}, SampleSeed: 1}
	items, err := engine.RecommendProperties(decimal.NewFromInt(250000), strategy.Balanced, 10)
	if err != nil {
		t.Fatalf("recommend failed: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("expected 2 budget-eligible properties, got %d", len(items))
	}
	for _, it := range items {
		if it.Property.Price.GreaterThan(decimal.NewFromInt(250000)) {
			t.Fatalf("over-budget property in results: %s", it.Property.Price)
		}
		if it.Location == "" {
			t.Fatalf("property missing location")
		}
	}
}

func TestRecommendPropertiesSeededSamplingDeterministic(t *testing.T) {
	var txns []models.PropertyRecord
	for i := 0; i < 300; i++ {
		txns = append(txns, models.PropertyRecord{
			Postcode:     "LS1 4AB",
			PropertyType: "T",
			Price:        decimal.NewFromInt(int64(100000 + i*100)),
		})
	}
	snap := &dataset.Snapshot{Transactions: txns, Rentals: []models.RentalObservation{}}

	run := func() []PropertyRecommendation {
		engine := &Engine{
			Snapshots:  &stubSnapshots{snap: snap},
			SampleSize: 50,
			SampleSeed: 42,
		}
		items, err := engine.RecommendProperties(decimal.NewFromInt(1000000), strategy.Balanced, 50)
		if err != nil {
			t.Fatalf("recommend failed: %v", err)
		}
		return items
	}

	first := run()
	second := run()
	if len(first) != 50 || len(second) != 50 {
		t.Fatalf("expected 50 sampled results, got %d and %d", len(first), len(second))
	}
	for i := range first {
		if !first[i].Property.Price.Equal(second[i].Property.Price) {
			t.Fatalf("sampling not deterministic at index %d", i)
		}
	}
}

func TestCandidateLocationsUnionIsSorted(t *testing.T) {
	snap := &dataset.Snapshot{
		Amenities: []models.AmenityRecord{
			{Location: "York", Amenities: datatypes.JSON(`{"shops":["One"]}`)},
		},
		Transactions: []models.PropertyRecord{
			{Postcode: "LS1 4AB", Price: decimal.NewFromInt(100000)},
		},
	}
	engine := &Engine{Snapshots: &stubSnapshots{snap: snap}}
	candidates := engine.candidateLocations(snap)

	seen := map[string]bool{}
	for i, loc := range candidates {
		if seen[loc] {
			t.Fatalf("duplicate candidate %q", loc)
		}
		seen[loc] = true
		if i > 0 && candidates[i-1] > loc {
			t.Fatalf("candidates not sorted: %q after %q", loc, candidates[i-1])
		}
	}
	if !seen["York"] || !seen["LS1"] || !seen["London"] {
		t.Fatalf("expected union of seeds, amenities and districts, got %v", candidates)
	}
}

func TestHotspotsDefaultScores(t *testing.T) {
	engine := &Engine{Snapshots: &stubSnapshots{}}
	spots := engine.Hotspots()
	if len(spots) != len(majorCities) {
		t.Fatalf("expected %d hotspots, got %d", len(majorCities), len(spots))
	}
	byCity := map[string]Hotspot{}
	for i, spot := range spots {
		if spot.DataQuality != "estimated" {
			t.Fatalf("%s: quality %q, want estimated", spot.Location, spot.DataQuality)
		}
		if i > 0 && spots[i-1].Score < spot.Score {
			t.Fatalf("hotspots not sorted by score desc")
		}
		byCity[spot.Location] = spot
	}
	if byCity["London"].Score != 85 {
		t.Fatalf("London default = %d, want 85", byCity["London"].Score)
	}
	if byCity["Belfast"].Score != 68 {
		t.Fatalf("Belfast default = %d, want 68", byCity["Belfast"].Score)
	}
	if spots[0].Location != "London" {
		t.Fatalf("top hotspot = %s, want London", spots[0].Location)
	}
}
