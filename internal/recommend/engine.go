// Package recommend ranks locations and properties by strategy-weighted
// investment metrics computed over the current dataset snapshot.
package recommend

import (
	"math/rand"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"btrscout/internal/dataset"
	"btrscout/internal/metrics"
	"btrscout/internal/models"
	"btrscout/internal/scoring"
	"btrscout/internal/strategy"
)

// seedCities are always evaluated as location candidates, whatever the
// datasets contain.
var seedCities = []string{
	"London", "Manchester", "Birmingham", "Leeds", "Glasgow",
	"Liverpool", "Bristol", "Sheffield", "Edinburgh", "Cardiff",
}

// SnapshotSource is satisfied by dataset.Store.
type SnapshotSource interface {
	Current() *dataset.Snapshot
}

// Engine scores candidates against the current snapshot. Each call reads
// one snapshot pointer and works on it for the whole computation, so
// concurrent callers and background refreshes never interfere.
type Engine struct {
	Snapshots SnapshotSource
	Logger    *zap.Logger

	// SampleSize bounds how many budget-eligible transactions are scored
	// per RecommendProperties call; 0 means the default of 100.
	SampleSize int
	// SampleSeed fixes the sampling order for reproducible rankings; 0
	// seeds from the clock once at first use.
	SampleSeed int64

	rngOnce sync.Once
	rngMu   sync.Mutex
	rng     *rand.Rand
}

// LocationRecommendation is one ranked location.
type LocationRecommendation struct {
	Location      string             `json:"location"`
	OverallScore  float64            `json:"overall_score"`
	LocationScore int                `json:"location_score"`
	Metrics       map[string]float64 `json:"metrics"`
}

// PropertyRecommendation is one ranked property with its containing
// location's score.
type PropertyRecommendation struct {
	Property      models.PropertyRecord `json:"property"`
	Location      string                `json:"location"`
	OverallScore  float64               `json:"overall_score"`
	LocationScore int                   `json:"location_score"`
	Metrics       map[string]float64    `json:"metrics"`
}

// RecommendLocations ranks candidate locations under the named strategy and
// returns at most topN of them. The only caller-visible failure is an
// unknown strategy name; missing data degrades to metric defaults.
func (e *Engine) RecommendLocations(strategyName string, topN int) ([]LocationRecommendation, error) {
	profile, err := strategy.Get(strategyName)
	if err != nil {
		return nil, err
	}
	snap := e.snapshot()
	calc := metrics.NewCalculator(snap, e.logger())

	out := make([]LocationRecommendation, 0)
	for _, location := range e.candidateLocations(snap) {
		locResult := scoring.ScoreLocation(location, scoring.LocationInputs{
			Amenities:    snap.Amenities,
			Rentals:      snap.Rentals,
			Energy:       snap.Energy,
			Transactions: snap.Transactions,
			Planning:     snap.Planning,
		})

		vals := map[string]float64{
			strategy.MetricLocationScore: float64(locResult.OverallScore) / 100,
			strategy.MetricRentalYield:   calc.LocationRentalYield(location),
			strategy.MetricAffordability: calc.LocationAffordability(location),
			strategy.MetricGrowth:        calc.LocationGrowth(location),
		}
		if _, ok := profile.Weights[strategy.MetricImprovement]; ok {
			vals[strategy.MetricImprovement] = calc.LocationImprovement(location)
		}
		if _, ok := profile.Weights[strategy.MetricSFHSuitability]; ok {
			vals[strategy.MetricSFHSuitability] = calc.LocationSFH(location)
		}

		out = append(out, LocationRecommendation{
			Location:      location,
			OverallScore:  weightedScore(profile.Weights, vals),
			LocationScore: locResult.OverallScore,
			Metrics:       vals,
		})
	}

	// Stable sort keeps the alphabetical candidate order on ties, so equal
	// scores rank deterministically.
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].OverallScore > out[j].OverallScore
	})
	return truncateLocations(out, topN), nil
}

// RecommendProperties ranks budget-eligible transactions under the named
// strategy. An unavailable or empty transaction dataset yields an empty
// ranking, never an error.
func (e *Engine) RecommendProperties(budget decimal.Decimal, strategyName string, topN int) ([]PropertyRecommendation, error) {
	profile, err := strategy.Get(strategyName)
	if err != nil {
		return nil, err
	}
	snap := e.snapshot()

	eligible := make([]models.PropertyRecord, 0)
	for _, it := range snap.Transactions {
		if it.Price.LessThanOrEqual(budget) {
			eligible = append(eligible, it)
		}
	}
	if len(eligible) == 0 {
		return []PropertyRecommendation{}, nil
	}

	sampled := e.sample(eligible)
	calc := metrics.NewCalculator(snap, e.logger())

	out := make([]PropertyRecommendation, 0, len(sampled))
	for _, property := range sampled {
		location := propertyLocation(property)
		locResult := scoring.ScoreLocation(location, scoring.LocationInputs{
			Amenities:    snap.Amenities,
			Rentals:      snap.Rentals,
			Energy:       snap.Energy,
			Transactions: snap.Transactions,
			Planning:     snap.Planning,
		})

		vals := map[string]float64{
			strategy.MetricLocationScore: float64(locResult.OverallScore) / 100,
			strategy.MetricRentalYield:   calc.PropertyYield(property),
			strategy.MetricAffordability: calc.PropertyAffordability(property),
			strategy.MetricGrowth:        calc.PropertyGrowth(property),
		}
		if _, ok := profile.Weights[strategy.MetricImprovement]; ok {
			vals[strategy.MetricImprovement] = calc.PropertyImprovement(property)
		}
		if _, ok := profile.Weights[strategy.MetricSFHSuitability]; ok {
			vals[strategy.MetricSFHSuitability] = calc.PropertySFH(property)
		}

		out = append(out, PropertyRecommendation{
			Property:      property,
			Location:      location,
			OverallScore:  weightedScore(profile.Weights, vals),
			LocationScore: locResult.OverallScore,
			Metrics:       vals,
		})
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].OverallScore > out[j].OverallScore
	})
	if topN > 0 && len(out) > topN {
		out = out[:topN]
	}
	return out, nil
}

// weightedScore combines metric values with profile weights, skipping
// weighted metrics that were not computed, and scales to 0-100.
func weightedScore(weights map[string]float64, vals map[string]float64) float64 {
	total := 0.0
	for metric, weight := range weights {
		if v, ok := vals[metric]; ok {
			total += v * weight
		}
	}
	return total * 100
}

// candidateLocations unions the seed cities, the amenity-table locations
// and the transaction postcode districts, deduplicated and sorted so the
// enumeration order is deterministic.
func (e *Engine) candidateLocations(snap *dataset.Snapshot) []string {
	seen := map[string]struct{}{}
	add := func(loc string) {
		loc = strings.TrimSpace(loc)
		if loc == "" {
			return
		}
		seen[loc] = struct{}{}
	}
	for _, city := range seedCities {
		add(city)
	}
	for _, it := range snap.Amenities {
		add(it.Location)
	}
	for _, it := range snap.Transactions {
		if strings.Contains(it.Postcode, " ") {
			add(models.PostcodeDistrict(it.Postcode))
		}
	}
	out := make([]string, 0, len(seen))
	for loc := range seen {
		out = append(out, loc)
	}
	sort.Strings(out)
	return out
}

// sample takes up to SampleSize records uniformly. The shared rng is only
// used to pick indices; the snapshot itself is never reordered.
func (e *Engine) sample(items []models.PropertyRecord) []models.PropertyRecord {
	limit := e.SampleSize
	if limit <= 0 {
		limit = 100
	}
	if len(items) <= limit {
		return items
	}
	e.rngOnce.Do(func() {
		seed := e.SampleSeed
		if seed == 0 {
			seed = time.Now().UnixNano()
		}
		e.rng = rand.New(rand.NewSource(seed))
	})
	e.rngMu.Lock()
	picks := e.rng.Perm(len(items))[:limit]
	e.rngMu.Unlock()
	sort.Ints(picks)
	out := make([]models.PropertyRecord, 0, limit)
	for _, idx := range picks {
		out = append(out, items[idx])
	}
	return out
}

func propertyLocation(property models.PropertyRecord) string {
	if strings.Contains(property.Postcode, " ") {
		return models.PostcodeDistrict(property.Postcode)
	}
	if property.Postcode != "" {
		return property.Postcode
	}
	if property.District != nil {
		return *property.District
	}
	return ""
}

func truncateLocations(items []LocationRecommendation, topN int) []LocationRecommendation {
	if topN > 0 && len(items) > topN {
		return items[:topN]
	}
	return items
}

func (e *Engine) snapshot() *dataset.Snapshot {
	if e == nil || e.Snapshots == nil {
		return &dataset.Snapshot{}
	}
	return e.Snapshots.Current()
}

func (e *Engine) logger() *zap.Logger {
	if e == nil {
		return nil
	}
	return e.Logger
}
