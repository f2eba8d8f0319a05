// Package metrics computes the normalized [0,1] sub-metrics that feed the
// strategy-weighted recommendation engine. Every calculator degrades to a
// documented default (usually the 0.5 midpoint) instead of erroring when its
// inputs are missing or unusable.
package metrics

import (
	"math"
	"strings"

	"go.uber.org/zap"

	"btrscout/internal/dataset"
	"btrscout/internal/models"
)

// DefaultMetric is the midpoint fallback used when a metric cannot be
// derived from data.
const DefaultMetric = 0.5

// minGrowthSamples is the smallest transaction count considered
// statistically meaningful for the CAGR-based growth metric.
const minGrowthSamples = 10

// Calculator derives location- and property-level metrics from one read-only
// dataset snapshot. It holds no other state and is safe for concurrent use.
type Calculator struct {
	snap   *dataset.Snapshot
	logger *zap.Logger
}

func NewCalculator(snap *dataset.Snapshot, logger *zap.Logger) *Calculator {
	return &Calculator{snap: snap, logger: logger}
}

// LocationRentalYield normalizes the gross yield for a location:
// (yield - 3%) / 4%, so 3% maps to 0 and 7%+ saturates at 1.
func (c *Calculator) LocationRentalYield(location string) float64 {
	if c == nil || !c.snap.HasRentals() || !c.snap.HasTransactions() {
		return DefaultMetric
	}
	avgRent, ok := meanRentForRegion(c.snap.Rentals, location)
	if !ok {
		return DefaultMetric
	}
	avgPrice, ok := meanPriceForPrefix(c.snap.Transactions, location)
	if !ok || avgPrice <= 0 {
		return DefaultMetric
	}
	return normalizeYield(avgRent * 12 / avgPrice)
}

// LocationAffordability compares the location mean price against the
// national mean. A ratio below 0.8 scores above the midpoint, above 0.8
// decays toward zero.
func (c *Calculator) LocationAffordability(location string) float64 {
	if c == nil || !c.snap.HasTransactions() {
		return DefaultMetric
	}
	local, ok := meanPriceForPrefix(c.snap.Transactions, location)
	if !ok {
		return DefaultMetric
	}
	national := meanPrice(c.snap.Transactions)
	if national <= 0 {
		return DefaultMetric
	}
	return affordabilityFromRatio(local / national)
}

// LocationGrowth derives a compound annual growth rate from year-grouped
// mean prices and normalizes against a 10% ceiling. It needs more than
// minGrowthSamples dated transactions and at least two distinct years;
// otherwise it returns the midpoint. Planning applications are a reserved
// growth input that the calculation does not consume yet.
func (c *Calculator) LocationGrowth(location string) float64 {
	if c == nil || !c.snap.HasTransactions() {
		return DefaultMetric
	}
	var dated []models.PropertyRecord
	prefix := strings.ToUpper(location)
	for _, it := range c.snap.Transactions {
		if it.TransactionDate == nil {
			continue
		}
		if strings.HasPrefix(strings.ToUpper(it.Postcode), prefix) {
			dated = append(dated, it)
		}
	}
	if len(dated) <= minGrowthSamples {
		return DefaultMetric
	}

	sumByYear := map[int]float64{}
	countByYear := map[int]int{}
	firstYear, lastYear := 0, 0
	for _, it := range dated {
		year := it.TransactionDate.Year()
		sumByYear[year] += it.Price.InexactFloat64()
		countByYear[year]++
		if firstYear == 0 || year < firstYear {
			firstYear = year
		}
		if year > lastYear {
			lastYear = year
		}
	}
	if lastYear <= firstYear {
		return DefaultMetric
	}
	firstMean := sumByYear[firstYear] / float64(countByYear[firstYear])
	lastMean := sumByYear[lastYear] / float64(countByYear[lastYear])
	if firstMean <= 0 {
		return DefaultMetric
	}

	years := float64(lastYear - firstYear)
	cagr := math.Pow(lastMean/firstMean, 1/years) - 1
	if math.IsNaN(cagr) || math.IsInf(cagr, 0) {
		c.logAnomaly("growth cagr not finite", location)
		return DefaultMetric
	}
	return clamp01(cagr / 0.10)
}

// LocationImprovement prefers the mean potential-minus-current efficiency
// delta (normalized by 30 points); when the feed only carries ordinal
// ratings it falls back to the fraction of E/F/G rated stock.
func (c *Calculator) LocationImprovement(location string) float64 {
	if c == nil || !c.snap.HasEnergy() {
		return DefaultMetric
	}
	prefix := strings.ToUpper(location)
	var matched []models.EnergyRecord
	for _, it := range c.snap.Energy {
		if strings.HasPrefix(strings.ToUpper(it.Postcode), prefix) {
			matched = append(matched, it)
		}
	}
	if len(matched) == 0 {
		return DefaultMetric
	}

	sumCurrent, sumPotential, n := 0.0, 0.0, 0
	for _, it := range matched {
		if it.CurrentEfficiency == nil || it.PotentialEfficiency == nil {
			continue
		}
		sumCurrent += float64(*it.CurrentEfficiency)
		sumPotential += float64(*it.PotentialEfficiency)
		n++
	}
	if n > 0 {
		improvement := (sumPotential - sumCurrent) / float64(n)
		return clamp01(improvement / 30)
	}

	poor, rated := 0, 0
	for _, it := range matched {
		if it.CurrentRating == nil {
			continue
		}
		rated++
		switch *it.CurrentRating {
		case "E", "F", "G":
			poor++
		}
	}
	if rated == 0 {
		return DefaultMetric
	}
	return clamp01(float64(poor) / float64(rated))
}

// LocationSFH scores single-family-housing suitability from the house share
// of the location's stock. A 50-80% house share is ideal; above 80% is
// penalized as saturated.
func (c *Calculator) LocationSFH(location string) float64 {
	if c == nil || !c.snap.HasTransactions() {
		return DefaultMetric
	}
	prefix := strings.ToUpper(location)
	houses, total := 0, 0
	for _, it := range c.snap.Transactions {
		if !strings.HasPrefix(strings.ToUpper(it.Postcode), prefix) {
			continue
		}
		total++
		if models.IsHouse(it.PropertyType) {
			houses++
		}
	}
	if total == 0 {
		return DefaultMetric
	}
	return sfhFromHouseRatio(float64(houses) / float64(total))
}

func (c *Calculator) logAnomaly(msg, location string) {
	if c != nil && c.logger != nil {
		c.logger.Warn(msg, zap.String("location", location))
	}
}

// --- pure helpers (unit-tested without a snapshot) --------------------------

func normalizeYield(grossYield float64) float64 {
	return clamp01((grossYield - 0.03) / 0.04)
}

func affordabilityFromRatio(priceRatio float64) float64 {
	if priceRatio < 0.8 {
		return math.Min(1.0, 0.5+(0.8-priceRatio)/0.6)
	}
	return math.Max(0.0, 0.5-(priceRatio-0.8)/2.4)
}

func sfhFromHouseRatio(ratio float64) float64 {
	switch {
	case ratio >= 0.5 && ratio <= 0.8:
		return 1.0
	case ratio > 0.8:
		return 0.7
	default:
		return math.Max(0.3, ratio)
	}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func meanPrice(items []models.PropertyRecord) float64 {
	if len(items) == 0 {
		return 0
	}
	sum := 0.0
	for _, it := range items {
		sum += it.Price.InexactFloat64()
	}
	return sum / float64(len(items))
}

func meanPriceForPrefix(items []models.PropertyRecord, location string) (float64, bool) {
	prefix := strings.ToUpper(location)
	sum, n := 0.0, 0
	for _, it := range items {
		if strings.HasPrefix(strings.ToUpper(it.Postcode), prefix) {
			sum += it.Price.InexactFloat64()
			n++
		}
	}
	if n == 0 {
		return 0, false
	}
	return sum / float64(n), true
}

func meanRentForRegion(items []models.RentalObservation, location string) (float64, bool) {
	needle := strings.ToLower(location)
	sum, n := 0.0, 0
	for _, it := range items {
		if strings.Contains(strings.ToLower(it.Region), needle) {
			sum += it.Value.InexactFloat64()
			n++
		}
	}
	if n == 0 {
		return 0, false
	}
	return sum / float64(n), true
}

func meanRentAll(items []models.RentalObservation) (float64, bool) {
	if len(items) == 0 {
		return 0, false
	}
	sum := 0.0
	for _, it := range items {
		sum += it.Value.InexactFloat64()
	}
	return sum / float64(len(items)), true
}
