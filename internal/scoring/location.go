package scoring

import (
	"encoding/json"
	"strings"

	"btrscout/internal/models"
)

// LocationInputs carries whichever dataset slices are available for a
// location score. Any field may be nil; every component then falls back to
// its documented default, so a score is always produced.
type LocationInputs struct {
	Amenities    []models.AmenityRecord
	Rentals      []models.RentalObservation
	Energy       []models.EnergyRecord
	Transactions []models.PropertyRecord
	Planning     []models.PlanningApplication

	// SchoolRating and TransportLinks come from an area profile when one is
	// known (the estimation layer supplies them for single-address flows).
	SchoolRating   string
	TransportLinks string
}

// ScoreLocation computes the composite BTR score for a location from
// whatever data is present. It is pure: identical inputs always produce an
// identical Result, and missing data never surfaces as an error.
func ScoreLocation(location string, in LocationInputs) Result {
	scores := map[string]float64{}

	txns := matchTransactions(in.Transactions, location)
	rents := matchRentals(in.Rentals, location)

	scores[ComponentYield] = locationYieldPoints(txns, rents)

	modal := modalPropertyType(txns)
	if modal == "" {
		scores[ComponentPropertyType] = 10
	} else {
		scores[ComponentPropertyType] = propertyTypePoints(modal)
	}

	amenities := amenityCount(in.Amenities, location)
	scores[ComponentArea] = areaPoints(amenities, in.SchoolRating, in.TransportLinks)

	if rate, ok := meanGrowthRate(rents); ok {
		scores[ComponentGrowth] = growthPoints(rate)
	} else {
		scores[ComponentGrowth] = 10
	}

	scores[ComponentRenovation] = renovationPoints(models.IsHouse(modal))

	result := compose(scores)
	result.HasData = len(txns) > 0 || len(rents) > 0 || amenities > 0
	return result
}

func locationYieldPoints(txns []models.PropertyRecord, rents []models.RentalObservation) float64 {
	if len(txns) == 0 || len(rents) == 0 {
		return 10
	}
	avgPrice := meanPrice(txns)
	avgRent := meanRent(rents)
	if avgPrice <= 0 || avgRent <= 0 {
		return 10
	}
	return yieldPoints(avgRent * 12 / avgPrice)
}

func matchTransactions(items []models.PropertyRecord, location string) []models.PropertyRecord {
	if len(items) == 0 || location == "" {
		return nil
	}
	prefix := strings.ToUpper(location)
	var out []models.PropertyRecord
	for _, it := range items {
		if strings.HasPrefix(strings.ToUpper(it.Postcode), prefix) {
			out = append(out, it)
		}
	}
	return out
}

func matchRentals(items []models.RentalObservation, location string) []models.RentalObservation {
	if len(items) == 0 || location == "" {
		return nil
	}
	needle := strings.ToLower(location)
	var out []models.RentalObservation
	for _, it := range items {
		if strings.Contains(strings.ToLower(it.Region), needle) {
			out = append(out, it)
		}
	}
	return out
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

func meanRent(items []models.RentalObservation) float64 {
	if len(items) == 0 {
		return 0
	}
	sum := 0.0
	for _, it := range items {
		sum += it.Value.InexactFloat64()
	}
	return sum / float64(len(items))
}

func meanGrowthRate(items []models.RentalObservation) (float64, bool) {
	sum := 0.0
	n := 0
	for _, it := range items {
		if it.YoYGrowth == nil {
			continue
		}
		sum += *it.YoYGrowth
		n++
	}
	if n == 0 {
		return 0, false
	}
	return sum / float64(n), true
}

func modalPropertyType(items []models.PropertyRecord) string {
	if len(items) == 0 {
		return ""
	}
	counts := map[string]int{}
	for _, it := range items {
		counts[it.PropertyType]++
	}
	best := ""
	bestN := 0
	// Fixed candidate order keeps ties deterministic.
	for _, code := range []string{"D", "S", "T", "F", "O"} {
		if counts[code] > bestN {
			best = code
			bestN = counts[code]
		}
	}
	return best
}

// amenityCount sums amenity list lengths across categories for records
// matching a location.
func amenityCount(items []models.AmenityRecord, location string) int {
	if len(items) == 0 || location == "" {
		return 0
	}
	needle := strings.ToLower(location)
	total := 0
	for _, it := range items {
		if !strings.Contains(strings.ToLower(it.Location), needle) {
			continue
		}
		var byCategory map[string][]string
		if err := json.Unmarshal(it.Amenities, &byCategory); err != nil {
			continue
		}
		for _, list := range byCategory {
			total += len(list)
		}
	}
	return total
}
