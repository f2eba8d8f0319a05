package recommend

import (
	"sort"

	"btrscout/internal/scoring"
)

// cityHotspot carries the static coordinates and market-knowledge fallback
// score for a major UK city.
type cityHotspot struct {
	lat   float64
	lon   float64
	score int
}

var majorCities = map[string]cityHotspot{
	"London":     {51.5074, -0.1278, 85},
	"Manchester": {53.4808, -2.2426, 82},
	"Birmingham": {52.4862, -1.8904, 78},
	"Leeds":      {53.8008, -1.5491, 76},
	"Glasgow":    {55.8642, -4.2518, 72},
	"Liverpool":  {53.4084, -2.9916, 74},
	"Bristol":    {51.4545, -2.5879, 77},
	"Sheffield":  {53.3811, -1.4701, 70},
	"Edinburgh":  {55.9533, -3.1883, 75},
	"Cardiff":    {51.4816, -3.1791, 71},
	"Belfast":    {54.5973, -5.9301, 68},
	"Nottingham": {52.9548, -1.1581, 73},
	"Newcastle":  {54.9783, -1.6178, 69},
}

// Hotspot is a mapped location with its current score.
type Hotspot struct {
	Location    string  `json:"location"`
	Lat         float64 `json:"lat"`
	Lon         float64 `json:"lon"`
	Score       int     `json:"score"`
	Category    string  `json:"category"`
	DataQuality string  `json:"data_quality"`
}

// Hotspots returns the major-city hotspot list. Cities covered by the
// current snapshot are scored from it and tagged verified; the rest keep
// their market-knowledge default and are tagged estimated.
func (e *Engine) Hotspots() []Hotspot {
	snap := e.snapshot()
	inputs := scoring.LocationInputs{
		Amenities:    snap.Amenities,
		Rentals:      snap.Rentals,
		Energy:       snap.Energy,
		Transactions: snap.Transactions,
		Planning:     snap.Planning,
	}

	out := make([]Hotspot, 0, len(majorCities))
	for city, info := range majorCities {
		score := info.score
		quality := "estimated"
		if snap.HasTransactions() || snap.HasRentals() || snap.HasAmenities() || snap.HasEnergy() {
			if result := scoring.ScoreLocation(city, inputs); result.HasData {
				score = result.OverallScore
				quality = "verified"
			}
		}
		out = append(out, Hotspot{
			Location:    city,
			Lat:         info.lat,
			Lon:         info.lon,
			Score:       score,
			Category:    scoring.Category(score),
			DataQuality: quality,
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Score != out[j].Score {
			return out[i].Score > out[j].Score
		}
		return out[i].Location < out[j].Location
	})
	return out
}
