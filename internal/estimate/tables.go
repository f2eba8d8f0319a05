// Package estimate fills gaps in property analyses when the open datasets
// have no coverage for an address. Every output is tagged with a data
// quality of "estimated" so report consumers can tell modelled values from
// observed ones.
package estimate

import "regexp"

// areaRule is one entry of an ordered city lookup. Rules are matched
// against the upper-cased address and the first hit wins, so more specific
// names must come first.
type areaRule struct {
	Area  string
	Value float64
}

// textRule is the string-valued counterpart of areaRule.
type textRule struct {
	Area  string
	Value string
}

// valueMultipliers scale the UK baseline property value by city.
var valueMultipliers = []areaRule{
	{"LONDON", 2.5},
	{"MANCHESTER", 1.2},
	{"BIRMINGHAM", 1.1},
	{"LEEDS", 1.0},
	{"BRISTOL", 1.3},
	{"EDINBURGH", 1.4},
	{"GLASGOW", 0.9},
	{"CARDIFF", 1.0},
	{"LIVERPOOL", 0.8},
	{"NEWCASTLE", 0.8},
	{"NOTTINGHAM", 0.9},
	{"SHEFFIELD", 0.8},
	{"BELFAST", 0.7},
}

// Premium postcode bands floor the city multiplier regardless of which
// city matched.
var (
	londonPremiumPostcodes = regexp.MustCompile(`^(SW[1-7]|W[1-2]|WC[1-2]|EC[1-4]|NW[1-3,8])`)
	otherPremiumPostcodes  = regexp.MustCompile(`^(GU|RG|OX|BH|BN|BS|B9[1-9]|M21)`)
)

// typeValueMultipliers adjust the estimate by Land Registry type code.
var typeValueMultipliers = map[string]float64{
	"D": 1.3,
	"S": 1.0,
	"T": 0.85,
	"F": 0.7,
}

// baseYields are conservative gross yields by property type.
var baseYields = map[string]float64{
	"D": 0.040,
	"S": 0.045,
	"T": 0.050,
	"F": 0.055,
}

// yieldAdjustments shift the base yield by city.
var yieldAdjustments = []areaRule{
	{"LONDON", -0.010},
	{"MANCHESTER", 0.008},
	{"BIRMINGHAM", 0.007},
	{"LIVERPOOL", 0.012},
	{"LEEDS", 0.005},
	{"SHEFFIELD", 0.010},
	{"NEWCASTLE", 0.010},
	{"GLASGOW", 0.008},
	{"EDINBURGH", -0.005},
	{"BRISTOL", -0.002},
	{"CARDIFF", 0.005},
	{"BELFAST", 0.010},
}

// growthAdjustments shift the UK average rental growth (percent) by city.
var growthAdjustments = []areaRule{
	{"LONDON", 1.0},
	{"MANCHESTER", 1.5},
	{"BIRMINGHAM", 1.0},
	{"BRISTOL", 1.0},
	{"EDINBURGH", 0.5},
	{"LEEDS", 0.5},
	{"LIVERPOOL", 0.0},
	{"NEWCASTLE", -0.5},
	{"GLASGOW", 0.0},
	{"CARDIFF", 0.0},
	{"BELFAST", -0.5},
	{"SHEFFIELD", 0.0},
}

var highDemandAreas = []string{"LONDON", "MANCHESTER", "BIRMINGHAM", "EDINBURGH", "BRISTOL", "LEEDS"}
var lowDemandAreas = []string{"BLACKPOOL", "WIGAN", "HULL", "STOKE"}

var crimeRates = []textRule{
	{"LONDON", "Medium-High"},
	{"MANCHESTER", "Medium-High"},
	{"LIVERPOOL", "Medium-High"},
	{"BIRMINGHAM", "Medium-High"},
	{"LEEDS", "Medium"},
	{"SHEFFIELD", "Medium-Low"},
	{"EDINBURGH", "Low"},
	{"CARDIFF", "Medium-Low"},
	{"BRISTOL", "Medium"},
	{"GLASGOW", "Medium"},
	{"BELFAST", "Medium"},
	{"CAMBRIDGE", "Low"},
	{"OXFORD", "Low"},
}

var schoolRatings = []textRule{
	{"LONDON", "Good"},
	{"MANCHESTER", "Good"},
	{"CAMBRIDGE", "Outstanding"},
	{"OXFORD", "Outstanding"},
	{"EDINBURGH", "Very Good"},
	{"BRISTOL", "Good"},
	{"BIRMINGHAM", "Good"},
	{"LEEDS", "Good"},
	{"LIVERPOOL", "Satisfactory"},
	{"GLASGOW", "Good"},
	{"CARDIFF", "Good"},
	{"BELFAST", "Good"},
}

var transportLinks = []textRule{
	{"LONDON", "Excellent"},
	{"MANCHESTER", "Very Good"},
	{"BIRMINGHAM", "Good"},
	{"LEEDS", "Good"},
	{"LIVERPOOL", "Good"},
	{"EDINBURGH", "Good"},
	{"GLASGOW", "Good"},
	{"BRISTOL", "Good"},
	{"CARDIFF", "Satisfactory"},
	{"BELFAST", "Satisfactory"},
	{"SHEFFIELD", "Satisfactory"},
	{"NEWCASTLE", "Satisfactory"},
}

// urbanProfileCities get the dense urban amenity profile; everywhere else
// gets the suburban one.
var urbanProfileCities = []string{"LONDON", "MANCHESTER", "BIRMINGHAM", "LEEDS", "LIVERPOOL", "GLASGOW", "EDINBURGH"}

// defaultEPCRatings are the assumed current ratings by property type.
var defaultEPCRatings = map[string]string{
	"D": "D",
	"S": "D",
	"T": "E",
	"F": "C",
}

// defaultFloorArea is the assumed internal area in square feet by type.
var defaultFloorArea = map[string]float64{
	"F": 750,
	"T": 1000,
	"S": 1200,
	"D": 1500,
}

var defaultFeatures = map[string][]string{
	"D": {"Garden", "Driveway", "Garage"},
	"S": {"Garden", "Driveway"},
	"T": {"Garden"},
	"F": {"Communal Garden", "Parking"},
}

func matchArea(rules []areaRule, upperLocation string, fallback float64) float64 {
	for _, rule := range rules {
		if containsArea(upperLocation, rule.Area) {
			return rule.Value
		}
	}
	return fallback
}

func matchText(rules []textRule, upperLocation, fallback string) string {
	for _, rule := range rules {
		if containsArea(upperLocation, rule.Area) {
			return rule.Value
		}
	}
	return fallback
}
