package scoring

import "math"

// Component score keys. The per-component scales are deliberately uneven
// (yield 0-25, property_type/area/growth 0-20, renovation 0-15); report
// rendering depends on the sub-ranges, so they are never normalized here.
const (
	ComponentYield        = "yield"
	ComponentPropertyType = "property_type"
	ComponentArea         = "area"
	ComponentGrowth       = "growth"
	ComponentRenovation   = "renovation"
)

// maxPossible is the sum of all component maximums (25+20+20+20+15).
const maxPossible = 100.0

// Result is a BTR investment score: the 0-100 composite, its category label
// and the raw component breakdown.
type Result struct {
	OverallScore    int                `json:"overall_score"`
	Category        string             `json:"category"`
	ComponentScores map[string]float64 `json:"component_scores"`

	// HasData reports whether any dataset rows actually matched the scored
	// location, as opposed to an all-defaults score.
	HasData bool `json:"-"`
}

func compose(scores map[string]float64) Result {
	total := 0.0
	for _, v := range scores {
		total += v
	}
	overall := int(math.Round(total / maxPossible * 100))
	if overall < 0 {
		overall = 0
	}
	if overall > 100 {
		overall = 100
	}
	return Result{
		OverallScore:    overall,
		Category:        Category(overall),
		ComponentScores: scores,
	}
}

// yieldPoints maps a gross yield to the 0-25 yield component. 3% is the
// floor of the scale and 7%+ saturates at 25 points.
func yieldPoints(grossYield float64) float64 {
	return clampF((grossYield-0.03)*1250, 0, 25)
}

// growthPoints maps a percentage growth rate (3.0 = 3%) to 0-20 points and
// averages it with the neutral 10-point baseline.
func growthPoints(growthRatePct float64) float64 {
	points := clampF(growthRatePct*200, 0, 20)
	return clampF((10+points)/2, 0, 20)
}

// propertyTypePoints is the fixed 0-20 lookup for Land Registry type codes.
func propertyTypePoints(code string) float64 {
	switch code {
	case "D":
		return 20
	case "S":
		return 18
	case "T":
		return 15
	case "F":
		return 10
	case "O":
		return 5
	}
	return 10
}

func areaPoints(amenityCount int, schoolRating, transportLinks string) float64 {
	score := 10.0
	if amenityCount > 0 {
		score += math.Min(5, float64(amenityCount)/2)
	}
	switch schoolRating {
	case "Outstanding":
		score += 5
	case "Good":
		score += 3
	}
	switch transportLinks {
	case "Excellent":
		score += 5
	case "Good":
		score += 3
	}
	return clampF(score, 0, 20)
}

func renovationPoints(isHouse bool) float64 {
	score := 7.5
	if isHouse {
		score += 2.5
	}
	return clampF(score, 0, 15)
}

func clampF(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
