package scoring

// Score categories, keyed off the normalized 0-100 overall score.
const (
	CategoryExcellent    = "excellent"
	CategoryGood         = "good"
	CategoryAboveAverage = "above_average"
	CategoryAverage      = "average"
	CategoryBelowAverage = "below_average"
	CategoryPoor         = "poor"
	CategoryVeryPoor     = "very_poor"
)

// Category maps an overall score to its label.
func Category(score int) string {
	switch {
	case score >= 80:
		return CategoryExcellent
	case score >= 70:
		return CategoryGood
	case score >= 60:
		return CategoryAboveAverage
	case score >= 50:
		return CategoryAverage
	case score >= 40:
		return CategoryBelowAverage
	case score >= 30:
		return CategoryPoor
	}
	return CategoryVeryPoor
}
