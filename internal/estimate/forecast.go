package estimate

import "math"

// forecastYears is the horizon of the rental projection.
const forecastYears = 5

// ForecastYear is one year of the compounded rental projection.
type ForecastYear struct {
	Year        int     `json:"year"`
	MonthlyRent float64 `json:"monthly_rent"`
	AnnualRent  float64 `json:"annual_rent"`
}

// RentalForecast compounds a monthly rent forward for five years at the
// given annual growth percentage. A zero growth rate uses the UK average.
func RentalForecast(monthlyRent, growthRatePct float64) []ForecastYear {
	if growthRatePct == 0 {
		growthRatePct = baseGrowthPct
	}
	rate := growthRatePct / 100

	out := make([]ForecastYear, 0, forecastYears)
	for year := 1; year <= forecastYears; year++ {
		factor := math.Pow(1+rate, float64(year))
		out = append(out, ForecastYear{
			Year:        year,
			MonthlyRent: monthlyRent * factor,
			AnnualRent:  monthlyRent * 12 * factor,
		})
	}
	return out
}
