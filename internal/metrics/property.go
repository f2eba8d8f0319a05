package metrics

import (
	"strings"

	"btrscout/internal/models"
)

// Rent multipliers applied to the area average when estimating what a
// specific property type would let for.
func rentMultiplier(propertyType string) float64 {
	switch propertyType {
	case models.PropertyTypeDetached:
		return 1.4
	case models.PropertyTypeSemiDetached:
		return 1.2
	case models.PropertyTypeTerraced:
		return 1.0
	case models.PropertyTypeFlat:
		return 0.9
	}
	return 1.0
}

// PropertyYield estimates the yield for one transaction record: area average
// rent (falling back to the national average when no regional rows match the
// postcode district) scaled by the property-type multiplier, against the
// record's own price.
func (c *Calculator) PropertyYield(property models.PropertyRecord) float64 {
	if c == nil || !c.snap.HasRentals() {
		return DefaultMetric
	}
	if property.Postcode == "" {
		return DefaultMetric
	}
	district := models.PostcodeDistrict(property.Postcode)

	avgRent, ok := meanRentForRegion(c.snap.Rentals, district)
	if !ok {
		avgRent, ok = meanRentAll(c.snap.Rentals)
		if !ok {
			return DefaultMetric
		}
	}

	propertyType := property.PropertyType
	if propertyType == "" {
		propertyType = models.PropertyTypeFlat
	}
	monthlyRent := avgRent * rentMultiplier(propertyType)

	price := property.Price.InexactFloat64()
	if price <= 0 {
		return DefaultMetric
	}
	return normalizeYield(monthlyRent * 12 / price)
}

// PropertyAffordability rates the record's own price against the national
// mean with the same curve as the location variant.
func (c *Calculator) PropertyAffordability(property models.PropertyRecord) float64 {
	if c == nil || !c.snap.HasTransactions() {
		return DefaultMetric
	}
	price := property.Price.InexactFloat64()
	if price <= 0 {
		return DefaultMetric
	}
	national := meanPrice(c.snap.Transactions)
	if national <= 0 {
		return DefaultMetric
	}
	return affordabilityFromRatio(price / national)
}

// PropertyGrowth is the growth potential of the property's postcode
// district; individual properties carry no growth signal of their own.
func (c *Calculator) PropertyGrowth(property models.PropertyRecord) float64 {
	return c.LocationGrowth(models.PostcodeDistrict(property.Postcode))
}

// ratingImprovement maps an EPC rating to improvement headroom: A-rated
// stock has little left, G-rated the most.
func ratingImprovement(rating string) float64 {
	switch rating {
	case "A":
		return 0.1
	case "B":
		return 0.2
	case "C":
		return 0.4
	case "D":
		return 0.6
	case "E":
		return 0.8
	case "F":
		return 0.9
	case "G":
		return 1.0
	}
	return DefaultMetric
}

// PropertyImprovement looks for the property's own EPC record (exact
// postcode match, first row wins) and falls back to a per-type prior when
// none exists: houses carry more improvement headroom than flats.
func (c *Calculator) PropertyImprovement(property models.PropertyRecord) float64 {
	if c != nil && c.snap.HasEnergy() && property.Postcode != "" {
		postcode := strings.ToUpper(property.Postcode)
		for _, it := range c.snap.Energy {
			if strings.ToUpper(it.Postcode) != postcode {
				continue
			}
			if it.CurrentEfficiency != nil && it.PotentialEfficiency != nil {
				improvement := float64(*it.PotentialEfficiency - *it.CurrentEfficiency)
				return clamp01(improvement / 30)
			}
			if it.CurrentRating != nil {
				return ratingImprovement(*it.CurrentRating)
			}
			break
		}
	}
	if property.PropertyType != "" {
		if models.IsHouse(property.PropertyType) {
			return 0.7
		}
		return DefaultMetric
	}
	return DefaultMetric
}

// PropertySFH is the direct per-type suitability constant.
func (c *Calculator) PropertySFH(property models.PropertyRecord) float64 {
	switch property.PropertyType {
	case models.PropertyTypeDetached:
		return 1.0
	case models.PropertyTypeSemiDetached:
		return 0.9
	case models.PropertyTypeTerraced:
		return 0.7
	case models.PropertyTypeFlat:
		return 0.2
	}
	return DefaultMetric
}
