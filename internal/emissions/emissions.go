// Package emissions maps logged activities to CO2 emissions using a static
// per-activity factor table with category-level fallbacks.
package emissions

import "github.com/ecotrack/footprint-api/internal/models"

// factors holds kg CO2 emitted per declared unit of each known activity
// (per km for travel, per kg for food, per kWh for electricity, and so on).
// Loaded once at init and never mutated.
var factors = map[string]float64{
	"Car Travel":             0.21,
	"Public Transport":       0.05,
	"Flight (Domestic)":      0.25,
	"Flight (International)": 0.30,
	"Motorcycle":             0.15,
	"Beef Consumption":       27.0,
	"Pork Consumption":       12.1,
	"Chicken Consumption":    6.9,
	"Fish Consumption":       4.2,
	"Dairy Products":         3.2,
	"Electricity Usage":      0.5,
	"Natural Gas":            2.3,
	"Heating Oil":            2.7,
	"Coal":                   2.4,
	"Waste Generation":       0.5,
	"Water Usage":            0.0004,
	"Paper Usage":            3.3,
	"Plastic Usage":          6.0,
}

// categoryDefaults is used when an activity name has no known factor.
var categoryDefaults = map[string]float64{
	models.CategoryTransport: 0.2,
	models.CategoryFood:      5.0,
	models.CategoryEnergy:    0.5,
	models.CategoryOther:     1.0,
}

// Compute returns the kg CO2 emitted by amount units of the named activity.
// Unknown names fall back to the category default; unknown categories fall
// back to a factor of 1.0. The result is linear in amount and never rounded.
func Compute(name string, amount float64, category string) float64 {
	factor, ok := factors[name]
	if !ok {
		factor, ok = categoryDefaults[category]
		if !ok {
			factor = 1.0
		}
	}
	return amount * factor
}

// Factor reports the per-unit factor for a known activity name.
func Factor(name string) (float64, bool) {
	f, ok := factors[name]
	return f, ok
}

// KnownActivities returns the names in the factor table, for the catalog
// endpoint. The returned slice is a copy.
func KnownActivities() []string {
	names := make([]string, 0, len(factors))
	for name := range factors {
		names = append(names, name)
	}
	return names
}
