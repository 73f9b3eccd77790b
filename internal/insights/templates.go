package insights

// Tip templates for different categories and intensities. "high" and
// "medium" templates carry an {amount} placeholder filled with the suggested
// reduction; "low" templates are static praise.
var tipTemplates = map[string]map[string][]string{
	"transport": {
		"high": {
			"Try cycling or walking for short trips this week to reduce {amount} kg CO2",
			"Consider carpooling or public transport to cut your transport emissions by {amount} kg CO2",
			"Work from home 2 days this week to save approximately {amount} kg CO2",
			"Combine multiple errands into one trip to reduce {amount} kg CO2",
		},
		"medium": {
			"Switch to public transport once this week to save {amount} kg CO2",
			"Try walking for trips under 1km to reduce emissions by {amount} kg CO2",
			"Plan your routes efficiently to cut fuel consumption and save {amount} kg CO2",
		},
		"low": {
			"Great job keeping transport emissions low! Maintain this by walking short distances",
			"Your transport footprint is excellent - keep using sustainable options!",
		},
	},
	"food": {
		"high": {
			"Try 2 plant-based meals this week to reduce {amount} kg CO2",
			"Replace beef with chicken once this week to save {amount} kg CO2",
			"Buy local produce to cut food transport emissions by {amount} kg CO2",
			"Reduce food waste by meal planning to save {amount} kg CO2",
		},
		"medium": {
			"Try one meatless meal this week to save {amount} kg CO2",
			"Choose seasonal vegetables to reduce {amount} kg CO2",
			"Buy from local farmers markets to cut {amount} kg CO2",
		},
		"low": {
			"Excellent food choices! Your plant-based meals are making a difference",
			"Keep up the sustainable eating habits - you're doing great!",
		},
	},
	"energy": {
		"high": {
			"Lower your thermostat by 2°C to save {amount} kg CO2 this week",
			"Unplug devices when not in use to reduce {amount} kg CO2",
			"Switch to LED bulbs to cut energy consumption by {amount} kg CO2",
			"Use cold water for washing to save {amount} kg CO2",
		},
		"medium": {
			"Turn off lights when leaving rooms to save {amount} kg CO2",
			"Use a programmable thermostat to reduce {amount} kg CO2",
			"Air dry clothes instead of using the dryer to cut {amount} kg CO2",
		},
		"low": {
			"Your energy usage is very efficient - keep it up!",
			"Great energy conservation habits - you're leading by example!",
		},
	},
	"other": {
		"high": {
			"Reduce single-use plastics to cut {amount} kg CO2 this week",
			"Recycle more items to save {amount} kg CO2",
			"Buy second-hand items to reduce {amount} kg CO2",
			"Use reusable bags and containers to cut {amount} kg CO2",
		},
		"medium": {
			"Start composting to reduce waste emissions by {amount} kg CO2",
			"Choose products with less packaging to save {amount} kg CO2",
			"Repair items instead of replacing to cut {amount} kg CO2",
		},
		"low": {
			"Your waste reduction efforts are paying off - keep it up!",
			"Excellent sustainable lifestyle choices!",
		},
	},
}
