// Package insights generates personalized tips, weekly goals and
// achievements from a user's emission history, and keeps goal progress
// snapshots up to date.
package insights

import (
	"encoding/json"
	"math"
	"math/rand"
	"strconv"
	"strings"
	"time"

	"github.com/ecotrack/footprint-api/internal/database"
	"github.com/ecotrack/footprint-api/internal/models"
	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Analysis summarizes a user's recent emissions: trailing 7-day and 30-day
// totals and per-category breakdowns, plus the dominant category of the week.
type Analysis struct {
	WeeklyTotal           float64            `json:"weeklyTotal"`
	MonthlyTotal          float64            `json:"monthlyTotal"`
	WeeklyEmissions       map[string]float64 `json:"weeklyEmissions"`
	MonthlyEmissions      map[string]float64 `json:"monthlyEmissions"`
	HighestCategory       string             `json:"highestCategory"`
	HighestCategoryAmount float64            `json:"highestCategoryAmount"`
	ActivitiesCount       int                `json:"activitiesCount"`
}

// Generator produces randomized tip and goal content. The randomness source
// is injectable so tests can seed deterministic output.
type Generator struct {
	rand *rand.Rand
}

func NewGenerator(r *rand.Rand) *Generator {
	return &Generator{rand: r}
}

// Gen is the production generator instance.
var Gen = NewGenerator(rand.New(rand.NewSource(time.Now().UnixNano())))

// AnalyzeUser computes the emission analysis for a user over the trailing
// 7 and 30 days.
func AnalyzeUser(userID uuid.UUID) (*Analysis, error) {
	now := time.Now()
	lastWeek := now.AddDate(0, 0, -7)
	lastMonth := now.AddDate(0, 0, -30)

	var weeklyActivities []models.Activity
	if err := database.DB.Where("user_id = ? AND date >= ?", userID, lastWeek).
		Find(&weeklyActivities).Error; err != nil {
		return nil, err
	}

	var monthlyActivities []models.Activity
	if err := database.DB.Where("user_id = ? AND date >= ?", userID, lastMonth).
		Find(&monthlyActivities).Error; err != nil {
		return nil, err
	}

	weeklyEmissions := emissionsByCategory(weeklyActivities)
	monthlyEmissions := emissionsByCategory(monthlyActivities)
	topCategory, topAmount := highestCategory(weeklyEmissions)

	return &Analysis{
		WeeklyTotal:           sumValues(weeklyEmissions),
		MonthlyTotal:          sumValues(monthlyEmissions),
		WeeklyEmissions:       weeklyEmissions,
		MonthlyEmissions:      monthlyEmissions,
		HighestCategory:       topCategory,
		HighestCategoryAmount: topAmount,
		ActivitiesCount:       len(weeklyActivities),
	}, nil
}

// GenerateTip picks a template for the user's dominant category and
// intensity, fills in a randomized 10-30% reduction suggestion and persists
// it as a "tip" insight with the default validity window.
func (g *Generator) GenerateTip(userID uuid.UUID, analysis *Analysis) (*models.Insight, error) {
	intensity := intensityFor(analysis.HighestCategoryAmount)

	templates := tipTemplates[analysis.HighestCategory][intensity]
	template := templates[g.rand.Intn(len(templates))]

	// Potential reduction: 10-30% of current emissions
	potentialReduction := math.Round(analysis.HighestCategoryAmount * (0.10 + g.rand.Float64()*0.20))
	message := fillTemplate(template, potentialReduction)

	priority := models.PriorityMedium
	if intensity == "high" {
		priority = models.PriorityHigh
	}

	insight := models.Insight{
		UserID:   userID,
		Type:     models.InsightTypeTip,
		Category: analysis.HighestCategory,
		Title:    capitalize(analysis.HighestCategory) + " Reduction Tip",
		Message:  message,
		Data: jsonData(map[string]interface{}{
			"currentEmissions":   analysis.HighestCategoryAmount,
			"potentialReduction": potentialReduction,
			"category":           analysis.HighestCategory,
		}),
		Priority: priority,
	}

	if err := database.DB.Create(&insight).Error; err != nil {
		return nil, err
	}
	return &insight, nil
}

// GenerateWeeklyGoal creates a weekly reduction goal on the user's dominant
// category (5-15% of the weekly total) unless an active, unexpired weekly
// goal already exists, and announces it with an "analysis" insight.
func (g *Generator) GenerateWeeklyGoal(userID uuid.UUID, analysis *Analysis) (*models.Goal, error) {
	var existing models.Goal
	err := database.DB.Where(
		"user_id = ? AND type = ? AND status = ? AND end_date > ?",
		userID, models.GoalTypeWeekly, models.GoalStatusActive, time.Now(),
	).First(&existing).Error
	if err == nil {
		return &existing, nil
	}

	reductionPercentage := 0.05 + g.rand.Float64()*0.10
	targetReduction := math.Round(analysis.WeeklyTotal * reductionPercentage)

	startDate, endDate := models.GoalWindow(models.GoalTypeWeekly, time.Now())

	goal := models.Goal{
		UserID:          userID,
		Type:            models.GoalTypeWeekly,
		TargetReduction: targetReduction,
		Category:        analysis.HighestCategory,
		StartDate:       startDate,
		EndDate:         endDate,
		Status:          models.GoalStatusActive,
	}
	if err := database.DB.Create(&goal).Error; err != nil {
		return nil, err
	}

	goalInsight := models.Insight{
		UserID:   userID,
		Type:     models.InsightTypeAnalysis,
		Category: models.CategoryOverall,
		Title:    "New Weekly Goal Set!",
		Message: "Try to reduce your " + analysis.HighestCategory + " emissions by " +
			strconv.FormatFloat(targetReduction, 'f', 1, 64) + " kg CO2 this week",
		Data: jsonData(map[string]interface{}{
			"goalId":          goal.ID,
			"targetReduction": targetReduction,
			"category":        analysis.HighestCategory,
		}),
		Priority: models.PriorityHigh,
	}
	if err := database.DB.Create(&goalInsight).Error; err != nil {
		return nil, err
	}

	return &goal, nil
}

// emissionsByCategory folds activities into the fixed four-category mapping,
// zero-filling categories with no activity.
func emissionsByCategory(activities []models.Activity) map[string]float64 {
	result := map[string]float64{
		models.CategoryTransport: 0,
		models.CategoryFood:      0,
		models.CategoryEnergy:    0,
		models.CategoryOther:     0,
	}
	for _, a := range activities {
		result[a.Category] += a.CO2Emission
	}
	return result
}

// highestCategory picks the category with the largest total, breaking ties
// by the canonical category order so the result is deterministic.
func highestCategory(emissions map[string]float64) (string, float64) {
	best := models.CategoryTransport
	bestAmount := emissions[best]
	for _, cat := range models.Categories {
		if emissions[cat] > bestAmount {
			best = cat
			bestAmount = emissions[cat]
		}
	}
	return best, bestAmount
}

func sumValues(m map[string]float64) float64 {
	var sum float64
	for _, v := range m {
		sum += v
	}
	return sum
}

// intensityFor classifies the dominant category's weekly emissions.
func intensityFor(amount float64) string {
	switch {
	case amount > 20:
		return "high"
	case amount > 10:
		return "medium"
	default:
		return "low"
	}
}

func fillTemplate(template string, amount float64) string {
	return strings.ReplaceAll(template, "{amount}", strconv.FormatFloat(amount, 'f', 1, 64))
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

func jsonData(v map[string]interface{}) datatypes.JSON {
	b, err := json.Marshal(v)
	if err != nil {
		return nil
	}
	return datatypes.JSON(b)
}
