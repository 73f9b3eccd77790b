package insights

import (
	"log"

	"github.com/ecotrack/footprint-api/internal/database"
	"github.com/ecotrack/footprint-api/internal/models"
	"github.com/ecotrack/footprint-api/internal/realtime"
	"github.com/ecotrack/footprint-api/internal/services"
	"github.com/google/uuid"
)

// RunWeeklyBatch generates insights and weekly goals for every known user.
// Users run sequentially; a failure for one user is logged and does not
// abort the batch for the rest.
func (g *Generator) RunWeeklyBatch() {
	var users []models.User
	if err := database.DB.Find(&users).Error; err != nil {
		log.Printf("Weekly batch: failed to list users: %v", err)
		return
	}

	for _, user := range users {
		if err := g.runForUser(user.ID); err != nil {
			log.Printf("Weekly batch: user %s: %v", user.ID, err)
		}
	}

	log.Println("Weekly insights generated for all users")
}

func (g *Generator) runForUser(userID uuid.UUID) error {
	if err := UpdateGoalProgress(userID); err != nil {
		return err
	}

	analysis, err := AnalyzeUser(userID)
	if err != nil {
		return err
	}
	if analysis.ActivitiesCount == 0 {
		return nil
	}

	tip, err := g.GenerateTip(userID, analysis)
	if err != nil {
		return err
	}

	goal, err := g.GenerateWeeklyGoal(userID, analysis)
	if err != nil {
		return err
	}

	realtime.WS.Publish(userID, realtime.Event{
		Type: realtime.EventNewInsight,
		Data: map[string]interface{}{
			"type":     "weekly-analysis",
			"tip":      tip,
			"goal":     goal,
			"analysis": analysis,
		},
	})
	go services.Push.SendToUser(userID, tip.Title, tip.Message, map[string]string{
		"type": "weekly-analysis",
	})

	return nil
}
