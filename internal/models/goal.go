package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Goal types and statuses
const (
	GoalTypeWeekly  = "weekly"
	GoalTypeMonthly = "monthly"

	GoalStatusActive    = "active"
	GoalStatusCompleted = "completed"
	GoalStatusFailed    = "failed" // schema value only; nothing transitions into it automatically
)

// Goal is a user-defined emission reduction target over a weekly or monthly
// window. CurrentProgress is a cached snapshot recomputed from activities on
// each read of active goals, never accumulated.
type Goal struct {
	ID              uuid.UUID      `json:"id" gorm:"type:uuid;primaryKey"`
	UserID          uuid.UUID      `json:"userId" gorm:"type:uuid;index;not null"`
	Type            string         `json:"type" gorm:"not null;default:'weekly'"` // weekly, monthly
	TargetReduction float64        `json:"targetReduction" gorm:"not null"`
	CurrentProgress float64        `json:"currentProgress" gorm:"default:0"`
	Category        string         `json:"category" gorm:"not null;default:'overall'"` // transport, food, energy, other, overall
	StartDate       time.Time      `json:"startDate" gorm:"not null;index"`
	EndDate         time.Time      `json:"endDate" gorm:"not null;index"`
	Status          string         `json:"status" gorm:"not null;default:'active';index"` // active, completed, failed
	CreatedAt       time.Time      `json:"createdAt"`
	UpdatedAt       time.Time      `json:"updatedAt"`
	DeletedAt       gorm.DeletedAt `json:"-" gorm:"index"`
}

func (g *Goal) BeforeCreate(tx *gorm.DB) error {
	if g.ID == uuid.Nil {
		g.ID = uuid.New()
	}
	return nil
}

// GoalWindow returns the goal window for a given type starting at start:
// 7 days for weekly, one calendar month for monthly.
func GoalWindow(goalType string, start time.Time) (time.Time, time.Time) {
	if goalType == GoalTypeMonthly {
		return start, start.AddDate(0, 1, 0)
	}
	return start, start.AddDate(0, 0, 7)
}

type CreateGoalRequest struct {
	Type            string  `json:"type" validate:"required"`
	TargetReduction float64 `json:"targetReduction" validate:"required,gt=0"`
	Category        string  `json:"category" validate:"required"`
}

type UpdateGoalRequest struct {
	TargetReduction *float64 `json:"targetReduction"`
	Status          *string  `json:"status"`
}
