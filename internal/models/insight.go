package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Insight kinds and priorities
const (
	InsightTypeTip         = "tip"
	InsightTypeAnalysis    = "analysis"
	InsightTypeAchievement = "achievement"
	InsightTypeWarning     = "warning"

	PriorityLow    = "low"
	PriorityMedium = "medium"
	PriorityHigh   = "high"
)

// InsightTTL is the default validity window for a generated insight.
const InsightTTL = 7 * 24 * time.Hour

// Insight is a generated, time-limited message shown to a user. It expires
// passively: queries filter on ValidUntil, nothing deletes expired rows.
// The only mutation after creation is flipping IsRead.
type Insight struct {
	ID         uuid.UUID      `json:"id" gorm:"type:uuid;primaryKey"`
	UserID     uuid.UUID      `json:"userId" gorm:"type:uuid;index;not null"`
	Type       string         `json:"type" gorm:"not null"` // tip, analysis, achievement, warning
	Category   string         `json:"category" gorm:"not null"`
	Title      string         `json:"title" gorm:"not null"`
	Message    string         `json:"message" gorm:"not null"`
	Data       datatypes.JSON `json:"data"`
	Priority   string         `json:"priority" gorm:"not null;default:'medium'"` // low, medium, high
	IsRead     bool           `json:"isRead" gorm:"default:false;index"`
	ValidUntil time.Time      `json:"validUntil" gorm:"index"`
	CreatedAt  time.Time      `json:"createdAt" gorm:"index"`
}

func (i *Insight) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	if i.ValidUntil.IsZero() {
		i.ValidUntil = time.Now().Add(InsightTTL)
	}
	return nil
}
