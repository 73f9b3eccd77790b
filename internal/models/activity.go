package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Activity categories
const (
	CategoryTransport = "transport"
	CategoryFood      = "food"
	CategoryEnergy    = "energy"
	CategoryOther     = "other"
	CategoryOverall   = "overall"
)

// Categories lists the four activity categories in their canonical order.
var Categories = []string{CategoryTransport, CategoryFood, CategoryEnergy, CategoryOther}

// Activity is a single logged action and its computed CO2 emission.
// Records are immutable after creation; the emission is always derived
// server-side from the amount, never taken from the client.
type Activity struct {
	ID          uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	UserID      uuid.UUID `json:"userId" gorm:"type:uuid;index;not null"`
	Name        string    `json:"name" gorm:"not null"`
	Category    string    `json:"category" gorm:"not null"` // transport, food, energy, other
	Amount      float64   `json:"amount" gorm:"not null"`
	Unit        string    `json:"unit" gorm:"not null"`
	CO2Emission float64   `json:"co2Emission" gorm:"not null"`
	Date        time.Time `json:"date" gorm:"index"`
	CreatedAt   time.Time `json:"createdAt"`

	User User `json:"-" gorm:"foreignKey:UserID"`
}

func (a *Activity) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}

func ValidCategory(c string) bool {
	for _, cat := range Categories {
		if c == cat {
			return true
		}
	}
	return false
}

type CreateActivityRequest struct {
	Name     string     `json:"name" validate:"required"`
	Category string     `json:"category" validate:"required"`
	Amount   float64    `json:"amount" validate:"required,gt=0"`
	Unit     string     `json:"unit" validate:"required"`
	Date     *time.Time `json:"date"`
}
