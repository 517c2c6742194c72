package model

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Calculation is a lead: the contact details a visitor left on the calculator page
// together with the estimate they were shown.
type Calculation struct {
	ID              uuid.UUID `gorm:"primaryKey;type:uuid"`
	CreatedAt       time.Time `gorm:"not null;index"`
	Name            string    `gorm:"not null"`
	Email           string    `gorm:"not null;index"`
	Phone           string    `gorm:"not null"`
	BuildingType    string    `gorm:"not null"`
	Height          float64   `gorm:"not null"`
	Area            float64   `gorm:"not null"`
	LightningPoints int       `gorm:"not null"`
	SystemType      string    `gorm:"not null"`
	EstimatedCost   int64     `gorm:"not null"`
	Package         string    `gorm:"column:package;not null;index"`
}

type CalculationList []Calculation

func (c *Calculation) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	// sqlite keeps timestamps as text, so every row is written in UTC to keep them comparable.
	if c.CreatedAt.IsZero() {
		c.CreatedAt = time.Now().UTC()
	} else {
		c.CreatedAt = c.CreatedAt.UTC()
	}
	return nil
}

func (c Calculation) String() string {
	val, _ := json.Marshal(c)
	return string(val)
}

// LeadStats aggregates the stored calculations.
type LeadStats struct {
	Total               int64
	TotalEstimatedValue int64
	ByPackage           map[string]int64
}
